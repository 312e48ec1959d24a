package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jabaum/bosy/automaton"
	"github.com/jabaum/bosy/config"
	"github.com/jabaum/bosy/instance"
	"github.com/jabaum/bosy/internal/process"
	"github.com/jabaum/bosy/translator"
)

var automatonCmd = &cobra.Command{
	Use:   "automaton [instance.yaml]",
	Short: "Build the co-Büchi automaton of a specification",
	Long: `Translates the specification of an instance file (or a formula given with
--formula) with ltl3ba or Spot, or reads translator output from --input, and
prints a summary of the simplified automaton.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, source, err := loadAutomaton(cmd, args)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if dot, _ := cmd.Flags().GetBool("dot"); dot {
			_, err := io.WriteString(out, a.Dot())
			return err
		}
		printAutomatonReport(out, source, a)
		return nil
	},
}

func init() {
	f := automatonCmd.Flags()
	f.StringP("formula", "f", "", "LTL specification to translate instead of an instance file")
	f.StringP("input", "i", "", "Read translator output from a file instead of running a translator")
	f.String("translator", "", "Translator to run (ltl3ba or spot)")
	f.Bool("hoa", false, "Use HOA instead of never claims (spot only; with --input, parse the file as HOA)")
	f.Bool("dot", false, "Print the automaton in DOT instead of the summary")
	rootCmd.AddCommand(automatonCmd)
}

func loadAutomaton(cmd *cobra.Command, args []string) (*automaton.Annotated, string, error) {
	flags := cmd.Flags()
	hoa := cfg.Translator.HOA
	if flags.Changed("hoa") {
		hoa, _ = flags.GetBool("hoa")
	}

	if input, _ := flags.GetString("input"); input != "" {
		data, err := os.ReadFile(input)
		if err != nil {
			return nil, "", fmt.Errorf("read %s: %w", input, err)
		}
		var a *automaton.Annotated
		if hoa || strings.HasSuffix(input, ".hoa") {
			a, err = automaton.ParseHOA(string(data))
		} else {
			a, err = automaton.ParseNeverClaim(string(data))
		}
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", input, err)
		}
		return a, input, nil
	}

	var (
		inst   *instance.Instance
		source string
	)
	switch formula, _ := flags.GetString("formula"); {
	case formula != "" && len(args) > 0:
		return nil, "", fmt.Errorf("give either an instance file or --formula, not both")
	case formula != "":
		inst, source = &instance.Instance{Guarantees: []string{formula}}, "--formula"
	case len(args) == 1:
		in, err := instance.LoadFile(args[0])
		if err != nil {
			return nil, "", err
		}
		inst, source = in, args[0]
	default:
		return nil, "", fmt.Errorf("missing instance file, --formula or --input")
	}

	name, _ := flags.GetString("translator")
	tool, path, err := resolveTranslator(cfg, name)
	if err != nil {
		return nil, "", err
	}

	runner := process.NewRunner(logger)
	runner.Register(string(tool), path)
	tr := &translator.Translator{Runner: runner, Tool: tool, HOA: hoa, Logger: logger}

	ctx := cmd.Context()
	if cfg.Translator.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Translator.Timeout)
		defer cancel()
	}
	// The automaton for the specification is the dual of the Büchi
	// automaton for its negation.
	a, err := tr.Translate(ctx, inst.Negated())
	if err != nil {
		return nil, "", err
	}
	return a, source, nil
}

// resolveTranslator picks the translator tool and executable. The
// configured path applies unless name selects a different tool.
func resolveTranslator(c config.Config, name string) (translator.Tool, string, error) {
	tool, err := translator.ParseTool(c.Translator.Name)
	if err != nil {
		return "", "", err
	}
	if name == "" {
		return tool, c.TranslatorPath(), nil
	}
	override, err := translator.ParseTool(name)
	if err != nil {
		return "", "", err
	}
	if override != tool {
		return override, override.DefaultPath(), nil
	}
	return tool, c.TranslatorPath(), nil
}

func printAutomatonReport(w io.Writer, source string, a *automaton.Annotated) {
	st := a.Stats()
	fmt.Fprintf(w, "Source:      %s\n\n", source)
	fmt.Fprintf(w, "Automaton\n")
	fmt.Fprintf(w, "  States:      %d (%d initial, %d rejecting)\n", st.States, st.Initial, st.Rejecting)
	fmt.Fprintf(w, "  Transitions: %d\n", st.Transitions)
	fmt.Fprintf(w, "  SCCs:        %d (%d rejecting)\n", st.SCCs, st.RejectingSCCs)
	if st.Safety {
		fmt.Fprintf(w, "  Kind:        safety\n")
	} else {
		fmt.Fprintf(w, "  Kind:        co-Büchi\n")
	}
	var conditions []string
	for _, s := range a.States.Sorted() {
		if c := a.SafetyCondition(s); !c.IsTrue() {
			conditions = append(conditions, fmt.Sprintf("%s: %s", s, c))
		}
	}
	if len(conditions) > 0 {
		fmt.Fprintf(w, "\nSafety conditions\n")
		for _, c := range conditions {
			fmt.Fprintf(w, "  %s\n", c)
		}
	}
}
