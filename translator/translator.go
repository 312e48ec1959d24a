// Package translator runs external LTL-to-automaton translators and reads
// their output into co-Büchi automata.
package translator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jabaum/bosy/automaton"
	"github.com/jabaum/bosy/internal/logging"
	"github.com/jabaum/bosy/internal/process"
)

// Tool names a supported translator.
type Tool string

const (
	// LTL3BA prints Spin never claims.
	LTL3BA Tool = "ltl3ba"
	// Spot is Spot's ltl2tgba, which prints never claims or HOA.
	Spot Tool = "spot"
)

// DefaultPath returns the executable looked up on PATH for tool.
func (t Tool) DefaultPath() string {
	if t == Spot {
		return "ltl2tgba"
	}
	return string(t)
}

var (
	// ErrUnknownTool is returned for a translator name other than ltl3ba
	// or spot.
	ErrUnknownTool = errors.New("unknown translator")
	// ErrTranslationFailed is returned when the translator exits with a
	// non-zero status.
	ErrTranslationFailed = errors.New("translation failed")
)

// ParseTool validates a translator name.
func ParseTool(name string) (Tool, error) {
	switch Tool(strings.ToLower(name)) {
	case LTL3BA:
		return LTL3BA, nil
	case Spot:
		return Spot, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTool, name)
}

// Translator turns the negation of a specification into the co-Büchi
// automaton of the specification. The runner must have the tool registered
// under its Tool name.
type Translator struct {
	Runner *process.Runner
	Tool   Tool
	// HOA asks Spot for HOA output instead of a never claim.
	HOA    bool
	Logger *slog.Logger
}

// Args returns the command-line arguments for translating formula.
func (t *Translator) Args(formula string) []string {
	f := "(" + formula + ")"
	switch t.Tool {
	case Spot:
		args := []string{"--low", "-f", f}
		if t.HOA {
			return append(args, "-H", "-B")
		}
		return append(args, "--spin")
	default:
		return []string{"-f", f}
	}
}

// Translate runs the translator on formula, which should be the negated
// specification, and parses its output.
func (t *Translator) Translate(ctx context.Context, formula string) (*automaton.Annotated, error) {
	logger := logging.OrNop(t.Logger).With("translator", string(t.Tool))
	if _, err := ParseTool(string(t.Tool)); err != nil {
		return nil, err
	}

	args := t.Args(formula)
	logger.Info("translating formula", "formula", formula)
	res, err := t.Runner.Run(ctx, string(t.Tool), args...)
	if err != nil {
		return nil, fmt.Errorf("translate: %w", err)
	}
	if res.ExitCode != 0 {
		return nil, fmt.Errorf("%w: %s exited with status %d: %s",
			ErrTranslationFailed, t.Tool, res.ExitCode, strings.TrimSpace(res.Stderr))
	}

	var a *automaton.Annotated
	if t.Tool == Spot && t.HOA {
		a, err = automaton.ParseHOA(res.Stdout)
	} else {
		a, err = automaton.ParseNeverClaim(res.Stdout)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s output: %w", t.Tool, err)
	}

	st := a.Stats()
	logger.Info("automaton built",
		"states", st.States,
		"rejecting", st.Rejecting,
		"safety", st.Safety,
		"duration", res.Duration)
	return a, nil
}
