package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jabaum/bosy/config"
	"github.com/jabaum/bosy/instance"
	"github.com/jabaum/bosy/solution"
)

var renderCmd = &cobra.Command{
	Use:   "render controller.yaml",
	Short: "Render an explicit controller as AIGER, DOT, SMV or Verilog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		formats := cfg.Render.Formats
		if flags.Changed("format") {
			formats, _ = flags.GetStringSlice("format")
		}
		outDir := cfg.Render.OutputDir
		if flags.Changed("output-dir") {
			outDir, _ = flags.GetString("output-dir")
		}
		ascii := cfg.Render.ASCIIAiger
		if flags.Changed("ascii") {
			ascii, _ = flags.GetBool("ascii")
		}
		for _, f := range formats {
			if !slices.Contains(config.Formats, f) {
				return fmt.Errorf("unknown format %q (want one of %s)", f, strings.Join(config.Formats, ", "))
			}
		}

		c, err := instance.LoadControllerFile(args[0])
		if err != nil {
			return err
		}
		if slices.Contains(formats, "verilog") {
			states, err := c.NonExhaustiveStates()
			if err != nil {
				return err
			}
			if len(states) > 0 {
				logger.Warn("outgoing guards are not exhaustive; Verilog takes the last guard as fallback", "states", states)
			}
		}

		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", outDir, err)
		}
		base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))

		var g errgroup.Group
		for _, format := range formats {
			format := format
			g.Go(func() error {
				data, ext, err := renderFormat(c, format, ascii)
				if err != nil {
					return fmt.Errorf("render %s: %w", format, err)
				}
				path := filepath.Join(outDir, base+ext)
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				logger.Info("wrote artifact", "format", format, "path", path, "bytes", len(data))
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			})
		}
		return g.Wait()
	},
}

func init() {
	f := renderCmd.Flags()
	f.StringSlice("format", nil, "Formats to write: aiger, dot, smv, verilog")
	f.StringP("output-dir", "o", "", "Directory for the rendered files")
	f.Bool("ascii", false, "Write AIGER in ASCII (.aag) instead of binary (.aig)")
	rootCmd.AddCommand(renderCmd)
}

// renderFormat returns the rendered controller and its file extension.
func renderFormat(c *solution.Controller, format string, ascii bool) ([]byte, string, error) {
	var (
		text string
		ext  string
		err  error
	)
	switch format {
	case "aiger":
		var buf bytes.Buffer
		if err := c.WriteAIGER(&buf, !ascii); err != nil {
			return nil, "", err
		}
		if ascii {
			return buf.Bytes(), ".aag", nil
		}
		return buf.Bytes(), ".aig", nil
	case "dot":
		text, err = c.Dot()
		ext = ".dot"
	case "smv":
		text, err = c.SMV()
		ext = ".smv"
	case "verilog":
		text, err = c.Verilog()
		ext = ".v"
	default:
		return nil, "", fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return nil, "", err
	}
	return []byte(text), ext, nil
}
