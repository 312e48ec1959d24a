package search

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jabaum/bosy/internal/process"
)

// Exit statuses of an external solver, following the SAT competition
// convention.
const (
	ExitSatisfiable   = 10
	ExitUnsatisfiable = 20
)

// BoundPlaceholder is replaced by the current bound in solver arguments.
const BoundPlaceholder = "{bound}"

// CommandSolver returns a SolveFunc that runs the registered command name
// once per bound. Exit status 10 means the bound is solvable, 20 means it
// is not; anything else fails the attempt with ErrSolvingFailed.
func CommandSolver[P ~int](runner *process.Runner, name string, args ...string) SolveFunc[P] {
	return func(ctx context.Context, bound P) (bool, error) {
		value := strconv.Itoa(int(bound))
		argv := make([]string, len(args))
		for i, a := range args {
			argv[i] = strings.ReplaceAll(a, BoundPlaceholder, value)
		}

		res, err := runner.Run(ctx, name, argv...)
		if err != nil {
			return false, err
		}
		switch res.ExitCode {
		case ExitSatisfiable:
			return true, nil
		case ExitUnsatisfiable:
			return false, nil
		}
		msg := strings.TrimSpace(res.Stderr)
		if msg == "" {
			msg = strings.TrimSpace(res.Stdout)
		}
		return false, fmt.Errorf("%w: %s exited with status %d: %s", ErrSolvingFailed, name, res.ExitCode, msg)
	}
}
