package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"sort"
	"time"

	"github.com/jabaum/bosy/internal/logging"
)

// ErrNotRegistered is returned when running a command that was never
// registered with the runner.
var ErrNotRegistered = errors.New("process: command not registered")

// Runner executes local processes from an allow-list. Callers refer to a
// command by name; the executable path and leading arguments are fixed at
// registration time.
type Runner struct {
	registry map[string]Command
	logger   *slog.Logger
}

// Command is an allowed executable with its default leading arguments.
type Command struct {
	Path string
	Args []string
}

// Result is the captured outcome of a finished process.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// NewRunner creates a runner with an empty allow-list. A nil logger
// discards output.
func NewRunner(logger *slog.Logger) *Runner {
	return &Runner{
		registry: make(map[string]Command),
		logger:   logging.OrNop(logger),
	}
}

// Register adds a command to the allow-list, replacing any previous entry
// under the same name.
func (r *Runner) Register(name, path string, args ...string) {
	r.registry[name] = Command{Path: path, Args: args}
}

// Registered returns the registered command names in sorted order.
func (r *Runner) Registered() []string {
	names := make([]string, 0, len(r.registry))
	for name := range r.registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes the named command with extra arguments appended to the
// registered ones and waits for it. A non-zero exit status is reported in
// Result.ExitCode, not as an error; errors mean the process could not be
// started or was killed because ctx ended.
func (r *Runner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	proc, ok := r.registry[name]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}

	argv := append(append([]string(nil), proc.Args...), args...)
	cmd := exec.CommandContext(ctx, proc.Path, argv...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.Debug("starting process", "name", name, "path", proc.Path, "args", argv)
	start := time.Now()
	err := cmd.Run()
	res := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, fmt.Errorf("run %s: %w", name, ctxErr)
	}
	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		return res, fmt.Errorf("run %s: %w", name, err)
	}

	r.logger.Debug("process finished", "name", name, "exit_code", res.ExitCode, "duration", res.Duration)
	return res, nil
}
