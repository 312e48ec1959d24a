package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jabaum/bosy/internal/logging"
)

// Outcome tells how a search ended.
type Outcome int

const (
	// Exhausted means every candidate bound was tried without success.
	Exhausted Outcome = iota
	// Found means the returned bound admits a solution.
	Found
	// Cancelled means the search stopped early on request.
	Cancelled
	// Failed means the solve function returned an error.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Exhausted:
		return "exhausted"
	case Found:
		return "found"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// SolveFunc reports whether the synthesis problem has a solution at bound.
// It may block for a long time; ctx ends when the search is abandoned.
type SolveFunc[P any] func(ctx context.Context, bound P) (bool, error)

// Searcher drives a SolveFunc over a Domain. Logger and Metrics are
// optional.
type Searcher[P any] struct {
	Domain  Domain[P]
	Solve   SolveFunc[P]
	Logger  *slog.Logger
	Metrics *Metrics
}

// Linear tries every bound from the domain minimum upwards and returns the
// first one that is solvable.
func (s *Searcher[P]) Linear(ctx context.Context, c *Canceller) (P, Outcome, error) {
	return s.run(ctx, c, "linear", func(v int) (int, bool) {
		if v == math.MaxInt {
			return v, false
		}
		return v + 1, true
	})
}

// Exponential tries the domain minimum and doubles the bound after every
// unsuccessful attempt. It returns the first solvable bound along that
// sequence, which need not be the smallest solvable bound.
func (s *Searcher[P]) Exponential(ctx context.Context, c *Canceller) (P, Outcome, error) {
	if s.Domain.Min() <= 0 {
		var zero P
		return zero, Failed, fmt.Errorf("%w: exponential search needs a positive minimum, got %d", ErrInvalidDomain, s.Domain.Min())
	}
	return s.run(ctx, c, "exponential", func(v int) (int, bool) {
		if v > math.MaxInt/2 {
			return v, false
		}
		return v * 2, true
	})
}

func (s *Searcher[P]) run(ctx context.Context, c *Canceller, strategy string, next func(int) (int, bool)) (P, Outcome, error) {
	var zero P
	logger := logging.OrNop(s.Logger).With("strategy", strategy)

	finish := func(bound P, outcome Outcome, err error) (P, Outcome, error) {
		s.Metrics.observeSearch(strategy, outcome)
		return bound, outcome, err
	}

	for v := s.Domain.Min(); !s.Domain.PastMax(v); {
		if c.Cancelled() || ctx.Err() != nil {
			logger.Info("search cancelled", "bound", v)
			return finish(zero, Cancelled, nil)
		}

		bound := s.Domain.FromInt(v)
		logger.Debug("trying bound", "bound", v)
		start := time.Now()
		ok, err := s.Solve(ctx, bound)
		s.Metrics.observeAttempt(strategy, ok, err, time.Since(start))

		if err != nil {
			if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				logger.Info("search cancelled", "bound", v)
				return finish(zero, Cancelled, nil)
			}
			logger.Error("solve failed", "bound", v, "error", err)
			return finish(zero, Failed, &SolveError{Bound: v, Err: err})
		}
		if ok {
			logger.Info("solution found", "bound", v, "duration", time.Since(start))
			return finish(bound, Found, nil)
		}
		logger.Debug("no solution", "bound", v)

		var more bool
		if v, more = next(v); !more {
			break
		}
	}

	logger.Info("search exhausted")
	return finish(zero, Exhausted, nil)
}
