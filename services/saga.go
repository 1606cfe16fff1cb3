package services

import (
	"context"
	"log/slog"
	"time"
)

const compensationTimeout = 15 * time.Second

// sagaStep pairs an action with the compensation that undoes it.
type sagaStep struct {
	name       string
	action     func(context.Context) error
	compensate func(context.Context) error
}

// saga executes steps in order. When a step fails, the compensations of all
// previously completed steps run in reverse before the error is returned,
// so a partially placed order never stays half-applied.
type saga struct {
	steps  []sagaStep
	logger *slog.Logger
}

func newSaga(logger *slog.Logger) *saga {
	return &saga{logger: logger}
}

func (s *saga) then(name string, action, compensate func(context.Context) error) {
	s.steps = append(s.steps, sagaStep{name: name, action: action, compensate: compensate})
}

func (s *saga) run(ctx context.Context) error {
	var done []sagaStep
	for _, step := range s.steps {
		if err := step.action(ctx); err != nil {
			s.rollback(ctx, done, step.name)
			return err
		}
		done = append(done, step)
	}
	return nil
}

// rollback runs compensations newest-first on a context detached from the
// request's cancellation: an aborted HTTP request must not strand
// already-applied stock decrements.
func (s *saga) rollback(ctx context.Context, done []sagaStep, failed string) {
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensationTimeout)
	defer cancel()

	for i := len(done) - 1; i >= 0; i-- {
		step := done[i]
		if step.compensate == nil {
			continue
		}
		if err := step.compensate(cctx); err != nil {
			s.logger.Error("saga compensation failed",
				"failed_step", failed,
				"compensating", step.name,
				"error", err)
		}
	}
}
