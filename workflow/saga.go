package workflow

import (
	"context"
	"fmt"

	"github.com/miharina-tech/miharina_backend/config"
	"github.com/sirupsen/logrus"
)

// Step is one unit of a saga: Run does the work, Compensate undoes it when
// a later step fails. Compensate may be nil for steps with nothing to undo.
type Step struct {
	Name       string
	Run        func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Saga runs steps in order; on failure it compensates the already-completed
// steps in reverse order and returns the original error. Compensation
// failures are logged, never returned — the first error is the one the
// caller needs.
type Saga struct {
	Name  string
	Steps []Step
}

func (s *Saga) Execute(ctx context.Context) error {
	logger := config.GetLogger()

	var done []Step
	for _, step := range s.Steps {
		if err := step.Run(ctx); err != nil {
			s.compensate(ctx, logger, done)
			return fmt.Errorf("%s: %s: %w", s.Name, step.Name, err)
		}
		done = append(done, step)
	}
	return nil
}

func (s *Saga) compensate(ctx context.Context, logger *logrus.Logger, done []Step) {
	for i := len(done) - 1; i >= 0; i-- {
		step := done[i]
		if step.Compensate == nil {
			continue
		}
		if err := step.Compensate(ctx); err != nil {
			config.LogError(logger, "workflow", "Saga.Execute",
				"compensate "+s.Name+"/"+step.Name, nil, err)
		}
	}
}
