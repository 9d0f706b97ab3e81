package service

import "go.uber.org/multierr"

// rollback collects undo steps of a multi-step change. run replays them in
// reverse order and keeps going past failures.
type rollback struct {
	steps []func() error
}

func (r *rollback) push(step func() error) {
	r.steps = append(r.steps, step)
}

func (r *rollback) run() error {
	var errs error
	for i := len(r.steps) - 1; i >= 0; i-- {
		errs = multierr.Append(errs, r.steps[i]())
	}
	r.steps = nil
	return errs
}
