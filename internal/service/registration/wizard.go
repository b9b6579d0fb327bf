package registration

import (
	"context"
	"errors"

	"painel-social/internal/domain"
)

type wizardStep string

const (
	stepCommon   wizardStep = "step1"
	stepSections wizardStep = "step2"
	stepDone     wizardStep = "done"
)

var errWrongStep = errors.New("transition not allowed from current step")

type createFunc func(context.Context, Form) (*domain.User, error)

// wizard drives the two-step form. Reaching stepDone resets the form.
type wizard struct {
	val    *Validator
	create createFunc
	at     wizardStep
	form   Form
	plan   Plan
	user   *domain.User
}

func newWizard(val *Validator, create createFunc) *wizard {
	return &wizard{val: val, create: create, at: stepCommon}
}

// next leaves step 1. Office-only selections submit immediately.
// A finished wizard accepts next as the start of a new form.
func (w *wizard) next(ctx context.Context, f Form) (wizardStep, error) {
	if w.at != stepCommon && w.at != stepDone {
		return w.at, errWrongStep
	}
	if err := w.val.ValidateStep1(f.Common); err != nil {
		return w.at, err
	}
	w.form = f
	w.plan = PlanFor(f.Classes)
	if w.plan.SkipStep2 {
		return w.finish(ctx)
	}
	w.at = stepSections
	return w.at, nil
}

// back returns to step 1 keeping the typed fields.
func (w *wizard) back() (wizardStep, error) {
	if w.at != stepSections {
		return w.at, errWrongStep
	}
	w.at = stepCommon
	return w.at, nil
}

// submit completes step 2 with the class-dependent sections of f.
func (w *wizard) submit(ctx context.Context, f Form) (wizardStep, error) {
	if w.at != stepSections {
		return w.at, errWrongStep
	}
	f.Common = w.form.Common
	if err := w.val.ValidateStep2(f); err != nil {
		return w.at, err
	}
	w.form = f
	return w.finish(ctx)
}

// cancel discards the form and goes back to step 1.
func (w *wizard) cancel() wizardStep {
	w.reset()
	return w.at
}

func (w *wizard) finish(ctx context.Context) (wizardStep, error) {
	u, err := w.create(ctx, w.form)
	if err != nil {
		return w.at, err
	}
	w.reset()
	w.user = u
	w.at = stepDone
	return w.at, nil
}

func (w *wizard) reset() {
	w.at = stepCommon
	w.form = Form{}
	w.plan = Plan{}
	w.user = nil
}
