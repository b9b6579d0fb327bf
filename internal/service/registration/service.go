package registration

import (
	"context"
	"fmt"

	"painel-social/internal/domain"
	"painel-social/internal/logx"
)

type gateway interface {
	CreateUser(ctx context.Context, u domain.User) (*domain.User, error)
}

// Service validates and submits registrations.
type Service struct {
	gw     gateway
	val    *Validator
	logger logx.Logger
}

func NewService(gw gateway, logger logx.Logger) *Service {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{gw: gw, val: NewValidator(), logger: logger}
}

// Step1 validates the common fields and returns the step-2 layout.
func (s *Service) Step1(c Common) (Plan, error) {
	if err := s.val.ValidateStep1(c); err != nil {
		return Plan{}, err
	}
	return PlanFor(c.Classes), nil
}

// Submit walks f through both form steps and creates the user. Invalid forms
// never reach the API.
func (s *Service) Submit(ctx context.Context, f Form) (*domain.User, error) {
	w := newWizard(s.val, s.create)
	at, err := w.next(ctx, f)
	if err == nil && at == stepSections {
		_, err = w.submit(ctx, f)
	}
	if err != nil {
		return nil, err
	}
	return w.user, nil
}

func (s *Service) create(ctx context.Context, f Form) (*domain.User, error) {
	u, err := s.gw.CreateUser(ctx, f.ToUser())
	if err != nil {
		s.logger.Error("registration submit failed", logx.Err(err))
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.logger.Info("registration submitted",
		logx.String("user_id", u.ID),
		logx.Int("classes", len(u.Classes)),
	)
	return u, nil
}
