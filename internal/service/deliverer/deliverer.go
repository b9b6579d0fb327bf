package deliverer

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"painel-social/internal/apperr"
	"painel-social/internal/domain"
)

const maxNameLen = 80

// Operator-facing validation messages.
const (
	MsgEmptyName = "informe o nome do entregador"
	MsgLongName  = "nome do entregador muito longo"
)

// Service manages the deliverers orders can be listed to.
type Service struct {
	gw               delivererGateway
	operationTimeout time.Duration
}

// NewService creates a deliverer Service. Non-positive timeouts default to 5s.
func NewService(gw delivererGateway, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Service{gw: gw, operationTimeout: timeout}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// normalizeName trims and checks a deliverer name.
func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperr.Validation(MsgEmptyName)
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "", apperr.Validation(MsgLongName)
	}
	return name, nil
}

// List returns every deliverer.
func (s *Service) List(ctx context.Context) ([]domain.Deliverer, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	out, err := s.gw.ListDeliverers(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Deliverer{}
	}
	return out, nil
}

// Find returns the deliverer with the given id.
func (s *Service) Find(ctx context.Context, id string) (*domain.Deliverer, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperr.ErrInvalid
	}
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].IDDelivery == id {
			return &all[i], nil
		}
	}
	return nil, apperr.ErrNotFound
}

// Create adds a deliverer. Names are unique ignoring case.
func (s *Service) Create(ctx context.Context, name string) (*domain.Deliverer, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, "", name); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.gw.CreateDeliverer(ctx, name)
}

// Rename changes the display name of a deliverer.
func (s *Service) Rename(ctx context.Context, id, name string) (*domain.Deliverer, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperr.ErrInvalid
	}
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, id, name); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.gw.UpdateDeliverer(ctx, id, name)
}

// Delete removes a deliverer.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.gw.DeleteDeliverer(ctx, id)
}

func (s *Service) ensureUnique(ctx context.Context, selfID, name string) error {
	all, err := s.List(ctx)
	if err != nil {
		return err
	}
	for _, d := range all {
		if d.IDDelivery != selfID && strings.EqualFold(strings.TrimSpace(d.Name), name) {
			return apperr.ErrConflict
		}
	}
	return nil
}
