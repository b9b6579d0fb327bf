package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"painel-social/internal/apperr"
	"painel-social/internal/domain"
	"painel-social/internal/gateway/socialapi"
	"painel-social/internal/logx"
)

const defaultTTL = 12 * time.Hour

type repository interface {
	Create(ctx context.Context, s domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

type loginGateway interface {
	Login(ctx context.Context, login, password string) (*socialapi.LoginResult, error)
}

// Status is the lifecycle state of a client session.
type Status string

// Session states. Loading is the in-flight Load call itself.
const (
	Anonymous     Status = "anonymous"
	Authenticated Status = "authenticated"
)

// State is what Load reports for a session id.
type State struct {
	Status  Status          `json:"status"`
	Session *domain.Session `json:"-"`
}

// Credentials are typed by the operator on the login screen.
type Credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Service owns the operator sessions of the panel.
type Service struct {
	repo   repository
	gw     loginGateway
	ttl    time.Duration
	logger logx.Logger
	now    func() time.Time
}

func NewService(repo repository, gw loginGateway, ttl time.Duration, logger logx.Logger) *Service {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{repo: repo, gw: gw, ttl: ttl, logger: logger, now: time.Now}
}

// Set logs in through the external API and stores a new session.
func (s *Service) Set(ctx context.Context, c Credentials) (*domain.Session, error) {
	login := strings.TrimSpace(c.Login)
	if login == "" || c.Password == "" {
		return nil, apperr.Validation("informe login e senha")
	}
	res, err := s.gw.Login(ctx, login, c.Password)
	if err != nil {
		s.logger.Warn("login failed", logx.String("login", login), logx.Err(err))
		return nil, err
	}

	now := s.now()
	sess := domain.Session{
		ID:        uuid.NewString(),
		Token:     res.Token,
		Employee:  res.Employee,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	s.logger.Info("session started", logx.String("employee_id", sess.Employee.ID))
	return &sess, nil
}

// Load reports the state of id. Expired sessions are removed.
func (s *Service) Load(ctx context.Context, id string) (State, error) {
	if _, err := uuid.Parse(id); err != nil {
		return State{Status: Anonymous}, nil
	}
	sess, err := s.repo.Get(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) || (err == nil && sess == nil) {
		return State{Status: Anonymous}, nil
	}
	if err != nil {
		return State{Status: Anonymous}, fmt.Errorf("load session: %w", err)
	}
	if sess.Expired(s.now()) {
		if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, apperr.ErrNotFound) {
			s.logger.Warn("expired session not deleted", logx.Err(err))
		}
		return State{Status: Anonymous}, nil
	}
	return State{Status: Authenticated, Session: sess}, nil
}

// Clear ends the session. Unknown ids are not an error.
func (s *Service) Clear(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}
	if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
