package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"painel-social/internal/apperr"
	"painel-social/internal/domain"
	"painel-social/internal/gateway/socialapi"
	"painel-social/internal/logx"
	"painel-social/internal/service/session"
)

// SessionHeader carries the operator session id on every authenticated call.
const SessionHeader = "X-Session-ID"

const msgBadLogin = "login ou senha inválidos"

type sessionCtxKey struct{}

func withSession(ctx context.Context, s *domain.Session) context.Context {
	ctx = context.WithValue(ctx, sessionCtxKey{}, s)
	return socialapi.WithToken(ctx, s.Token)
}

func sessionFrom(ctx context.Context) (*domain.Session, bool) {
	s, ok := ctx.Value(sessionCtxKey{}).(*domain.Session)
	return s, ok && s != nil
}

// SessionHandler serves the operator session endpoints and guards the rest of the API.
type SessionHandler struct {
	uc         sessionUsecase
	selections selectionEvicter
	logger     logx.Logger
}

// NewSessionHandler wires a session usecase into HTTP handlers. Selections of
// sessions that end or turn out expired are dropped from selections, which may be nil.
func NewSessionHandler(uc sessionUsecase, selections selectionEvicter, logger logx.Logger) *SessionHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &SessionHandler{uc: uc, selections: selections, logger: logger}
}

// Login handles POST /api/session.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	s, err := h.uc.Set(r.Context(), req.toModel())
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusCreated, sessionResponse{
			Status:    session.Authenticated,
			SessionID: s.ID,
			Employee:  &s.Employee,
			ExpiresAt: &s.ExpiresAt,
		})
	case errors.Is(err, apperr.ErrUnauthorized), errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusUnauthorized, msgBadLogin)
	default:
		writeErr(h.logger, w, r, err)
	}
}

// Get handles GET /api/session. Unknown or expired sessions report anonymous.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	st, err := h.uc.Load(r.Context(), sessionID(r))
	if err != nil {
		writeErr(h.logger, w, r, err)
		return
	}
	if st.Session == nil {
		h.evict(sessionID(r))
	}
	resp := sessionResponse{Status: st.Status}
	if st.Session != nil {
		resp.SessionID = st.Session.ID
		resp.Employee = &st.Session.Employee
		resp.ExpiresAt = &st.Session.ExpiresAt
	}
	writeJSON(h.logger, w, r, http.StatusOK, resp)
}

// Logout handles DELETE /api/session.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	if err := h.uc.Clear(r.Context(), id); err != nil {
		writeErr(h.logger, w, r, err)
		return
	}
	h.evict(id)
	w.WriteHeader(http.StatusNoContent)
}

// Require rejects requests without an authenticated session and puts the
// session with its API token into the request context.
func (h *SessionHandler) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st, err := h.uc.Load(r.Context(), sessionID(r))
		if err != nil {
			writeErr(h.logger, w, r, err)
			return
		}
		if st.Status != session.Authenticated || st.Session == nil {
			h.evict(sessionID(r))
			writeError(h.logger, w, r, http.StatusUnauthorized, msgUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), st.Session)))
	})
}

func (h *SessionHandler) evict(id string) {
	if h.selections == nil || id == "" {
		return
	}
	h.selections.Clear(id)
}

func sessionID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(SessionHeader))
}
