package handlers

import (
	"net/http"

	"painel-social/internal/logx"
	"painel-social/internal/service/registration"
)

// RegistrationHandler serves the two-step registration form.
type RegistrationHandler struct {
	uc     registrationUsecase
	logger logx.Logger
}

// NewRegistrationHandler wires a registration usecase into HTTP handlers.
func NewRegistrationHandler(uc registrationUsecase, logger logx.Logger) *RegistrationHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &RegistrationHandler{uc: uc, logger: logger}
}

// Step1 handles POST /api/registrations/step1 and returns which sections step 2 needs.
func (h *RegistrationHandler) Step1(w http.ResponseWriter, r *http.Request) {
	var req registration.Common
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	plan, err := h.uc.Step1(req)
	if err != nil {
		writeErr(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, plan)
}

// Submit handles POST /api/registrations.
func (h *RegistrationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req registration.Form
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	u, err := h.uc.Submit(r.Context(), req)
	if err != nil {
		writeErr(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, u)
}
