package handlers

import (
	"time"

	"painel-social/internal/domain"
	"painel-social/internal/service/selection"
	"painel-social/internal/service/session"
)

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Status    session.Status   `json:"status"`
	SessionID string           `json:"sessionId,omitempty"`
	Employee  *domain.Employee `json:"employee,omitempty"`
	ExpiresAt *time.Time       `json:"expiresAt,omitempty"`
}

type selectionResponse struct {
	IDs   []string         `json:"ids"`
	Flags *selection.Flags `json:"flags,omitempty"`
}

type toggleRequest struct {
	ID string `json:"id"`
}

type visibleRequest struct {
	VisibleIDs []string `json:"visibleIds"`
}

type bulkRequest struct {
	Action     string            `json:"action"`
	DeliveryID string            `json:"deliveryId,omitempty"`
	Dates      map[string]string `json:"dates,omitempty"`
}

type bulkRunItemDTO struct {
	OrderID string             `json:"orderId"`
	Outcome domain.BulkOutcome `json:"outcome"`
	Reason  string             `json:"reason,omitempty"`
}

type bulkRunDTO struct {
	ID         string                `json:"id"`
	Action     domain.BulkActionKind `json:"action"`
	EmployeeID string                `json:"employeeId"`
	Target     string                `json:"target"`
	ImageURL   string                `json:"imageUrl,omitempty"`
	StartedAt  time.Time             `json:"startedAt"`
	FinishedAt time.Time             `json:"finishedAt"`
	Items      []bulkRunItemDTO      `json:"items"`
}

type historyEntryDTO struct {
	Situacao     domain.Situacao `json:"situacao"`
	DataEntregue *time.Time      `json:"dataEntregue"`
	EmployeeID   string          `json:"employeeId,omitempty"`
	BulkID       string          `json:"bulkId,omitempty"`
	ChangedAt    time.Time       `json:"changedAt"`
}

type historyResponse struct {
	OrderID string            `json:"orderId"`
	Entries []historyEntryDTO `json:"entries"`
}

type delivererRequest struct {
	Name string `json:"name"`
}
