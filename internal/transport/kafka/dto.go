package kafka

import (
	"strings"
	"time"

	"painel-social/internal/domain"
)

// StatusEventDTO is the wire form of domain.StatusChange on the status topic.
type StatusEventDTO struct {
	OrderID      string     `json:"order_id"`
	Situacao     string     `json:"situacao"`
	DataEntregue *time.Time `json:"data_entregue"`
	EmployeeID   string     `json:"employee_id"`
	BulkID       string     `json:"bulk_id"`
	ChangedAt    time.Time  `json:"changed_at"`
}

// ToDomain converts StatusEventDTO to domain.StatusChange
func ToDomain(dto StatusEventDTO) domain.StatusChange {
	return domain.StatusChange{
		OrderID:      strings.TrimSpace(dto.OrderID),
		Situacao:     domain.ParseSituacao(dto.Situacao),
		DataEntregue: dto.DataEntregue,
		EmployeeID:   strings.TrimSpace(dto.EmployeeID),
		BulkID:       strings.TrimSpace(dto.BulkID),
		ChangedAt:    dto.ChangedAt,
	}
}

// FromDomain converts domain.StatusChange to its wire form.
func FromDomain(c domain.StatusChange) StatusEventDTO {
	return StatusEventDTO{
		OrderID:      c.OrderID,
		Situacao:     c.Situacao.String(),
		DataEntregue: c.DataEntregue,
		EmployeeID:   c.EmployeeID,
		BulkID:       c.BulkID,
		ChangedAt:    c.ChangedAt.UTC(),
	}
}
