package handlers

import (
	"strings"

	"painel-social/internal/domain"
	"painel-social/internal/service/bulk"
	"painel-social/internal/service/session"
)

func (r loginRequest) toModel() session.Credentials {
	return session.Credentials{Login: r.Login, Password: r.Password}
}

// toAction builds the bulk action without its deliverer. An empty kind yields
// nil and is rejected by the bulk service with its own message.
func (r bulkRequest) toAction(att *domain.Attachment) (domain.BulkAction, error) {
	dates, err := bulk.ParseDates(r.Dates)
	if err != nil {
		return nil, err
	}
	switch domain.BulkActionKind(strings.TrimSpace(r.Action)) {
	case "":
		return nil, nil
	case domain.ActionFinalize:
		return domain.FinalizeAction{Dates: dates, Attachment: att}, nil
	case domain.ActionInsertIntoList:
		return domain.InsertIntoListAction{Dates: dates}, nil
	case domain.ActionCancel:
		return domain.CancelAction{Dates: dates}, nil
	default:
		return nil, errUnknownAction
	}
}

func runToResponse(run domain.BulkRun) bulkRunDTO {
	items := make([]bulkRunItemDTO, 0, len(run.Items))
	for _, it := range run.Items {
		items = append(items, bulkRunItemDTO{OrderID: it.OrderID, Outcome: it.Outcome, Reason: it.Reason})
	}
	return bulkRunDTO{
		ID:         run.ID,
		Action:     run.Action,
		EmployeeID: run.EmployeeID,
		Target:     run.Target,
		ImageURL:   run.ImageURL,
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
		Items:      items,
	}
}

func historyToResponse(orderID string, list []domain.StatusChange) historyResponse {
	out := make([]historyEntryDTO, 0, len(list))
	for _, c := range list {
		out = append(out, historyEntryDTO{
			Situacao:     c.Situacao,
			DataEntregue: c.DataEntregue,
			EmployeeID:   c.EmployeeID,
			BulkID:       c.BulkID,
			ChangedAt:    c.ChangedAt,
		})
	}
	return historyResponse{OrderID: orderID, Entries: out}
}
