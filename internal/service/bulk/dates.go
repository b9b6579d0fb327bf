package bulk

import (
	"fmt"
	"strings"

	"painel-social/internal/apperr"
	"painel-social/internal/domain"
)

// ParseDates parses the per-order yyyy-mm-dd dates typed by the operator.
// Blank values are left out so the order falls back to today.
func ParseDates(raw map[string]string) (domain.Dates, error) {
	out := make(domain.Dates, len(raw))
	for id, v := range raw {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		d, err := domain.ParseLocalDate(v)
		if err != nil {
			return nil, apperr.Validation(fmt.Sprintf("data inválida para o pedido %s", id))
		}
		out[id] = d
	}
	return out, nil
}
