//go:generate mockgen -source=contracts.go -destination=bulk_mocks_test.go -package=bulk_test

package bulk

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"painel-social/internal/domain"
	"painel-social/internal/gateway/socialapi"
)

// Gateway is the part of the external API a bulk run writes to.
type Gateway interface {
	UpdateOrder(ctx context.Context, id string, body socialapi.UpdateOrderBody) error
	UploadOrderImage(ctx context.Context, id string, att domain.Attachment) (string, error)
}

// RunRepository stores bulk run summaries.
type RunRepository interface {
	SaveRun(ctx context.Context, run domain.BulkRun) error
}

// Publisher emits status changes of updated orders.
type Publisher interface {
	PublishStatusChanges(ctx context.Context, changes []domain.StatusChange) error
}

type outcomeCounter interface {
	WithLabelValues(lvs ...string) prometheus.Counter
}
