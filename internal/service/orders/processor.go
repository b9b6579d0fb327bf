package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"painel-social/internal/apperr"
	"painel-social/internal/domain"
	"painel-social/internal/logx"
)

// Event results counted by the processor.
const (
	ResultRecorded  = "recorded"
	ResultDuplicate = "duplicate"
	ResultSkipped   = "skipped"
	ResultFailed    = "failed"
)

type resultCounter interface {
	WithLabelValues(lvs ...string) prometheus.Counter
}

// Processor records order status changes in the timeline.
type Processor struct {
	repo    HistoryRepository
	results resultCounter
	logger  logx.Logger
	factory *actionFactory
}

// NewProcessor creates a Processor. results may be nil.
func NewProcessor(repo HistoryRepository, results resultCounter, logger logx.Logger) *Processor {
	if logger == nil {
		logger = logx.Nop()
	}
	p := &Processor{repo: repo, results: results, logger: logger}
	p.factory = newActionFactory(p.record, p.onListed, p.onDelivered, p.record)
	return p
}

// Handle validates and stores one status change. Malformed changes return
// an error matching apperr.ErrInvalid; unknown statuses are skipped.
func (p *Processor) Handle(ctx context.Context, c domain.StatusChange) error {
	c.OrderID = strings.TrimSpace(c.OrderID)
	if c.OrderID == "" {
		p.count(ResultSkipped)
		return fmt.Errorf("status change without order id: %w", apperr.ErrInvalid)
	}
	fn, ok := p.factory.get(c.Situacao.Kind)
	if !ok {
		p.count(ResultSkipped)
		p.logger.Warn("status change ignored",
			logx.String("order_id", c.OrderID),
			logx.String("situacao", c.Situacao.String()),
		)
		return nil
	}
	if err := fn(ctx, c); err != nil {
		if errors.Is(err, apperr.ErrInvalid) {
			p.count(ResultSkipped)
		} else {
			p.count(ResultFailed)
		}
		return err
	}
	return nil
}

// PublishStatusChanges records changes in process, for deployments without a broker.
func (p *Processor) PublishStatusChanges(ctx context.Context, changes []domain.StatusChange) error {
	var errs []error
	for _, c := range changes {
		if err := p.Handle(ctx, c); err != nil {
			errs = append(errs, fmt.Errorf("order %s: %w", c.OrderID, err))
		}
	}
	return errors.Join(errs...)
}

// History returns the timeline of one order, oldest first.
func (p *Processor) History(ctx context.Context, orderID string) ([]domain.StatusChange, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, apperr.ErrInvalid
	}
	out, err := p.repo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.StatusChange{}
	}
	return out, nil
}

func (p *Processor) onListed(ctx context.Context, c domain.StatusChange) error {
	if strings.TrimSpace(c.Situacao.DelivererName) == "" {
		return fmt.Errorf("listed order %s without deliverer: %w", c.OrderID, apperr.ErrInvalid)
	}
	return p.record(ctx, c)
}

func (p *Processor) onDelivered(ctx context.Context, c domain.StatusChange) error {
	if c.DataEntregue == nil {
		return fmt.Errorf("finalized order %s without delivery date: %w", c.OrderID, apperr.ErrInvalid)
	}
	return p.record(ctx, c)
}

func (p *Processor) record(ctx context.Context, c domain.StatusChange) error {
	inserted, err := p.repo.Append(ctx, c)
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	if !inserted {
		p.count(ResultDuplicate)
		p.logger.Debug("status change already recorded",
			logx.String("order_id", c.OrderID),
			logx.String("bulk_id", c.BulkID),
		)
		return nil
	}
	p.count(ResultRecorded)
	return nil
}

func (p *Processor) count(result string) {
	if p.results != nil {
		p.results.WithLabelValues(result).Inc()
	}
}
