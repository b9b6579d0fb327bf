package bulk

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"painel-social/internal/apperr"
	"painel-social/internal/domain"
	"painel-social/internal/gateway/socialapi"
	"painel-social/internal/logx"
	"painel-social/internal/telemetry"
)

// Operator-facing guard messages.
const (
	MsgNoSelection = "nenhum pedido selecionado"
	MsgNoDeliverer = "selecione um entregador"
	MsgNoAction    = "selecione uma ação"
)

// ErrUploadFailed aborts a Finalize run before any order is touched.
var ErrUploadFailed = errors.New("attachment upload failed")

// Request is one bulk transition asked by an operator.
type Request struct {
	Employee domain.Employee
	OrderIDs []string
	Action   domain.BulkAction
}

// Failure is an order the API refused to update.
type Failure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// Report lists the outcome of every selected order, in selection order.
type Report struct {
	BulkID  string                `json:"bulkId"`
	Action  domain.BulkActionKind `json:"action"`
	Updated []domain.OrderUpdate  `json:"updated"`
	Failed  []Failure             `json:"failed"`
}

// FailedIDs returns the ids of Failed.
func (r *Report) FailedIDs() []string {
	out := make([]string, 0, len(r.Failed))
	for _, f := range r.Failed {
		out = append(out, f.ID)
	}
	return out
}

// Options tune a Service.
type Options struct {
	Concurrency int
	// CancelStampsDate writes dataEntregue on cancelled orders too.
	CancelStampsDate bool
	Location         *time.Location
}

// Service applies bulk status transitions.
type Service struct {
	gw       Gateway
	runs     RunRepository
	pub      Publisher
	outcomes outcomeCounter
	logger   logx.Logger
	opts     Options
	now      func() time.Time
	newID    func() string
}

// NewService wires a Service. runs, pub and outcomes may be nil.
func NewService(gw Gateway, runs RunRepository, pub Publisher, outcomes outcomeCounter, logger logx.Logger, opts Options) *Service {
	if logger == nil {
		logger = logx.Nop()
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Service{
		gw:       gw,
		runs:     runs,
		pub:      pub,
		outcomes: outcomes,
		logger:   logger,
		opts:     opts,
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
}

// WithClock replaces the clock used for default dates and timestamps.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Apply validates req and updates every selected order. Per-order API
// failures are reported in Report.Failed; an error is returned only when
// nothing was attempted.
func (s *Service) Apply(ctx context.Context, req Request) (rep *Report, err error) {
	ids := dedupe(req.OrderIDs)
	if err := s.guard(ids, req.Action); err != nil {
		s.logger.Warn("bulk action rejected",
			logx.String("employee_id", req.Employee.ID),
			logx.Int("orders", len(ids)),
			logx.String("reason", apperr.Message(err)),
		)
		return nil, err
	}

	action := req.Action
	bulkID := s.newID()
	started := s.now()
	ctx, span := telemetry.StartSpan(ctx, "bulk.Apply",
		attribute.String("bulk.id", bulkID),
		attribute.String("bulk.action", string(action.Kind())),
		attribute.Int("bulk.orders", len(ids)),
	)
	defer func() { telemetry.End(span, err) }()

	log := s.logger.With(
		logx.String("bulk_id", bulkID),
		logx.String("action", string(action.Kind())),
		logx.String("employee_id", req.Employee.ID),
	)

	imageURL, err := s.uploadAttachment(ctx, ids[0], action)
	if err != nil {
		log.Error("bulk attachment upload failed", logx.String("order_id", ids[0]), logx.Err(err))
		s.count(action.Kind(), domain.OutcomeAborted, len(ids))
		s.saveRun(ctx, log, s.run(bulkID, req, started, "", abortedItems(ids, err)))
		return nil, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	target := action.Target()
	today := domain.DateOf(started.In(s.opts.Location))
	updates := make([]domain.OrderUpdate, len(ids))
	for i, id := range ids {
		updates[i] = domain.OrderUpdate{ID: id, Situacao: target, ImageURL: imageURL}
		if s.stampsDate(action) {
			d, ok := action.DateFor(id)
			if !ok || d.IsZero() {
				d = today
			}
			at := d.Midnight(s.opts.Location)
			updates[i].DataEntregue = &at
		}
	}

	errs := make([]error, len(ids))
	g := new(errgroup.Group)
	g.SetLimit(s.opts.Concurrency)
	for i := range ids {
		u := updates[i]
		g.Go(func() error {
			errs[i] = s.gw.UpdateOrder(ctx, u.ID, socialapi.UpdateOrderBody{
				Usuario:      req.Employee.ID,
				Situacao:     u.Situacao,
				DataEntregue: u.DataEntregue,
				ImageURL:     u.ImageURL,
			})
			return nil
		})
	}
	_ = g.Wait()

	rep = &Report{
		BulkID:  bulkID,
		Action:  action.Kind(),
		Updated: make([]domain.OrderUpdate, 0, len(ids)),
		Failed:  []Failure{},
	}
	items := make([]domain.BulkRunItem, len(ids))
	for i, id := range ids {
		if errs[i] != nil {
			log.Warn("bulk order update failed", logx.String("order_id", id), logx.Err(errs[i]))
			rep.Failed = append(rep.Failed, Failure{ID: id, Reason: errs[i].Error()})
			items[i] = domain.BulkRunItem{OrderID: id, Outcome: domain.OutcomeFailed, Reason: errs[i].Error()}
			continue
		}
		rep.Updated = append(rep.Updated, updates[i])
		items[i] = domain.BulkRunItem{OrderID: id, Outcome: domain.OutcomeUpdated}
	}
	s.count(action.Kind(), domain.OutcomeUpdated, len(rep.Updated))
	s.count(action.Kind(), domain.OutcomeFailed, len(rep.Failed))
	span.SetAttributes(
		attribute.Int("bulk.updated", len(rep.Updated)),
		attribute.Int("bulk.failed", len(rep.Failed)),
	)

	s.saveRun(ctx, log, s.run(bulkID, req, started, imageURL, items))
	s.publish(ctx, log, bulkID, req.Employee.ID, rep.Updated)

	log.Info("bulk action applied",
		logx.Int("updated", len(rep.Updated)),
		logx.Int("failed", len(rep.Failed)),
	)
	return rep, nil
}

func (s *Service) guard(ids []string, action domain.BulkAction) error {
	if len(ids) == 0 {
		return apperr.Validation(MsgNoSelection)
	}
	switch a := action.(type) {
	case nil:
		return apperr.Validation(MsgNoAction)
	case domain.InsertIntoListAction:
		if a.Deliverer == nil || strings.TrimSpace(a.Deliverer.Name) == "" {
			return apperr.Validation(MsgNoDeliverer)
		}
	case *domain.InsertIntoListAction:
		if a == nil || a.Deliverer == nil || strings.TrimSpace(a.Deliverer.Name) == "" {
			return apperr.Validation(MsgNoDeliverer)
		}
	}
	return nil
}

func (s *Service) stampsDate(action domain.BulkAction) bool {
	if action.Kind() == domain.ActionCancel {
		return s.opts.CancelStampsDate
	}
	return true
}

// uploadAttachment stores the Finalize attachment against the first order.
func (s *Service) uploadAttachment(ctx context.Context, firstID string, action domain.BulkAction) (string, error) {
	var att *domain.Attachment
	switch a := action.(type) {
	case domain.FinalizeAction:
		att = a.Attachment
	case *domain.FinalizeAction:
		if a != nil {
			att = a.Attachment
		}
	}
	if att == nil || len(att.Data) == 0 {
		return "", nil
	}
	return s.gw.UploadOrderImage(ctx, firstID, *att)
}

func (s *Service) run(id string, req Request, started time.Time, imageURL string, items []domain.BulkRunItem) domain.BulkRun {
	return domain.BulkRun{
		ID:         id,
		Action:     req.Action.Kind(),
		EmployeeID: req.Employee.ID,
		Target:     req.Action.Target().String(),
		ImageURL:   imageURL,
		StartedAt:  started,
		FinishedAt: s.now(),
		Items:      items,
	}
}

func (s *Service) saveRun(ctx context.Context, log logx.Logger, run domain.BulkRun) {
	if s.runs == nil {
		return
	}
	if err := s.runs.SaveRun(context.WithoutCancel(ctx), run); err != nil {
		log.Error("bulk run not persisted", logx.Err(err))
	}
}

func (s *Service) publish(ctx context.Context, log logx.Logger, bulkID, employeeID string, updated []domain.OrderUpdate) {
	if s.pub == nil || len(updated) == 0 {
		return
	}
	at := s.now()
	changes := make([]domain.StatusChange, 0, len(updated))
	for _, u := range updated {
		changes = append(changes, domain.StatusChange{
			OrderID:      u.ID,
			Situacao:     u.Situacao,
			DataEntregue: u.DataEntregue,
			EmployeeID:   employeeID,
			BulkID:       bulkID,
			ChangedAt:    at,
		})
	}
	if err := s.pub.PublishStatusChanges(context.WithoutCancel(ctx), changes); err != nil {
		log.Error("status changes not published", logx.Int("count", len(changes)), logx.Err(err))
	}
}

func (s *Service) count(kind domain.BulkActionKind, outcome domain.BulkOutcome, n int) {
	if s.outcomes == nil || n == 0 {
		return
	}
	s.outcomes.WithLabelValues(string(kind), string(outcome)).Add(float64(n))
}

func abortedItems(ids []string, err error) []domain.BulkRunItem {
	items := make([]domain.BulkRunItem, len(ids))
	for i, id := range ids {
		items[i] = domain.BulkRunItem{OrderID: id, Outcome: domain.OutcomeAborted, Reason: err.Error()}
	}
	return items
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
