package handlers

import (
	"context"

	"painel-social/internal/domain"
	"painel-social/internal/service/bulk"
	"painel-social/internal/service/deliverer"
	"painel-social/internal/service/orderlist"
	"painel-social/internal/service/orders"
	"painel-social/internal/service/registration"
	"painel-social/internal/service/selection"
	"painel-social/internal/service/session"
)

type sessionUsecase interface {
	Set(ctx context.Context, c session.Credentials) (*domain.Session, error)
	Load(ctx context.Context, id string) (session.State, error)
	Clear(ctx context.Context, id string) error
}

type selectionEvicter interface {
	Clear(session string)
}

type orderView interface {
	Build(ctx context.Context, f orderlist.Filter, selected selection.Set) (*orderlist.Result, error)
}

type historyReader interface {
	History(ctx context.Context, orderID string) ([]domain.StatusChange, error)
}

type bulkUsecase interface {
	Apply(ctx context.Context, req bulk.Request) (*bulk.Report, error)
}

type bulkRunReader interface {
	GetRun(ctx context.Context, id string) (*domain.BulkRun, error)
}

type selectionStore interface {
	Get(session string) selection.Set
	Toggle(session, id string) selection.Set
	SelectAllVisible(session string, visible []string) selection.Set
	Prune(session string, visible []string) selection.Set
	Replace(session string, ids []string) selection.Set
	Clear(session string)
}

type delivererUsecase interface {
	List(ctx context.Context) ([]domain.Deliverer, error)
	Find(ctx context.Context, id string) (*domain.Deliverer, error)
	Create(ctx context.Context, name string) (*domain.Deliverer, error)
	Rename(ctx context.Context, id, name string) (*domain.Deliverer, error)
	Delete(ctx context.Context, id string) error
}

type registrationUsecase interface {
	Step1(c registration.Common) (registration.Plan, error)
	Submit(ctx context.Context, f registration.Form) (*domain.User, error)
}

var (
	_ sessionUsecase      = (*session.Service)(nil)
	_ orderView           = (*orderlist.View)(nil)
	_ historyReader       = (*orders.Processor)(nil)
	_ bulkUsecase         = (*bulk.Service)(nil)
	_ selectionStore      = (*selection.Store)(nil)
	_ delivererUsecase    = (*deliverer.Service)(nil)
	_ registrationUsecase = (*registration.Service)(nil)
)
