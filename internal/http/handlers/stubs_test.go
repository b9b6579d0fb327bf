package handlers

import (
	"context"
	"sync"

	"painel-social/internal/domain"
	"painel-social/internal/service/bulk"
	"painel-social/internal/service/orderlist"
	"painel-social/internal/service/selection"
	"painel-social/internal/service/session"
)

type stubSessionUsecase struct {
	setFn   func(ctx context.Context, c session.Credentials) (*domain.Session, error)
	loadFn  func(ctx context.Context, id string) (session.State, error)
	clearFn func(ctx context.Context, id string) error
}

func (s *stubSessionUsecase) Set(ctx context.Context, c session.Credentials) (*domain.Session, error) {
	if s.setFn == nil {
		panic("Set not expected in this test")
	}
	return s.setFn(ctx, c)
}

func (s *stubSessionUsecase) Load(ctx context.Context, id string) (session.State, error) {
	if s.loadFn == nil {
		panic("Load not expected in this test")
	}
	return s.loadFn(ctx, id)
}

func (s *stubSessionUsecase) Clear(ctx context.Context, id string) error {
	if s.clearFn == nil {
		panic("Clear not expected in this test")
	}
	return s.clearFn(ctx, id)
}

type stubOrderView struct {
	buildFn func(ctx context.Context, f orderlist.Filter, selected selection.Set) (*orderlist.Result, error)
}

func (s *stubOrderView) Build(ctx context.Context, f orderlist.Filter, selected selection.Set) (*orderlist.Result, error) {
	if s.buildFn == nil {
		panic("Build not expected in this test")
	}
	return s.buildFn(ctx, f, selected)
}

type stubHistory struct {
	historyFn func(ctx context.Context, orderID string) ([]domain.StatusChange, error)
}

func (s *stubHistory) History(ctx context.Context, orderID string) ([]domain.StatusChange, error) {
	if s.historyFn == nil {
		panic("History not expected in this test")
	}
	return s.historyFn(ctx, orderID)
}

type stubBulk struct {
	mu      sync.Mutex
	reqs    []bulk.Request
	applyFn func(ctx context.Context, req bulk.Request) (*bulk.Report, error)
}

func (s *stubBulk) Apply(ctx context.Context, req bulk.Request) (*bulk.Report, error) {
	s.mu.Lock()
	s.reqs = append(s.reqs, req)
	s.mu.Unlock()
	if s.applyFn == nil {
		panic("Apply not expected in this test")
	}
	return s.applyFn(ctx, req)
}

type stubRuns struct {
	getFn func(ctx context.Context, id string) (*domain.BulkRun, error)
}

func (s *stubRuns) GetRun(ctx context.Context, id string) (*domain.BulkRun, error) {
	if s.getFn == nil {
		panic("GetRun not expected in this test")
	}
	return s.getFn(ctx, id)
}

type stubDeliverers struct {
	findCalls int
	listFn    func(ctx context.Context) ([]domain.Deliverer, error)
	findFn    func(ctx context.Context, id string) (*domain.Deliverer, error)
	createFn  func(ctx context.Context, name string) (*domain.Deliverer, error)
	renameFn  func(ctx context.Context, id, name string) (*domain.Deliverer, error)
	deleteFn  func(ctx context.Context, id string) error
}

func (s *stubDeliverers) List(ctx context.Context) ([]domain.Deliverer, error) {
	if s.listFn == nil {
		panic("List not expected in this test")
	}
	return s.listFn(ctx)
}

func (s *stubDeliverers) Find(ctx context.Context, id string) (*domain.Deliverer, error) {
	s.findCalls++
	if s.findFn == nil {
		panic("Find not expected in this test")
	}
	return s.findFn(ctx, id)
}

func (s *stubDeliverers) Create(ctx context.Context, name string) (*domain.Deliverer, error) {
	if s.createFn == nil {
		panic("Create not expected in this test")
	}
	return s.createFn(ctx, name)
}

func (s *stubDeliverers) Rename(ctx context.Context, id, name string) (*domain.Deliverer, error) {
	if s.renameFn == nil {
		panic("Rename not expected in this test")
	}
	return s.renameFn(ctx, id, name)
}

func (s *stubDeliverers) Delete(ctx context.Context, id string) error {
	if s.deleteFn == nil {
		panic("Delete not expected in this test")
	}
	return s.deleteFn(ctx, id)
}
