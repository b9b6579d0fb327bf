package orderlist

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"painel-social/internal/domain"
	"painel-social/internal/logx"
	"painel-social/internal/service/selection"
)

const defaultLookupConcurrency = 8

type gateway interface {
	ListOrders(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
}

// Filter narrows the list. Empty Bairro and Situacao match everything.
type Filter struct {
	Servico  string
	Mes      int
	Ano      int
	Bairro   string
	Situacao domain.SituacaoKind
}

// Group is the orders of one neighborhood in render order.
type Group struct {
	Bairro string         `json:"bairro"`
	Orders []domain.Order `json:"orders"`
}

// Summary counts the visible orders.
type Summary struct {
	Total      int                         `json:"total"`
	BySituacao map[domain.SituacaoKind]int `json:"bySituacao"`
	ByBairro   map[string]int              `json:"byBairro"`
}

// Result is one rendering of the order list.
type Result struct {
	Groups         []Group         `json:"groups"`
	Orders         []domain.Order  `json:"orders"`
	VisibleIDs     []string        `json:"visibleIds"`
	Flags          selection.Flags `json:"flags"`
	HiddenSelected []string        `json:"hiddenSelected"`
	Summary        Summary         `json:"summary"`
}

// View builds grouped, filtered order lists.
type View struct {
	gw          gateway
	logger      logx.Logger
	concurrency int
}

func NewView(gw gateway, logger logx.Logger, concurrency int) *View {
	if logger == nil {
		logger = logx.Nop()
	}
	if concurrency <= 0 {
		concurrency = defaultLookupConcurrency
	}
	return &View{gw: gw, logger: logger, concurrency: concurrency}
}

// Build fetches the orders of f and renders them against the selected set.
func (v *View) Build(ctx context.Context, f Filter, selected selection.Set) (*Result, error) {
	orders, err := v.gw.ListOrders(ctx, domain.OrderFilter{Servico: f.Servico, Mes: f.Mes, Ano: f.Ano})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	bairros, err := v.resolveNeighborhoods(ctx, orders)
	if err != nil {
		return nil, err
	}

	groups := groupOrders(orders, bairros, f)
	res := &Result{
		Groups:     groups,
		Orders:     []domain.Order{},
		VisibleIDs: []string{},
		Summary: Summary{
			BySituacao: make(map[domain.SituacaoKind]int),
			ByBairro:   make(map[string]int),
		},
	}
	for _, g := range groups {
		for _, o := range g.Orders {
			res.Orders = append(res.Orders, o)
			res.VisibleIDs = append(res.VisibleIDs, o.ID)
			res.Summary.Total++
			res.Summary.BySituacao[o.Situacao.Kind]++
			res.Summary.ByBairro[g.Bairro]++
		}
	}
	res.Flags = selected.Flags(res.VisibleIDs)
	res.HiddenSelected = selected.Hidden(res.VisibleIDs)
	if res.HiddenSelected == nil {
		res.HiddenSelected = []string{}
	}
	return res, nil
}

// resolveNeighborhoods maps each distinct user id to its neighborhood.
// Users that cannot be fetched land in the "Outros" bucket.
func (v *View) resolveNeighborhoods(ctx context.Context, orders []domain.Order) (map[string]string, error) {
	var ids []string
	seen := make(map[string]struct{})
	for _, o := range orders {
		if o.UserID == "" {
			continue
		}
		if _, ok := seen[o.UserID]; ok {
			continue
		}
		seen[o.UserID] = struct{}{}
		ids = append(ids, o.UserID)
	}

	var mu sync.Mutex
	out := make(map[string]string, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.concurrency)
	for _, id := range ids {
		g.Go(func() error {
			u, err := v.gw.GetUser(gctx, id)
			bairro := domain.OutrosBairro
			switch {
			case err != nil:
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				v.logger.Warn("user lookup failed", logx.String("user_id", id), logx.Err(err))
			case u != nil:
				bairro = u.Neighborhood()
			}
			mu.Lock()
			out[id] = bairro
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("resolve users: %w", err)
	}
	return out, nil
}

func groupOrders(orders []domain.Order, bairros map[string]string, f Filter) []Group {
	var groups []Group
	index := make(map[string]int)

	for _, o := range orders {
		bairro, ok := bairros[o.UserID]
		if !ok {
			bairro = domain.OutrosBairro
		}
		if f.Bairro != "" && !strings.EqualFold(f.Bairro, bairro) {
			continue
		}
		if f.Situacao != "" && o.Situacao.Kind != f.Situacao {
			continue
		}
		i, ok := index[bairro]
		if !ok {
			i = len(groups)
			index[bairro] = i
			groups = append(groups, Group{Bairro: bairro})
		}
		groups[i].Orders = append(groups[i].Orders, o)
	}

	for i := range groups {
		sortGroup(groups[i].Orders)
	}
	if groups == nil {
		groups = []Group{}
	}
	return groups
}

// sortGroup puts waiting orders first, then by ascending request date.
func sortGroup(orders []domain.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		wi, wj := orders[i].Situacao.IsWaiting(), orders[j].Situacao.IsWaiting()
		if wi != wj {
			return wi
		}
		return orders[i].Data.Before(orders[j].Data)
	})
}
