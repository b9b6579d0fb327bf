package orders

import (
	"context"

	"painel-social/internal/domain"
)

type actionFunc func(context.Context, domain.StatusChange) error

type actionFactory struct {
	byKind map[domain.SituacaoKind]actionFunc
}

func newActionFactory(onWaiting, onListed, onDelivered, onCancelled actionFunc) *actionFactory {
	return &actionFactory{
		byKind: map[domain.SituacaoKind]actionFunc{
			domain.KindWaiting:   onWaiting,
			domain.KindListed:    onListed,
			domain.KindFinalized: onDelivered,
			domain.KindCancelled: onCancelled,
		},
	}
}

func (f *actionFactory) get(kind domain.SituacaoKind) (actionFunc, bool) {
	fn, ok := f.byKind[kind]
	return fn, ok && fn != nil
}
