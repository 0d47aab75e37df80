// Package service is the operation set exposed to the presentation layer,
// independent of which store implementation is pinned underneath.
package service

import (
	"log/slog"

	"self-order-api/store"
)

// Notifier is poked after every order mutation so the live feed can push a
// fresh snapshot. *feed.Hub satisfies it.
type Notifier interface {
	Notify()
}

type Service struct {
	store    store.Store
	log      *slog.Logger
	notifier Notifier
}

// New wires the facade to the pinned store. notifier may be nil.
func New(st store.Store, log *slog.Logger, notifier Notifier) *Service {
	return &Service{store: st, log: log, notifier: notifier}
}

func (s *Service) notifyOrders() {
	if s.notifier != nil {
		s.notifier.Notify()
	}
}
