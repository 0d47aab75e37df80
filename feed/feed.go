// Package feed delivers the live order feed as a one-way stream of complete
// snapshots. Subscribers always treat the latest snapshot as authoritative;
// there is no delta merging anywhere.
package feed

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"self-order-api/models"
)

// Hub refetches the full order list whenever a mutation is signalled (and on
// a fallback poll interval) and broadcasts it to every subscriber.
type Hub struct {
	fetch    func(ctx context.Context) ([]models.Order, error)
	interval time.Duration
	log      *slog.Logger

	notify chan struct{}

	mu   sync.Mutex
	subs map[chan []models.Order]struct{}
}

// New builds a hub around the given snapshot fetcher. interval <= 0 disables
// the fallback poll and leaves only explicit notifications.
func New(fetch func(ctx context.Context) ([]models.Order, error), interval time.Duration, log *slog.Logger) *Hub {
	return &Hub{
		fetch:    fetch,
		interval: interval,
		log:      log,
		notify:   make(chan struct{}, 1),
		subs:     make(map[chan []models.Order]struct{}),
	}
}

// Notify signals that the order list changed. Signals are coalesced: a
// refetch already in flight covers any number of pending notifications.
func (h *Hub) Notify() {
	select {
	case h.notify <- struct{}{}:
	default:
	}
}

// Subscribe registers a snapshot channel. The returned cancel func must be
// called when the consumer goes away; pending snapshots are dropped then.
func (h *Hub) Subscribe() (<-chan []models.Order, func()) {
	ch := make(chan []models.Order, 1)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
	}
	return ch, cancel
}

// Run serves the feed until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	var tick <-chan time.Time
	if h.interval > 0 {
		ticker := time.NewTicker(h.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-h.notify:
		case <-tick:
		}
		h.broadcast(ctx)
	}
}

func (h *Hub) broadcast(ctx context.Context) {
	orders, err := h.fetch(ctx)
	if err != nil {
		h.log.Warn("order feed refetch failed", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		// Replace whatever the subscriber has not consumed yet; a stale
		// snapshot is worthless once a fresher one exists.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- orders:
		default:
		}
	}
}
