package store

import (
	"context"
	"log/slog"
	"sync"
)

// Selector decides once per process which store implementation answers all
// calls. The first Pick probes the remote store with a trivial read; success
// pins remote, any failure pins the mock. The choice is never revisited,
// even if the remote would succeed later — re-probing mid-session is a
// complexity trade-off this system deliberately does not make.
type Selector struct {
	openRemote func() (*Remote, error) // nil when the backend is not configured
	fallback   Store
	log        *slog.Logger

	once   sync.Once
	pinned Store
}

func NewSelector(openRemote func() (*Remote, error), fallback Store, log *slog.Logger) *Selector {
	return &Selector{openRemote: openRemote, fallback: fallback, log: log}
}

// Pick returns the pinned store, probing on the first call only.
func (s *Selector) Pick(ctx context.Context) Store {
	s.once.Do(func() {
		s.pinned = s.probe(ctx)
	})
	return s.pinned
}

func (s *Selector) probe(ctx context.Context) Store {
	if s.openRemote == nil {
		// Missing configuration is not an error: run on the mock.
		s.log.Info("remote store not configured, using mock store")
		return s.fallback
	}

	remote, err := s.openRemote()
	if err != nil {
		s.log.Warn("remote store unavailable, pinned to mock store", "error", err)
		return s.fallback
	}
	if err := remote.Ping(ctx); err != nil {
		s.log.Warn("remote store probe failed, pinned to mock store", "error", err)
		return s.fallback
	}

	s.log.Info("remote store probe succeeded, pinned to remote store")
	return remote
}
