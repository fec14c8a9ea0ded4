package service

import (
	"context"
	"sync"
	"time"

	"github.com/Bayu5aputra/personal-profile/internal/domain/repository"
	"github.com/Bayu5aputra/personal-profile/pkg/logger"
)

// probeTimeout bounds a single probe, independent of the request that triggered it.
const probeTimeout = 10 * time.Second

// ConnectionStatus memoizes whether the primary store is reachable. The first call to
// Connected probes; later calls reuse the result until Refresh is called.
type ConnectionStatus struct {
	prober repository.ConnectionProber

	mu        sync.Mutex
	tested    bool
	connected bool
	checkedAt time.Time
}

func NewConnectionStatus(prober repository.ConnectionProber) *ConnectionStatus {
	return &ConnectionStatus{prober: prober}
}

// NewKnownConnectionStatus returns a status that is already decided, without a prober.
func NewKnownConnectionStatus(connected bool) *ConnectionStatus {
	return &ConnectionStatus{
		tested:    true,
		connected: connected,
		checkedAt: time.Now(),
	}
}

func (s *ConnectionStatus) Connected(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.tested {
		s.probeLocked(ctx)
	}
	return s.connected
}

// Refresh re-runs the probe and returns the new result.
func (s *ConnectionStatus) Refresh(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.probeLocked(ctx)
	return s.connected
}

// Snapshot returns the memoized state without probing.
func (s *ConnectionStatus) Snapshot() (tested, connected bool, checkedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tested, s.connected, s.checkedAt
}

func (s *ConnectionStatus) probeLocked(ctx context.Context) {
	s.tested = true
	s.checkedAt = time.Now()

	if s.prober == nil {
		return
	}

	// The result outlives the request, so a cancelled caller must not decide it.
	probeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), probeTimeout)
	defer cancel()

	if err := s.prober.Probe(probeCtx); err != nil {
		logger.Warn("Primary store probe failed: %v", err)
		s.connected = false
		return
	}
	s.connected = true
}
