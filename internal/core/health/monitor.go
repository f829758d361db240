// Package health polls the backend health endpoint and exposes a binary
// online/offline signal for the UI. Connectivity is only ever decided by
// polling, never inferred from chat send failures.
package health

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/utsavm/nexus/internal/core/api"
)

// API is the health-check collaborator
type API interface {
	Health(ctx context.Context) (*api.HealthStatus, error)
}

// Monitor polls the backend on a fixed interval. A failed or malformed
// check means "offline", never an application error.
type Monitor struct {
	mu       sync.Mutex
	api      API
	log      *zap.Logger
	interval time.Duration

	backendOnline bool
	modelOnline   bool

	cancel context.CancelFunc
	done   chan struct{}
}

// NewMonitor creates a stopped monitor polling at the given interval
func NewMonitor(healthAPI API, interval time.Duration, log *zap.Logger) *Monitor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Monitor{api: healthAPI, interval: interval, log: log}
}

// Start launches the polling loop: one immediate check, then one per
// interval until Stop or ctx cancellation.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	if m.cancel != nil {
		m.mu.Unlock()
		return
	}
	ctx, m.cancel = context.WithCancel(ctx)
	m.done = make(chan struct{})
	done := m.done
	m.mu.Unlock()

	go func() {
		defer close(done)
		m.Check(ctx)
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Check(ctx)
			}
		}
	}()
}

// Stop tears the loop down. In-flight checks are not interrupted
// mid-request beyond context cancellation.
func (m *Monitor) Stop() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.mu.Unlock()
	if cancel != nil {
		cancel()
		<-done
	}
}

// Check runs a single poll and updates the flags
func (m *Monitor) Check(ctx context.Context) {
	status, err := m.api.Health(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		if m.backendOnline || m.modelOnline {
			m.log.Info("health check failed", zap.Error(err))
		}
		m.backendOnline = false
		m.modelOnline = false
		return
	}
	m.backendOnline = true
	m.modelOnline = status.ModelRuntimeOnline()
}

// BackendOnline reports whether the last check reached the backend
func (m *Monitor) BackendOnline() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.backendOnline
}

// ModelOnline reports whether the local model runtime was connected at
// the last check
func (m *Monitor) ModelOnline() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.modelOnline
}
