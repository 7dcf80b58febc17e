package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

const (
	healthProbeJobName = "upstream_health_probe"
	defaultProbeWait   = 10 * time.Second

	StatusOK       = "OK"
	StatusDegraded = "DEGRADED: upstream unreachable"
)

// Prober checks that the league API answers.
type Prober interface {
	Ping(ctx context.Context) error
}

// HealthMonitor remembers the outcome of the last upstream probe. It starts
// healthy so a fresh process is not reported degraded before the first run.
type HealthMonitor struct {
	prober  Prober
	timeout time.Duration

	mu        sync.RWMutex
	reachable bool
	checkedAt time.Time
}

func NewHealthMonitor(prober Prober, timeout time.Duration) *HealthMonitor {
	if timeout <= 0 {
		timeout = defaultProbeWait
	}
	return &HealthMonitor{prober: prober, timeout: timeout, reachable: true}
}

// Probe runs one check and records the result.
func (m *HealthMonitor) Probe(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	err := m.prober.Ping(ctx)

	m.mu.Lock()
	changed := m.reachable != (err == nil)
	m.reachable = err == nil
	m.checkedAt = time.Now()
	m.mu.Unlock()

	logger := log.Ctx(ctx)
	switch {
	case err != nil && changed:
		logger.Warn().Err(err).Msg("League API unreachable")
	case err == nil && changed:
		logger.Info().Msg("League API reachable again")
	default:
		logger.Debug().Err(err).Msg("Upstream health probe completed")
	}
}

// Status is the body served on /health. A nil monitor is always OK.
func (m *HealthMonitor) Status() string {
	if m == nil {
		return StatusOK
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.reachable {
		return StatusOK
	}
	return StatusDegraded
}

// CheckedAt is the time of the last probe, zero before the first one.
func (m *HealthMonitor) CheckedAt() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.checkedAt
}

// RegisterHealthProbe schedules the monitor on the singleton scheduler.
func RegisterHealthProbe(monitor *HealthMonitor, cronExpr string) (gocron.Job, error) {
	jobLogger := log.With().
		Str("component", "upstream_health_probe").
		Str("job_name", healthProbeJobName).
		Str("cron", cronExpr).
		Logger()

	return AddJob(healthProbeJobName, cronExpr, func() {
		monitor.Probe(jobLogger.WithContext(context.Background()))
	})
}
