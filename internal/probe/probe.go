package probe

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Dan9191/gps-gateway/internal/metrics"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Backend states reported by Status
const (
	StatusUnknown = "unknown"
	StatusUp      = "up"
	StatusDown    = "down"
)

// Pinger checks that the backend answers
type Pinger interface {
	Ping(ctx context.Context) error
}

// Prober periodically pings the card backend and remembers the outcome.
// It only reports; calls to the backend are never gated on it.
type Prober struct {
	pinger  Pinger
	timeout time.Duration
	log     *logrus.Logger
	metrics *metrics.Metrics
	cron    *cron.Cron
	status  atomic.Value
}

// NewProber creates a prober. Each ping is bounded by timeout.
func NewProber(pinger Pinger, timeout time.Duration, log *logrus.Logger, m *metrics.Metrics) *Prober {
	p := &Prober{
		pinger:  pinger,
		timeout: timeout,
		log:     log,
		metrics: m,
		cron:    cron.New(),
	}
	p.status.Store(StatusUnknown)
	return p
}

// Start schedules the probe. An empty schedule disables probing.
func (p *Prober) Start(schedule string) error {
	if schedule == "" {
		p.log.Info("Backend probe disabled")
		return nil
	}
	if _, err := p.cron.AddFunc(schedule, p.Check); err != nil {
		return fmt.Errorf("invalid probe schedule %q: %w", schedule, err)
	}
	p.cron.Start()
	p.log.Infof("Backend probe scheduled: %s", schedule)
	return nil
}

// Stop halts the schedule and waits for a running probe to finish
func (p *Prober) Stop() {
	<-p.cron.Stop().Done()
}

// Check pings the backend once and records the result
func (p *Prober) Check() {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	next := StatusUp
	if err := p.pinger.Ping(ctx); err != nil {
		next = StatusDown
		p.log.Debugf("Backend probe failed: %v", err)
	}

	if prev := p.status.Swap(next); prev != next {
		if next == StatusDown {
			p.log.Warnf("GPS backend is %s (was %s)", next, prev)
		} else {
			p.log.Infof("GPS backend is %s (was %s)", next, prev)
		}
	}

	if next == StatusUp {
		p.metrics.BackendUp.Set(1)
	} else {
		p.metrics.BackendUp.Set(0)
	}
}

// Status returns the last probe outcome
func (p *Prober) Status() string {
	return p.status.Load().(string)
}
