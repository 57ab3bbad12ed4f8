package monitor

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/sanchez0623/clswatch/pkg/domain"
	"github.com/sanchez0623/clswatch/pkg/feed"
)

//go:generate moq -out mocks/poller.go -pkg mocks -skip-ensure -fmt goimports . Poller
//go:generate moq -out mocks/analyzer.go -pkg mocks -skip-ensure -fmt goimports . Analyzer

// Poller yields at most one new item per call
type Poller interface {
	Poll(ctx context.Context) *domain.NewsItem
	Stats() feed.Stats
}

// Analyzer produces a sentiment assessment for an item
type Analyzer interface {
	Analyze(ctx context.Context, item *domain.NewsItem) *domain.AnalysisResult
}

// Monitor drives the poll-analyze cycle on a single goroutine. The interval
// is a minimum inter-cycle delay, a slow backend lengthens the effective
// period rather than overlapping cycles.
type Monitor struct {
	poller   Poller
	analyzer Analyzer
	display  *Display
	interval time.Duration

	started  time.Time
	analyzed atomic.Int64
	failures atomic.Int64
}

// New creates a monitor
func New(poller Poller, analyzer Analyzer, display *Display, interval time.Duration) *Monitor {
	return &Monitor{
		poller:   poller,
		analyzer: analyzer,
		display:  display,
		interval: interval,
	}
}

// Run executes poll-analyze cycles until the context is canceled. The
// in-flight cycle is not aborted mid-network-call, cancellation is observed
// between cycles.
func (m *Monitor) Run(ctx context.Context) {
	m.started = time.Now()
	log.Printf("[INFO] monitor started, poll interval %v", m.interval)

	for {
		m.processCycle(ctx)

		select {
		case <-ctx.Done():
			log.Printf("[INFO] monitor stopped")
			m.display.PrintStats(m.Status())
			return
		case <-time.After(m.interval):
		}
	}
}

// processCycle runs one poll and, when a new item shows up, one analysis
func (m *Monitor) processCycle(ctx context.Context) {
	item := m.poller.Poll(ctx)
	if item == nil {
		return
	}

	log.Printf("[INFO] new item %s: %s", item.ID, domain.TruncateRunes(item.Content, 50))

	result := m.analyzer.Analyze(ctx, item)
	if result == nil {
		m.failures.Add(1)
		log.Printf("[WARN] analysis failed for item %s", item.ID)
		return
	}

	m.analyzed.Add(1)
	m.display.PrintResult(item, result)
}

// Status is a snapshot of run statistics
type Status struct {
	StartedAt time.Time  `json:"started_at"`
	Uptime    string     `json:"uptime"`
	Feed      feed.Stats `json:"feed"`
	Analyzed  int64      `json:"analyzed"`
	Failures  int64      `json:"failures"`
}

// Status returns current run statistics, safe to call from other goroutines
func (m *Monitor) Status() Status {
	return Status{
		StartedAt: m.started,
		Uptime:    time.Since(m.started).Round(time.Second).String(),
		Feed:      m.poller.Stats(),
		Analyzed:  m.analyzed.Load(),
		Failures:  m.failures.Load(),
	}
}
