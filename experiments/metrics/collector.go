package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Workers    int
	BatchSize  int
	Duration   time.Duration
	Episodes   int
	Visits     int
	MaxDepth   int
	StopReason string
}

type MoveMetric struct {
	Step       int
	Side       string
	Action     string
	Confidence float64
	SearchMetric
}

type GameMetric struct {
	Winner     string // Side name, empty for an unfinished game
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalTurns int
}

type AgentConfig struct {
	ID          int
	Workers     int
	Iterations  int
	Duration    time.Duration
	Policy      bool    // Single-tree policy search instead of the multi-worker search
	Temperature float64 // Policy sharpening, policy agents only
}

type Collector interface {
	Start(workers, batchSize int)
	AddEpisode()
	Complete(visits, maxDepth int, reason string) SearchMetric
}

type collector struct {
	workers   int
	batchSize int
	startTime time.Time
	episodes  atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(workers, batchSize int) {
	m.startTime = time.Now()
	m.workers = workers
	m.batchSize = batchSize
	m.episodes.Store(0)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) Complete(visits, maxDepth int, reason string) SearchMetric {
	return SearchMetric{
		Workers:    m.workers,
		BatchSize:  m.batchSize,
		Duration:   time.Since(m.startTime),
		Episodes:   int(m.episodes.Load()),
		Visits:     visits,
		MaxDepth:   maxDepth,
		StopReason: reason,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(workers, batchSize int) {}
func (m *dummyCollector) AddEpisode()                  {}
func (m *dummyCollector) Complete(visits, maxDepth int, reason string) SearchMetric {
	return SearchMetric{Visits: visits, MaxDepth: maxDepth, StopReason: reason}
}
