package metrics

import (
	"connect4/config"
	"connect4/game"
	"time"
)

type SearchMetric struct {
	Duration     time.Duration
	Episodes     int
	FullPlayouts int
	TreeSize     int
}

type MoveMetric struct {
	Step   int
	Player game.Piece
	Column game.Column
	SearchMetric
}

type GameMetric struct {
	StartingPlayer game.Piece
	Winner         game.Piece // game.Empty on a draw
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// AgentConfig identifies one configured agent across the records of an experiment.
type AgentConfig struct {
	ID   int
	Name string
	config.Agent
}

type Collector interface {
	Start()
	SetTreeSize(nodes int)
	AddFullPlayout()
	AddEpisode()
	Complete() SearchMetric
}

type collector struct {
	startTime    time.Time
	episodes     int
	fullPlayouts int
	treeSize     int
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters for a new search.
func (m *collector) Start() {
	*m = collector{startTime: time.Now()}
}

func (m *collector) SetTreeSize(nodes int) {
	m.treeSize = nodes
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts++
}

func (m *collector) AddEpisode() {
	m.episodes++
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Duration:     time.Since(m.startTime),
		Episodes:     m.episodes,
		FullPlayouts: m.fullPlayouts,
		TreeSize:     m.treeSize,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                 {}
func (m *dummyCollector) SetTreeSize(nodes int)  {}
func (m *dummyCollector) AddFullPlayout()        {}
func (m *dummyCollector) AddEpisode()            {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
