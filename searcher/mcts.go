package searcher

import (
	"connect4/experiments/metrics"
	"connect4/game"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const DefaultDuration = 5 * time.Second

type Option func(mcts *MCTS)

type MCTS struct {
	duration    time.Duration
	episodes    int
	exploration float64
	rand        *rand.Rand
	metrics     metrics.Collector
}

// WithDuration bounds each search by wall-clock time.
func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

// WithEpisodes runs a fixed number of iterations instead of a time budget.
func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c > 0 {
			m.exploration = c
		}
	}
}

// WithSeed makes expansion order and rollouts reproducible.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rand = rand.New(rand.NewSource(seed))
	}
}

func WithRand(r *rand.Rand) Option {
	return func(m *MCTS) {
		if r != nil {
			m.rand = r
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		duration:    DefaultDuration,
		exploration: DefaultExploration,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.rand == nil {
		m.rand = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return m
}

// Search grows a fresh tree for player from board and returns the root move with the
// best win rate. The tree is discarded afterwards.
func (m *MCTS) Search(board game.Board, player game.Piece) (game.Column, metrics.SearchMetric, error) {
	if !player.IsPlayer() {
		return game.NoColumn, metrics.SearchMetric{}, fmt.Errorf("%w: %d", game.ErrInvalidPiece, player)
	}
	if len(board.LegalColumns()) == 0 {
		return game.NoColumn, metrics.SearchMetric{}, game.ErrNoLegalMove
	}

	t := newTree(board, player)
	m.metrics.Start()
	if m.episodes > 0 {
		m.iterate(t)
	} else {
		m.countdown(t)
	}
	m.metrics.SetTreeSize(t.size())
	metric := m.metrics.Complete()

	move := t.bestMove()
	log.Debug().
		Str("player", player.String()).
		Int("column", int(move)).
		Int("nodes", t.size()).
		Int("rootSims", t.nodes[0].sims).
		Msg("mcts decision")
	return move, metric, nil
}

func (m *MCTS) iterate(t *tree) {
	for i := 0; i < m.episodes; i++ {
		m.simulate(t)
	}
}

// countdown always completes at least one iteration and checks the clock only
// between whole iterations.
func (m *MCTS) countdown(t *tree) {
	start := time.Now()
	for {
		m.simulate(t)
		if time.Since(start) >= m.duration {
			return
		}
	}
}

func (m *MCTS) simulate(t *tree) {
	index := t.selects(m.exploration)

	var winner game.Piece
	if len(t.nodes[index].untried) > 0 {
		index = t.expands(index, m.rand)
		n := &t.nodes[index]
		if n.terminal {
			winner = n.winner
		} else {
			winner = rollout(n.board, n.player, m.rand)
			m.metrics.AddFullPlayout()
		}
	} else {
		// Fully explored terminal position: replay its known result
		winner = t.nodes[index].winner
	}

	t.backup(index, winner)
	m.metrics.AddEpisode()
}

// rollout plays uniformly random moves, starting with player, until someone connects
// four or the board fills. It returns the winner, or game.Empty for a draw.
func rollout(board game.Board, player game.Piece, r *rand.Rand) game.Piece {
	for {
		move, err := RandomMove(board, r)
		if err != nil {
			return game.Empty
		}
		if err := board.ApplyInPlace(move, player); err != nil {
			panic(fmt.Sprintf("rollout move: %v", err))
		}
		if board.HasFourInARow(player) {
			return player
		}
		player = player.Opponent()
	}
}
