package searcher

import (
	"connect4/game"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
)

const (
	DefaultDepth = 2

	// WinScore values a position where someone connects four on the next move.
	WinScore = 100_000_000_000
)

type MinimaxOption func(m *Minimax)

// Minimax is a plain full-width minimax search that maximizes for one fixed player.
type Minimax struct {
	agent     game.Piece
	depth     int
	heuristic game.Heuristic
}

func WithDepth(depth int) MinimaxOption {
	return func(m *Minimax) {
		if depth >= 0 {
			m.depth = depth
		}
	}
}

func WithHeuristic(heuristic game.Heuristic) MinimaxOption {
	return func(m *Minimax) {
		if heuristic != nil {
			m.heuristic = heuristic
		}
	}
}

func NewMinimax(agent game.Piece, options ...MinimaxOption) *Minimax {
	m := &Minimax{
		agent:     agent,
		depth:     DefaultDepth,
		heuristic: game.Evaluate,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// BestMove searches to the configured depth and returns the column to play.
// At depth 0 there is nothing to search and the greedy heuristic pick is returned.
func (m *Minimax) BestMove(board game.Board) (game.Column, error) {
	if !m.agent.IsPlayer() {
		return game.NoColumn, fmt.Errorf("%w: %d", game.ErrInvalidPiece, m.agent)
	}
	if len(board.LegalColumns()) == 0 {
		return game.NoColumn, game.ErrNoLegalMove
	}
	if m.depth == 0 {
		return Greedy(board, m.agent, m.heuristic)
	}

	move, value := m.Search(board, m.depth, true)
	log.Debug().
		Str("player", m.agent.String()).
		Int("depth", m.depth).
		Int("column", int(move)).
		Int("value", value).
		Msg("minimax decision")
	return move, nil
}

// Search returns the best column for the side on turn and its value. Maximizing
// plies play the agent, minimizing plies play its opponent. At depth 0 no column
// is chosen and the heuristic value of the board is returned.
func (m *Minimax) Search(board game.Board, depth int, maximizing bool) (game.Column, int) {
	cols := board.LegalColumns()
	if len(cols) == 0 {
		return game.NoColumn, 0
	}

	onTurn := m.agent
	if !maximizing {
		onTurn = m.agent.Opponent()
	}
	if move, value, ok := m.terminal(board, cols, onTurn); ok {
		return move, value
	}

	if depth == 0 {
		return game.NoColumn, m.heuristic(board, m.agent)
	}

	best := cols[0]
	value := math.MinInt
	if !maximizing {
		value = math.MaxInt
	}
	for _, col := range cols {
		child, err := board.Apply(col, onTurn)
		if err != nil {
			panic(fmt.Sprintf("minimax applying legal column: %v", err))
		}
		_, score := m.Search(child, depth-1, !maximizing)
		if (maximizing && score > value) || (!maximizing && score < value) {
			best, value = col, score
		}
	}
	return best, value
}

// terminal looks one move ahead for either player, the side on turn first. A move that
// connects four or fills the board ends the game, so the node is scored as that outcome.
func (m *Minimax) terminal(board game.Board, cols []game.Column, onTurn game.Piece) (game.Column, int, bool) {
	for _, player := range [2]game.Piece{onTurn, onTurn.Opponent()} {
		for _, col := range cols {
			next, err := board.Apply(col, player)
			if err != nil {
				panic(fmt.Sprintf("minimax applying legal column: %v", err))
			}
			switch next.Classify(player) {
			case game.Win:
				if player == m.agent {
					return col, WinScore, true
				}
				return col, -WinScore, true
			case game.Draw:
				return col, 0, true
			}
		}
	}
	return game.NoColumn, 0, false
}

// Greedy returns the column whose resulting board scores highest for player.
// Ties keep the lowest column.
func Greedy(board game.Board, player game.Piece, heuristic game.Heuristic) (game.Column, error) {
	if !player.IsPlayer() {
		return game.NoColumn, fmt.Errorf("%w: %d", game.ErrInvalidPiece, player)
	}
	cols := board.LegalColumns()
	if len(cols) == 0 {
		return game.NoColumn, game.ErrNoLegalMove
	}

	best := cols[0]
	bestScore := math.MinInt
	for _, col := range cols {
		next, err := board.Apply(col, player)
		if err != nil {
			panic(fmt.Sprintf("greedy applying legal column: %v", err))
		}
		if score := heuristic(next, player); score > bestScore {
			best, bestScore = col, score
		}
	}
	return best, nil
}
