package agent

import (
	"connect4/game"
	"connect4/searcher"
)

type minimaxAgent struct {
	depth     int
	heuristic game.Heuristic
}

// NewMinimaxAgent searches depth plies ahead. A depth of 0 plays the greedy column.
func NewMinimaxAgent(depth int, diagonals bool) Agent {
	return minimaxAgent{depth: depth, heuristic: heuristic(diagonals)}
}

// NewGreedyAgent plays the column whose resulting board evaluates best.
func NewGreedyAgent(diagonals bool) Agent {
	return NewMinimaxAgent(0, diagonals)
}

func (a minimaxAgent) GenerateMove(board game.Board, player game.Piece, saved game.SavedState) (game.Column, game.SavedState, error) {
	m := searcher.NewMinimax(player, searcher.WithDepth(a.depth), searcher.WithHeuristic(a.heuristic))
	move, err := m.BestMove(board)
	return move, saved, err
}
