package agent

import (
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/searcher"
)

type mctsAgent struct {
	mcts *searcher.MCTS
	last metrics.SearchMetric
}

// NewMCTSAgent returns an agent that grows a fresh search tree for every move.
func NewMCTSAgent(mcts *searcher.MCTS) Agent {
	return &mctsAgent{mcts: mcts}
}

func (a *mctsAgent) GenerateMove(board game.Board, player game.Piece, saved game.SavedState) (game.Column, game.SavedState, error) {
	move, metric, err := a.mcts.Search(board, player)
	if err != nil {
		return game.NoColumn, saved, err
	}
	a.last = metric
	return move, saved, nil
}

func (a *mctsAgent) LastMetrics() metrics.SearchMetric {
	return a.last
}
