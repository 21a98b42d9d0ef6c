package engine

import (
	"connect4/experiments/metrics"
	"connect4/game"
)

type Engine interface {
	// Run plays a game until someone connects four or the board is full.
	// The winner is game.Empty on a draw.
	Run() (winner game.Piece, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
