package agent

import (
	"connect4/config"
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/searcher"
	"fmt"
)

var ErrUnknownAgent = config.ErrUnknownAgent

type Agent interface {
	// GenerateMove returns the column player drops into on board. saved is handed back
	// unchanged on the next call for agents that keep state between moves.
	GenerateMove(board game.Board, player game.Piece, saved game.SavedState) (game.Column, game.SavedState, error)
}

// MetricsReporter is implemented by agents that collect search metrics.
type MetricsReporter interface {
	LastMetrics() metrics.SearchMetric
}

// New builds the agent described by cfg.
func New(cfg config.Agent) (Agent, error) {
	switch cfg.Kind {
	case config.KindRandom:
		return NewRandomAgent(cfg.Seed), nil
	case config.KindGreedy:
		return NewGreedyAgent(cfg.Diagonals), nil
	case config.KindMinimax:
		return NewMinimaxAgent(cfg.Depth, cfg.Diagonals), nil
	case config.KindMCTS:
		options := []searcher.Option{searcher.WithMetrics()}
		if cfg.Episodes > 0 {
			options = append(options, searcher.WithEpisodes(cfg.Episodes))
		}
		if cfg.Duration > 0 {
			options = append(options, searcher.WithDuration(cfg.Duration))
		}
		if cfg.Exploration > 0 {
			options = append(options, searcher.WithExploration(cfg.Exploration))
		}
		if cfg.Seed != 0 {
			options = append(options, searcher.WithSeed(cfg.Seed))
		}
		return NewMCTSAgent(searcher.NewMCTS(options...)), nil
	default:
		return nil, fmt.Errorf("%w: kind %q", ErrUnknownAgent, cfg.Kind)
	}
}

func heuristic(diagonals bool) game.Heuristic {
	if diagonals {
		return game.EvaluateWithDiagonals
	}
	return game.Evaluate
}
