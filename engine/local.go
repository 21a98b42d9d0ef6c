package engine

import (
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/searcher/agent"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

var ErrGameOver = errors.New("game is already over")

type Option func(e *LocalEngine)

// LocalEngine plays two in-process agents against each other. agents[0] plays Player1.
type LocalEngine struct {
	board  game.Board
	agents [2]agent.Agent
	saved  [2]game.SavedState
}

// WithBoard starts the game from board instead of an empty one. The player to move
// is taken from the piece counts.
func WithBoard(board game.Board) Option {
	return func(e *LocalEngine) {
		e.board = board
	}
}

func NewLocalEngine(agents [2]agent.Agent, options ...Option) *LocalEngine {
	if agents[0] == nil || agents[1] == nil {
		panic("need two agents")
	}
	e := &LocalEngine{
		board:  game.NewBoard(),
		agents: agents,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *LocalEngine) Board() game.Board {
	return e.board
}

func (e *LocalEngine) Run() (game.Piece, metrics.GameMetric, []metrics.MoveMetric, error) {
	if e.board.HasFourInARow(game.Player1) || e.board.HasFourInARow(game.Player2) || e.board.IsFull() {
		return game.Empty, metrics.GameMetric{}, nil, ErrGameOver
	}

	player := e.board.NextPlayer()
	gameMetric := metrics.GameMetric{
		StartingPlayer: player,
		Winner:         game.Empty,
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("%s is starting", player)

	for step := 1; ; step++ {
		index := agentIndex(player)
		a := e.agents[index]

		start := time.Now()
		move, saved, err := a.GenerateMove(e.board, player, e.saved[index])
		if err != nil {
			return game.Empty, gameMetric, moveMetrics, fmt.Errorf("%s failed to move at step %d: %w", player, step, err)
		}
		e.saved[index] = saved

		moveMetric := metrics.MoveMetric{
			Step:   step,
			Player: player,
			Column: move,
		}
		if reporter, ok := a.(agent.MetricsReporter); ok {
			moveMetric.SearchMetric = reporter.LastMetrics()
		} else {
			moveMetric.Duration = time.Since(start)
		}
		moveMetrics = append(moveMetrics, moveMetric)

		if err := e.board.ApplyInPlace(move, player); err != nil {
			return game.Empty, gameMetric, moveMetrics, fmt.Errorf("%s at step %d: %w", player, step, err)
		}
		log.Debug().
			Int("step", step).
			Str("player", player.String()).
			Int("column", int(move)).
			Msg("move played")

		state := e.board.Classify(player)
		if state == game.StillPlaying {
			player = player.Opponent()
			continue
		}

		if state == game.Win {
			gameMetric.Winner = player
		}
		gameMetric.EndTime = time.Now()
		gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
		gameMetric.TotalMoves = step

		if state == game.Win {
			log.Info().Msgf("%s wins after %d moves", player, step)
		} else {
			log.Info().Msgf("draw after %d moves", step)
		}
		return gameMetric.Winner, gameMetric, moveMetrics, nil
	}
}

func agentIndex(player game.Piece) int {
	if player == game.Player2 {
		return 1
	}
	return 0
}

var _ Engine = (*LocalEngine)(nil)
