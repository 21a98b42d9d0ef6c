package agent

import (
	"connect4/game"
	"connect4/searcher"
	"fmt"
	"time"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rand *rand.Rand
}

// NewRandomAgent returns an agent playing uniformly random legal columns.
// A zero seed draws one from the clock.
func NewRandomAgent(seed uint64) Agent {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &randomAgent{rand: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) GenerateMove(board game.Board, player game.Piece, saved game.SavedState) (game.Column, game.SavedState, error) {
	if !player.IsPlayer() {
		return game.NoColumn, saved, fmt.Errorf("%w: %d", game.ErrInvalidPiece, player)
	}
	move, err := searcher.RandomMove(board, a.rand)
	return move, saved, err
}
