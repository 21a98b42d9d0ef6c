package searcher

import (
	"connect4/game"

	"golang.org/x/exp/rand"
)

// RandomMove picks uniformly among the legal columns. It does not detect finished games.
func RandomMove(board game.Board, r *rand.Rand) (game.Column, error) {
	cols := board.LegalColumns()
	if len(cols) == 0 {
		return game.NoColumn, game.ErrNoLegalMove
	}
	return cols[r.Intn(len(cols))], nil
}
