package game

import "fmt"

// Board is a Rows x Cols grid with row 0 at the bottom. It is a value type:
// assignment copies it, so sibling search branches never share cells.
type Board [Rows][Cols]Piece

func NewBoard() Board {
	return Board{}
}

// Apply returns a copy of the board with player's piece dropped into col.
// The receiver is left untouched.
func (b Board) Apply(col Column, player Piece) (Board, error) {
	if err := b.ApplyInPlace(col, player); err != nil {
		return b, err
	}
	return b, nil
}

// ApplyInPlace drops player's piece into the lowest empty cell of col.
func (b *Board) ApplyInPlace(col Column, player Piece) error {
	if !player.IsPlayer() {
		return fmt.Errorf("%w: %d", ErrInvalidPiece, player)
	}
	if col < 0 || int(col) >= Cols {
		return fmt.Errorf("%w: column %d out of range", ErrIllegalMove, col)
	}
	row := b.Height(col)
	if row >= Rows {
		return fmt.Errorf("%w: column %d is full", ErrIllegalMove, col)
	}
	b[row][col] = player
	return nil
}

// Height returns the number of pieces in col, which is also the row the next piece lands on.
func (b Board) Height(col Column) int {
	for row := 0; row < Rows; row++ {
		if b[row][col] == Empty {
			return row
		}
	}
	return Rows
}

func (b Board) CanPlay(col Column) bool {
	return col >= 0 && int(col) < Cols && b[Rows-1][col] == Empty
}

// LegalColumns returns the playable columns in ascending order.
func (b Board) LegalColumns() []Column {
	cols := make([]Column, 0, Cols)
	for col := Column(0); col < Cols; col++ {
		if b[Rows-1][col] == Empty {
			cols = append(cols, col)
		}
	}
	return cols
}

func (b Board) IsFull() bool {
	for col := 0; col < Cols; col++ {
		if b[Rows-1][col] == Empty {
			return false
		}
	}
	return true
}

func (b Board) Count(p Piece) int {
	n := 0
	for row := range b {
		for _, cell := range b[row] {
			if cell == p {
				n++
			}
		}
	}
	return n
}

// NextPlayer infers whose turn it is, assuming Player1 moved first.
func (b Board) NextPlayer() Piece {
	if b.Count(Player1) > b.Count(Player2) {
		return Player2
	}
	return Player1
}

// isSettled reports whether no piece floats above an empty cell.
func (b Board) isSettled() bool {
	for col := 0; col < Cols; col++ {
		empty := false
		for row := 0; row < Rows; row++ {
			switch {
			case b[row][col] == Empty:
				empty = true
			case empty:
				return false
			}
		}
	}
	return true
}
