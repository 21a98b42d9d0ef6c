package game

import "errors"

const (
	Rows     = 6
	Cols     = 7
	ConnectN = 4
)

// Piece is the content of a board cell, doubling as the player identifier.
type Piece uint8

const (
	Empty Piece = iota
	Player1
	Player2
)

func (p Piece) Opponent() Piece {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return Empty
	}
}

func (p Piece) IsPlayer() bool {
	return p == Player1 || p == Player2
}

func (p Piece) String() string {
	switch p {
	case Player1:
		return "Player1"
	case Player2:
		return "Player2"
	default:
		return "Empty"
	}
}

// Column identifies a move: the column a piece is dropped into.
type Column int

// NoColumn is returned by searches that stop before choosing a move.
const NoColumn Column = -1

type GameState int

const (
	StillPlaying GameState = iota
	Win
	Draw
)

func (s GameState) String() string {
	switch s {
	case Win:
		return "win"
	case Draw:
		return "draw"
	default:
		return "still playing"
	}
}

// SavedState is carried through agent calls untouched. Reserved for tree reuse across turns.
type SavedState any

var (
	ErrIllegalMove  = errors.New("illegal move")
	ErrNoLegalMove  = errors.New("no legal move")
	ErrInvalidBoard = errors.New("invalid board")
	ErrInvalidPiece = errors.New("invalid piece")
)

// Heuristic scores a board from the given player's perspective.
type Heuristic func(board Board, player Piece) int
