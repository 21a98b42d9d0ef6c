package game

const (
	windowFour       = 100
	windowThree      = 5
	windowTwo        = 2
	windowThreatened = -10
	centrePiece      = 5
)

// CentreColumn rounds Cols/2 half up, which is column 4 on a seven-wide board.
const CentreColumn = (Cols + 1) / 2

// Evaluate is the zero-sum heuristic used by search: the player's window score minus the
// opponent's, so Evaluate(b, Player1) == -Evaluate(b, Player2) holds for any board.
func Evaluate(b Board, player Piece) int {
	return WindowScore(b, player) - WindowScore(b, player.Opponent())
}

// EvaluateWithDiagonals extends Evaluate with diagonal windows scored by the same table.
func EvaluateWithDiagonals(b Board, player Piece) int {
	return Evaluate(b, player) + DiagonalScore(b, player) - DiagonalScore(b, player.Opponent())
}

// WindowScore tallies every horizontal and vertical window of ConnectN cells from player's
// perspective and rewards pieces in the centre column. Diagonal windows are not scored.
func WindowScore(b Board, player Piece) int {
	score := 0
	var window [ConnectN]Piece

	// Horizontal
	for row := 0; row < Rows; row++ {
		for col := 0; col <= Cols-ConnectN; col++ {
			for i := range window {
				window[i] = b[row][col+i]
			}
			score += scoreWindow(window, player)
		}
	}

	// Vertical
	for col := 0; col < Cols; col++ {
		for row := 0; row <= Rows-ConnectN; row++ {
			for i := range window {
				window[i] = b[row+i][col]
			}
			score += scoreWindow(window, player)
		}
	}

	for row := 0; row < Rows; row++ {
		if b[row][CentreColumn] == player {
			score += centrePiece
		}
	}
	return score
}

// DiagonalScore tallies ascending and descending diagonal windows from player's perspective.
func DiagonalScore(b Board, player Piece) int {
	score := 0
	var window [ConnectN]Piece
	for row := 0; row <= Rows-ConnectN; row++ {
		for col := 0; col <= Cols-ConnectN; col++ {
			for i := range window {
				window[i] = b[row+i][col+i]
			}
			score += scoreWindow(window, player)

			for i := range window {
				window[i] = b[row+ConnectN-1-i][col+i]
			}
			score += scoreWindow(window, player)
		}
	}
	return score
}

func scoreWindow(window [ConnectN]Piece, player Piece) int {
	own, empty, other := 0, 0, 0
	opponent := player.Opponent()
	for _, cell := range window {
		switch cell {
		case player:
			own++
		case Empty:
			empty++
		case opponent:
			other++
		}
	}

	score := 0
	switch {
	case own == ConnectN:
		score += windowFour
	case own == ConnectN-1 && empty == 1:
		score += windowThree
	case own == 2 && empty == 2:
		score += windowTwo
	}
	// Penalise an open opponent three that still needs blocking
	if other == ConnectN-1 && empty == 1 {
		score += windowThreatened
	}
	return score
}
