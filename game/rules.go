package game

// directions scanned for runs: horizontal, vertical, ascending and descending diagonals.
var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {-1, 1}}

// HasFourInARow scans the whole board for a run of ConnectN pieces of player.
func (b Board) HasFourInARow(player Piece) bool {
	if !player.IsPlayer() {
		return false
	}
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			if b[row][col] != player {
				continue
			}
			for _, d := range directions {
				if b.runFrom(row, col, d[0], d[1], player) {
					return true
				}
			}
		}
	}
	return false
}

func (b Board) runFrom(row, col, dRow, dCol int, player Piece) bool {
	endRow := row + dRow*(ConnectN-1)
	endCol := col + dCol*(ConnectN-1)
	if endRow < 0 || endRow >= Rows || endCol < 0 || endCol >= Cols {
		return false
	}
	for i := 1; i < ConnectN; i++ {
		if b[row+dRow*i][col+dCol*i] != player {
			return false
		}
	}
	return true
}

// Classify reports the outcome for player only: Win if player has connected four,
// otherwise StillPlaying while empty cells remain and Draw once the board is full.
func (b Board) Classify(player Piece) GameState {
	if b.HasFourInARow(player) {
		return Win
	}
	if b.Count(Empty) > 0 {
		return StillPlaying
	}
	return Draw
}
