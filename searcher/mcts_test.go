package searcher

import (
	"connect4/game"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// In every threat position Player1 connects four by playing column 1 and Player2 by
// playing column 5.
var threats = map[string]string{
	"horizontal": `
|===============|
|               |
|               |
|               |
|               |
|       o o   o |
| x   x x o o x |
|===============|
| 0 1 2 3 4 5 6 |
`,
	"vertical": `
|===============|
|               |
|               |
|               |
|   x       o   |
|   x       o   |
| x x o o x o x |
|===============|
| 0 1 2 3 4 5 6 |
`,
	"diagonal": `
|===============|
|               |
|               |
|             o |
|   x x       x |
|   o o x o o x |
| x x o o x o x |
|===============|
| 0 1 2 3 4 5 6 |
`,
}

const testEpisodes = 5000

func parseThreat(t *testing.T, name string) game.Board {
	board, err := game.ParseBoard(threats[name])
	require.NoError(t, err, "parsing %s threats", name)
	return board
}

func TestMCTSImmediateWin(t *testing.T) {
	for name := range threats {
		t.Run(name+" win for Player1", func(t *testing.T) {
			board := parseThreat(t, name)
			for seed := uint64(1); seed <= 3; seed++ {
				move, _, err := NewMCTS(WithEpisodes(testEpisodes), WithSeed(seed)).Search(board, game.Player1)
				require.NoError(t, err)
				require.Equal(t, game.Column(1), move, "seed %d", seed)
			}
		})

		t.Run(name+" win for Player2", func(t *testing.T) {
			board := parseThreat(t, name)
			for seed := uint64(1); seed <= 3; seed++ {
				move, _, err := NewMCTS(WithEpisodes(testEpisodes), WithSeed(seed)).Search(board, game.Player2)
				require.NoError(t, err)
				require.Equal(t, game.Column(5), move, "seed %d", seed)
			}
		})
	}
}

func TestMCTSBlocksThreat(t *testing.T) {
	for name := range threats {
		t.Run(name, func(t *testing.T) {
			// Player1 takes Player2's winning cell, leaving Player2 to stop column 1.
			board, err := parseThreat(t, name).Apply(5, game.Player1)
			require.NoError(t, err)

			for seed := uint64(1); seed <= 3; seed++ {
				move, _, err := NewMCTS(WithEpisodes(testEpisodes), WithSeed(seed)).Search(board, game.Player2)
				require.NoError(t, err)

				blocked, err := board.Apply(move, game.Player2)
				require.NoError(t, err)
				for _, col := range blocked.LegalColumns() {
					next, err := blocked.Apply(col, game.Player1)
					require.NoError(t, err)
					require.False(t, next.HasFourInARow(game.Player1),
						"seed %d: Player1 still wins at column %d after Player2 plays %d", seed, col, move)
				}
			}
		})
	}
}

func TestMCTSSearch(t *testing.T) {
	t.Run("full board", func(t *testing.T) {
		_, _, err := NewMCTS(WithEpisodes(10)).Search(fullBoard(), game.Player1)
		require.ErrorIs(t, err, game.ErrNoLegalMove)
	})

	t.Run("not a player", func(t *testing.T) {
		_, _, err := NewMCTS(WithEpisodes(10)).Search(game.NewBoard(), game.Empty)
		require.ErrorIs(t, err, game.ErrInvalidPiece)
	})

	t.Run("returns a legal move", func(t *testing.T) {
		r := rand.New(rand.NewSource(21))
		board := playMoves(t, 3, 3, 3, 3, 3, 3)
		for i := 0; i < 20; i++ {
			move, _, err := NewMCTS(WithEpisodes(50), WithRand(r)).Search(board, game.Player1)
			require.NoError(t, err)
			require.True(t, board.CanPlay(move), "column %d", move)
			require.NotEqual(t, game.Column(3), move, "Column 3 is full")
		}
	})

	t.Run("single legal move", func(t *testing.T) {
		board := nearlyDrawn()
		move, _, err := NewMCTS(WithEpisodes(1)).Search(board, game.Player2)
		require.NoError(t, err)
		require.Equal(t, game.Column(6), move)
	})

	t.Run("same seed same move", func(t *testing.T) {
		board := playMoves(t, 3, 2, 4)
		first, _, err := NewMCTS(WithEpisodes(300), WithSeed(9)).Search(board, game.Player2)
		require.NoError(t, err)
		second, _, err := NewMCTS(WithEpisodes(300), WithSeed(9)).Search(board, game.Player2)
		require.NoError(t, err)
		require.Equal(t, first, second)
	})

	t.Run("tiny time budget still runs one episode", func(t *testing.T) {
		m := NewMCTS(WithDuration(time.Nanosecond), WithMetrics(), WithSeed(1))
		move, metric, err := m.Search(game.NewBoard(), game.Player1)
		require.NoError(t, err)
		require.True(t, game.NewBoard().CanPlay(move))
		require.GreaterOrEqual(t, metric.Episodes, 1)
	})

	t.Run("time budget finds the win", func(t *testing.T) {
		m := NewMCTS(WithDuration(500*time.Millisecond), WithSeed(4))
		move, _, err := m.Search(parseThreat(t, "horizontal"), game.Player1)
		require.NoError(t, err)
		require.Equal(t, game.Column(1), move)
	})

	t.Run("metrics", func(t *testing.T) {
		m := NewMCTS(WithEpisodes(200), WithMetrics(), WithSeed(2))
		_, metric, err := m.Search(game.NewBoard(), game.Player1)
		require.NoError(t, err)
		require.Equal(t, 200, metric.Episodes)
		require.Equal(t, 201, metric.TreeSize, "Each episode on an open board adds one node")
		require.Equal(t, 200, metric.FullPlayouts)

		_, metric, err = m.Search(game.NewBoard(), game.Player2)
		require.NoError(t, err)
		require.Equal(t, 200, metric.Episodes, "Metrics should reset between searches")
	})

	t.Run("no metrics by default", func(t *testing.T) {
		_, metric, err := NewMCTS(WithEpisodes(20)).Search(game.NewBoard(), game.Player1)
		require.NoError(t, err)
		require.Zero(t, metric.Episodes)
	})
}

func TestRollout(t *testing.T) {
	t.Run("ends with a winner or a full board", func(t *testing.T) {
		r := rand.New(rand.NewSource(8))
		for i := 0; i < 100; i++ {
			winner := rollout(game.NewBoard(), game.Player1, r)
			require.Contains(t, []game.Piece{game.Empty, game.Player1, game.Player2}, winner)
		}
	})

	t.Run("forced draw", func(t *testing.T) {
		r := rand.New(rand.NewSource(8))
		require.Equal(t, game.Empty, rollout(nearlyDrawn(), game.Player2, r))
	})

	t.Run("forced win", func(t *testing.T) {
		r := rand.New(rand.NewSource(8))
		require.Equal(t, game.Player1, rollout(nearlyDrawn(), game.Player1, r))
	})
}

func TestRandomMove(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	board := playMoves(t, 0, 0, 0, 0, 0, 0)
	seen := map[game.Column]bool{}
	for i := 0; i < 500; i++ {
		move, err := RandomMove(board, r)
		require.NoError(t, err)
		seen[move] = true
	}
	require.Len(t, seen, game.Cols-1, "Every open column should come up")
	require.False(t, seen[0], "Full column should never be picked")

	_, err := RandomMove(fullBoard(), r)
	require.ErrorIs(t, err, game.ErrNoLegalMove)
}
