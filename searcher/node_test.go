package searcher

import (
	"connect4/game"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// playMoves drops pieces into cols alternately, Player1 first.
func playMoves(t *testing.T, cols ...game.Column) game.Board {
	board := game.NewBoard()
	player := game.Player1
	for _, col := range cols {
		require.NoError(t, board.ApplyInPlace(col, player), "setting up column %d", col)
		player = player.Opponent()
	}
	return board
}

func TestNewTree(t *testing.T) {
	board := playMoves(t, 3, 3)
	tr := newTree(board, game.Player1)

	require.Equal(t, 1, tr.size())
	root := tr.nodes[0]
	require.Equal(t, noParent, root.parent)
	require.Equal(t, game.NoColumn, root.move)
	require.Equal(t, game.Player1, root.player)
	require.Equal(t, game.Player2, root.opponent)
	require.Equal(t, board.LegalColumns(), root.untried)
	require.False(t, root.terminal)
}

func TestTreeExpands(t *testing.T) {
	t.Run("expanding an untried move", func(t *testing.T) {
		tr := newTree(game.NewBoard(), game.Player1)
		r := rand.New(rand.NewSource(1))

		index := tr.expands(0, r)

		require.Equal(t, 1, index)
		require.Equal(t, []int{1}, tr.nodes[0].children, "Parent should own the new child")
		require.Len(t, tr.nodes[0].untried, game.Cols-1, "Move should no longer be untried")
		require.NotContains(t, tr.nodes[0].untried, tr.nodes[index].move)

		child := tr.nodes[index]
		require.Equal(t, 0, child.parent)
		require.Equal(t, game.Player2, child.player, "Turn should pass to the opponent")
		require.Equal(t, game.Player1, child.opponent)
		require.Equal(t, game.Player1, child.board[0][child.move], "Child board should hold the new piece")
		require.Equal(t, game.Empty, tr.nodes[0].board[0][child.move], "Parent board should be untouched")
	})

	t.Run("expanding every move", func(t *testing.T) {
		tr := newTree(game.NewBoard(), game.Player1)
		r := rand.New(rand.NewSource(2))

		seen := map[game.Column]bool{}
		for i := 0; i < game.Cols; i++ {
			seen[tr.nodes[tr.expands(0, r)].move] = true
		}

		require.Len(t, seen, game.Cols, "Each legal move should be expanded once")
		require.Empty(t, tr.nodes[0].untried)
		require.Equal(t, game.Cols+1, tr.size())
	})
}

func TestTreeAdd(t *testing.T) {
	t.Run("winning move is terminal", func(t *testing.T) {
		board := playMoves(t, 0, 0, 1, 1, 2, 2)
		tr := newTree(board, game.Player1)
		next, err := board.Apply(3, game.Player1)
		require.NoError(t, err)

		index := tr.add(0, 3, next)

		child := tr.nodes[index]
		require.True(t, child.terminal)
		require.Equal(t, game.Player1, child.winner)
		require.Empty(t, child.untried, "Terminal node should have nothing to expand")
	})

	t.Run("ordinary move is not terminal", func(t *testing.T) {
		board := playMoves(t, 0, 0, 1, 1, 2, 2)
		tr := newTree(board, game.Player1)
		next, err := board.Apply(6, game.Player1)
		require.NoError(t, err)

		index := tr.add(0, 6, next)

		child := tr.nodes[index]
		require.False(t, child.terminal)
		require.Equal(t, next.LegalColumns(), child.untried)
	})
}

func TestTreeBackup(t *testing.T) {
	setup := func() (*tree, int) {
		tr := newTree(game.NewBoard(), game.Player1)
		child := tr.expands(0, rand.New(rand.NewSource(3)))
		grandchild := tr.expands(child, rand.New(rand.NewSource(4)))
		return tr, grandchild
	}

	t.Run("win credits the winner's moves", func(t *testing.T) {
		tr, leaf := setup()

		tr.backup(leaf, game.Player1)

		require.Equal(t, []int{1, 1, 1}, []int{tr.nodes[0].sims, tr.nodes[1].sims, tr.nodes[2].sims})
		require.Equal(t, 0, tr.nodes[0].wins, "Root was reached by Player2")
		require.Equal(t, 1, tr.nodes[1].wins, "Player1 moved into the child")
		require.Equal(t, 0, tr.nodes[2].wins, "Player2 moved into the grandchild")
	})

	t.Run("draw credits nobody", func(t *testing.T) {
		tr, leaf := setup()

		tr.backup(leaf, game.Empty)

		for i, n := range tr.nodes {
			require.Equal(t, 1, n.sims, "node %d visits", i)
			require.Equal(t, 0, n.wins, "node %d wins", i)
		}
	})
}

func TestTreeSelects(t *testing.T) {
	// root with three fully expanded children
	build := func(stats ...[2]int) *tree {
		tr := newTree(game.NewBoard(), game.Player1)
		tr.nodes[0].untried = nil
		for i, s := range stats {
			index := tr.add(0, game.Column(i), game.NewBoard())
			tr.nodes[index].wins, tr.nodes[index].sims = s[0], s[1]
			tr.nodes[0].sims += s[1]
		}
		return tr
	}

	t.Run("stops at a node with untried moves", func(t *testing.T) {
		tr := newTree(game.NewBoard(), game.Player1)
		require.Equal(t, 0, tr.selects(DefaultExploration))
	})

	t.Run("picks the child with max UCB", func(t *testing.T) {
		tr := build([2]int{1, 10}, [2]int{8, 10}, [2]int{5, 10})
		for _, index := range tr.nodes[0].children {
			tr.nodes[index].untried = []game.Column{0}
		}
		require.Equal(t, 2, tr.selects(DefaultExploration), "Child with 8 wins out of 10 should be selected")
	})

	t.Run("unvisited child goes first", func(t *testing.T) {
		tr := build([2]int{9, 10}, [2]int{0, 0}, [2]int{5, 10})
		for _, index := range tr.nodes[0].children {
			tr.nodes[index].untried = []game.Column{0}
		}
		require.Equal(t, 2, tr.selects(DefaultExploration), "Unvisited child should be selected")
	})

	t.Run("descends to a terminal leaf", func(t *testing.T) {
		tr := build([2]int{1, 1})
		tr.nodes[1].terminal = true
		tr.nodes[1].untried = nil
		require.Equal(t, 1, tr.selects(DefaultExploration))
	})
}

func TestTreeBestMove(t *testing.T) {
	t.Run("highest win rate", func(t *testing.T) {
		tr := newTree(game.NewBoard(), game.Player1)
		for col, s := range [][2]int{{2, 10}, {3, 4}, {0, 0}, {6, 10}} {
			index := tr.add(0, game.Column(col), game.NewBoard())
			tr.nodes[index].wins, tr.nodes[index].sims = s[0], s[1]
		}
		require.Equal(t, game.Column(1), tr.bestMove(), "3/4 beats 6/10 and the unvisited child is skipped")
	})

	t.Run("no visited children", func(t *testing.T) {
		tr := newTree(game.NewBoard(), game.Player1)
		require.Equal(t, game.NoColumn, tr.bestMove())
	})
}
