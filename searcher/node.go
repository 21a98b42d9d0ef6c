package searcher

import (
	"connect4/game"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

const noParent = -1

// node is one position in the search tree. Nodes live in tree.nodes and refer to
// each other by index: the parent owns its children, the child only remembers
// where its parent is.
type node struct {
	board    game.Board
	player   game.Piece  // player to move
	opponent game.Piece  // player whose move produced this node
	move     game.Column // move from the parent, NoColumn at the root
	wins     int         // simulations won by opponent through this node
	sims     int
	untried  []game.Column
	children []int
	parent   int
	terminal bool
	winner   game.Piece // result of a terminal node, Empty for a draw
}

type tree struct {
	nodes []node
}

func newTree(board game.Board, player game.Piece) *tree {
	root := node{
		board:    board,
		player:   player,
		opponent: player.Opponent(),
		move:     game.NoColumn,
		untried:  board.LegalColumns(),
		parent:   noParent,
	}
	return &tree{nodes: []node{root}}
}

func (t *tree) size() int {
	return len(t.nodes)
}

// add appends a child reached by move and returns its index.
func (t *tree) add(parent int, move game.Column, board game.Board) int {
	mover := t.nodes[parent].player
	child := node{
		board:    board,
		player:   mover.Opponent(),
		opponent: mover,
		move:     move,
		parent:   parent,
	}
	switch {
	case board.HasFourInARow(mover):
		child.terminal, child.winner = true, mover
	case board.IsFull():
		child.terminal, child.winner = true, game.Empty
	default:
		child.untried = board.LegalColumns()
	}

	t.nodes = append(t.nodes, child)
	index := len(t.nodes) - 1
	t.nodes[parent].children = append(t.nodes[parent].children, index)
	return index
}

// selects descends from the root through fully expanded nodes by UCB1 and stops at
// the first node that still has untried moves or has no children at all.
func (t *tree) selects(c float64) int {
	index := 0
	for {
		n := &t.nodes[index]
		if len(n.untried) > 0 || len(n.children) == 0 {
			return index
		}
		index = t.pickChild(index, c)
	}
}

func (t *tree) pickChild(index int, c float64) int {
	n := &t.nodes[index]
	policy := newUCT(c, n.sims)

	best := -1
	bestScore := math.Inf(-1)
	for _, ci := range n.children {
		child := &t.nodes[ci]
		score := policy.evaluate(child.wins, child.sims)
		if best == -1 || score > bestScore {
			best, bestScore = ci, score
		}
	}
	return best
}

// expands plays one untried move, chosen uniformly at random, and returns the new child.
func (t *tree) expands(index int, r *rand.Rand) int {
	n := &t.nodes[index]
	i := r.Intn(len(n.untried))
	move := n.untried[i]
	n.untried = slices.Delete(n.untried, i, i+1)

	board, err := n.board.Apply(move, n.player)
	if err != nil {
		panic(fmt.Sprintf("expanding untried move: %v", err))
	}
	return t.add(index, move, board)
}

// backup walks from index to the root crediting a win to every node whose incoming
// move was made by the winner. A draw is passed as game.Empty and credits nobody.
func (t *tree) backup(index int, winner game.Piece) {
	for index != noParent {
		n := &t.nodes[index]
		n.sims++
		if winner != game.Empty && n.opponent == winner {
			n.wins++
		}
		index = n.parent
	}
}

// bestMove returns the move of the root child with the highest win rate.
// Children that were never simulated are skipped.
func (t *tree) bestMove() game.Column {
	root := &t.nodes[0]
	move := game.NoColumn
	bestRate := math.Inf(-1)
	for _, ci := range root.children {
		child := &t.nodes[ci]
		if child.sims == 0 {
			continue
		}
		rate := float64(child.wins) / float64(child.sims)
		if rate > bestRate {
			move, bestRate = child.move, rate
		}
	}
	return move
}
