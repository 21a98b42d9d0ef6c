package searcher

import "math"

// Hyperparameters for MCTS

const DefaultExploration = math.Sqrt2 // c in UCB1

type uct struct {
	numerator float64
}

// newUCT prepares UCB1 scoring for the children of a node visited N times.
func newUCT(c float64, N int) uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return uct{numerator: c * c * math.Log(float64(N))}
}

// evaluate returns wins/sims + c*sqrt(ln(N)/sims). Unvisited children score +Inf
// so they are always tried before any formula is applied.
func (u uct) evaluate(wins, sims int) float64 {
	if sims == 0 {
		return math.Inf(1)
	}
	n := float64(sims)
	return float64(wins)/n + math.Sqrt(u.numerator/n)
}
