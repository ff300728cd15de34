package numbering

import (
	"sort"

	"github.com/forestrie/go-provgraph/collapse"
)

// VisitOrder chooses the order in which cluster leaders seed the ranking
// traversal. Any order yields a valid numbering; the choice only affects
// locality and so the compression ratio.
type VisitOrder interface {
	Order(res collapse.Result) []string
}

// AscendingOrder visits leaders in ascending identifier order.
type AscendingOrder struct{}

func (AscendingOrder) Order(res collapse.Result) []string {
	leaders := res.Clusters.Leaders()
	order := make([]string, len(leaders))
	copy(order, leaders)
	return order
}

// ReachabilityOrder visits leaders with the heaviest downstream closure
// first. The weight of a leader is one plus the weights of the leaders it
// cites in the collapsed graph. Shared descendants are counted once per path,
// so the weight over estimates the reachable set; it is a ranking heuristic,
// not a count.
type ReachabilityOrder struct{}

func (ReachabilityOrder) Order(res collapse.Result) []string {
	weights := ReachWeights(res)
	leaders := res.Clusters.Leaders()
	order := make([]string, len(leaders))
	copy(order, leaders)
	sort.SliceStable(order, func(i, j int) bool {
		return weights[order[i]] > weights[order[j]]
	})
	return order
}

type frame struct {
	v    string
	next int
	acc  uint64
}

// ReachWeights computes the ReachabilityOrder weight of every leader with an
// explicit stack. Edges closing a cycle contribute nothing.
func ReachWeights(res collapse.Result) map[string]uint64 {
	g := res.Collapsed
	weights := make(map[string]uint64, g.Len())
	onStack := make(map[string]bool)

	for _, root := range res.Clusters.Leaders() {
		if _, done := weights[root]; done {
			continue
		}
		stack := []frame{{v: root, acc: 1}}
		onStack[root] = true
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			out := g.Outgoing(top.v)
			if top.next < len(out) {
				d := out[top.next].Dst
				top.next++
				if w, done := weights[d]; done {
					top.acc = saturatingAdd(top.acc, w)
					continue
				}
				if onStack[d] {
					continue
				}
				onStack[d] = true
				stack = append(stack, frame{v: d, acc: 1})
				continue
			}
			weights[top.v] = top.acc
			delete(onStack, top.v)
			acc := top.acc
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				parent := &stack[len(stack)-1]
				parent.acc = saturatingAdd(parent.acc, acc)
			}
		}
	}
	return weights
}

func saturatingAdd(a, b uint64) uint64 {
	if s := a + b; s >= a {
		return s
	}
	return ^uint64(0)
}
