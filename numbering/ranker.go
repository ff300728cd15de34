package numbering

import (
	"fmt"

	"github.com/forestrie/go-provgraph/collapse"
)

// Ranker produces the canonical order of every identifier: position i in
// the returned slice becomes canonical id i. Implementations must emit each
// cluster as one contiguous run in version chain order.
type Ranker interface {
	Rank(res collapse.Result) ([]string, error)
}

// TransposeBFSRanker ranks clusters breadth first along the incoming edges
// of the collapsed graph, so a cluster is placed soon after the clusters it
// is cited by. Each dequeued cluster receives a contiguous block of ids
// along its version chain.
type TransposeBFSRanker struct {
	Order VisitOrder
}

func (r TransposeBFSRanker) Rank(res collapse.Result) ([]string, error) {
	order := r.Order
	if order == nil {
		order = AscendingOrder{}
	}

	total := 0
	for _, l := range res.Clusters.Leaders() {
		total += len(res.Clusters.Chain(l))
	}

	ranked := make([]string, 0, total)
	seen := make(map[string]bool, res.Clusters.Len())
	var queue []string
	for _, seed := range order.Order(res) {
		if seen[seed] {
			continue
		}
		seen[seed] = true
		queue = append(queue, seed)
		for len(queue) > 0 {
			l := queue[0]
			queue = queue[1:]
			chain := res.Clusters.Chain(l)
			if len(chain) == 0 {
				return nil, fmt.Errorf("%w: %s", ErrUnknownLeader, l)
			}
			ranked = append(ranked, chain...)
			for _, e := range res.Collapsed.Incoming(l) {
				if !seen[e.Src] {
					seen[e.Src] = true
					queue = append(queue, e.Src)
				}
			}
		}
	}

	if len(ranked) != total {
		return nil, fmt.Errorf("%w: ranked %d of %d identifiers", ErrIncompleteOrder, len(ranked), total)
	}
	return ranked, nil
}
