// Package query answers transitive provenance questions over any graph that
// can report the direct neighbors of a canonical id, such as *cpg.Graph.
package query

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrNodeOutOfRange = errors.New("query: node id out of range")
	ErrPathLimit      = errors.New("query: path limit reached")
)

type Neighbors interface {
	GetOutgoingEdges(id uint32) ([]uint32, error)
	GetIncomingEdges(id uint32) ([]uint32, error)
	NodeCount() uint32
}

// Descendants returns, sorted, every id reachable from id along outgoing
// edges. id itself is only included if it lies on a cycle.
func Descendants(g Neighbors, id uint32) ([]uint32, error) {
	return reach(g, id, g.GetOutgoingEdges)
}

// Ancestors returns, sorted, every id from which id is reachable.
func Ancestors(g Neighbors, id uint32) ([]uint32, error) {
	return reach(g, id, g.GetIncomingEdges)
}

func reach(g Neighbors, id uint32, next func(uint32) ([]uint32, error)) ([]uint32, error) {
	if id >= g.NodeCount() {
		return nil, fmt.Errorf("%w: %d", ErrNodeOutOfRange, id)
	}
	visited := make(map[uint32]struct{})
	queue := []uint32{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		ns, err := next(cur)
		if err != nil {
			return nil, err
		}
		for _, n := range ns {
			if _, ok := visited[n]; ok {
				continue
			}
			visited[n] = struct{}{}
			queue = append(queue, n)
		}
	}

	out := make([]uint32, 0, len(visited))
	for n := range visited {
		out = append(out, n)
	}
	slices.Sort(out)
	return out, nil
}

type pathFrame struct {
	node uint32
	next []uint32
}

// Paths enumerates the simple paths from src to dst along outgoing edges,
// each starting with src and ending with dst. At most limit paths are
// returned; when more exist the result is truncated and the error wraps
// ErrPathLimit. limit <= 0 means no limit.
func Paths(g Neighbors, src, dst uint32, limit int) ([][]uint32, error) {
	for _, id := range []uint32{src, dst} {
		if id >= g.NodeCount() {
			return nil, fmt.Errorf("%w: %d", ErrNodeOutOfRange, id)
		}
	}
	if src == dst {
		return [][]uint32{{src}}, nil
	}

	// outgoing lists are decoded once per node
	memo := make(map[uint32][]uint32)
	outgoing := func(id uint32) ([]uint32, error) {
		if ns, ok := memo[id]; ok {
			return ns, nil
		}
		ns, err := g.GetOutgoingEdges(id)
		if err != nil {
			return nil, err
		}
		memo[id] = ns
		return ns, nil
	}

	first, err := outgoing(src)
	if err != nil {
		return nil, err
	}
	var paths [][]uint32
	onPath := map[uint32]bool{src: true}
	stack := []pathFrame{{node: src, next: first}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if len(top.next) == 0 {
			delete(onPath, top.node)
			stack = stack[:len(stack)-1]
			continue
		}
		child := top.next[0]
		top.next = top.next[1:]
		if onPath[child] {
			continue
		}
		if child == dst {
			if limit > 0 && len(paths) == limit {
				return paths, fmt.Errorf("%w: %d", ErrPathLimit, limit)
			}
			path := make([]uint32, 0, len(stack)+1)
			for _, f := range stack {
				path = append(path, f.node)
			}
			paths = append(paths, append(path, dst))
			continue
		}
		ns, err := outgoing(child)
		if err != nil {
			return nil, err
		}
		onPath[child] = true
		stack = append(stack, pathFrame{node: child, next: ns})
	}
	return paths, nil
}
