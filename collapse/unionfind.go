package collapse

// UnionFind is a disjoint set forest over dense indices with path halving
// and union by size.
type UnionFind struct {
	parent []int
	size   []int
}

// NewUnionFind returns n singleton sets, 0..n-1.
func NewUnionFind(n int) *UnionFind {
	u := &UnionFind{parent: make([]int, n), size: make([]int, n)}
	for i := range u.parent {
		u.parent[i] = i
		u.size[i] = 1
	}
	return u
}

// Find returns the representative of x's set.
func (u *UnionFind) Find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

// Union merges the sets of x and y and reports whether they were distinct.
func (u *UnionFind) Union(x, y int) bool {
	x, y = u.Find(x), u.Find(y)
	if x == y {
		return false
	}
	if u.size[x] < u.size[y] {
		x, y = y, x
	}
	u.parent[y] = x
	u.size[x] += u.size[y]
	return true
}

// Size returns the size of x's set.
func (u *UnionFind) Size(x int) int { return u.size[u.Find(x)] }
