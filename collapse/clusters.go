package collapse

import "sort"

// Clusters is the immutable result of version clustering. Every identifier
// of the input graph belongs to exactly one cluster; the cluster's leader is
// the head of its version chain (its oldest version).
type Clusters struct {
	leader  map[string]string
	chains  map[string][]string
	leaders []string
	multi   int
}

// Leader returns the leader of id's cluster.
func (c *Clusters) Leader(id string) (string, bool) {
	l, ok := c.leader[id]
	return l, ok
}

// Size returns the size of id's cluster, or 0 if id is unknown.
func (c *Clusters) Size(id string) int {
	l, ok := c.leader[id]
	if !ok {
		return 0
	}
	return len(c.chains[l])
}

// Chain returns the members of the cluster led by leader ordered from the
// oldest version (the leader) to the newest. The slice must not be modified.
func (c *Clusters) Chain(leader string) []string {
	return c.chains[leader]
}

// Leaders returns every cluster leader in ascending order. The slice must
// not be modified.
func (c *Clusters) Leaders() []string { return c.leaders }

// Len returns the number of clusters.
func (c *Clusters) Len() int { return len(c.leaders) }

// MultiVersion returns the number of clusters with more than one member.
func (c *Clusters) MultiVersion() int { return c.multi }

func newClusters(chains map[string][]string) *Clusters {
	c := &Clusters{
		leader:  make(map[string]string),
		chains:  chains,
		leaders: make([]string, 0, len(chains)),
	}
	for l, chain := range chains {
		c.leaders = append(c.leaders, l)
		for _, m := range chain {
			c.leader[m] = l
		}
		if len(chain) > 1 {
			c.multi++
		}
	}
	sort.Strings(c.leaders)
	return c
}
