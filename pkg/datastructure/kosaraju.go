package datastructure

// RunKosaraju. runs kosaraju's algorithm to find strongly connected components (SCCs) of the road network
// and builds the condensation graph used for reachability checks between two vertices.
func (g *Graph) RunKosaraju() {
	n := Index(g.NumberOfVertices())
	components := make([][]Index, 0, 10)

	order := make([]Index, 0, n)
	visited := make([]bool, n)
	for v := Index(0); v < n; v++ {
		if !visited[v] {
			g.dfs(v, &order, visited, false)
		}
	}

	// reset visited
	visited = make([]bool, n)

	for i := len(order) - 1; i >= 0; i-- {
		v := order[i]
		if !visited[v] {
			component := make([]Index, 0, 10)
			g.dfs(v, &component, visited, true)
			components = append(components, component)
		}
	}
	sccs := make([]Index, n)

	for i, component := range components {
		for _, v := range component {
			sccs[v] = Index(i)
		}
	}
	g.SetSCCs(sccs)

	condAdj := make([][]Index, len(components))
	seen := make(map[[2]Index]struct{})
	for v := Index(0); v < n; v++ {
		g.ForOutEdgesOf(v, func(e *Edge) {
			from, to := sccs[v], sccs[e.head]
			if from == to {
				return
			}
			if _, ok := seen[[2]Index{from, to}]; ok {
				return
			}
			seen[[2]Index{from, to}] = struct{}{}
			condAdj[from] = append(condAdj[from], to)
		})
	}

	g.SetSCCCondensationAdj(condAdj)
}

// dfs. iterative post-order dfs. forward dfs follows outEdges, reversed dfs follows inEdges.
func (g *Graph) dfs(s Index, output *[]Index, visited []bool, reversed bool) {
	type frame struct {
		v    Index
		next int
	}

	neighbours := func(v Index) []Index {
		if reversed {
			return g.GetInEdges(v)
		}
		return g.GetOutEdges(v)
	}

	visited[s] = true
	stack := []frame{{v: s}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		adj := neighbours(top.v)
		if top.next < len(adj) {
			e := g.edges[adj[top.next]]
			top.next++
			w := e.head
			if reversed {
				w = e.tail
			}
			if !visited[w] {
				visited[w] = true
				stack = append(stack, frame{v: w})
			}
			continue
		}
		*output = append(*output, top.v)
		stack = stack[:len(stack)-1]
	}
}
