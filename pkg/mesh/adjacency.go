package mesh

import (
	"cmp"
	"slices"
)

func (m *Mesh) adjacency() map[*Vertex][]*Triangle {
	if !m.stale && m.incidence != nil {
		return m.incidence
	}
	m.incidence = make(map[*Vertex][]*Triangle, len(m.vertices))
	for _, t := range m.triangles {
		for _, v := range t.v {
			m.incidence[v] = append(m.incidence[v], t)
		}
	}
	m.stale = false
	return m.incidence
}

// TrianglesAround returns the triangles using v, in mesh order
func (m *Mesh) TrianglesAround(v *Vertex) []*Triangle {
	return slices.Clone(m.adjacency()[v])
}

// NeighborVertices returns the vertices sharing a triangle with v
func (m *Mesh) NeighborVertices(v *Vertex) []*Vertex {
	var neighbors []*Vertex
	for _, t := range m.adjacency()[v] {
		for _, w := range t.v {
			if w != v && !slices.Contains(neighbors, w) {
				neighbors = append(neighbors, w)
			}
		}
	}
	return neighbors
}

// TriangleLeftOf returns the triangle holding the directed edge a->b, or nil
func (m *Mesh) TriangleLeftOf(a, b *Vertex) *Triangle {
	for _, t := range m.adjacency()[a] {
		if t.ContainsEdge(a, b) {
			return t
		}
	}
	return nil
}

// TriangleRightOf returns the triangle holding the directed edge b->a, or nil
func (m *Mesh) TriangleRightOf(a, b *Vertex) *Triangle {
	return m.TriangleLeftOf(b, a)
}

// TrianglesOrderedAround returns the triangles using v so that consecutive
// triangles share an edge, turning in the triangles orientation. On a border
// vertex the walk starts at the border. Triangles that cannot be reached
// (non manifold fans) are appended at the end.
func (m *Mesh) TrianglesOrderedAround(v *Vertex) []*Triangle {
	around := m.adjacency()[v]
	if len(around) == 0 {
		return nil
	}

	// successor of t holds v->prev(v in t), predecessor holds next(v in t)->v
	next := func(t *Triangle) *Triangle {
		c := t.Prev(v)
		for _, o := range around {
			if o != t && o.ContainsEdge(v, c) {
				return o
			}
		}
		return nil
	}
	prev := func(t *Triangle) *Triangle {
		b := t.Next(v)
		for _, o := range around {
			if o != t && o.ContainsEdge(b, v) {
				return o
			}
		}
		return nil
	}

	start := around[0]
	seen := map[*Triangle]bool{start: true}
	for p := prev(start); p != nil && !seen[p]; p = prev(p) {
		seen[p] = true
		start = p
	}

	ordered := make([]*Triangle, 0, len(around))
	visited := make(map[*Triangle]bool, len(around))
	for t := start; t != nil && !visited[t]; t = next(t) {
		visited[t] = true
		ordered = append(ordered, t)
	}
	for _, t := range around {
		if !visited[t] {
			ordered = append(ordered, t)
		}
	}
	return ordered
}

// Edge joins two vertices and lists the triangles that use it in any direction
type Edge struct {
	V1, V2    *Vertex
	Triangles []*Triangle
}

// IsBoundary reports whether only one triangle uses the edge
func (e Edge) IsBoundary() bool {
	return len(e.Triangles) == 1
}

// Length returns the distance between both ends
func (e Edge) Length() float64 {
	return e.V1.Coord().Distance(e.V2.Coord())
}

// Edges returns all undirected edges, V1 having the lowest index,
// sorted by (V1, V2) index
func (m *Mesh) Edges() []Edge {
	m.Renumber()
	type key struct{ a, b int }
	found := make(map[key]int)
	var edges []Edge
	for _, t := range m.triangles {
		for i := 0; i < 3; i++ {
			a, b := t.v[i], t.v[(i+1)%3]
			if a.index > b.index {
				a, b = b, a
			}
			k := key{a.index, b.index}
			j, ok := found[k]
			if !ok {
				j = len(edges)
				found[k] = j
				edges = append(edges, Edge{V1: a, V2: b})
			}
			edges[j].Triangles = append(edges[j].Triangles, t)
		}
	}
	slices.SortFunc(edges, func(x, y Edge) int {
		if c := cmp.Compare(x.V1.index, y.V1.index); c != 0 {
			return c
		}
		return cmp.Compare(x.V2.index, y.V2.index)
	})
	return edges
}

// BoundaryEdges returns the directed border edges of triangles: a->b such
// that no triangle holds b->a
func (m *Mesh) BoundaryEdges(triangles []*Triangle) [][2]*Vertex {
	type key struct{ a, b *Vertex }
	directed := make(map[key]bool)
	for _, t := range triangles {
		for i := 0; i < 3; i++ {
			directed[key{t.v[i], t.v[(i+1)%3]}] = true
		}
	}
	var border [][2]*Vertex
	for _, t := range triangles {
		for i := 0; i < 3; i++ {
			a, b := t.v[i], t.v[(i+1)%3]
			if !directed[key{b, a}] {
				border = append(border, [2]*Vertex{a, b})
			}
		}
	}
	return border
}
