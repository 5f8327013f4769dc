// Package redux simplifies meshes by collapsing vertices into a neighbor,
// cheapest first according to quadric error metrics.
package redux

import (
	"log/slog"
	"math"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/mesh"
)

// state tracks the collapse candidate of every vertex
type state struct {
	m       *mesh.Mesh
	quadric map[*mesh.Vertex]Quadric
	cost    map[*mesh.Vertex]float64
	target  map[*mesh.Vertex]*mesh.Vertex
}

// ReduxCount collapses at most count vertices and returns how many were collapsed
func ReduxCount(m *mesh.Mesh, count int) int {
	s := newState(m)
	done := 0
	for done < count && s.collapseCheapest(math.Inf(1)) {
		done++
	}
	slog.Debug("redux", "mesh", m.Name(), "collapsed", done, "vertices", m.VertexCount())
	return done
}

// ReduxCost collapses vertices as long as the cheapest collapse costs at most
// maxCost and returns how many were collapsed
func ReduxCost(m *mesh.Mesh, maxCost float64) int {
	s := newState(m)
	done := 0
	for s.collapseCheapest(maxCost) {
		done++
	}
	slog.Debug("redux", "mesh", m.Name(), "collapsed", done, "vertices", m.VertexCount())
	return done
}

func newState(m *mesh.Mesh) *state {
	m.ComputeNormals()
	s := &state{
		m:       m,
		quadric: make(map[*mesh.Vertex]Quadric, m.VertexCount()),
		cost:    make(map[*mesh.Vertex]float64, m.VertexCount()),
		target:  make(map[*mesh.Vertex]*mesh.Vertex, m.VertexCount()),
	}
	for _, v := range m.Vertices() {
		s.updateQuadric(v)
	}
	for _, v := range m.Vertices() {
		s.updateCost(v)
	}
	return s
}

// updateQuadric sums the planes of the triangles around v, weighted by
// the inverse square root of their surface
func (s *state) updateQuadric(v *mesh.Vertex) {
	var q Quadric
	for _, t := range s.m.TrianglesAround(v) {
		if t.Surface() == 0 {
			continue
		}
		weight := 1 / math.Sqrt(t.Surface())
		q.AddPlane(t.Normal().Mul(weight), v.Coord())
	}
	s.quadric[v] = q
}

func (s *state) updateCost(v *mesh.Vertex) {
	best := math.Inf(1)
	var target *mesh.Vertex
	for _, candidate := range s.m.NeighborVertices(v) {
		q := s.quadric[v]
		q.AddQuadric(s.quadric[candidate])
		cost := q.Cost(candidate.Coord())
		if cost < best {
			best = cost
			target = candidate
			if best <= 0 {
				break
			}
		}
	}
	s.cost[v] = best
	s.target[v] = target
}

func (s *state) collapseCheapest(maxCost float64) bool {
	var cheapest *mesh.Vertex
	best := maxCost
	for _, v := range s.m.Vertices() {
		if s.target[v] != nil && s.cost[v] <= best {
			cheapest = v
			best = s.cost[v]
		}
	}
	if cheapest == nil {
		return false
	}

	u, v := cheapest, s.target[cheapest]
	if err := s.m.Collapse(u, v); err != nil {
		slog.Warn("collapse failed", "from", u.Name(), "to", v.Name(), "error", err)
		s.target[u] = nil
		return s.collapseCheapest(maxCost)
	}
	delete(s.quadric, u)
	delete(s.cost, u)
	delete(s.target, u)

	for _, t := range s.m.TrianglesAround(v) {
		t.ComputeNormal()
	}
	neighbors := s.m.NeighborVertices(v)
	s.updateQuadric(v)
	for _, n := range neighbors {
		s.updateQuadric(n)
	}
	s.updateCost(v)
	for _, n := range neighbors {
		s.updateCost(n)
	}
	return true
}
