package drawing

import (
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/mesh"
)

// strip is a list of vertices where triangle i is (s[i], s[i+1], s[i+2])
// for even i and (s[i+1], s[i], s[i+2]) for odd i
type strip []*mesh.Vertex

// nextEdge returns the directed edge the next triangle must hold
func (s strip) nextEdge() (*mesh.Vertex, *mesh.Vertex) {
	n := len(s)
	if n%2 == 0 {
		return s[n-2], s[n-1]
	}
	return s[n-1], s[n-2]
}

// buildStrips covers every triangle with strips, extending each one greedily
// through neighbor triangles
func buildStrips(m *mesh.Mesh) []strip {
	used := make(map[*mesh.Triangle]bool, m.TriangleCount())
	extend := func(s strip) strip {
		for {
			a, b := s.nextEdge()
			next := m.TriangleLeftOf(a, b)
			if next == nil || used[next] {
				return s
			}
			used[next] = true
			s = append(s, next.Next(b))
		}
	}

	var strips []strip
	for _, t := range m.Triangles() {
		if used[t] {
			continue
		}
		used[t] = true
		vs := t.Vertices()

		// start from the rotation that lets the strip grow
		best := strip{vs[0], vs[1], vs[2]}
		for r := 0; r < 3; r++ {
			s := strip{vs[r], vs[(r+1)%3], vs[(r+2)%3]}
			a, b := s.nextEdge()
			if next := m.TriangleLeftOf(a, b); next != nil && !used[next] {
				best = s
				break
			}
		}
		strips = append(strips, extend(best))
	}
	return strips
}

// PackStrips covers the mesh with triangle strips joined by degenerate
// triangles into a single strip. Every strip starts at an even position so
// that triangles keep their orientation.
func PackStrips(m *mesh.Mesh, layout Layout) *Buffers {
	b := newBuffers(layout, TriangleStrip)
	b.Vertices = PackVertices(m, layout)

	var prev strip
	for _, s := range buildStrips(m) {
		if prev != nil {
			last := uint32(prev[len(prev)-1].Index())
			if len(b.Indices)%2 == 1 {
				b.Indices = append(b.Indices, last)
			}
			b.Indices = append(b.Indices, last, uint32(s[0].Index()))
		}
		for _, v := range s {
			b.Indices = append(b.Indices, uint32(v.Index()))
		}
		prev = s
	}
	return b
}
