package processing

import (
	"fmt"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/mesh"
)

// SplitBorder clones the loop vertices used by the triangles on the left of
// the loop, so that both sides no longer share normals.
func SplitBorder(m *mesh.Mesh, loop []*mesh.Vertex) error {
	edges, err := BorderEdges(m, loop)
	if err != nil {
		return err
	}
	triangles := TrianglesInsideBorder(m, edges)

	clones := make([]*mesh.Vertex, len(loop))
	for _, t := range triangles {
		for i, v := range loop {
			if !t.ContainsVertex(v) {
				continue
			}
			if clones[i] == nil {
				if clones[i], err = m.CloneVertex(v, "clone"); err != nil {
					return err
				}
			}
			if err := m.ReplaceVertex(t, v, clones[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

// ExtrudePolygon raises the region on the left of the closed loop by height
// along its mean normal and joins it to the loop with side quads.
// It returns the clones of the loop vertices, which border the raised cap.
func ExtrudePolygon(m *mesh.Mesh, loop []*mesh.Vertex, height float64) ([]*mesh.Vertex, error) {
	if len(loop) < 3 {
		return nil, fmt.Errorf("%w: %d vertices", ErrBorder, len(loop))
	}
	seen := make(map[*mesh.Vertex]bool, len(loop))
	for _, v := range loop {
		if seen[v] {
			return nil, fmt.Errorf("%w: vertex %s appears twice", ErrBorder, v)
		}
		seen[v] = true
	}
	edges, err := BorderEdges(m, loop)
	if err != nil {
		return nil, err
	}
	triangles := TrianglesInsideBorder(m, edges)
	for _, t := range triangles {
		t.ComputeNormal()
	}
	direction := AverageNormals(triangles)
	if direction.LengthSquared() == 0 {
		return nil, fmt.Errorf("%w: loop of %d vertices encloses no area", ErrEmptyRegion, len(loop))
	}
	offset := direction.Mul(height)

	clones := make([]*mesh.Vertex, len(loop))
	for i, v := range loop {
		if clones[i], err = m.CloneVertex(v, "clone"); err != nil {
			return nil, err
		}
	}
	for _, t := range triangles {
		for i, v := range loop {
			if err := m.ReplaceVertex(t, v, clones[i]); err != nil {
				return nil, err
			}
		}
	}
	for _, v := range VerticesFromTriangles(triangles) {
		v.SetCoord(v.Coord().Add(offset))
	}

	n := len(loop)
	for i := range loop {
		a, b := loop[i], loop[(i+1)%n]
		a1, b1 := clones[i], clones[(i+1)%n]
		if err := m.AddQuad(a, b, b1, a1); err != nil {
			return nil, err
		}
	}
	return clones, nil
}

// ExtrudeTriangle moves t by distance along its normal and joins it to its
// former place with three quads
func ExtrudeTriangle(m *mesh.Mesh, t *mesh.Triangle, distance float64) (*mesh.Triangle, error) {
	t.ComputeNormal()
	offset := t.Normal().Mul(distance)
	vs := t.Vertices()

	var clones [3]*mesh.Vertex
	for i, v := range vs {
		clone, err := m.CloneVertex(v, "clone")
		if err != nil {
			return nil, err
		}
		clone.SetCoord(v.Coord().Add(offset))
		clones[i] = clone
	}
	for i, v := range vs {
		if err := m.ReplaceVertex(t, v, clones[i]); err != nil {
			return nil, err
		}
	}
	for i := range vs {
		a, b := vs[i], vs[(i+1)%3]
		a1, b1 := clones[i], clones[(i+1)%3]
		if err := m.AddQuad(a, b, b1, a1); err != nil {
			return nil, err
		}
	}
	return t, nil
}
