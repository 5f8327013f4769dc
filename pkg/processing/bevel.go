package processing

import (
	"fmt"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/geometry"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/mesh"
)

// BevelVertex cuts the corner at v. Every edge around v gets a new vertex
// pushed amount deep along -direction, v is removed and the hole is filled
// with a polygon facing direction. A vertex with a single triangle around it
// leaves a two vertex border and no polygon. The new border is returned in
// fan order. On error the mesh is left unchanged.
func BevelVertex(m *mesh.Mesh, v *mesh.Vertex, amount float64, direction geometry.Vector3) ([]*mesh.Vertex, error) {
	if !m.Owns(v) {
		return nil, fmt.Errorf("%w: %v", mesh.ErrForeignVertex, v)
	}
	dir := direction.Normalize()
	if dir.LengthSquared() == 0 {
		return nil, fmt.Errorf("%w: null bevel direction", ErrEmptyRegion)
	}
	fan := m.TrianglesOrderedAround(v)
	if len(fan) == 0 {
		return nil, fmt.Errorf("%w: vertex %s has no triangle", ErrEmptyRegion, v)
	}

	var border, created []*mesh.Vertex
	rollback := func() {
		for _, mid := range created {
			m.DelVertex(mid)
		}
	}
	midpoint := func(other *mesh.Vertex) (*mesh.Vertex, error) {
		name := MidName(v, other)
		if mid := m.VertexByName(name); mid != nil {
			return mid, nil
		}
		mid, err := m.AddVertex(name)
		if err != nil {
			return nil, err
		}
		created = append(created, mid)
		k := 0.0
		if den := dir.Dot(v.Coord().Sub(other.Coord())); den != 0 {
			k = amount / den
		}
		mid.Lerp(v, other, k)
		border = append(border, mid)
		return mid, nil
	}

	type quad struct{ s1, s2, m2, m1 *mesh.Vertex }
	quads := make([]quad, 0, len(fan))
	for _, t := range fan {
		t.RotateToFirst(v)
		s1, s2 := t.Vertex(1), t.Vertex(2)
		m1, err := midpoint(s1)
		if err != nil {
			rollback()
			return nil, err
		}
		m2, err := midpoint(s2)
		if err != nil {
			rollback()
			return nil, err
		}
		quads = append(quads, quad{s1, s2, m2, m1})
	}

	var fill [][3]*mesh.Vertex
	if len(border) >= 3 {
		var err error
		if fill, err = mesh.TriangulatePolygon(border, dir); err != nil {
			rollback()
			return nil, fmt.Errorf("bevel %s: %w", v, err)
		}
	}

	m.DelTriangles(fan)
	for _, q := range quads {
		if err := m.AddQuad(q.s1, q.s2, q.m2, q.m1); err != nil {
			return nil, err
		}
	}
	if err := m.DelVertex(v); err != nil {
		return nil, err
	}
	for _, t := range fill {
		if _, err := m.AddTriangle(t[0], t[1], t[2]); err != nil {
			return nil, err
		}
	}
	m.ComputeNormals()
	return border, nil
}
