package stl

import (
	"fmt"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/geometry"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/mesh"
)

// Model is a triangle soup as stored in STL files
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates a new STL model
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
	}
}

// AddTriangle adds a triangle to the model
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of triangles in the model
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// ToMesh welds identical positions into shared vertices named "p<n>" and
// returns the indexed mesh. Facets collapsing to fewer than three distinct
// points are dropped and counted.
func (m *Model) ToMesh(name string) (*mesh.Mesh, int, error) {
	if name == "" {
		name = m.Name
	}
	result := mesh.New(name)
	welded := make(map[geometry.Vector3]*mesh.Vertex)
	vertex := func(p geometry.Vector3) (*mesh.Vertex, error) {
		if v, ok := welded[p]; ok {
			return v, nil
		}
		v, err := result.AddVertex(fmt.Sprintf("p%d", len(welded)))
		if err != nil {
			return nil, err
		}
		v.SetCoord(p)
		welded[p] = v
		return v, nil
	}

	dropped := 0
	for _, t := range m.Triangles {
		var vs [3]*mesh.Vertex
		for i, p := range []geometry.Vector3{t.V1, t.V2, t.V3} {
			v, err := vertex(p)
			if err != nil {
				return nil, dropped, err
			}
			vs[i] = v
		}
		if vs[0] == vs[1] || vs[1] == vs[2] || vs[2] == vs[0] {
			dropped++
			continue
		}
		if _, err := result.AddTriangle(vs[0], vs[1], vs[2]); err != nil {
			return nil, dropped, err
		}
	}
	result.ComputeNormals()
	return result, dropped, nil
}

// FromMesh converts a mesh to a triangle soup with freshly computed facet normals
func FromMesh(m *mesh.Mesh) *Model {
	model := NewModel(m.Name())
	for _, t := range m.Triangles() {
		t.ComputeNormal()
		vs := t.Vertices()
		model.AddTriangle(geometry.NewTriangle(t.Normal(), vs[0].Coord(), vs[1].Coord(), vs[2].Coord()))
	}
	return model
}

// BoundingBox calculates the bounding box of the entire model
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, triangle := range m.Triangles {
		bbox.Extend(triangle.V1)
		bbox.Extend(triangle.V2)
		bbox.Extend(triangle.V3)
	}
	return bbox
}

// SurfaceArea calculates the total surface area of the model
func (m *Model) SurfaceArea() float64 {
	totalArea := 0.0
	for _, triangle := range m.Triangles {
		totalArea += triangle.Area()
	}
	return totalArea
}
