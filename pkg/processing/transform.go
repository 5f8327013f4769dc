package processing

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/geometry"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/mesh"
)

// Transform applies matrix to every vertex coordinate. Normals are left as
// they are, call ComputeNormals afterwards.
func Transform(m *mesh.Mesh, matrix mgl64.Mat4) {
	for _, v := range m.Vertices() {
		v.SetCoord(v.Coord().TransformPoint(matrix))
	}
}

// CreateAABB builds the axis aligned box enclosing m as a new mesh
func CreateAABB(m *mesh.Mesh) (*mesh.Mesh, error) {
	bbox := m.Bounds()
	if bbox.IsEmpty() {
		return nil, fmt.Errorf("%w: mesh %s has no vertex", ErrEmptyRegion, m.Name())
	}
	lo, hi := bbox.Min, bbox.Max

	aabb := mesh.New("AABB")
	corners := map[string]geometry.Vector3{
		"xyz": {X: lo.X, Y: lo.Y, Z: lo.Z},
		"Xyz": {X: hi.X, Y: lo.Y, Z: lo.Z},
		"xYz": {X: lo.X, Y: hi.Y, Z: lo.Z},
		"XYz": {X: hi.X, Y: hi.Y, Z: lo.Z},
		"xyZ": {X: lo.X, Y: lo.Y, Z: hi.Z},
		"XyZ": {X: hi.X, Y: lo.Y, Z: hi.Z},
		"xYZ": {X: lo.X, Y: hi.Y, Z: hi.Z},
		"XYZ": {X: hi.X, Y: hi.Y, Z: hi.Z},
	}
	v := make(map[string]*mesh.Vertex, len(corners))
	for _, name := range []string{"xyz", "Xyz", "xYz", "XYz", "xyZ", "XyZ", "xYZ", "XYZ"} {
		vertex, err := aabb.AddVertex(name)
		if err != nil {
			return nil, err
		}
		vertex.SetCoord(corners[name])
		v[name] = vertex
	}

	faces := [][4]string{
		{"XyZ", "Xyz", "XYz", "XYZ"},
		{"Xyz", "xyz", "xYz", "XYz"},
		{"xyz", "xyZ", "xYZ", "xYz"},
		{"xyZ", "XyZ", "XYZ", "xYZ"},
		{"XYZ", "XYz", "xYz", "xYZ"},
		{"Xyz", "XyZ", "xyZ", "xyz"},
	}
	for _, f := range faces {
		if err := aabb.AddQuad(v[f[0]], v[f[1]], v[f[2]], v[f[3]]); err != nil {
			return nil, err
		}
	}
	aabb.ComputeNormals()
	return aabb, nil
}
