package processing

import (
	"fmt"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/mesh"
)

// ViolationKind classifies a mesh inconsistency
type ViolationKind int

const (
	DegenerateEdge ViolationKind = iota
	RepeatedVertex
	ForeignVertex
	UnreferencedVertex
	NonManifoldEdge
	InconsistentOrientation
)

var violationNames = map[ViolationKind]string{
	DegenerateEdge:          "degenerate edge",
	RepeatedVertex:          "repeated vertex",
	ForeignVertex:           "foreign vertex",
	UnreferencedVertex:      "unreferenced vertex",
	NonManifoldEdge:         "non-manifold edge",
	InconsistentOrientation: "inconsistent orientation",
}

func (k ViolationKind) String() string {
	if name, ok := violationNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ViolationKind(%d)", int(k))
}

// Violation is one inconsistency found by CheckMesh
type Violation struct {
	Kind     ViolationKind
	Triangle int // index in the triangle list, -1 when not relevant
	Vertices []*mesh.Vertex
	Message  string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Kind, v.Message)
}

// CheckMesh lists the inconsistencies of m. Triangles must not repeat a vertex,
// use vertices of another mesh, nor have zero length edges, and every vertex
// must be used. In strict mode every edge must also be shared by at most two
// triangles, running in opposite directions.
func CheckMesh(m *mesh.Mesh, strict bool) []Violation {
	var violations []Violation
	used := make(map[*mesh.Vertex]bool, m.VertexCount())

	for it, t := range m.Triangles() {
		vs := t.Vertices()
		for i := 0; i < 3; i++ {
			v := vs[i]
			used[v] = true
			if !m.Owns(v) {
				violations = append(violations, Violation{
					Kind: ForeignVertex, Triangle: it, Vertices: []*mesh.Vertex{v},
					Message: fmt.Sprintf("vertex #%d=%s of triangle #%d does not belong to the mesh", i, v, it),
				})
			}
			w := vs[(i+1)%3]
			if v == w {
				violations = append(violations, Violation{
					Kind: RepeatedVertex, Triangle: it, Vertices: []*mesh.Vertex{v},
					Message: fmt.Sprintf("vertices of triangle #%d are not all distinct", it),
				})
				continue
			}
			if v.Coord() == w.Coord() {
				violations = append(violations, Violation{
					Kind: DegenerateEdge, Triangle: it, Vertices: []*mesh.Vertex{v, w},
					Message: fmt.Sprintf("edge %s-%s of triangle #%d has zero length", v, w, it),
				})
			}
		}
	}

	for _, v := range m.Vertices() {
		if !used[v] {
			violations = append(violations, Violation{
				Kind: UnreferencedVertex, Triangle: -1, Vertices: []*mesh.Vertex{v},
				Message: fmt.Sprintf("vertex %s does not belong to any triangle", v),
			})
		}
	}

	if strict {
		violations = append(violations, checkManifold(m)...)
	}
	return violations
}

func checkManifold(m *mesh.Mesh) []Violation {
	var violations []Violation
	for _, e := range m.Edges() {
		if len(e.Triangles) > 2 {
			violations = append(violations, Violation{
				Kind: NonManifoldEdge, Triangle: -1, Vertices: []*mesh.Vertex{e.V1, e.V2},
				Message: fmt.Sprintf("edge %s-%s is shared by %d triangles", e.V1, e.V2, len(e.Triangles)),
			})
		}
		forward := 0
		for _, t := range e.Triangles {
			if t.ContainsEdge(e.V1, e.V2) {
				forward++
			}
		}
		if forward > 1 || len(e.Triangles)-forward > 1 {
			violations = append(violations, Violation{
				Kind: InconsistentOrientation, Triangle: -1, Vertices: []*mesh.Vertex{e.V1, e.V2},
				Message: fmt.Sprintf("edge %s-%s is used twice in the same direction", e.V1, e.V2),
			})
		}
	}
	return violations
}

// RemoveUnusedVertices deletes the vertices that no triangle uses and
// returns how many were removed
func RemoveUnusedVertices(m *mesh.Mesh) int {
	var unused []*mesh.Vertex
	for _, v := range m.Vertices() {
		if len(m.TrianglesAround(v)) == 0 {
			unused = append(unused, v)
		}
	}
	for _, v := range unused {
		_ = m.DelVertex(v)
	}
	return len(unused)
}
