// Package processing edits meshes: bevel, extrusion, subdivision,
// transformation and consistency checks.
package processing

import (
	"errors"
	"fmt"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/geometry"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/mesh"
)

var (
	// ErrBorder is returned when a vertex loop is not a chain of triangle edges
	ErrBorder = errors.New("invalid border")
	// ErrEmptyRegion is returned when an operation finds no surface to work on
	ErrEmptyRegion = errors.New("empty region")
)

// MidName names the midpoint of a and b. The result does not depend on the order.
func MidName(a, b *mesh.Vertex) string {
	if a.Name() < b.Name() {
		return "m" + a.Name() + b.Name()
	}
	return "m" + b.Name() + a.Name()
}

// AverageNormals returns the area weighted mean normal of the triangles.
// Triangle normals must be up to date.
func AverageNormals(triangles []*mesh.Triangle) geometry.Vector3 {
	var sum geometry.Vector3
	for _, t := range triangles {
		sum = sum.Add(t.Normal().Mul(t.Surface()))
	}
	return sum.Normalize()
}

// AverageTangents returns the area weighted mean tangent of the triangles
func AverageTangents(triangles []*mesh.Triangle) geometry.Vector3 {
	var sum geometry.Vector3
	for _, t := range triangles {
		sum = sum.Add(t.Tangent().Mul(t.Surface()))
	}
	return sum.Normalize()
}

// VerticesFromTriangles lists the distinct vertices of the triangles
// in order of first use
func VerticesFromTriangles(triangles []*mesh.Triangle) []*mesh.Vertex {
	seen := make(map[*mesh.Vertex]bool)
	var result []*mesh.Vertex
	for _, t := range triangles {
		for _, v := range t.Vertices() {
			if !seen[v] {
				seen[v] = true
				result = append(result, v)
			}
		}
	}
	return result
}

// DirectedEdge goes from From to To
type DirectedEdge struct {
	From, To *mesh.Vertex
}

// BorderEdges returns the directed edges of the closed loop, the last vertex
// being joined to the first. Each edge must belong to a triangle lying on its left.
func BorderEdges(m *mesh.Mesh, loop []*mesh.Vertex) ([]DirectedEdge, error) {
	if len(loop) < 2 {
		return nil, fmt.Errorf("%w: %d vertices", ErrBorder, len(loop))
	}
	edges := make([]DirectedEdge, 0, len(loop))
	for i, a := range loop {
		b := loop[(i+1)%len(loop)]
		if m.TriangleLeftOf(a, b) == nil {
			return nil, fmt.Errorf("%w: vertex %s has no edge to %s", ErrBorder, a, b)
		}
		edges = append(edges, DirectedEdge{From: a, To: b})
	}
	return edges, nil
}

// TrianglesInsideBorder collects the triangles reachable from the left of the
// first border edge without crossing the border. The border must be closed or
// run from one side of the mesh to another, otherwise every connected
// triangle is selected.
func TrianglesInsideBorder(m *mesh.Mesh, border []DirectedEdge) []*mesh.Triangle {
	if len(border) == 0 {
		return nil
	}
	blocked := make(map[DirectedEdge]bool, len(border))
	for _, e := range border {
		blocked[e] = true
	}

	start := m.TriangleLeftOf(border[0].From, border[0].To)
	if start == nil {
		return nil
	}
	inside := []*mesh.Triangle{start}
	seen := map[*mesh.Triangle]bool{start: true}
	stack := []*mesh.Triangle{start}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		vs := t.Vertices()
		for i := 0; i < 3; i++ {
			a, b := vs[i], vs[(i+1)%3]
			if blocked[DirectedEdge{From: a, To: b}] {
				continue
			}
			next := m.TriangleLeftOf(b, a)
			if next == nil || seen[next] {
				continue
			}
			seen[next] = true
			inside = append(inside, next)
			stack = append(stack, next)
		}
	}
	return inside
}

// Homothety scales the triangle about its center. Vertices shared with other
// triangles move too.
func Homothety(t *mesh.Triangle, scale float64) *mesh.Triangle {
	t.ComputeNormal()
	center := t.Center()
	for _, v := range t.Vertices() {
		v.SetCoord(v.Coord().Sub(center).Mul(scale).Add(center))
	}
	return t
}
