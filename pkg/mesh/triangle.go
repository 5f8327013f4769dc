package mesh

import (
	"fmt"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/geometry"
)

// Triangle references three distinct vertices of its mesh. The order of the
// vertices defines the orientation of the face.
type Triangle struct {
	v       [3]*Vertex
	normal  geometry.Vector3
	tangent geometry.Vector3
	center  geometry.Vector3
	surface float64
	w       float64
}

// Vertex returns the i-th vertex (0..2), nil otherwise
func (t *Triangle) Vertex(i int) *Vertex {
	if i < 0 || i > 2 {
		return nil
	}
	return t.v[i]
}

// Vertices returns the three vertices in order
func (t *Triangle) Vertices() [3]*Vertex {
	return t.v
}

// Normal returns the unit normal computed by ComputeNormal
func (t *Triangle) Normal() geometry.Vector3 {
	return t.normal
}

// Tangent returns the unit tangent computed by ComputeTangent
func (t *Triangle) Tangent() geometry.Vector3 {
	return t.tangent
}

// Center returns the centroid computed by ComputeNormal
func (t *Triangle) Center() geometry.Vector3 {
	return t.center
}

// Surface returns the area computed by ComputeNormal
func (t *Triangle) Surface() float64 {
	return t.surface
}

// W returns the plane offset: dot(Normal, P) + W = 0 for points P of the plane
func (t *Triangle) W() float64 {
	return t.w
}

// ComputeNormal updates normal, center, surface and plane offset.
// A degenerate triangle gets a zero normal.
func (t *Triangle) ComputeNormal() {
	a := t.v[0].Coord()
	b := t.v[1].Coord()
	c := t.v[2].Coord()

	t.center = a.Add(b).Add(c).Mul(1.0 / 3.0)

	cross := b.Sub(a).Cross(c.Sub(a))
	t.surface = 0.5 * cross.Length()
	t.normal = cross.Normalize()
	t.w = -t.normal.Dot(a)
}

// ComputeTangent updates the tangent from the t texture coordinate
func (t *Triangle) ComputeTangent() {
	a := t.v[0]
	b := t.v[1]
	c := t.v[2]

	ab := b.Coord().Sub(a.Coord())
	ac := c.Coord().Sub(a.Coord())

	tab := b.TexCoord().Y - a.TexCoord().Y
	tac := c.TexCoord().Y - a.TexCoord().Y

	t.tangent = ab.Mul(tac).Sub(ac.Mul(tab)).Normalize()
}

// Index returns the position of v in the triangle, or -1
func (t *Triangle) Index(v *Vertex) int {
	for i, tv := range t.v {
		if tv == v {
			return i
		}
	}
	return -1
}

// ContainsVertex reports whether v is one of the vertices
func (t *Triangle) ContainsVertex(v *Vertex) bool {
	return t.Index(v) >= 0
}

// ContainsEdge reports whether the directed edge a->b follows the triangle orientation
func (t *Triangle) ContainsEdge(a, b *Vertex) bool {
	i := t.Index(a)
	if i < 0 {
		return false
	}
	return t.v[(i+1)%3] == b
}

// RotateToFirst cycles the vertices so that v comes first, keeping the orientation
func (t *Triangle) RotateToFirst(v *Vertex) bool {
	i := t.Index(v)
	if i < 0 {
		return false
	}
	t.v = [3]*Vertex{t.v[i], t.v[(i+1)%3], t.v[(i+2)%3]}
	return true
}

// Next returns the vertex following v in the triangle orientation
func (t *Triangle) Next(v *Vertex) *Vertex {
	i := t.Index(v)
	if i < 0 {
		return nil
	}
	return t.v[(i+1)%3]
}

// Prev returns the vertex preceding v in the triangle orientation
func (t *Triangle) Prev(v *Vertex) *Vertex {
	i := t.Index(v)
	if i < 0 {
		return nil
	}
	return t.v[(i+2)%3]
}

func (t *Triangle) String() string {
	return fmt.Sprintf("Triangle(%s,%s,%s)", t.v[0], t.v[1], t.v[2])
}
