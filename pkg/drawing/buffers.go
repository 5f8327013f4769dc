// Package drawing packs meshes into flat vertex and index arrays ready to be
// uploaded to a GPU.
package drawing

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/mesh"
)

// Mode is the primitive type the indices describe
type Mode string

const (
	Triangles     Mode = "triangles"
	TriangleStrip Mode = "triangle_strip"
	Lines         Mode = "lines"
)

// Layout lists the interleaved attributes of every packed vertex
type Layout []mesh.AttributeID

// DefaultLayout holds position, normal and color
var DefaultLayout = Layout{mesh.AttrCoord, mesh.AttrNormal, mesh.AttrColor}

// Stride returns the number of floats per vertex
func (l Layout) Stride() int {
	stride := 0
	for _, id := range l {
		stride += id.Components()
	}
	return stride
}

// Names returns the attribute names
func (l Layout) Names() []string {
	names := make([]string, len(l))
	for i, id := range l {
		names[i] = id.String()
	}
	return names
}

// ParseLayout reads attribute names such as "coord", "normal"
func ParseLayout(names []string) (Layout, error) {
	layout := make(Layout, 0, len(names))
	for _, name := range names {
		id, ok := mesh.ParseAttribute(name)
		if !ok {
			return nil, fmt.Errorf("unknown attribute %q", name)
		}
		layout = append(layout, id)
	}
	return layout, nil
}

// Buffers is an interleaved vertex array with its index array
type Buffers struct {
	Layout   []string  `json:"layout"`
	Stride   int       `json:"stride"`
	Mode     Mode      `json:"mode"`
	Vertices []float32 `json:"vertices"`
	Indices  []uint32  `json:"indices"`
}

// VertexCount returns the number of packed vertices
func (b *Buffers) VertexCount() int {
	if b.Stride == 0 {
		return 0
	}
	return len(b.Vertices) / b.Stride
}

// WriteJSON encodes the buffers
func (b *Buffers) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}

func newBuffers(layout Layout, mode Mode) *Buffers {
	return &Buffers{Layout: layout.Names(), Stride: layout.Stride(), Mode: mode}
}

// appendVertex adds the layout components of v
func appendVertex(data []float32, v *mesh.Vertex, layout Layout) []float32 {
	for _, id := range layout {
		value := v.Attribute(id)
		for c := 0; c < id.Components(); c++ {
			data = append(data, float32(value.Component(c)))
		}
	}
	return data
}

// PackVertices interleaves the attributes of every vertex in index order
func PackVertices(m *mesh.Mesh, layout Layout) []float32 {
	m.Renumber()
	data := make([]float32, 0, m.VertexCount()*layout.Stride())
	for _, v := range m.Vertices() {
		data = appendVertex(data, v, layout)
	}
	return data
}

// PackTriangles indexes every triangle
func PackTriangles(m *mesh.Mesh, layout Layout) *Buffers {
	b := newBuffers(layout, Triangles)
	b.Vertices = PackVertices(m, layout)
	b.Indices = make([]uint32, 0, 3*m.TriangleCount())
	for _, t := range m.Triangles() {
		for _, v := range t.Vertices() {
			b.Indices = append(b.Indices, uint32(v.Index()))
		}
	}
	return b
}

// PackEdges indexes every edge once as a line
func PackEdges(m *mesh.Mesh, layout Layout) *Buffers {
	b := newBuffers(layout, Lines)
	b.Vertices = PackVertices(m, layout)
	for _, e := range m.Edges() {
		b.Indices = append(b.Indices, uint32(e.V1.Index()), uint32(e.V2.Index()))
	}
	return b
}

// FaceNormalLines draws the normal of every triangle from its center.
// Both ends of a line carry the face normal.
func FaceNormalLines(m *mesh.Mesh, length float64) *Buffers {
	layout := Layout{mesh.AttrCoord, mesh.AttrNormal}
	b := newBuffers(layout, Lines)
	for i, t := range m.Triangles() {
		t.ComputeNormal()
		n := t.Normal()
		center := t.Center()
		for _, p := range []struct{ x, y, z float64 }{
			{center.X, center.Y, center.Z},
			{center.X + n.X*length, center.Y + n.Y*length, center.Z + n.Z*length},
		} {
			b.Vertices = append(b.Vertices,
				float32(p.x), float32(p.y), float32(p.z),
				float32(n.X), float32(n.Y), float32(n.Z))
		}
		b.Indices = append(b.Indices, uint32(2*i), uint32(2*i+1))
	}
	return b
}

// VertexNormalLines draws the normal of every vertex
func VertexNormalLines(m *mesh.Mesh, length float64) *Buffers {
	layout := Layout{mesh.AttrCoord, mesh.AttrNormal}
	b := newBuffers(layout, Lines)
	for i, v := range m.Vertices() {
		c := v.Coord()
		n := v.Normal()
		end := c.Add(n.Mul(length))
		b.Vertices = append(b.Vertices,
			float32(c.X), float32(c.Y), float32(c.Z), float32(n.X), float32(n.Y), float32(n.Z),
			float32(end.X), float32(end.Y), float32(end.Z), float32(n.X), float32(n.Y), float32(n.Z))
		b.Indices = append(b.Indices, uint32(2*i), uint32(2*i+1))
	}
	return b
}
