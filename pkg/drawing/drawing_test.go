package drawing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/mesh"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/topology"
)

func grid(t *testing.T, nx, nz int, foldX, foldZ bool) *mesh.Mesh {
	t.Helper()
	m := mesh.New("grid")
	_, err := topology.AddRectangularSurface(m, nx, nz, "g%d-%d", foldX, foldZ)
	require.NoError(t, err)
	m.ComputeNormals()
	return m
}

// canonical rotates an oriented triangle so that its smallest index comes first
func canonical(a, b, c uint32) string {
	switch {
	case a <= b && a <= c:
		return fmt.Sprint(a, b, c)
	case b <= a && b <= c:
		return fmt.Sprint(b, c, a)
	default:
		return fmt.Sprint(c, a, b)
	}
}

func meshTriangles(m *mesh.Mesh) map[string]int {
	set := map[string]int{}
	for _, tri := range m.Triangles() {
		vs := tri.Vertices()
		set[canonical(uint32(vs[0].Index()), uint32(vs[1].Index()), uint32(vs[2].Index()))]++
	}
	return set
}

// decodeStrip expands a triangle strip, dropping degenerate triangles
func decodeStrip(indices []uint32) map[string]int {
	set := map[string]int{}
	for i := 0; i+2 < len(indices); i++ {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		if a == b || b == c || a == c {
			continue
		}
		if i%2 == 1 {
			a, b = b, a
		}
		set[canonical(a, b, c)]++
	}
	return set
}

func TestLayout(t *testing.T) {
	assert.Equal(t, 10, DefaultLayout.Stride())
	assert.Equal(t, []string{"coord", "normal", "color"}, DefaultLayout.Names())

	layout, err := ParseLayout([]string{"coord", "texcoord", "weights"})
	require.NoError(t, err)
	assert.Equal(t, 9, layout.Stride())

	_, err = ParseLayout([]string{"coord", "bogus"})
	assert.Error(t, err)
}

func TestPackTriangles(t *testing.T) {
	m := grid(t, 3, 3, false, false)
	b := PackTriangles(m, DefaultLayout)

	assert.Equal(t, Triangles, b.Mode)
	assert.Equal(t, 9, b.VertexCount())
	assert.Len(t, b.Indices, 24)
	assert.Equal(t, meshTriangles(m), decodeTriangles(b.Indices))

	// vertex 4 is the grid center (1, 0, 1) facing +Y, white
	assert.Equal(t, []float32{1, 0, 1, 0, 1, 0, 1, 1, 1, 1}, b.Vertices[40:50])
}

func decodeTriangles(indices []uint32) map[string]int {
	set := map[string]int{}
	for i := 0; i+2 < len(indices); i += 3 {
		set[canonical(indices[i], indices[i+1], indices[i+2])]++
	}
	return set
}

func TestPackStrips(t *testing.T) {
	cases := []struct {
		name         string
		nx, nz       int
		foldX, foldZ bool
	}{
		{"single cell", 2, 2, false, false},
		{"grid", 5, 4, false, false},
		{"cylinder", 6, 3, true, false},
		{"torus", 4, 4, true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := grid(t, tc.nx, tc.nz, tc.foldX, tc.foldZ)
			b := PackStrips(m, Layout{mesh.AttrCoord})

			assert.Equal(t, TriangleStrip, b.Mode)
			assert.Equal(t, 3, b.Stride)
			assert.Equal(t, meshTriangles(m), decodeStrip(b.Indices))
		})
	}
}

func TestPackStripsIsShorterThanTriangles(t *testing.T) {
	m := grid(t, 8, 2, false, false)
	strips := PackStrips(m, Layout{mesh.AttrCoord})
	triangles := PackTriangles(m, Layout{mesh.AttrCoord})
	assert.Less(t, len(strips.Indices), len(triangles.Indices))
}

func TestPackEdges(t *testing.T) {
	m := grid(t, 3, 3, false, false)
	b := PackEdges(m, Layout{mesh.AttrCoord})

	assert.Equal(t, Lines, b.Mode)
	assert.Len(t, b.Indices, 2*16)
	seen := map[[2]uint32]bool{}
	for i := 0; i < len(b.Indices); i += 2 {
		a, c := b.Indices[i], b.Indices[i+1]
		if a > c {
			a, c = c, a
		}
		assert.False(t, seen[[2]uint32{a, c}], "edge %d-%d packed twice", a, c)
		seen[[2]uint32{a, c}] = true
	}
}

func TestNormalLines(t *testing.T) {
	m := grid(t, 2, 2, false, false)

	faces := FaceNormalLines(m, 0.5)
	assert.Equal(t, 2, faces.VertexCount()/2)
	assert.Len(t, faces.Indices, 4)
	// end of the first line is raised by the length along +Y
	assert.InDelta(t, faces.Vertices[1]+0.5, faces.Vertices[7], 1e-6)

	vertices := VertexNormalLines(m, 2)
	assert.Equal(t, 8, vertices.VertexCount())
	assert.InDelta(t, 2, vertices.Vertices[7], 1e-6)
}

func TestWriteJSON(t *testing.T) {
	m := grid(t, 2, 2, false, false)
	var buf bytes.Buffer
	require.NoError(t, PackTriangles(m, Layout{mesh.AttrCoord}).WriteJSON(&buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "triangles", decoded["mode"])
	assert.Equal(t, float64(3), decoded["stride"])
	assert.Len(t, decoded["vertices"], 12)
	assert.Len(t, decoded["indices"], 6)
}
