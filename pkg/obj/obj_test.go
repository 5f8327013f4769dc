package obj

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/mesh"
)

func TestSplitNumber(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		index int
		want  int
	}{
		{"positive", []string{"3"}, 0, 2},
		{"negative", []string{"-1"}, 0, 9},
		{"missing", []string{"3"}, 1, -1},
		{"empty", []string{"3", ""}, 1, -1},
		{"beyond", []string{"11"}, 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := splitNumber(tt.parts, tt.index, 10)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := splitNumber([]string{"x"}, 0, 10)
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestLoadCube(t *testing.T) {
	m, stats, err := LoadFile(filepath.Join("testdata", "cube.obj"), Options{})
	require.NoError(t, err)

	assert.Equal(t, "cube", m.Name())
	assert.Equal(t, 8, stats.Coords)
	assert.Equal(t, 6, stats.Normals)
	assert.Equal(t, 6, stats.Faces)
	assert.Equal(t, 12, stats.Triangles)
	assert.Equal(t, []string{"cube.mtl"}, stats.Libraries)
	assert.Equal(t, []string{"red", "blue"}, stats.Materials)

	// one vertex per corner and face normal
	assert.Equal(t, 24, m.VertexCount())
	assert.Equal(t, 12, m.TriangleCount())

	v := m.VertexByName("v(0,0,0)")
	require.NotNil(t, v)
	assert.Equal(t, -1.0, v.Coord().X)
	assert.Equal(t, -1.0, v.Normal().Z)
	assert.Equal(t, 1.0, v.Color().X)
	assert.Equal(t, 0.0, v.Color().Z)

	// faces follow their stored normals
	for _, tri := range m.Triangles() {
		tri.ComputeNormal()
		assert.InDelta(t, 1.0, tri.Normal().Dot(tri.Vertex(0).Normal()), 1e-12)
	}
}

func TestLoadMaterialFilter(t *testing.T) {
	m, stats, err := LoadFile(filepath.Join("testdata", "cube.obj"), Options{Material: "blue", Scale: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Faces)
	assert.Equal(t, 6, m.TriangleCount())
	assert.Equal(t, 12, m.VertexCount())
	for _, v := range m.Vertices() {
		assert.Equal(t, 2.0, max(v.Coord().X, -v.Coord().X))
		assert.Equal(t, 0.5, v.Color().W)
	}
}

func TestLoadNegativeIndices(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nv 1 1 0\nf -4 -3 -1 -2\n"
	m := mesh.New("quad")
	stats, err := Load(strings.NewReader(src), m, Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Triangles)
	assert.Equal(t, 4, m.VertexCount())
	assert.NotNil(t, m.VertexByName("v(3,-1,-1)"))
	// normals are computed when the file has none
	assert.InDelta(t, 1.0, m.Vertex(0).Normal().Z, 1e-12)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(strings.NewReader("v 0 0\n"), mesh.New("bad"), Options{})
	assert.ErrorIs(t, err, ErrSyntax)

	_, err = Load(strings.NewReader("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 7\n"), mesh.New("bad"), Options{})
	assert.ErrorIs(t, err, ErrBadIndex)

	_, _, err = LoadFile(filepath.Join("testdata", "missing.obj"), Options{})
	assert.Error(t, err)
}

func TestLoadSkipsDegenerateFaces(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 2\nf 1 2 3\n"
	m := mesh.New("degenerate")
	stats, err := Load(strings.NewReader(src), m, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 1, m.TriangleCount())
}

func TestParseMTL(t *testing.T) {
	materials, err := ParseMTLFile(filepath.Join("testdata", "cube.mtl"))
	require.NoError(t, err)
	require.Len(t, materials, 2)

	red := materials["red"]
	assert.Equal(t, 1.0, red.Diffuse.X)
	assert.Equal(t, 1.0, red.Diffuse.W)
	assert.Equal(t, 32.0, red.Shininess)
	assert.Equal(t, 0.1, red.Ambient.X)

	blue := materials["blue"]
	assert.Equal(t, 0.5, blue.Diffuse.W)
	assert.Equal(t, "blue.png", blue.Texture)
}

func TestWriteThenLoad(t *testing.T) {
	m, _, err := LoadFile(filepath.Join("testdata", "cube.obj"), Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, m))
	assert.Contains(t, buf.String(), "o cube\n")

	again := mesh.New("again")
	stats, err := Load(&buf, again, Options{})
	require.NoError(t, err)
	assert.Equal(t, m.VertexCount(), again.VertexCount())
	assert.Equal(t, m.TriangleCount(), again.TriangleCount())
	assert.Equal(t, 24, stats.Normals)
	for i, v := range again.Vertices() {
		assert.Equal(t, m.Vertex(i).Coord(), v.Coord())
	}
}
