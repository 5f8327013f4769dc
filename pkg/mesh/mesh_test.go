package mesh

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/geometry"
)

func addVertex(t *testing.T, m *Mesh, name string, x, y, z float64) *Vertex {
	t.Helper()
	v, err := m.AddVertex(name)
	require.NoError(t, err)
	v.SetCoord(geometry.NewVector3(x, y, z))
	return v
}

// square in the XY plane facing +Z
func square(t *testing.T) (*Mesh, []*Vertex) {
	m := New("square")
	vs := []*Vertex{
		addVertex(t, m, "a", 0, 0, 0),
		addVertex(t, m, "b", 1, 0, 0),
		addVertex(t, m, "c", 1, 1, 0),
		addVertex(t, m, "d", 0, 1, 0),
	}
	require.NoError(t, m.AddQuad(vs[0], vs[1], vs[2], vs[3]))
	return m, vs
}

func totalArea(m *Mesh) float64 {
	area := 0.0
	for _, tri := range m.Triangles() {
		tri.ComputeNormal()
		area += tri.Surface()
	}
	return area
}

func TestAddVertexDuplicate(t *testing.T) {
	m := New("dup")
	_, err := m.AddVertex("a")
	require.NoError(t, err)
	_, err = m.AddVertex("a")
	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.Equal(t, 1, m.VertexCount())
}

func TestAddTriangleErrors(t *testing.T) {
	m := New("m")
	a := addVertex(t, m, "a", 0, 0, 0)
	b := addVertex(t, m, "b", 1, 0, 0)

	other := New("other")
	c := addVertex(t, other, "c", 0, 1, 0)

	_, err := m.AddTriangle(a, b, a)
	assert.ErrorIs(t, err, ErrDegenerateTriangle)

	_, err = m.AddTriangle(a, b, c)
	assert.ErrorIs(t, err, ErrForeignVertex)
	assert.Zero(t, m.TriangleCount())
}

func TestAddQuadSplit(t *testing.T) {
	m, vs := square(t)
	require.Equal(t, 2, m.TriangleCount())
	assert.Equal(t, [3]*Vertex{vs[0], vs[1], vs[2]}, m.Triangles()[0].Vertices())
	assert.Equal(t, [3]*Vertex{vs[0], vs[2], vs[3]}, m.Triangles()[1].Vertices())
	assert.InDelta(t, 1.0, totalArea(m), 1e-12)
}

func TestComputeNormals(t *testing.T) {
	m, vs := square(t)
	m.ComputeNormals()
	for _, tri := range m.Triangles() {
		assert.InDelta(t, 1.0, tri.Normal().Z, 1e-12)
		assert.InDelta(t, 0.5, tri.Surface(), 1e-12)
		assert.InDelta(t, 0.0, tri.W(), 1e-12)
	}
	for _, v := range vs {
		assert.InDelta(t, 1.0, v.Normal().Z, 1e-12)
	}
}

func TestComputeNormalsDegenerate(t *testing.T) {
	m := New("flat")
	a := addVertex(t, m, "a", 0, 0, 0)
	b := addVertex(t, m, "b", 1, 1, 1)
	c := addVertex(t, m, "c", 2, 2, 2)
	tri, err := m.AddTriangle(a, b, c)
	require.NoError(t, err)

	m.ComputeNormals()
	assert.Equal(t, geometry.Vector3{}, tri.Normal())
	assert.Zero(t, tri.Surface())
}

// tetrahedron with outward faces
func tetrahedron(t *testing.T) *Mesh {
	m := New("tetra")
	a := addVertex(t, m, "a", 0, 0, 0)
	b := addVertex(t, m, "b", 2, 0, 0)
	c := addVertex(t, m, "c", 0, 3, 0)
	d := addVertex(t, m, "d", 0, 0, 1)
	for _, f := range [][3]*Vertex{{a, c, b}, {a, b, d}, {a, d, c}, {b, c, d}} {
		_, err := m.AddTriangle(f[0], f[1], f[2])
		require.NoError(t, err)
	}
	return m
}

func TestComputeNormalsTwice(t *testing.T) {
	m := tetrahedron(t)
	m.ComputeNormals()
	var triangles, vertices []geometry.Vector3
	for _, tri := range m.Triangles() {
		triangles = append(triangles, tri.Normal())
	}
	for _, v := range m.Vertices() {
		vertices = append(vertices, v.Normal())
	}

	m.ComputeNormals()
	for i, tri := range m.Triangles() {
		assert.Equal(t, triangles[i], tri.Normal())
	}
	for i, v := range m.Vertices() {
		assert.Equal(t, vertices[i], v.Normal())
		assert.InDelta(t, 1.0, v.Normal().Length(), 1e-12)
	}
}

func TestDelTriangles(t *testing.T) {
	m := tetrahedron(t)
	tris := m.Triangles()
	keep := tris[1]

	assert.Equal(t, 3, m.DelTriangles([]*Triangle{tris[0], tris[2], tris[3], tris[0]}))
	require.Equal(t, 1, m.TriangleCount())
	assert.Same(t, keep, m.Triangles()[0])
	assert.Zero(t, m.DelTriangles([]*Triangle{tris[0]}))
	assert.Len(t, m.TrianglesAround(m.VertexByName("a")), 1)

	assert.True(t, m.DelTriangle(keep))
	assert.False(t, m.DelTriangle(keep))
	assert.Zero(t, m.TriangleCount())
}

func TestComputeTangents(t *testing.T) {
	m, vs := square(t)
	for _, v := range vs {
		c := v.Coord()
		v.SetTexCoord(geometry.NewVector2(c.X, c.Y))
	}
	m.ComputeTangents()
	for _, v := range vs {
		assert.InDelta(t, 1.0, v.Tangent().X, 1e-12)
	}
}

func TestAddPolygonConcave(t *testing.T) {
	m := New("L")
	points := [][2]float64{{0, 0}, {2, 0}, {2, 1}, {1, 1}, {1, 2}, {0, 2}}
	var border []*Vertex
	for i, p := range points {
		border = append(border, addVertex(t, m, string(rune('a'+i)), p[0], p[1], 0))
	}

	require.NoError(t, m.AddPolygon(border, geometry.NewVector3(0, 0, 1)))
	assert.Equal(t, 4, m.TriangleCount())
	assert.InDelta(t, 3.0, totalArea(m), 1e-12)
	for _, tri := range m.Triangles() {
		assert.GreaterOrEqual(t, tri.Normal().Z, 0.0)
	}
	// the input slice is left untouched
	assert.Len(t, border, 6)
}

func TestAddPolygonCoincidentPoints(t *testing.T) {
	m := New("flat")
	var border []*Vertex
	for i := 0; i < 4; i++ {
		border = append(border, addVertex(t, m, string(rune('a'+i)), 1, 1, 1))
	}
	require.NoError(t, m.AddPolygon(border, geometry.NewVector3(0, 1, 0)))
	assert.Equal(t, 2, m.TriangleCount())
}

func TestAddPolygonNoEar(t *testing.T) {
	m, vs := square(t)
	before := m.TriangleCount()

	// counterclockwise around +Z, so every corner is reflex around -Z
	err := m.AddPolygon(vs, geometry.NewVector3(0, 0, -1))
	assert.ErrorIs(t, err, ErrPolygon)
	assert.Equal(t, before, m.TriangleCount())

	_, err = TriangulatePolygon([]*Vertex{vs[0], vs[1], vs[0]}, geometry.NewVector3(0, 0, 1))
	assert.ErrorIs(t, err, ErrDegenerateTriangle)
}

func TestAddPolygonTooSmall(t *testing.T) {
	m := New("small")
	a := addVertex(t, m, "a", 0, 0, 0)
	b := addVertex(t, m, "b", 1, 0, 0)
	assert.ErrorIs(t, m.AddPolygon([]*Vertex{a, b}, geometry.NewVector3(0, 0, 1)), ErrPolygon)
}

func TestDelVertex(t *testing.T) {
	m, vs := square(t)
	require.NoError(t, m.DelVertex(vs[1]))

	assert.Equal(t, 3, m.VertexCount())
	assert.Equal(t, 1, m.TriangleCount())
	assert.Nil(t, m.VertexByName("b"))
	for i, v := range m.Vertices() {
		assert.Equal(t, i, v.Index())
	}
	assert.ErrorIs(t, m.DelVertex(vs[1]), ErrForeignVertex)
}

func TestCollapse(t *testing.T) {
	m, vs := square(t)
	require.NoError(t, m.Collapse(vs[3], vs[2]))
	assert.Equal(t, 3, m.VertexCount())
	assert.Equal(t, 1, m.TriangleCount())
	assert.ErrorIs(t, m.Collapse(vs[0], vs[0]), ErrDegenerateTriangle)
}

func TestReplaceVertex(t *testing.T) {
	m, vs := square(t)
	e := addVertex(t, m, "e", 2, 0, 0)
	tri := m.Triangles()[0]

	require.NoError(t, m.ReplaceVertex(tri, vs[1], e))
	assert.True(t, tri.ContainsVertex(e))
	assert.Len(t, m.TrianglesAround(vs[1]), 0)
	assert.ErrorIs(t, m.ReplaceVertex(tri, vs[0], vs[2]), ErrDegenerateTriangle)
}

func TestCloneVertex(t *testing.T) {
	m, vs := square(t)
	vs[0].SetColor(geometry.NewVector4(1, 0, 0, 1))

	c1, err := m.CloneVertex(vs[0], "clone")
	require.NoError(t, err)
	c2, err := m.CloneVertex(vs[0], "clone")
	require.NoError(t, err)

	assert.Equal(t, "aclone", c1.Name())
	assert.Equal(t, "aclone#2", c2.Name())
	assert.Equal(t, vs[0].Color(), c1.Color())
	assert.Empty(t, m.TrianglesAround(c1))
}

// fan of n triangles around a center vertex in the XY plane
func fan(t *testing.T, n int, closed bool) (*Mesh, *Vertex) {
	m := New("fan")
	center := addVertex(t, m, "center", 0, 0, 0)
	var rim []*Vertex
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		rim = append(rim, addVertex(t, m, string(rune('a'+i)), math.Cos(a), math.Sin(a), 0))
	}
	last := n
	if !closed {
		last = n - 1
	}
	// reverse order so that the walk has to go back to the border
	for i := last - 1; i >= 0; i-- {
		_, err := m.AddTriangle(center, rim[i], rim[(i+1)%n])
		require.NoError(t, err)
	}
	return m, center
}

func assertChained(t *testing.T, center *Vertex, ordered []*Triangle) {
	for i := 0; i+1 < len(ordered); i++ {
		c := ordered[i].Prev(center)
		assert.True(t, ordered[i+1].ContainsEdge(center, c), "triangle %d not followed by its neighbor", i)
	}
}

func TestTrianglesOrderedAroundClosed(t *testing.T) {
	m, center := fan(t, 6, true)
	ordered := m.TrianglesOrderedAround(center)
	require.Len(t, ordered, 6)
	assertChained(t, center, ordered)
}

func TestTrianglesOrderedAroundBorder(t *testing.T) {
	m, center := fan(t, 6, false)
	ordered := m.TrianglesOrderedAround(center)
	require.Len(t, ordered, 5)
	assertChained(t, center, ordered)
	// the walk starts on the border
	first := ordered[0]
	assert.Nil(t, m.TriangleRightOf(center, first.Next(center)))
}

func TestNeighborsAndSides(t *testing.T) {
	m, vs := square(t)
	assert.ElementsMatch(t, []*Vertex{vs[1], vs[2], vs[3]}, m.NeighborVertices(vs[0]))

	assert.Equal(t, m.Triangles()[0], m.TriangleLeftOf(vs[0], vs[1]))
	assert.Nil(t, m.TriangleRightOf(vs[0], vs[1]))
	assert.Equal(t, m.Triangles()[0], m.TriangleRightOf(vs[0], vs[2]))
	assert.Equal(t, m.Triangles()[1], m.TriangleLeftOf(vs[0], vs[2]))
}

func TestEdges(t *testing.T) {
	m, _ := square(t)
	edges := m.Edges()
	require.Len(t, edges, 5)

	boundary := 0
	for i, e := range edges {
		assert.Less(t, e.V1.Index(), e.V2.Index())
		if i > 0 {
			prev := edges[i-1]
			assert.True(t, prev.V1.Index() < e.V1.Index() ||
				(prev.V1.Index() == e.V1.Index() && prev.V2.Index() < e.V2.Index()))
		}
		if e.IsBoundary() {
			boundary++
		}
	}
	assert.Equal(t, 4, boundary)
	assert.Len(t, m.BoundaryEdges(m.Triangles()), 4)
}

func TestVertexInterpolation(t *testing.T) {
	m := New("lerp")
	a := addVertex(t, m, "a", 0, 0, 0).SetNormal(geometry.NewVector3(1, 0, 0))
	b := addVertex(t, m, "b", 2, 0, 0).SetNormal(geometry.NewVector3(0, 1, 0))
	mid := addVertex(t, m, "mid", 0, 0, 0)

	mid.Lerp(a, b, 0.5)
	assert.InDelta(t, 1.0, mid.Coord().X, 1e-12)
	assert.InDelta(t, 1.0, mid.Normal().Length(), 1e-12)

	c := addVertex(t, m, "c", 0, 3, 0)
	mid.SetBarycentric(a, b, c, 1.0/3, 1.0/3, 1.0/3)
	assert.InDelta(t, 2.0/3, mid.Coord().X, 1e-12)
	assert.InDelta(t, 1.0, mid.Coord().Y, 1e-12)

	mid.Hermite(a, geometry.NewVector3(2, 0, 0), b, geometry.NewVector3(2, 0, 0), 0.5)
	assert.InDelta(t, 1.0, mid.Coord().X, 1e-12)
}

func TestDestroyTwice(t *testing.T) {
	m, _ := square(t)
	m.Destroy()
	m.Destroy()
	assert.Zero(t, m.VertexCount())
	assert.Zero(t, m.TriangleCount())
	_, err := m.AddVertex("again")
	assert.NoError(t, err)
}

func TestAttributeNames(t *testing.T) {
	assert.Equal(t, "normal", AttrNormal.String())
	assert.Equal(t, 2, AttrTexCoord.Components())
	id, ok := ParseAttribute("weights")
	assert.True(t, ok)
	assert.Equal(t, AttrJointWeights, id)
}
