package processing

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/geometry"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/mesh"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/topology"
)

func vertex(t *testing.T, m *mesh.Mesh, name string, x, y, z float64) *mesh.Vertex {
	t.Helper()
	v, err := m.AddVertex(name)
	require.NoError(t, err)
	return v.SetCoord(geometry.NewVector3(x, y, z))
}

func surface(m *mesh.Mesh) float64 {
	area := 0.0
	for _, tri := range m.Triangles() {
		tri.ComputeNormal()
		area += tri.Surface()
	}
	return area
}

// closed square pyramid with its apex at (0,1,0)
func pyramid(t *testing.T) (*mesh.Mesh, *mesh.Vertex) {
	m := mesh.New("pyramid")
	apex := vertex(t, m, "apex", 0, 1, 0)
	base := []*mesh.Vertex{
		vertex(t, m, "b0", 1, 0, 1),
		vertex(t, m, "b1", 1, 0, -1),
		vertex(t, m, "b2", -1, 0, -1),
		vertex(t, m, "b3", -1, 0, 1),
	}
	for i := range base {
		_, err := m.AddTriangle(apex, base[i], base[(i+1)%4])
		require.NoError(t, err)
	}
	require.NoError(t, m.AddQuad(base[0], base[3], base[2], base[1]))
	m.ComputeNormals()
	require.Empty(t, CheckMesh(m, true))
	return m, apex
}

func flatSquare(t *testing.T) *mesh.Mesh {
	m := mesh.New("square")
	a := vertex(t, m, "a", 0, 0, 0)
	b := vertex(t, m, "b", 1, 0, 0)
	c := vertex(t, m, "c", 1, 1, 0)
	d := vertex(t, m, "d", 0, 1, 0)
	require.NoError(t, m.AddQuad(a, b, c, d))
	return m
}

func TestMidName(t *testing.T) {
	m := mesh.New("names")
	a := vertex(t, m, "a", 0, 0, 0)
	b := vertex(t, m, "b", 0, 0, 0)
	assert.Equal(t, "mab", MidName(a, b))
	assert.Equal(t, MidName(a, b), MidName(b, a))
}

func TestBevelVertexZeroAmount(t *testing.T) {
	m, apex := pyramid(t)
	before := surface(m)

	border, err := BevelVertex(m, apex, 0, geometry.NewVector3(0, 1, 0))
	require.NoError(t, err)
	assert.Len(t, border, 4)
	assert.InDelta(t, before, surface(m), 1e-9)
}

func TestBevelVertex(t *testing.T) {
	m, apex := pyramid(t)

	border, err := BevelVertex(m, apex, 0.5, geometry.NewVector3(0, 2, 0))
	require.NoError(t, err)
	require.Len(t, border, 4)

	assert.Equal(t, 8, m.VertexCount())
	assert.Equal(t, 12, m.TriangleCount())
	assert.Nil(t, m.VertexByName("apex"))
	for _, v := range border {
		assert.InDelta(t, 0.5, v.Coord().Y, 1e-12)
	}
	// the cut faces up and the solid stays closed
	for _, tri := range m.Triangles() {
		if tri.Center().Y > 0.49 {
			assert.InDelta(t, 1.0, tri.Normal().Y, 1e-9)
		}
	}
	assert.Empty(t, CheckMesh(m, true))
}

func TestBevelGridCorner(t *testing.T) {
	m := mesh.New("grid")
	_, err := topology.AddRectangularSurface(m, 3, 3, "g%d-%d", false, false)
	require.NoError(t, err)
	m.ComputeNormals()
	corner := m.VertexByName("g2-0")
	require.NotNil(t, corner)
	require.Len(t, m.TrianglesAround(corner), 1)
	before := surface(m)

	border, err := BevelVertex(m, corner, 0, geometry.NewVector3(0, 1, 0))
	require.NoError(t, err)
	assert.Len(t, border, 2)
	assert.Nil(t, m.VertexByName("g2-0"))
	assert.Equal(t, 9, m.TriangleCount())
	assert.InDelta(t, before, surface(m), 1e-9)
}

func TestBevelVertexFailureKeepsMesh(t *testing.T) {
	m, apex := pyramid(t)
	vertices, triangles := m.VertexCount(), m.TriangleCount()
	before := surface(m)

	// the border turns clockwise around -Y, no ear can be clipped
	_, err := BevelVertex(m, apex, 0.5, geometry.NewVector3(0, -1, 0))
	require.ErrorIs(t, err, mesh.ErrPolygon)

	assert.Equal(t, vertices, m.VertexCount())
	assert.Equal(t, triangles, m.TriangleCount())
	assert.Same(t, apex, m.VertexByName("apex"))
	assert.InDelta(t, before, surface(m), 1e-9)
	assert.Empty(t, CheckMesh(m, true))
}

func TestBevelVertexErrors(t *testing.T) {
	m, apex := pyramid(t)
	_, err := BevelVertex(m, apex, 0.5, geometry.Vector3{})
	assert.ErrorIs(t, err, ErrEmptyRegion)

	lonely := vertex(t, m, "lonely", 5, 5, 5)
	_, err = BevelVertex(m, lonely, 0.5, geometry.NewVector3(0, 1, 0))
	assert.ErrorIs(t, err, ErrEmptyRegion)
}

// single cell of side 2 in the XZ plane, facing +Y
func cell(t *testing.T) (*mesh.Mesh, []*mesh.Vertex) {
	m := mesh.New("cell")
	base, err := topology.AddRectangularSurface(m, 2, 2, "g%d-%d", false, false)
	require.NoError(t, err)
	Transform(m, mgl64.Scale3D(2, 1, 2))
	m.ComputeNormals()
	v00, v10 := m.Vertex(base), m.Vertex(base+1)
	v01, v11 := m.Vertex(base+2), m.Vertex(base+3)
	return m, []*mesh.Vertex{v00, v01, v11, v10}
}

func TestExtrudePolygon(t *testing.T) {
	m, loop := cell(t)
	before := m.TriangleCount()

	clones, err := ExtrudePolygon(m, loop, 3)
	require.NoError(t, err)
	require.Len(t, clones, 4)

	assert.Equal(t, before+8, m.TriangleCount())
	assert.Equal(t, 8, m.VertexCount())
	for i, c := range clones {
		assert.InDelta(t, 3.0, c.Coord().Y, 1e-12)
		assert.Equal(t, loop[i].Coord().X, c.Coord().X)
		assert.Equal(t, loop[i].Name()+"clone", c.Name())
	}
	assert.Empty(t, CheckMesh(m, true))
	// walls and cap: 4 sides of 2x3 and the 2x2 cap
	assert.InDelta(t, 4*6+4, surface(m), 1e-9)
}

func TestExtrudePolygonErrors(t *testing.T) {
	m, loop := cell(t)

	_, err := ExtrudePolygon(m, loop[:2], 1)
	assert.ErrorIs(t, err, ErrBorder)

	_, err = ExtrudePolygon(m, []*mesh.Vertex{loop[0], loop[1], loop[0]}, 1)
	assert.ErrorIs(t, err, ErrBorder)

	reversed := []*mesh.Vertex{loop[0], loop[3], loop[2], loop[1]}
	_, err = ExtrudePolygon(m, reversed, 1)
	assert.ErrorIs(t, err, ErrBorder)

	assert.Equal(t, 2, m.TriangleCount())
}

func TestExtrudeTriangle(t *testing.T) {
	m := mesh.New("tri")
	a := vertex(t, m, "a", 0, 0, 0)
	b := vertex(t, m, "b", 1, 0, 0)
	c := vertex(t, m, "c", 0, 1, 0)
	tri, err := m.AddTriangle(a, b, c)
	require.NoError(t, err)

	moved, err := ExtrudeTriangle(m, tri, 2)
	require.NoError(t, err)
	assert.Same(t, tri, moved)
	assert.Equal(t, 6, m.VertexCount())
	assert.Equal(t, 7, m.TriangleCount())
	for _, v := range moved.Vertices() {
		assert.InDelta(t, 2.0, v.Coord().Z, 1e-12)
	}
	assert.Empty(t, CheckMesh(m, true))
}

func TestSplitBorder(t *testing.T) {
	m := mesh.New("grid")
	base, err := topology.AddRectangularSurface(m, 3, 3, "g%d-%d", false, false)
	require.NoError(t, err)
	v00, v10 := m.Vertex(base), m.Vertex(base+1)
	v01, v11 := m.Vertex(base+3), m.Vertex(base+4)

	require.NoError(t, SplitBorder(m, []*mesh.Vertex{v00, v01, v11, v10}))
	assert.Equal(t, 13, m.VertexCount())
	assert.Empty(t, m.TrianglesAround(v00))
	assert.NotNil(t, m.VertexByName("g1-1clone"))
}

func TestTrianglesInsideBorder(t *testing.T) {
	m := mesh.New("grid")
	_, err := topology.AddRectangularSurface(m, 4, 4, "g%d-%d", false, false)
	require.NoError(t, err)
	at := func(ix, iz int) *mesh.Vertex { return m.Vertex(ix + iz*4) }

	// 2x2 cells block starting at (1,1)
	loop := []*mesh.Vertex{at(1, 1), at(1, 2), at(1, 3), at(2, 3), at(3, 3), at(3, 2), at(3, 1), at(2, 1)}
	edges, err := BorderEdges(m, loop)
	require.NoError(t, err)
	inside := TrianglesInsideBorder(m, edges)
	assert.Len(t, inside, 8)
	assert.Len(t, VerticesFromTriangles(inside), 9)
}

func TestSubdivideAll(t *testing.T) {
	m := flatSquare(t)
	result, err := SubdivideAll(m, m.Triangles(), 1, 0)
	require.NoError(t, err)
	assert.Len(t, result, 8)
	assert.Equal(t, 8, m.TriangleCount())
	assert.Equal(t, 9, m.VertexCount())
	assert.InDelta(t, 1.0, surface(m), 1e-12)

	m = flatSquare(t)
	result, err = SubdivideAll(m, m.Triangles(), 2, 1)
	require.NoError(t, err)
	assert.Len(t, result, 32)
	assert.Equal(t, 25, m.VertexCount())
	for _, v := range m.Vertices() {
		assert.InDelta(t, 0.0, v.Coord().Z, 1e-12)
		assert.InDelta(t, 1.0, v.Normal().Z, 1e-12)
	}
}

func TestSubdivideKeepsOtherTriangles(t *testing.T) {
	m := flatSquare(t)
	first, other := m.Triangle(0), m.Triangle(1)

	result, err := Subdivide(m, first, 2, 0)
	require.NoError(t, err)
	require.Len(t, result, 16)
	assert.Equal(t, 17, m.TriangleCount())
	assert.Same(t, other, m.Triangles()[0])
	assert.Equal(t, result, m.Triangles()[1:])
	assert.NotContains(t, m.Triangles(), first)
	assert.InDelta(t, 1.0, surface(m), 1e-12)
}

func TestSubdivideNoSteps(t *testing.T) {
	m := flatSquare(t)
	tri := m.Triangle(0)
	result, err := Subdivide(m, tri, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []*mesh.Triangle{tri}, result)
}

func TestSubdivideCentroid(t *testing.T) {
	m := flatSquare(t)
	result, err := SubdivideCentroid(m, m.Triangles(), 1, 0)
	require.NoError(t, err)
	assert.Len(t, result, 6)
	assert.Equal(t, 6, m.VertexCount())
	assert.InDelta(t, 1.0, surface(m), 1e-12)

	m = flatSquare(t)
	_, err = SubdivideCentroid(m, m.Triangles(), 1, 1)
	require.NoError(t, err)
	c := m.VertexByName("cabc")
	require.NotNil(t, c)
	assert.InDelta(t, 0.70710678, c.Coord().Z, 1e-6)
	assert.Greater(t, surface(m), 1.0)
}

func TestHomothety(t *testing.T) {
	m := mesh.New("tri")
	tri, err := m.AddTriangle(vertex(t, m, "a", 0, 0, 0), vertex(t, m, "b", 3, 0, 0), vertex(t, m, "c", 0, 3, 0))
	require.NoError(t, err)
	Homothety(tri, 2)
	tri.ComputeNormal()
	assert.InDelta(t, 18.0, tri.Surface(), 1e-12)
	assert.InDelta(t, 1.0, tri.Center().X, 1e-12)
}

func TestTransform(t *testing.T) {
	m := flatSquare(t)
	Transform(m, mgl64.Translate3D(1, 2, 3))
	c := m.VertexByName("c").Coord()
	assert.Equal(t, geometry.NewVector3(2, 3, 3), c)
}

func TestCreateAABB(t *testing.T) {
	m := mesh.New("points")
	vertex(t, m, "p", -1, -2, -3)
	vertex(t, m, "q", 1, 2, 3)

	box, err := CreateAABB(m)
	require.NoError(t, err)
	assert.Equal(t, 8, box.VertexCount())
	assert.Equal(t, 12, box.TriangleCount())
	for _, tri := range box.Triangles() {
		assert.Greater(t, tri.Normal().Dot(tri.Center()), 0.0)
	}
	assert.Empty(t, CheckMesh(box, true))

	_, err = CreateAABB(mesh.New("empty"))
	assert.ErrorIs(t, err, ErrEmptyRegion)
}

func kinds(violations []Violation) []ViolationKind {
	var result []ViolationKind
	for _, v := range violations {
		result = append(result, v.Kind)
	}
	return result
}

func TestCheckMesh(t *testing.T) {
	m := flatSquare(t)
	assert.Empty(t, CheckMesh(m, true))

	vertex(t, m, "unused", 5, 5, 5)
	twin := vertex(t, m, "twin", 1, 1, 0)
	_, err := m.AddTriangle(m.VertexByName("c"), m.VertexByName("b"), twin)
	require.NoError(t, err)

	violations := CheckMesh(m, false)
	assert.Contains(t, kinds(violations), UnreferencedVertex)
	assert.Contains(t, kinds(violations), DegenerateEdge)
	assert.NotContains(t, kinds(violations), NonManifoldEdge)
}

func TestCheckMeshStrict(t *testing.T) {
	m := flatSquare(t)
	a, b := m.VertexByName("a"), m.VertexByName("b")
	e := vertex(t, m, "e", 0.5, -1, 0)
	f := vertex(t, m, "f", 0.5, -1, 1)
	_, err := m.AddTriangle(a, b, e)
	require.NoError(t, err)

	violations := CheckMesh(m, true)
	assert.Contains(t, kinds(violations), InconsistentOrientation)
	assert.NotContains(t, kinds(CheckMesh(m, false)), InconsistentOrientation)

	_, err = m.AddTriangle(b, a, f)
	require.NoError(t, err)
	assert.Contains(t, kinds(CheckMesh(m, true)), NonManifoldEdge)
	assert.Equal(t, "non-manifold edge", NonManifoldEdge.String())
}

func TestRemoveUnusedVertices(t *testing.T) {
	m := flatSquare(t)
	vertex(t, m, "x", 9, 9, 9)
	vertex(t, m, "y", 8, 8, 8)
	assert.Equal(t, 2, RemoveUnusedVertices(m))
	assert.Equal(t, 4, m.VertexCount())
	assert.Empty(t, CheckMesh(m, true))
}
