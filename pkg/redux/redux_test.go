package redux

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/geometry"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/mesh"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/processing"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/topology"
)

func TestQuadricCost(t *testing.T) {
	var q Quadric
	q.AddPlane(geometry.NewVector3(0, 0, 1), geometry.NewVector3(5, 5, 0))
	assert.InDelta(t, 4.0, q.Cost(geometry.NewVector3(1, 2, 2)), 1e-12)
	assert.InDelta(t, 0.0, q.Cost(geometry.NewVector3(-3, 7, 0)), 1e-12)

	var other Quadric
	other.AddPlane(geometry.NewVector3(1, 0, 0), geometry.Vector3{})
	q.AddQuadric(other)
	assert.InDelta(t, 4.0+1.0, q.Cost(geometry.NewVector3(1, 2, 2)), 1e-12)
}

func grid(t *testing.T) *mesh.Mesh {
	m := mesh.New("grid")
	_, err := topology.AddRectangularSurface(m, 5, 5, "g%d-%d", false, false)
	require.NoError(t, err)
	return m
}

func TestReduxCountFlat(t *testing.T) {
	m := grid(t)
	before := m.VertexCount()

	assert.Equal(t, 3, ReduxCount(m, 3))
	assert.Equal(t, before-3, m.VertexCount())
	for _, v := range m.Vertices() {
		assert.Equal(t, 0.0, v.Coord().Y)
	}
	for _, violation := range processing.CheckMesh(m, false) {
		assert.NotEqual(t, processing.RepeatedVertex, violation.Kind)
	}
}

func TestReduxCostKeepsCorners(t *testing.T) {
	points := mesh.New("points")
	a, err := points.AddVertex("a")
	require.NoError(t, err)
	a.SetCoord(geometry.NewVector3(-1, -1, -1))
	b, err := points.AddVertex("b")
	require.NoError(t, err)
	b.SetCoord(geometry.NewVector3(1, 1, 1))
	cube, err := processing.CreateAABB(points)
	require.NoError(t, err)

	assert.Zero(t, ReduxCost(cube, 1e-6))
	assert.Equal(t, 8, cube.VertexCount())
}

func TestReduxCostFlat(t *testing.T) {
	m := grid(t)
	collapsed := ReduxCost(m, 1e-9)
	assert.Positive(t, collapsed)
	assert.Equal(t, 25-collapsed, m.VertexCount())
}
