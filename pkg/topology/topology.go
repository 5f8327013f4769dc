// Package topology adds regular grids of vertices and triangles to a mesh.
// Generated vertices get placeholder coordinates that callers reshape.
package topology

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/geometry"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/mesh"
)

// ErrEmptySurface is returned when the requested grid would hold no cell
var ErrEmptySurface = errors.New("surface has no cell")

// VertexName replaces the first two %d of pattern by a and b
func VertexName(pattern string, a, b string) string {
	name := strings.Replace(pattern, "%d", a, 1)
	return strings.Replace(name, "%d", b, 1)
}

func gridName(pattern string, i, j int) string {
	return VertexName(pattern, strconv.Itoa(i), strconv.Itoa(j))
}

// grid indexes the vertices of a surface created by this package
type grid struct {
	m     *mesh.Mesh
	base  int
	width int
}

func (g grid) at(i, j int) *mesh.Vertex {
	return g.m.Vertex(g.base + i + j*g.width)
}

func addGridVertices(m *mesh.Mesh, nx, nz int, names string, place func(ix, iz int) geometry.Vector3) (grid, error) {
	g := grid{m: m, base: m.VertexCount(), width: nx}
	for iz := 0; iz < nz; iz++ {
		for ix := 0; ix < nx; ix++ {
			v, err := m.AddVertex(gridName(names, ix, iz))
			if err != nil {
				return g, err
			}
			v.SetCoord(place(ix, iz))
		}
	}
	return g, nil
}

// AddRectangularSurface adds nx by nz vertices named after names and the
// quads joining them. Vertex (ix, iz) has index base + ix + iz*nx where base
// is the returned value. foldX and foldZ close the surface on itself.
// Quads are emitted row by row so that strips can be built quickly.
func AddRectangularSurface(m *mesh.Mesh, nx, nz int, names string, foldX, foldZ bool) (int, error) {
	if nx < 2 || nz < 2 {
		return 0, fmt.Errorf("%w: %dx%d vertices", ErrEmptySurface, nx, nz)
	}
	g, err := addGridVertices(m, nx, nz, names, func(ix, iz int) geometry.Vector3 {
		return geometry.NewVector3(float64(ix), 0, float64(iz))
	})
	if err != nil {
		return g.base, err
	}

	for iz := 0; iz < nz-1; iz++ {
		for ix := 0; ix < nx-1; ix++ {
			v00, v01 := g.at(ix, iz), g.at(ix, iz+1)
			v10, v11 := g.at(ix+1, iz), g.at(ix+1, iz+1)
			if err := m.AddQuad(v00, v01, v11, v10); err != nil {
				return g.base, err
			}
		}
	}
	if foldX {
		for iz := 0; iz < nz-1; iz++ {
			v00, v01 := g.at(0, iz), g.at(0, iz+1)
			v10, v11 := g.at(nx-1, iz), g.at(nx-1, iz+1)
			if err := m.AddQuad(v10, v11, v01, v00); err != nil {
				return g.base, err
			}
		}
	}
	if foldZ {
		for ix := 0; ix < nx-1; ix++ {
			v00, v01 := g.at(ix, 0), g.at(ix, nz-1)
			v10, v11 := g.at(ix+1, 0), g.at(ix+1, nz-1)
			if err := m.AddQuad(v00, v10, v11, v01); err != nil {
				return g.base, err
			}
		}
	}
	if foldX && foldZ {
		v00, v01 := g.at(0, 0), g.at(0, nz-1)
		v10, v11 := g.at(nx-1, 0), g.at(nx-1, nz-1)
		if err := m.AddQuad(v00, v01, v11, v10); err != nil {
			return g.base, err
		}
	}
	return g.base, nil
}

// AddHexagonalSurface is AddRectangularSurface with odd rows shifted by half
// a cell, giving equilateral triangles.
func AddHexagonalSurface(m *mesh.Mesh, nx, nz int, names string, foldX, foldZ bool) (int, error) {
	if nx < 2 || nz < 2 {
		return 0, fmt.Errorf("%w: %dx%d vertices", ErrEmptySurface, nx, nz)
	}
	rowHeight := math.Sqrt(3.0) / 2.0
	g, err := addGridVertices(m, nx, nz, names, func(ix, iz int) geometry.Vector3 {
		return geometry.NewVector3(float64(ix)-0.5*float64(iz%2), 0, float64(iz)*rowHeight)
	})
	if err != nil {
		return g.base, err
	}

	add := func(tris ...[3]*mesh.Vertex) error {
		for _, t := range tris {
			if _, err := m.AddTriangle(t[0], t[1], t[2]); err != nil {
				return err
			}
		}
		return nil
	}

	for iz := 0; iz < nz-1; iz++ {
		for ix := 0; ix < nx-1; ix++ {
			v00, v01 := g.at(ix, iz), g.at(ix, iz+1)
			v10, v11 := g.at(ix+1, iz), g.at(ix+1, iz+1)
			if iz%2 == 0 {
				err = add([3]*mesh.Vertex{v00, v01, v11}, [3]*mesh.Vertex{v00, v11, v10})
			} else {
				err = add([3]*mesh.Vertex{v00, v01, v10}, [3]*mesh.Vertex{v10, v01, v11})
			}
			if err != nil {
				return g.base, err
			}
		}
	}
	if foldX {
		for iz := 0; iz < nz-1; iz++ {
			v00, v01 := g.at(0, iz), g.at(0, iz+1)
			v10, v11 := g.at(nx-1, iz), g.at(nx-1, iz+1)
			if iz%2 == 0 {
				err = add([3]*mesh.Vertex{v10, v11, v01}, [3]*mesh.Vertex{v10, v01, v00})
			} else {
				err = add([3]*mesh.Vertex{v10, v11, v00}, [3]*mesh.Vertex{v00, v11, v01})
			}
			if err != nil {
				return g.base, err
			}
		}
	}
	if foldZ {
		if nz%2 != 0 {
			slog.Warn("hexagonal surface folded along Z with an odd row count", "rows", nz)
		}
		for ix := 0; ix < nx-1; ix++ {
			v00, v01 := g.at(ix, 0), g.at(ix, nz-1)
			v10, v11 := g.at(ix+1, 0), g.at(ix+1, nz-1)
			if err := add([3]*mesh.Vertex{v01, v00, v11}, [3]*mesh.Vertex{v11, v00, v10}); err != nil {
				return g.base, err
			}
		}
	}
	if foldX && foldZ {
		v00, v01 := g.at(0, 0), g.at(0, nz-1)
		v10, v11 := g.at(nx-1, 0), g.at(nx-1, nz-1)
		if err := add([3]*mesh.Vertex{v00, v01, v10}, [3]*mesh.Vertex{v10, v01, v11}); err != nil {
			return g.base, err
		}
	}
	return g.base, nil
}

// AddRevolutionSurface adds a disk made of a center vertex and segments rings
// of spokes vertices. The center has index base, the returned value, and
// vertex (ir, is) has index base + 1 + ir*segments + is.
// A single segment is accepted and gives the triangle fan around the center
// alone, with no ring of quads. Fewer than 2 spokes or 1 segment is an
// ErrEmptySurface.
func AddRevolutionSurface(m *mesh.Mesh, spokes, segments int, names string) (int, error) {
	if spokes < 2 || segments < 1 {
		return 0, fmt.Errorf("%w: %d spokes, %d segments", ErrEmptySurface, spokes, segments)
	}
	base := m.VertexCount()
	center, err := m.AddVertex(VertexName(names, "C", "C"))
	if err != nil {
		return base, err
	}
	center.SetCoord(geometry.Vector3{})

	for ir := 0; ir < spokes; ir++ {
		angle := float64(ir) / float64(spokes) * 2 * math.Pi
		for is := 0; is < segments; is++ {
			v, err := m.AddVertex(gridName(names, ir, is))
			if err != nil {
				return base, err
			}
			radius := float64(is + 1)
			v.SetCoord(geometry.NewVector3(radius*math.Cos(angle), 0, radius*math.Sin(angle)))
		}
	}

	at := func(ir, is int) *mesh.Vertex {
		return m.Vertex(base + 1 + (ir%spokes)*segments + is)
	}
	for ir := 0; ir < spokes; ir++ {
		if _, err := m.AddTriangle(center, at(ir, 0), at(ir+1, 0)); err != nil {
			return base, err
		}
		for is := 0; is < segments-1; is++ {
			v00, v10 := at(ir, is), at(ir+1, is)
			v01, v11 := at(ir, is+1), at(ir+1, is+1)
			if err := m.AddQuad(v00, v01, v11, v10); err != nil {
				return base, err
			}
		}
	}
	return base, nil
}
