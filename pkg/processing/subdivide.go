package processing

import (
	"math"
	"slices"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/geometry"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/mesh"
)

// Subdivide splits t steps times. See SubdivideAll.
func Subdivide(m *mesh.Mesh, t *mesh.Triangle, steps int, smooth float64) ([]*mesh.Triangle, error) {
	return SubdivideAll(m, []*mesh.Triangle{t}, steps, smooth)
}

// SubdivideAll splits every triangle into four through the midpoints of its
// edges, steps times. Midpoints are shared by neighbor triangles. When smooth
// is positive the midpoints follow a Hermite curve built from the vertex
// normals instead of the straight edge. The triangles replacing the given
// ones are returned.
func SubdivideAll(m *mesh.Mesh, triangles []*mesh.Triangle, steps int, smooth float64) ([]*mesh.Triangle, error) {
	if steps <= 0 || len(triangles) == 0 {
		return triangles, nil
	}
	current := slices.Clone(triangles)
	for level := 0; level < steps; level++ {
		m.ComputeNormals()
		next := make([]*mesh.Triangle, 0, 4*len(current))
		for _, t := range current {
			split, err := splitMidpoints(m, t, smooth)
			if err != nil {
				return nil, err
			}
			next = append(next, split...)
		}
		m.DelTriangles(current)
		current = next
	}
	m.ComputeNormals()
	return current, nil
}

// splitMidpoints adds the four triangles replacing t. The caller removes t.
func splitMidpoints(m *mesh.Mesh, t *mesh.Triangle, smooth float64) ([]*mesh.Triangle, error) {
	vs := t.Vertices()
	var mids [3]*mesh.Vertex
	for i := 0; i < 3; i++ {
		mid, err := midpoint(m, vs[i], vs[(i+1)%3], smooth)
		if err != nil {
			return nil, err
		}
		mids[i] = mid
	}

	result := make([]*mesh.Triangle, 0, 4)
	for i := 0; i < 3; i++ {
		tri, err := m.AddTriangle(vs[i], mids[i], mids[(i+2)%3])
		if err != nil {
			return nil, err
		}
		result = append(result, tri)
	}
	tri, err := m.AddTriangle(mids[0], mids[1], mids[2])
	if err != nil {
		return nil, err
	}
	return append(result, tri), nil
}

func midpoint(m *mesh.Mesh, s0, s1 *mesh.Vertex, smooth float64) (*mesh.Vertex, error) {
	name := MidName(s0, s1)
	if mid := m.VertexByName(name); mid != nil {
		return mid, nil
	}
	mid, err := m.AddVertex(name)
	if err != nil {
		return nil, err
	}
	if smooth <= 0 {
		mid.Lerp(s0, s1, 0.5)
		return mid, nil
	}
	chord := s1.Coord().Sub(s0.Coord()).Mul(smooth)
	mid.Hermite(s0, edgeTangent(chord, s0.Normal()), s1, edgeTangent(chord, s1.Normal()), 0.5)
	return mid, nil
}

// edgeTangent projects the chord in the plane orthogonal to n
func edgeTangent(chord, n geometry.Vector3) geometry.Vector3 {
	b := chord.Cross(n)
	return n.Cross(b)
}

// SubdivideCentroid splits every triangle into three around a new vertex at
// its center, steps times. The center is raised along the face normal by
// sqrt(surface)*heightFactor.
func SubdivideCentroid(m *mesh.Mesh, triangles []*mesh.Triangle, steps int, heightFactor float64) ([]*mesh.Triangle, error) {
	if steps <= 0 || len(triangles) == 0 {
		return triangles, nil
	}
	current := slices.Clone(triangles)
	for level := 0; level < steps; level++ {
		m.ComputeNormals()
		next := make([]*mesh.Triangle, 0, 3*len(current))
		for _, t := range current {
			vs := t.Vertices()
			c, err := m.AddVertex(m.UniqueName("c" + vs[0].Name() + vs[1].Name() + vs[2].Name()))
			if err != nil {
				return nil, err
			}
			c.SetBarycentric(vs[0], vs[1], vs[2], 1.0/3, 1.0/3, 1.0/3)
			c.SetCoord(t.Center().Add(t.Normal().Mul(math.Sqrt(t.Surface()) * heightFactor)))
			for i := 0; i < 3; i++ {
				tri, err := m.AddTriangle(vs[i], vs[(i+1)%3], c)
				if err != nil {
					return nil, err
				}
				next = append(next, tri)
			}
		}
		m.DelTriangles(current)
		current = next
	}
	m.ComputeNormals()
	return current, nil
}
