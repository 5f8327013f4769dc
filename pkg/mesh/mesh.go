package mesh

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/geometry"
)

// Mesh owns its vertices and triangles. Adjacency is derived from the
// triangle list and rebuilt on demand after any topological change.
type Mesh struct {
	name      string
	vertices  []*Vertex
	triangles []*Triangle
	byName    map[string]*Vertex

	incidence map[*Vertex][]*Triangle
	stale     bool
}

// New creates an empty mesh
func New(name string) *Mesh {
	return &Mesh{
		name:   name,
		byName: make(map[string]*Vertex),
		stale:  true,
	}
}

// Name returns the name of the mesh
func (m *Mesh) Name() string {
	return m.name
}

// Vertices returns the vertices in insertion order. The slice must not be modified.
func (m *Mesh) Vertices() []*Vertex {
	return m.vertices
}

// Triangles returns the triangles in insertion order. The slice must not be modified.
func (m *Mesh) Triangles() []*Triangle {
	return m.triangles
}

// VertexCount returns the number of vertices
func (m *Mesh) VertexCount() int {
	return len(m.vertices)
}

// TriangleCount returns the number of triangles
func (m *Mesh) TriangleCount() int {
	return len(m.triangles)
}

// Vertex returns the i-th vertex, or nil
func (m *Mesh) Vertex(i int) *Vertex {
	if i < 0 || i >= len(m.vertices) {
		return nil
	}
	return m.vertices[i]
}

// Triangle returns the i-th triangle, or nil
func (m *Mesh) Triangle(i int) *Triangle {
	if i < 0 || i >= len(m.triangles) {
		return nil
	}
	return m.triangles[i]
}

// VertexByName returns the vertex with the given name, or nil
func (m *Mesh) VertexByName(name string) *Vertex {
	return m.byName[name]
}

// Owns reports whether v belongs to the mesh
func (m *Mesh) Owns(v *Vertex) bool {
	return v != nil && m.byName[v.name] == v
}

// UniqueName returns base if unused, otherwise base followed by "#n"
func (m *Mesh) UniqueName(base string) string {
	if _, used := m.byName[base]; !used {
		return base
	}
	for n := 2; ; n++ {
		name := fmt.Sprintf("%s#%d", base, n)
		if _, used := m.byName[name]; !used {
			return name
		}
	}
}

// AddVertex appends a new vertex with zero attributes
func (m *Mesh) AddVertex(name string) (*Vertex, error) {
	if m.byName == nil {
		m.byName = make(map[string]*Vertex)
	}
	if _, used := m.byName[name]; used {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	v := &Vertex{name: name, index: len(m.vertices)}
	v.attrs[AttrColor] = geometry.Vector4{X: 1, Y: 1, Z: 1, W: 1}
	m.vertices = append(m.vertices, v)
	m.byName[name] = v
	return v, nil
}

// CloneVertex appends a copy of v named after it with the given suffix.
// The clone has no triangles.
func (m *Mesh) CloneVertex(v *Vertex, suffix string) (*Vertex, error) {
	if !m.Owns(v) {
		return nil, fmt.Errorf("%w: %s", ErrForeignVertex, v)
	}
	clone, err := m.AddVertex(m.UniqueName(v.name + suffix))
	if err != nil {
		return nil, err
	}
	clone.attrs = v.attrs
	return clone, nil
}

// AddTriangle appends the triangle (a, b, c)
func (m *Mesh) AddTriangle(a, b, c *Vertex) (*Triangle, error) {
	for _, v := range []*Vertex{a, b, c} {
		if !m.Owns(v) {
			return nil, fmt.Errorf("%w: %v", ErrForeignVertex, v)
		}
	}
	if a == b || b == c || c == a {
		return nil, fmt.Errorf("%w: %s %s %s", ErrDegenerateTriangle, a, b, c)
	}
	t := &Triangle{v: [3]*Vertex{a, b, c}}
	m.triangles = append(m.triangles, t)
	m.stale = true
	return t, nil
}

// AddQuad appends the two triangles (a, b, c) and (a, c, d)
func (m *Mesh) AddQuad(a, b, c, d *Vertex) error {
	if _, err := m.AddTriangle(a, b, c); err != nil {
		return err
	}
	if _, err := m.AddTriangle(a, c, d); err != nil {
		return err
	}
	return nil
}

// AddPolygonConvex appends a fan of triangles around the first vertex
func (m *Mesh) AddPolygonConvex(vertices []*Vertex) error {
	if len(vertices) < 3 {
		return fmt.Errorf("%w: %d vertices", ErrPolygon, len(vertices))
	}
	for i := 1; i+1 < len(vertices); i++ {
		if _, err := m.AddTriangle(vertices[0], vertices[i], vertices[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// AddPolygon triangulates a simple polygon, possibly concave, by ear clipping.
// The vertices must turn counterclockwise around normal. Nothing is added
// when the polygon cannot be triangulated.
func (m *Mesh) AddPolygon(vertices []*Vertex, normal geometry.Vector3) error {
	for _, v := range vertices {
		if !m.Owns(v) {
			return fmt.Errorf("%w: %v", ErrForeignVertex, v)
		}
	}
	triangles, err := TriangulatePolygon(vertices, normal)
	if err != nil {
		return err
	}
	for _, t := range triangles {
		if _, err := m.AddTriangle(t[0], t[1], t[2]); err != nil {
			return err
		}
	}
	return nil
}

// TriangulatePolygon returns the ears AddPolygon would add, without touching any mesh
func TriangulatePolygon(vertices []*Vertex, normal geometry.Vector3) ([][3]*Vertex, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("%w: %d vertices", ErrPolygon, len(vertices))
	}
	if i := firstRepeated(vertices); i >= 0 {
		return nil, fmt.Errorf("%w: %v", ErrDegenerateTriangle, vertices[i])
	}

	polygon := slices.Clone(vertices)
	triangles := make([][3]*Vertex, 0, len(polygon)-2)
	for len(polygon) > 3 {
		n := len(polygon)
		ear := -1
		for i := 0; i < n; i++ {
			if isEar(polygon, i, normal) {
				ear = i
				break
			}
		}
		if ear < 0 {
			return nil, fmt.Errorf("%w: no ear left among %d vertices", ErrPolygon, n)
		}
		triangles = append(triangles, [3]*Vertex{polygon[ear], polygon[(ear+1)%n], polygon[(ear+2)%n]})
		polygon = slices.Delete(polygon, (ear+1)%n, (ear+1)%n+1)
	}
	return append(triangles, [3]*Vertex{polygon[0], polygon[1], polygon[2]}), nil
}

func firstRepeated(vertices []*Vertex) int {
	seen := make(map[*Vertex]bool, len(vertices))
	for i, v := range vertices {
		if seen[v] {
			return i
		}
		seen[v] = true
	}
	return -1
}

const earEpsilon = 1e-12

// isEar checks the corner polygon[i+1] of the triangle starting at i
func isEar(polygon []*Vertex, i int, normal geometry.Vector3) bool {
	n := len(polygon)
	a := polygon[i]
	b := polygon[(i+1)%n]
	c := polygon[(i+2)%n]
	pa, pb, pc := a.Coord(), b.Coord(), c.Coord()

	ab := pb.Sub(pa)
	bc := pc.Sub(pb)
	ca := pa.Sub(pc)
	cross := ab.Cross(bc)
	if cross.LengthSquared() < earEpsilon {
		// flat corner, clipping it adds no area
		return true
	}
	if cross.Dot(normal) < 0 {
		return false
	}

	for j, p := range polygon {
		if j == i || j == (i+1)%n || j == (i+2)%n {
			continue
		}
		pp := p.Coord()
		if cross.Cross(ab).Dot(pp.Sub(pa)) > earEpsilon &&
			cross.Cross(bc).Dot(pp.Sub(pb)) > earEpsilon &&
			cross.Cross(ca).Dot(pp.Sub(pc)) > earEpsilon {
			return false
		}
	}
	return true
}

// DelTriangle removes t from the mesh
func (m *Mesh) DelTriangle(t *Triangle) bool {
	i := slices.Index(m.triangles, t)
	if i < 0 {
		return false
	}
	m.triangles = slices.Delete(m.triangles, i, i+1)
	m.stale = true
	return true
}

// DelTriangles removes all the given triangles in one pass and returns how many were found
func (m *Mesh) DelTriangles(triangles []*Triangle) int {
	if len(triangles) == 0 {
		return 0
	}
	set := make(map[*Triangle]bool, len(triangles))
	for _, t := range triangles {
		set[t] = true
	}
	before := len(m.triangles)
	m.triangles = slices.DeleteFunc(m.triangles, func(t *Triangle) bool {
		return set[t]
	})
	m.stale = true
	return before - len(m.triangles)
}

// DelVertex removes v and every triangle that uses it
func (m *Mesh) DelVertex(v *Vertex) error {
	if !m.Owns(v) {
		return fmt.Errorf("%w: %v", ErrForeignVertex, v)
	}
	m.triangles = slices.DeleteFunc(m.triangles, func(t *Triangle) bool {
		return t.ContainsVertex(v)
	})
	m.vertices = slices.Delete(m.vertices, v.index, v.index+1)
	for i := v.index; i < len(m.vertices); i++ {
		m.vertices[i].index = i
	}
	delete(m.byName, v.name)
	v.index = -1
	m.stale = true
	return nil
}

// ReplaceVertex substitutes repl for old in t
func (m *Mesh) ReplaceVertex(t *Triangle, old, repl *Vertex) error {
	if !m.Owns(repl) {
		return fmt.Errorf("%w: %v", ErrForeignVertex, repl)
	}
	i := t.Index(old)
	if i < 0 {
		return nil
	}
	if t.ContainsVertex(repl) {
		return fmt.Errorf("%w: %s already in %s", ErrDegenerateTriangle, repl, t)
	}
	t.v[i] = repl
	m.stale = true
	return nil
}

// Collapse merges u into v: triangles holding both are removed,
// the others are rewired to v, then u is deleted.
func (m *Mesh) Collapse(u, v *Vertex) error {
	if !m.Owns(u) || !m.Owns(v) {
		return fmt.Errorf("%w: collapse %v into %v", ErrForeignVertex, u, v)
	}
	if u == v {
		return fmt.Errorf("%w: collapse %s into itself", ErrDegenerateTriangle, u)
	}
	m.triangles = slices.DeleteFunc(m.triangles, func(t *Triangle) bool {
		return t.ContainsVertex(u) && t.ContainsVertex(v)
	})
	for _, t := range m.triangles {
		if i := t.Index(u); i >= 0 {
			t.v[i] = v
		}
	}
	m.stale = true
	return m.DelVertex(u)
}

// Renumber rewrites vertex indices to match the vertex list
func (m *Mesh) Renumber() {
	for i, v := range m.vertices {
		v.index = i
	}
}

// ComputeNormals recomputes triangle normals then vertex normals
// as the area weighted mean of incident triangle normals
func (m *Mesh) ComputeNormals() {
	m.Renumber()
	for _, t := range m.triangles {
		t.ComputeNormal()
	}
	sums := make([]geometry.Vector3, len(m.vertices))
	for _, t := range m.triangles {
		n := t.normal.Mul(t.surface)
		for _, v := range t.v {
			sums[v.index] = sums[v.index].Add(n)
		}
	}
	for i, v := range m.vertices {
		v.SetNormal(sums[i].Normalize())
	}
}

// ComputeTangents recomputes triangle tangents then vertex tangents
func (m *Mesh) ComputeTangents() {
	m.Renumber()
	for _, t := range m.triangles {
		t.ComputeTangent()
	}
	sums := make([]geometry.Vector3, len(m.vertices))
	for _, t := range m.triangles {
		for _, v := range t.v {
			sums[v.index] = sums[v.index].Add(t.tangent)
		}
	}
	for i, v := range m.vertices {
		v.SetTangent(sums[i].Normalize())
	}
}

// Bounds returns the bounding box of all vertices
func (m *Mesh) Bounds() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, v := range m.vertices {
		bbox.Extend(v.Coord())
	}
	return bbox
}

// Destroy releases vertices and triangles. It can be called several times.
func (m *Mesh) Destroy() {
	for _, v := range m.vertices {
		v.index = -1
	}
	m.vertices = nil
	m.triangles = nil
	m.byName = nil
	m.incidence = nil
	m.stale = true
}

// Info logs the size of the mesh
func (m *Mesh) Info() {
	slog.Info("mesh", "name", m.name, "vertices", len(m.vertices), "triangles", len(m.triangles))
}

func (m *Mesh) String() string {
	return fmt.Sprintf("Mesh(%s: %d vertices, %d triangles)", m.name, len(m.vertices), len(m.triangles))
}
