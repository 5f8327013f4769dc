package mesh

import "github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/geometry"

// AttributeID selects one of the attributes carried by every vertex
type AttributeID int

const (
	AttrCoord AttributeID = iota
	AttrColor
	AttrNormal
	AttrTangent
	AttrTexCoord
	AttrCoord1  // alternate coordinates for morph targets
	AttrNormal1 // alternate normal for morph targets
	AttrJointIndices
	AttrJointWeights
)

// AttributeCount is the number of attributes of a vertex
const AttributeCount = int(AttrJointWeights) + 1

var attributeNames = [AttributeCount]string{
	"coord", "color", "normal", "tangent", "texcoord", "coord1", "normal1", "joints", "weights",
}

var attributeComponents = [AttributeCount]int{3, 4, 3, 3, 2, 3, 3, 4, 4}

func (a AttributeID) String() string {
	if a < 0 || int(a) >= AttributeCount {
		return "unknown"
	}
	return attributeNames[a]
}

// Components returns the number of floats the attribute occupies in a vertex buffer
func (a AttributeID) Components() int {
	if a < 0 || int(a) >= AttributeCount {
		return 0
	}
	return attributeComponents[a]
}

// ParseAttribute returns the attribute with the given name
func ParseAttribute(name string) (AttributeID, bool) {
	for i, n := range attributeNames {
		if n == name {
			return AttributeID(i), true
		}
	}
	return 0, false
}

// Vertex is a named point of a mesh with its attributes.
// Vertices are created by Mesh.AddVertex and never hold references to triangles.
type Vertex struct {
	name  string
	index int
	attrs [AttributeCount]geometry.Vector4
}

// Name returns the unique name of the vertex inside its mesh
func (v *Vertex) Name() string {
	return v.name
}

// Index returns the position of the vertex in the mesh vertex list
func (v *Vertex) Index() int {
	return v.index
}

func (v *Vertex) String() string {
	return v.name
}

// Coord returns the position of the vertex
func (v *Vertex) Coord() geometry.Vector3 {
	return v.attrs[AttrCoord].XYZ()
}

// SetCoord sets the position of the vertex
func (v *Vertex) SetCoord(coord geometry.Vector3) *Vertex {
	v.attrs[AttrCoord] = geometry.Extend(coord, 1)
	return v
}

// Color returns the RGBA color of the vertex
func (v *Vertex) Color() geometry.Vector4 {
	return v.attrs[AttrColor]
}

// SetColor sets the RGBA color of the vertex
func (v *Vertex) SetColor(rgba geometry.Vector4) *Vertex {
	v.attrs[AttrColor] = rgba
	return v
}

// Normal returns the normal of the vertex
func (v *Vertex) Normal() geometry.Vector3 {
	return v.attrs[AttrNormal].XYZ()
}

// SetNormal sets the normal of the vertex
func (v *Vertex) SetNormal(normal geometry.Vector3) *Vertex {
	v.attrs[AttrNormal] = geometry.Extend(normal, 0)
	return v
}

// Tangent returns the tangent of the vertex
func (v *Vertex) Tangent() geometry.Vector3 {
	return v.attrs[AttrTangent].XYZ()
}

// SetTangent sets the tangent of the vertex
func (v *Vertex) SetTangent(tangent geometry.Vector3) *Vertex {
	v.attrs[AttrTangent] = geometry.Extend(tangent, 0)
	return v
}

// TexCoord returns the texture coordinates of the vertex
func (v *Vertex) TexCoord() geometry.Vector2 {
	t := v.attrs[AttrTexCoord]
	return geometry.Vector2{X: t.X, Y: t.Y}
}

// SetTexCoord sets the texture coordinates of the vertex
func (v *Vertex) SetTexCoord(uv geometry.Vector2) *Vertex {
	v.attrs[AttrTexCoord] = geometry.Vector4{X: uv.X, Y: uv.Y}
	return v
}

// Attribute returns any attribute as a 4-component vector
func (v *Vertex) Attribute(id AttributeID) geometry.Vector4 {
	return v.attrs[id]
}

// SetAttribute sets any attribute
func (v *Vertex) SetAttribute(id AttributeID, value geometry.Vector4) *Vertex {
	v.attrs[id] = value
	return v
}

// Lerp sets every attribute of v by linear interpolation between v0 (k=0) and v1 (k=1)
func (v *Vertex) Lerp(v0, v1 *Vertex, k float64) {
	for i := range v.attrs {
		v.attrs[i] = v0.attrs[i].Lerp(v1.attrs[i], k)
	}
	v.renormalize()
}

// Hermite places v on the cubic Hermite curve from v0 (tangent t0) to v1 (tangent t1).
// Other attributes are interpolated linearly.
func (v *Vertex) Hermite(v0 *Vertex, t0 geometry.Vector3, v1 *Vertex, t1 geometry.Vector3, k float64) {
	for i := range v.attrs {
		v.attrs[i] = v0.attrs[i].Lerp(v1.attrs[i], k)
	}
	v.SetCoord(v0.Coord().Hermite(t0, v1.Coord(), t1, k))
	v.renormalize()
}

// SetBarycentric sets every attribute of v as the weighted sum of a, b and c
func (v *Vertex) SetBarycentric(a, b, c *Vertex, wa, wb, wc float64) {
	for i := range v.attrs {
		v.attrs[i] = a.attrs[i].Mul(wa).Add(b.attrs[i].Mul(wb)).Add(c.attrs[i].Mul(wc))
	}
	v.renormalize()
}

func (v *Vertex) renormalize() {
	for _, id := range []AttributeID{AttrNormal, AttrTangent, AttrNormal1} {
		v.attrs[id] = geometry.Extend(v.attrs[id].XYZ().Normalize(), 0)
	}
}
