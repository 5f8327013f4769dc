package geometry

import "math"

// Triangle is a free-standing facet, as read from STL files before welding
type Triangle struct {
	Normal     Vector3
	V1, V2, V3 Vector3
}

// NewTriangle creates a new facet
func NewTriangle(normal, v1, v2, v3 Vector3) Triangle {
	return Triangle{
		Normal: normal,
		V1:     v1,
		V2:     v2,
		V3:     v3,
	}
}

// CalculateNormal computes the unit normal from the winding order.
// A degenerate facet yields the zero vector.
func (t Triangle) CalculateNormal() Vector3 {
	return t.V2.Sub(t.V1).Cross(t.V3.Sub(t.V1)).Normalize()
}

// Area returns the surface area of the facet
func (t Triangle) Area() float64 {
	return t.V2.Sub(t.V1).Cross(t.V3.Sub(t.V1)).Length() / 2.0
}

// EdgeLengths returns the lengths of V1V2, V2V3 and V3V1
func (t Triangle) EdgeLengths() [3]float64 {
	return [3]float64{
		t.V1.Distance(t.V2),
		t.V2.Distance(t.V3),
		t.V3.Distance(t.V1),
	}
}

// Perimeter returns the total length of all edges
func (t Triangle) Perimeter() float64 {
	lengths := t.EdgeLengths()
	return lengths[0] + lengths[1] + lengths[2]
}

// Center returns the centroid of the facet
func (t Triangle) Center() Vector3 {
	return Vector3{
		X: (t.V1.X + t.V2.X + t.V3.X) / 3.0,
		Y: (t.V1.Y + t.V2.Y + t.V3.Y) / 3.0,
		Z: (t.V1.Z + t.V2.Z + t.V3.Z) / 3.0,
	}
}

// Angles returns the interior angles at V1, V2 and V3 in radians
func (t Triangle) Angles() [3]float64 {
	angle := func(a, b Vector3) float64 {
		c := a.Normalize().Dot(b.Normalize())
		return math.Acos(math.Max(-1, math.Min(1, c)))
	}
	return [3]float64{
		angle(t.V2.Sub(t.V1), t.V3.Sub(t.V1)),
		angle(t.V1.Sub(t.V2), t.V3.Sub(t.V2)),
		angle(t.V1.Sub(t.V3), t.V2.Sub(t.V3)),
	}
}
