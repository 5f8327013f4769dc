package geometry

// Vector2 is a texture coordinate
type Vector2 struct {
	X, Y float64
}

// NewVector2 creates a new 2D vector
func NewVector2(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Lerp interpolates linearly between v (k=0) and other (k=1)
func (v Vector2) Lerp(other Vector2, k float64) Vector2 {
	return Vector2{X: v.X + k*(other.X-v.X), Y: v.Y + k*(other.Y-v.Y)}
}

// Vector4 holds a color or any four-component vertex attribute
type Vector4 struct {
	X, Y, Z, W float64
}

// NewVector4 creates a new 4D vector
func NewVector4(x, y, z, w float64) Vector4 {
	return Vector4{X: x, Y: y, Z: z, W: w}
}

// Add returns the sum of two vectors
func (v Vector4) Add(other Vector4) Vector4 {
	return Vector4{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z, W: v.W + other.W}
}

// Mul multiplies the vector by a scalar
func (v Vector4) Mul(scalar float64) Vector4 {
	return Vector4{X: v.X * scalar, Y: v.Y * scalar, Z: v.Z * scalar, W: v.W * scalar}
}

// Lerp interpolates linearly between v (k=0) and other (k=1)
func (v Vector4) Lerp(other Vector4, k float64) Vector4 {
	return v.Add(other.Add(v.Mul(-1)).Mul(k))
}

// XYZ drops the fourth component
func (v Vector4) XYZ() Vector3 {
	return Vector3{X: v.X, Y: v.Y, Z: v.Z}
}

// Extend builds a Vector4 from a Vector3 and a fourth component
func Extend(v Vector3, w float64) Vector4 {
	return Vector4{X: v.X, Y: v.Y, Z: v.Z, W: w}
}

// Component returns the i-th component (0..3)
func (v Vector4) Component(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	default:
		return v.W
	}
}
