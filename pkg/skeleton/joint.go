// Package skeleton deforms meshes with a hierarchy of joints. Joints live in
// an arena owned by a Skeleton and refer to their parent by id.
package skeleton

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/geometry"
)

// NoParent is the parent id of root joints
const NoParent = -1

// Joint is a bone rotating around a pivot. It influences the points lying
// within radius of its rest direction, between min and max bone lengths.
type Joint struct {
	name          string
	parent        int
	depth         int
	mainAxis      geometry.Vector3
	secondaryAxis geometry.Vector3
	pivot         geometry.Vector3
	direction     geometry.Vector3
	length        float64
	radius        float64
	min           float64
	max           float64

	// weight of the point being evaluated
	weight float64

	local  mgl64.Mat4
	global mgl64.Mat4
}

// NewJoint creates a joint of length 1 with identity transforms
func NewJoint(name string) *Joint {
	return &Joint{
		name:   name,
		parent: NoParent,
		length: 1,
		radius: 1,
		min:    0,
		max:    1,
		weight: 1,
		local:  mgl64.Ident4(),
		global: mgl64.Ident4(),
	}
}

func (j *Joint) Name() string {
	return j.name
}

// Parent returns the id of the parent joint, NoParent for a root
func (j *Joint) Parent() int {
	return j.parent
}

func (j *Joint) Pivot() geometry.Vector3 {
	return j.pivot
}

// Direction returns the normalized rest direction
func (j *Joint) Direction() geometry.Vector3 {
	return j.direction
}

func (j *Joint) Length() float64 {
	return j.length
}

func (j *Joint) MainAxis() geometry.Vector3 {
	return j.mainAxis
}

// SecondaryAxis is orthogonal to the main axis and the direction
func (j *Joint) SecondaryAxis() geometry.Vector3 {
	return j.secondaryAxis
}

// Weight returns the weight left by the last evaluated point
func (j *Joint) Weight() float64 {
	return j.weight
}

func (j *Joint) Local() mgl64.Mat4 {
	return j.local
}

func (j *Joint) Global() mgl64.Mat4 {
	return j.global
}

func (j *Joint) SetPivot(pivot geometry.Vector3) *Joint {
	j.pivot = pivot
	return j
}

// SetDirection sets the rest direction, its length becomes the bone length
func (j *Joint) SetDirection(direction geometry.Vector3) *Joint {
	j.length = direction.Length()
	j.direction = direction.Normalize()
	j.secondaryAxis = j.mainAxis.Cross(j.direction)
	return j
}

// SetRotationAxis sets the main rotation axis
func (j *Joint) SetRotationAxis(axis geometry.Vector3) *Joint {
	j.mainAxis = axis
	j.secondaryAxis = j.mainAxis.Cross(j.direction)
	return j
}

// SetRadiusMinMax sets the influence range, min and max are bone lengths
func (j *Joint) SetRadiusMinMax(radius, min, max float64) *Joint {
	j.radius = radius
	j.min = min
	j.max = max
	return j
}

// Influence returns the weight of the joint on point, before children take
// their share: 0 off axis or behind min, 1 beyond max, linear between.
func (j *Joint) Influence(point geometry.Vector3) float64 {
	vect := point.Sub(j.pivot)
	distance := vect.Dot(j.direction)
	separation := vect.Sub(j.direction.Mul(distance)).Length()
	if separation > j.radius {
		return 0
	}
	if j.length > 0 {
		distance /= j.length
	}
	switch {
	case distance <= j.min:
		return 0
	case distance >= j.max:
		return 1
	default:
		return (distance - j.min) / (j.max - j.min)
	}
}

// Identity resets the local transform
func (j *Joint) Identity() {
	j.local = mgl64.Ident4()
}

// Rotate composes a rotation of angle radians around the main axis through the pivot
func (j *Joint) Rotate(angle float64) {
	j.rotateAround(angle, j.mainAxis)
}

// RotateSecondary composes a rotation around the secondary axis through the pivot
func (j *Joint) RotateSecondary(angle float64) {
	j.rotateAround(angle, j.secondaryAxis)
}

func (j *Joint) rotateAround(angle float64, axis geometry.Vector3) {
	if axis.Length() == 0 {
		return
	}
	p := j.pivot
	j.local = j.local.
		Mul4(mgl64.Translate3D(p.X, p.Y, p.Z)).
		Mul4(mgl64.HomogRotate3D(angle, axis.Normalize().Vec3())).
		Mul4(mgl64.Translate3D(-p.X, -p.Y, -p.Z))
}
