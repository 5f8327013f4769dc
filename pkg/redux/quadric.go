package redux

import "github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/geometry"

// Quadric is the symmetric error form VᵀAV + 2BᵀV + C summed over planes.
// A holds the upper triangle of the 3x3 matrix: xx, xy, xz, yy, yz, zz.
type Quadric struct {
	A [6]float64
	B [3]float64
	C float64
}

// AddPlane accumulates the plane of normal n going through p.
// The normal may be scaled to weight the plane.
func (q *Quadric) AddPlane(n, p geometry.Vector3) {
	q.A[0] += n.X * n.X
	q.A[1] += n.X * n.Y
	q.A[2] += n.X * n.Z
	q.A[3] += n.Y * n.Y
	q.A[4] += n.Y * n.Z
	q.A[5] += n.Z * n.Z
	d := -p.Dot(n)
	q.B[0] += d * n.X
	q.B[1] += d * n.Y
	q.B[2] += d * n.Z
	q.C += d * d
}

// AddQuadric accumulates another quadric
func (q *Quadric) AddQuadric(o Quadric) {
	for i := range q.A {
		q.A[i] += o.A[i]
	}
	for i := range q.B {
		q.B[i] += o.B[i]
	}
	q.C += o.C
}

// Cost evaluates the quadric at p: the weighted sum of squared distances to its planes
func (q Quadric) Cost(p geometry.Vector3) float64 {
	x := q.A[0]*p.X + q.A[1]*p.Y + q.A[2]*p.Z
	y := q.A[1]*p.X + q.A[3]*p.Y + q.A[4]*p.Z
	z := q.A[2]*p.X + q.A[4]*p.Y + q.A[5]*p.Z
	vtav := x*p.X + y*p.Y + z*p.Z
	btv := q.B[0]*p.X + q.B[1]*p.Y + q.B[2]*p.Z
	return vtav + 2*btv + q.C
}
