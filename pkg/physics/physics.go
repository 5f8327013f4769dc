// Package physics computes mass properties of closed triangle meshes with
// Mirtich's projection and face integrals.
package physics

import (
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/geometry"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/mesh"
)

// Properties holds the mass properties of a solid of uniform density
type Properties struct {
	Density         float64
	Volume          float64
	Mass            float64
	CenterOfGravity geometry.Vector3
	// Inertia is the inertia tensor about the center of gravity
	Inertia mgl64.Mat3
}

// projection integrals of one face over its dominant plane
type projection struct {
	p1, pa, pb, paa, pab, pbb, paaa, paab, pabb, pbbb float64
}

func project(t *mesh.Triangle, a, b int) projection {
	var p projection
	vs := t.Vertices()
	for i := 0; i < 3; i++ {
		v0 := vs[i].Coord()
		v1 := vs[(i+1)%3].Coord()
		a0, b0 := v0.Component(a), v0.Component(b)
		a1, b1 := v1.Component(a), v1.Component(b)
		da := a1 - a0
		db := b1 - b0

		a0_2 := a0 * a0
		a0_3 := a0_2 * a0
		a0_4 := a0_3 * a0
		b0_2 := b0 * b0
		b0_3 := b0_2 * b0
		b0_4 := b0_3 * b0
		a1_2 := a1 * a1
		a1_3 := a1_2 * a1
		b1_2 := b1 * b1
		b1_3 := b1_2 * b1

		c1 := a1 + a0
		ca := a1*c1 + a0_2
		caa := a1*ca + a0_3
		caaa := a1*caa + a0_4
		cb := b1*(b1+b0) + b0_2
		cbb := b1*cb + b0_3
		cbbb := b1*cbb + b0_4
		cab := 3*a1_2 + 2*a1*a0 + a0_2
		kab := a1_2 + 2*a1*a0 + 3*a0_2
		caab := a0*cab + 4*a1_3
		kaab := a1*kab + 4*a0_3
		cabb := 4*b1_3 + 3*b1_2*b0 + 2*b1*b0_2 + b0_3
		kabb := b1_3 + 2*b1_2*b0 + 3*b1*b0_2 + 4*b0_3

		p.p1 += db * c1
		p.pa += db * ca
		p.paa += db * caa
		p.paaa += db * caaa
		p.pb += da * cb
		p.pbb += da * cbb
		p.pbbb += da * cbbb
		p.pab += db * (b1*cab + b0*kab)
		p.paab += db * (b1*caab + b0*kaab)
		p.pabb += da * (a1*cabb + a0*kabb)
	}
	p.p1 /= 2
	p.pa /= 6
	p.paa /= 12
	p.paaa /= 20
	p.pb /= -6
	p.pbb /= -12
	p.pbbb /= -20
	p.pab /= 24
	p.paab /= 60
	p.pabb /= -60
	return p
}

// dominantAxis returns the axis the normal is most aligned with
func dominantAxis(n geometry.Vector3) int {
	x, y, z := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)
	switch {
	case x > y && x > z:
		return 0
	case y > z:
		return 1
	default:
		return 2
	}
}

// VolumeIntegrals computes volume, mass, center of gravity and inertia of m.
// The mesh must be closed with triangles facing outward, otherwise the result
// is meaningless. Triangle normals are recomputed.
func VolumeIntegrals(m *mesh.Mesh, density float64) Properties {
	var t0 float64
	var t1, t2, tp [3]float64

	for _, t := range m.Triangles() {
		t.ComputeNormal()
		if t.Surface() == 0 {
			continue
		}
		n := t.Normal()
		w := t.W()

		c := dominantAxis(n)
		a := (c + 1) % 3
		b := (a + 1) % 3
		na, nb, nc := n.Component(a), n.Component(b), n.Component(c)

		p := project(t, a, b)

		k1 := 1 / nc
		k2 := k1 * k1
		k3 := k2 * k1
		k4 := k3 * k1

		fa := k1 * p.pa
		fb := k1 * p.pb
		fc := -k2 * (na*p.pa + nb*p.pb + w*p.p1)

		faa := k1 * p.paa
		fbb := k1 * p.pbb
		fcc := k3 * (na*na*p.paa + 2*na*nb*p.pab + nb*nb*p.pbb +
			w*(2*(na*p.pa+nb*p.pb)+w*p.p1))

		faaa := k1 * p.paaa
		fbbb := k1 * p.pbbb
		fccc := -k4 * (na*na*na*p.paaa + 3*na*na*nb*p.paab +
			3*na*nb*nb*p.pabb + nb*nb*nb*p.pbbb +
			3*w*(na*na*p.paa+2*na*nb*p.pab+nb*nb*p.pbb) +
			w*w*(3*(na*p.pa+nb*p.pb)+w*p.p1))

		faab := k1 * p.paab
		fbbc := -k2 * (na*p.pabb + nb*p.pbbb + w*p.pbb)
		fcca := k3 * (na*na*p.paaa + 2*na*nb*p.paab + nb*nb*p.pabb +
			w*(2*(na*p.paa+nb*p.pab)+w*p.pa))

		switch {
		case a == 0:
			t0 += n.X * fa
		case b == 0:
			t0 += n.X * fb
		default:
			t0 += n.X * fc
		}

		t1[a] += na * faa
		t1[b] += nb * fbb
		t1[c] += nc * fcc
		t2[a] += na * faaa
		t2[b] += nb * fbbb
		t2[c] += nc * fccc
		tp[a] += na * faab
		tp[b] += nb * fbbc
		tp[c] += nc * fcca
	}
	for i := 0; i < 3; i++ {
		t1[i] *= 0.5
		t2[i] /= 3
		tp[i] *= 0.5
	}

	props := Properties{
		Density: density,
		Volume:  t0,
		Mass:    density * t0,
	}
	if t0 != 0 {
		props.CenterOfGravity = geometry.NewVector3(t1[0], t1[1], t1[2]).Mul(1 / t0)
	}
	props.Inertia = inertia(density, props.Mass, t2, tp, props.CenterOfGravity)

	slog.Debug("volume integrals",
		"mesh", m.Name(),
		"volume", props.Volume,
		"mass", props.Mass,
		"cog", props.CenterOfGravity)
	return props
}

// inertia builds the tensor about the origin then moves it to the center of gravity
func inertia(density, mass float64, t2, tp [3]float64, r geometry.Vector3) mgl64.Mat3 {
	xx := density*(t2[1]+t2[2]) - mass*(r.Y*r.Y+r.Z*r.Z)
	yy := density*(t2[2]+t2[0]) - mass*(r.Z*r.Z+r.X*r.X)
	zz := density*(t2[0]+t2[1]) - mass*(r.X*r.X+r.Y*r.Y)
	xy := -density*tp[0] + mass*r.X*r.Y
	yz := -density*tp[1] + mass*r.Y*r.Z
	zx := -density*tp[2] + mass*r.Z*r.X

	// symmetric, so column major order reads the same
	return mgl64.Mat3{
		xx, xy, zx,
		xy, yy, yz,
		zx, yz, zz,
	}
}
