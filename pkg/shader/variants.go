package shader

import (
	"fmt"
	"strconv"
)

// Skinning describes the deferred shading material that blends up to four
// joint matrices per vertex. joints sizes the matrix array, at least 1.
func Skinning(joints int, ks [3]float64, ns float64) Descriptor {
	return Descriptor{
		Name: "skinning",
		Uniforms: []Variable{
			{"mat4", "mat4ModelView"},
			{"mat4", "mat4Projection"},
			{"mat3", "mat3Normal"},
		},
		Attributes: []Variable{
			{"vec3", "glVertex"},
			{"vec3", "glNormal"},
			{"vec4", "glColor"},
			{"vec4", "JointsIndex"},
			{"vec4", "JointsWeight"},
		},
		Params: map[string]string{
			"joints": strconv.Itoa(max(1, joints)),
			"ks":     fmt.Sprintf("%.4f, %.4f, %.4f", ks[0], ks[1], ks[2]),
			"ns":     strconv.FormatFloat(ns, 'f', 2, 64),
		},
	}
}

// Color describes the flat material drawing lines with per vertex colors
func Color() Descriptor {
	return Descriptor{
		Name: "color",
		Uniforms: []Variable{
			{"mat4", "matProjection"},
			{"mat4", "matMV"},
		},
		Attributes: []Variable{
			{"vec3", "glVertex"},
			{"vec3", "glColor"},
		},
	}
}
