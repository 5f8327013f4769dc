package skeleton

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/geometry"
)

//go:embed rigs/*.yaml
var builtinRigs embed.FS

// ErrInvalidRig is returned for rig documents that cannot build a skeleton
var ErrInvalidRig = errors.New("invalid rig")

// JointSpec describes one joint of a rig
type JointSpec struct {
	Name      string    `yaml:"name"`
	Parent    string    `yaml:"parent,omitempty"`
	Axis      []float64 `yaml:"axis"`
	Pivot     []float64 `yaml:"pivot"`
	Direction []float64 `yaml:"direction"`
	Radius    float64   `yaml:"radius"`
	Min       float64   `yaml:"min"`
	Max       float64   `yaml:"max"`
	Pose      *Pose     `yaml:"pose,omitempty"`
}

// Material holds the specular part of the skinning material
type Material struct {
	Ks []float64 `yaml:"ks"`
	Ns float64   `yaml:"ns"`
}

// Rig is a skeleton definition with the way its mesh is loaded
type Rig struct {
	Name string `yaml:"name"`
	// Model is the OBJ file the rig was made for
	Model string `yaml:"model,omitempty"`
	// Scale applies to the model coordinates when loading
	Scale float64 `yaml:"scale,omitempty"`
	// Color is the diffuse color given to every vertex, empty to keep the model colors
	Color    []float64   `yaml:"color,omitempty"`
	Material *Material   `yaml:"material,omitempty"`
	Joints   []JointSpec `yaml:"joints"`
}

// Load decodes a YAML rig
func Load(r io.Reader) (*Rig, error) {
	var rig Rig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&rig); err != nil {
		return nil, fmt.Errorf("failed to decode rig: %w", err)
	}
	return &rig, nil
}

// LoadFile decodes the YAML rig stored in path
func LoadFile(path string) (*Rig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rig: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Builtin returns one of the embedded rigs, "cow" for instance
func Builtin(name string) (*Rig, error) {
	f, err := builtinRigs.Open("rigs/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: no builtin rig %q", ErrInvalidRig, name)
	}
	defer f.Close()
	return Load(f)
}

func vector3(field string, values []float64) (geometry.Vector3, error) {
	if len(values) != 3 {
		return geometry.Vector3{}, fmt.Errorf("%w: %s needs 3 values, got %d", ErrInvalidRig, field, len(values))
	}
	return geometry.NewVector3(values[0], values[1], values[2]), nil
}

// DiffuseColor returns the rig color and whether one is set
func (r *Rig) DiffuseColor() (geometry.Vector4, bool, error) {
	switch len(r.Color) {
	case 0:
		return geometry.Vector4{}, false, nil
	case 3:
		return geometry.NewVector4(r.Color[0], r.Color[1], r.Color[2], 1), true, nil
	case 4:
		return geometry.NewVector4(r.Color[0], r.Color[1], r.Color[2], r.Color[3]), true, nil
	default:
		return geometry.Vector4{}, false, fmt.Errorf("%w: color needs 3 or 4 values, got %d", ErrInvalidRig, len(r.Color))
	}
}

// Build creates the skeleton. Parents must be listed before their children.
func (r *Rig) Build() (*Skeleton, error) {
	s := New()
	if r.Material != nil {
		if len(r.Material.Ks) != 3 {
			return nil, fmt.Errorf("%w: ks needs 3 values, got %d", ErrInvalidRig, len(r.Material.Ks))
		}
		copy(s.Ks[:], r.Material.Ks)
		s.Ns = r.Material.Ns
	}

	ids := make(map[string]int, len(r.Joints))
	for _, spec := range r.Joints {
		if _, dup := ids[spec.Name]; dup {
			return nil, fmt.Errorf("%w: joint %q defined twice", ErrInvalidRig, spec.Name)
		}
		axis, err := vector3(spec.Name+".axis", spec.Axis)
		if err != nil {
			return nil, err
		}
		pivot, err := vector3(spec.Name+".pivot", spec.Pivot)
		if err != nil {
			return nil, err
		}
		direction, err := vector3(spec.Name+".direction", spec.Direction)
		if err != nil {
			return nil, err
		}

		parent := NoParent
		if spec.Parent != "" {
			id, ok := ids[spec.Parent]
			if !ok {
				return nil, fmt.Errorf("%w: %q for %q", ErrUnknownParent, spec.Parent, spec.Name)
			}
			parent = id
		}

		j := NewJoint(spec.Name).
			SetRotationAxis(axis).
			SetPivot(pivot).
			SetDirection(direction).
			SetRadiusMinMax(spec.Radius, spec.Min, spec.Max)
		id, err := s.AddJoint(j, parent)
		if err != nil {
			return nil, err
		}
		ids[spec.Name] = id
		if spec.Pose != nil {
			if err := s.SetPose(id, *spec.Pose); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}
