package skeleton

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/frame"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/geometry"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/mesh"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/shader"
)

// MaxInfluences is the number of joints a vertex can follow
const MaxInfluences = 4

var (
	// ErrNoJoints is returned when weights are requested from an empty skeleton
	ErrNoJoints = errors.New("skeleton has no joints")
	// ErrUnknownParent is returned when a joint names a parent that was not added before it
	ErrUnknownParent = errors.New("unknown parent joint")
	// ErrUnknownJoint is returned for a joint id or name that does not exist
	ErrUnknownJoint = errors.New("unknown joint")
)

var (
	debugCold = geometry.NewVector4(0, 0, 1, 1)
	debugHot  = geometry.NewVector4(1, 0, 0, 1)
)

// Wave is an oscillating angle in degrees: amplitude * cos(time * frequency)
type Wave struct {
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
}

// Angle returns the angle in radians at time t seconds
func (w Wave) Angle(t float64) float64 {
	return mgl64.DegToRad(w.Amplitude * math.Cos(t*w.Frequency))
}

// Pose animates one joint around its two axes
type Pose struct {
	Main      Wave `yaml:"main"`
	Secondary Wave `yaml:"secondary"`
}

// Skeleton owns joints in an arena. Parents always get smaller ids than
// their children.
type Skeleton struct {
	joints []*Joint
	poses  map[int]Pose
	order  []int

	// specular color and exponent of the skinning material
	Ks [3]float64
	Ns float64
}

// New creates an empty skeleton
func New() *Skeleton {
	return &Skeleton{poses: make(map[int]Pose), Ks: [3]float64{0.1, 0.1, 0.1}, Ns: 64}
}

// AddJoint appends j under parent and returns its id. Use NoParent for a root.
func (s *Skeleton) AddJoint(j *Joint, parent int) (int, error) {
	if parent != NoParent && (parent < 0 || parent >= len(s.joints)) {
		return 0, fmt.Errorf("%w: %d for %q", ErrUnknownParent, parent, j.name)
	}
	j.parent = parent
	j.depth = 0
	if parent != NoParent {
		j.depth = s.joints[parent].depth + 1
	}
	s.joints = append(s.joints, j)
	s.order = nil
	return len(s.joints) - 1, nil
}

// Len returns the number of joints
func (s *Skeleton) Len() int {
	return len(s.joints)
}

// Joint returns the joint of the given id, nil when out of range
func (s *Skeleton) Joint(id int) *Joint {
	if id < 0 || id >= len(s.joints) {
		return nil
	}
	return s.joints[id]
}

// Lookup returns the id of the joint named name
func (s *Skeleton) Lookup(name string) (int, error) {
	for id, j := range s.joints {
		if j.name == name {
			return id, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownJoint, name)
}

// SetPose makes Animate drive joint id
func (s *Skeleton) SetPose(id int, pose Pose) error {
	if s.Joint(id) == nil {
		return fmt.Errorf("%w: id %d", ErrUnknownJoint, id)
	}
	s.poses[id] = pose
	return nil
}

// evaluationOrder returns ids sorted by depth so parents come first
func (s *Skeleton) evaluationOrder() []int {
	if s.order == nil {
		s.order = make([]int, len(s.joints))
		for i := range s.order {
			s.order[i] = i
		}
		sort.SliceStable(s.order, func(a, b int) bool {
			return s.joints[s.order[a]].depth < s.joints[s.order[b]].depth
		})
	}
	return s.order
}

// evaluate stores in every joint its weight on point. Each child removes
// its own weight from its parent, never below 0.
func (s *Skeleton) evaluate(point geometry.Vector3) {
	for _, id := range s.evaluationOrder() {
		j := s.joints[id]
		j.weight = j.Influence(point)
		if j.parent != NoParent {
			p := s.joints[j.parent]
			p.weight = math.Max(0, p.weight-j.weight)
		}
	}
}

// Weights returns the weight of every joint on point
func (s *Skeleton) Weights(point geometry.Vector3) []float64 {
	s.evaluate(point)
	weights := make([]float64, len(s.joints))
	for i, j := range s.joints {
		weights[i] = j.weight
	}
	return weights
}

// packWeights keeps the MaxInfluences largest weights, ordered by joint id,
// normalized to sum 1 and padded with (0, 0). Without any weight the point
// follows joint 0.
func packWeights(weights []float64) (indices, values [MaxInfluences]float64) {
	var ids []int
	for id, w := range weights {
		if w > 0 {
			ids = append(ids, id)
		}
	}
	if len(ids) > MaxInfluences {
		sort.SliceStable(ids, func(a, b int) bool { return weights[ids[a]] > weights[ids[b]] })
		ids = ids[:MaxInfluences]
		sort.Ints(ids)
	}

	sum := 0.0
	for _, id := range ids {
		sum += weights[id]
	}
	if sum == 0 {
		values[0] = 1
		return indices, values
	}
	for i, id := range ids {
		indices[i] = float64(id)
		values[i] = weights[id] / sum
	}
	return indices, values
}

// ComputeWeightsVertex packs the current joint weights into the joint
// attributes of v
func (s *Skeleton) ComputeWeightsVertex(v *mesh.Vertex) {
	weights := make([]float64, len(s.joints))
	for i, j := range s.joints {
		weights[i] = j.weight
	}
	indices, values := packWeights(weights)
	v.SetAttribute(mesh.AttrJointIndices, geometry.NewVector4(indices[0], indices[1], indices[2], indices[3]))
	v.SetAttribute(mesh.AttrJointWeights, geometry.NewVector4(values[0], values[1], values[2], values[3]))
}

// ComputeWeights sets the joint indices and weights of every vertex of m
func (s *Skeleton) ComputeWeights(m *mesh.Mesh) error {
	if len(s.joints) == 0 {
		return ErrNoJoints
	}
	for _, v := range m.Vertices() {
		s.evaluate(v.Coord())
		s.ComputeWeightsVertex(v)
	}
	slog.Debug("skinning weights computed", "mesh", m.Name(), "vertices", m.VertexCount(), "joints", len(s.joints))
	return nil
}

// DebugWeights colors the vertices of m from blue to red with the weight of joint id
func (s *Skeleton) DebugWeights(m *mesh.Mesh, id int) error {
	j := s.Joint(id)
	if j == nil {
		return fmt.Errorf("%w: %d", ErrUnknownJoint, id)
	}
	for _, v := range m.Vertices() {
		s.evaluate(v.Coord())
		v.SetColor(debugCold.Lerp(debugHot, j.weight))
	}
	return nil
}

// ComputeGlobalMatrices composes every local transform with its parent global one
func (s *Skeleton) ComputeGlobalMatrices() {
	for _, id := range s.evaluationOrder() {
		j := s.joints[id]
		if j.parent == NoParent {
			j.global = j.local
		} else {
			j.global = s.joints[j.parent].global.Mul4(j.local)
		}
	}
}

// Animate poses the joints for the frame and updates the global matrices.
// Joints without a pose keep their local transform.
func (s *Skeleton) Animate(ctx frame.Context) {
	for id, pose := range s.poses {
		j := s.joints[id]
		j.Identity()
		j.Rotate(pose.Main.Angle(ctx.Time))
		j.RotateSecondary(pose.Secondary.Angle(ctx.Time))
	}
	s.ComputeGlobalMatrices()
}

// Transform returns the blend of the joint matrices selected by the joint
// attributes of v
func (s *Skeleton) Transform(v *mesh.Vertex) mgl64.Mat4 {
	indices := v.Attribute(mesh.AttrJointIndices)
	weights := v.Attribute(mesh.AttrJointWeights)
	var blend mgl64.Mat4
	for i := 0; i < MaxInfluences; i++ {
		j := s.Joint(int(indices.Component(i)))
		if j == nil {
			continue
		}
		blend = blend.Add(j.global.Mul(weights.Component(i)))
	}
	return blend
}

// Deform moves the vertices of m by their blended joint matrices. It is the
// CPU version of the skinning vertex shader and expects a mesh at rest.
func (s *Skeleton) Deform(m *mesh.Mesh) {
	for _, v := range m.Vertices() {
		matrix := s.Transform(v)
		v.SetCoord(v.Coord().TransformPoint(matrix))
		v.SetNormal(v.Normal().TransformVector(matrix).Normalize())
	}
}

// Variant describes the skinning shader sized for this skeleton
func (s *Skeleton) Variant() shader.Descriptor {
	return shader.Skinning(len(s.joints), s.Ks, s.Ns)
}
