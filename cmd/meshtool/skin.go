package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/frame"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/mesh"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/shader"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/skeleton"
)

var (
	skinRig        string
	skinDebugJoint string
	skinTime       float64
	skinFrames     int
	skinFPS        float64
	skinPreview    string
	skinShaderDir  string
	skinOutput     string
)

var skinCmd = &cobra.Command{
	Use:   "skin [file]",
	Short: "Compute skinning weights and pose a mesh",
	Long: `Load a rig (a YAML file or a builtin name such as "cow"), compute the joint
weights of every vertex and deform the mesh for the pose at --time. With
--debug-joint, vertices are colored from blue to red with the weight of that
joint instead. With --frames, a snapshot is rendered for every frame.`,
	Args: cobra.ExactArgs(1),
	RunE: runSkin,
}

func init() {
	rootCmd.AddCommand(skinCmd)

	skinCmd.Flags().StringVar(&skinRig, "rig", "cow", "Rig file or builtin rig name")
	skinCmd.Flags().StringVar(&skinDebugJoint, "debug-joint", "", "Color vertices with the weight of this joint")
	skinCmd.Flags().Float64Var(&skinTime, "time", 0, "Animation time in seconds")
	skinCmd.Flags().IntVar(&skinFrames, "frames", 0, "Number of animation frames to render with --preview")
	skinCmd.Flags().Float64Var(&skinFPS, "fps", 24, "Frames per second of the animation")
	skinCmd.Flags().StringVar(&skinPreview, "preview", "", "Render the posed mesh to this .png or .webp file")
	skinCmd.Flags().StringVar(&skinShaderDir, "shader-dir", "", "Write the skinning shader sources in this directory")
	skinCmd.Flags().StringVarP(&skinOutput, "output", "o", "", "Write the posed mesh to this .obj or .stl file")
}

func loadRig(name string) (*skeleton.Rig, error) {
	if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		return skeleton.LoadFile(name)
	}
	return skeleton.Builtin(name)
}

// loadSkinned loads the mesh at the rig scale with the rig color and computes its weights
func loadSkinned(path string, rig *skeleton.Rig, s *skeleton.Skeleton) (*mesh.Mesh, error) {
	scale := cfg.Load.Scale
	if flags.Scale == 0 && rig.Scale > 0 {
		scale = rig.Scale
	}
	m, err := loadMesh(path, scale)
	if err != nil {
		return nil, err
	}
	color, ok, err := rig.DiffuseColor()
	if err != nil {
		return nil, err
	}
	if ok {
		for _, v := range m.Vertices() {
			v.SetColor(color)
		}
	}
	if err := s.ComputeWeights(m); err != nil {
		return nil, err
	}
	return m, nil
}

func runSkin(cmd *cobra.Command, args []string) error {
	rig, err := loadRig(skinRig)
	if err != nil {
		return err
	}
	s, err := rig.Build()
	if err != nil {
		return err
	}
	m, err := loadSkinned(args[0], rig, s)
	if err != nil {
		return err
	}

	fmt.Printf("Rig %s: %d joints\n", rig.Name, s.Len())
	for id := 0; id < s.Len(); id++ {
		j := s.Joint(id)
		parent := "-"
		if p := s.Joint(j.Parent()); p != nil {
			parent = p.Name()
		}
		fmt.Printf("  %d %-10s parent %-10s length %.3f\n", id, j.Name(), parent, j.Length())
	}

	cache := shader.NewCache()
	program, err := cache.Get(s.Variant())
	if err != nil {
		return err
	}
	fmt.Printf("Shader variant: %s %016x\n", program.Name, program.Key)
	if skinShaderDir != "" {
		if err := writeShader(skinShaderDir, program); err != nil {
			return err
		}
	}

	if skinDebugJoint != "" {
		id, err := s.Lookup(skinDebugJoint)
		if err != nil {
			return err
		}
		if err := s.DebugWeights(m, id); err != nil {
			return err
		}
		fmt.Printf("Vertices colored with the weights of %s\n", skinDebugJoint)
		return finishSkin(m)
	}

	if skinFrames > 0 {
		return renderFrames(args[0], rig, s)
	}

	s.Animate(frame.At(skinTime))
	s.Deform(m)
	fmt.Printf("Posed at t=%.3fs\n", skinTime)
	return finishSkin(m)
}

func finishSkin(m *mesh.Mesh) error {
	if skinPreview != "" {
		if err := renderSnapshot(skinPreview, m); err != nil {
			return err
		}
	}
	return writeResult(skinOutput, m)
}

// renderFrames poses a fresh copy of the mesh for every frame of a fixed step clock
func renderFrames(path string, rig *skeleton.Rig, s *skeleton.Skeleton) error {
	if skinPreview == "" {
		return fmt.Errorf("--frames needs --preview")
	}
	if skinFPS <= 0 {
		return fmt.Errorf("invalid frame rate %v", skinFPS)
	}
	step := time.Duration(float64(time.Second) / skinFPS)
	clock := &frame.Clock{Now: frame.FixedStep(time.Unix(0, 0), step)}

	ext := filepath.Ext(skinPreview)
	base := strings.TrimSuffix(skinPreview, ext)
	for i := 0; i < skinFrames; i++ {
		ctx := clock.Tick()
		ctx.Time += skinTime

		m, err := loadSkinned(path, rig, s)
		if err != nil {
			return err
		}
		s.Animate(ctx)
		s.Deform(m)

		if err := renderSnapshot(fmt.Sprintf("%s-%03d%s", base, ctx.Frame, ext), m); err != nil {
			return err
		}
	}
	return nil
}

func writeShader(dir string, program *shader.Program) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	for name, source := range map[string]string{
		program.Name + ".vert": program.VertexSource,
		program.Name + ".frag": program.FragmentSource,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(source), 0o644); err != nil {
			return fmt.Errorf("failed to write shader: %w", err)
		}
	}
	return nil
}
