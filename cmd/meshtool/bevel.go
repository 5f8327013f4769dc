package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/geometry"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/mesh"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/processing"
)

var (
	bevelVertex string
	bevelAmount float64
	bevelDir    string
	bevelOutput string
)

var bevelCmd = &cobra.Command{
	Use:   "bevel [file]",
	Short: "Cut a vertex off",
	Long: `Replace a vertex by a face perpendicular to --dir, at --amount from the
vertex along that direction. The direction defaults to the vertex normal.`,
	Args: cobra.ExactArgs(1),
	RunE: runBevel,
}

func init() {
	rootCmd.AddCommand(bevelCmd)

	bevelCmd.Flags().StringVar(&bevelVertex, "vertex", "", "Name of the vertex to cut")
	bevelCmd.Flags().Float64Var(&bevelAmount, "amount", 0.1, "Depth of the cut")
	bevelCmd.Flags().StringVar(&bevelDir, "dir", "", "Cut direction as x,y,z")
	bevelCmd.Flags().StringVarP(&bevelOutput, "output", "o", "", "Write the mesh to this .obj or .stl file")
	_ = bevelCmd.MarkFlagRequired("vertex")
}

// parseVector reads "x,y,z"
func parseVector(s string) (geometry.Vector3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return geometry.Vector3{}, fmt.Errorf("invalid vector %q, expected x,y,z", s)
	}
	var c [3]float64
	for i, part := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("invalid vector %q: %w", s, err)
		}
		c[i] = value
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}

// findVertices looks vertices up by name
func findVertices(m *mesh.Mesh, names []string) ([]*mesh.Vertex, error) {
	vertices := make([]*mesh.Vertex, 0, len(names))
	for _, name := range names {
		v := m.VertexByName(strings.TrimSpace(name))
		if v == nil {
			return nil, fmt.Errorf("no vertex named %q in %s", name, m.Name())
		}
		vertices = append(vertices, v)
	}
	return vertices, nil
}

func runBevel(cmd *cobra.Command, args []string) error {
	m, err := loadMesh(args[0], cfg.Load.Scale)
	if err != nil {
		return err
	}
	vertices, err := findVertices(m, []string{bevelVertex})
	if err != nil {
		return err
	}
	v := vertices[0]

	dir := v.Normal()
	if bevelDir != "" {
		if dir, err = parseVector(bevelDir); err != nil {
			return err
		}
	}

	border, err := processing.BevelVertex(m, v, bevelAmount, dir)
	if err != nil {
		return fmt.Errorf("failed to bevel %s: %w", bevelVertex, err)
	}
	fmt.Printf("Beveled %s: new face of %d vertices\n", bevelVertex, len(border))
	fmt.Printf("Vertices: %d, Triangles: %d\n", m.VertexCount(), m.TriangleCount())
	return writeResult(bevelOutput, m)
}
