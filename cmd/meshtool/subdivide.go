package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/processing"
)

var (
	subdivideSteps  int
	subdivideSmooth float64
	subdivideHeight float64
	subdivideOutput string
)

var subdivideCmd = &cobra.Command{
	Use:   "subdivide [file]",
	Short: "Subdivide every triangle",
	Long: `Split every triangle in four at its edge midpoints, steps times. With --smooth,
midpoints follow Hermite curves built from the vertex normals. With --height,
every triangle is split in three around a raised centroid instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runSubdivide,
}

func init() {
	rootCmd.AddCommand(subdivideCmd)

	subdivideCmd.Flags().IntVar(&subdivideSteps, "steps", 1, "Number of subdivisions")
	subdivideCmd.Flags().Float64Var(&subdivideSmooth, "smooth", 0, "Tangent length factor of the midpoints, 0 for flat")
	subdivideCmd.Flags().Float64Var(&subdivideHeight, "height", 0, "Split around centroids raised by this factor")
	subdivideCmd.Flags().StringVarP(&subdivideOutput, "output", "o", "", "Write the mesh to this .obj or .stl file")
}

func runSubdivide(cmd *cobra.Command, args []string) error {
	m, err := loadMesh(args[0], cfg.Load.Scale)
	if err != nil {
		return err
	}
	before := m.TriangleCount()

	if cmd.Flags().Changed("height") {
		_, err = processing.SubdivideCentroid(m, m.Triangles(), subdivideSteps, subdivideHeight)
	} else {
		_, err = processing.SubdivideAll(m, m.Triangles(), subdivideSteps, subdivideSmooth)
	}
	if err != nil {
		return fmt.Errorf("failed to subdivide: %w", err)
	}

	fmt.Printf("Triangles: %d -> %d\n", before, m.TriangleCount())
	fmt.Printf("Vertices: %d\n", m.VertexCount())
	return writeResult(subdivideOutput, m)
}
