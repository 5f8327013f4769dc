package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/redux"
)

var (
	reduxCount   int
	reduxMaxCost float64
	reduxOutput  string
)

var reduxCmd = &cobra.Command{
	Use:   "redux [file]",
	Short: "Simplify a mesh by collapsing edges",
	Long: `Collapse the cheapest edges, measured with quadric error metrics, either a
given number of times or while the cost stays below a threshold.`,
	Args: cobra.ExactArgs(1),
	RunE: runRedux,
}

func init() {
	rootCmd.AddCommand(reduxCmd)

	reduxCmd.Flags().IntVar(&reduxCount, "count", 0, "Number of vertices to remove")
	reduxCmd.Flags().Float64Var(&reduxMaxCost, "max-cost", 0, "Collapse while the cost is below this value")
	reduxCmd.Flags().StringVarP(&reduxOutput, "output", "o", "", "Write the mesh to this .obj or .stl file")
	reduxCmd.MarkFlagsMutuallyExclusive("count", "max-cost")
	reduxCmd.MarkFlagsOneRequired("count", "max-cost")
}

func runRedux(cmd *cobra.Command, args []string) error {
	m, err := loadMesh(args[0], cfg.Load.Scale)
	if err != nil {
		return err
	}
	vertices, triangles := m.VertexCount(), m.TriangleCount()

	var removed int
	if cmd.Flags().Changed("count") {
		removed = redux.ReduxCount(m, reduxCount)
	} else {
		removed = redux.ReduxCost(m, reduxMaxCost)
	}
	m.ComputeNormals()

	fmt.Printf("Collapsed %d edges\n", removed)
	fmt.Printf("Vertices: %d -> %d\n", vertices, m.VertexCount())
	fmt.Printf("Triangles: %d -> %d\n", triangles, m.TriangleCount())
	return writeResult(reduxOutput, m)
}
