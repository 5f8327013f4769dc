package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/processing"
)

var (
	extrudeLoop   string
	extrudeHeight float64
	extrudeOutput string
)

var extrudeCmd = &cobra.Command{
	Use:   "extrude [file]",
	Short: "Extrude the region enclosed by a loop of vertices",
	Long: `Push the triangles inside a closed loop of vertices along their mean normal
and join the moved region to the rest of the mesh with side quads. The loop
lists vertex names counterclockwise when seen from the region side.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtrude,
}

func init() {
	rootCmd.AddCommand(extrudeCmd)

	extrudeCmd.Flags().StringVar(&extrudeLoop, "loop", "", "Comma separated vertex names")
	extrudeCmd.Flags().Float64Var(&extrudeHeight, "height", 1, "Extrusion distance")
	extrudeCmd.Flags().StringVarP(&extrudeOutput, "output", "o", "", "Write the mesh to this .obj or .stl file")
	_ = extrudeCmd.MarkFlagRequired("loop")
}

func runExtrude(cmd *cobra.Command, args []string) error {
	m, err := loadMesh(args[0], cfg.Load.Scale)
	if err != nil {
		return err
	}
	loop, err := findVertices(m, strings.Split(extrudeLoop, ","))
	if err != nil {
		return err
	}

	before := m.TriangleCount()
	clones, err := processing.ExtrudePolygon(m, loop, extrudeHeight)
	if err != nil {
		return fmt.Errorf("failed to extrude: %w", err)
	}
	fmt.Printf("Extruded %d vertices, %d side triangles added\n", len(clones), m.TriangleCount()-before)
	return writeResult(extrudeOutput, m)
}
