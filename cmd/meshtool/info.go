package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/analysis"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/mesh"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about a mesh",
	Long:  "Show vertex and triangle counts, dimensions, surface area, enclosed volume and edge statistics.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	m, err := loadMesh(filename, cfg.Load.Scale)
	if err != nil {
		return err
	}
	printInfo(filename, m)
	return nil
}

func printInfo(filename string, m *mesh.Mesh) {
	result := analysis.AnalyzeMesh(m)

	fmt.Println("Mesh Information")
	fmt.Println("================")
	fmt.Printf("Name: %s\n", m.Name())
	fmt.Printf("File: %s\n\n", filename)

	fmt.Println("Mesh Statistics:")
	fmt.Printf("  Vertices: %d\n", result.VertexCount)
	fmt.Printf("  Triangles: %d\n", result.TriangleCount)
	fmt.Printf("  Edges: %d (%d on the border)\n", result.EdgeCount, result.BoundaryEdgeCount)
	fmt.Printf("  Closed: %t\n", result.Closed())
	fmt.Printf("  Surface Area: %.6f square units\n\n", result.SurfaceArea)

	if result.BoundingBox.IsEmpty() {
		return
	}
	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Printf("  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Printf("  Center: %s\n\n", analysis.FormatVector(result.BoundingBox.Center()))

	fmt.Println("Dimensions:")
	fmt.Printf("  Width (X): %.6f units\n", result.Dimensions.X)
	fmt.Printf("  Height (Y): %.6f units\n", result.Dimensions.Y)
	fmt.Printf("  Depth (Z): %.6f units\n", result.Dimensions.Z)
	fmt.Printf("  Diagonal: %.6f units\n", result.BoundingBox.Diagonal())
	fmt.Printf("  Box Volume: %.6f cubic units\n", result.BoundingBoxVolume)
	if result.Closed() {
		fmt.Printf("  Enclosed Volume: %.6f cubic units\n", result.Volume)
	}
	fmt.Println()

	fmt.Println("Edge Lengths:")
	fmt.Printf("  Minimum: %.6f units\n", result.MinEdgeLength)
	fmt.Printf("  Maximum: %.6f units\n", result.MaxEdgeLength)
	fmt.Printf("  Average: %.6f units\n", result.AvgEdgeLength)
}
