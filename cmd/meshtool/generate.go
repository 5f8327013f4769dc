package main

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/geometry"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/mesh"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/processing"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/topology"
)

var (
	generateNX     int
	generateNZ     int
	generateFoldX  bool
	generateFoldZ  bool
	generateNames  string
	generateSize   float64
	generateOutput string
)

var generateCmd = &cobra.Command{
	Use:   "generate grid|hex|revolution|box",
	Short: "Generate a surface",
	Long: `Generate a rectangular grid, a hexagonal grid, a revolution disk or a box.
For grids, --nx and --nz are the vertex counts and --fold-x/--fold-z join the
opposite borders. For a revolution disk, --nx is the number of spokes and --nz
the number of rings. Coordinates are spaced by --size.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"grid", "hex", "revolution", "box"},
	RunE:      runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntVar(&generateNX, "nx", 4, "Vertices along X, or spokes")
	generateCmd.Flags().IntVar(&generateNZ, "nz", 3, "Vertices along Z, or rings")
	generateCmd.Flags().BoolVar(&generateFoldX, "fold-x", false, "Join the first and last columns")
	generateCmd.Flags().BoolVar(&generateFoldZ, "fold-z", false, "Join the first and last rows")
	generateCmd.Flags().StringVar(&generateNames, "names", "v%d-%d", "Vertex name pattern with two %d")
	generateCmd.Flags().Float64Var(&generateSize, "size", 1, "Distance between neighbor vertices, or box side")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Write the mesh to this .obj or .stl file")
}

func generate(kind string) (*mesh.Mesh, error) {
	m := mesh.New(kind)
	var err error
	switch kind {
	case "grid":
		_, err = topology.AddRectangularSurface(m, generateNX, generateNZ, generateNames, generateFoldX, generateFoldZ)
	case "hex":
		_, err = topology.AddHexagonalSurface(m, generateNX, generateNZ, generateNames, generateFoldX, generateFoldZ)
	case "revolution":
		_, err = topology.AddRevolutionSurface(m, generateNX, generateNZ, generateNames)
	case "box":
		half := generateSize / 2
		corners := mesh.New("corners")
		for _, name := range []string{"min", "max"} {
			v, err := corners.AddVertex(name)
			if err != nil {
				return nil, err
			}
			if name == "min" {
				v.SetCoord(geometry.NewVector3(-half, -half, -half))
			} else {
				v.SetCoord(geometry.NewVector3(half, half, half))
			}
		}
		return processing.CreateAABB(corners)
	default:
		return nil, fmt.Errorf("unknown surface %q, expected grid, hex, revolution or box", kind)
	}
	if err != nil {
		return nil, err
	}
	processing.Transform(m, mgl64.Scale3D(generateSize, generateSize, generateSize))
	m.ComputeNormals()
	return m, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	m, err := generate(args[0])
	if err != nil {
		return err
	}
	if generateOutput == "" {
		printInfo("(generated)", m)
		return nil
	}
	return writeResult(generateOutput, m)
}
