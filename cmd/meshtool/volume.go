package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/analysis"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/physics"
)

var volumeCmd = &cobra.Command{
	Use:   "volume [file]",
	Short: "Compute volume, mass, center of gravity and inertia",
	Long: `Integrate over the surface of a closed mesh with outward triangles.
The result has no meaning for open or inconsistently oriented meshes.`,
	Args: cobra.ExactArgs(1),
	RunE: runVolume,
}

func init() {
	rootCmd.AddCommand(volumeCmd)

	volumeCmd.Flags().Float64Var(&flags.Density, "density", 0, "Density of the material (default from config, 1)")
}

func runVolume(cmd *cobra.Command, args []string) error {
	m, err := loadMesh(args[0], cfg.Load.Scale)
	if err != nil {
		return err
	}
	props := physics.VolumeIntegrals(m, cfg.Physics.Density)

	fmt.Println("Volume Integrals")
	fmt.Println("================")
	fmt.Printf("Density: %.6f\n", props.Density)
	fmt.Printf("Volume: %s\n", analysis.FormatMeasurement(props.Volume, "cubic units"))
	fmt.Printf("Mass: %.6f\n", props.Mass)
	fmt.Printf("Center of Gravity: %s\n\n", analysis.FormatVector(props.CenterOfGravity))

	fmt.Println("Inertia Tensor (at the center of gravity):")
	for row := 0; row < 3; row++ {
		fmt.Printf("  %12.6f %12.6f %12.6f\n", props.Inertia.At(row, 0), props.Inertia.At(row, 1), props.Inertia.At(row, 2))
	}
	return nil
}
