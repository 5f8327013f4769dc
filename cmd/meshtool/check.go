package main

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/processing"
)

var checkRepair string

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Check the integrity of a mesh",
	Long: `Report degenerate edges, repeated vertices and unreferenced vertices.
With --strict, also report edges shared by more than two triangles and
neighbors with opposite orientations. With --repair, unreferenced vertices are
removed and the mesh is written to the given file.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&flags.Strict, "strict", false, "Also check that the mesh is manifold and consistently oriented")
	checkCmd.Flags().StringVar(&checkRepair, "repair", "", "Remove unreferenced vertices and write the result to this file")
}

func runCheck(cmd *cobra.Command, args []string) error {
	m, err := loadMesh(args[0], cfg.Load.Scale)
	if err != nil {
		return err
	}
	strict := cfg.Check.Strict

	out := termenv.NewOutput(os.Stdout)
	okStyle := out.String("OK").Foreground(out.Color("2")).Bold()
	failStyle := out.String("FAIL").Foreground(out.Color("1")).Bold()
	kindStyle := func(s string) termenv.Style { return out.String(s).Foreground(out.Color("3")) }

	mode := "standard"
	if strict {
		mode = "strict"
	}
	fmt.Printf("Mesh Check (%s)\n", mode)
	fmt.Println("==================")
	fmt.Printf("Vertices: %d, Triangles: %d\n\n", m.VertexCount(), m.TriangleCount())

	violations := processing.CheckMesh(m, strict)
	for _, v := range violations {
		fmt.Printf("  %s %s\n", kindStyle(v.Kind.String()), v.Message)
	}
	if len(violations) == 0 {
		fmt.Printf("%s no problem found\n", okStyle)
	} else {
		fmt.Printf("\n%s %d problems found\n", failStyle, len(violations))
	}

	if checkRepair != "" {
		removed := processing.RemoveUnusedVertices(m)
		fmt.Printf("Removed %d unreferenced vertices\n", removed)
		if err := writeResult(checkRepair, m); err != nil {
			return err
		}
	}

	if len(violations) > 0 && checkRepair == "" {
		return fmt.Errorf("%d problems found", len(violations))
	}
	return nil
}
