package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/drawing"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/mesh"
)

var (
	exportMode   string
	exportLayout string
	exportLength float64
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Pack a mesh into vertex and index buffers",
	Long: `Pack the mesh into an interleaved vertex buffer and an index buffer, written as JSON.

Modes:
  triangles       one index triple per triangle
  strips          one joined triangle strip
  edges           one index pair per edge
  face-normals    segments showing the triangle normals
  vertex-normals  segments showing the vertex normals`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportMode, "mode", "triangles", "triangles, strips, edges, face-normals or vertex-normals")
	exportCmd.Flags().StringVar(&exportLayout, "layout", strings.Join(drawing.DefaultLayout.Names(), ","), "Comma separated vertex attributes")
	exportCmd.Flags().Float64Var(&exportLength, "length", 0.1, "Length of the normal segments")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output JSON file (default stdout)")
}

func packBuffers(m *mesh.Mesh, mode string, layout drawing.Layout, length float64) (*drawing.Buffers, error) {
	switch mode {
	case "triangles":
		return drawing.PackTriangles(m, layout), nil
	case "strips":
		return drawing.PackStrips(m, layout), nil
	case "edges":
		return drawing.PackEdges(m, layout), nil
	case "face-normals":
		return drawing.FaceNormalLines(m, length), nil
	case "vertex-normals":
		return drawing.VertexNormalLines(m, length), nil
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	names := strings.Split(exportLayout, ",")
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}
	layout, err := drawing.ParseLayout(names)
	if err != nil {
		return err
	}
	m, err := loadMesh(args[0], cfg.Load.Scale)
	if err != nil {
		return err
	}
	buffers, err := packBuffers(m, exportMode, layout, exportLength)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", exportOutput, err)
		}
		defer f.Close()
		w = f
	}
	if err := buffers.WriteJSON(w); err != nil {
		return err
	}
	if exportOutput != "" {
		fmt.Printf("Written: %s (%s, %d vertices, %d indices)\n", exportOutput, buffers.Mode, buffers.VertexCount(), len(buffers.Indices))
	}
	return nil
}
