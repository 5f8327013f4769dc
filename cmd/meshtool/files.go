package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/mesh"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/obj"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/processing"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/stl"
)

// loadMesh reads an OBJ or STL file, choosing the format by extension
func loadMesh(path string, scale float64) (*mesh.Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		m, stats, err := obj.LoadFile(path, obj.Options{Material: cfg.Load.Material, Scale: scale})
		if err != nil {
			return nil, err
		}
		slog.Debug("obj loaded", "file", path, "faces", stats.Faces, "triangles", stats.Triangles, "skipped", stats.Skipped)
		return m, nil

	case ".stl":
		model, err := stl.ParseFile(path)
		if err != nil {
			return nil, err
		}
		name := model.Name
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		m, dropped, err := model.ToMesh(name)
		if err != nil {
			return nil, err
		}
		if dropped > 0 {
			slog.Warn("degenerate facets dropped", "file", path, "count", dropped)
		}
		if scale != 1 {
			processing.Transform(m, mgl64.Scale3D(scale, scale, scale))
			m.ComputeNormals()
		}
		return m, nil

	default:
		return nil, fmt.Errorf("unsupported file type %q, expected .obj or .stl", filepath.Ext(path))
	}
}

// saveMesh writes m as OBJ or STL, choosing the format by extension
func saveMesh(path string, m *mesh.Mesh) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return obj.WriteFile(path, m)

	case ".stl":
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := stl.WriteBinary(f, stl.FromMesh(m)); err != nil {
			f.Close()
			return err
		}
		return f.Close()

	default:
		return fmt.Errorf("unsupported file type %q, expected .obj or .stl", filepath.Ext(path))
	}
}

// writeResult saves m when an output path is given
func writeResult(output string, m *mesh.Mesh) error {
	if output == "" {
		return nil
	}
	if err := saveMesh(output, m); err != nil {
		return err
	}
	fmt.Printf("Written: %s (%d vertices, %d triangles)\n", output, m.VertexCount(), m.TriangleCount())
	return nil
}
