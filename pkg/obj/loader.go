// Package obj reads and writes Wavefront OBJ meshes and MTL material libraries.
package obj

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/geometry"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/mesh"
)

var (
	// ErrSyntax is returned for a line that cannot be parsed
	ErrSyntax = errors.New("obj syntax error")
	// ErrBadIndex is returned for a face referencing a missing vertex
	ErrBadIndex = errors.New("obj index out of range")
)

// Options selects what Load keeps from the file
type Options struct {
	// Material keeps only the faces following "usemtl Material", all faces when empty
	Material string
	// Scale multiplies every coordinate, 0 means 1
	Scale float64
	// Materials colors vertices with the diffuse color of their material when set
	Materials map[string]Material
}

// Stats describes what Load read
type Stats struct {
	Coords    int
	TexCoords int
	Normals   int
	Faces     int
	Triangles int
	Skipped   int
	Libraries []string
	Materials []string
}

type loader struct {
	m        *mesh.Mesh
	opts     Options
	coords   []geometry.Vector3
	uvs      []geometry.Vector2
	normals  []geometry.Vector3
	byKey    map[string]*mesh.Vertex
	material string
}

// Load appends the faces of an OBJ stream to m. Polygons are split into
// fans of triangles. Vertices are named "v(nv,nt,nn)" from their zero based
// indices, -1 for a missing one, and shared by faces using the same triple.
// Normals are computed when the file has none.
func Load(r io.Reader, m *mesh.Mesh, opts Options) (Stats, error) {
	if opts.Scale == 0 {
		opts.Scale = 1
	}
	l := &loader{m: m, opts: opts, byKey: make(map[string]*mesh.Vertex)}
	var stats Stats
	seenMaterial := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch strings.ToLower(fields[0]) {
		case "v":
			p, err := parseFloats(fields[1:], 3)
			if err != nil {
				return stats, fmt.Errorf("line %d: %w", lineNo, err)
			}
			l.coords = append(l.coords, geometry.NewVector3(p[0], p[1], p[2]).Mul(opts.Scale))

		case "vt":
			p, err := parseFloats(fields[1:], 2)
			if err != nil {
				return stats, fmt.Errorf("line %d: %w", lineNo, err)
			}
			l.uvs = append(l.uvs, geometry.NewVector2(p[0], p[1]))

		case "vn":
			p, err := parseFloats(fields[1:], 3)
			if err != nil {
				return stats, fmt.Errorf("line %d: %w", lineNo, err)
			}
			l.normals = append(l.normals, geometry.NewVector3(p[0], p[1], p[2]))

		case "usemtl":
			if len(fields) > 1 {
				l.material = fields[1]
				if !seenMaterial[l.material] {
					seenMaterial[l.material] = true
					stats.Materials = append(stats.Materials, l.material)
				}
			}

		case "mtllib":
			stats.Libraries = append(stats.Libraries, fields[1:]...)

		case "f":
			if len(fields) < 4 {
				continue
			}
			if opts.Material != "" && opts.Material != l.material {
				continue
			}
			added, skipped, err := l.face(fields[1:])
			if err != nil {
				return stats, fmt.Errorf("line %d: %w", lineNo, err)
			}
			stats.Faces++
			stats.Triangles += added
			stats.Skipped += skipped
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("error reading OBJ: %w", err)
	}

	stats.Coords = len(l.coords)
	stats.TexCoords = len(l.uvs)
	stats.Normals = len(l.normals)
	if len(l.normals) == 0 {
		m.ComputeNormals()
	}
	return stats, nil
}

// LoadFile reads an OBJ file into a new mesh named after the file.
// Material libraries found next to it are loaded when opts.Materials is nil.
func LoadFile(path string, opts Options) (*mesh.Mesh, Stats, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if opts.Materials == nil {
		opts.Materials = loadLibraries(path)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	m := mesh.New(name)
	stats, err := Load(file, m, opts)
	if err != nil {
		return nil, stats, fmt.Errorf("%s: %w", path, err)
	}
	return m, stats, nil
}

// loadLibraries reads the mtllib files referenced by an OBJ file, ignoring
// the ones that cannot be opened
func loadLibraries(path string) map[string]Material {
	file, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer file.Close()

	var libs []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) > 1 && fields[0] == "mtllib" {
			libs = append(libs, fields[1:]...)
		}
	}
	if len(libs) == 0 {
		return nil
	}

	materials := make(map[string]Material)
	for _, lib := range libs {
		found, err := ParseMTLFile(filepath.Join(filepath.Dir(path), lib))
		if err != nil {
			slog.Warn("material library not loaded", "file", lib, "error", err)
			continue
		}
		for name, mat := range found {
			materials[name] = mat
		}
	}
	return materials
}

// face adds the fan of triangles of one polygon
func (l *loader) face(words []string) (added, skipped int, err error) {
	vertices := make([]*mesh.Vertex, len(words))
	for i, word := range words {
		if vertices[i], err = l.vertex(word); err != nil {
			return 0, 0, err
		}
	}
	for i := 2; i < len(vertices); i++ {
		if _, err := l.m.AddTriangle(vertices[0], vertices[i-1], vertices[i]); err != nil {
			if errors.Is(err, mesh.ErrDegenerateTriangle) {
				slog.Debug("degenerate face skipped", "face", strings.Join(words, " "))
				skipped++
				continue
			}
			return added, skipped, err
		}
		added++
	}
	return added, skipped, nil
}

// vertex finds or creates the vertex of a "nv/nt/nn" reference
func (l *loader) vertex(word string) (*mesh.Vertex, error) {
	parts := strings.Split(word, "/")
	nv, err := splitNumber(parts, 0, len(l.coords))
	if err != nil {
		return nil, err
	}
	nt, err := splitNumber(parts, 1, len(l.uvs))
	if err != nil {
		return nil, err
	}
	nn, err := splitNumber(parts, 2, len(l.normals))
	if err != nil {
		return nil, err
	}
	if nv < 0 || nv >= len(l.coords) {
		return nil, fmt.Errorf("%w: vertex %q", ErrBadIndex, word)
	}

	name := fmt.Sprintf("v(%d,%d,%d)", nv, nt, nn)
	if v, ok := l.byKey[name]; ok {
		return v, nil
	}

	v, err := l.m.AddVertex(l.m.UniqueName(name))
	if err != nil {
		return nil, err
	}
	v.SetCoord(l.coords[nv])
	if nt >= 0 && nt < len(l.uvs) {
		v.SetTexCoord(l.uvs[nt])
	}
	if nn >= 0 && nn < len(l.normals) {
		v.SetNormal(l.normals[nn])
	}
	if mat, ok := l.opts.Materials[l.material]; ok {
		v.SetColor(mat.Diffuse)
	}
	l.byKey[name] = v
	return v, nil
}

// splitNumber converts the index-th part of a face reference to a zero based
// index. Missing parts and indices beyond max give -1, negative indices count
// from the end.
func splitNumber(parts []string, index, max int) (int, error) {
	if index >= len(parts) || parts[index] == "" {
		return -1, nil
	}
	value, err := strconv.Atoi(parts[index])
	if err != nil {
		return -1, fmt.Errorf("%w: index %q", ErrSyntax, parts[index])
	}
	if value > max {
		return -1, nil
	}
	if value < 0 {
		return max + value, nil
	}
	return value - 1, nil
}

func parseFloats(words []string, count int) ([]float64, error) {
	if len(words) < count {
		return nil, fmt.Errorf("%w: %d values expected, got %d", ErrSyntax, count, len(words))
	}
	values := make([]float64, count)
	for i := 0; i < count; i++ {
		v, err := strconv.ParseFloat(words[i], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrSyntax, words[i])
		}
		values[i] = v
	}
	return values, nil
}
