package obj

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/mesh"
)

// Write saves m as OBJ text. Every vertex gets its own v, vt and vn line so
// that faces use the same 1-based index for all three.
func Write(w io.Writer, m *mesh.Mesh) error {
	m.Renumber()
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# %d vertices, %d triangles\n", m.VertexCount(), m.TriangleCount())
	fmt.Fprintf(bw, "o %s\n", m.Name())
	for _, v := range m.Vertices() {
		c := v.Coord()
		fmt.Fprintf(bw, "v %g %g %g\n", c.X, c.Y, c.Z)
	}
	for _, v := range m.Vertices() {
		t := v.TexCoord()
		fmt.Fprintf(bw, "vt %g %g\n", t.X, t.Y)
	}
	for _, v := range m.Vertices() {
		n := v.Normal()
		fmt.Fprintf(bw, "vn %g %g %g\n", n.X, n.Y, n.Z)
	}
	for _, t := range m.Triangles() {
		vs := t.Vertices()
		a, b, c := vs[0].Index()+1, vs[1].Index()+1, vs[2].Index()+1
		fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	}
	return bw.Flush()
}

// WriteFile saves m to an OBJ file
func WriteFile(path string, m *mesh.Mesh) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := Write(file, m); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
