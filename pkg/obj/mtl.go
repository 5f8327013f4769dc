package obj

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/geometry"
)

// Material is the subset of an MTL material used to color meshes
type Material struct {
	Name      string
	Ambient   geometry.Vector3
	Diffuse   geometry.Vector4 // Kd with d as alpha
	Specular  geometry.Vector3
	Shininess float64
	Texture   string
}

// ParseMTL reads the materials of an MTL stream
func ParseMTL(r io.Reader) (map[string]Material, error) {
	materials := make(map[string]Material)
	var current *Material
	flush := func() {
		if current != nil {
			materials[current.Name] = *current
		}
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "newmtl" {
			flush()
			name := ""
			if len(fields) > 1 {
				name = fields[1]
			}
			current = &Material{Name: name, Diffuse: geometry.NewVector4(1, 1, 1, 1)}
			continue
		}
		if current == nil {
			continue
		}

		switch fields[0] {
		case "Ka", "Kd", "Ks":
			p, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			color := geometry.NewVector3(p[0], p[1], p[2])
			switch fields[0] {
			case "Ka":
				current.Ambient = color
			case "Kd":
				current.Diffuse = geometry.Extend(color, current.Diffuse.W)
			case "Ks":
				current.Specular = color
			}
		case "Ns", "d":
			p, err := parseFloats(fields[1:], 1)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			if fields[0] == "Ns" {
				current.Shininess = p[0]
			} else {
				current.Diffuse.W = p[0]
			}
		case "map_Kd":
			if len(fields) > 1 {
				current.Texture = fields[len(fields)-1]
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading MTL: %w", err)
	}
	flush()
	return materials, nil
}

// ParseMTLFile reads an MTL file
func ParseMTLFile(path string) (map[string]Material, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()
	return ParseMTL(file)
}
