package mesh

import "errors"

var (
	// ErrDuplicateName is returned when a vertex name is already used in the mesh
	ErrDuplicateName = errors.New("vertex name already used")
	// ErrDegenerateTriangle is returned when a triangle repeats a vertex
	ErrDegenerateTriangle = errors.New("triangle vertices are not distinct")
	// ErrForeignVertex is returned when a vertex belongs to another mesh
	ErrForeignVertex = errors.New("vertex does not belong to the mesh")
	// ErrPolygon is returned when a polygon cannot be triangulated
	ErrPolygon = errors.New("cannot triangulate polygon")
)
