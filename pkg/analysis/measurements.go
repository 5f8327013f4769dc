package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/geometry"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/mesh"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/physics"
)

// EdgeInfo contains information about an edge of the mesh
type EdgeInfo struct {
	Start     string
	End       string
	From      geometry.Vector3
	To        geometry.Vector3
	Length    float64
	Triangles int
}

// IsBoundary reports whether a single triangle uses the edge
func (e EdgeInfo) IsBoundary() bool {
	return e.Triangles == 1
}

// MeasurementResult contains various measurements of a mesh
type MeasurementResult struct {
	BoundingBox       geometry.BoundingBox
	Dimensions        geometry.Vector3
	BoundingBoxVolume float64
	// Volume is the enclosed volume, meaningful for closed meshes only
	Volume            float64
	SurfaceArea       float64
	VertexCount       int
	TriangleCount     int
	EdgeCount         int
	BoundaryEdgeCount int
	MinEdgeLength     float64
	MaxEdgeLength     float64
	AvgEdgeLength     float64
	AllEdges          []EdgeInfo
}

// Closed reports whether every edge is shared
func (r *MeasurementResult) Closed() bool {
	return r.TriangleCount > 0 && r.BoundaryEdgeCount == 0
}

// AnalyzeMesh performs comprehensive analysis on a mesh
func AnalyzeMesh(m *mesh.Mesh) *MeasurementResult {
	result := &MeasurementResult{
		BoundingBox:   m.Bounds(),
		VertexCount:   m.VertexCount(),
		TriangleCount: m.TriangleCount(),
		AllEdges:      make([]EdgeInfo, 0),
	}
	if !result.BoundingBox.IsEmpty() {
		result.Dimensions = result.BoundingBox.Size()
		result.BoundingBoxVolume = result.BoundingBox.Volume()
	}

	for _, t := range m.Triangles() {
		t.ComputeNormal()
		result.SurfaceArea += t.Surface()
	}
	result.Volume = physics.VolumeIntegrals(m, 1).Volume

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0

	for _, e := range m.Edges() {
		length := e.Length()
		result.AllEdges = append(result.AllEdges, EdgeInfo{
			Start:     e.V1.Name(),
			End:       e.V2.Name(),
			From:      e.V1.Coord(),
			To:        e.V2.Coord(),
			Length:    length,
			Triangles: len(e.Triangles),
		})
		if e.IsBoundary() {
			result.BoundaryEdgeCount++
		}

		totalLength += length
		minLength = math.Min(minLength, length)
		maxLength = math.Max(maxLength, length)
	}

	result.EdgeCount = len(result.AllEdges)
	if result.EdgeCount > 0 {
		result.MinEdgeLength = minLength
		result.MaxEdgeLength = maxLength
		result.AvgEdgeLength = totalLength / float64(result.EdgeCount)
	}

	return result
}

// FindEdgesByLength finds all edges within a length range
func FindEdgesByLength(result *MeasurementResult, minLength, maxLength float64) []EdgeInfo {
	var edges []EdgeInfo
	for _, edge := range result.AllEdges {
		if edge.Length >= minLength && edge.Length <= maxLength {
			edges = append(edges, edge)
		}
	}
	return edges
}

// FindLongestEdges returns the N longest edges
func FindLongestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length > b.Length })
}

// FindShortestEdges returns the N shortest edges
func FindShortestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length < b.Length })
}

func sortedEdges(result *MeasurementResult, count int, less func(a, b EdgeInfo) bool) []EdgeInfo {
	edges := make([]EdgeInfo, len(result.AllEdges))
	copy(edges, result.AllEdges)

	sort.SliceStable(edges, func(i, j int) bool {
		return less(edges[i], edges[j])
	})

	count = max(0, min(count, len(edges)))
	return edges[:count]
}

// FindNearestVertex finds the vertex of m nearest to a given point,
// nil for an empty mesh
func FindNearestVertex(m *mesh.Mesh, point geometry.Vector3) (*mesh.Vertex, float64) {
	var nearest *mesh.Vertex
	minDistance := math.MaxFloat64

	for _, v := range m.Vertices() {
		distance := point.Distance(v.Coord())
		if distance < minDistance {
			minDistance = distance
			nearest = v
		}
	}

	return nearest, minDistance
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
