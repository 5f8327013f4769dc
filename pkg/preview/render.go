// Package preview draws headless snapshots of meshes, to check geometry
// without a GPU.
package preview

import (
	"image"
	"image/color"
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/draw"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/geometry"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/mesh"
)

// Options control a snapshot
type Options struct {
	Width, Height int
	// Supersample renders that many times larger before downscaling
	Supersample int
	// Yaw and Pitch orbit the camera, in degrees
	Yaw, Pitch float64
	// Zoom changes the camera distance by a factor 1+Zoom
	Zoom       float64
	Background color.RGBA
	// Light is the direction towards the light
	Light     geometry.Vector3
	Ambient   float64
	Wireframe bool
}

// DefaultOptions returns a 512x512 supersampled three quarter view
func DefaultOptions() Options {
	return Options{
		Width:       512,
		Height:      512,
		Supersample: 2,
		Yaw:         30,
		Pitch:       20,
		Background:  color.RGBA{40, 40, 48, 255},
		Light:       geometry.NewVector3(0.4, 0.8, 0.6),
		Ambient:     0.25,
	}
}

var wireColor = color.RGBA{16, 16, 16, 255}

// Render draws the triangles of m lit by a directional light, with vertex colors
func Render(m *mesh.Mesh, opts Options) *image.RGBA {
	ss := max(1, opts.Supersample)
	width, height := max(1, opts.Width)*ss, max(1, opts.Height)*ss

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
	if m.TriangleCount() == 0 {
		return downscale(img, opts, ss)
	}

	camera := NewCamera(m.Bounds())
	camera.Rotate(mgl64.DegToRad(opts.Pitch), mgl64.DegToRad(opts.Yaw))
	if opts.Zoom != 0 {
		camera.Zoom(opts.Zoom)
	}

	zbuffer := make([]float64, width*height)
	for i := range zbuffer {
		zbuffer[i] = math.Inf(1)
	}

	light := opts.Light.Normalize()
	w, h := float64(width), float64(height)
	for _, t := range m.Triangles() {
		t.ComputeNormal()
		// both faces are lit
		shade := opts.Ambient + (1-opts.Ambient)*math.Abs(t.Normal().Dot(light))

		var points [3]screenPoint
		for i, v := range t.Vertices() {
			x, y, z := camera.Project(v.Coord(), w, h)
			c := v.Color()
			points[i] = screenPoint{x: x, y: y, z: z, r: c.X * shade, g: c.Y * shade, b: c.Z * shade}
		}
		fillTriangle(img, zbuffer, points[0], points[1], points[2])
	}

	if opts.Wireframe {
		for _, e := range m.Edges() {
			x1, y1, _ := camera.Project(e.V1.Coord(), w, h)
			x2, y2, _ := camera.Project(e.V2.Coord(), w, h)
			drawLine(img, int(x1), int(y1), int(x2), int(y2), wireColor)
		}
	}

	slog.Debug("preview rendered", "mesh", m.Name(), "triangles", m.TriangleCount(), "width", width, "height", height)
	return downscale(img, opts, ss)
}

// downscale filters the supersampled image down to the requested size
func downscale(img *image.RGBA, opts Options, ss int) *image.RGBA {
	if ss == 1 {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, max(1, opts.Width), max(1, opts.Height)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
