package preview

import (
	"image"
	"image/color"
	"math"
)

// screenPoint is a projected vertex with its shaded color
type screenPoint struct {
	x, y, z float64
	r, g, b float64
}

func lerpPoint(a, b screenPoint, t float64) screenPoint {
	return screenPoint{
		x: a.x + t*(b.x-a.x),
		y: a.y + t*(b.y-a.y),
		z: a.z + t*(b.z-a.z),
		r: a.r + t*(b.r-a.r),
		g: a.g + t*(b.g-a.g),
		b: a.b + t*(b.b-a.b),
	}
}

// fillTriangle fills a triangle with depth testing and Gouraud colors
func fillTriangle(img *image.RGBA, zbuffer []float64, p1, p2, p3 screenPoint) {
	// Sort vertices by Y coordinate (top to bottom)
	if p1.y > p2.y {
		p1, p2 = p2, p1
	}
	if p2.y > p3.y {
		p2, p3 = p3, p2
	}
	if p1.y > p2.y {
		p1, p2 = p2, p1
	}

	bounds := img.Bounds()
	width := bounds.Max.X

	for y := int(math.Max(0, math.Ceil(p1.y))); y <= int(math.Min(float64(bounds.Max.Y-1), p3.y)); y++ {
		fy := float64(y)

		var ends [2]screenPoint
		found := 0
		for _, edge := range [][2]screenPoint{{p1, p2}, {p2, p3}, {p1, p3}} {
			a, b := edge[0], edge[1]
			if found == 2 || a.y == b.y || fy < a.y || fy > b.y {
				continue
			}
			ends[found] = lerpPoint(a, b, (fy-a.y)/(b.y-a.y))
			found++
		}
		if found < 2 {
			continue
		}

		start, end := ends[0], ends[1]
		if start.x > end.x {
			start, end = end, start
		}
		xStart := int(math.Max(0, math.Ceil(start.x)))
		xEnd := int(math.Min(float64(width-1), end.x))

		for x := xStart; x <= xEnd; x++ {
			t := 0.0
			if end.x != start.x {
				t = (float64(x) - start.x) / (end.x - start.x)
			}
			p := lerpPoint(start, end, t)

			// Depth test - draw if closer (smaller z)
			idx := y*width + x
			if p.z < zbuffer[idx] {
				zbuffer[idx] = p.z
				img.SetRGBA(x, y, color.RGBA{clamp8(p.r), clamp8(p.g), clamp8(p.b), 255})
			}
		}
	}
}

// drawLine draws a line using Bresenham's algorithm
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	bounds := img.Bounds()

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		if x1 >= 0 && x1 < bounds.Max.X && y1 >= 0 && y1 < bounds.Max.Y {
			img.SetRGBA(x1, y1, col)
		}
		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// clamp8 converts a 0..1 channel to a byte
func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
