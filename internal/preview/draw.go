package preview

import (
	"image"
	"math"
)

// point is a pixel-space position with the UV it came from.
type point struct {
	x, y float64
	u, v float64
}

// fillTriangle fills a pixel-space triangle with base, blended half-and-half
// with the texture when one is given.
func fillTriangle(fb *FrameBuffer, p0, p1, p2 point, base [4]uint8, tex *image.NRGBA) {
	minX := int(math.Floor(math.Min(math.Min(p0.x, p1.x), p2.x)))
	maxX := int(math.Ceil(math.Max(math.Max(p0.x, p1.x), p2.x)))
	minY := int(math.Floor(math.Min(math.Min(p0.y, p1.y), p2.y)))
	maxY := int(math.Ceil(math.Max(math.Max(p0.y, p1.y), p2.y)))

	if minX < 0 {
		minX = 0
	}
	if maxX >= fb.Width {
		maxX = fb.Width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= fb.Height {
		maxY = fb.Height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	det := (p1.y-p2.y)*(p0.x-p2.x) + (p2.x-p1.x)*(p0.y-p2.y)
	if det > -1e-9 && det < 1e-9 {
		return
	}
	invDet := 1.0 / det

	dy12 := p1.y - p2.y
	dx21 := p2.x - p1.x
	dy20 := p2.y - p0.y
	dx02 := p0.x - p2.x

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - p2.y
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - p2.x
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1
			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			c := base
			if tex != nil {
				u := w0*p0.u + w1*p1.u + w2*p2.u
				v := w0*p0.v + w1*p1.v + w2*p2.v
				r, g, b, _ := sampleTexture(tex, u, v)
				c[0] = uint8((uint16(c[0]) + uint16(r)) / 2)
				c[1] = uint8((uint16(c[1]) + uint16(g)) / 2)
				c[2] = uint8((uint16(c[2]) + uint16(b)) / 2)
			}
			fb.Set(sx, sy, c)
		}
	}
}

// drawLine draws a square-brush DDA line of the given width.
func drawLine(fb *FrameBuffer, a, b point, width int, c [4]uint8) {
	if width < 1 {
		width = 1
	}
	dx := b.x - a.x
	dy := b.y - a.y
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		steps = 1
	}
	half := width / 2
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		cx := int(a.x + dx*t)
		cy := int(a.y + dy*t)
		for oy := -half; oy < width-half; oy++ {
			for ox := -half; ox < width-half; ox++ {
				fb.Set(cx+ox, cy+oy, c)
			}
		}
	}
}
