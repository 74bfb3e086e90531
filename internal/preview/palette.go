package preview

import "math"

var (
	hardEdgeColor   = [4]uint8{230, 30, 40, 255}
	smoothEdgeColor = [4]uint8{40, 40, 48, 255}
)

// islandColor spreads island hues around the color wheel by the golden ratio
// so neighbouring indices stay distinguishable.
func islandColor(id int) [4]uint8 {
	h := math.Mod(float64(id)*0.618033988749895, 1)
	r, g, b := hsv(h, 0.55, 0.95)
	return [4]uint8{r, g, b, 255}
}

func hsv(h, s, v float64) (uint8, uint8, uint8) {
	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return clamp255(r * 255), clamp255(g * 255), clamp255(b * 255)
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
