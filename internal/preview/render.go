// Package preview renders UV layouts with islands and hard edges highlighted.
package preview

import (
	"image"
	"math"

	"mu-bmd-sharpen/internal/mesh"
	"mu-bmd-sharpen/internal/sharpen"
)

// Options controls preview rendering.
type Options struct {
	Size        int
	Supersample int
	Texture     *image.NRGBA // optional background sampled under the island colors
}

const marginPx = 8

// Render draws the active UV layer of m: faces filled by island, every edge
// outlined and hard edges drawn in red on top.
func Render(m *mesh.Mesh, a *sharpen.Assignment, opts Options) *image.NRGBA {
	if opts.Size <= 0 {
		opts.Size = 512
	}
	if opts.Supersample <= 0 {
		opts.Supersample = 1
	}
	renderSize := opts.Size * opts.Supersample
	fb := NewFrameBuffer(renderSize, renderSize)

	layer := m.ActiveLayer()
	if layer == nil || len(m.Faces) == 0 {
		return fb.Image()
	}

	project := projector(layer, renderSize, marginPx*opts.Supersample)

	hard := make(map[mesh.Edge]bool, len(a.Edges))
	for i, e := range a.Edges {
		hard[e] = a.Hard[i]
	}

	corners := func(fi int) []point {
		pts := make([]point, len(layer.Corners[fi]))
		for c, uv := range layer.Corners[fi] {
			pts[c] = project(uv)
		}
		return pts
	}

	for fi := range m.Faces {
		color := islandColor(a.Islands.FaceIsland[fi])
		pts := corners(fi)
		for k := 1; k+1 < len(pts); k++ {
			fillTriangle(fb, pts[0], pts[k], pts[k+1], color, opts.Texture)
		}
	}

	// Smooth outlines first so hard edges are never painted over.
	for _, wantHard := range []bool{false, true} {
		width, color := opts.Supersample, smoothEdgeColor
		if wantHard {
			width, color = 2*opts.Supersample, hardEdgeColor
		}
		for fi, f := range m.Faces {
			pts := corners(fi)
			n := len(f.Verts)
			for c := 0; c < n; c++ {
				e := mesh.MakeEdge(f.Verts[c], f.Verts[(c+1)%n])
				if hard[e] == wantHard {
					drawLine(fb, pts[c], pts[(c+1)%n], width, color)
				}
			}
		}
	}

	img := fb.Image()
	if opts.Supersample > 1 {
		img = Downsample(img, opts.Size)
	}
	return img
}

// projector maps UVs to pixels. Layouts inside the unit square map to it
// directly; anything else is fitted by its bounding box.
func projector(layer *mesh.UVLayer, size, margin int) func(mesh.UV) point {
	minU, minV := math.Inf(1), math.Inf(1)
	maxU, maxV := math.Inf(-1), math.Inf(-1)
	for _, face := range layer.Corners {
		for _, uv := range face {
			u, v := float64(uv[0]), float64(uv[1])
			minU, maxU = math.Min(minU, u), math.Max(maxU, u)
			minV, maxV = math.Min(minV, v), math.Max(maxV, v)
		}
	}

	if minU >= 0 && minV >= 0 && maxU <= 1 && maxV <= 1 {
		minU, minV, maxU, maxV = 0, 0, 1, 1
	}
	span := math.Max(maxU-minU, maxV-minV)
	if span < 1e-9 {
		span = 1
	}
	scale := float64(size-2*margin) / span

	return func(uv mesh.UV) point {
		u, v := float64(uv[0]), float64(uv[1])
		return point{
			x: (u-minU)*scale + float64(margin),
			y: (v-minV)*scale + float64(margin),
			u: u,
			v: v,
		}
	}
}
