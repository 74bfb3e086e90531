package bmd

import (
	"math"

	"github.com/pkg/errors"

	"mu-bmd-sharpen/internal/mesh"
)

// TopologyOptions controls how BMD triangles become mesh faces.
type TopologyOptions struct {
	// Weld merges vertices whose positions are bit-identical, so faces that only
	// share positions also share edges.
	Weld bool
	// DropDegenerate removes faces that collapse to fewer than three distinct
	// consecutive vertices instead of passing them on.
	DropDegenerate bool
}

// TopologyStats reports what the conversion changed.
type TopologyStats struct {
	Welded  int // vertices folded into an earlier identical position
	Dropped int // faces removed by DropDegenerate
}

// UVLayerName is the name given to the BMD texcoord layer.
const UVLayerName = "TexCoords"

// Topology converts the sub-mesh into a face/UV-layer mesh. Quads stay quads.
// A sub-mesh without texcoords yields a mesh with no active UV layer.
func (m *Mesh) Topology(name string, opts TopologyOptions) (*mesh.Mesh, TopologyStats, error) {
	var stats TopologyStats

	remap := make([]mesh.VertexID, len(m.Verts))
	for i := range remap {
		remap[i] = mesh.VertexID(i)
	}
	if opts.Weld {
		stats.Welded = weld(m.Verts, remap)
	}

	out := &mesh.Mesh{
		Name:     name,
		Faces:    make([]mesh.Face, 0, len(m.Tris)),
		ActiveUV: -1,
	}
	hasUV := len(m.UVs) > 0
	var corners [][]mesh.UV

	for ti, t := range m.Tris {
		n := t.Corners()
		verts := make([]mesh.VertexID, n)
		uvs := make([]mesh.UV, n)
		for k := 0; k < n; k++ {
			vi := int(t.VI[k])
			if vi < 0 || vi >= len(m.Verts) {
				return nil, stats, errors.Errorf("bmd: %s: triangle %d: vertex index %d out of range", name, ti, vi)
			}
			verts[k] = remap[vi]

			if hasUV {
				tc := int(t.TI[k])
				if tc < 0 || tc >= len(m.UVs) {
					return nil, stats, errors.Errorf("bmd: %s: triangle %d: texcoord index %d out of range", name, ti, tc)
				}
				uvs[k] = mesh.UV(m.UVs[tc])
			}
		}

		if opts.DropDegenerate && collapsed(verts) {
			stats.Dropped++
			continue
		}

		out.Faces = append(out.Faces, mesh.Face{Verts: verts})
		if hasUV {
			corners = append(corners, uvs)
		}
	}

	if hasUV {
		out.UVLayers = []mesh.UVLayer{{Name: UVLayerName, Corners: corners}}
		out.ActiveUV = 0
	}
	return out, stats, nil
}

func weld(verts [][3]float32, remap []mesh.VertexID) int {
	type key [3]uint32
	first := make(map[key]mesh.VertexID, len(verts))
	welded := 0
	for i, v := range verts {
		k := key{math.Float32bits(v[0]), math.Float32bits(v[1]), math.Float32bits(v[2])}
		if id, ok := first[k]; ok {
			remap[i] = id
			welded++
			continue
		}
		first[k] = mesh.VertexID(i)
	}
	return welded
}

func collapsed(verts []mesh.VertexID) bool {
	for k := range verts {
		if verts[k] == verts[(k+1)%len(verts)] {
			return true
		}
	}
	return false
}
