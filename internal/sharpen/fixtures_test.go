package sharpen

import "mu-bmd-sharpen/internal/mesh"

// cubeFaces lists the six quads of a cube over vertices 0..7.
var cubeFaces = [][]mesh.VertexID{
	{0, 3, 2, 1},
	{4, 5, 6, 7},
	{0, 1, 5, 4},
	{2, 3, 7, 6},
	{0, 4, 7, 3},
	{1, 2, 6, 5},
}

func buildMesh(faces [][]mesh.VertexID, uv func(face, corner int, v mesh.VertexID) mesh.UV) *mesh.Mesh {
	m := &mesh.Mesh{UVLayers: []mesh.UVLayer{{Name: "UVMap"}}}
	for fi, f := range faces {
		m.Faces = append(m.Faces, mesh.Face{Verts: append([]mesh.VertexID(nil), f...)})
		corners := make([]mesh.UV, len(f))
		for c, v := range f {
			corners[c] = uv(fi, c, v)
		}
		m.UVLayers[0].Corners = append(m.UVLayers[0].Corners, corners)
	}
	return m
}

// perVertexUV gives every vertex one UV shared by all its corners.
func perVertexUV(_, _ int, v mesh.VertexID) mesh.UV {
	return mesh.UV{float32(v) * 0.125, float32(v%3) * 0.25}
}

// boxUnwrapUV places each face in its own tile.
func boxUnwrapUV(face, corner int, _ mesh.VertexID) mesh.UV {
	square := [4]mesh.UV{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	uv := square[corner%4]
	return mesh.UV{uv[0] + float32(face)*2, uv[1]}
}

func twoTriangles(shift float32) *mesh.Mesh {
	return buildMesh([][]mesh.VertexID{{0, 1, 2}, {0, 2, 3}}, func(face, _ int, v mesh.VertexID) mesh.UV {
		base := [4]mesh.UV{{0, 0}, {1, 0}, {1, 1}, {0, 1}}[v]
		if face == 1 {
			base[0] += shift
		}
		return base
	})
}

// gridMesh builds a w x h grid of quads. tiles[f] selects the UV tile of face
// f, so neighbours share UVs exactly when their tiles match.
func gridMesh(w, h int, tiles []int) *mesh.Mesh {
	vid := func(x, y int) mesh.VertexID { return mesh.VertexID(y*(w+1) + x) }
	var faces [][]mesh.VertexID
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			faces = append(faces, []mesh.VertexID{vid(x, y), vid(x+1, y), vid(x+1, y+1), vid(x, y+1)})
		}
	}
	return buildMesh(faces, func(face, _ int, v mesh.VertexID) mesh.UV {
		x := int(v) % (w + 1)
		y := int(v) / (w + 1)
		return mesh.UV{float32(x) + float32(tiles[face])*100, float32(y)}
	})
}
