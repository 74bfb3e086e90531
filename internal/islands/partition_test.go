package islands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mu-bmd-sharpen/internal/mesh"
)

func viewOf(t *testing.T, faces [][]mesh.VertexID, uvs [][]mesh.UV) *mesh.View {
	t.Helper()
	fs := make([]mesh.Face, len(faces))
	for i, f := range faces {
		fs[i] = mesh.Face{Verts: f}
	}
	v, err := mesh.NewLayerView(fs, &mesh.UVLayer{Corners: uvs})
	require.NoError(t, err)
	return v
}

func TestComputeSharedUVsFormOneIsland(t *testing.T) {
	v := viewOf(t,
		[][]mesh.VertexID{{0, 1, 2}, {0, 2, 3}},
		[][]mesh.UV{
			{{0, 0}, {1, 0}, {1, 1}},
			{{0, 0}, {1, 1}, {0, 1}},
		})

	p := Compute(v, Options{})
	assert.Equal(t, 1, p.Count)
	assert.Equal(t, []int{0, 0}, p.FaceIsland)
}

func TestComputeSeamSplitsIslands(t *testing.T) {
	v := viewOf(t,
		[][]mesh.VertexID{{0, 1, 2}, {0, 2, 3}},
		[][]mesh.UV{
			{{0, 0}, {1, 0}, {1, 1}},
			{{0, 0}, {1.5, 1}, {0, 1}},
		})

	p := Compute(v, Options{})
	assert.Equal(t, 2, p.Count)
	assert.NotEqual(t, p.FaceIsland[0], p.FaceIsland[1])
	assert.Equal(t, [][]int{{0}, {1}}, p.Faces())
}

func TestComputeTolerance(t *testing.T) {
	v := viewOf(t,
		[][]mesh.VertexID{{0, 1, 2}, {0, 2, 3}},
		[][]mesh.UV{
			{{0, 0}, {1, 0}, {1, 1}},
			{{0, 0.0001}, {1, 1}, {0, 1}},
		})

	assert.Equal(t, 2, Compute(v, Options{}).Count)
	assert.Equal(t, 1, Compute(v, Options{Tolerance: 0.001}).Count)
}

func TestComputeIsolatedFaceIsSingleton(t *testing.T) {
	v := viewOf(t,
		[][]mesh.VertexID{{0, 1, 2}, {0, 2, 3}, {10, 11, 12}},
		[][]mesh.UV{
			{{0, 0}, {1, 0}, {1, 1}},
			{{0, 0}, {1, 1}, {0, 1}},
			{{0, 0}, {1, 0}, {1, 1}},
		})

	p := Compute(v, Options{})
	assert.Equal(t, 2, p.Count)
	assert.Equal(t, []int{0, 0, 1}, p.FaceIsland)
}

func TestComputeTransitiveChain(t *testing.T) {
	// Fan of four triangles around vertex 0 with continuous UVs; first and
	// last faces only connect through the middle ones.
	uv := func(id mesh.VertexID) mesh.UV { return mesh.UV{float32(id), float32(id) * 0.5} }
	faces := [][]mesh.VertexID{{0, 1, 2}, {0, 2, 3}, {0, 3, 4}, {0, 4, 5}}
	uvs := make([][]mesh.UV, len(faces))
	for i, f := range faces {
		for _, id := range f {
			uvs[i] = append(uvs[i], uv(id))
		}
	}

	p := Compute(viewOf(t, faces, uvs), Options{})
	assert.Equal(t, 1, p.Count)
}

func TestComputeNonManifoldEdge(t *testing.T) {
	v := viewOf(t,
		[][]mesh.VertexID{{0, 1, 2}, {1, 0, 3}, {0, 1, 4}},
		[][]mesh.UV{
			{{0, 0}, {1, 0}, {0.5, 1}},
			{{1, 0}, {0, 0}, {0.5, -1}},
			{{5, 5}, {6, 5}, {5.5, 6}},
		})

	p := Compute(v, Options{})
	assert.Equal(t, 2, p.Count)
	assert.Equal(t, p.FaceIsland[0], p.FaceIsland[1])
	assert.NotEqual(t, p.FaceIsland[0], p.FaceIsland[2])
}

func TestComputeEmpty(t *testing.T) {
	p := Compute(viewOf(t, nil, nil), Options{})
	assert.Zero(t, p.Count)
	assert.Empty(t, p.FaceIsland)
	assert.Empty(t, p.Faces())
}

func TestContinuousRequiresBothEndpoints(t *testing.T) {
	a := mesh.Side{UVA: mesh.UV{0, 0}, UVB: mesh.UV{1, 0}}
	b := mesh.Side{UVA: mesh.UV{0, 0}, UVB: mesh.UV{1, 0.5}}
	assert.True(t, Continuous(a, a, 0))
	assert.False(t, Continuous(a, b, 0))
	assert.True(t, Continuous(a, b, 0.5))
}
