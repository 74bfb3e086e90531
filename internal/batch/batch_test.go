package batch

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mu-bmd-sharpen/internal/bmd"
	"mu-bmd-sharpen/internal/itemlist"
	"mu-bmd-sharpen/internal/preview"
)

var cubeQuads = [6][4]int16{
	{0, 3, 2, 1},
	{4, 5, 6, 7},
	{0, 1, 5, 4},
	{2, 3, 7, 6},
	{0, 4, 7, 3},
	{1, 2, 6, 5},
}

// boxCube is a cube with every face in its own UV tile, tiles spaced apart.
func boxCube() bmd.Mesh {
	m := bmd.Mesh{
		Verts: [][3]float32{
			{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
			{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
		},
		TexPath: "cube.jpg",
	}
	square := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	for f, q := range cubeQuads {
		t := bmd.Triangle{Polygon: 4, VI: q}
		for c := 0; c < 4; c++ {
			t.TI[c] = int16(len(m.UVs))
			m.UVs = append(m.UVs, [2]float32{(square[c][0] + float32(2*f)) / 12, square[c][1]})
		}
		m.Tris = append(m.Tris, t)
	}
	return m
}

func writeModel(t *testing.T, path string, meshes ...bmd.Mesh) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, bmd.Encode(&bmd.Model{Name: "test", Meshes: meshes}), 0644))
}

func TestCollect(t *testing.T) {
	dir := t.TempDir()
	writeModel(t, filepath.Join(dir, "b.bmd"), boxCube())
	writeModel(t, filepath.Join(dir, "sub", "A.BMD"), boxCube())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0644))

	jobs, err := Collect([]string{dir, filepath.Join(dir, "b.bmd")})
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, filepath.Join(dir, "b.bmd"), jobs[0].Path)
	assert.Equal(t, "b", jobs[0].Name)
	assert.Equal(t, "A", jobs[1].Name)

	_, err = Collect([]string{filepath.Join(dir, "missing")})
	assert.Error(t, err)
}

func TestFromItems(t *testing.T) {
	jobs := FromItems("Data/Item", []itemlist.ItemDef{
		{Section: 0, Index: 1, ModelFile: "Sword01.bmd"},
		{Section: 0, Index: 2, ModelFile: "Sword01.bmd"},
		{Section: 6, Index: 3, ModelFile: "Shield\\Shield04.bmd"},
	})
	require.Len(t, jobs, 2)
	assert.Equal(t, Job{Name: "0_1", Path: filepath.Join("Data", "Item", "Sword01.bmd")}, jobs[0])
	assert.Equal(t, filepath.Join("Data", "Item", "Shield", "Shield04.bmd"), jobs[1].Path)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")

	bare := boxCube()
	bare.UVs = nil
	writeModel(t, filepath.Join(dir, "cube.bmd"), boxCube())
	writeModel(t, filepath.Join(dir, "mixed.bmd"), boxCube(), bare)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "junk.bmd"), []byte("nope"), 0644))

	jobs, err := Collect([]string{dir})
	require.NoError(t, err)
	require.Len(t, jobs, 3)

	cfg := Config{
		OutputDir:     out,
		Keys:          bmd.DefaultKeys(),
		Preview:       true,
		PreviewFormat: preview.FormatTGA,
		PreviewSize:   32,
		Supersample:   1,
		Workers:       2,
		Progress:      time.Millisecond,
	}
	results, err := Run(context.Background(), cfg, jobs)
	require.NoError(t, err)
	require.Len(t, results, 3)

	cube := results[0]
	assert.Equal(t, "cube", cube.Name)
	assert.True(t, cube.Success)
	require.Len(t, cube.Meshes, 1)
	assert.Equal(t, 6, cube.Meshes[0].Faces)
	assert.Equal(t, 12, cube.Meshes[0].Edges)
	assert.Equal(t, 6, cube.Meshes[0].Islands)
	assert.Equal(t, 12, cube.Meshes[0].Hard)
	assert.Len(t, cube.Meshes[0].HardEdges, 12)
	assert.Equal(t, [2]int{0, 1}, cube.Meshes[0].HardEdges[0])
	assert.FileExists(t, cube.Meshes[0].Preview)

	junk := results[1]
	assert.False(t, junk.Success)
	assert.NotEmpty(t, junk.Error)

	mixed := results[2]
	assert.False(t, mixed.Success)
	require.Len(t, mixed.Meshes, 2)
	assert.Empty(t, mixed.Meshes[0].Error)
	assert.Contains(t, mixed.Meshes[1].Error, "no active UV layer")

	report := Summarize(results)
	assert.Equal(t, 3, report.Models)
	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, 2, report.Failed)
	assert.Equal(t, 24, report.HardEdges)

	path := filepath.Join(out, "report.json")
	require.NoError(t, WriteReport(path, report))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var back Report
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, report.Succeeded, back.Succeeded)
}

func TestRunWeldedSplitCube(t *testing.T) {
	// Same cube with every face owning its own vertex copies: without welding
	// no edge is shared, with welding the box seams appear.
	src := boxCube()
	split := bmd.Mesh{UVs: src.UVs}
	for _, tri := range src.Tris {
		own := tri
		for c := 0; c < 4; c++ {
			own.VI[c] = int16(len(split.Verts))
			split.Verts = append(split.Verts, src.Verts[tri.VI[c]])
		}
		split.Tris = append(split.Tris, own)
	}

	dir := t.TempDir()
	writeModel(t, filepath.Join(dir, "split.bmd"), split)
	jobs, err := Collect([]string{dir})
	require.NoError(t, err)

	results, err := Run(context.Background(), Config{Keys: bmd.DefaultKeys(), Workers: 1}, jobs)
	require.NoError(t, err)
	assert.Zero(t, results[0].Meshes[0].Hard)
	assert.Equal(t, 24, results[0].Meshes[0].Boundary)

	results, err = Run(context.Background(), Config{
		Keys:     bmd.DefaultKeys(),
		Topology: bmd.TopologyOptions{Weld: true},
		Workers:  1,
	}, jobs)
	require.NoError(t, err)
	assert.Equal(t, 12, results[0].Meshes[0].Hard)
	assert.Equal(t, 16, results[0].Meshes[0].Welded)
}

func TestRunCancelled(t *testing.T) {
	dir := t.TempDir()
	writeModel(t, filepath.Join(dir, "cube.bmd"), boxCube())
	jobs, err := Collect([]string{dir})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, Config{Keys: bmd.DefaultKeys()}, jobs)
	assert.ErrorIs(t, err, context.Canceled)
}
