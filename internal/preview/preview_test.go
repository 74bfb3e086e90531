package preview

import (
	"bytes"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/webp"

	"mu-bmd-sharpen/internal/mesh"
	"mu-bmd-sharpen/internal/sharpen"
)

func quad(seam bool) *mesh.Mesh {
	second := []mesh.UV{{0, 0}, {1, 1}, {0, 1}}
	if seam {
		second = []mesh.UV{{0, 0.02}, {0.98, 1}, {0, 1}}
	}
	return &mesh.Mesh{
		Faces: []mesh.Face{
			{Verts: []mesh.VertexID{0, 1, 2}},
			{Verts: []mesh.VertexID{0, 2, 3}},
		},
		UVLayers: []mesh.UVLayer{{Corners: [][]mesh.UV{{{0, 0}, {1, 0}, {1, 1}}, second}}},
	}
}

func countColor(img *image.NRGBA, c [4]uint8) int {
	n := 0
	for i := 0; i+3 < len(img.Pix); i += 4 {
		if img.Pix[i] == c[0] && img.Pix[i+1] == c[1] && img.Pix[i+2] == c[2] && img.Pix[i+3] == c[3] {
			n++
		}
	}
	return n
}

func render(t *testing.T, m *mesh.Mesh, opts Options) (*image.NRGBA, *sharpen.Assignment) {
	t.Helper()
	a, err := sharpen.Compute(m, sharpen.Options{})
	require.NoError(t, err)
	return Render(m, a, opts), a
}

func TestRenderIslandsAndEdges(t *testing.T) {
	img, a := render(t, quad(false), Options{Size: 128})
	assert.Equal(t, image.Rect(0, 0, 128, 128), img.Bounds())
	assert.Zero(t, a.HardCount())
	assert.Zero(t, countColor(img, hardEdgeColor))

	// u=0.75, v=0.25 lies inside the first triangle.
	inner := 8 + int(0.75*float64(128-16))
	top := 8 + int(0.25*float64(128-16))
	c := img.NRGBAAt(inner, top)
	want := islandColor(0)
	assert.Equal(t, color.NRGBA{R: want[0], G: want[1], B: want[2], A: want[3]}, c)

	assert.Positive(t, countColor(img, smoothEdgeColor))
	assert.Equal(t, uint8(0), img.NRGBAAt(0, 0).A, "margin stays transparent")

	img, a = render(t, quad(true), Options{Size: 128})
	assert.Equal(t, 1, a.HardCount())
	assert.Positive(t, countColor(img, hardEdgeColor))
}

func TestRenderFitsOutOfRangeUVs(t *testing.T) {
	m := quad(false)
	for _, face := range m.UVLayers[0].Corners {
		for i := range face {
			face[i][0] = face[i][0]*4 + 3
		}
	}
	img, _ := render(t, m, Options{Size: 64})
	assert.Positive(t, countColor(img, smoothEdgeColor))
}

func TestRenderSupersampleAndTexture(t *testing.T) {
	tex := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range tex.Pix {
		tex.Pix[i] = 255
	}
	img, _ := render(t, quad(true), Options{Size: 64, Supersample: 2, Texture: tex})
	assert.Equal(t, 64, img.Bounds().Dx())
}

func TestRenderWithoutLayer(t *testing.T) {
	m := quad(false)
	a, err := sharpen.Compute(m, sharpen.Options{})
	require.NoError(t, err)
	m.UVLayers = nil
	img := Render(m, a, Options{Size: 16})
	assert.Equal(t, 16, img.Bounds().Dx())
}

func TestEncodeFormats(t *testing.T) {
	img, _ := render(t, quad(true), Options{Size: 32})

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img, FormatTGA))
	decoded, err := tga.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())

	buf.Reset()
	require.NoError(t, Encode(&buf, img, FormatWebP))
	cfg, err := webp.DecodeConfig(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Width)

	assert.Error(t, Encode(&buf, img, Format("bmp")))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("WebP")
	require.NoError(t, err)
	assert.Equal(t, FormatWebP, f)
	assert.Equal(t, ".tga", FormatTGA.Ext())

	_, err = ParseFormat("gif")
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	img, _ := render(t, quad(false), Options{Size: 16})
	path := filepath.Join(t.TempDir(), "nested", "uv.tga")
	require.NoError(t, WriteFile(path, img, FormatTGA))
}

func TestDownsampleKeepsSmallImages(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	assert.Same(t, img, Downsample(img, 16))
	assert.Equal(t, 4, Downsample(img, 4).Bounds().Dx())
}
