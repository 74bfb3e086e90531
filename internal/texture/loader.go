package texture

import (
	"bytes"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/ftrvxmtrx/tga"
	"github.com/pkg/errors"
)

const (
	ozjHeaderSize = 24 // header before the JPEG payload
	oztHeaderSize = 4  // header before the TGA payload
)

// Load reads an OZJ, OZT or plain image file and returns an NRGBA image.
func Load(path string) (*image.NRGBA, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "texture: read %s", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ozj":
		if len(raw) <= ozjHeaderSize {
			return nil, errors.Errorf("texture: OZJ too short: %s", path)
		}
		raw = raw[ozjHeaderSize:]
	case ".ozt":
		if len(raw) <= oztHeaderSize {
			return nil, errors.Errorf("texture: OZT too short: %s", path)
		}
		raw = raw[oztHeaderSize:]
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Wrapf(err, "texture: decode %s", path)
	}
	return toNRGBA(img), nil
}

// toNRGBA converts any image to NRGBA with its origin at (0, 0).
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
