package preview

import (
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// Format is a preview image container.
type Format string

const (
	FormatWebP Format = "webp"
	FormatTGA  Format = "tga"
)

// ParseFormat accepts "webp" or "tga" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatWebP, FormatTGA:
		return f, nil
	}
	return "", errors.Errorf("preview: unknown format %q", s)
}

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Downsample reduces image size with premultiplied-alpha CatmullRom filtering,
// which keeps transparent borders from bleeding dark halos.
func Downsample(img *image.NRGBA, targetSize int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= targetSize && b.Dy() <= targetSize {
		return img
	}

	premul := image.NewRGBA(b)
	draw.Draw(premul, b, img, b.Min, draw.Src)

	dst := image.NewRGBA(image.Rect(0, 0, targetSize, targetSize))
	draw.CatmullRom.Scale(dst, dst.Bounds(), premul, premul.Bounds(), draw.Src, nil)

	result := image.NewNRGBA(dst.Bounds())
	draw.Draw(result, result.Bounds(), dst, image.Point{}, draw.Src)
	return result
}

// Encode writes img in the given format.
func Encode(w io.Writer, img image.Image, f Format) error {
	var err error
	switch f {
	case FormatTGA:
		err = tga.Encode(w, img)
	case FormatWebP:
		err = nativewebp.Encode(w, img, nil)
	default:
		return errors.Errorf("preview: unknown format %q", f)
	}
	return errors.Wrapf(err, "preview: %s encode", f)
}

// WriteFile encodes img to path, creating parent directories.
func WriteFile(path string, img image.Image, f Format) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "preview: mkdir")
	}
	out, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "preview: create")
	}
	if err := Encode(out, img, f); err != nil {
		out.Close()
		return err
	}
	return errors.Wrap(out.Close(), "preview: close")
}
