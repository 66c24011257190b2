package asset

import (
	"image"
	"image/draw"
	"image/png"
	"io"
	"path"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrUnsupportedFormat marks texture encodings the software device cannot decode
	ErrUnsupportedFormat = errors.New("unsupported texture format")
	// ErrUnknownExtension is returned when no loader is registered for a path
	ErrUnknownExtension = errors.New("no loader for extension")
)

// LoadFunc decodes one asset file
type LoadFunc func(r io.Reader) (*Image, error)

// DefaultLoaders maps lowercase file extensions to decoders
func DefaultLoaders() map[string]LoadFunc {
	return map[string]LoadFunc{
		".png":  DecodePNG,
		".ktx2": DecodeKTX2,
	}
}

func extension(p string) string {
	return strings.ToLower(path.Ext(p))
}

// DecodePNG reads a PNG into a single-layer sRGB image
func DecodePNG(r io.Reader) (*Image, error) {
	src, err := png.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "decode png")
	}

	b := src.Bounds()
	rgba, ok := src.(*image.RGBA)
	if !ok || rgba.Stride != b.Dx()*4 || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)
	}

	return &Image{
		Width:  b.Dx(),
		Height: b.Dy(),
		Layers: 1,
		Format: FormatRGBA8Srgb,
		View:   ViewD2,
		Pixels: rgba.Pix,
	}, nil
}

// EncodePNG writes a single-layer image, or a multi-layer image stacked vertically
func EncodePNG(w io.Writer, img *Image) error {
	out := &image.RGBA{
		Pix:    img.Pixels,
		Stride: img.Width * 4,
		Rect:   image.Rect(0, 0, img.Width, img.Height*img.Layers),
	}
	return errors.Wrap(png.Encode(w, out), "encode png")
}
