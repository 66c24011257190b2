package asset

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// TextureFormat is the pixel encoding of an Image
type TextureFormat uint8

const (
	FormatRGBA8Unorm TextureFormat = iota
	FormatRGBA8Srgb
)

func (f TextureFormat) String() string {
	switch f {
	case FormatRGBA8Unorm:
		return "Rgba8Unorm"
	case FormatRGBA8Srgb:
		return "Rgba8UnormSrgb"
	}
	return "Unknown"
}

// ViewDimension selects how samplers address the layers of an Image
type ViewDimension uint8

const (
	ViewD2 ViewDimension = iota
	ViewD2Array
	ViewCube
)

func (v ViewDimension) String() string {
	switch v {
	case ViewD2:
		return "D2"
	case ViewD2Array:
		return "D2Array"
	case ViewCube:
		return "Cube"
	}
	return "Unknown"
}

// Image is decoded RGBA8 texture data
// Width and Height describe one layer; Pixels holds Layers of them back to back
// Texel values are returned as stored; the terminal displays them as sRGB either way
type Image struct {
	Width  int
	Height int
	Layers int
	Format TextureFormat
	View   ViewDimension
	Pixels []byte
}

// NewImage allocates a zeroed single-layer image
func NewImage(width, height int, format TextureFormat) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Layers: 1,
		Format: format,
		View:   ViewD2,
		Pixels: make([]byte, width*height*4),
	}
}

// ArrayLayerCount returns the number of layers
func (img *Image) ArrayLayerCount() int {
	return img.Layers
}

// ReinterpretStacked2DAsArray splits a vertically stacked single-layer image
// into layers of equal height; pixel data is unchanged
func (img *Image) ReinterpretStacked2DAsArray(layers int) {
	if img.Layers != 1 {
		panic(fmt.Sprintf("reinterpret requires a single-layer image, got %d layers", img.Layers))
	}
	if layers <= 0 || img.Height%layers != 0 {
		panic(fmt.Sprintf("image height %d is not divisible by %d layers", img.Height, layers))
	}
	img.Height /= layers
	img.Layers = layers
	img.View = ViewD2Array
}

func (img *Image) offset(layer, x, y int) int {
	return ((layer*img.Height+y)*img.Width + x) * 4
}

// At returns the color of one texel; coordinates are clamped to the layer
func (img *Image) At(layer, x, y int) colorful.Color {
	x = clamp(x, 0, img.Width-1)
	y = clamp(y, 0, img.Height-1)
	layer = clamp(layer, 0, img.Layers-1)

	i := img.offset(layer, x, y)
	return colorful.Color{
		R: float64(img.Pixels[i]) / 255,
		G: float64(img.Pixels[i+1]) / 255,
		B: float64(img.Pixels[i+2]) / 255,
	}
}

// Set writes one texel
func (img *Image) Set(layer, x, y int, c colorful.Color) {
	if x < 0 || y < 0 || x >= img.Width || y >= img.Height || layer < 0 || layer >= img.Layers {
		return
	}
	r, g, b := c.Clamped().RGB255()
	i := img.offset(layer, x, y)
	img.Pixels[i], img.Pixels[i+1], img.Pixels[i+2], img.Pixels[i+3] = r, g, b, 255
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
