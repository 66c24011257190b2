package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/cellscene/asset"
)

var (
	skyZenith  = colorful.Color{R: 0.10, G: 0.22, B: 0.55}
	skyHorizon = colorful.Color{R: 0.62, G: 0.78, B: 0.95}
	skyGround  = colorful.Color{R: 0.25, G: 0.20, B: 0.16}
	skySun     = colorful.Color{R: 1.00, G: 0.95, B: 0.80}
)

// SunDirection is the unit direction the generated sky lights from
var SunDirection = mgl32.Vec3{0.4, 0.35, -0.85}.Normalize()

// SkyColor is the procedural sky seen along dir
func SkyColor(dir mgl32.Vec3) colorful.Color {
	dir = dir.Normalize()
	y := float64(dir.Y())

	var c colorful.Color
	if y >= 0 {
		c = skyHorizon.BlendRgb(skyZenith, math.Sqrt(y))
	} else {
		c = skyHorizon.BlendRgb(skyGround, math.Min(1, -y*4))
	}

	if d := float64(dir.Dot(SunDirection)); d > 0.97 {
		c = c.BlendRgb(skySun, math.Min(1, (d-0.97)/0.02))
	}
	return c.Clamped()
}

// faceDirection maps face texel coordinates in [-1,1] to a view direction
// using the same face orientation the skybox sampler reads
func faceDirection(face int, sc, tc float32) mgl32.Vec3 {
	switch face {
	case 0:
		return mgl32.Vec3{1, -tc, -sc}
	case 1:
		return mgl32.Vec3{-1, -tc, sc}
	case 2:
		return mgl32.Vec3{sc, 1, tc}
	case 3:
		return mgl32.Vec3{sc, -1, -tc}
	case 4:
		return mgl32.Vec3{sc, -tc, 1}
	default:
		return mgl32.Vec3{-sc, -tc, -1}
	}
}

// GenerateSky renders the procedural sky as six size x size faces stacked
// vertically in +X,-X,+Y,-Y,+Z,-Z order, the layout cubemap PNGs use
func GenerateSky(size int) *asset.Image {
	img := asset.NewImage(size, size*6, asset.FormatRGBA8Srgb)
	for face := 0; face < 6; face++ {
		for y := 0; y < size; y++ {
			tc := (float32(y)+0.5)/float32(size)*2 - 1
			for x := 0; x < size; x++ {
				sc := (float32(x)+0.5)/float32(size)*2 - 1
				img.Set(0, x, face*size+y, SkyColor(faceDirection(face, sc, tc)))
			}
		}
	}
	return img
}
