package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/cellscene/asset"
)

// Cube face layers in image order
const (
	FacePosX = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

// cubeFace picks the major axis face and the face-local s,t in [0,1]
func cubeFace(dir mgl32.Vec3) (face int, s, t float32) {
	ax, ay, az := abs32(dir[0]), abs32(dir[1]), abs32(dir[2])

	var sc, tc, ma float32
	switch {
	case ax >= ay && ax >= az:
		ma = ax
		if dir[0] > 0 {
			face, sc, tc = FacePosX, -dir[2], -dir[1]
		} else {
			face, sc, tc = FaceNegX, dir[2], -dir[1]
		}
	case ay >= az:
		ma = ay
		if dir[1] > 0 {
			face, sc, tc = FacePosY, dir[0], dir[2]
		} else {
			face, sc, tc = FaceNegY, dir[0], -dir[2]
		}
	default:
		ma = az
		if dir[2] > 0 {
			face, sc, tc = FacePosZ, dir[0], -dir[1]
		} else {
			face, sc, tc = FaceNegZ, -dir[0], -dir[1]
		}
	}
	if ma == 0 {
		return FacePosZ, 0.5, 0.5
	}
	return face, (sc/ma + 1) * 0.5, (tc/ma + 1) * 0.5
}

// SampleCube returns the nearest texel of a cube image along dir
func SampleCube(img *asset.Image, dir mgl32.Vec3) colorful.Color {
	face, s, t := cubeFace(dir)
	x := min(int(s*float32(img.Width)), img.Width-1)
	y := min(int(t*float32(img.Height)), img.Height-1)
	return img.At(face, max(x, 0), max(y, 0))
}

// drawSkybox fills every pixel without geometry with the cube image seen from rot
func drawSkybox(fb *Framebuffer, img *asset.Image, rot mgl32.Quat, fovY, aspect float32) {
	if img == nil || img.View != asset.ViewCube || img.ArrayLayerCount() < 6 {
		return
	}
	tanHalf := float32(math.Tan(float64(fovY) / 2))
	for py := 0; py < fb.Height; py++ {
		ny := 1 - (float32(py)+0.5)/float32(fb.Height)*2
		for px := 0; px < fb.Width; px++ {
			if fb.Covered(px, py) {
				continue
			}
			nx := (float32(px)+0.5)/float32(fb.Width)*2 - 1
			ray := rot.Rotate(mgl32.Vec3{nx * tanHalf * aspect, ny * tanHalf, -1})
			fb.Color[py*fb.Width+px] = SampleCube(img, ray)
		}
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
