package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/cellscene/asset"
	"github.com/lixenwraith/cellscene/render"
)

func TestGenerateSky_MatchesSampler(t *testing.T) {
	const size = 32
	img := GenerateSky(size)
	if img.Width != size || img.Height != size*6 || img.ArrayLayerCount() != 1 {
		t.Fatalf("Expected %dx%d stacked image, got %dx%d with %d layers", size, size*6, img.Width, img.Height, img.Layers)
	}

	img.ReinterpretStacked2DAsArray(6)
	img.View = asset.ViewCube

	dirs := []mgl32.Vec3{
		{1, 0.1, 0.2}, {-1, -0.2, 0.3}, {0.1, 1, -0.2},
		{0.2, -1, 0.1}, {-0.3, 0.2, 1}, {0.2, 0.3, -1},
		SunDirection,
	}
	for _, d := range dirs {
		got := render.SampleCube(img, d)
		want := SkyColor(d)
		// Nearest texel plus 8-bit storage
		if got.DistanceRgb(want) > 0.1 {
			t.Errorf("dir %v: expected %s, got %s", d, want.Hex(), got.Hex())
		}
	}
}

func TestSkyColor_Gradient(t *testing.T) {
	up := SkyColor(mgl32.Vec3{0, 1, 0})
	horizon := SkyColor(mgl32.Vec3{1, 0, 0})
	down := SkyColor(mgl32.Vec3{0, -1, 0})

	if up.B <= up.R {
		t.Errorf("Expected blue zenith, got %s", up.Hex())
	}
	if horizon.R+horizon.G+horizon.B <= up.R+up.G+up.B {
		t.Errorf("Expected horizon brighter than zenith, got %s vs %s", horizon.Hex(), up.Hex())
	}
	if down.B >= horizon.B {
		t.Errorf("Expected ground darker than horizon, got %s", down.Hex())
	}
}
