package system

import (
	"bytes"
	"io"
	"log/slog"
	"testing"
	"testing/fstest"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/cellscene/asset"
	"github.com/lixenwraith/cellscene/component"
	"github.com/lixenwraith/cellscene/engine"
	"github.com/lixenwraith/cellscene/render"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeLoader hands out handles and lets tests drive load states
type fakeLoader struct {
	loads   []string
	handles map[string]asset.Handle
	states  map[asset.Handle]asset.LoadState
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{
		handles: make(map[string]asset.Handle),
		states:  make(map[asset.Handle]asset.LoadState),
	}
}

func (f *fakeLoader) Load(path string) asset.Handle {
	f.loads = append(f.loads, path)
	h, ok := f.handles[path]
	if !ok {
		h = asset.NewHandle()
		f.handles[path] = h
		f.states[h] = asset.Loading
	}
	return h
}

func (f *fakeLoader) LoadState(h asset.Handle) asset.LoadState {
	return f.states[h]
}

const allFeatures = render.FeatureTextureCompressionASTC | render.FeatureTextureCompressionBC | render.FeatureTextureCompressionETC2

func newCycleApp(t *testing.T, features render.Features, entries []CubemapEntry) (*testApp, *fakeLoader, *Cubemap) {
	t.Helper()
	ta := newTestApp(t)
	engine.InsertResource(ta.app, render.NewSoftwareDevice(features))
	cubemap := &Cubemap{Index: 0, IsLoaded: true}
	engine.InsertResource(ta.app, cubemap)

	loader := newFakeLoader()
	ta.app.AddSystems(engine.Update, NewCubemapCycleSystem(ta.app.World, loader, entries, 3*time.Second, quietLogger))
	ta.start(t)
	return ta, loader, cubemap
}

func TestCubemapCycle_AdvancesWhenAllSupported(t *testing.T) {
	ta, loader, cubemap := newCycleApp(t, allFeatures, DefaultCubemaps)

	for n := 1; n <= 12; n++ {
		ta.step(3 * time.Second)
		if want := n % len(DefaultCubemaps); cubemap.Index != want {
			t.Fatalf("After %d swaps expected index %d, got %d", n, want, cubemap.Index)
		}
		if cubemap.IsLoaded {
			t.Fatalf("Expected IsLoaded cleared after swap %d", n)
		}
		if want := DefaultCubemaps[cubemap.Index].Path; loader.loads[len(loader.loads)-1] != want {
			t.Errorf("Expected load of %s, got %s", want, loader.loads[len(loader.loads)-1])
		}
		if cubemap.ImageHandle != loader.handles[DefaultCubemaps[cubemap.Index].Path] {
			t.Error("Expected handle of the loaded path")
		}
	}
}

func TestCubemapCycle_WaitsForDelay(t *testing.T) {
	ta, loader, cubemap := newCycleApp(t, allFeatures, DefaultCubemaps)

	ta.step(2900 * time.Millisecond)
	if cubemap.Index != 0 || len(loader.loads) != 0 {
		t.Errorf("Expected no swap before the delay, got index %d", cubemap.Index)
	}
	ta.step(100 * time.Millisecond)
	if cubemap.Index != 1 {
		t.Errorf("Expected swap at the delay, got index %d", cubemap.Index)
	}
}

func TestCubemapCycle_CatchesUp(t *testing.T) {
	ta, _, cubemap := newCycleApp(t, allFeatures, DefaultCubemaps)

	// One long frame owes two swaps; they land on consecutive frames
	ta.step(7 * time.Second)
	if cubemap.Index != 1 {
		t.Fatalf("Expected index 1, got %d", cubemap.Index)
	}
	ta.step(0)
	if cubemap.Index != 2 {
		t.Fatalf("Expected catch-up swap to index 2, got %d", cubemap.Index)
	}
	ta.step(0)
	if cubemap.Index != 2 {
		t.Errorf("Expected no third swap, got %d", cubemap.Index)
	}
}

func TestCubemapCycle_SkipsUnsupported(t *testing.T) {
	ta, loader, cubemap := newCycleApp(t, 0, DefaultCubemaps)

	ta.step(3 * time.Second)
	if cubemap.Index != 4 {
		t.Fatalf("Expected uncompressed ktx2 at index 4, got %d", cubemap.Index)
	}
	ta.step(3 * time.Second)
	if cubemap.Index != 0 {
		t.Fatalf("Expected wrap to png at index 0, got %d", cubemap.Index)
	}
	if len(loader.loads) != 2 {
		t.Errorf("Expected 2 loads, got %v", loader.loads)
	}
}

func TestCubemapCycle_NoOtherCandidate(t *testing.T) {
	entries := DefaultCubemaps[:4]
	ta, loader, cubemap := newCycleApp(t, 0, entries)

	for i := 0; i < 5; i++ {
		ta.step(3 * time.Second)
		if cubemap.Index != 0 {
			t.Fatalf("Expected index to stay 0, got %d", cubemap.Index)
		}
	}
	if len(loader.loads) != 0 || !cubemap.IsLoaded {
		t.Errorf("Expected no loads and IsLoaded kept, got %v", loader.loads)
	}
}

func TestCubemapCycle_PausedTimer(t *testing.T) {
	ta, _, cubemap := newCycleApp(t, allFeatures, DefaultCubemaps)

	ta.app.Clock.Pause()
	ta.step(10 * time.Second)
	if cubemap.Index != 0 {
		t.Errorf("Expected no swap while paused, got %d", cubemap.Index)
	}
}

// stackedFaces returns a w x 6w single-layer image with one color per face
func stackedFaces(w int) *asset.Image {
	img := asset.NewImage(w, w*6, asset.FormatRGBA8Srgb)
	for f := 0; f < 6; f++ {
		c := colorful.Color{R: float64(f) / 5, G: 0.5, B: 1 - float64(f)/5}
		for y := 0; y < w; y++ {
			for x := 0; x < w; x++ {
				img.Set(0, x, f*w+y, c)
			}
		}
	}
	return img
}

func newSkyboxApp(t *testing.T) (*testApp, *fakeLoader, *Cubemap, *asset.Assets[asset.Image]) {
	t.Helper()
	ta := newTestApp(t)
	images := asset.NewAssets[asset.Image]()
	engine.InsertResource(ta.app, images)

	loader := newFakeLoader()
	cubemap := &Cubemap{Index: 0, ImageHandle: loader.Load(DefaultCubemaps[0].Path)}
	engine.InsertResource(ta.app, cubemap)

	ta.app.AddSystems(engine.Update, NewSkyboxInitSystem(ta.app.World, loader, DefaultCubemaps, quietLogger))
	return ta, loader, cubemap, images
}

func TestSkyboxInit_ReinterpretsAndAssigns(t *testing.T) {
	ta, loader, cubemap, images := newSkyboxApp(t)
	cam := ta.spawnCamera(component.NewTransform(), 1)
	ta.cs.Skybox.Set(cam, component.SkyboxComponent{})
	ta.start(t)

	if cubemap.IsLoaded {
		t.Fatal("Expected not loaded while Loading")
	}

	images.Insert(cubemap.ImageHandle, *stackedFaces(4))
	loader.states[cubemap.ImageHandle] = asset.Loaded
	ta.step(time.Millisecond)

	if !cubemap.IsLoaded {
		t.Fatal("Expected IsLoaded after load completes")
	}
	img, _ := images.GetMut(cubemap.ImageHandle)
	if img.Layers != 6 || img.Height != 4 || img.View != asset.ViewCube {
		t.Errorf("Expected 6 cube layers of height 4, got %d layers h=%d view=%v", img.Layers, img.Height, img.View)
	}
	if sb, _ := ta.cs.Skybox.Get(cam); sb.Image != cubemap.ImageHandle {
		t.Errorf("Expected skybox handle %v, got %v", cubemap.ImageHandle, sb.Image)
	}

	// Already applied; a second frame must not reinterpret again
	ta.step(time.Millisecond)
	if img.Layers != 6 {
		t.Errorf("Expected layers to stay 6, got %d", img.Layers)
	}
}

func TestSkyboxInit_KeepsCubeImages(t *testing.T) {
	ta, loader, cubemap, images := newSkyboxApp(t)
	ta.start(t)

	cube := stackedFaces(2)
	cube.ReinterpretStacked2DAsArray(6)
	cube.View = asset.ViewCube
	images.Insert(cubemap.ImageHandle, *cube)
	loader.states[cubemap.ImageHandle] = asset.Loaded
	ta.step(time.Millisecond)

	img, _ := images.GetMut(cubemap.ImageHandle)
	if !cubemap.IsLoaded || img.Layers != 6 || img.Height != 2 {
		t.Errorf("Expected cube image untouched, got %d layers h=%d", img.Layers, img.Height)
	}
}

func TestSkyboxInit_FailedLoadStaysPending(t *testing.T) {
	ta, loader, cubemap, _ := newSkyboxApp(t)
	ta.start(t)

	loader.states[cubemap.ImageHandle] = asset.Failed
	for i := 0; i < 3; i++ {
		ta.step(time.Second)
	}
	if cubemap.IsLoaded {
		t.Error("Expected failed load never to be marked loaded")
	}
}

func TestSkyboxInit_MissingImagePanics(t *testing.T) {
	ta, loader, cubemap, _ := newSkyboxApp(t)
	sys := NewSkyboxInitSystem(ta.app.World, loader, DefaultCubemaps, quietLogger)
	loader.states[cubemap.ImageHandle] = asset.Loaded

	defer func() {
		if recover() == nil {
			t.Error("Expected panic for loaded handle missing from assets")
		}
	}()
	sys.Update()
}

func TestSkyboxPlugin_OrdersLoaderAfterCycle(t *testing.T) {
	ta := newTestApp(t)
	ta.app.AddPlugins(AssetPlugin{Root: fstest.MapFS{}, Logger: quietLogger}, SkyboxPlugin{Logger: quietLogger})
	if err := ta.app.Startup(); err != nil {
		t.Fatal(err)
	}

	names, err := ta.app.World.Schedule(engine.Update).Names()
	if err != nil {
		t.Fatal(err)
	}
	cycle, load := -1, -1
	for i, n := range names {
		switch n {
		case "cycle_cubemap_asset":
			cycle = i
		case "skybox_initialization":
			load = i
		}
	}
	if cycle < 0 || load < cycle {
		t.Errorf("Expected cycle before init, got %v", names)
	}
}

func TestSkyboxPlugin_LoadsFromFilesystem(t *testing.T) {
	var png bytes.Buffer
	if err := asset.EncodePNG(&png, stackedFaces(2)); err != nil {
		t.Fatal(err)
	}
	root := fstest.MapFS{"textures/cubemap.png": {Data: png.Bytes()}}

	ta := newTestApp(t)
	ta.app.AddPlugins(AssetPlugin{Root: root, Logger: quietLogger}, SkyboxPlugin{Logger: quietLogger})
	server := engine.MustGetResource[*asset.Server](ta.app.World.Resources)
	defer server.Close()

	cubemap := &Cubemap{ImageHandle: server.Load("textures/cubemap.png")}
	engine.InsertResource(ta.app, cubemap)
	cam := ta.spawnCamera(component.NewTransform(), 1)
	ta.cs.Skybox.Set(cam, component.SkyboxComponent{})

	server.Wait()
	ta.start(t)

	if !cubemap.IsLoaded {
		t.Fatalf("Expected cubemap loaded, state %v", server.LoadState(cubemap.ImageHandle))
	}
	images := engine.MustGetResource[*asset.Assets[asset.Image]](ta.app.World.Resources)
	img, ok := images.Get(cubemap.ImageHandle)
	if !ok || img.View != asset.ViewCube || img.Layers != 6 {
		t.Errorf("Expected cube image, got %+v", img.View)
	}
}
