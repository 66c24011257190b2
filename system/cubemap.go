package system

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/lixenwraith/cellscene/asset"
	"github.com/lixenwraith/cellscene/component"
	"github.com/lixenwraith/cellscene/engine"
	"github.com/lixenwraith/cellscene/render"
)

// DefaultSwapDelay is the time between cubemap swaps
const DefaultSwapDelay = 3 * time.Second

// CubemapEntry is a cubemap path and the compressed formats it needs
type CubemapEntry struct {
	Path    string
	Formats asset.CompressedFormats
}

func (c CubemapEntry) String() string {
	return fmt.Sprintf("(%s, %s)", c.Path, c.Formats)
}

// DefaultCubemaps lists the bundled skybox variants
// Only the first and last decode on a device without texture compression
var DefaultCubemaps = []CubemapEntry{
	{Path: "textures/cubemap.png", Formats: asset.FormatsNone},
	{Path: "textures/cubemap_astc4x4.ktx2", Formats: asset.FormatsASTCLDR},
	{Path: "textures/cubemap_bc7.ktx2", Formats: asset.FormatsBC},
	{Path: "textures/cubemap_etc2.ktx2", Formats: asset.FormatsETC2},
	{Path: "textures/cubemap_rgba8.ktx2", Formats: asset.FormatsNone},
}

// Cubemap tracks the active skybox variant
// IsLoaded is false exactly while ImageHandle has not been applied to skyboxes
type Cubemap struct {
	Index       int
	IsLoaded    bool
	ImageHandle asset.Handle
}

// AssetLoader is the part of asset.Server the skybox systems use
type AssetLoader interface {
	Load(path string) asset.Handle
	LoadState(h asset.Handle) asset.LoadState
}

// CubemapCycleSystem swaps to the next supported cubemap every SwapDelay of game time
type CubemapCycleSystem struct {
	engine.SystemBase
	loader  AssetLoader
	entries []CubemapEntry
	delay   time.Duration
	logger  *slog.Logger

	nextSwap  time.Duration
	scheduled bool
}

// NewCubemapCycleSystem creates the cycler over entries
func NewCubemapCycleSystem(world *engine.World, loader AssetLoader, entries []CubemapEntry, delay time.Duration, logger *slog.Logger) *CubemapCycleSystem {
	if delay <= 0 {
		delay = DefaultSwapDelay
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CubemapCycleSystem{
		SystemBase: engine.NewSystemBase(world),
		loader:     loader,
		entries:    entries,
		delay:      delay,
		logger:     logger,
	}
}

func (s *CubemapCycleSystem) Name() string {
	return "cycle_cubemap_asset"
}

func (s *CubemapCycleSystem) Update() {
	now := s.Resource.Time.Elapsed
	if !s.scheduled {
		s.nextSwap = now + s.delay
		s.scheduled = true
		return
	}
	if now < s.nextSwap {
		return
	}
	s.nextSwap += s.delay

	cubemap, ok := engine.GetResource[*Cubemap](s.World.Resources)
	if !ok || len(s.entries) == 0 {
		return
	}

	supported := asset.FormatsNone
	if device, ok := engine.GetResource[*render.Device](s.World.Resources); ok {
		supported = device.CompressedFormats()
	}

	next := s.nextSupported(cubemap.Index, supported)
	// Nothing else decodes on this device
	if next == cubemap.Index {
		return
	}

	cubemap.Index = next
	cubemap.ImageHandle = s.loader.Load(s.entries[next].Path)
	cubemap.IsLoaded = false
}

// nextSupported walks forward from current, wrapping, to the first entry the
// device can decode; it returns current after a full lap without a match
func (s *CubemapCycleSystem) nextSupported(current int, supported asset.CompressedFormats) int {
	next := current
	for range s.entries {
		next = (next + 1) % len(s.entries)
		if supported.Contains(s.entries[next].Formats) {
			break
		}
		s.logger.Info("Skipping unsupported format", "cubemap", s.entries[next].String())
	}
	return next
}

// SkyboxInitSystem applies a finished cubemap load to every skybox
type SkyboxInitSystem struct {
	engine.SystemBase
	loader  AssetLoader
	entries []CubemapEntry
	logger  *slog.Logger
}

// NewSkyboxInitSystem creates the loader side of the skybox cycle
func NewSkyboxInitSystem(world *engine.World, loader AssetLoader, entries []CubemapEntry, logger *slog.Logger) *SkyboxInitSystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &SkyboxInitSystem{
		SystemBase: engine.NewSystemBase(world),
		loader:     loader,
		entries:    entries,
		logger:     logger,
	}
}

func (s *SkyboxInitSystem) Name() string {
	return "skybox_initialization"
}

func (s *SkyboxInitSystem) Update() {
	cubemap, ok := engine.GetResource[*Cubemap](s.World.Resources)
	if !ok || cubemap.IsLoaded {
		return
	}
	if s.loader.LoadState(cubemap.ImageHandle) != asset.Loaded {
		return
	}

	if cubemap.Index >= 0 && cubemap.Index < len(s.entries) {
		s.logger.Info("Swapping to", "cubemap", s.entries[cubemap.Index].String())
	}

	images := engine.MustGetResource[*asset.Assets[asset.Image]](s.World.Resources)
	image, ok := images.GetMut(cubemap.ImageHandle)
	if !ok {
		panic(fmt.Sprintf("cubemap %v reported loaded but is missing from assets", cubemap.ImageHandle))
	}

	// A flat PNG holds six square faces stacked vertically
	if image.ArrayLayerCount() == 1 {
		image.ReinterpretStacked2DAsArray(image.Height / image.Width)
		image.View = asset.ViewCube
	}

	for _, e := range s.Component.Skybox.All() {
		s.Component.Skybox.Update(e, func(sb *component.SkyboxComponent) {
			sb.Image = cubemap.ImageHandle
		})
	}

	cubemap.IsLoaded = true
}

// SkyboxPlugin cycles the camera skybox through a list of cubemaps
// Requires AssetPlugin; the scene inserts the Cubemap resource
type SkyboxPlugin struct {
	Cubemaps  []CubemapEntry
	SwapDelay time.Duration
	Logger    *slog.Logger
}

func (p SkyboxPlugin) Build(app *engine.App) {
	entries := p.Cubemaps
	if len(entries) == 0 {
		entries = DefaultCubemaps
	}
	server := engine.MustGetResource[*asset.Server](app.World.Resources)

	cycle := NewCubemapCycleSystem(app.World, server, entries, p.SwapDelay, p.Logger)
	app.AddSystem(engine.Update, cycle)
	app.AddSystem(engine.Update, NewSkyboxInitSystem(app.World, server, entries, p.Logger), engine.After(cycle.Name()))
}
