// Package config loads the demo settings from a TOML file
package config

import (
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"github.com/lixenwraith/cellscene/asset"
	"github.com/lixenwraith/cellscene/audio"
	"github.com/lixenwraith/cellscene/input"
	"github.com/lixenwraith/cellscene/logging"
	"github.com/lixenwraith/cellscene/render"
	"github.com/lixenwraith/cellscene/system"
)

// Duration is a time.Duration that decodes from a TOML string such as "3s"
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Wrapf(err, "invalid duration %q", text)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

type Window struct {
	FPS   int    `toml:"fps"`
	Color string `toml:"color"` // "truecolor" or "256"
}

type Render struct {
	Features   []string `toml:"features"`
	FovDegrees float32  `toml:"fov_degrees"`
	ClearColor string   `toml:"clear_color"`
	Ambient    float64  `toml:"ambient"`
}

type Input struct {
	InitialHold  Duration `toml:"initial_hold"`
	HoldTimeout  Duration `toml:"hold_timeout"`
	CellWidthPx  float32  `toml:"cell_width_px"`
	CellHeightPx float32  `toml:"cell_height_px"`
}

type Camera struct {
	Speed       float32 `toml:"speed"`
	Sensitivity float32 `toml:"sensitivity"`
}

type Cubemap struct {
	Path    string   `toml:"path"`
	Formats []string `toml:"formats"`
}

type Skybox struct {
	SwapDelay Duration  `toml:"swap_delay"`
	AssetsDir string    `toml:"assets_dir"`
	Cubemaps  []Cubemap `toml:"cubemaps"`
}

type Audio struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"`
}

type Log struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Config is the full settings file
type Config struct {
	Window Window `toml:"window"`
	Render Render `toml:"render"`
	Input  Input  `toml:"input"`
	Camera Camera `toml:"camera"`
	Skybox Skybox `toml:"skybox"`
	Audio  Audio  `toml:"audio"`
	Log    Log    `toml:"log"`
}

// Default returns the settings used when no file is given
func Default() *Config {
	in := input.DefaultConfig()
	cubemaps := make([]Cubemap, len(system.DefaultCubemaps))
	for i, e := range system.DefaultCubemaps {
		cubemaps[i] = Cubemap{Path: e.Path, Formats: formatNames(e.Formats)}
	}
	return &Config{
		Window: Window{FPS: 30, Color: "truecolor"},
		Render: Render{
			FovDegrees: 45,
			ClearColor: render.DefaultConfig().ClearColor.Hex(),
			Ambient:    render.DefaultConfig().Ambient,
		},
		Input: Input{
			InitialHold:  Duration{time.Duration(in.InitialHoldMs) * time.Millisecond},
			HoldTimeout:  Duration{time.Duration(in.HoldTimeoutMs) * time.Millisecond},
			CellWidthPx:  in.CellWidthPx,
			CellHeightPx: in.CellHeightPx,
		},
		Camera: Camera{Speed: 5, Sensitivity: system.DefaultMouseSensitivity},
		Skybox: Skybox{
			SwapDelay: Duration{system.DefaultSwapDelay},
			AssetsDir: "assets",
			Cubemaps:  cubemaps,
		},
		Audio: Audio{Enabled: true, Volume: 0.5},
		Log:   Log{Level: "info"},
	}
}

func formatNames(f asset.CompressedFormats) []string {
	if f == asset.FormatsNone {
		return nil
	}
	return strings.Split(f.String(), "|")
}

// Load reads path over the defaults; a missing file yields the defaults
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	if err := Parse(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes TOML data into cfg and validates the result
// Keys absent from data keep their current values
func Parse(data []byte, cfg *Config) error {
	// An explicit cubemap list replaces the defaults rather than merging by index
	var raw struct {
		Skybox struct {
			Cubemaps []Cubemap `toml:"cubemaps"`
		} `toml:"skybox"`
	}
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return errors.Wrap(err, "decode")
	}
	if md.IsDefined("skybox", "cubemaps") {
		cfg.Skybox.Cubemaps = nil
	}

	md, err = toml.Decode(string(data), cfg)
	if err != nil {
		return errors.Wrap(err, "decode")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.Errorf("unknown key %q", undecoded[0].String())
	}
	return cfg.Validate()
}

// Validate rejects settings the demos cannot run with
func (c *Config) Validate() error {
	if c.Window.FPS <= 0 {
		return errors.Errorf("window.fps must be positive, got %d", c.Window.FPS)
	}
	switch c.Window.Color {
	case "truecolor", "256":
	default:
		return errors.Errorf("window.color must be truecolor or 256, got %q", c.Window.Color)
	}

	if _, err := render.ParseFeatures(c.Render.Features); err != nil {
		return errors.Wrap(err, "render.features")
	}
	if c.Render.FovDegrees <= 0 || c.Render.FovDegrees >= 180 {
		return errors.Errorf("render.fov_degrees must be in (0, 180), got %v", c.Render.FovDegrees)
	}
	if _, err := colorful.Hex(c.Render.ClearColor); err != nil {
		return errors.Wrapf(err, "render.clear_color %q", c.Render.ClearColor)
	}
	if c.Render.Ambient < 0 || c.Render.Ambient > 1 {
		return errors.Errorf("render.ambient must be in [0, 1], got %v", c.Render.Ambient)
	}

	if c.Input.InitialHold.Duration <= 0 {
		return errors.Errorf("input.initial_hold must be positive, got %v", c.Input.InitialHold)
	}
	if c.Input.HoldTimeout.Duration <= 0 {
		return errors.Errorf("input.hold_timeout must be positive, got %v", c.Input.HoldTimeout)
	}
	if c.Input.CellWidthPx <= 0 || c.Input.CellHeightPx <= 0 {
		return errors.New("input cell size must be positive")
	}

	if c.Camera.Speed < 0 {
		return errors.Errorf("camera.speed must not be negative, got %v", c.Camera.Speed)
	}
	if c.Camera.Sensitivity <= 0 {
		return errors.Errorf("camera.sensitivity must be positive, got %v", c.Camera.Sensitivity)
	}

	if c.Skybox.SwapDelay.Duration <= 0 {
		return errors.Errorf("skybox.swap_delay must be positive, got %v", c.Skybox.SwapDelay)
	}
	if len(c.Skybox.Cubemaps) == 0 {
		return errors.New("skybox.cubemaps must not be empty")
	}
	for i, cm := range c.Skybox.Cubemaps {
		if cm.Path == "" {
			return errors.Errorf("skybox.cubemaps[%d] has no path", i)
		}
		if _, err := asset.ParseCompressedFormats(cm.Formats); err != nil {
			return errors.Wrapf(err, "skybox.cubemaps[%d]", i)
		}
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return errors.Errorf("audio.volume must be in [0, 1], got %v", c.Audio.Volume)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "log.level")
	}
	return nil
}

// DeviceFeatures returns the configured extra device features
func (c *Config) DeviceFeatures() render.Features {
	f, _ := render.ParseFeatures(c.Render.Features)
	return f
}

// RenderConfig converts the render section for the render plugin
func (c *Config) RenderConfig() render.Config {
	rc := render.DefaultConfig()
	if bg, err := colorful.Hex(c.Render.ClearColor); err == nil {
		rc.ClearColor = bg
	}
	rc.Ambient = c.Render.Ambient
	return rc
}

// FovY returns the camera field of view in radians
func (c *Config) FovY() float32 {
	return mgl32.DegToRad(c.Render.FovDegrees)
}

// InputConfig converts the input section for the input plugin
func (c *Config) InputConfig() input.Config {
	ic := input.DefaultConfig()
	ic.InitialHoldMs = int(c.Input.InitialHold.Milliseconds())
	ic.HoldTimeoutMs = int(c.Input.HoldTimeout.Milliseconds())
	ic.CellWidthPx = c.Input.CellWidthPx
	ic.CellHeightPx = c.Input.CellHeightPx
	return ic
}

// CubemapEntries converts the skybox list; call after Validate
func (c *Config) CubemapEntries() []system.CubemapEntry {
	entries := make([]system.CubemapEntry, 0, len(c.Skybox.Cubemaps))
	for _, cm := range c.Skybox.Cubemaps {
		f, _ := asset.ParseCompressedFormats(cm.Formats)
		entries = append(entries, system.CubemapEntry{Path: cm.Path, Formats: f})
	}
	return entries
}

// AudioConfig converts the audio section for the sound manager
func (c *Config) AudioConfig() *audio.Config {
	ac := audio.DefaultConfig()
	ac.Enabled = c.Audio.Enabled
	ac.MasterVolume = c.Audio.Volume
	return ac
}
