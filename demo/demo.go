// Package demo boots a terminal scene: config, logging, screen, audio and the
// plugins every demo shares
package demo

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/lixenwraith/cellscene/asset"
	"github.com/lixenwraith/cellscene/audio"
	"github.com/lixenwraith/cellscene/component"
	"github.com/lixenwraith/cellscene/config"
	"github.com/lixenwraith/cellscene/core"
	"github.com/lixenwraith/cellscene/engine"
	"github.com/lixenwraith/cellscene/input"
	"github.com/lixenwraith/cellscene/logging"
	"github.com/lixenwraith/cellscene/render"
	"github.com/lixenwraith/cellscene/system"
)

// Flags are the command line options shared by the demos
type Flags struct {
	ConfigPath string
	Debug      bool
	Color      string
}

// ParseFlags reads the shared flags from os.Args
func ParseFlags(name string) Flags {
	var f Flags
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.StringVar(&f.ConfigPath, "config", "", "Path to a TOML config file")
	fs.BoolVar(&f.Debug, "debug", false, "Write debug logs to "+logging.DebugFile)
	fs.StringVar(&f.Color, "color", "", "Color mode override: truecolor, 256")
	_ = fs.Parse(os.Args[1:])
	return f
}

// Env is what a scene setup gets to build on
type Env struct {
	App    *engine.App
	Config *config.Config
	Logger *slog.Logger
	Player audio.Player
}

// Setup adds scene plugins and spawns entities before the first frame
type Setup func(env *Env) error

// Settings resolves config, logging and color mode from flags
func Settings(f Flags) (*config.Config, *slog.Logger, io.Closer, error) {
	cfg, err := config.Load(f.ConfigPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if f.Color != "" {
		cfg.Window.Color = f.Color
		if err := cfg.Validate(); err != nil {
			return nil, nil, nil, err
		}
	}

	path, level := cfg.Log.File, slog.LevelInfo
	if lvl, err := logging.ParseLevel(cfg.Log.Level); err == nil {
		level = lvl
	}
	if f.Debug {
		path, level = logging.DebugFile, slog.LevelDebug
	}
	logger, closer, err := logging.Setup(path, level)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, closer, nil
}

// Main runs a demo to completion and exits the process on error
func Main(name string, setup Setup) {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	if err := Run(context.Background(), ParseFlags(name), setup); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		os.Exit(1)
	}
}

// Run opens the terminal, builds the app and drives it until exit
func Run(ctx context.Context, f Flags, setup Setup) error {
	cfg, logger, closer, err := Settings(f)
	if err != nil {
		return err
	}
	defer closer.Close()

	if cfg.Window.Color == "256" {
		os.Setenv("TCELL_TRUECOLOR", "disable")
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "create screen")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "init screen")
	}
	core.SetCrashTerminal(screen)
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()

	player := audio.Open(cfg.AudioConfig(), logger)
	defer player.Close()

	app, err := Build(screen, cfg, logger, player, setup)
	if err != nil {
		return err
	}
	app.SetEventSource(input.NewScreenSource(screen))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting", "fps", cfg.Window.FPS, "color", cfg.Window.Color)
	err = app.Run(ctx)
	if server, ok := engine.GetResource[*asset.Server](app.World.Resources); ok {
		server.Close()
	}
	return err
}

// Build assembles the app on screen without starting it
func Build(screen render.Screen, cfg *config.Config, logger *slog.Logger, player audio.Player, setup Setup, opts ...engine.AppOption) (*engine.App, error) {
	if player == nil {
		player = audio.Silent()
	}
	app := engine.NewApp(append([]engine.AppOption{
		engine.WithFrameRate(cfg.Window.FPS),
		engine.WithLogger(logger),
	}, opts...)...)

	app.AddPlugins(
		input.Plugin{Config: cfg.InputConfig()},
		render.Plugin{
			Screen:   screen,
			Config:   cfg.RenderConfig(),
			Features: cfg.DeviceFeatures(),
			Logger:   logger,
		},
		system.ControlPlugin{Player: player},
	)

	env := &Env{App: app, Config: cfg, Logger: logger, Player: player}
	if err := setup(env); err != nil {
		return nil, err
	}
	ApplyCameraConfig(app.World, cfg)
	return app, nil
}

// ApplyCameraConfig sets configured speed and field of view on every spawned camera
func ApplyCameraConfig(world *engine.World, cfg *config.Config) {
	cs := engine.GetComponentStore(world)
	fov := cfg.FovY()
	for _, e := range cs.Camera.All() {
		cs.Camera.Update(e, func(c *component.Camera3DComponent) {
			c.FovY = fov
		})
	}
	for _, e := range cs.CameraControl.All() {
		cs.CameraControl.Update(e, func(c *component.CameraControlComponent) {
			c.Speed = cfg.Camera.Speed
		})
	}
}
