package engine

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/cellscene/core"
)

// DefaultFrameRate is the frame ticker rate when none is configured
const DefaultFrameRate = 60

// Plugin bundles resources and systems that belong together
type Plugin interface {
	Build(app *App)
}

// PluginFunc adapts a function to the Plugin interface
type PluginFunc func(app *App)

func (f PluginFunc) Build(app *App) { f(app) }

// EventSource delivers external events (terminal input, resize) to the frame loop
type EventSource interface {
	// NextEvent blocks until an event arrives; nil means the source is closed
	NextEvent() any
	// Close unblocks a pending NextEvent
	Close()
}

// EventHandler consumes one external event on the frame goroutine
type EventHandler func(ev any)

// App owns the world, the clock and the frame loop
type App struct {
	World *World
	Clock *PausableClock

	frameRate int
	source    EventSource
	handlers  []EventHandler
	logger    *slog.Logger

	frame   int64
	started bool
}

// AppOption configures an App
type AppOption func(*App)

// WithTimeProvider replaces the clock time source
func WithTimeProvider(tp TimeProvider) AppOption {
	return func(a *App) {
		a.Clock = NewPausableClock(tp)
	}
}

// WithFrameRate sets the frame ticker rate
func WithFrameRate(fps int) AppOption {
	return func(a *App) {
		if fps > 0 {
			a.frameRate = fps
		}
	}
}

// WithLogger sets the logger used by the frame loop
func WithLogger(l *slog.Logger) AppOption {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewApp creates an App with the core resources inserted
func NewApp(opts ...AppOption) *App {
	a := &App{
		World:     NewWorld(),
		frameRate: DefaultFrameRate,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.Clock == nil {
		a.Clock = NewPausableClock(nil)
	}

	rs := a.World.Resources
	AddResource(rs, &TimeResource{})
	AddResource(rs, &WindowResource{})
	AddResource(rs, &ClockResource{Clock: a.Clock})
	AddResource(rs, &ExitResource{})
	AddResource(rs, a)

	return a
}

// InsertResource adds or replaces a world resource
func InsertResource[T any](a *App, r T) *App {
	AddResource(a.World.Resources, r)
	return a
}

// AddPlugins builds each plugin in order
func (a *App) AddPlugins(plugins ...Plugin) *App {
	for _, p := range plugins {
		p.Build(a)
	}
	return a
}

// AddSystems registers systems in a stage in the given order
func (a *App) AddSystems(stage Stage, systems ...System) *App {
	for _, sys := range systems {
		a.World.Schedule(stage).Add(sys)
	}
	return a
}

// AddSystem registers one system with ordering options
func (a *App) AddSystem(stage Stage, sys System, opts ...SystemOption) *App {
	a.World.Schedule(stage).Add(sys, opts...)
	return a
}

// SetEventSource attaches the source Run polls for external events
func (a *App) SetEventSource(src EventSource) *App {
	a.source = src
	return a
}

// AddEventHandler registers a consumer for external events
func (a *App) AddEventHandler(h EventHandler) *App {
	a.handlers = append(a.handlers, h)
	return a
}

// HandleEvent dispatches an external event to every handler
func (a *App) HandleEvent(ev any) {
	for _, h := range a.handlers {
		h(ev)
	}
}

// Exit requests the frame loop to stop after the current frame
func (a *App) Exit() {
	MustGetResource[*ExitResource](a.World.Resources).Request()
}

// Startup resolves every schedule and runs the Startup stage once
func (a *App) Startup() error {
	if a.started {
		return nil
	}
	for _, stage := range allStages {
		if err := a.World.Schedule(stage).Build(); err != nil {
			return err
		}
	}
	a.started = true
	a.World.Schedule(Startup).Run()
	return nil
}

// RunFrame advances the time resource and runs every per-frame stage once
func (a *App) RunFrame() {
	a.frame++
	MustGetResource[*TimeResource](a.World.Resources).Update(a.Clock.Elapsed(), a.frame)

	for _, stage := range frameStages {
		a.World.Schedule(stage).Run()
	}
}

// Run drives the app until Exit is requested, the event source closes the
// context, or ctx is cancelled
func (a *App) Run(ctx context.Context) error {
	if err := a.Startup(); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan any, 100)
	exit := MustGetResource[*ExitResource](a.World.Resources)

	if a.source != nil {
		g.Go(func() error {
			defer recoverCrash()
			for {
				ev := a.source.NextEvent()
				if ev == nil {
					return nil
				}
				select {
				case events <- ev:
				case <-ctx.Done():
					return nil
				}
			}
		})
	}

	g.Go(func() error {
		defer recoverCrash()
		defer cancel()
		if a.source != nil {
			defer a.source.Close()
		}

		ticker := time.NewTicker(time.Second / time.Duration(a.frameRate))
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil

			case ev := <-events:
				a.HandleEvent(ev)
				if exit.Requested() {
					a.logger.Info("Exit requested", "frame", a.frame)
					return nil
				}

			case <-ticker.C:
				a.RunFrame()
				if exit.Requested() {
					a.logger.Info("Exit requested", "frame", a.frame)
					return nil
				}
			}
		}
	})

	return g.Wait()
}

func recoverCrash() {
	if r := recover(); r != nil {
		core.HandleCrash(r)
	}
}

// AddEvent registers an Events[T] resource swapped once per frame in the First stage
func AddEvent[T any](a *App) *Events[T] {
	if ev, ok := GetResource[*Events[T]](a.World.Resources); ok {
		return ev
	}
	ev := NewEvents[T]()
	AddResource(a.World.Resources, ev)
	name := fmt.Sprintf("events_update[%s]", reflect.TypeFor[T]())
	a.AddSystem(First, SystemFunc(name, ev.Update))
	return ev
}
