package input

import (
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/cellscene/engine"
)

// MouseMotion is the pointer movement since the previous motion event, in pixels
type MouseMotion struct {
	Delta mgl32.Vec2
}

// Config holds the input tuning knobs
type Config struct {
	InitialHoldMs int     // Release timeout after a first press, in milliseconds
	HoldTimeoutMs int     // Release timeout once autorepeat started, in milliseconds
	CellWidthPx   float32 // Pixel width of one terminal cell
	CellHeightPx  float32 // Pixel height of one terminal cell
	ArrowStepPx   float32 // Look motion emitted per arrow key press
}

// DefaultConfig returns the tuning used when no config file is given
func DefaultConfig() Config {
	return Config{
		InitialHoldMs: int(DefaultInitialHold.Milliseconds()),
		HoldTimeoutMs: int(DefaultHoldTimeout.Milliseconds()),
		CellWidthPx:   8,
		CellHeightPx:  16,
		ArrowStepPx:   40,
	}
}

// Translator converts tcell events into keyboard state and MouseMotion events
type Translator struct {
	keyboard *Keyboard
	motion   *engine.Events[MouseMotion]
	window   *engine.WindowResource
	clock    *engine.PausableClock
	cfg      Config
	logger   *slog.Logger

	lastX, lastY int
	hasLast      bool
}

// NewTranslator creates a translator writing into the given resources
// Hold timing uses clock real time so pausing does not hold keys down
func NewTranslator(kb *Keyboard, motion *engine.Events[MouseMotion], window *engine.WindowResource, clock *engine.PausableClock, cfg Config) *Translator {
	return &Translator{
		keyboard: kb,
		motion:   motion,
		window:   window,
		clock:    clock,
		cfg:      cfg,
		logger:   slog.Default(),
	}
}

// Handle processes one event; unknown event types are ignored
func (t *Translator) Handle(ev any) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		t.handleKey(ev)

	case *tcell.EventMouse:
		x, y := ev.Position()
		if t.hasLast && (x != t.lastX || y != t.lastY) {
			t.motion.Send(MouseMotion{Delta: mgl32.Vec2{
				float32(x-t.lastX) * t.cfg.CellWidthPx,
				float32(y-t.lastY) * t.cfg.CellHeightPx,
			}})
		}
		t.lastX, t.lastY, t.hasLast = x, y, true

	case *tcell.EventResize:
		w, h := ev.Size()
		t.window.Width, t.window.Height = w, h
		t.logger.Debug("Terminal resized", "width", w, "height", h)

	case *tcell.EventFocus:
		if !ev.Focused {
			t.keyboard.ReleaseAll()
			t.hasLast = false
		}
	}
}

func (t *Translator) handleKey(ev *tcell.EventKey) {
	now := t.clock.RealTime()
	step := t.cfg.ArrowStepPx

	switch ev.Key() {
	case tcell.KeyRune:
		t.keyboard.Tap(RuneKey(ev.Rune()), now)
	case tcell.KeyEscape:
		t.keyboard.Tap(KeyEscape, now)
	case tcell.KeyCtrlC:
		t.keyboard.Tap(KeyCtrlC, now)
	case tcell.KeyUp:
		t.keyboard.Tap(KeyUp, now)
		t.motion.Send(MouseMotion{Delta: mgl32.Vec2{0, -step}})
	case tcell.KeyDown:
		t.keyboard.Tap(KeyDown, now)
		t.motion.Send(MouseMotion{Delta: mgl32.Vec2{0, step}})
	case tcell.KeyLeft:
		t.keyboard.Tap(KeyLeft, now)
		t.motion.Send(MouseMotion{Delta: mgl32.Vec2{-step, 0}})
	case tcell.KeyRight:
		t.keyboard.Tap(KeyRight, now)
		t.motion.Send(MouseMotion{Delta: mgl32.Vec2{step, 0}})
	}
}

type closeSignal struct{}

// ScreenSource adapts a tcell screen to the App event source
type ScreenSource struct {
	screen tcell.Screen
}

// NewScreenSource wraps an initialized screen
func NewScreenSource(s tcell.Screen) *ScreenSource {
	return &ScreenSource{screen: s}
}

// NextEvent blocks on the screen; returns nil once Close was called or the screen finalized
func (s *ScreenSource) NextEvent() any {
	ev := s.screen.PollEvent()
	if ev == nil {
		return nil
	}
	if intr, ok := ev.(*tcell.EventInterrupt); ok {
		if _, closing := intr.Data().(closeSignal); closing {
			return nil
		}
	}
	return ev
}

// Close wakes a pending NextEvent
func (s *ScreenSource) Close() {
	_ = s.screen.PostEvent(tcell.NewEventInterrupt(closeSignal{}))
}
