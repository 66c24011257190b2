package system

import (
	"github.com/lixenwraith/cellscene/audio"
	"github.com/lixenwraith/cellscene/engine"
	"github.com/lixenwraith/cellscene/input"
)

// PauseSystem toggles the game clock on P
type PauseSystem struct {
	engine.SystemBase
	keyboard *input.Keyboard
	player   audio.Player
}

// NewPauseSystem creates the pause toggle; player may be nil
func NewPauseSystem(world *engine.World, player audio.Player) *PauseSystem {
	return &PauseSystem{
		SystemBase: engine.NewSystemBase(world),
		keyboard:   engine.MustGetResource[*input.Keyboard](world.Resources),
		player:     player,
	}
}

func (s *PauseSystem) Name() string {
	return "pause"
}

func (s *PauseSystem) Update() {
	if !s.keyboard.JustPressed(input.KeyP) {
		return
	}
	s.Resource.Clock.Clock.Toggle()
	if s.player != nil {
		s.player.Play(audio.SoundPause)
	}
}

// MuteSystem toggles sound effects on M
type MuteSystem struct {
	engine.SystemBase
	keyboard *input.Keyboard
	player   audio.Player
}

// NewMuteSystem creates the mute toggle; a nil player leaves M unbound
func NewMuteSystem(world *engine.World, player audio.Player) *MuteSystem {
	return &MuteSystem{
		SystemBase: engine.NewSystemBase(world),
		keyboard:   engine.MustGetResource[*input.Keyboard](world.Resources),
		player:     player,
	}
}

func (s *MuteSystem) Name() string {
	return "mute"
}

func (s *MuteSystem) Update() {
	if s.player == nil || !s.keyboard.JustPressed(input.KeyM) {
		return
	}
	s.player.ToggleMute()
}

// ExitSystem requests shutdown on Escape or Ctrl-C
type ExitSystem struct {
	engine.SystemBase
	keyboard *input.Keyboard
}

// NewExitSystem creates the exit handler
func NewExitSystem(world *engine.World) *ExitSystem {
	return &ExitSystem{
		SystemBase: engine.NewSystemBase(world),
		keyboard:   engine.MustGetResource[*input.Keyboard](world.Resources),
	}
}

func (s *ExitSystem) Name() string {
	return "exit_on_escape"
}

func (s *ExitSystem) Update() {
	if s.keyboard.AnyJustPressed(input.KeyEscape, input.KeyCtrlC) {
		s.Resource.Exit.Request()
	}
}

// ControlPlugin adds pause, mute and exit key handling
type ControlPlugin struct {
	Player audio.Player
}

func (p ControlPlugin) Build(app *engine.App) {
	app.AddSystems(engine.PreUpdate,
		NewExitSystem(app.World),
		NewPauseSystem(app.World, p.Player),
		NewMuteSystem(app.World, p.Player),
	)
}
