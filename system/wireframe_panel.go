package system

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/cellscene/audio"
	"github.com/lixenwraith/cellscene/component"
	"github.com/lixenwraith/cellscene/engine"
	"github.com/lixenwraith/cellscene/input"
	"github.com/lixenwraith/cellscene/render"
)

// WireframePanelSystem toggles wireframe settings from Z, X and C and shows
// the current settings on the panel label
type WireframePanelSystem struct {
	engine.SystemBase
	keyboard *input.Keyboard
	config   *render.WireframeConfig
	player   audio.Player
}

// NewWireframePanelSystem creates the panel; player may be nil
func NewWireframePanelSystem(world *engine.World, player audio.Player) *WireframePanelSystem {
	return &WireframePanelSystem{
		SystemBase: engine.NewSystemBase(world),
		keyboard:   engine.MustGetResource[*input.Keyboard](world.Resources),
		config:     engine.MustGetResource[*render.WireframeConfig](world.Resources),
		player:     player,
	}
}

func (s *WireframePanelSystem) Name() string {
	return "update_colors"
}

func (s *WireframePanelSystem) Update() {
	// Label shows the state at the start of the frame
	status := PanelText(s.config)
	labels := s.Entities(s.Component.Text, s.Component.WireframeButton)
	for _, e := range labels {
		s.Component.Text.Update(e, func(t *component.TextComponent) {
			t.Value = status
		})
	}

	if s.keyboard.JustPressed(input.KeyZ) {
		s.config.Global = !s.config.Global
		s.play(audio.SoundToggle)
	}

	if s.keyboard.JustPressed(input.KeyX) {
		if s.config.DefaultColor == component.White {
			s.config.DefaultColor = component.Pink
		} else {
			s.config.DefaultColor = component.White
		}
		s.play(audio.SoundColor)
	}

	if s.keyboard.JustPressed(input.KeyC) {
		for _, e := range s.Component.WireframeColor.All() {
			s.Component.WireframeColor.Update(e, func(wc *component.WireframeColorComponent) {
				if wc.Color == component.Green {
					wc.Color = component.Red
				} else {
					wc.Color = component.Green
				}
			})
		}
		s.play(audio.SoundColor)
	}
}

func (s *WireframePanelSystem) play(st audio.SoundType) {
	if s.player != nil {
		s.player.Play(st)
	}
}

// PanelText renders the control help and current wireframe settings
func PanelText(cfg *render.WireframeConfig) string {
	return fmt.Sprintf(`Controls
---------------
Z - Toggle global
X - Change global color
C - Change color of the green cube wireframe

WireframeConfig
-------------
Global: %t
Color: %s`, cfg.Global, colorName(cfg.DefaultColor))
}

func colorName(c colorful.Color) string {
	switch c {
	case component.White:
		return "white " + c.Hex()
	case component.Pink:
		return "deep pink " + c.Hex()
	}
	return c.Hex()
}

// WireframePanelPlugin adds the key-driven wireframe settings panel
type WireframePanelPlugin struct {
	Player audio.Player
}

func (p WireframePanelPlugin) Build(app *engine.App) {
	render.WireframePlugin{}.Build(app)
	app.AddSystems(engine.Update, NewWireframePanelSystem(app.World, p.Player))
}
