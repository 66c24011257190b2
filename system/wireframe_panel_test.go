package system

import (
	"strings"
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/cellscene/audio"
	"github.com/lixenwraith/cellscene/component"
	"github.com/lixenwraith/cellscene/core"
	"github.com/lixenwraith/cellscene/engine"
	"github.com/lixenwraith/cellscene/input"
	"github.com/lixenwraith/cellscene/render"
)

// countingPlayer records played sounds
type countingPlayer struct {
	played []audio.SoundType
	muted  bool
}

func (p *countingPlayer) Play(st audio.SoundType) bool {
	p.played = append(p.played, st)
	return true
}
func (p *countingPlayer) IsMuted() bool { return p.muted }
func (p *countingPlayer) ToggleMute() bool {
	p.muted = !p.muted
	return !p.muted
}
func (p *countingPlayer) Close() {}

type panelFixture struct {
	*testApp
	config *render.WireframeConfig
	player *countingPlayer
	label  core.Entity
	cube   core.Entity
}

func newPanelFixture(t *testing.T) *panelFixture {
	t.Helper()
	ta := newTestApp(t)
	cfg := &render.WireframeConfig{Global: true, DefaultColor: component.White}
	engine.InsertResource(ta.app, cfg)
	player := &countingPlayer{}
	ta.app.AddPlugins(WireframePanelPlugin{Player: player})

	f := &panelFixture{testApp: ta, config: cfg, player: player}
	f.label = ta.app.World.CreateEntity()
	ta.cs.Text.Set(f.label, component.TextComponent{})
	ta.cs.WireframeButton.Set(f.label, component.WireframeButtonComponent{})

	f.cube = ta.app.World.CreateEntity()
	ta.cs.WireframeColor.Set(f.cube, component.WireframeColorComponent{Color: component.Green})
	ta.start(t)
	return f
}

// tap presses k for exactly one frame
func (f *panelFixture) tap(k input.Key) {
	f.keyboard.Press(k)
	f.step(16 * time.Millisecond)
	f.keyboard.Release(k)
}

func (f *panelFixture) labelText() string {
	txt, _ := f.cs.Text.Get(f.label)
	return txt.Value
}

func TestWireframePanel_ToggleGlobalTwice(t *testing.T) {
	f := newPanelFixture(t)

	f.tap(input.KeyZ)
	if f.config.Global {
		t.Fatal("Expected Global off after first Z")
	}
	f.tap(input.KeyZ)
	if !f.config.Global {
		t.Error("Expected Global restored after second Z")
	}
	if len(f.player.played) != 2 || f.player.played[0] != audio.SoundToggle {
		t.Errorf("Expected two toggle sounds, got %v", f.player.played)
	}
}

func TestWireframePanel_HeldKeyTogglesOnce(t *testing.T) {
	f := newPanelFixture(t)

	f.keyboard.Press(input.KeyZ)
	f.step(16 * time.Millisecond)
	f.keyboard.Press(input.KeyZ) // Autorepeat
	f.step(16 * time.Millisecond)

	if f.config.Global {
		t.Error("Expected a held key to toggle exactly once")
	}
}

func TestWireframePanel_TextShowsStateBeforeToggle(t *testing.T) {
	f := newPanelFixture(t)

	if !strings.Contains(f.labelText(), "Global: true") {
		t.Fatalf("Expected initial state in label, got %q", f.labelText())
	}

	f.tap(input.KeyZ)
	if f.config.Global || !strings.Contains(f.labelText(), "Global: true") {
		t.Errorf("Expected label written before the toggle, got %q", f.labelText())
	}

	f.step(16 * time.Millisecond)
	if !strings.Contains(f.labelText(), "Global: false") {
		t.Errorf("Expected label to catch up next frame, got %q", f.labelText())
	}
}

func TestWireframePanel_DefaultColor(t *testing.T) {
	f := newPanelFixture(t)

	f.tap(input.KeyX)
	if f.config.DefaultColor != component.Pink {
		t.Fatalf("Expected pink, got %v", f.config.DefaultColor.Hex())
	}
	f.tap(input.KeyX)
	if f.config.DefaultColor != component.White {
		t.Errorf("Expected white, got %v", f.config.DefaultColor.Hex())
	}

	// Any non-white color goes back to white
	f.config.DefaultColor = colorful.Color{R: 0.3}
	f.tap(input.KeyX)
	if f.config.DefaultColor != component.White {
		t.Errorf("Expected white from custom color, got %v", f.config.DefaultColor.Hex())
	}
}

func TestWireframePanel_EntityColors(t *testing.T) {
	f := newPanelFixture(t)
	other := f.app.World.CreateEntity()
	f.cs.WireframeColor.Set(other, component.WireframeColorComponent{Color: colorful.Color{B: 1}})

	f.tap(input.KeyC)
	if wc, _ := f.cs.WireframeColor.Get(f.cube); wc.Color != component.Red {
		t.Errorf("Expected cube red, got %v", wc.Color.Hex())
	}
	if wc, _ := f.cs.WireframeColor.Get(other); wc.Color != component.Green {
		t.Errorf("Expected non-green to become green, got %v", wc.Color.Hex())
	}

	f.tap(input.KeyC)
	if wc, _ := f.cs.WireframeColor.Get(f.cube); wc.Color != component.Green {
		t.Errorf("Expected cube green again, got %v", wc.Color.Hex())
	}
}

func TestPanelText(t *testing.T) {
	text := PanelText(&render.WireframeConfig{Global: false, DefaultColor: component.Pink})
	for _, want := range []string{
		"Z - Toggle global",
		"X - Change global color",
		"C - Change color of the green cube wireframe",
		"WireframeConfig",
		"Global: false",
		"Color: deep pink #ff1494",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in panel text:\n%s", want, text)
		}
	}
}

func TestControl_PauseAndExit(t *testing.T) {
	ta := newTestApp(t)
	player := &countingPlayer{}
	ta.app.AddPlugins(ControlPlugin{Player: player})
	ta.start(t)

	ta.keyboard.Press(input.KeyP)
	ta.step(time.Millisecond)
	if !ta.app.Clock.IsPaused() {
		t.Fatal("Expected P to pause the clock")
	}
	ta.keyboard.Release(input.KeyP)
	ta.keyboard.Press(input.KeyP)
	ta.step(time.Millisecond)
	if ta.app.Clock.IsPaused() {
		t.Error("Expected second P to resume")
	}
	if len(player.played) != 2 {
		t.Errorf("Expected two pause sounds, got %v", player.played)
	}

	exit := engine.MustGetResource[*engine.ExitResource](ta.app.World.Resources)
	if exit.Requested() {
		t.Fatal("Expected no exit yet")
	}
	ta.keyboard.Press(input.KeyCtrlC)
	ta.step(time.Millisecond)
	if !exit.Requested() {
		t.Error("Expected Ctrl-C to request exit")
	}
}

func TestControl_MuteKey(t *testing.T) {
	ta := newTestApp(t)
	player := &countingPlayer{}
	ta.app.AddPlugins(ControlPlugin{Player: player})
	ta.start(t)

	ta.keyboard.Press(input.KeyM)
	ta.step(time.Millisecond)
	if !player.IsMuted() {
		t.Fatal("Expected M to mute")
	}

	// Held M does not toggle again
	ta.step(time.Millisecond)
	if !player.IsMuted() {
		t.Fatal("Expected mute to stay while M is held")
	}

	ta.keyboard.Release(input.KeyM)
	ta.keyboard.Press(input.KeyM)
	ta.step(time.Millisecond)
	if player.IsMuted() {
		t.Error("Expected second M to unmute")
	}
}
