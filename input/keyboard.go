package input

import (
	"fmt"
	"time"
	"unicode"
)

// Key identifies a keyboard key
// Printable keys are their lowercase rune; special keys are negative
type Key rune

const (
	KeyW Key = 'w'
	KeyA Key = 'a'
	KeyS Key = 's'
	KeyD Key = 'd'
	KeyZ Key = 'z'
	KeyX Key = 'x'
	KeyC Key = 'c'
	KeyP Key = 'p'
	KeyM Key = 'm'
	KeyQ Key = 'q'

	KeyEscape Key = -1 - iota
	KeyCtrlC
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// RuneKey maps a typed rune to its key, folding case
func RuneKey(r rune) Key {
	return Key(unicode.ToLower(r))
}

func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "Escape"
	case KeyCtrlC:
		return "Ctrl-C"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	}
	if k > 0 {
		return string(unicode.ToUpper(rune(k)))
	}
	return fmt.Sprintf("Key(%d)", int32(k))
}

// DefaultInitialHold outlasts the first autorepeat delay of common desktops
// (X11 660ms, GNOME and Windows 500ms)
const DefaultInitialHold = 700 * time.Millisecond

// DefaultHoldTimeout outlasts the gap between autorepeats once they have started
const DefaultHoldTimeout = 350 * time.Millisecond

type keyHold struct {
	seen     time.Time
	repeated bool
}

// Keyboard is the key state resource
// Terminals report presses and autorepeats but never releases, so a key counts
// as held until it goes quiet: InitialHold after the first press, HoldTimeout
// once repeats arrive. A second tap inside the window is indistinguishable from
// autorepeat and extends the hold without a new press edge
// Main-loop exclusive: events and systems both run on the frame goroutine
type Keyboard struct {
	*ButtonInput[Key]

	InitialHold time.Duration
	HoldTimeout time.Duration
	held        map[Key]keyHold
}

// NewKeyboard creates an empty keyboard; non-positive windows take the defaults
func NewKeyboard(initialHold, holdTimeout time.Duration) *Keyboard {
	if initialHold <= 0 {
		initialHold = DefaultInitialHold
	}
	if holdTimeout <= 0 {
		holdTimeout = DefaultHoldTimeout
	}
	return &Keyboard{
		ButtonInput: NewButtonInput[Key](),
		InitialHold: initialHold,
		HoldTimeout: holdTimeout,
		held:        make(map[Key]keyHold),
	}
}

// Tap records a press or autorepeat of k at now
func (kb *Keyboard) Tap(k Key, now time.Time) {
	_, repeat := kb.held[k]
	kb.Press(k)
	kb.held[k] = keyHold{seen: now, repeated: repeat}
}

// Expire releases keys that have gone quiet for their hold window
func (kb *Keyboard) Expire(now time.Time) {
	for k, h := range kb.held {
		window := kb.InitialHold
		if h.repeated {
			window = kb.HoldTimeout
		}
		if now.Sub(h.seen) >= window {
			kb.Release(k)
			delete(kb.held, k)
		}
	}
}

// ReleaseAll releases every held key, used when the terminal loses focus
func (kb *Keyboard) ReleaseAll() {
	kb.ButtonInput.ReleaseAll()
	clear(kb.held)
}

// EndFrame clears this frame's edges
func (kb *Keyboard) EndFrame() {
	kb.Clear()
}
