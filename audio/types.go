package audio

// SoundType identifies a synthesized sound effect
type SoundType int

const (
	SoundToggle SoundType = iota // Global wireframe flag flipped
	SoundColor                   // Wireframe color swapped
	SoundPause                   // Clock paused or resumed
	soundTypeCount
)

var soundNames = [soundTypeCount]string{"toggle", "color", "pause"}

func (s SoundType) String() string {
	if s < 0 || s >= soundTypeCount {
		return "unknown"
	}
	return soundNames[s]
}

// Player plays short sound effects
// Play returns false when the sound was dropped (muted, silent or stopped)
type Player interface {
	Play(s SoundType) bool
	IsMuted() bool
	ToggleMute() bool
	Close()
}
