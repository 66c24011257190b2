package audio

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"
)

// SoundManager plays effects through the beep speaker and a shared mixer
type SoundManager struct {
	mu     sync.Mutex
	config *Config
	mixer  *beep.Mixer

	initialized atomic.Bool
	muted       atomic.Bool
	played      atomic.Uint64
}

// NewSoundManager creates a manager; nothing is audible until Initialize
func NewSoundManager(cfg *Config) *SoundManager {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	sm := &SoundManager{
		config: cfg,
		mixer:  &beep.Mixer{},
	}
	sm.muted.Store(!cfg.Enabled)
	return sm
}

// Initialize opens the speaker and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized.Load() {
		return nil
	}

	rate := beep.SampleRate(sm.config.SampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return errors.Wrap(err, "init speaker")
	}

	speaker.Play(sm.mixer)
	sm.initialized.Store(true)
	return nil
}

// Play queues a new instance of the effect on the mixer
func (sm *SoundManager) Play(st SoundType) bool {
	if !sm.initialized.Load() || sm.muted.Load() {
		return false
	}

	sm.mu.Lock()
	streamer := GetSoundEffect(st, sm.config)
	sm.mu.Unlock()
	if streamer == nil {
		return false
	}

	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
	sm.played.Add(1)
	return true
}

// IsMuted returns current mute state
func (sm *SoundManager) IsMuted() bool {
	return sm.muted.Load()
}

// ToggleMute flips mute, returns true if sound is now audible
func (sm *SoundManager) ToggleMute() bool {
	newMute := !sm.muted.Load()
	sm.muted.Store(newMute)
	return !newMute
}

// Played returns the number of effects queued since start
func (sm *SoundManager) Played() uint64 {
	return sm.played.Load()
}

// Close stops all sounds and releases the speaker
func (sm *SoundManager) Close() {
	if !sm.initialized.CompareAndSwap(true, false) {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}

// silentPlayer drops every sound
type silentPlayer struct{}

func (silentPlayer) Play(SoundType) bool { return false }
func (silentPlayer) IsMuted() bool       { return true }
func (silentPlayer) ToggleMute() bool    { return false }
func (silentPlayer) Close()              {}

// Silent returns a Player that never makes a sound
func Silent() Player {
	return silentPlayer{}
}

// Open starts speaker output, falling back to a silent player when audio is
// disabled or no output device is available
func Open(cfg *Config, logger *slog.Logger) Player {
	if cfg == nil || !cfg.Enabled {
		return Silent()
	}
	sm := NewSoundManager(cfg)
	if err := sm.Initialize(); err != nil {
		if logger != nil {
			logger.Warn("Audio unavailable, running silent", "error", err)
		}
		return Silent()
	}
	return sm
}
