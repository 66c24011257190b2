package audio

// Config controls audio output
type Config struct {
	Enabled bool
	// SampleRate of the speaker in Hz
	SampleRate int
	// MasterVolume scales every effect, 0.0-1.0
	MasterVolume float64
	// EffectVolumes scales individual effects, 0.0-1.0
	EffectVolumes [soundTypeCount]float64
}

// DefaultConfig enables audio at half volume
func DefaultConfig() *Config {
	return &Config{
		Enabled:       true,
		SampleRate:    44100,
		MasterVolume:  0.5,
		EffectVolumes: [soundTypeCount]float64{0.8, 0.6, 0.5},
	}
}

// volume returns the effective linear volume of s
func (c *Config) volume(s SoundType) float64 {
	if s < 0 || s >= soundTypeCount {
		return 0
	}
	return clamp01(c.EffectVolumes[s] * c.MasterVolume)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
