package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// WaveType selects an oscillator shape
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// at returns the wave value for phase in [0,1)
func (w WaveType) at(phase float64) float64 {
	switch w {
	case WaveSine:
		return math.Sin(2 * math.Pi * phase)
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2*phase - 1
	default:
		return rand.Float64()*2 - 1
	}
}

type oscillator struct {
	wave  WaveType
	step  float64
	phase float64
	left  int
}

// NewOscillator streams a mono wave on both channels and ends after duration
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{wave: wave, step: freq / float64(rate), left: rate.N(duration)}
}

func (o *oscillator) Stream(samples [][2]float64) (int, bool) {
	n := min(len(samples), o.left)
	for i := range samples[:n] {
		v := o.wave.at(o.phase)
		samples[i] = [2]float64{v, v}
		o.phase += o.step
		o.phase -= math.Floor(o.phase)
	}
	o.left -= n
	return n, n > 0
}

func (o *oscillator) Err() error { return nil }

type envelope struct {
	src                     beep.Streamer
	pos, total              int
	attack, release, relPos int
}

// NewEnvelope ramps src up over attack and down over the last release of
// duration, then ends
func NewEnvelope(src beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total, att, rel := rate.N(duration), rate.N(attack), rate.N(release)
	return &envelope{
		src:     src,
		total:   total,
		attack:  att,
		release: rel,
		relPos:  max(total-rel, att),
	}
}

func (e *envelope) gain(p int) float64 {
	g := 1.0
	if p < e.attack {
		g = float64(p) / float64(e.attack)
	}
	if e.release > 0 && p >= e.relPos {
		g = max(float64(e.total-p)/float64(e.release), 0)
	}
	return g
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	if e.pos >= e.total {
		return 0, false
	}
	n, ok := e.src.Stream(samples[:min(len(samples), e.total-e.pos)])
	for i := range samples[:n] {
		g := e.gain(e.pos)
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.src.Err() }

// newVolume applies a linear gain; zero and below are silent
func newVolume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// voice is one shaped oscillator in an effect
type voice struct {
	freq    float64
	wave    WaveType
	dur     time.Duration
	attack  time.Duration
	release time.Duration
	gain    float64
}

func (v voice) streamer(rate beep.SampleRate) beep.Streamer {
	var src beep.Streamer
	if v.wave == WaveSine {
		if sine, err := generators.SineTone(rate, v.freq); err == nil {
			src = beep.Take(rate.N(v.dur), sine)
		}
	}
	if src == nil {
		src = NewOscillator(v.freq, v.dur, v.wave, rate)
	}
	return newVolume(NewEnvelope(src, v.dur, v.attack, v.release, rate), v.gain)
}

// Each effect is a sequence of steps; voices within a step are mixed
var effectSteps = [soundTypeCount][][]voice{
	SoundToggle: {{
		{freq: 1200, wave: WaveSine, dur: 45 * time.Millisecond, attack: 2 * time.Millisecond, release: 30 * time.Millisecond, gain: 0.7},
		{wave: WaveNoise, dur: 45 * time.Millisecond, attack: 2 * time.Millisecond, release: 30 * time.Millisecond, gain: 0.2},
	}},
	SoundColor: {
		{{freq: 659.25, wave: WaveSquare, dur: 60 * time.Millisecond, attack: 3 * time.Millisecond, release: 40 * time.Millisecond, gain: 1}},
		{{freq: 987.77, wave: WaveSquare, dur: 60 * time.Millisecond, attack: 3 * time.Millisecond, release: 40 * time.Millisecond, gain: 1}},
	},
	SoundPause: {{
		{freq: 110, wave: WaveSaw, dur: 120 * time.Millisecond, attack: 5 * time.Millisecond, release: 90 * time.Millisecond, gain: 1},
	}},
}

// GetSoundEffect builds a fresh streamer for st at the configured volume
// Unknown types return nil
func GetSoundEffect(st SoundType, cfg *Config) beep.Streamer {
	if st < 0 || st >= soundTypeCount {
		return nil
	}
	rate := beep.SampleRate(cfg.SampleRate)

	steps := make([]beep.Streamer, 0, len(effectSteps[st]))
	for _, voices := range effectSteps[st] {
		mixed := make([]beep.Streamer, len(voices))
		for i, v := range voices {
			mixed[i] = v.streamer(rate)
		}
		steps = append(steps, beep.Mix(mixed...))
	}
	return newVolume(beep.Seq(steps...), cfg.volume(st))
}
