// Package sound synthesizes the short tones used as game sound cues.
package sound

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate is shared by the synthesizer and the ebiten audio context.
const SampleRate = beep.SampleRate(44100)

type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
)

// Voice describes how a named cue is synthesized.
type Voice struct {
	Wave    WaveType
	Attack  time.Duration
	Release time.Duration
	Volume  float64
	// Sweep multiplies the frequency linearly over the tone, 1 for none.
	Sweep float64
}

// Voices maps cue names to voices. Unknown names use DefaultVoice.
var Voices = map[string]Voice{
	"chainAttack":  {Wave: WaveSquare, Attack: 10 * time.Millisecond, Release: 200 * time.Millisecond, Volume: 0.35, Sweep: 1.5},
	"enemyDestroy": {Wave: WaveSaw, Attack: 20 * time.Millisecond, Release: 600 * time.Millisecond, Volume: 0.4, Sweep: 0.5},
}

var DefaultVoice = Voice{Wave: WaveSine, Attack: 5 * time.Millisecond, Release: 50 * time.Millisecond, Volume: 0.3, Sweep: 1}

type oscillator struct {
	freq     float64
	sweep    float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

func newOscillator(freq, sweep float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	if sweep <= 0 {
		sweep = 1
	}
	return &oscillator{freq: freq, sweep: sweep, duration: rate.N(duration), wave: wave, rate: rate}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		}
		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.duration)
		freq := o.freq * (1 + (o.sweep-1)*t)
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{streamer: s, attack: rate.N(attack), release: rate.N(release), total: rate.N(duration)}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	releaseStart := e.total - e.release
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if e.release > 0 && e.position >= releaseStart {
			vol = math.Max(0, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Tone returns the streamer for a named cue.
func Tone(name string, freq float64, duration time.Duration) beep.Streamer {
	v, ok := Voices[name]
	if !ok {
		v = DefaultVoice
	}
	osc := newOscillator(freq, v.Sweep, duration, v.Wave, SampleRate)
	return withVolume(newEnvelope(osc, duration, v.Attack, v.Release, SampleRate), v.Volume)
}

// Render drains s into signed 16-bit little-endian stereo PCM.
func Render(s beep.Streamer) []byte {
	var (
		out []byte
		buf = make([][2]float64, 512)
	)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			for ch := 0; ch < 2; ch++ {
				v := math.Max(-1, math.Min(1, buf[i][ch]))
				out = binary.LittleEndian.AppendUint16(out, uint16(int16(v*math.MaxInt16)))
			}
		}
		if !ok || n == 0 {
			return out
		}
	}
}
