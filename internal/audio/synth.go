package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType selects an oscillator shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Note frequencies (Hz).
const (
	noteA2 = 110.00
	noteC3 = 130.81
	noteD3 = 146.83
	noteE3 = 164.81
	noteG3 = 196.00
	noteA4 = 440.00
	noteE4 = 329.63
	noteA3 = 220.00
	noteC5 = 523.25
	noteE5 = 659.25
	noteG5 = 783.99
	noteB5 = 987.77
	noteC6 = 1046.50
	noteE6 = 1318.51
)

// sweep is an oscillator whose pitch glides linearly from one frequency to
// another over its duration. A plain tone has from == to.
type sweep struct {
	from, to float64
	phase    float64
	length   int
	pos      int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewTone returns a fixed-pitch oscillator.
func NewTone(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, d, wave, rate)
}

// NewSweep returns an oscillator gliding from one pitch to another.
func NewSweep(from, to float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &sweep{
		from:   from,
		to:     to,
		length: rate.N(d),
		wave:   wave,
		rate:   rate,
		rng:    rand.New(rand.NewSource(int64(from*1000) + int64(d))),
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.length {
			return i, i > 0
		}

		var v float64
		switch s.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * s.phase)
		case WaveSquare:
			v = 1
			if s.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (s.phase - 0.5)
		case WaveNoise:
			v = s.rng.Float64()*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		freq := s.from + (s.to-s.from)*float64(s.pos)/float64(s.length)
		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// envelope fades a stream in over attack and out over release.
type envelope struct {
	streamer beep.Streamer
	pos      int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s, which is expected to last d.
func NewEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.pos >= e.total {
			return i, i > 0
		}
		gain := 1.0
		if e.attack > 0 && e.pos < e.attack {
			gain = float64(e.pos) / float64(e.attack)
		}
		if left := e.total - e.pos; e.release > 0 && left < e.release {
			gain = math.Min(gain, float64(left)/float64(e.release))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume scales a stream linearly; zero or less is silence.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func note(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewTone(freq, d, wave, rate), d, 5*time.Millisecond, d/2, rate)
}

// Synthesize builds a fresh streamer for cue at the given volume. Unknown
// cues return nil.
func Synthesize(cue Cue, rate beep.SampleRate, vol float64) beep.Streamer {
	var s beep.Streamer
	switch cue {
	case CueJump:
		d := 120 * time.Millisecond
		s = NewEnvelope(NewSweep(300, 620, d, WaveSquare, rate), d, 5*time.Millisecond, 60*time.Millisecond, rate)
	case CueCoin:
		s = beep.Seq(
			note(noteB5, 60*time.Millisecond, WaveSquare, rate),
			note(noteE6, 180*time.Millisecond, WaveSquare, rate),
		)
	case CueStomp:
		d := 110 * time.Millisecond
		s = beep.Mix(
			withVolume(NewEnvelope(NewSweep(180, 60, d, WaveSine, rate), d, 0, d, rate), 0.8),
			withVolume(NewEnvelope(NewTone(0, d/2, WaveNoise, rate), d/2, 0, d/2, rate), 0.3),
		)
	case CuePowerUp:
		step := 70 * time.Millisecond
		s = beep.Seq(
			note(noteC5, step, WaveSquare, rate),
			note(noteE5, step, WaveSquare, rate),
			note(noteG5, step, WaveSquare, rate),
			note(noteC6, 2*step, WaveSquare, rate),
		)
	case CueCaught:
		step := 160 * time.Millisecond
		s = beep.Seq(
			note(noteA4, step, WaveSaw, rate),
			note(noteE4, step, WaveSaw, rate),
			note(noteA3, 2*step, WaveSaw, rate),
		)
	case CueWin:
		step := 110 * time.Millisecond
		s = beep.Seq(
			note(noteC5, step, WaveSquare, rate),
			note(noteE5, step, WaveSquare, rate),
			note(noteG5, step, WaveSquare, rate),
			note(noteC6, 4*step, WaveSquare, rate),
		)
	default:
		return nil
	}
	return withVolume(s, vol)
}

// bassLine is an endless chase riff at 140 BPM, eighth notes.
type bassLine struct {
	rate  beep.SampleRate
	notes []float64
	step  int
	pos   int
	phase float64
}

var themeNotes = []float64{
	noteA2, noteA2, noteC3, noteA2, noteD3, noteA2, noteE3, noteD3,
	noteA2, noteA2, noteC3, noteA2, noteG3, noteE3, noteD3, noteC3,
}

// NewTheme returns the endless background track.
func NewTheme(rate beep.SampleRate) beep.Streamer {
	return &bassLine{
		rate:  rate,
		notes: themeNotes,
		step:  rate.N(60 * time.Second / 140 / 2),
	}
}

func (b *bassLine) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		idx := (b.pos / b.step) % len(b.notes)
		within := b.pos % b.step
		gain := 1 - float64(within)/float64(b.step)

		v := 0.25 * gain * (2 * (b.phase - 0.5))
		samples[i][0] = v
		samples[i][1] = v

		b.phase += b.notes[idx] / float64(b.rate)
		b.phase -= math.Floor(b.phase)
		b.pos++
	}
	return len(samples), true
}

func (b *bassLine) Err() error { return nil }
