package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// ToneGenerator generates a sine glide from one frequency to another over a fixed window
type ToneGenerator struct {
	sr       beep.SampleRate
	from, to float64
	pos      int
	span     int
	phase    float64
}

// NewToneGenerator creates a tone that glides from 'from' to 'to' Hz over 100ms
func NewToneGenerator(sr beep.SampleRate, from, to float64) *ToneGenerator {
	return &ToneGenerator{
		sr:   sr,
		from: from,
		to:   to,
		span: sr.N(time.Millisecond * 100),
	}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		p := math.Min(float64(g.pos)/float64(g.span), 1)
		freq := g.from + (g.to-g.from)*p

		// Phase accumulation keeps the glide click-free
		g.phase += 2 * math.Pi * freq / float64(g.sr)
		if g.phase > 2*math.Pi {
			g.phase -= 2 * math.Pi
		}

		// Short attack, linear release
		attack := math.Min(float64(g.pos)/float64(g.sr)/0.005, 1)
		release := 1 - 0.7*p
		sample := 0.2 * attack * release * math.Sin(g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}

// BuzzGenerator generates a low-pitch buzz sound
type BuzzGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewBuzzGenerator creates a buzz sound generator
func NewBuzzGenerator(sr beep.SampleRate, freq float64) *BuzzGenerator {
	return &BuzzGenerator{
		sr:   sr,
		freq: freq,
	}
}

func (g *BuzzGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Stacked harmonics for a harsh buzz
		sample := 0.0
		sample += 0.3 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.15 * math.Sin(2*math.Pi*g.freq*2*t)
		sample += 0.075 * math.Sin(2*math.Pi*g.freq*3*t)

		// Fade in over 20ms
		envelope := math.Min(t/0.02, 1.0)
		sample *= envelope * 0.2

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BuzzGenerator) Err() error {
	return nil
}
