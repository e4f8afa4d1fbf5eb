package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/walkbox/config"
	"github.com/lixenwraith/walkbox/observability"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// Feedback plays short cues for navigation events
// Every method is safe to call before Init, after Close, or with audio disabled
type Feedback struct {
	mu          sync.Mutex
	enabled     bool
	volume      float64
	mixer       *beep.Mixer
	initialized bool
	speaker     bool // mixer is attached to the speaker
}

// NewFeedback creates a feedback player from the audio config
func NewFeedback(cfg config.AudioConfig) *Feedback {
	return &Feedback{
		enabled: cfg.Enabled,
		volume:  cfg.Volume,
		mixer:   &beep.Mixer{},
	}
}

// Init opens the speaker; a missing audio device disables playback and is returned as error
func (f *Feedback) Init() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.initialized || !f.enabled {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		f.enabled = false
		observability.GetLogger().Warn("Audio unavailable, continuing silent", zap.Error(err))
		return err
	}

	speaker.Play(f.mixer)
	f.initialized = true
	f.speaker = true
	return nil
}

// Close stops all cues
func (f *Feedback) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.initialized {
		return
	}
	f.withSpeaker(f.mixer.Clear)
	if f.speaker {
		speaker.Clear()
	}
	f.initialized = false
}

// PlayCommit plays a rising tone when a path is committed
func (f *Feedback) PlayCommit() {
	f.play(beep.Take(sampleRate.N(time.Millisecond*120), NewToneGenerator(sampleRate, 660, 880)))
}

// PlayBlocked plays a low buzz when the pointer is unreachable
func (f *Feedback) PlayBlocked() {
	f.play(beep.Take(sampleRate.N(time.Millisecond*150), NewBuzzGenerator(sampleRate, 120)))
}

// PlayArrive plays a soft falling tone when the walker reaches its destination
func (f *Feedback) PlayArrive() {
	f.play(beep.Take(sampleRate.N(time.Millisecond*200), NewToneGenerator(sampleRate, 520, 390)))
}

// Active reports the number of cues currently mixed
func (f *Feedback) Active() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	f.withSpeaker(func() { n = f.mixer.Len() })
	return n
}

func (f *Feedback) play(s beep.Streamer) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.initialized || !f.enabled {
		return
	}
	gain := &effects.Gain{Streamer: s, Gain: f.volume - 1}
	f.withSpeaker(func() { f.mixer.Add(gain) })
}

// withSpeaker guards mixer access against the speaker goroutine
func (f *Feedback) withSpeaker(fn func()) {
	if f.speaker {
		speaker.Lock()
		defer speaker.Unlock()
	}
	fn()
}
