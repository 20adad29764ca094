package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Beeper plays short feedback tones for scoring.
type Beeper struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

func NewBeeper(volume float64) *Beeper {
	return &Beeper{mixer: &beep.Mixer{}, volume: volume}
}

// Init opens the speaker. Without it every Play is silent.
func (b *Beeper) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(b.mixer)
	b.initialized = true
	return nil
}

func (b *Beeper) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return
	}
	speaker.Clear()
	b.initialized = false
}

// Credits plays a rising two-note chirp.
func (b *Beeper) Credits() {
	b.play(beep.Seq(
		NewTone(880, 60*time.Millisecond, WaveSine, sampleRate),
		NewTone(1320, 90*time.Millisecond, WaveSine, sampleRate),
	))
}

// Damage plays a low buzz.
func (b *Beeper) Damage() {
	b.play(NewTone(140, 180*time.Millisecond, WaveSquare, sampleRate))
}

func (b *Beeper) play(s beep.Streamer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return
	}
	speaker.Lock()
	b.mixer.Add(&effects.Gain{Streamer: s, Gain: b.volume - 1})
	speaker.Unlock()
}

// Nop is a silent beeper.
type Nop struct{}

func (Nop) Credits() {}
func (Nop) Damage()  {}
