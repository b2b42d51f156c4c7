package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// chime plays short tones on generation events. A zero chime is silent.
type chime struct {
	enabled bool
}

// newChime opens the speaker. Audio failures leave the chime silent.
func newChime() (*chime, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return &chime{}, err
	}
	return &chime{enabled: true}, nil
}

// generation plays a single soft tone.
func (c *chime) generation() {
	c.play(660)
}

// newBest plays a rising pair of tones.
func (c *chime) newBest() {
	c.play(660, 990)
}

func (c *chime) play(freqs ...float64) {
	if c == nil || !c.enabled {
		return
	}

	tones := make([]beep.Streamer, 0, len(freqs))
	for _, f := range freqs {
		sine, err := generators.SineTone(sampleRate, f)
		if err != nil {
			return
		}
		tones = append(tones, beep.Take(sampleRate.N(80*time.Millisecond), sine))
	}

	speaker.Play(&effects.Volume{
		Streamer: beep.Seq(tones...),
		Base:     2,
		Volume:   -2,
	})
}

func (c *chime) close() {
	if c != nil && c.enabled {
		speaker.Close()
	}
}
