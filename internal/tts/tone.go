package tts

import (
	"context"
	"strings"

	"github.com/TsunoPanda/EikaiwaReview/internal/wav"
)

// Tone generation defaults. Duration grows linearly with text length so test
// runs still exercise realistic per-clip timing.
const (
	DefaultToneFrequency = 440.0
	DefaultPerCharSec    = 0.06
	DefaultMinToneSec    = 0.5
)

// ToneEngine is the test-mode stand-in: a sine tone whose duration is a fixed
// per-character function of the text. No network, no cost, fully
// deterministic.
type ToneEngine struct {
	Frequency  float64
	PerCharSec float64
	MinSec     float64
	SampleRate int
}

// NewToneEngine creates a ToneEngine with the default tone parameters.
func NewToneEngine() *ToneEngine {
	return &ToneEngine{
		Frequency:  DefaultToneFrequency,
		PerCharSec: DefaultPerCharSec,
		MinSec:     DefaultMinToneSec,
		SampleRate: wav.DefaultSampleRate,
	}
}

func (e *ToneEngine) Name() string { return "tone" }

// ToneDuration returns the synthetic duration for a given text.
func (e *ToneEngine) ToneDuration(text string) float64 {
	d := float64(len(text)) * e.PerCharSec
	if d < e.MinSec {
		d = e.MinSec
	}
	return d
}

// Synthesize generates the tone as a WAV payload with a known duration.
func (e *ToneEngine) Synthesize(ctx context.Context, req Request) (*Audio, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, ErrEmptyText
	}

	duration := e.ToneDuration(text)
	return &Audio{
		Data:     wav.SineWAV(e.Frequency, duration, e.SampleRate),
		Format:   "wav",
		Duration: duration,
	}, nil
}
