// Package tts abstracts speech synthesis so the pipeline can run against the
// real API or a local deterministic stand-in.
package tts

import (
	"context"
	"errors"
)

var (
	// ErrSynthesis wraps terminal synthesis failures (auth, quota, network).
	ErrSynthesis = errors.New("speech synthesis failed")
	// ErrEmptyText is returned when there is nothing to synthesize.
	ErrEmptyText = errors.New("empty synthesis text")
)

// Request holds the parameters for one synthesis call.
type Request struct {
	Text  string
	Voice string
}

// Audio is one synthesized waveform. Duration is in seconds; zero means the
// engine does not know it and the caller must probe the encoded file.
type Audio struct {
	Data     []byte
	Format   string // "mp3" or "wav"
	Duration float64
}

// Engine converts one utterance's text into audio.
type Engine interface {
	Synthesize(ctx context.Context, req Request) (*Audio, error)
	Name() string
}
