package tts

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"
)

func TestToneDurationProportionalToText(t *testing.T) {
	e := NewToneEngine()

	short := e.ToneDuration("hello there, friend")
	long := e.ToneDuration("hello there, friend, this sentence is quite a bit longer")

	if long <= short {
		t.Errorf("Duration should grow with text length: %f vs %f", short, long)
	}

	want := float64(len("hello there, friend")) * DefaultPerCharSec
	if math.Abs(short-want) > 1e-9 {
		t.Errorf("Duration = %f, want %f", short, want)
	}
}

func TestToneDurationMinimum(t *testing.T) {
	e := NewToneEngine()

	if d := e.ToneDuration("ab"); d != DefaultMinToneSec {
		t.Errorf("Very short text should clamp to %f, got %f", DefaultMinToneSec, d)
	}
}

func TestToneSynthesizeDeterministic(t *testing.T) {
	e := NewToneEngine()
	ctx := context.Background()
	req := Request{Text: "I want to practice my English speaking skills.", Voice: "alloy"}

	a, err := e.Synthesize(ctx, req)
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	b, err := e.Synthesize(ctx, req)
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	if !bytes.Equal(a.Data, b.Data) {
		t.Error("Tone synthesis is not deterministic")
	}
	if a.Duration != b.Duration {
		t.Errorf("Durations differ: %f vs %f", a.Duration, b.Duration)
	}
	if a.Format != "wav" {
		t.Errorf("Format = %q, want wav", a.Format)
	}
	if a.Duration <= 0 {
		t.Errorf("Duration must be known and positive, got %f", a.Duration)
	}
}

func TestToneSynthesizeEmptyText(t *testing.T) {
	e := NewToneEngine()

	_, err := e.Synthesize(context.Background(), Request{Text: "   "})
	if !errors.Is(err, ErrEmptyText) {
		t.Errorf("Expected ErrEmptyText, got %v", err)
	}
}
