package config

import (
	"math"
	"os"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.ProcessSpeaker != "[Me]" {
		t.Errorf("ProcessSpeaker = %q, want [Me]", cfg.ProcessSpeaker)
	}
	if cfg.VideoWidth != 640 || cfg.VideoHeight != 480 {
		t.Errorf("Resolution = %dx%d, want 640x480", cfg.VideoWidth, cfg.VideoHeight)
	}
	if cfg.FPS != 30 {
		t.Errorf("FPS = %d, want 30", cfg.FPS)
	}
	if len(cfg.Voices) != 6 {
		t.Errorf("Expected 6 default voices, got %d", len(cfg.Voices))
	}
	if cfg.TailFactor != 1.5 || cfg.TailExtra != 1.0 {
		t.Errorf("Tail policy = %f/%f, want 1.5/1.0", cfg.TailFactor, cfg.TailExtra)
	}
	if cfg.TestMode {
		t.Error("TestMode should default to off")
	}
}

func TestTailPolicy(t *testing.T) {
	cfg := Default()

	tests := []struct {
		audioDur float64
		want     float64
	}{
		{2.0, 4.0},  // 2*1.5 + 1
		{0.5, 1.75}, // 0.5*1.5 + 1
		{10.0, 16.0},
	}

	for _, tt := range tests {
		if got := cfg.Tail(tt.audioDur); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Tail(%f) = %f, want %f", tt.audioDur, got, tt.want)
		}
	}
}

func TestValidateRejectsNegativeTail(t *testing.T) {
	cfg := &Config{TailFactor: -1}
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for negative tail factor")
	}
}

func TestLoad(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
process_speaker: "[Student]"
min_sentence_length: 15
video_width: 1280
video_height: 720
test_mode: true

whisper:
  binary_path: "./whisper"
  model_dir: "models"
  language: "en"

logging:
  level: "debug"
`
	if _, err := tmpfile.WriteString(content); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ProcessSpeaker != "[Student]" {
		t.Errorf("ProcessSpeaker = %q, want [Student]", cfg.ProcessSpeaker)
	}
	if cfg.MinSentenceLen != 15 {
		t.Errorf("MinSentenceLen = %d, want 15", cfg.MinSentenceLen)
	}
	if !cfg.TestMode {
		t.Error("TestMode should be on")
	}
	// Defaults still applied for unset fields.
	if cfg.FPS != 30 {
		t.Errorf("FPS default not applied: %d", cfg.FPS)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("nonexistent.yaml"); err == nil {
		t.Error("Load should fail for a missing file")
	}
}
