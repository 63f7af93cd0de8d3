package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config is the immutable value object passed to every pipeline component.
// It is assembled once per run (YAML file first, flag overrides on top) and
// never mutated afterwards.
type Config struct {
	ProcessSpeaker string `yaml:"process_speaker"`
	MinSentenceLen int    `yaml:"min_sentence_length"`

	VideoWidth    int    `yaml:"video_width"`
	VideoHeight   int    `yaml:"video_height"`
	FPS           int    `yaml:"fps"`
	FontSize      int    `yaml:"font_size"`
	FontPath      string `yaml:"font_path"`
	TextWrapWidth int    `yaml:"text_wrap_width"`
	QROverlay     bool   `yaml:"qr_overlay"`

	// Silence tail appended after the voiced part of each clip:
	// tail = duration*TailFactor + TailExtra seconds.
	TailFactor float64 `yaml:"tail_factor"`
	TailExtra  float64 `yaml:"tail_extra"`

	Voices   []string `yaml:"voices"`
	TestMode bool     `yaml:"test_mode"`

	OutputDir string `yaml:"output_dir"`
	Workers   int    `yaml:"workers"`
	Retries   int    `yaml:"retries"`

	// Chosen by the ffmpeg encoder probe at startup, not read from the file.
	VideoEncoder string `yaml:"-"`
	Quality      int    `yaml:"quality"`

	ShowStats bool `yaml:"show_stats"`

	Whisper WhisperConfig `yaml:"whisper"`
	Logging LoggingConfig `yaml:"logging"`
}

// WhisperConfig configures the speak2text transcription collaborator.
type WhisperConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ModelDir   string `yaml:"model_dir"`
	Language   string `yaml:"language"`
	Threads    int    `yaml:"threads"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultVoices is the fixed voice set one of which is drawn per utterance.
var DefaultVoices = []string{"alloy", "echo", "fable", "onyx", "nova", "shimmer"}

// Load reads a YAML config file and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns a Config with every field at its documented default.
func Default() *Config {
	cfg := &Config{}
	cfg.Validate()
	return cfg
}

// Validate fills in defaults and rejects values the pipeline cannot work with.
func (c *Config) Validate() error {
	if c.ProcessSpeaker == "" {
		c.ProcessSpeaker = "[Me]"
	}
	if c.MinSentenceLen == 0 {
		c.MinSentenceLen = 30
	}
	if c.VideoWidth == 0 {
		c.VideoWidth = 640
	}
	if c.VideoHeight == 0 {
		c.VideoHeight = 480
	}
	if c.FPS == 0 {
		c.FPS = 30
	}
	if c.FontSize == 0 {
		c.FontSize = 32
	}
	if c.TextWrapWidth == 0 {
		c.TextWrapWidth = 40
	}
	if c.TailFactor == 0 {
		c.TailFactor = 1.5
	}
	if c.TailExtra == 0 {
		c.TailExtra = 1.0
	}
	if len(c.Voices) == 0 {
		c.Voices = DefaultVoices
	}
	if c.OutputDir == "" {
		c.OutputDir = "output"
	}
	if c.Workers == 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Retries == 0 {
		c.Retries = 3
	}
	if c.Quality == 0 {
		c.Quality = 23
	}
	if c.Whisper.BinaryPath == "" {
		c.Whisper.BinaryPath = "whisper"
	}
	if c.Whisper.ModelDir == "" {
		c.Whisper.ModelDir = "models"
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "en"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = runtime.NumCPU()
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	if c.VideoWidth < 0 || c.VideoHeight < 0 {
		return fmt.Errorf("video dimensions must be positive: %dx%d", c.VideoWidth, c.VideoHeight)
	}
	if c.MinSentenceLen < 0 {
		return fmt.Errorf("min_sentence_length must not be negative: %d", c.MinSentenceLen)
	}
	if c.TailFactor < 0 || c.TailExtra < 0 {
		return fmt.Errorf("silence tail must not be negative: factor=%f extra=%f", c.TailFactor, c.TailExtra)
	}

	return nil
}

// Tail returns the silence tail duration for a clip whose voiced part lasts
// audioDur seconds. With the defaults (1.5x + 1s) the repeat window is a bit
// longer than the utterance itself, which is what shadowing practice wants.
func (c *Config) Tail(audioDur float64) float64 {
	return audioDur*c.TailFactor + c.TailExtra
}
