// Package transcriber wraps a local whisper binary as the speech-to-text
// collaborator. Model loading and decoding are the binary's problem; this
// package only owns the contract around it.
package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/TsunoPanda/EikaiwaReview/internal/config"
	"github.com/TsunoPanda/EikaiwaReview/internal/logger"
	"github.com/TsunoPanda/EikaiwaReview/pkg/executor"
)

// ModelSizes are the recognized whisper model sizes.
var ModelSizes = []string{"tiny", "base", "small", "medium", "large"}

// DefaultModelSize is used when an unknown size is requested.
const DefaultModelSize = "base"

// ValidModelSize reports whether size is one of the recognized model sizes.
func ValidModelSize(size string) bool {
	for _, s := range ModelSizes {
		if s == size {
			return true
		}
	}
	return false
}

// Transcriber converts an audio file into a plain-text transcript.
type Transcriber struct {
	cfg  config.WhisperConfig
	exec executor.Executor
	log  logger.Logger
}

func New(cfg config.WhisperConfig, exec executor.Executor, log logger.Logger) *Transcriber {
	return &Transcriber{cfg: cfg, exec: exec, log: log}
}

// Transcribe runs whisper over audioPath with the given model size and
// returns the transcript formatted one sentence per line. An unknown model
// size falls back to base with a warning instead of failing.
func (t *Transcriber) Transcribe(ctx context.Context, audioPath, modelSize string) (string, error) {
	if !ValidModelSize(modelSize) {
		t.log.Warn(ctx, "unknown model size %q, using %q", modelSize, DefaultModelSize)
		modelSize = DefaultModelSize
	}

	modelPath := filepath.Join(t.cfg.ModelDir, fmt.Sprintf("ggml-%s.bin", modelSize))
	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))

	t.log.Info(ctx, "transcribing %s with %s model (%d threads)", audioPath, modelSize, t.cfg.Threads)

	args := []string{
		"-m", modelPath,
		"-f", audioPath,
		"-otxt",
		"-l", t.cfg.Language,
		"-t", strconv.Itoa(t.cfg.Threads),
		"--output-file", outputPrefix,
	}

	if _, err := t.exec.Execute(ctx, t.cfg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	txtPath := outputPrefix + ".txt"
	data, err := os.ReadFile(txtPath)
	if err != nil {
		return "", fmt.Errorf("read transcript %s: %w", txtPath, err)
	}
	os.Remove(txtPath)

	return FormatSentences(string(data)), nil
}

// FormatSentences breaks a transcript into one sentence per line so the
// review pipeline can treat each line as a unit.
func FormatSentences(text string) string {
	text = strings.TrimSpace(text)
	replacer := strings.NewReplacer(
		". ", ".\n",
		"? ", "?\n",
		"! ", "!\n",
	)
	return replacer.Replace(text)
}
