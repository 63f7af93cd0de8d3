// Package engine orchestrates the conversation-to-media pipeline: parse,
// select, then per-utterance synthesis + rendering + assembly in a bounded
// worker pool, finished by an in-order concatenation.
package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/TsunoPanda/EikaiwaReview/internal/clip"
	"github.com/TsunoPanda/EikaiwaReview/internal/config"
	"github.com/TsunoPanda/EikaiwaReview/internal/conversation"
	"github.com/TsunoPanda/EikaiwaReview/internal/logger"
	"github.com/TsunoPanda/EikaiwaReview/internal/render"
	"github.com/TsunoPanda/EikaiwaReview/internal/system"
	"github.com/TsunoPanda/EikaiwaReview/internal/timeline"
	"github.com/TsunoPanda/EikaiwaReview/internal/tts"
	"github.com/TsunoPanda/EikaiwaReview/pkg/executor"
)

// Project wires the pipeline components for one run.
type Project struct {
	cfg       *config.Config
	synth     tts.Engine
	picker    *tts.VoicePicker
	renderer  *render.Renderer
	assembler *clip.Assembler
	concat    *timeline.Concatenator
	exec      executor.Executor
	log       logger.Logger
}

// NewProject assembles a Project from explicit dependencies. Nothing here
// reads global state; the synthesizer already carries retry behaviour.
func NewProject(
	cfg *config.Config,
	synth tts.Engine,
	picker *tts.VoicePicker,
	renderer *render.Renderer,
	assembler *clip.Assembler,
	concat *timeline.Concatenator,
	exec executor.Executor,
	log logger.Logger,
) *Project {
	return &Project{
		cfg:       cfg,
		synth:     synth,
		picker:    picker,
		renderer:  renderer,
		assembler: assembler,
		concat:    concat,
		exec:      exec,
		log:       log,
	}
}

// Run executes the whole pipeline for one transcript file. Output artifacts
// are output/{suffix}part_{index}.mp4 per selected utterance and
// output/{suffix}ALL.mp4 for the concatenation.
func (p *Project) Run(ctx context.Context, inputPath, suffix string) error {
	startTime := time.Now()

	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	utterances, err := conversation.Parse(ctx, f, p.log)
	f.Close()
	if err != nil {
		return err
	}

	selected := conversation.Select(utterances, p.cfg.ProcessSpeaker, p.cfg.MinSentenceLen)
	if len(selected) == 0 {
		return fmt.Errorf("%w: speaker %q, min length %d, input %s",
			conversation.ErrNoUtterances, p.cfg.ProcessSpeaker, p.cfg.MinSentenceLen, inputPath)
	}

	p.log.Info(ctx, "parsed %d utterances, selected %d for speaker %q",
		len(utterances), len(selected), p.cfg.ProcessSpeaker)

	if err := os.MkdirAll(p.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmpDir, err := os.MkdirTemp("", "text2movie_")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	// Per-utterance work is independent; only concatenation is ordered.
	// Voices are drawn while submitting so the picker stays single-threaded.
	clips := make([]clip.Clip, len(selected))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Workers)

	for i, u := range selected {
		i, u := i, u
		voice := p.picker.Pick()
		g.Go(func() error {
			c, err := p.processUtterance(gctx, u, voice, suffix, tmpDir)
			if err != nil {
				return fmt.Errorf("utterance %d (%.40q): %w", u.Index, u.Text, err)
			}
			clips[i] = c
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	// Workers fill the slice positionally, which already matches selection
	// order; sorting by index keeps the contract independent of scheduling.
	sort.Slice(clips, func(i, j int) bool { return clips[i].Index < clips[j].Index })

	allPath := filepath.Join(p.cfg.OutputDir, suffix+"ALL.mp4")
	if err := p.concat.Concatenate(ctx, clips, allPath, tmpDir); err != nil {
		return err
	}

	p.log.Info(ctx, "done: %d clips, combined video %s", len(clips), allPath)

	if p.cfg.ShowStats {
		system.ReportStats(ctx, p.log, time.Since(startTime), len(clips))
	}

	return nil
}

// processUtterance produces one clip: synthesize, persist audio, probe the
// duration if the engine did not know it, render the frame, assemble.
func (p *Project) processUtterance(ctx context.Context, u conversation.Utterance, voice, suffix, tmpDir string) (clip.Clip, error) {
	p.log.Info(ctx, "utterance %d: synthesizing with voice %q: %.50s", u.Index, voice, u.Text)

	audio, err := p.synth.Synthesize(ctx, tts.Request{Text: u.Text, Voice: voice})
	if err != nil {
		return clip.Clip{}, err
	}

	audioPath := filepath.Join(tmpDir, fmt.Sprintf("part_%d.%s", u.Index, audio.Format))
	if err := os.WriteFile(audioPath, audio.Data, 0644); err != nil {
		return clip.Clip{}, fmt.Errorf("write audio: %w", err)
	}

	duration := audio.Duration
	if duration == 0 {
		duration, err = system.AudioDuration(ctx, p.exec, audioPath)
		if err != nil {
			return clip.Clip{}, fmt.Errorf("probe audio duration: %w", err)
		}
	}

	frame := p.renderer.Render(u.Text)
	tail := p.cfg.Tail(duration)

	outPath := filepath.Join(p.cfg.OutputDir, fmt.Sprintf("%spart_%d.mp4", suffix, u.Index))
	if err := p.assembler.Assemble(ctx, frame, audioPath, duration, tail, outPath); err != nil {
		return clip.Clip{}, err
	}

	p.log.Debug(ctx, "utterance %d: clip ready at %s (%.2fs voiced + %.2fs tail)",
		u.Index, outPath, duration, tail)

	return clip.Clip{
		Index:    u.Index,
		Path:     outPath,
		Text:     u.Text,
		Voice:    voice,
		Duration: duration + tail,
	}, nil
}
