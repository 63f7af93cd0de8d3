// Package timeline joins the ordered per-utterance clips into the combined
// review video.
package timeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/TsunoPanda/EikaiwaReview/internal/clip"
	"github.com/TsunoPanda/EikaiwaReview/pkg/executor"
)

// ErrEmptyTimeline is returned when no clips reach concatenation. A
// zero-length combined video is never emitted silently.
var ErrEmptyTimeline = errors.New("no clips to concatenate")

// Concatenator joins clips with the ffmpeg concat demuxer. Streams are
// copied, not re-encoded, so every clip must come from the same assembler
// configuration.
type Concatenator struct {
	exec executor.Executor
}

func NewConcatenator(exec executor.Executor) *Concatenator {
	return &Concatenator{exec: exec}
}

// Concatenate joins clips into outPath in ascending Index order, whatever
// order the upstream workers finished in. Every clip artifact must already
// exist on disk; a missing one aborts with its index rather than producing a
// video that silently skips an utterance.
func (c *Concatenator) Concatenate(ctx context.Context, clips []clip.Clip, outPath, tmpDir string) error {
	if len(clips) == 0 {
		return ErrEmptyTimeline
	}

	ordered := make([]clip.Clip, len(clips))
	copy(ordered, clips)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Index < ordered[j].Index })

	listPath := filepath.Join(tmpDir, "output_files.txt")
	f, err := os.Create(listPath)
	if err != nil {
		return fmt.Errorf("create concat list: %w", err)
	}

	for _, cl := range ordered {
		if _, err := os.Stat(cl.Path); err != nil {
			f.Close()
			return fmt.Errorf("clip %d missing at %s: %w", cl.Index, cl.Path, err)
		}
		absPath, err := filepath.Abs(cl.Path)
		if err != nil {
			f.Close()
			return fmt.Errorf("clip %d path: %w", cl.Index, err)
		}
		fmt.Fprintf(f, "file '%s'\n", absPath)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write concat list: %w", err)
	}

	args := []string{
		"-y",
		"-f", "concat", "-safe", "0",
		"-i", listPath,
		"-c", "copy",
		outPath,
	}
	if _, err := c.exec.Execute(ctx, "ffmpeg", args...); err != nil {
		return fmt.Errorf("concatenate %d clips: %w", len(ordered), err)
	}

	return nil
}
