// Package clip combines one rendered frame and one synthesized waveform into
// a timed video clip with a silence tail for repeat practice.
package clip

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/TsunoPanda/EikaiwaReview/internal/config"
	"github.com/TsunoPanda/EikaiwaReview/pkg/executor"
)

// ErrInvalidAudio is returned when the synthesized audio duration is zero or
// negative. The assembler refuses to truncate silently.
var ErrInvalidAudio = errors.New("invalid audio duration")

// Clip is the atomic unit of the timeline: one assembled .mp4 artifact keyed
// by the utterance's stable index.
type Clip struct {
	Index    int
	Path     string
	Text     string
	Voice    string
	Duration float64 // voiced + tail, seconds
}

// Assembler turns (frame, audio) pairs into clips via ffmpeg. The single
// frame is piped as raw RGBA over stdin and duplicated with zoompan, the
// audio track is padded with apad for the silence tail.
type Assembler struct {
	exec    executor.Executor
	fps     int
	width   int
	height  int
	encoder string
	quality int
}

// NewAssembler creates an Assembler using the run's encoder and quality.
func NewAssembler(exec executor.Executor, cfg *config.Config) *Assembler {
	encoder := cfg.VideoEncoder
	if encoder == "" {
		encoder = "libx264"
	}
	return &Assembler{
		exec:    exec,
		fps:     cfg.FPS,
		width:   cfg.VideoWidth,
		height:  cfg.VideoHeight,
		encoder: encoder,
		quality: cfg.Quality,
	}
}

// Assemble writes the clip for one utterance to outPath. The visual track is
// the static frame for audioDur+tail seconds, the audio track is the file at
// audioPath followed by tail seconds of silence.
func (a *Assembler) Assemble(ctx context.Context, frame image.Image, audioPath string, audioDur, tail float64, outPath string) error {
	if audioDur <= 0 {
		return fmt.Errorf("%w: %.3fs", ErrInvalidAudio, audioDur)
	}

	total := audioDur + tail
	frames := int(math.Ceil(total * float64(a.fps)))
	inputW, inputH := frame.Bounds().Dx(), frame.Bounds().Dy()

	filter := fmt.Sprintf(
		"[0:v]zoompan=z=1:d=%d:s=%dx%d:fps=%d,format=yuv420p[v];[1:a]apad=pad_dur=%f[a]",
		frames, a.width, a.height, a.fps, tail,
	)

	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", inputW, inputH),
		"-i", "-",
		"-i", audioPath,
		"-filter_complex", filter,
		"-map", "[v]",
		"-map", "[a]",
		"-t", fmt.Sprintf("%f", total),
		"-r", fmt.Sprintf("%d", a.fps),
		"-c:v", a.encoder,
	}
	args = append(args, a.qualityArgs()...)
	args = append(args, "-c:a", "aac", "-b:a", "128k", outPath)

	if _, err := a.exec.ExecuteWithInput(ctx, bytes.NewReader(rawRGBA(frame)), "ffmpeg", args...); err != nil {
		return fmt.Errorf("assemble clip %s: %w", outPath, err)
	}

	return nil
}

func (a *Assembler) qualityArgs() []string {
	switch a.encoder {
	case "h264_videotoolbox":
		// VideoToolbox rejects -q:v on some versions, use a bitrate instead.
		return []string{"-b:v", fmt.Sprintf("%dk", a.quality*100)}
	case "h264_nvenc":
		return []string{"-cq", fmt.Sprintf("%d", a.quality)}
	default: // libx264
		return []string{"-crf", fmt.Sprintf("%d", a.quality), "-preset", "medium"}
	}
}

// rawRGBA returns the frame's pixels as tightly packed RGBA bytes, converting
// when the image is not already in that layout.
func rawRGBA(img image.Image) []byte {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != bounds.Dx()*4 || rgba.Rect.Min.X != 0 || rgba.Rect.Min.Y != 0 {
		rgba = image.NewRGBA(bounds)
		draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	}
	return rgba.Pix
}
