// Package system holds host-level helpers: resource limits, media probing
// and encoder detection.
package system

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/TsunoPanda/EikaiwaReview/internal/logger"
	"github.com/TsunoPanda/EikaiwaReview/pkg/executor"
)

// InitResourceLimits raises the open-file limit so many concurrent ffmpeg
// children do not exhaust it. Failures are logged, not fatal.
func InitResourceLimits(ctx context.Context, log logger.Logger) {
	var rLimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Warn(ctx, "could not read open-file limit: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Warn(ctx, "could not raise open-file limit: %v", err)
	} else {
		log.Debug(ctx, "open-file limit raised to %d", rLimit.Cur)
	}
}

// AudioDuration returns the duration of an audio file in seconds via ffprobe.
func AudioDuration(ctx context.Context, exec executor.Executor, path string) (float64, error) {
	out, err := exec.Execute(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return 0, err
	}

	var duration float64
	if _, err := fmt.Sscanf(strings.TrimSpace(out), "%f", &duration); err != nil {
		return 0, fmt.Errorf("parse ffprobe output %q: %w", strings.TrimSpace(out), err)
	}

	return duration, nil
}

// BestH264Encoder picks a hardware H.264 encoder when ffmpeg offers one,
// falling back to software libx264.
func BestH264Encoder(ctx context.Context, exec executor.Executor) string {
	out, err := exec.Execute(ctx, "ffmpeg", "-encoders")
	if err != nil {
		return "libx264"
	}

	for _, name := range []string{"h264_videotoolbox", "h264_nvenc"} {
		if strings.Contains(out, name) {
			return name
		}
	}

	return "libx264"
}

// FindLatestTranscript returns the most recently modified .txt file in dir.
// Used when the CLI is started without an explicit input path.
func FindLatestTranscript(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(strings.ToLower(f.Name()), ".txt") {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no transcript files found in %s", dir)
	}

	return latestFile, nil
}
