package system

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type fakeExec struct {
	out string
	err error
}

func (f *fakeExec) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return f.out, f.err
}

func (f *fakeExec) ExecuteWithInput(ctx context.Context, stdin io.Reader, name string, args ...string) (string, error) {
	return f.out, f.err
}

func TestAudioDuration(t *testing.T) {
	dur, err := AudioDuration(context.Background(), &fakeExec{out: "12.345\n"}, "a.mp3")
	if err != nil {
		t.Fatalf("AudioDuration failed: %v", err)
	}
	if dur != 12.345 {
		t.Errorf("Duration = %f, want 12.345", dur)
	}
}

func TestAudioDurationBadOutput(t *testing.T) {
	if _, err := AudioDuration(context.Background(), &fakeExec{out: "N/A"}, "a.mp3"); err == nil {
		t.Error("Expected parse error for non-numeric ffprobe output")
	}
}

func TestAudioDurationProbeFailure(t *testing.T) {
	if _, err := AudioDuration(context.Background(), &fakeExec{err: errors.New("no such file")}, "a.mp3"); err == nil {
		t.Error("Expected error when ffprobe fails")
	}
}

func TestBestH264Encoder(t *testing.T) {
	tests := []struct {
		name string
		out  string
		err  error
		want string
	}{
		{"videotoolbox available", "V..... h264_videotoolbox\nV..... libx264", nil, "h264_videotoolbox"},
		{"nvenc available", "V..... h264_nvenc\nV..... libx264", nil, "h264_nvenc"},
		{"software only", "V..... libx264", nil, "libx264"},
		{"probe failure", "", errors.New("ffmpeg not found"), "libx264"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BestH264Encoder(context.Background(), &fakeExec{out: tt.out, err: tt.err})
			if got != tt.want {
				t.Errorf("BestH264Encoder = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindLatestTranscript(t *testing.T) {
	dir := t.TempDir()

	old := filepath.Join(dir, "old.txt")
	latest := filepath.Join(dir, "latest.txt")
	for _, p := range []string{old, latest, filepath.Join(dir, "ignored.mp3")} {
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(old, past, past); err != nil {
		t.Fatal(err)
	}

	got, err := FindLatestTranscript(dir)
	if err != nil {
		t.Fatalf("FindLatestTranscript failed: %v", err)
	}
	if got != latest {
		t.Errorf("Latest transcript = %s, want %s", got, latest)
	}
}

func TestFindLatestTranscriptEmptyDir(t *testing.T) {
	if _, err := FindLatestTranscript(t.TempDir()); err == nil {
		t.Error("Expected error for a directory without transcripts")
	}
}
