package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/TsunoPanda/EikaiwaReview/internal/config"
	"github.com/TsunoPanda/EikaiwaReview/internal/logger"
	"github.com/TsunoPanda/EikaiwaReview/internal/transcriber"
	"github.com/TsunoPanda/EikaiwaReview/pkg/executor"
)

func main() {
	configPtr := flag.String("config", "", "Path to YAML config")
	modelPtr := flag.String("model", transcriber.DefaultModelSize, "Whisper model size: tiny, base, small, medium, large")
	langPtr := flag.String("lang", "", "Transcription language (default from config, en)")
	outPtr := flag.String("out", "transcription.txt", "Transcript output path")

	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: speak2text [flags] <audio-file>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	audioPath := flag.Arg(0)

	cfg := config.Default()
	if *configPtr != "" {
		loaded, err := config.Load(*configPtr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[-] Config error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *langPtr != "" {
		cfg.Whisper.Language = *langPtr
	}

	log := logger.New(cfg.Logging.Level)
	ctx := context.Background()

	if _, err := os.Stat(audioPath); err != nil {
		fmt.Fprintf(os.Stderr, "[-] Audio file not readable: %v\n", err)
		os.Exit(1)
	}

	t := transcriber.New(cfg.Whisper, executor.New(), log)

	start := time.Now()
	text, err := t.Transcribe(ctx, audioPath, *modelPtr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[-] Transcription error: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*outPtr, []byte(text), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "[-] Write transcript: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("[+] Transcript written to %s (%.2fs)\n", *outPtr, time.Since(start).Seconds())
}
