package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/TsunoPanda/EikaiwaReview/internal/clip"
	"github.com/TsunoPanda/EikaiwaReview/internal/config"
	"github.com/TsunoPanda/EikaiwaReview/internal/conversation"
	"github.com/TsunoPanda/EikaiwaReview/internal/engine"
	"github.com/TsunoPanda/EikaiwaReview/internal/logger"
	"github.com/TsunoPanda/EikaiwaReview/internal/render"
	"github.com/TsunoPanda/EikaiwaReview/internal/system"
	"github.com/TsunoPanda/EikaiwaReview/internal/timeline"
	"github.com/TsunoPanda/EikaiwaReview/internal/tts"
	"github.com/TsunoPanda/EikaiwaReview/internal/watcher"
	"github.com/TsunoPanda/EikaiwaReview/pkg/executor"
)

const inputDir = "input"

func main() {
	configPtr := flag.String("config", "", "Path to YAML config (flags override file values)")
	suffixPtr := flag.String("suffix", "", "Prefix for output file names (e.g. lesson3_)")
	speakerPtr := flag.String("speaker", "[Me]", "Speaker tag whose utterances become clips")
	minLenPtr := flag.Int("min-len", 30, "Minimum utterance length in characters")
	widthPtr := flag.Int("width", 640, "Video width")
	heightPtr := flag.Int("height", 480, "Video height")
	fpsPtr := flag.Int("fps", 30, "Frames per second")
	fontSizePtr := flag.Int("font-size", 32, "Font size")
	fontPtr := flag.String("font", "", "Path to a TTF font (embedded Go Regular if unavailable)")
	wrapPtr := flag.Int("wrap", 40, "Text wrap width in characters")
	workersPtr := flag.Int("workers", runtime.NumCPU(), "Concurrent utterance workers")
	tailFactorPtr := flag.Float64("tail-factor", 1.5, "Silence tail as a multiple of the voiced duration")
	tailExtraPtr := flag.Float64("tail-extra", 1.0, "Extra silence tail in seconds")
	qualityPtr := flag.Int("quality", 23, "Video quality (x264 CRF; bitrate-based for hardware encoders)")
	testPtr := flag.Bool("test", false, "Test mode: synthesize a placeholder tone instead of calling the speech API")
	qrPtr := flag.Bool("qr", false, "Overlay a QR code of the utterance text on each frame")
	statsPtr := flag.Bool("stats", false, "Print a resource usage report after the run")
	watchPtr := flag.Bool("watch", false, "Watch input/ and process transcripts as they appear")

	flag.Parse()

	cfg, err := loadConfig(*configPtr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[-] Config error: %v\n", err)
		os.Exit(1)
	}

	// Explicit flags win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "speaker":
			cfg.ProcessSpeaker = *speakerPtr
		case "min-len":
			cfg.MinSentenceLen = *minLenPtr
		case "width":
			cfg.VideoWidth = *widthPtr
		case "height":
			cfg.VideoHeight = *heightPtr
		case "fps":
			cfg.FPS = *fpsPtr
		case "font-size":
			cfg.FontSize = *fontSizePtr
		case "font":
			cfg.FontPath = *fontPtr
		case "wrap":
			cfg.TextWrapWidth = *wrapPtr
		case "workers":
			cfg.Workers = *workersPtr
		case "tail-factor":
			cfg.TailFactor = *tailFactorPtr
		case "tail-extra":
			cfg.TailExtra = *tailExtraPtr
		case "quality":
			cfg.Quality = *qualityPtr
		case "test":
			cfg.TestMode = *testPtr
		case "qr":
			cfg.QROverlay = *qrPtr
		case "stats":
			cfg.ShowStats = *statsPtr
		}
	})

	log := logger.New(cfg.Logging.Level)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	system.InitResourceLimits(ctx, log)
	os.MkdirAll(inputDir, 0755)

	exec := executor.New()

	var synth tts.Engine
	if cfg.TestMode {
		log.Info(ctx, "test mode: using tone synthesis, no API calls")
		synth = tts.NewToneEngine()
	} else {
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(os.Stderr, "[-] OPENAI_API_KEY environment variable not set")
			os.Exit(1)
		}
		synth = tts.WithRetry(tts.NewOpenAIEngine(apiKey), cfg.Retries, time.Second, log)
	}

	cfg.VideoEncoder = system.BestH264Encoder(ctx, exec)
	if cfg.VideoEncoder != "libx264" {
		log.Info(ctx, "hardware encoder detected: %s", cfg.VideoEncoder)
	}

	renderer, err := render.New(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[-] Renderer error: %v\n", err)
		os.Exit(1)
	}

	picker := tts.NewVoicePicker(cfg.Voices, rand.New(rand.NewSource(time.Now().UnixNano())))
	project := engine.NewProject(
		cfg,
		synth,
		picker,
		renderer,
		clip.NewAssembler(exec, cfg),
		timeline.NewConcatenator(exec),
		exec,
		log,
	)

	suffix := *suffixPtr

	if *watchPtr {
		runWatch(ctx, project, suffix, log)
		return
	}

	inputPath := flag.Arg(0)
	if inputPath == "" {
		latest, err := system.FindLatestTranscript(inputDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[-] No input given and %v. Put a transcript in %s/ or pass a path.\n", err, inputDir)
			os.Exit(1)
		}
		inputPath = latest
		log.Info(ctx, "using latest transcript: %s", inputPath)
	}

	if err := project.Run(ctx, inputPath, suffix); err != nil {
		if errors.Is(err, conversation.ErrNoUtterances) {
			fmt.Fprintf(os.Stderr, "[-] Nothing to process: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "[-] Pipeline error: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("[+] Done. Output in %s/\n", cfg.OutputDir)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func runWatch(ctx context.Context, project *engine.Project, suffix string, log logger.Logger) {
	w, err := watcher.New(inputDir, func(ctx context.Context, path string) error {
		return project.Run(ctx, path, suffix)
	}, log, 1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[-] Watcher error: %v\n", err)
		os.Exit(1)
	}
	defer w.Stop()

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "[-] Watcher stopped: %v\n", err)
		os.Exit(1)
	}
}
