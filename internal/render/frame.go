// Package render produces the still frame shown for the whole of a clip:
// the utterance text word-wrapped and centered on a plain canvas.
package render

import (
	"context"
	"image"
	"image/draw"
	"os"
	"sync"

	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/TsunoPanda/EikaiwaReview/internal/config"
	"github.com/TsunoPanda/EikaiwaReview/internal/logger"
)

const (
	qrSize   = 96
	qrMargin = 16
)

// Renderer draws utterance frames. Rendering is deterministic: the same
// (text, config) pair always produces byte-identical pixels.
type Renderer struct {
	width     int
	height    int
	wrapWidth int
	qrOverlay bool

	// opentype faces keep internal scratch buffers, so concurrent workers
	// must not share an unguarded face.
	mu   sync.Mutex
	face font.Face
}

// New creates a Renderer for the configured resolution and font. A missing
// or unreadable font file degrades to the embedded Go Regular face with a
// warning; it never fails the run.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*Renderer, error) {
	face, err := loadFace(cfg.FontPath, float64(cfg.FontSize))
	if err != nil {
		log.Warn(ctx, "font %q unavailable (%v), falling back to embedded Go Regular", cfg.FontPath, err)
		face, err = builtinFace(float64(cfg.FontSize))
		if err != nil {
			return nil, err
		}
	}

	return &Renderer{
		width:     cfg.VideoWidth,
		height:    cfg.VideoHeight,
		wrapWidth: cfg.TextWrapWidth,
		qrOverlay: cfg.QROverlay,
		face:      face,
	}, nil
}

func loadFace(path string, size float64) (font.Face, error) {
	if path == "" {
		return builtinFace(size)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseFace(data, size)
}

func builtinFace(size float64) (font.Face, error) {
	return parseFace(goregular.TTF, size)
}

func parseFace(ttf []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Render draws the text word-wrapped and centered on a white canvas.
func (r *Renderer) Render(text string) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	lines := Wrap(text, r.wrapWidth)

	r.mu.Lock()
	metrics := r.face.Metrics()
	lineHeight := metrics.Height.Ceil()
	blockHeight := lineHeight * len(lines)

	y := (r.height-blockHeight)/2 + metrics.Ascent.Ceil()
	for _, line := range lines {
		lineWidth := font.MeasureString(r.face, line).Ceil()
		x := (r.width - lineWidth) / 2

		d := &font.Drawer{
			Dst:  img,
			Src:  image.Black,
			Face: r.face,
			Dot:  fixed.P(x, y),
		}
		d.DrawString(line)
		y += lineHeight
	}
	r.mu.Unlock()

	if r.qrOverlay {
		r.drawQR(img, text)
	}

	return img
}

// drawQR stamps a QR code of the utterance text into the bottom-right corner
// so the sentence can be grabbed with a phone. Encoding failures (text too
// long for the symbol) just leave the frame without a code.
func (r *Renderer) drawQR(img *image.RGBA, text string) {
	qr, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return
	}

	code := qr.Image(qrSize)
	offset := image.Pt(r.width-qrSize-qrMargin, r.height-qrSize-qrMargin)
	draw.Draw(img, code.Bounds().Add(offset), code, image.Point{}, draw.Over)
}
