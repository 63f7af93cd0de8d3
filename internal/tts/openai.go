package tts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIEngine synthesizes speech with the OpenAI tts-1 model, returning MP3.
type OpenAIEngine struct {
	client *openai.Client
	model  openai.SpeechModel
}

// NewOpenAIEngine creates an engine authenticated with the given API key.
func NewOpenAIEngine(apiKey string) *OpenAIEngine {
	return &OpenAIEngine{
		client: openai.NewClient(apiKey),
		model:  openai.TTSModel1,
	}
}

func (e *OpenAIEngine) Name() string { return "openai" }

// Synthesize calls the speech endpoint. Failures wrap ErrSynthesis; the
// returned Audio has an unknown duration (the MP3 must be probed).
func (e *OpenAIEngine) Synthesize(ctx context.Context, req Request) (*Audio, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, ErrEmptyText
	}

	resp, err := e.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          e.model,
		Input:          text,
		Voice:          openai.SpeechVoice(req.Voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: voice %q: %w", ErrSynthesis, req.Voice, err)
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrSynthesis, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty audio response", ErrSynthesis)
	}

	return &Audio{Data: data, Format: "mp3"}, nil
}

// Transient reports whether a synthesis error is worth retrying: rate limits,
// server-side failures and network timeouts. Auth and quota errors are not.
func Transient(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == 429 || apiErr.HTTPStatusCode >= 500
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}
