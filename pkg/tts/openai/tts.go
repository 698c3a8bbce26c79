// Package openai provides a Synthesizer backed by OpenAI's speech API.
package openai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"github.com/quietpine/murmur/pkg/audio/wav"
	"github.com/quietpine/murmur/pkg/tts"
)

const defaultSampleRate = 24000 // OpenAI speech output rate

// TTS implements tts.Synthesizer using OpenAI's text-to-speech API.
type TTS struct {
	client *openai.Client
	model  string
	voice  string
}

// Config holds provider settings. APIKey falls back to the
// OPENAI_API_KEY environment variable.
type Config struct {
	APIKey string
	Model  string
	Voice  string
}

// New creates an OpenAI TTS provider.
func New(cfg Config) (*TTS, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required (set OPENAI_API_KEY or provide APIKey)")
	}

	model := cfg.Model
	if model == "" {
		model = "tts-1"
	}

	voice := cfg.Voice
	if voice == "" {
		voice = "alloy"
	}

	return &TTS{
		client: openai.NewClient(apiKey),
		model:  model,
		voice:  voice,
	}, nil
}

// Synthesize renders the text to a complete mono clip. The API returns a
// whole WAV body which is decoded in memory.
func (o *TTS) Synthesize(ctx context.Context, req tts.SynthesizeRequest) (tts.Audio, error) {
	speechReq := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(o.model),
		Input:          req.Text,
		Voice:          openai.SpeechVoice(o.getVoice(req.Voice)),
		ResponseFormat: openai.SpeechResponseFormatWav,
	}
	if req.Speed > 0 {
		speechReq.Speed = float64(req.Speed)
	}

	resp, err := o.client.CreateSpeech(ctx, speechReq)
	if err != nil {
		return tts.Audio{}, fmt.Errorf("speech request failed: %w", err)
	}
	defer resp.Close()

	body, err := io.ReadAll(resp)
	if err != nil {
		return tts.Audio{}, fmt.Errorf("failed to read speech response: %w", err)
	}

	r, err := wav.NewReaderFrom(bytes.NewReader(body))
	if err != nil {
		return tts.Audio{}, fmt.Errorf("failed to parse speech response: %w", err)
	}

	samples, err := r.ReadMono()
	if err != nil {
		return tts.Audio{}, fmt.Errorf("failed to decode speech response: %w", err)
	}

	return tts.Audio{
		Samples:    samples,
		SampleRate: int(r.Header().SampleRate),
	}, nil
}

// getVoice returns the voice to use, preferring request voice over default
func (o *TTS) getVoice(requestVoice string) string {
	if requestVoice != "" {
		return requestVoice
	}
	return o.voice
}

// Capabilities returns the OpenAI provider's capabilities.
func (o *TTS) Capabilities() tts.Capabilities {
	return tts.Capabilities{
		SupportedVoices:      []string{"alloy", "echo", "fable", "onyx", "nova", "shimmer"},
		SampleRates:          []int{defaultSampleRate},
		SupportsSpeedControl: true,
	}
}
