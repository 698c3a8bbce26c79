// Package tts defines the interface for the external text-to-speech
// collaborators that produce the mono clips the weaving engine consumes.
package tts

import "context"

// SynthesizeRequest contains parameters for text-to-speech synthesis.
type SynthesizeRequest struct {
	Text  string
	Voice string
	Speed float32
}

// Audio is a synthesized mono clip.
type Audio struct {
	Samples    []int16
	SampleRate int
}

// Duration returns the clip length in seconds.
func (a Audio) Duration() float64 {
	if a.SampleRate == 0 {
		return 0
	}
	return float64(len(a.Samples)) / float64(a.SampleRate)
}

// Capabilities describes what a synthesis provider supports.
type Capabilities struct {
	SupportedVoices      []string
	SampleRates          []int
	SupportsSpeedControl bool
}

// Synthesizer converts text into a complete mono audio clip.
type Synthesizer interface {
	// Synthesize renders the request to PCM. The returned clip is
	// complete; providers do not stream.
	Synthesize(ctx context.Context, req SynthesizeRequest) (Audio, error)

	// Capabilities returns the provider's capabilities.
	Capabilities() Capabilities
}
