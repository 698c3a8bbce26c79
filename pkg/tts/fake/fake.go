// Package fake provides an offline Synthesizer for testing and dry runs.
package fake

import (
	"context"
	"math"

	"github.com/quietpine/murmur/pkg/tts"
)

const sampleRate = 24000

// TTS is a fake synthesizer. It renders a sine tone whose length grows
// with the text, so selection and scheduling behave as they would with
// real speech.
type TTS struct{}

// New creates a fake TTS provider.
func New() *TTS {
	return &TTS{}
}

// Synthesize generates a sine tone for the given text: 50ms per
// character, clamped to [0.5s, 10s].
func (f *TTS) Synthesize(ctx context.Context, req tts.SynthesizeRequest) (tts.Audio, error) {
	if err := ctx.Err(); err != nil {
		return tts.Audio{}, err
	}

	seconds := float64(len(req.Text)) * 0.05
	if seconds < 0.5 {
		seconds = 0.5
	} else if seconds > 10 {
		seconds = 10
	}

	frequency := 220.0 + float64(len(req.Text)%12)*20 // vary pitch a little per text

	samples := make([]int16, int(seconds*sampleRate))
	for i := range samples {
		t := float64(i) / sampleRate
		samples[i] = int16(math.Sin(2*math.Pi*frequency*t) * 0.3 * 32767)
	}

	return tts.Audio{Samples: samples, SampleRate: sampleRate}, nil
}

// Capabilities returns the fake provider's capabilities.
func (f *TTS) Capabilities() tts.Capabilities {
	return tts.Capabilities{
		SupportedVoices:      []string{"fake-voice-1", "fake-voice-2"},
		SampleRates:          []int{sampleRate},
		SupportsSpeedControl: false,
	}
}
