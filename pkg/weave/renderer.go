package weave

import (
	"math"

	"github.com/quietpine/murmur/pkg/audio/wav"
	"github.com/quietpine/murmur/pkg/clip"
)

// StereoBuffer holds rendered interleaved 16-bit stereo PCM.
type StereoBuffer struct {
	SampleRate int
	Samples    []int16 // interleaved L/R
}

// Duration returns the buffer's playback length in seconds.
func (b *StereoBuffer) Duration() float64 {
	return float64(len(b.Samples)/2) / float64(b.SampleRate)
}

// WriteWAV writes the buffer to a stereo WAV file in one shot.
func (b *StereoBuffer) WriteWAV(path string) error {
	w, err := wav.NewWriter(path, uint32(b.SampleRate), 2, 16)
	if err != nil {
		return err
	}

	if err := w.WriteSamples(b.Samples); err != nil {
		w.Close()
		return err
	}

	return w.Close()
}

// Render mixes every placement into a single stereo buffer. Each clip is
// decoded to mono, faded, panned with a constant-power law, and added at
// its start offset. Clips always contribute their full length; the buffer
// grows to the last placement's end.
func (e *Engine) Render(tl Timeline) (*StereoBuffer, error) {
	rate := e.cfg.SampleRate
	fadeIn := int(e.cfg.FadeIn.Seconds() * float64(rate))
	fadeOut := int(e.cfg.FadeOut.Seconds() * float64(rate))

	// Per-channel accumulator; interleaved L/R, float to avoid clipping
	// during the additive mix.
	mix := make([]float64, int(math.Ceil(tl.Duration*float64(rate)))*2)

	for _, p := range tl.Placements {
		mono, err := clip.DecodeMono(p.Clip, rate)
		if err != nil {
			return nil, err
		}

		samples := make([]float64, len(mono))
		for i, s := range mono {
			samples[i] = float64(s) / 32768.0 * p.Gain
		}
		applyFades(samples, fadeIn, fadeOut)

		left, right := panGains(p.Pan)
		offset := int(math.Round(p.Start * float64(rate)))

		// Decoded length can differ slightly from the probed duration;
		// grow the buffer rather than drop samples.
		if need := (offset + len(samples)) * 2; need > len(mix) {
			grown := make([]float64, need)
			copy(grown, mix)
			mix = grown
		}

		for i, s := range samples {
			mix[(offset+i)*2] += s * left
			mix[(offset+i)*2+1] += s * right
		}
	}

	out := make([]int16, len(mix))
	for i, s := range mix {
		out[i] = clampSample(s)
	}

	return &StereoBuffer{SampleRate: rate, Samples: out}, nil
}

// panGains maps a pan position in [-1, 1] to left/right gains using a
// constant-power law: left^2 + right^2 == 1 everywhere, so perceived
// loudness stays flat across the stereo field.
func panGains(pan float64) (left, right float64) {
	if pan < -1 {
		pan = -1
	} else if pan > 1 {
		pan = 1
	}
	theta := (pan + 1) * math.Pi / 4
	return math.Cos(theta), math.Sin(theta)
}

func clampSample(s float64) int16 {
	scaled := s * 32767
	if scaled > 32767 {
		return 32767
	}
	if scaled < -32768 {
		return -32768
	}
	return int16(scaled)
}
