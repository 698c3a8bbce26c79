// Package weave implements the soundscape weaving engine: clip selection
// under a duration budget, spatial/temporal scheduling, and stereo
// rendering. Voices interleave with controlled overlap and per-clip
// panning so that simultaneous speech stays perceptually separable.
package weave

import (
	"errors"
	"math/rand"
	"time"

	"github.com/quietpine/murmur/pkg/clip"
)

// ErrInsufficientClips indicates an empty clip pool was given to the
// selector.
var ErrInsufficientClips = errors.New("insufficient clips: pool is empty")

// Config holds the engine's tuning parameters. The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	// PanSequence is the rotation of stereo positions (-1 full left,
	// +1 full right) assigned to consecutive clips.
	PanSequence []float64

	// MinPanSeparation is the smallest allowed pan distance between two
	// clips whose playback intervals overlap in time.
	MinPanSeparation float64

	// OverlapMin and OverlapMax bound the start offset of each clip as a
	// fraction of the shorter of the two adjacent clip durations. Values
	// below 1.0 guarantee a new voice begins while the previous one is
	// still playing; values above 0 guarantee voices never start
	// simultaneously.
	OverlapMin float64
	OverlapMax float64

	// SampleRate is the output sample rate in Hz.
	SampleRate int

	// FadeIn and FadeOut are the per-clip amplitude ramp lengths applied
	// at render time. They shape volume only and never shorten a clip.
	FadeIn  time.Duration
	FadeOut time.Duration
}

// DefaultConfig returns the engine defaults: four pan positions rotated
// left-to-right, 40-80% overlap offsets, and 44.1kHz output.
func DefaultConfig() Config {
	return Config{
		PanSequence:      []float64{-0.7, 0.3, -0.3, 0.7},
		MinPanSeparation: 0.4,
		OverlapMin:       0.4,
		OverlapMax:       0.8,
		SampleRate:       44100,
		FadeIn:           100 * time.Millisecond,
		FadeOut:          500 * time.Millisecond,
	}
}

// Engine weaves clips into a stereo timeline. A single pseudo-random
// generator is threaded through selection and scheduling, so two engines
// built with the same seed produce identical results for the same inputs.
type Engine struct {
	cfg    Config
	rng    *rand.Rand
	seed   int64
	seeded bool
}

// NewEngine creates an engine with non-reproducible randomness.
func NewEngine(cfg Config) *Engine {
	return &Engine{
		cfg: cfg,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewSeededEngine creates a deterministic engine. The same seed, pool,
// and target always produce the same selection and timeline.
func NewSeededEngine(cfg Config, seed int64) *Engine {
	return &Engine{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(seed)),
		seed:   seed,
		seeded: true,
	}
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Weave runs selection and scheduling in one step.
func (e *Engine) Weave(pool []clip.Clip, target float64) (SelectionResult, Timeline, error) {
	sel, err := e.Select(pool, target)
	if err != nil {
		return SelectionResult{}, Timeline{}, err
	}
	return sel, e.Schedule(sel.Clips), nil
}
