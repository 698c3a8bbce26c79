package weave

import (
	"github.com/quietpine/murmur/pkg/clip"
)

// SelectionResult is an ordered choice of clips, the duration they sum to,
// and the seed that produced the ordering (when the engine was seeded).
type SelectionResult struct {
	Clips         []clip.Clip
	TotalDuration float64
	Seed          int64
	Seeded        bool
}

// Select chooses clips from pool whose cumulative duration approximates
// target seconds.
//
// A target <= 0 selects the whole pool: shuffled when the engine is
// seeded, in library order otherwise. A positive target shuffles the pool
// and accumulates clips until the running total reaches or exceeds it.
// The accumulated set is never trimmed, so the total may overshoot the
// target by up to the duration of the last clip added; a clip is never
// cut mid-playback to land closer.
//
// Returns ErrInsufficientClips only when the pool is empty.
func (e *Engine) Select(pool []clip.Clip, target float64) (SelectionResult, error) {
	if len(pool) == 0 {
		return SelectionResult{}, ErrInsufficientClips
	}

	ordered := make([]clip.Clip, len(pool))
	copy(ordered, pool)

	if target <= 0 {
		if e.seeded {
			e.rng.Shuffle(len(ordered), func(i, j int) {
				ordered[i], ordered[j] = ordered[j], ordered[i]
			})
		}
		return SelectionResult{
			Clips:         ordered,
			TotalDuration: clip.TotalDuration(ordered),
			Seed:          e.seed,
			Seeded:        e.seeded,
		}, nil
	}

	e.rng.Shuffle(len(ordered), func(i, j int) {
		ordered[i], ordered[j] = ordered[j], ordered[i]
	})

	var selected []clip.Clip
	var total float64
	for _, c := range ordered {
		selected = append(selected, c)
		total += c.Duration
		if total >= target {
			break
		}
	}

	return SelectionResult{
		Clips:         selected,
		TotalDuration: total,
		Seed:          e.seed,
		Seeded:        e.seeded,
	}, nil
}
