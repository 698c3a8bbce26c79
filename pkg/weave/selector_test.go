package weave

import (
	"errors"
	"fmt"
	"testing"

	"github.com/matryer/is"

	"github.com/quietpine/murmur/pkg/clip"
)

func testPool(durations ...float64) []clip.Clip {
	pool := make([]clip.Clip, len(durations))
	for i, d := range durations {
		pool[i] = clip.Clip{
			ID:       fmt.Sprintf("clip-%02d.wav", i),
			Path:     fmt.Sprintf("clip-%02d.wav", i),
			Duration: d,
		}
	}
	return pool
}

func TestSelectEmptyPool(t *testing.T) {
	is := is.New(t)

	e := NewSeededEngine(DefaultConfig(), 1)
	_, err := e.Select(nil, 10)
	is.True(errors.Is(err, ErrInsufficientClips)) // empty pool must fail
}

func TestSelectDeterminism(t *testing.T) {
	is := is.New(t)

	pool := testPool(4, 6, 3, 5, 2)

	for _, seed := range []int64{0, 1, 42, -7} {
		a, err := NewSeededEngine(DefaultConfig(), seed).Select(pool, 10)
		is.NoErr(err)
		b, err := NewSeededEngine(DefaultConfig(), seed).Select(pool, 10)
		is.NoErr(err)

		is.Equal(len(a.Clips), len(b.Clips))
		for i := range a.Clips {
			is.Equal(a.Clips[i].ID, b.Clips[i].ID) // same seed, same order
		}
		is.Equal(a.TotalDuration, b.TotalDuration)
	}
}

func TestSelectOvershootBound(t *testing.T) {
	is := is.New(t)

	pool := testPool(4, 6, 3, 5, 2)
	const target = 10.0

	maxClip := 0.0
	for _, c := range pool {
		if c.Duration > maxClip {
			maxClip = c.Duration
		}
	}

	for seed := int64(0); seed < 50; seed++ {
		sel, err := NewSeededEngine(DefaultConfig(), seed).Select(pool, target)
		is.NoErr(err)

		is.True(sel.TotalDuration >= target)        // must reach the target
		is.True(sel.TotalDuration < target+maxClip) // bounded overshoot
	}
}

func TestSelectStopsAtTarget(t *testing.T) {
	is := is.New(t)

	// Example scenario: 5 clips, target 10. Selection must stop as soon
	// as the running total reaches 10 and never include a further clip.
	pool := testPool(4, 6, 3, 5, 2)

	for seed := int64(0); seed < 50; seed++ {
		sel, err := NewSeededEngine(DefaultConfig(), seed).Select(pool, 10)
		is.NoErr(err)

		withoutLast := sel.TotalDuration - sel.Clips[len(sel.Clips)-1].Duration
		is.True(withoutLast < 10) // every clip but the last was needed
	}
}

func TestSelectNonEmptyGuarantee(t *testing.T) {
	is := is.New(t)

	// A single clip longer than the target is still selected.
	pool := testPool(30)

	sel, err := NewSeededEngine(DefaultConfig(), 3).Select(pool, 5)
	is.NoErr(err)
	is.Equal(len(sel.Clips), 1)
	is.Equal(sel.TotalDuration, 30.0)
}

func TestSelectCumulativeMatchesClips(t *testing.T) {
	is := is.New(t)

	pool := testPool(1.5, 2.5, 0.5, 3.5)

	sel, err := NewSeededEngine(DefaultConfig(), 9).Select(pool, 4)
	is.NoErr(err)
	is.Equal(sel.TotalDuration, clip.TotalDuration(sel.Clips))
}

func TestSelectUseAllUnseededKeepsLibraryOrder(t *testing.T) {
	is := is.New(t)

	pool := testPool(1, 2, 3, 4)

	sel, err := NewEngine(DefaultConfig()).Select(pool, 0)
	is.NoErr(err)
	is.Equal(len(sel.Clips), len(pool))
	for i := range pool {
		is.Equal(sel.Clips[i].ID, pool[i].ID) // no target, no seed: library order
	}
	is.True(!sel.Seeded)
}

func TestSelectUseAllSeededShufflesDeterministically(t *testing.T) {
	is := is.New(t)

	pool := testPool(1, 2, 3, 4, 5, 6, 7, 8)

	a, err := NewSeededEngine(DefaultConfig(), 11).Select(pool, -1)
	is.NoErr(err)
	b, err := NewSeededEngine(DefaultConfig(), 11).Select(pool, -1)
	is.NoErr(err)

	is.Equal(len(a.Clips), len(pool)) // sentinel -1 selects everything
	for i := range a.Clips {
		is.Equal(a.Clips[i].ID, b.Clips[i].ID)
	}
	is.Equal(a.Seed, int64(11))
	is.True(a.Seeded)
}

func TestSelectDoesNotMutatePool(t *testing.T) {
	is := is.New(t)

	pool := testPool(1, 2, 3, 4)
	_, err := NewSeededEngine(DefaultConfig(), 5).Select(pool, 6)
	is.NoErr(err)

	for i := range pool {
		is.Equal(pool[i].ID, fmt.Sprintf("clip-%02d.wav", i)) // input order untouched
	}
}
