package weave

import (
	"math"

	"github.com/quietpine/murmur/pkg/clip"
)

// Placement positions one clip in the stereo timeline.
type Placement struct {
	Clip clip.Clip

	// Start is the playback start time in seconds. Starts are strictly
	// increasing across the placement sequence.
	Start float64

	// Pan is the stereo position: -1 full left, 0 center, +1 full right.
	Pan float64

	// Gain multiplies the clip's amplitude. Always 1.0 for now;
	// normalization policies would layer on here.
	Gain float64
}

// End returns the placement's end time in seconds.
func (p Placement) End() float64 {
	return p.Start + p.Clip.Duration
}

// Timeline is the ordered sequence of placements plus the total rendered
// duration (the maximum end time).
type Timeline struct {
	Placements []Placement
	Duration   float64
}

// Schedule assigns each clip a start time and pan position, in playback
// order.
//
// Each clip after the first starts at the previous clip's start plus an
// offset drawn from [OverlapMin, OverlapMax] of the shorter of the two
// adjacent clip durations, so a new voice always begins while the previous
// one is still finishing and never on top of it.
//
// Pans rotate through PanSequence. When the rotation would put a clip
// within MinPanSeparation of a still-audible clip, the least recently used
// position that keeps the separation is taken instead.
func (e *Engine) Schedule(clips []clip.Clip) Timeline {
	if len(clips) == 0 {
		return Timeline{}
	}

	placements := make([]Placement, 0, len(clips))
	// lastUsed[i] is the step at which pan i was last assigned, -1 if never.
	lastUsed := make([]int, len(e.cfg.PanSequence))
	for i := range lastUsed {
		lastUsed[i] = -1
	}

	var start float64
	for i, c := range clips {
		if i > 0 {
			prev := clips[i-1]
			shorter := math.Min(prev.Duration, c.Duration)
			frac := e.cfg.OverlapMin + e.rng.Float64()*(e.cfg.OverlapMax-e.cfg.OverlapMin)
			start += frac * shorter
		}

		panIdx := e.pickPan(placements, lastUsed, i, start, start+c.Duration)
		lastUsed[panIdx] = i

		placements = append(placements, Placement{
			Clip:  c,
			Start: start,
			Pan:   e.cfg.PanSequence[panIdx],
			Gain:  1.0,
		})
	}

	var total float64
	for _, p := range placements {
		if p.End() > total {
			total = p.End()
		}
	}

	return Timeline{Placements: placements, Duration: total}
}

// pickPan chooses a pan index for the clip occupying [start, end). The
// rotation position is preferred; positions violating MinPanSeparation
// against any overlapping placement are rejected in favor of the least
// recently used conforming one. If every position violates, the one
// farthest from all active clips wins.
func (e *Engine) pickPan(placements []Placement, lastUsed []int, step int, start, end float64) int {
	n := len(e.cfg.PanSequence)
	if n == 1 {
		return 0
	}

	preferred := step % n
	if e.panFits(placements, e.cfg.PanSequence[preferred], start, end) {
		return preferred
	}

	best := -1
	for idx := 0; idx < n; idx++ {
		if idx == preferred {
			continue
		}
		if !e.panFits(placements, e.cfg.PanSequence[idx], start, end) {
			continue
		}
		if best == -1 || lastUsed[idx] < lastUsed[best] {
			best = idx
		}
	}
	if best >= 0 {
		return best
	}

	// Nothing fully conforms; take the position farthest from the active
	// clips while still clearing the immediately preceding voice, which
	// is always audible when this one starts.
	prevPan := placements[len(placements)-1].Pan
	bestDist := -1.0
	for idx := 0; idx < n; idx++ {
		pan := e.cfg.PanSequence[idx]
		if math.Abs(pan-prevPan) < e.cfg.MinPanSeparation {
			continue
		}
		d := e.minActiveDistance(placements, pan, start, end)
		if d > bestDist {
			bestDist = d
			best = idx
		}
	}
	if best >= 0 {
		return best
	}

	return preferred
}

func (e *Engine) panFits(placements []Placement, pan, start, end float64) bool {
	return e.minActiveDistance(placements, pan, start, end) >= e.cfg.MinPanSeparation
}

// minActiveDistance returns the smallest pan distance between the
// candidate and every placement audible during [start, end). Returns
// +Inf when nothing overlaps.
func (e *Engine) minActiveDistance(placements []Placement, pan, start, end float64) float64 {
	min := math.Inf(1)
	for _, p := range placements {
		if p.End() <= start || p.Start >= end {
			continue
		}
		if d := math.Abs(p.Pan - pan); d < min {
			min = d
		}
	}
	return min
}
