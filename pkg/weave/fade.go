package weave

// Smoothstep returns the smoothstep interpolation for t in [0,1].
// Formula: 3t^2 - 2t^3.
func Smoothstep(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}

// applyFades shapes a decoded clip with a smoothstep fade-in and fade-out
// of the given sample lengths, in place. Fades are clamped so the two
// ramps never cross; the clip keeps its full length.
func applyFades(samples []float64, fadeIn, fadeOut int) {
	if half := len(samples) / 2; fadeIn > half {
		fadeIn = half
	}
	if half := len(samples) / 2; fadeOut > half {
		fadeOut = half
	}

	for i := 0; i < fadeIn; i++ {
		samples[i] *= Smoothstep(float64(i) / float64(fadeIn))
	}

	for i := 0; i < fadeOut; i++ {
		idx := len(samples) - 1 - i
		samples[idx] *= Smoothstep(float64(i) / float64(fadeOut))
	}
}
