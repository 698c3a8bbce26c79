// Package clip loads a directory of pre-rendered spoken-word clips and
// exposes their descriptors and PCM data to the weaving engine.
package clip

import (
	"errors"
	"time"
)

var (
	// ErrNotFound indicates the clip directory is missing or holds no
	// playable clips.
	ErrNotFound = errors.New("clip directory not found or empty")

	// ErrDecode indicates a clip's audio data could not be read.
	ErrDecode = errors.New("clip decode failed")
)

// Clip is an immutable descriptor for one pre-rendered audio file.
// Sample data is not held here; it is decoded on demand at render time.
type Clip struct {
	// ID uniquely identifies the clip (its source path).
	ID string

	// Path is the absolute or working-directory-relative file path.
	Path string

	// Duration is the clip's playback length in seconds.
	Duration float64

	// SampleRate is the source file's sample rate in Hz. Zero when the
	// container does not expose it cheaply (e.g. MP3 probed by frames).
	SampleRate int

	// Channels is the source channel count. Clips are expected mono;
	// stereo sources are downmixed at decode time.
	Channels int
}

// DurationTime returns the clip duration as a time.Duration.
func (c Clip) DurationTime() time.Duration {
	return time.Duration(c.Duration * float64(time.Second))
}

// TotalDuration sums the durations of the given clips in seconds.
func TotalDuration(clips []Clip) float64 {
	var total float64
	for _, c := range clips {
		total += c.Duration
	}
	return total
}
