package clip

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tcolgate/mp3"

	"github.com/quietpine/murmur/pkg/audio/wav"
)

// Supported clip containers. WAV durations come straight from the header;
// MP3 durations require a frame walk.
var allowedExtensions = map[string]struct{}{
	".wav": {},
	".mp3": {},
}

// Load scans dir (non-recursive) for playable clips and returns their
// descriptors sorted by filename. Files that cannot be probed are skipped
// with a warning. Returns ErrNotFound when the directory is missing or no
// playable clips remain.
func Load(dir string) ([]Clip, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, dir)
	}

	var clips []Clip
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := allowedExtensions[ext]; !ok {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		c, err := probe(path, ext)
		if err != nil {
			slog.Warn("skipping unreadable clip", "path", path, "error", err)
			continue
		}
		if c.Duration <= 0 {
			slog.Warn("skipping zero-length clip", "path", path)
			continue
		}

		clips = append(clips, c)
	}

	if len(clips) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, dir)
	}

	sort.SliceStable(clips, func(i, j int) bool {
		return filepath.Base(clips[i].Path) < filepath.Base(clips[j].Path)
	})

	return clips, nil
}

func probe(path, ext string) (Clip, error) {
	switch ext {
	case ".wav":
		return probeWAV(path)
	case ".mp3":
		return probeMP3(path)
	default:
		return Clip{}, fmt.Errorf("unsupported extension %q", ext)
	}
}

func probeWAV(path string) (Clip, error) {
	r, err := wav.NewReader(path)
	if err != nil {
		return Clip{}, err
	}
	defer r.Close()

	h := r.Header()
	return Clip{
		ID:         path,
		Path:       path,
		Duration:   h.Duration(),
		SampleRate: int(h.SampleRate),
		Channels:   int(h.NumChannels),
	}, nil
}

func probeMP3(path string) (Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return Clip{}, err
	}
	defer f.Close()

	decoder := mp3.NewDecoder(f)
	var frame mp3.Frame
	var skipped int
	var total float64

	for {
		err := decoder.Decode(&frame, &skipped)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Clip{}, err
		}
		total += frame.Duration().Seconds()
	}

	return Clip{
		ID:       path,
		Path:     path,
		Duration: total,
		Channels: 1,
	}, nil
}
