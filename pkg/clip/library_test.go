package clip

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/quietpine/murmur/pkg/audio/wav"
)

// writeSine creates a mono WAV fixture of the given length.
func writeSine(t *testing.T, path string, sampleRate uint32, durationMs int) {
	t.Helper()

	w, err := wav.NewWriter(path, sampleRate, 1, 16)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.WriteSineWave(440, durationMs); err != nil {
		t.Fatalf("WriteSineWave: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestLoadMissingDirectory(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadEmptyDirectory(t *testing.T) {
	_, err := Load(t.TempDir())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadIgnoresNonAudioFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := Load(dir)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for directory with no audio, got %v", err)
	}
}

func TestLoadSortsByFilename(t *testing.T) {
	dir := t.TempDir()
	writeSine(t, filepath.Join(dir, "b.wav"), 44100, 200)
	writeSine(t, filepath.Join(dir, "a.wav"), 44100, 100)
	writeSine(t, filepath.Join(dir, "c.wav"), 44100, 300)

	clips, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(clips) != 3 {
		t.Fatalf("expected 3 clips, got %d", len(clips))
	}

	expected := []string{"a.wav", "b.wav", "c.wav"}
	for i, name := range expected {
		if filepath.Base(clips[i].Path) != name {
			t.Errorf("clip %d: expected %s, got %s", i, name, filepath.Base(clips[i].Path))
		}
	}
}

func TestLoadProbesDurations(t *testing.T) {
	dir := t.TempDir()
	writeSine(t, filepath.Join(dir, "half.wav"), 44100, 500)

	clips, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	c := clips[0]
	if c.Duration < 0.49 || c.Duration > 0.51 {
		t.Errorf("expected ~0.5s duration, got %v", c.Duration)
	}
	if c.SampleRate != 44100 {
		t.Errorf("expected sample rate 44100, got %d", c.SampleRate)
	}
	if c.Channels != 1 {
		t.Errorf("expected mono, got %d channels", c.Channels)
	}
	if c.ID != c.Path {
		t.Errorf("expected ID to equal path, got %q vs %q", c.ID, c.Path)
	}
}

func TestLoadSkipsCorruptFiles(t *testing.T) {
	dir := t.TempDir()
	writeSine(t, filepath.Join(dir, "good.wav"), 44100, 100)
	if err := os.WriteFile(filepath.Join(dir, "bad.wav"), []byte("not audio"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	clips, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(clips) != 1 {
		t.Fatalf("expected 1 clip, got %d", len(clips))
	}
	if filepath.Base(clips[0].Path) != "good.wav" {
		t.Errorf("expected good.wav, got %s", clips[0].Path)
	}
}

func TestDecodeMonoNativeWAV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.wav")
	writeSine(t, path, 44100, 100)

	clips, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	samples, err := DecodeMono(clips[0], 44100)
	if err != nil {
		t.Fatalf("DecodeMono: %v", err)
	}

	expected := 44100 / 10 // 100ms
	if len(samples) != expected {
		t.Errorf("expected %d samples, got %d", expected, len(samples))
	}
}

func TestDecodeMonoMissingFile(t *testing.T) {
	c := Clip{ID: "gone.wav", Path: filepath.Join(t.TempDir(), "gone.wav"), SampleRate: 44100}

	_, err := DecodeMono(c, 44100)
	if !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode, got %v", err)
	}
}

func TestFFmpegArgs(t *testing.T) {
	args := ffmpegArgs("/tmp/voice.mp3", 22050)

	want := []string{
		"-i", "/tmp/voice.mp3",
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"-ar", "22050",
		"-ac", "1",
		"-loglevel", "error",
		"pipe:1",
	}
	if len(args) != len(want) {
		t.Fatalf("expected %d args, got %d: %v", len(want), len(args), args)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("arg %d: expected %q, got %q", i, want[i], args[i])
		}
	}
}

func TestTotalDuration(t *testing.T) {
	clips := []Clip{{Duration: 1.5}, {Duration: 2.25}, {Duration: 0.25}}
	if got := TotalDuration(clips); got != 4.0 {
		t.Errorf("expected 4.0, got %v", got)
	}
}
