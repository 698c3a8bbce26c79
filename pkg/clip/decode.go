package clip

import (
	"encoding/binary"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/quietpine/murmur/pkg/audio/wav"
)

// DecodeMono decodes a clip to mono int16 samples at the given sample rate.
// Native WAV files already at the target rate are decoded directly; anything
// else goes through FFmpeg, which also handles resampling and downmixing.
func DecodeMono(c Clip, sampleRate int) ([]int16, error) {
	if strings.EqualFold(filepath.Ext(c.Path), ".wav") && c.SampleRate == sampleRate {
		samples, err := decodeWAVMono(c.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDecode, c.Path, err)
		}
		return samples, nil
	}

	samples, err := decodeFFmpegMono(c.Path, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, c.Path, err)
	}
	return samples, nil
}

func decodeWAVMono(path string) ([]int16, error) {
	r, err := wav.NewReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return r.ReadMono()
}

// decodeFFmpegMono shells out to FFmpeg for raw PCM s16le at the target
// rate, one channel.
func decodeFFmpegMono(path string, sampleRate int) ([]int16, error) {
	cmd := exec.Command("ffmpeg", ffmpegArgs(path, sampleRate)...)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg decode: %v", err)
	}

	// Ensure even byte count for int16 alignment
	if len(out)%2 != 0 {
		out = out[:len(out)-1]
	}

	samples := make([]int16, len(out)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(out[i*2 : i*2+2]))
	}

	return samples, nil
}

func ffmpegArgs(path string, sampleRate int) []string {
	return []string{
		"-i", path,
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(sampleRate),
		"-ac", "1",
		"-loglevel", "error",
		"pipe:1",
	}
}
