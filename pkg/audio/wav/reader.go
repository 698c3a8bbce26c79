package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Header represents a WAV file header
type Header struct {
	ChunkSize     uint32
	SampleRate    uint32
	NumChannels   uint16
	BitsPerSample uint16
	DataSize      uint32
}

// Duration returns the playback length in seconds described by the header.
func (h Header) Duration() float64 {
	bytesPerSecond := float64(h.SampleRate) * float64(h.NumChannels) * float64(h.BitsPerSample) / 8
	if bytesPerSecond == 0 {
		return 0
	}
	return float64(h.DataSize) / bytesPerSecond
}

// Reader reads 16-bit PCM WAV data from a file or any seekable source.
type Reader struct {
	src    io.ReadSeeker
	closer io.Closer
	header Header
}

// NewReader opens a WAV file and parses its header. The read position is
// left at the start of the audio data.
func NewReader(filename string) (*Reader, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open WAV file: %w", err)
	}

	reader := &Reader{src: file, closer: file}
	if err := reader.readHeader(); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to read WAV header: %w", err)
	}

	return reader, nil
}

// NewReaderFrom parses WAV data from an in-memory or streaming source,
// e.g. a synthesis API response held in a bytes.Reader.
func NewReaderFrom(src io.ReadSeeker) (*Reader, error) {
	reader := &Reader{src: src}
	if err := reader.readHeader(); err != nil {
		return nil, fmt.Errorf("failed to read WAV header: %w", err)
	}
	return reader, nil
}

// Header returns the WAV file header information
func (r *Reader) Header() Header {
	return r.header
}

// ReadAll reads the whole data chunk as interleaved int16 samples.
func (r *Reader) ReadAll() ([]int16, error) {
	raw := make([]byte, r.header.DataSize)
	if _, err := io.ReadFull(r.src, raw); err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			// Tolerate a data chunk shorter than its declared size.
			raw = raw[:len(raw)-len(raw)%2]
		} else {
			return nil, fmt.Errorf("failed to read audio data: %w", err)
		}
	}

	samples := make([]int16, len(raw)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(raw[i*2 : i*2+2]))
	}
	return samples, nil
}

// ReadMono reads the whole data chunk and downmixes it to a single channel
// by averaging across channels.
func (r *Reader) ReadMono() ([]int16, error) {
	samples, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	ch := int(r.header.NumChannels)
	if ch <= 1 {
		return samples, nil
	}

	mono := make([]int16, len(samples)/ch)
	for i := range mono {
		var sum int32
		for c := 0; c < ch; c++ {
			sum += int32(samples[i*ch+c])
		}
		mono[i] = int16(sum / int32(ch))
	}
	return mono, nil
}

// Close closes the underlying file, if any.
func (r *Reader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

// readHeader reads and validates the WAV file header
func (r *Reader) readHeader() error {
	var riffHeader [12]byte
	if _, err := io.ReadFull(r.src, riffHeader[:]); err != nil {
		return fmt.Errorf("failed to read RIFF header: %w", err)
	}

	if string(riffHeader[0:4]) != "RIFF" {
		return fmt.Errorf("not a valid RIFF file")
	}

	if string(riffHeader[8:12]) != "WAVE" {
		return fmt.Errorf("not a valid WAVE file")
	}

	r.header.ChunkSize = binary.LittleEndian.Uint32(riffHeader[4:8])

	if err := r.readFmtChunk(); err != nil {
		return err
	}

	if err := r.readDataChunk(); err != nil {
		return err
	}

	if r.header.BitsPerSample != 16 {
		return fmt.Errorf("only 16-bit samples are supported, got %d-bit", r.header.BitsPerSample)
	}

	if r.header.NumChannels == 0 {
		return fmt.Errorf("header declares zero channels")
	}

	if r.header.SampleRate == 0 {
		return fmt.Errorf("header declares zero sample rate")
	}

	return nil
}

// readFmtChunk reads the format chunk
func (r *Reader) readFmtChunk() error {
	for {
		var chunkHeader [8]byte
		if _, err := io.ReadFull(r.src, chunkHeader[:]); err != nil {
			return fmt.Errorf("failed to read chunk header: %w", err)
		}

		chunkID := string(chunkHeader[0:4])
		chunkSize := binary.LittleEndian.Uint32(chunkHeader[4:8])

		if chunkID == "fmt " {
			if chunkSize < 16 {
				return fmt.Errorf("fmt chunk too small: %d bytes", chunkSize)
			}

			var fmtData [16]byte
			if _, err := io.ReadFull(r.src, fmtData[:]); err != nil {
				return fmt.Errorf("failed to read fmt data: %w", err)
			}

			audioFormat := binary.LittleEndian.Uint16(fmtData[0:2])
			if audioFormat != 1 {
				return fmt.Errorf("only PCM format is supported, got format %d", audioFormat)
			}

			r.header.NumChannels = binary.LittleEndian.Uint16(fmtData[2:4])
			r.header.SampleRate = binary.LittleEndian.Uint32(fmtData[4:8])
			r.header.BitsPerSample = binary.LittleEndian.Uint16(fmtData[14:16])

			// Skip any remaining fmt data
			if chunkSize > 16 {
				if _, err := r.src.Seek(int64(chunkSize-16), io.SeekCurrent); err != nil {
					return fmt.Errorf("failed to skip fmt data: %w", err)
				}
			}

			return nil
		}

		// Skip unknown chunk
		if _, err := r.src.Seek(int64(chunkSize), io.SeekCurrent); err != nil {
			return fmt.Errorf("failed to skip chunk: %w", err)
		}
	}
}

// readDataChunk finds the data chunk and positions the file pointer at the start of audio data
func (r *Reader) readDataChunk() error {
	for {
		var chunkHeader [8]byte
		if _, err := io.ReadFull(r.src, chunkHeader[:]); err != nil {
			return fmt.Errorf("failed to read chunk header: %w", err)
		}

		chunkID := string(chunkHeader[0:4])
		chunkSize := binary.LittleEndian.Uint32(chunkHeader[4:8])

		if chunkID == "data" {
			r.header.DataSize = chunkSize
			// File pointer is now at the start of audio data
			return nil
		}

		// Skip unknown chunk
		if _, err := r.src.Seek(int64(chunkSize), io.SeekCurrent); err != nil {
			return fmt.Errorf("failed to skip chunk: %w", err)
		}
	}
}
