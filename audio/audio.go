// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// ReadAll drains src and returns its samples as a float Info.
// The source is not closed.
func ReadAll(src Source) (Info, error) {
	channels := src.Channels()
	if channels <= 0 {
		return Info{}, ErrInvalidChannels
	}

	size := src.BufSize()
	if size < channels {
		size = 4096
	}
	size -= size % channels

	buf := make([]float32, size)
	var samples []float32

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			samples = append(samples, buf[:n]...)
		}

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return Info{}, fmt.Errorf("%w", err)
		}

		if n == 0 {
			break
		}
	}

	// Drop a trailing partial frame, if the source produced one.
	samples = samples[:len(samples)-len(samples)%channels]

	return NewFloatInfo(channels, src.SampleRate(), samples), nil
}
