// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/scdtool/audio"
)

const (
	headerSize      = 44
	formatTagPCM    = 1
	formatTagFloat  = 3
	writeChunkLimit = 8192 // samples per Write call
)

// Header describes the canonical 44 byte header of a PCM or float WAV file.
type Header struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
	Float         bool
	// DataSize is the length in bytes of the data chunk that follows.
	DataSize uint32
}

// WriteHeader writes a RIFF/WAVE header with a single fmt and data chunk.
// It never seeks, so the caller must know DataSize up front; this makes it
// usable on pipes.
func WriteHeader(w io.Writer, h Header) error {
	if h.Channels <= 0 || h.SampleRate <= 0 || h.BitsPerSample%8 != 0 || h.BitsPerSample == 0 {
		return fmt.Errorf("%w: %d ch, %d Hz, %d bits", ErrUnsupportedWavLayout, h.Channels, h.SampleRate, h.BitsPerSample)
	}
	if h.DataSize > math.MaxUint32-36 {
		return fmt.Errorf("%w: data chunk of %d bytes", ErrUnsupportedWavLayout, h.DataSize)
	}

	format := uint16(formatTagPCM)
	if h.Float {
		format = formatTagFloat
	}

	bytesPerSample := h.BitsPerSample / 8
	blockAlign := uint16(h.Channels * bytesPerSample)
	byteRate := uint32(h.SampleRate) * uint32(blockAlign)

	header := make([]byte, headerSize)

	// RIFF header (12 bytes)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+h.DataSize)
	copy(header[8:12], "WAVE")

	// fmt chunk (24 bytes)
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], format)
	binary.LittleEndian.PutUint16(header[22:24], uint16(h.Channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(h.SampleRate))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], uint16(h.BitsPerSample))

	// data chunk header (8 bytes)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], h.DataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// WriteWAV16 writes interleaved 16-bit PCM samples as a WAV file.
func WriteWAV16(w io.Writer, sampleRate, channels int, samples []int16) error {
	if channels > 0 && len(samples)%channels != 0 {
		return fmt.Errorf("%w: %d samples for %d channels", ErrUnsupportedWavLayout, len(samples), channels)
	}

	err := WriteHeader(w, Header{
		SampleRate:    sampleRate,
		Channels:      channels,
		BitsPerSample: 16,
		DataSize:      uint32(len(samples) * 2),
	})
	if err != nil {
		return err
	}

	if len(samples) == 0 {
		return nil
	}

	buf := make([]byte, min(len(samples), writeChunkLimit)*2)

	for i := 0; i < len(samples); i += writeChunkLimit {
		end := min(i+writeChunkLimit, len(samples))
		chunk := samples[i:end]
		buf = buf[:len(chunk)*2]

		for j, s := range chunk {
			binary.LittleEndian.PutUint16(buf[j*2:j*2+2], uint16(s))
		}

		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

// Encode writes a 16-bit PCM Info as a WAV file using the go-audio encoder,
// which patches the chunk sizes on Close and therefore needs a seekable
// destination.
func Encode(ws io.WriteSeeker, info audio.Info) error {
	if err := info.Validate(); err != nil {
		return err
	}
	if info.Format != audio.FormatPCM16 {
		return fmt.Errorf("%w: %s", ErrOnlyPCM16bitSupported, info.Format)
	}

	samples := info.Int16s()
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}

	enc := gowav.NewEncoder(ws, info.SampleRate, 16, info.Channels, formatTagPCM)

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: info.Channels, SampleRate: info.SampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("%w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
