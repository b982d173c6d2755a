// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"fmt"
	"math"
)

// SampleFormat tells how the bytes of an Info are laid out.
type SampleFormat int

const (
	FormatPCM16 SampleFormat = iota + 1
	FormatFloat32
)

// Width returns the size in bytes of a single sample.
func (f SampleFormat) Width() int {
	switch f {
	case FormatPCM16:
		return 2
	case FormatFloat32:
		return 4
	}
	return 0
}

func (f SampleFormat) String() string {
	switch f {
	case FormatPCM16:
		return "pcm16"
	case FormatFloat32:
		return "float32"
	}
	return fmt.Sprintf("SampleFormat(%d)", int(f))
}

// Info is a fully decoded stream. Data holds little-endian interleaved
// samples whose width is given by Format.
type Info struct {
	Channels   int
	SampleRate int
	Format     SampleFormat
	Data       []byte
}

// NewFloatInfo packs interleaved float samples into an Info.
func NewFloatInfo(channels, sampleRate int, samples []float32) Info {
	data := make([]byte, len(samples)*4)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(s))
	}

	return Info{
		Channels:   channels,
		SampleRate: sampleRate,
		Format:     FormatFloat32,
		Data:       data,
	}
}

// NewPCM16Info packs interleaved 16-bit samples into an Info.
func NewPCM16Info(channels, sampleRate int, samples []int16) Info {
	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(s))
	}

	return Info{
		Channels:   channels,
		SampleRate: sampleRate,
		Format:     FormatPCM16,
		Data:       data,
	}
}

// FrameSize is the byte size of one frame (one sample per channel).
func (i Info) FrameSize() int { return i.Channels * i.Format.Width() }

// Frames returns the number of complete frames held in Data.
func (i Info) Frames() int {
	fs := i.FrameSize()
	if fs == 0 {
		return 0
	}
	return len(i.Data) / fs
}

// Validate checks the channel count, rate and data alignment.
func (i Info) Validate() error {
	if i.Channels <= 0 {
		return ErrInvalidChannels
	}
	if i.SampleRate <= 0 {
		return ErrInvalidSampleRate
	}
	if i.Format.Width() == 0 {
		return fmt.Errorf("%w: sample format %s", ErrUnsupportedFormat, i.Format)
	}
	if len(i.Data)%i.FrameSize() != 0 {
		return fmt.Errorf("%w: %d bytes, frame size %d", ErrMisalignedData, len(i.Data), i.FrameSize())
	}
	return nil
}

// Float32s decodes Data as float samples. It returns nil for PCM16 data.
func (i Info) Float32s() []float32 {
	if i.Format != FormatFloat32 {
		return nil
	}

	out := make([]float32, len(i.Data)/4)
	for n := range out {
		out[n] = math.Float32frombits(binary.LittleEndian.Uint32(i.Data[n*4:]))
	}
	return out
}

// Int16s decodes Data as 16-bit samples. It returns nil for float data.
func (i Info) Int16s() []int16 {
	if i.Format != FormatPCM16 {
		return nil
	}

	out := make([]int16, len(i.Data)/2)
	for n := range out {
		out[n] = int16(binary.LittleEndian.Uint16(i.Data[n*2:]))
	}
	return out
}
