package audio

import (
	"encoding/binary"
	"fmt"
	"math"
)

// MonoMixer averages the channels of src frame by frame.
type MonoMixer struct {
	src Source
	tmp []float32
}

func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{
		src: src,
		tmp: make([]float32, 4096),
	}
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }
func (m *MonoMixer) BufSize() int    { return m.src.BufSize() }
func (m *MonoMixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *MonoMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if m.src.Channels() == 1 {
		// Pass-through: read mono directly
		return m.src.ReadSamples(dst)
	}

	channels := m.src.Channels()
	maxFrames := len(dst)
	samplesNeeded := maxFrames * channels

	// Grow tmp buffer if needed (but don't shrink to avoid thrashing)
	if cap(m.tmp) < samplesNeeded {
		newCap := max(samplesNeeded, 8192)
		m.tmp = make([]float32, newCap)
	}
	m.tmp = m.tmp[:samplesNeeded]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}
	frames := n / channels

	// Sums are kept in float64 so every output is the correctly rounded mean.
	switch channels {
	case 2:
		for f := range frames {
			idx := f << 1
			dst[f] = float32((float64(m.tmp[idx]) + float64(m.tmp[idx+1])) * 0.5)
		}
	case 4:
		for f := range frames {
			idx := f << 2
			sum := float64(m.tmp[idx]) + float64(m.tmp[idx+1]) + float64(m.tmp[idx+2]) + float64(m.tmp[idx+3])
			dst[f] = float32(sum * 0.25)
		}
	default:
		div := float64(channels)
		for f := range frames {
			sum := 0.0
			baseIdx := f * channels
			for c := range channels {
				sum += float64(m.tmp[baseIdx+c])
			}
			dst[f] = float32(sum / div)
		}
	}

	return frames, err
}

// Downmix averages every frame of info into a single channel. Mono input is
// returned unchanged. Float data goes through a MonoMixer; PCM16 data is
// averaged in integer space and rounded half away from zero.
func Downmix(info Info) (Info, error) {
	if err := info.Validate(); err != nil {
		return Info{}, err
	}
	if info.Channels == 1 {
		return info, nil
	}

	switch info.Format {
	case FormatFloat32:
		src := NewInfoSource(info)
		mono, err := ReadAll(NewMonoMixer(src))
		if err != nil {
			return Info{}, err
		}
		return mono, nil

	case FormatPCM16:
		frames := info.Frames()
		out := make([]byte, frames*2)
		div := float64(info.Channels)
		for f := range frames {
			var sum int64
			base := f * info.FrameSize()
			for c := range info.Channels {
				sum += int64(int16(binary.LittleEndian.Uint16(info.Data[base+c*2:])))
			}
			binary.LittleEndian.PutUint16(out[f*2:], uint16(int16(math.Round(float64(sum)/div))))
		}

		return Info{
			Channels:   1,
			SampleRate: info.SampleRate,
			Format:     FormatPCM16,
			Data:       out,
		}, nil
	}

	return Info{}, fmt.Errorf("%w: sample format %s", ErrUnsupportedFormat, info.Format)
}
