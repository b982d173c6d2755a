// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"

	"github.com/ik5/scdtool/audio"
)

// Generator is an audio.Source whose samples come from a function of the
// frame and channel index.
type Generator struct {
	rate     int
	channels int
	frames   int
	pos      int
	fn       func(frame, channel int) float32
}

var _ audio.Source = (*Generator)(nil)

// NewGenerator returns a source of frames frames computed by fn.
func NewGenerator(rate, channels, frames int, fn func(frame, channel int) float32) *Generator {
	return &Generator{rate: rate, channels: channels, frames: frames, fn: fn}
}

// NewSineSource plays the same sine on every channel.
func NewSineSource(rate, channels, frames int, freq float64) *Generator {
	step := 2 * math.Pi * freq / float64(rate)
	return NewGenerator(rate, channels, frames, func(f, _ int) float32 {
		return float32(math.Sin(step * float64(f)))
	})
}

// NewConstantSource holds v on every channel.
func NewConstantSource(rate, channels, frames int, v float32) *Generator {
	return NewGenerator(rate, channels, frames, func(int, int) float32 { return v })
}

// NewRampSource produces the float form of Ramp16.
func NewRampSource(rate, channels, frames int) *Generator {
	return NewGenerator(rate, channels, frames, func(f, c int) float32 {
		return float32((f*7+c*1000)%30000) / 32768
	})
}

func (g *Generator) SampleRate() int { return g.rate }
func (g *Generator) Channels() int   { return g.channels }
func (g *Generator) BufSize() int    { return 1024 * g.channels }
func (g *Generator) Close() error    { return nil }

// Remaining is the number of frames not read yet.
func (g *Generator) Remaining() int { return g.frames - g.pos }

// Reset rewinds to the first frame.
func (g *Generator) Reset() { g.pos = 0 }

func (g *Generator) ReadSamples(dst []float32) (int, error) {
	if g.pos >= g.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/g.channels, g.frames-g.pos)
	for f := range n {
		for c := range g.channels {
			dst[f*g.channels+c] = g.fn(g.pos+f, c)
		}
	}
	g.pos += n

	if g.pos >= g.frames {
		return n * g.channels, io.EOF
	}
	return n * g.channels, nil
}
