// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/ik5/scdtool/utils"
)

// InfoSource streams a decoded Info as a Source so it can feed the
// streaming processors.
type InfoSource struct {
	info Info
	pos  int // next sample index
}

func NewInfoSource(info Info) *InfoSource {
	return &InfoSource{info: info}
}

func (s *InfoSource) SampleRate() int { return s.info.SampleRate }
func (s *InfoSource) Channels() int   { return s.info.Channels }
func (s *InfoSource) BufSize() int    { return 4096 * s.info.Channels }
func (s *InfoSource) Close() error    { return nil }

func (s *InfoSource) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.info.Channels != 0 {
		return 0, ErrInvalidDstSize
	}

	width := s.info.Format.Width()
	total := len(s.info.Data) / width
	if s.pos >= total {
		return 0, io.EOF
	}

	n := min(len(dst), total-s.pos)
	for i := range n {
		off := (s.pos + i) * width
		switch s.info.Format {
		case FormatFloat32:
			dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(s.info.Data[off:]))
		case FormatPCM16:
			dst[i] = utils.Int16ToFloat32(int16(binary.LittleEndian.Uint16(s.info.Data[off:])))
		}
	}
	s.pos += n

	if s.pos >= total {
		return n, io.EOF
	}
	return n, nil
}
