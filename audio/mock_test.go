package audio

import "io"

// frameSource plays back fixed interleaved samples. A positive maxRead caps
// the values returned per call so readers see short reads.
type frameSource struct {
	rate     int
	channels int
	data     []float32
	pos      int
	maxRead  int
	closed   bool
}

// framesOf builds n frames where sample (f, c) is fn(f, c).
func framesOf(rate, channels, n int, fn func(f, c int) float32) *frameSource {
	data := make([]float32, n*channels)
	for f := range n {
		for c := range channels {
			data[f*channels+c] = fn(f, c)
		}
	}
	return &frameSource{rate: rate, channels: channels, data: data}
}

// repeatFrame builds n copies of frame.
func repeatFrame(rate, n int, frame ...float32) *frameSource {
	return framesOf(rate, len(frame), n, func(_, c int) float32 { return frame[c] })
}

func (s *frameSource) SampleRate() int { return s.rate }
func (s *frameSource) Channels() int   { return s.channels }
func (s *frameSource) BufSize() int    { return 1024 * s.channels }

func (s *frameSource) Close() error {
	s.closed = true
	return nil
}

func (s *frameSource) rewind() { s.pos = 0 }

func (s *frameSource) ReadSamples(dst []float32) (int, error) {
	if s.pos >= len(s.data) {
		return 0, io.EOF
	}

	want := len(dst) - len(dst)%s.channels
	if s.maxRead > 0 {
		want = min(want, s.maxRead-s.maxRead%s.channels)
	}

	n := copy(dst[:want], s.data[s.pos:])
	s.pos += n

	if s.pos >= len(s.data) {
		return n, io.EOF
	}
	return n, nil
}
