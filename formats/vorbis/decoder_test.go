// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/scdtool/audio"
)

// mockOggVorbisReader simulates the oggvorbis.Reader for testing
type mockOggVorbisReader struct {
	sampleRate   int
	channels     int
	samples      []float32
	offset       int
	returnErrors bool
}

func (m *mockOggVorbisReader) SampleRate() int { return m.sampleRate }
func (m *mockOggVorbisReader) Channels() int   { return m.channels }

// Read mirrors oggvorbis: it fills whole frames and returns the value count.
func (m *mockOggVorbisReader) Read(buf []float32) (int, error) {
	if m.returnErrors {
		return 0, io.ErrUnexpectedEOF
	}

	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	n := min(len(buf)/m.channels*m.channels, len(m.samples)-m.offset)
	copy(buf, m.samples[m.offset:m.offset+n])
	m.offset += n

	return n, nil
}

func newMockSource(channels int, samples []float32) *source {
	return &source{
		dec:        &mockOggVorbisReader{sampleRate: 44100, channels: channels, samples: samples},
		sampleRate: 44100,
		channels:   channels,
		bufSize:    4096 * channels,
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"text", []byte("This is not Ogg Vorbis data")},
		{"riff", []byte("RIFF\x24\x00\x00\x00WAVEfmt ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, ErrNotVorbis) {
				t.Errorf("Decode() error = %v, want ErrNotVorbis", err)
			}

			_, err = DecodeAll(bytes.NewReader(tt.data))
			if !errors.Is(err, audio.ErrUnsupportedFormat) {
				t.Errorf("DecodeAll() error = %v, want audio.ErrUnsupportedFormat", err)
			}
		})
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		samples  []float32
		bufSize  int
	}{
		{"mono", 1, []float32{0.1, 0.2, 0.3, 0.4, 0.5}, 2},
		{"stereo", 2, []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3}, 4},
		{"six channels", 6, make([]float32, 6*50), 12},
		{"buffer larger than stream", 2, []float32{0.5, -0.5}, 4096},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := newMockSource(tt.channels, tt.samples)
			buf := make([]float32, tt.bufSize)
			var got []float32

			for {
				n, err := src.ReadSamples(buf)
				got = append(got, buf[:n]...)
				if n%tt.channels != 0 {
					t.Fatalf("ReadSamples() n = %d, not a whole number of frames", n)
				}
				if err == io.EOF {
					break
				}
				if err != nil {
					t.Fatalf("ReadSamples() error = %v", err)
				}
			}

			if len(got) != len(tt.samples) {
				t.Fatalf("read %d samples, want %d", len(got), len(tt.samples))
			}
			for i := range got {
				if got[i] != tt.samples[i] {
					t.Errorf("sample %d = %v, want %v", i, got[i], tt.samples[i])
				}
			}
		})
	}
}

func TestSource_ReadSamples_EmptyBuffer(t *testing.T) {
	t.Parallel()

	src := newMockSource(2, []float32{0.1, 0.2})

	n, err := src.ReadSamples(nil)
	if n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = (%d, %v), want (0, nil)", n, err)
	}
}

func TestSource_ReadSamples_Unaligned(t *testing.T) {
	t.Parallel()

	src := newMockSource(2, []float32{0.1, 0.2})

	_, err := src.ReadSamples(make([]float32, 3))
	if !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want audio.ErrInvalidDstSize", err)
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	src := &source{dec: &mockOggVorbisReader{channels: 1, returnErrors: true}, channels: 1}

	_, err := src.ReadSamples(make([]float32, 4))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestSource_ReadAll(t *testing.T) {
	t.Parallel()

	samples := make([]float32, 2*10000)
	for i := range samples {
		samples[i] = float32(i%200)/100 - 1
	}

	info, err := audio.ReadAll(newMockSource(2, samples))
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	if info.Frames() != 10000 || info.Channels != 2 || info.SampleRate != 44100 {
		t.Errorf("ReadAll() = %d frames %d ch %d Hz, want 10000 frames 2 ch 44100 Hz",
			info.Frames(), info.Channels, info.SampleRate)
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	samples := make([]float32, 2*44100)
	buf := make([]float32, 4096)

	b.ReportAllocs()
	for b.Loop() {
		src := newMockSource(2, samples)
		for {
			if _, err := src.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
