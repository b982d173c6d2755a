// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/scdtool/audio"
)

func TestWriteHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		h          Header
		format     uint16
		blockAlign uint16
		byteRate   uint32
	}{
		{"pcm16 stereo", Header{SampleRate: 44100, Channels: 2, BitsPerSample: 16, DataSize: 400}, 1, 4, 176400},
		{"float mono", Header{SampleRate: 48000, Channels: 1, BitsPerSample: 32, Float: true, DataSize: 16}, 3, 4, 192000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := new(bytes.Buffer)
			if err := WriteHeader(buf, tt.h); err != nil {
				t.Fatalf("WriteHeader() error = %v", err)
			}

			b := buf.Bytes()
			if len(b) != headerSize {
				t.Fatalf("header length = %d, want %d", len(b), headerSize)
			}
			if string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" || string(b[36:40]) != "data" {
				t.Errorf("missing RIFF/WAVE/data markers: %q", b)
			}
			if got := binary.LittleEndian.Uint32(b[4:8]); got != 36+tt.h.DataSize {
				t.Errorf("riff size = %d, want %d", got, 36+tt.h.DataSize)
			}
			if got := binary.LittleEndian.Uint16(b[20:22]); got != tt.format {
				t.Errorf("format tag = %d, want %d", got, tt.format)
			}
			if got := binary.LittleEndian.Uint32(b[28:32]); got != tt.byteRate {
				t.Errorf("byte rate = %d, want %d", got, tt.byteRate)
			}
			if got := binary.LittleEndian.Uint16(b[32:34]); got != tt.blockAlign {
				t.Errorf("block align = %d, want %d", got, tt.blockAlign)
			}
			if got := binary.LittleEndian.Uint32(b[40:44]); got != tt.h.DataSize {
				t.Errorf("data size = %d, want %d", got, tt.h.DataSize)
			}
		})
	}
}

func TestWriteHeader_InvalidLayout(t *testing.T) {
	t.Parallel()

	tests := []Header{
		{SampleRate: 44100, Channels: 0, BitsPerSample: 16},
		{SampleRate: 0, Channels: 1, BitsPerSample: 16},
		{SampleRate: 44100, Channels: 1, BitsPerSample: 12},
	}

	for _, h := range tests {
		err := WriteHeader(new(bytes.Buffer), h)
		if !errors.Is(err, ErrUnsupportedWavLayout) {
			t.Errorf("WriteHeader(%+v) error = %v, want ErrUnsupportedWavLayout", h, err)
		}
	}
}

func TestWriteWAV16_RoundTrip(t *testing.T) {
	t.Parallel()

	samples := make([]int16, writeChunkLimit*2+6)
	for i := range samples {
		samples[i] = int16(i*37 - 5000)
	}

	buf := new(bytes.Buffer)
	if err := WriteWAV16(buf, 32000, 2, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	if buf.Len() != headerSize+len(samples)*2 {
		t.Fatalf("file size = %d, want %d", buf.Len(), headerSize+len(samples)*2)
	}

	info, err := DecodePCM(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("DecodePCM() error = %v", err)
	}

	got := info.Int16s()
	for i := range samples {
		if got[i] != samples[i] {
			t.Fatalf("sample %d = %d, want %d", i, got[i], samples[i])
		}
	}
}

func TestWriteWAV16_PartialFrame(t *testing.T) {
	t.Parallel()

	err := WriteWAV16(new(bytes.Buffer), 8000, 2, []int16{1, 2, 3})
	if !errors.Is(err, ErrUnsupportedWavLayout) {
		t.Errorf("WriteWAV16() error = %v, want ErrUnsupportedWavLayout", err)
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	samples := []int16{10, -10, 20, -20, 30, -30}
	info := audio.NewPCM16Info(2, 44100, samples)

	f, err := os.Create(filepath.Join(t.TempDir(), "out.wav"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := Encode(f, info); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if _, err := f.Seek(0, 0); err != nil {
		t.Fatal(err)
	}

	got, err := DecodePCM(f)
	if err != nil {
		t.Fatalf("DecodePCM() error = %v", err)
	}
	if got.Channels != 2 || got.SampleRate != 44100 {
		t.Errorf("layout = %d ch %d Hz, want 2 ch 44100 Hz", got.Channels, got.SampleRate)
	}
	if !bytes.Equal(got.Data, info.Data) {
		t.Errorf("Data = %v, want %v", got.Data, info.Data)
	}
}

func TestEncode_RejectsFloat(t *testing.T) {
	t.Parallel()

	info := audio.NewFloatInfo(1, 8000, []float32{0.5})

	f, err := os.Create(filepath.Join(t.TempDir(), "out.wav"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := Encode(f, info); !errors.Is(err, ErrOnlyPCM16bitSupported) {
		t.Errorf("Encode() error = %v, want ErrOnlyPCM16bitSupported", err)
	}
}

func BenchmarkWriteWAV16(b *testing.B) {
	samples := make([]int16, 44100*2)
	buf := new(bytes.Buffer)

	b.ReportAllocs()
	for b.Loop() {
		buf.Reset()
		WriteWAV16(buf, 44100, 2, samples)
	}
}
