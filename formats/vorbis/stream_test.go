// SPDX-License-Identifier: EPL-2.0

package vorbis_test

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	"github.com/SaurusXI/ogg"

	"github.com/ik5/scdtool/audio"
	"github.com/ik5/scdtool/formats/vorbis"
	"github.com/ik5/scdtool/internal/audiotest"
)

func TestProbe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		channels   int
		sampleRate int
		frames     uint64
		audioPages int
	}{
		{"mono short", 1, 22050, 100, 1},
		{"stereo", 2, 44100, 88200, 87},
		{"exact pages", 2, 48000, 4 * audiotest.OggPageFrames, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := audiotest.OggStream(tt.channels, tt.sampleRate, tt.frames, "TITLE=probe", "LoopStart=0")

			st, err := vorbis.Probe(data)
			if err != nil {
				t.Fatalf("Probe() error = %v", err)
			}

			if st.Channels != tt.channels || st.SampleRate != tt.sampleRate {
				t.Errorf("Probe() = %d ch %d Hz, want %d ch %d Hz", st.Channels, st.SampleRate, tt.channels, tt.sampleRate)
			}
			if st.Samples != tt.frames {
				t.Errorf("Samples = %d, want %d", st.Samples, tt.frames)
			}
			if st.Vendor != "scdtool test" {
				t.Errorf("Vendor = %q", st.Vendor)
			}
			if !slices.Equal(st.Comments, []string{"TITLE=probe", "LoopStart=0"}) {
				t.Errorf("Comments = %q", st.Comments)
			}

			// two header pages precede the audio
			if st.HeaderEnd != st.Pages[1].End() {
				t.Errorf("HeaderEnd = %d, want %d", st.HeaderEnd, st.Pages[1].End())
			}
			if got := len(st.AudioPages()); got != tt.audioPages {
				t.Errorf("AudioPages() = %d pages, want %d", got, tt.audioPages)
			}
		})
	}
}

func TestProbe_VorbisFile(t *testing.T) {
	t.Parallel()

	st, err := vorbis.Probe(audiotest.VorbisMono())
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}

	if st.Channels != audiotest.VorbisMonoChannels || st.SampleRate != audiotest.VorbisMonoRate {
		t.Errorf("Probe() = %d ch %d Hz, want %d ch %d Hz",
			st.Channels, st.SampleRate, audiotest.VorbisMonoChannels, audiotest.VorbisMonoRate)
	}
	if st.Samples != audiotest.VorbisMonoFrames {
		t.Errorf("Samples = %d, want %d", st.Samples, audiotest.VorbisMonoFrames)
	}
	if st.HeaderEnd != audiotest.VorbisMonoHeaderSize {
		t.Errorf("HeaderEnd = %d, want %d", st.HeaderEnd, audiotest.VorbisMonoHeaderSize)
	}
	if st.Vendor == "" {
		t.Error("Vendor is empty")
	}
	if got := len(st.AudioPages()); got != 1 {
		t.Errorf("AudioPages() = %d pages, want 1", got)
	}
}

func TestProbe_Errors(t *testing.T) {
	t.Parallel()

	ident := audiotest.VorbisIdentification(2, 44100)
	comments := audiotest.VorbisComments("x")

	page := func(bos bool, packets ...[]byte) []byte {
		var buf bytes.Buffer
		enc := ogg.NewEncoder(3, &buf)
		encode := enc.Encode
		if bos {
			encode = enc.EncodeBOS
		}
		if err := encode(0, packets); err != nil {
			t.Fatal(err)
		}
		return buf.Bytes()
	}

	setup := append([]byte{5}, "vorbis"...)

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"not ogg", []byte("definitely not an ogg stream"), vorbis.ErrBadPage},
		{"no start flag", page(false, ident, comments, setup), vorbis.ErrBadPage},
		{"headers only partly present", page(true, ident), vorbis.ErrNotVorbis},
		{"wrong first packet", page(true, comments, ident, setup), vorbis.ErrNotVorbis},
		{"audio shares header page", page(true, ident, comments, setup, []byte{0}), vorbis.ErrNotVorbis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := vorbis.Probe(tt.data)
			if !errors.Is(err, tt.want) {
				t.Errorf("Probe() error = %v, want %v", err, tt.want)
			}
			if !errors.Is(err, audio.ErrUnsupportedFormat) {
				t.Errorf("Probe() error = %v, want it to wrap audio.ErrUnsupportedFormat", err)
			}
		})
	}
}
