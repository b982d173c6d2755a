// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/SaurusXI/ogg"
)

const (
	packetIdentification = 1
	packetComment        = 3
	packetSetup          = 5
	headerPackets        = 3
)

// Stream describes a Vorbis stream without decoding its audio.
type Stream struct {
	Channels   int
	SampleRate int
	// Samples is the number of frames, taken from the last granule position.
	Samples  uint64
	Vendor   string
	Comments []string

	// HeaderEnd is the offset of the first audio page; everything before it
	// is the three header packets.
	HeaderEnd int
	Pages     []Page
}

// AudioPages returns the pages after the header packets.
func (s Stream) AudioPages() []Page {
	for i, p := range s.Pages {
		if p.Offset >= s.HeaderEnd {
			return s.Pages[i:]
		}
	}
	return nil
}

// Probe reads the headers and page layout of an Ogg Vorbis stream.
func Probe(data []byte) (Stream, error) {
	pages, err := ScanPages(data)
	if err != nil {
		return Stream{}, err
	}

	if pages[0].Type&ogg.BOS == 0 {
		return Stream{}, fmt.Errorf("%w: first page lacks the start flag", ErrBadPage)
	}

	serial := pages[0].Serial
	var (
		packets [][]byte
		st      Stream
	)

	for i, p := range pages {
		if p.Serial != serial {
			return Stream{}, fmt.Errorf("%w: multiplexed streams are not supported", ErrNotVorbis)
		}

		if st.HeaderEnd == 0 {
			for j, pk := range p.Packets {
				if j == 0 && p.Continued() && len(packets) > 0 {
					last := len(packets) - 1
					packets[last] = append(packets[last], pk...)
					continue
				}
				packets = append(packets, pk)
			}

			if len(packets) > headerPackets {
				return Stream{}, fmt.Errorf("%w: audio data shares a page with the headers", ErrNotVorbis)
			}

			// the setup packet may still continue on the next page
			more := i+1 < len(pages) && pages[i+1].Continued()
			if len(packets) == headerPackets && !more {
				st.HeaderEnd = p.End()
			}
			continue
		}

		if p.Granule != NoGranule {
			st.Samples = uint64(p.Granule)
		}
	}

	if st.HeaderEnd == 0 {
		return Stream{}, fmt.Errorf("%w: missing header packets", ErrNotVorbis)
	}

	if err := st.parseIdentification(packets[0]); err != nil {
		return Stream{}, err
	}
	if err := st.parseComments(packets[1]); err != nil {
		return Stream{}, err
	}
	if !isHeader(packets[2], packetSetup) {
		return Stream{}, fmt.Errorf("%w: missing setup header", ErrNotVorbis)
	}

	st.Pages = pages

	return st, nil
}

func isHeader(p []byte, kind byte) bool {
	return len(p) >= 7 && p[0] == kind && bytes.Equal(p[1:7], []byte("vorbis"))
}

func (s *Stream) parseIdentification(p []byte) error {
	if !isHeader(p, packetIdentification) || len(p) < 30 {
		return fmt.Errorf("%w: bad identification header", ErrNotVorbis)
	}

	s.Channels = int(p[11])
	s.SampleRate = int(binary.LittleEndian.Uint32(p[12:16]))

	if s.Channels == 0 || s.SampleRate == 0 {
		return fmt.Errorf("%w: %d channels at %d Hz", ErrNotVorbis, s.Channels, s.SampleRate)
	}

	return nil
}

func (s *Stream) parseComments(p []byte) error {
	if !isHeader(p, packetComment) {
		return fmt.Errorf("%w: bad comment header", ErrNotVorbis)
	}

	r := p[7:]
	next := func() (string, bool) {
		if len(r) < 4 {
			return "", false
		}
		n := binary.LittleEndian.Uint32(r)
		if uint64(len(r)-4) < uint64(n) {
			return "", false
		}
		v := string(r[4 : 4+n])
		r = r[4+n:]
		return v, true
	}

	vendor, ok := next()
	if !ok || len(r) < 4 {
		return fmt.Errorf("%w: truncated comment header", ErrNotVorbis)
	}
	s.Vendor = vendor

	count := binary.LittleEndian.Uint32(r)
	r = r[4:]
	for range count {
		c, ok := next()
		if !ok {
			return fmt.Errorf("%w: truncated comment header", ErrNotVorbis)
		}
		s.Comments = append(s.Comments, c)
	}

	return nil
}
