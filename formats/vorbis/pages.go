// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"fmt"
	"io"
	"slices"

	"github.com/SaurusXI/ogg"
)

// NoGranule marks a page on which no packet ends.
const NoGranule = -1

var capturePattern = []byte("OggS")

// Page is one Ogg page located inside a byte slice.
type Page struct {
	ogg.Page

	// Offset and Size locate the whole page, header included.
	Offset int
	Size   int
}

// End returns the offset of the first byte after the page.
func (p Page) End() int { return p.Offset + p.Size }

// Continued reports whether the first packet of the page continues the last
// packet of the page before it.
func (p Page) Continued() bool { return p.Type&ogg.COP != 0 }

// countingReader tracks how far the page decoder has read, which is where
// the page it just returned ends.
type countingReader struct {
	r io.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}

// ScanPages splits data into Ogg pages. The decoder verifies every page
// checksum; bytes that are not part of a page are rejected.
func ScanPages(data []byte) ([]Page, error) {
	cr := &countingReader{r: bytes.NewReader(data)}
	dec := ogg.NewDecoder(cr)

	var pages []Page
	for cr.n < len(data) {
		start := cr.n

		page, _, err := dec.Decode()
		if err != nil {
			return nil, fmt.Errorf("%w: page at %d: %w", ErrBadPage, start, err)
		}

		// the decoder resynchronises silently, so check nothing was skipped
		if !bytes.HasPrefix(data[start:], capturePattern) {
			return nil, fmt.Errorf("%w: bad capture pattern at %d", ErrBadPage, start)
		}

		// packets may point into the decoder's buffer
		packets := make([][]byte, len(page.Packets))
		for i, p := range page.Packets {
			packets[i] = slices.Clone(p)
		}
		page.Packets = packets

		pages = append(pages, Page{Page: page, Offset: start, Size: cr.n - start})
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: no pages", ErrBadPage)
	}

	return pages, nil
}
