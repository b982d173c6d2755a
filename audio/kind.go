// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"bytes"
	"fmt"
)

// Kind is the container family of an input stream, decided by its magic.
type Kind int

const (
	KindUnknown Kind = iota
	KindWave
	KindOgg
)

var (
	magicRIFF = []byte("RIFF")
	magicOggS = []byte("OggS")
)

func (k Kind) String() string {
	switch k {
	case KindWave:
		return "wave"
	case KindOgg:
		return "ogg"
	}
	return "unknown"
}

// Classify inspects the first four bytes of data.
func Classify(data []byte) (Kind, error) {
	if len(data) >= 4 {
		switch {
		case bytes.Equal(data[:4], magicRIFF):
			return KindWave, nil
		case bytes.Equal(data[:4], magicOggS):
			return KindOgg, nil
		}
	}

	head := data
	if len(head) > 4 {
		head = head[:4]
	}
	return KindUnknown, fmt.Errorf("%w: magic %q is neither RIFF nor OggS", ErrUnsupportedFormat, head)
}
