// SPDX-License-Identifier: EPL-2.0

package scdtool

import (
	"bytes"
	"fmt"

	"github.com/ik5/scdtool/audio"
	"github.com/ik5/scdtool/formats/vorbis"
	"github.com/ik5/scdtool/formats/wav"
)

// Source is a decoded input file.
type Source struct {
	Kind audio.Kind
	// Info is 16-bit PCM for wave input and float for Ogg input.
	Info audio.Info
	// Raw is the input as read, used when copying without re-encoding.
	Raw []byte
}

// Ingest classifies data by its magic bytes and decodes it.
func Ingest(data []byte) (Source, error) {
	kind, err := audio.Classify(data)
	if err != nil {
		return Source{}, err
	}

	var info audio.Info

	switch kind {
	case audio.KindWave:
		info, err = wav.DecodePCM(bytes.NewReader(data))
	case audio.KindOgg:
		info, err = vorbis.DecodeAll(bytes.NewReader(data))
	default:
		err = fmt.Errorf("%w: %s input", ErrUnsupportedFormat, kind)
	}

	if err != nil {
		return Source{}, fmt.Errorf("decoding %s input: %w", kind, err)
	}

	return Source{Kind: kind, Info: info, Raw: data}, nil
}
