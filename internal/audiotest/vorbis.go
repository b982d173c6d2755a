// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	_ "embed"
)

// Layout of VorbisMono.
const (
	VorbisMonoChannels   = 1
	VorbisMonoRate       = 44100
	VorbisMonoFrames     = 44100
	VorbisMonoHeaderSize = 3932
)

// VorbisMonoFirstSample is the first decoded sample of VorbisMono as 16-bit
// PCM, give or take one step of decoder rounding.
const VorbisMonoFirstSample = 189

// testdata/mono44k.ogg is test.ogg from github.com/jfreymuth/oggvorbis (MIT).
//
//go:embed testdata/mono44k.ogg
var vorbisMono []byte

// VorbisMono returns a copy of a real, decodable Ogg Vorbis file: one
// second of mono audio at 44.1 kHz, three pages with the headers ending at
// VorbisMonoHeaderSize.
func VorbisMono() []byte { return bytes.Clone(vorbisMono) }
