// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"

	"github.com/SaurusXI/ogg"

	"github.com/ik5/scdtool/formats/wav"
)

// OggPageFrames is the number of frames each synthetic audio page covers.
const OggPageFrames = 1024

const oggSerial = 0x53434454 // "SCDT"

// Ramp16 returns frames*channels interleaved samples where every channel
// follows a distinct, easily checked pattern.
func Ramp16(frames, channels int) []int16 {
	out := make([]int16, frames*channels)
	for f := range frames {
		for c := range channels {
			out[f*channels+c] = int16((f*7 + c*1000) % 30000)
		}
	}
	return out
}

// WAV16 returns a complete 16-bit PCM WAV file.
func WAV16(sampleRate, channels int, samples []int16) []byte {
	buf := new(bytes.Buffer)
	if err := wav.WriteWAV16(buf, sampleRate, channels, samples); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// VorbisIdentification returns a Vorbis identification header packet.
func VorbisIdentification(channels, sampleRate int) []byte {
	p := make([]byte, 30)
	p[0] = 1
	copy(p[1:7], "vorbis")
	p[11] = byte(channels)
	binary.LittleEndian.PutUint32(p[12:16], uint32(sampleRate))
	// nominal bitrate, then block sizes 256 and 2048
	binary.LittleEndian.PutUint32(p[20:24], 128000)
	p[28] = 0xB8
	p[29] = 1
	return p
}

// VorbisComments returns a Vorbis comment header packet.
func VorbisComments(vendor string, comments ...string) []byte {
	buf := new(bytes.Buffer)
	buf.WriteByte(3)
	buf.WriteString("vorbis")
	binary.Write(buf, binary.LittleEndian, uint32(len(vendor)))
	buf.WriteString(vendor)
	binary.Write(buf, binary.LittleEndian, uint32(len(comments)))
	for _, c := range comments {
		binary.Write(buf, binary.LittleEndian, uint32(len(c)))
		buf.WriteString(c)
	}
	buf.WriteByte(1)
	return buf.Bytes()
}

// OggStream returns a well framed Ogg stream with valid Vorbis header
// packets followed by one audio page per OggPageFrames frames. The audio
// packets are filler, so the stream can be probed but not decoded; use
// VorbisMono for a decodable one.
func OggStream(channels, sampleRate int, frames uint64, comments ...string) []byte {
	setup := append([]byte{5}, "vorbis"...)
	setup = append(setup, bytes.Repeat([]byte{0xA5}, 300)...)

	var buf bytes.Buffer
	enc := ogg.NewEncoder(oggSerial, &buf)

	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}

	must(enc.EncodeBOS(0, [][]byte{VorbisIdentification(channels, sampleRate)}))
	must(enc.Encode(0, [][]byte{VorbisComments("scdtool test", comments...), setup}))

	var granule uint64
	for n := 0; granule < frames || n == 0; n++ {
		granule = min(granule+OggPageFrames, frames)
		packets := [][]byte{bytes.Repeat([]byte{byte(n)}, 40+n%17)}

		if granule == frames {
			must(enc.EncodeEOS(int64(granule), packets))
			break
		}
		must(enc.Encode(int64(granule), packets))
	}

	return buf.Bytes()
}
