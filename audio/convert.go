// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ik5/scdtool/utils"
)

// ToFloat returns info with samples converted to float32. Float input is
// returned unchanged.
func ToFloat(info Info) (Info, error) {
	switch info.Format {
	case FormatFloat32:
		return info, nil
	case FormatPCM16:
	default:
		return Info{}, fmt.Errorf("%w: sample format %s", ErrUnsupportedFormat, info.Format)
	}

	samples := len(info.Data) / 2
	out := make([]byte, samples*4)
	for i := range samples {
		s := int16(binary.LittleEndian.Uint16(info.Data[i*2:]))
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(utils.Int16ToFloat32(s)))
	}

	return Info{
		Channels:   info.Channels,
		SampleRate: info.SampleRate,
		Format:     FormatFloat32,
		Data:       out,
	}, nil
}

// ToPCM16 returns info with samples quantized to 16 bits. Out of range
// values are clipped. PCM16 input is returned unchanged.
func ToPCM16(info Info) (Info, error) {
	switch info.Format {
	case FormatPCM16:
		return info, nil
	case FormatFloat32:
	default:
		return Info{}, fmt.Errorf("%w: sample format %s", ErrUnsupportedFormat, info.Format)
	}

	samples := len(info.Data) / 4
	out := make([]byte, samples*2)
	for i := range samples {
		f := math.Float32frombits(binary.LittleEndian.Uint32(info.Data[i*4:]))
		binary.LittleEndian.PutUint16(out[i*2:], uint16(utils.Float32ToInt16(f)))
	}

	return Info{
		Channels:   info.Channels,
		SampleRate: info.SampleRate,
		Format:     FormatPCM16,
		Data:       out,
	}, nil
}
