// SPDX-License-Identifier: EPL-2.0

package scdtool

import (
	"context"
	"log/slog"
	"math"

	"github.com/ik5/scdtool/audio"
	"github.com/ik5/scdtool/formats/vorbis"
)

// OggEncoder turns float samples into an Ogg Vorbis stream. vorbis.Encoder
// is the implementation used outside tests.
type OggEncoder interface {
	Encode(ctx context.Context, info audio.Info, opts vorbis.EncodeOptions, progress vorbis.ProgressFunc) ([]byte, error)
}

// Options controls a replacement run.
type Options struct {
	Codec Codec
	// Quality is the Ogg quality in [0, 1]; other values are clamped.
	Quality float64
	// Mono downmixes to one channel before encoding. Ignored by CodecCopy.
	Mono bool

	// LoopBegin and LoopEnd only apply to Ogg entries.
	LoopBegin audio.LoopPoint
	LoopEnd   audio.LoopPoint

	EntryIndex int

	// Encoder defaults to vorbis.Encoder{} running oggenc from PATH.
	Encoder  OggEncoder
	Progress vorbis.ProgressFunc
	Logger   *slog.Logger
}

// DefaultOptions returns the options of a plain copy at full quality.
func DefaultOptions() Options {
	return Options{Codec: CodecCopy, Quality: 1}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o Options) encoder() OggEncoder {
	if o.Encoder != nil {
		return o.Encoder
	}
	return vorbis.Encoder{Logger: o.Logger}
}

// ClampQuality limits q to [0, 1]. NaN maps to 1.
func ClampQuality(q float64) float64 {
	if math.IsNaN(q) {
		return 1
	}
	return max(0, min(1, q))
}
