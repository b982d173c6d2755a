// SPDX-License-Identifier: EPL-2.0

package scdtool

import (
	"context"
	"fmt"

	"github.com/ik5/scdtool/audio"
	"github.com/ik5/scdtool/formats/scd"
	"github.com/ik5/scdtool/formats/vorbis"
)

// BuildEntry encodes src into a container entry according to opts. The
// Reserved field is taken from tpl, the header of the entry being replaced.
func BuildEntry(ctx context.Context, src Source, opts Options, tpl scd.EntryHeader) (scd.Entry, error) {
	var (
		entry scd.Entry
		err   error
	)

	switch opts.Codec {
	case CodecCopy:
		entry, err = copyEntry(src, opts)
	case CodecPCM:
		entry, err = pcmEntry(src, opts)
	case CodecOgg:
		entry, err = oggEntry(ctx, src, opts)
	default:
		err = fmt.Errorf("%w: %s", ErrInvalidCodec, opts.Codec)
	}

	if err != nil {
		return scd.Entry{}, err
	}

	entry.Header.Reserved = tpl.Reserved

	return entry, nil
}

func copyEntry(src Source, opts Options) (scd.Entry, error) {
	logger := opts.logger()

	if opts.Mono && src.Info.Channels > 1 {
		logger.Warn("mono downmix is ignored when copying", "channels", src.Info.Channels)
	}

	switch src.Kind {
	case audio.KindWave:
		warnLoopIgnored(opts, "pcm")

		// DecodePCM output is the file's own sample bytes
		info, err := audio.ToPCM16(src.Info)
		if err != nil {
			return scd.Entry{}, err
		}
		return scd.NewPCMEntry(info)

	case audio.KindOgg:
		loop, looping, err := audio.ResolveLoop(opts.LoopBegin, opts.LoopEnd, src.Info.SampleRate, uint64(src.Info.Frames()))
		if err != nil {
			return scd.Entry{}, err
		}
		return scd.NewOggEntry(src.Raw, loop, looping)
	}

	return scd.Entry{}, fmt.Errorf("%w: cannot copy %s input", ErrUnsupportedFormat, src.Kind)
}

func pcmEntry(src Source, opts Options) (scd.Entry, error) {
	info, err := transform(src.Info, opts)
	if err != nil {
		return scd.Entry{}, err
	}

	warnLoopIgnored(opts, "pcm")

	pcm, err := audio.ToPCM16(info)
	if err != nil {
		return scd.Entry{}, err
	}

	return scd.NewPCMEntry(pcm)
}

func oggEntry(ctx context.Context, src Source, opts Options) (scd.Entry, error) {
	logger := opts.logger()

	info, err := transform(src.Info, opts)
	if err != nil {
		return scd.Entry{}, err
	}

	loop, looping, err := audio.ResolveLoop(opts.LoopBegin, opts.LoopEnd, info.SampleRate, uint64(info.Frames()))
	if err != nil {
		return scd.Entry{}, err
	}

	quality := ClampQuality(opts.Quality)
	if quality != opts.Quality {
		logger.Warn("ogg quality clamped", "requested", opts.Quality, "used", quality)
	}

	logger.Info("encoding ogg",
		"channels", info.Channels,
		"sample_rate", info.SampleRate,
		"frames", info.Frames(),
		"quality", quality,
		"looping", looping,
		"loop_begin", loop.Begin,
		"loop_end", loop.End,
	)

	ogg, err := opts.encoder().Encode(ctx, info, vorbis.EncodeOptions{
		Quality: quality,
		Loop:    loop,
		Looping: looping,
	}, opts.Progress)
	if err != nil {
		return scd.Entry{}, fmt.Errorf("encoding ogg: %w", err)
	}

	return scd.NewOggEntry(ogg, loop, looping)
}

// transform converts to float and applies the requested downmix.
func transform(info audio.Info, opts Options) (audio.Info, error) {
	f, err := audio.ToFloat(info)
	if err != nil {
		return audio.Info{}, err
	}

	if !opts.Mono || f.Channels == 1 {
		return f, nil
	}

	opts.logger().Debug("downmixing to mono", "channels", f.Channels)

	return audio.Downmix(f)
}

func warnLoopIgnored(opts Options, target string) {
	if opts.LoopBegin.IsSet() || opts.LoopEnd.IsSet() {
		opts.logger().Warn("loop points are ignored for this codec",
			"codec", target,
			"loop_begin", opts.LoopBegin.String(),
			"loop_end", opts.LoopEnd.String(),
		)
	}
}
