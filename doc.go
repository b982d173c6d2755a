// SPDX-License-Identifier: EPL-2.0

// Package scdtool replaces one audio track inside an SCD sound container.
//
// A run reads a template container and an input WAV or Ogg Vorbis file and
// produces a new container in which entry k carries the input audio and
// every other entry and table is copied from the template unchanged:
//
//	opts := scdtool.DefaultOptions()
//	opts.Codec = scdtool.CodecOgg
//	opts.Mono = true
//	opts.LoopBegin = audio.AtSample(0)
//	opts.LoopEnd = audio.AtSeconds(2)
//	opts.EntryIndex = 1
//
//	out, err := scdtool.Replace(ctx, template, input, opts)
//
// # Pipeline
//
// Ingest sniffs the input and decodes it once: wave files to 16-bit PCM,
// Ogg files to float. BuildEntry then follows the codec:
//
//   - CodecCopy keeps the input as it is. A wave input becomes a PCM entry
//     holding the original sample bytes; an Ogg input is wrapped without
//     re-encoding. Downmixing is ignored.
//   - CodecPCM converts to float, optionally downmixes to mono and
//     quantizes back to 16-bit PCM.
//   - CodecOgg converts to float, optionally downmixes, resolves the loop
//     points against the sampling rate and runs the OggEncoder.
//
// Loop points only apply to Ogg entries and are ignored with a warning
// otherwise. The unknown Reserved field of the template entry is always
// carried over to the replacement.
//
// Reassemble and Replace never touch the template bytes; the output is a
// fresh container.
//
// # Errors
//
// All errors wrap one of the sentinels in errors.go, so callers can use
// errors.Is against ErrArgument, ErrUnsupportedFormat, ErrIndexOutOfRange,
// ErrEncodingCancelled or ErrIO.
package scdtool
