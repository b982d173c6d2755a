// SPDX-License-Identifier: EPL-2.0

// Package vorbis reads, inspects and produces Ogg Vorbis streams.
//
// Decoding uses github.com/jfreymuth/oggvorbis, either streaming through
// Decoder or all at once with DecodeAll.
//
// Probe walks the Ogg pages (ScanPages, built on the github.com/SaurusXI/ogg
// page decoder, which verifies checksums) and the three Vorbis header
// packets without decoding any audio. It reports the channel layout, the
// sample count from the last granule position, the comments, and where the
// audio pages start. Sound containers store the
// header packets and the audio pages separately, so this split is what the
// scd package builds on.
//
// # Encoding
//
// No pure Go Vorbis encoder exists, so Encoder runs oggenc as a child
// process. Samples are streamed to its stdin as a float WAV in blocks of
// BlockFrames frames, and a ProgressFunc is called after each block:
//
//	enc := vorbis.Encoder{}
//	ogg, err := enc.Encode(ctx, info, vorbis.EncodeOptions{Quality: 0.8},
//	    func(block, total int) bool {
//	        fmt.Fprintf(os.Stderr, "\rblock %d/%d", block, total)
//	        return true
//	    })
//
// Returning false from the callback, or cancelling ctx, kills the encoder
// and fails with audio.ErrEncodingCancelled. Loop points are written as
// LoopStart and LoopEnd comments.
package vorbis
