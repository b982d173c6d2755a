// SPDX-License-Identifier: EPL-2.0

// Package audio provides the sample level building blocks of scdtool.
//
// # Decoded Audio
//
// Info is a fully decoded stream: channel count, sampling rate and a byte
// buffer of interleaved little-endian samples. Format tells whether the
// buffer holds 16-bit signed PCM or 32-bit IEEE float:
//
//	pcm := audio.NewPCM16Info(2, 44100, samples)
//	f, err := audio.ToFloat(pcm)       // s / 32768
//	back, err := audio.ToPCM16(f)      // round(f * 32768), clipped
//
// # Channel Mixing
//
// Downmix averages every frame into one channel. The streaming MonoMixer does
// the same for any Source:
//
//	mono := audio.NewMonoMixer(source)
//	info, err := audio.ReadAll(mono)
//
// # Input Classification
//
// Classify looks at the first four bytes of an input: "RIFF" is a wave file,
// "OggS" is an Ogg stream, anything else fails with ErrUnsupportedFormat.
//
// # Loop Points
//
// A LoopPoint is either a sample index, a time in seconds or unset.
// ParseLoopPoint reads "1234" as samples and "5.00" as seconds. ResolveLoop
// turns a begin/end pair into absolute samples, defaulting a missing end to
// the stream length.
//
// # Errors
//
// ErrArgument is the parent of every error caused by a bad user value, such
// as ErrInvalidLoopPoint. ErrUnsupportedFormat and ErrEncodingCancelled are
// shared with the format packages.
package audio
