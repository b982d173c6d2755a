// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes 16-bit PCM WAV files.
//
// Decoding is done by github.com/go-audio/wav. Two entry points exist:
//
//   - Decoder streams samples as float32 through audio.Source, which is
//     what the transcoding path consumes.
//   - DecodePCM returns the whole data chunk as an audio.Info holding the
//     original little-endian bytes, so that copying a WAV into a container
//     is bit-exact.
//
// Only 16-bit integer PCM is accepted; anything else fails with
// ErrOnlyPCM16bitSupported or ErrNotWavFile, both of which wrap
// audio.ErrUnsupportedFormat.
//
// # Writing
//
// WriteHeader writes a canonical 44 byte header for either integer PCM or
// IEEE float data. It never seeks, so it can be written to a pipe ahead of
// the samples. WriteWAV16 writes a complete interleaved 16-bit file:
//
//	file, _ := os.Create("output.wav")
//	err := wav.WriteWAV16(file, 44100, 2, samples)
package wav
