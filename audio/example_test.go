// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"errors"
	"fmt"

	"github.com/ik5/scdtool/audio"
	"github.com/ik5/scdtool/internal/audiotest"
)

// Example_monoMixer demonstrates converting stereo to mono.
func Example_monoMixer() {
	// Create a stereo audio source
	source := audiotest.NewSineSource(16000, 2, 16000, 440.0) // 1 second stereo

	mono := audio.NewMonoMixer(source)

	fmt.Printf("Input channels: %d\n", source.Channels())
	fmt.Printf("Output channels: %d\n", mono.Channels())
	fmt.Printf("Sample rate: %d Hz\n", mono.SampleRate())

	buf := make([]float32, 100)
	n, _ := mono.ReadSamples(buf)

	fmt.Printf("Read %d mono samples\n", n)
	// Output:
	// Input channels: 2
	// Output channels: 1
	// Sample rate: 16000 Hz
	// Read 100 mono samples
}

// Example_readAll shows how a streaming source becomes a decoded Info.
func Example_readAll() {
	source := audiotest.NewConstantSource(44100, 2, 44100, 0.25)

	info, err := audio.ReadAll(source)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Printf("%d frames, %d channels, %s\n", info.Frames(), info.Channels, info.Format)
	// Output:
	// 44100 frames, 2 channels, float32
}

// Example_transform converts 16-bit samples to float, downmixes them and
// quantizes them back.
func Example_transform() {
	pcm := audio.NewPCM16Info(2, 8000, []int16{1000, 3000, -500, -1500})

	f, _ := audio.ToFloat(pcm)
	mono, _ := audio.Downmix(f)
	back, _ := audio.ToPCM16(mono)

	fmt.Println(back.Channels, back.Int16s())
	// Output:
	// 1 [2000 -1000]
}

// Example_loopPoints resolves user supplied loop boundaries.
func Example_loopPoints() {
	begin, _ := audio.ParseLoopPoint("1000")
	end, _ := audio.ParseLoopPoint("2.0")

	loop, ok, _ := audio.ResolveLoop(begin, end, 44100, 441000)
	fmt.Println(ok, loop.Begin, loop.End)

	loop, ok, _ = audio.ResolveLoop(begin, audio.LoopPoint{}, 44100, 441000)
	fmt.Println(ok, loop.Begin, loop.End)

	_, err := audio.ParseLoopPoint("abc")
	fmt.Println(errors.Is(err, audio.ErrArgument))
	// Output:
	// true 1000 88200
	// true 1000 441000
	// true
}

// Example_classify sniffs an input by its magic bytes.
func Example_classify() {
	kind, _ := audio.Classify([]byte("OggS\x00\x02"))
	fmt.Println(kind)

	_, err := audio.Classify([]byte("ID3\x04"))
	fmt.Println(errors.Is(err, audio.ErrUnsupportedFormat))
	// Output:
	// ogg
	// true
}
