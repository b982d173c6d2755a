// SPDX-License-Identifier: EPL-2.0

// Command scdextract writes one audio entry of an SCD file out as a WAV or
// Ogg file.
//
// Usage:
//
//	scdextract -i <scd|A::B> -o <out.wav|out.ogg> [-e index] [-m]
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/scdtool"
	"github.com/ik5/scdtool/audio"
	"github.com/ik5/scdtool/formats/scd"
	"github.com/ik5/scdtool/formats/vorbis"
	"github.com/ik5/scdtool/formats/wav"
	"github.com/ik5/scdtool/internal/config"
	"github.com/ik5/scdtool/internal/sqpack"
	"github.com/ik5/scdtool/utils"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
	}
}

func run(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("scdextract", flag.ContinueOnError)
	fs.SetOutput(stderr)

	in := fs.String("i", "", "scd file, or A::B to read B from the game installation at A")
	out := fs.String("o", "", "output file; .ogg keeps an ogg entry as is, anything else is written as 16-bit wav")
	index := fs.Uint("e", 0, "entry index")
	mono := fs.Bool("m", false, "downmix to mono")
	configPath := fs.String("config", "", "YAML config file (default $"+config.EnvConfig+")")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" || *out == "" {
		fs.Usage()
		return errors.New("-i and -o are required")
	}

	cfg, err := config.Resolve(*configPath)
	if err != nil {
		return err
	}

	data, err := sqpack.LoadTemplate(*in, cfg.Installations.Overrides())
	if err != nil {
		return err
	}

	r, err := scd.Parse(data)
	if err != nil {
		return err
	}

	entry, err := r.ReadEntry(int(*index))
	if err != nil {
		return err
	}

	ogg, pcm, err := extract(entry, strings.EqualFold(filepath.Ext(*out), ".ogg"), *mono)
	if err != nil {
		return err
	}

	if ogg != nil {
		err = scdtool.WriteFile(*out, ogg)
	} else {
		err = scdtool.WriteSeekable(*out, func(ws io.WriteSeeker) error {
			return wav.Encode(ws, pcm)
		})
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(stderr, "Wrote %s entry %d to %s\n", entry.Header.Format, *index, *out)

	return nil
}

// decoders maps the entry formats that can be played back to a decoder of
// the stream OggStream returns or WriteWAV16 builds from a PCM entry.
var decoders = map[scd.EntryFormat]audio.Decoder{
	scd.FormatPCM: wav.Decoder{},
	scd.FormatOgg: vorbis.Decoder{},
}

// extract returns either the Ogg stream to write as is or the 16-bit
// samples to write as a WAV file.
func extract(entry scd.Entry, wantOgg, mono bool) (ogg []byte, pcm audio.Info, err error) {
	dec, ok := decoders[entry.Header.Format]
	if !ok {
		return nil, audio.Info{}, fmt.Errorf("%w: %s entry", audio.ErrUnsupportedFormat, entry.Header.Format)
	}

	var stream []byte
	switch entry.Header.Format {
	case scd.FormatOgg:
		s, err := entry.OggStream()
		if err != nil {
			return nil, audio.Info{}, err
		}
		if wantOgg && !mono {
			return s, audio.Info{}, nil
		}
		stream = s

	case scd.FormatPCM:
		if wantOgg {
			return nil, audio.Info{}, errors.New("pcm entries can only be written as wav")
		}
		info := entryInfo(entry)
		if err := info.Validate(); err != nil {
			return nil, audio.Info{}, err
		}
		if !mono {
			return nil, info, nil
		}
		var buf bytes.Buffer
		if err := wav.WriteWAV16(&buf, info.SampleRate, info.Channels, info.Int16s()); err != nil {
			return nil, audio.Info{}, err
		}
		stream = buf.Bytes()
	}

	if wantOgg {
		return nil, audio.Info{}, errors.New("a downmixed ogg entry can only be written as wav")
	}

	src, err := dec.Decode(bytes.NewReader(stream))
	if err != nil {
		return nil, audio.Info{}, err
	}
	defer src.Close()

	var s audio.Source = src
	if mono {
		s = audio.NewMonoMixer(src)
	}

	pcm16, err := readInt16(s)
	if err != nil {
		return nil, audio.Info{}, err
	}

	return nil, audio.NewPCM16Info(s.Channels(), s.SampleRate(), pcm16), nil
}

func entryInfo(entry scd.Entry) audio.Info {
	return audio.Info{
		Channels:   int(entry.Header.ChannelCount),
		SampleRate: int(entry.Header.SamplingRate),
		Format:     audio.FormatPCM16,
		Data:       entry.Data,
	}
}

func readInt16(src audio.Source) ([]int16, error) {
	var pcm16 []int16

	size := max(src.BufSize(), 4096)
	buf := make([]float32, size-size%src.Channels())
	for {
		n, err := src.ReadSamples(buf)
		for i := range n {
			pcm16 = append(pcm16, utils.Float32ToInt16(buf[i]))
		}
		if err == io.EOF {
			return pcm16, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
