// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"

	"github.com/ik5/scdtool"
	"github.com/ik5/scdtool/audio"
	"github.com/ik5/scdtool/internal/config"
)

// cliOptions holds the parsed command line.
type cliOptions struct {
	template string
	input    string
	output   string

	codec     scdtool.Codec
	quality   float64
	mono      bool
	loopBegin audio.LoopPoint
	loopEnd   audio.LoopPoint
	entry     uint

	configPath string
	logLevel   string
	oggenc     string

	// set holds the names of flags given on the command line.
	set map[string]bool
}

func (o *cliOptions) given(names ...string) bool {
	for _, n := range names {
		if o.set[n] {
			return true
		}
	}
	return false
}

// applyConfig fills flags that were not given from cfg.
func (o *cliOptions) applyConfig(cfg *config.Config) error {
	if !o.given("c", "codec") && cfg.Defaults.Codec != "" {
		c, err := scdtool.ParseCodec(cfg.Defaults.Codec)
		if err != nil {
			return err
		}
		o.codec = c
	}

	if !o.given("oq", "ogg-quality") && cfg.Defaults.OggQuality != nil {
		o.quality = *cfg.Defaults.OggQuality
	}

	if !o.given("log-level") && cfg.LogLevel != "" {
		o.logLevel = string(cfg.LogLevel)
	}

	if !o.given("oggenc") && cfg.Oggenc.Path != "" {
		o.oggenc = cfg.Oggenc.Path
	}

	return nil
}

func parseArgs(name string, args []string, out io.Writer) (*cliOptions, error) {
	o := &cliOptions{quality: 1, logLevel: string(config.LogInfo)}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)

	for _, n := range []string{"t", "template"} {
		fs.StringVar(&o.template, n, "", `template scd file; as A::B the file B is read from the game installation at A (a "game" directory, or :global, :china or :korea to autodetect)`)
	}
	for _, n := range []string{"i", "input"} {
		fs.StringVar(&o.input, n, "", "input ogg or wav file")
	}
	for _, n := range []string{"o", "output"} {
		fs.StringVar(&o.output, n, "", "output scd file path, including the .scd extension")
	}
	for _, n := range []string{"c", "codec"} {
		fs.Var(&o.codec, n, "codec: copy, pcm or ogg")
	}
	for _, n := range []string{"oq", "ogg-quality"} {
		fs.Float64Var(&o.quality, n, 1, "ogg quality in [0, 1], if using the ogg codec")
	}
	for _, n := range []string{"m", "mono"} {
		fs.BoolVar(&o.mono, n, false, "downmix to mono before encoding")
	}
	for _, n := range []string{"e", "entry-index"} {
		fs.UintVar(&o.entry, n, 0, "index of the template entry to replace")
	}
	fs.Var(&o.loopBegin, "loop-begin", "loop begin point (integer=samples, float=seconds)")
	fs.Var(&o.loopEnd, "loop-end", "loop end point (integer=samples, float=seconds)")
	fs.StringVar(&o.configPath, "config", "", "YAML config file (default $"+config.EnvConfig+")")
	fs.StringVar(&o.logLevel, "log-level", o.logLevel, "log level: debug, info, warn or error")
	fs.StringVar(&o.oggenc, "oggenc", "", "oggenc binary (default $"+config.EnvOggenc+" or oggenc from PATH)")

	fs.Usage = func() {
		fmt.Fprintf(out, "Usage: %s -t <template> -o <output> [options]\n\n", name)
		fmt.Fprintf(out, "Replaces one audio entry of an SCD file.\n\n")
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nUsage examples:\n")
		fmt.Fprintf(out, "  %s -t \"C:\\Program Files (x86)\\SquareEnix\\FINAL FANTASY XIV - A Realm Reborn\\game::music/ex2/BGM_EX2_System_Title.scd\"\n", name)
		fmt.Fprintf(out, "    -i replacement.ogg -c ogg -oq 1.0 --loop-begin 1234 --loop-end 5.00 -o result.scd\n")
		fmt.Fprintf(out, "  %s -t :global::music/ffxiv/BGM_System_Title.scd -i title.wav -c pcm -m -o title.scd\n", name)
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	o.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })

	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %q", fs.Args())
	}

	var errs []error
	if o.template == "" {
		errs = append(errs, errors.New("-t/--template is required"))
	}
	if o.output == "" {
		errs = append(errs, errors.New("-o/--output is required"))
	}
	if !config.LogLevel(o.logLevel).IsValid() {
		errs = append(errs, fmt.Errorf("--log-level %q is invalid; valid values: debug, info, warn, error", o.logLevel))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	if abs, err := filepath.Abs(o.output); err == nil {
		o.output = abs
	}

	return o, nil
}
