// SPDX-License-Identifier: EPL-2.0

// Command scdtool replaces one audio entry of an SCD sound container with a
// WAV or Ogg Vorbis file, keeping every other entry and table of the
// template as it was.
//
// Usage:
//
//	scdtool -t <template> -o <output> [-i <input>] [options]
//
// Run with -h for the full option list.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/ik5/scdtool"
	"github.com/ik5/scdtool/formats/vorbis"
	"github.com/ik5/scdtool/internal/config"
	"github.com/ik5/scdtool/internal/sqpack"
)

// exitFailure is -1 as seen by the parent process.
const exitFailure = 255

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, filepath.Base(os.Args[0]), os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, name string, args []string, stderr io.Writer) int {
	o, cfg, err := setup(name, args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, "Error parsing arguments. Use -h to show help.")
		fmt.Fprintln(stderr, err)
		return exitFailure
	}

	if err := process(ctx, o, cfg, stderr); err != nil {
		fmt.Fprintln(stderr, "Error processing data.")
		fmt.Fprintln(stderr, err)
		return exitFailure
	}

	fmt.Fprintln(stderr, "Done!")
	return 0
}

func setup(name string, args []string, stderr io.Writer) (*cliOptions, *config.Config, error) {
	o, err := parseArgs(name, args, stderr)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.Resolve(o.configPath)
	if err != nil {
		return nil, nil, err
	}

	if err := o.applyConfig(cfg); err != nil {
		return nil, nil, err
	}

	if o.input == "" && o.codec != scdtool.CodecCopy {
		return nil, nil, scdtool.ErrInputRequired
	}

	return o, cfg, nil
}

func process(ctx context.Context, o *cliOptions, cfg *config.Config, stderr io.Writer) error {
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: config.LogLevel(o.logLevel).Slog(),
	}))

	for _, w := range config.Warnings(cfg) {
		logger.Warn(w.Msg, "field", w.Field, "value", w.Value)
	}

	template, err := sqpack.LoadTemplate(o.template, cfg.Installations.Overrides())
	if err != nil {
		return fmt.Errorf("%w: template %s: %w", scdtool.ErrIO, o.template, err)
	}

	var input []byte
	if o.input != "" {
		if input, err = scdtool.ReadFile(o.input); err != nil {
			return err
		}
	}

	progress := &progressLine{w: stderr}

	opts := scdtool.Options{
		Codec:      o.codec,
		Quality:    o.quality,
		Mono:       o.mono,
		LoopBegin:  o.loopBegin,
		LoopEnd:    o.loopEnd,
		EntryIndex: int(o.entry),
		Encoder: vorbis.Encoder{
			Path:      o.oggenc,
			ExtraArgs: cfg.Oggenc.ExtraArgs,
			Logger:    logger,
		},
		Progress: progress.report,
		Logger:   logger,
	}

	out, err := scdtool.Replace(ctx, template, input, opts)
	progress.finish()
	if err != nil {
		return err
	}

	if err := scdtool.WriteFile(o.output, out); err != nil {
		return err
	}

	logger.Debug("output written", "path", o.output, "bytes", len(out))

	return nil
}

// progressLine redraws "Encoding: block i out of n" on one line.
type progressLine struct {
	w       io.Writer
	started bool
}

func (p *progressLine) report(block, total int) bool {
	p.started = true
	fmt.Fprintf(p.w, "\rEncoding: block %d out of %d", block, total)
	return true
}

func (p *progressLine) finish() {
	if p.started {
		fmt.Fprintln(p.w)
	}
}
