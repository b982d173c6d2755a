// SPDX-License-Identifier: EPL-2.0

package scdtool

import (
	"context"
	"fmt"

	"github.com/ik5/scdtool/formats/scd"
)

// Replace runs the whole pipeline on in-memory files and returns the
// serialized container. A nil input is only accepted with CodecCopy, in
// which case the template entry itself is kept.
func Replace(ctx context.Context, template, input []byte, opts Options) ([]byte, error) {
	logger := opts.logger()

	tpl, err := scd.Parse(template)
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}

	// checked before any decoding or encoding work
	tplEntry, err := tpl.ReadEntry(opts.EntryIndex)
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}

	logger.Debug("template loaded",
		"entries", tpl.EntryCount(),
		"entry", opts.EntryIndex,
		"format", tplEntry.Header.Format.String(),
	)

	entry := tplEntry
	if input != nil {
		src, err := Ingest(input)
		if err != nil {
			return nil, err
		}

		logger.Info("input loaded",
			"kind", src.Kind.String(),
			"channels", src.Info.Channels,
			"sample_rate", src.Info.SampleRate,
			"frames", src.Info.Frames(),
			"codec", opts.Codec.String(),
		)

		if entry, err = BuildEntry(ctx, src, opts, tplEntry.Header); err != nil {
			return nil, err
		}
	} else if opts.Codec != CodecCopy {
		return nil, ErrInputRequired
	}

	w, err := Reassemble(tpl, opts.EntryIndex, entry)
	if err != nil {
		return nil, err
	}

	out, err := w.Bytes()
	if err != nil {
		return nil, fmt.Errorf("writing container: %w", err)
	}

	return out, nil
}
