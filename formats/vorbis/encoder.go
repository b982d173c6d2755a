// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/ik5/scdtool/audio"
	"github.com/ik5/scdtool/formats/wav"
)

const (
	// DefaultEncoderPath is looked up in PATH when Encoder.Path is empty.
	DefaultEncoderPath = "oggenc"

	// BlockFrames is the number of frames handed to the encoder per block.
	BlockFrames = 4096
)

// ProgressFunc is called after each block with the number of blocks
// written so far and the total. Returning false aborts the encode.
type ProgressFunc func(block, total int) bool

// EncodeOptions controls a single encode.
type EncodeOptions struct {
	// Quality in [0, 1]; values outside are clamped.
	Quality float64
	Loop    audio.Loop
	Looping bool
}

// Encoder produces Ogg Vorbis by running an external oggenc process, feeding
// it a float WAV stream on stdin and collecting the Ogg stream on stdout.
type Encoder struct {
	Path      string
	ExtraArgs []string
	// Env is appended to the current environment of the child process.
	Env    []string
	Logger *slog.Logger
}

// Args returns the command line passed to the encoder.
func (e Encoder) Args(opts EncodeOptions) []string {
	q := max(0, min(1, opts.Quality))
	if math.IsNaN(q) {
		q = 1
	}

	// oggenc's -q runs 0..10; two decimals is finer than it distinguishes
	args := []string{"-Q", "-q", strconv.FormatFloat(math.Round(q*1000)/100, 'f', -1, 64)}

	if opts.Looping {
		args = append(args,
			"-c", "LoopStart="+strconv.FormatUint(opts.Loop.Begin, 10),
			"-c", "LoopEnd="+strconv.FormatUint(opts.Loop.End, 10),
		)
	}

	args = append(args, e.ExtraArgs...)

	// stdin in, stdout out
	return append(args, "-")
}

func (e Encoder) Encode(ctx context.Context, info audio.Info, opts EncodeOptions, progress ProgressFunc) ([]byte, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}
	if info.Format != audio.FormatFloat32 {
		return nil, fmt.Errorf("%w: encoder needs float samples, got %s", audio.ErrUnsupportedFormat, info.Format)
	}
	if uint64(len(info.Data)) > math.MaxUint32-36 {
		return nil, fmt.Errorf("%w: %d bytes of samples do not fit a WAV stream", audio.ErrUnsupportedFormat, len(info.Data))
	}

	logger := e.Logger
	if logger == nil {
		logger = slog.Default()
	}

	path := e.Path
	if path == "" {
		path = DefaultEncoderPath
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	args := e.Args(opts)
	cmd := exec.CommandContext(ctx, path, args...)
	if len(e.Env) > 0 {
		cmd.Env = append(os.Environ(), e.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoder, err)
	}

	logger.Debug("starting ogg encoder", "path", path, "args", args)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: starting %s: %w", ErrEncoder, path, err)
	}

	feedErr := feed(ctx, stdin, info, progress)
	closeErr := stdin.Close()

	if feedErr != nil {
		cancel()
		_ = cmd.Wait()
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("%w (%s)", feedErr, strings.TrimSpace(stderr.String()))
		}
		return nil, feedErr
	}

	if err := cmd.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w: %s", ErrEncoder, err, strings.TrimSpace(stderr.String()))
	}
	if closeErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoder, closeErr)
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("%w: no output", ErrEncoder)
	}

	logger.Debug("ogg encoder finished", "bytes", stdout.Len())

	return stdout.Bytes(), nil
}

// feed writes a float WAV header followed by the samples in blocks.
func feed(ctx context.Context, w io.Writer, info audio.Info, progress ProgressFunc) error {
	err := wav.WriteHeader(w, wav.Header{
		SampleRate:    info.SampleRate,
		Channels:      info.Channels,
		BitsPerSample: 32,
		Float:         true,
		DataSize:      uint32(len(info.Data)),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoder, err)
	}

	blockSize := BlockFrames * info.FrameSize()
	total := (len(info.Data) + blockSize - 1) / blockSize

	for block := range total {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", audio.ErrEncodingCancelled, err)
		}

		start := block * blockSize
		end := min(start+blockSize, len(info.Data))

		if _, err := w.Write(info.Data[start:end]); err != nil {
			return fmt.Errorf("%w: writing block %d: %w", ErrEncoder, block, err)
		}

		if progress != nil && !progress(block+1, total) {
			return audio.ErrEncodingCancelled
		}
	}

	return nil
}
