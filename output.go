// SPDX-License-Identifier: EPL-2.0

package scdtool

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

const outputPerm = 0o644

// WriteFile writes data to path all at once: it creates missing parent
// directories and lets atomic.WriteFile write a temporary file next to path
// and rename it into place, so path is either left untouched or holds the
// complete data.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	_, statErr := os.Stat(path)
	created := errors.Is(statErr, fs.ErrNotExist)

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	// an existing file keeps its mode, a new one would be left at 0600
	if created {
		if err := os.Chmod(path, outputPerm); err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
	}

	return nil
}

// WriteSeekable is WriteFile for writers that need to seek, such as the
// go-audio WAV encoder. write fills a temporary file in the destination
// directory, which then replaces path. Errors returned by write are passed
// through unchanged.
func WriteSeekable(path string, write func(io.WriteSeeker) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	if err = write(f); err != nil {
		return err
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	if err = os.Chmod(f.Name(), outputPerm); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	if err = atomic.ReplaceFile(f.Name(), path); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	return nil
}

// ReadFile reads a whole file, wrapping failures in ErrIO.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return data, nil
}
