// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrArgument is the parent of every error caused by a malformed user value.
	ErrArgument         = errors.New("invalid argument")
	ErrInvalidLoopPoint = fmt.Errorf("%w: invalid loop point value", ErrArgument)

	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrEncodingCancelled = errors.New("encoding cancelled")

	ErrInvalidChannels   = errors.New("channel count must be positive")
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	ErrMisalignedData    = errors.New("sample data is not a multiple of the frame size")
)
