// SPDX-License-Identifier: EPL-2.0

package scdtool

import (
	"errors"
	"fmt"

	"github.com/ik5/scdtool/audio"
	"github.com/ik5/scdtool/formats/scd"
)

var (
	ErrArgument          = audio.ErrArgument
	ErrInvalidLoopPoint  = audio.ErrInvalidLoopPoint
	ErrInvalidCodec      = fmt.Errorf("%w: invalid codec", audio.ErrArgument)
	ErrInputRequired     = fmt.Errorf("%w: an input file is required unless copying", audio.ErrArgument)
	ErrUnsupportedFormat = audio.ErrUnsupportedFormat
	ErrIndexOutOfRange   = scd.ErrIndexOutOfRange
	ErrEncodingCancelled = audio.ErrEncodingCancelled
	ErrIO                = errors.New("i/o error")
)
