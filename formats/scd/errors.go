// SPDX-License-Identifier: EPL-2.0

package scd

import (
	"errors"
	"fmt"

	"github.com/ik5/scdtool/audio"
)

var (
	ErrNotSCD          = fmt.Errorf("%w: not an SCD file", audio.ErrUnsupportedFormat)
	ErrTruncated       = errors.New("scd data truncated")
	ErrIndexOutOfRange = errors.New("entry index out of range")
	ErrUnknownTable    = errors.New("unknown table")
	ErrTooLarge        = errors.New("scd section too large")
)

var ErrTableMismatch = errors.New("tables 1 and 4 must have the same number of items")
