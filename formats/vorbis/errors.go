// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"

	"github.com/ik5/scdtool/audio"
)

var (
	ErrBadPage   = fmt.Errorf("%w: malformed Ogg page", audio.ErrUnsupportedFormat)
	ErrNotVorbis = fmt.Errorf("%w: not a Vorbis stream", audio.ErrUnsupportedFormat)
	ErrEncoder   = errors.New("ogg encoder failed")
)
