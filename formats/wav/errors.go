package wav

import (
	"errors"
	"fmt"

	"github.com/ik5/scdtool/audio"
)

var (
	ErrNotWavFile            = fmt.Errorf("%w: not a WAV file", audio.ErrUnsupportedFormat)
	ErrUnsupportedWavLayout  = errors.New("unsupported WAV layout")
	ErrOnlyPCM16bitSupported = fmt.Errorf("%w: only PCM 16-bit supported", audio.ErrUnsupportedFormat)
	ErrUnsupportedWavChunks  = errors.New("unsupported WAV chunks")
)
