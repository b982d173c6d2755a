// SPDX-License-Identifier: EPL-2.0

package scdtool

import (
	"fmt"
	"strings"
)

// Codec selects how the replacement entry is produced.
type Codec int

const (
	CodecCopy Codec = iota
	CodecPCM
	CodecOgg
)

func (c Codec) String() string {
	switch c {
	case CodecCopy:
		return "copy"
	case CodecPCM:
		return "pcm"
	case CodecOgg:
		return "ogg"
	}
	return fmt.Sprintf("Codec(%d)", int(c))
}

// ParseCodec accepts copy, pcm and ogg in any case.
func ParseCodec(s string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "copy":
		return CodecCopy, nil
	case "pcm":
		return CodecPCM, nil
	case "ogg":
		return CodecOgg, nil
	}
	return CodecCopy, fmt.Errorf("%w: %q (valid: copy, pcm, ogg)", ErrInvalidCodec, s)
}

// Set implements flag.Value.
func (c *Codec) Set(s string) error {
	v, err := ParseCodec(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}
