// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// LoopKind tells which variant a LoopPoint holds.
type LoopKind int

const (
	LoopUnset LoopKind = iota
	LoopSamples
	LoopSeconds
)

// LoopPoint is a loop boundary as given by the user: a sample index, a time
// offset in seconds, or nothing at all. The zero value is unset.
//
// LoopPoint implements flag.Value.
type LoopPoint struct {
	Kind    LoopKind
	Samples uint64
	Seconds float64
}

// AtSample returns a LoopPoint at sample n.
func AtSample(n uint64) LoopPoint { return LoopPoint{Kind: LoopSamples, Samples: n} }

// AtSeconds returns a LoopPoint at t seconds.
func AtSeconds(t float64) LoopPoint { return LoopPoint{Kind: LoopSeconds, Seconds: t} }

// ParseLoopPoint reads an unsigned integer as a sample index and anything
// else that parses completely as a float as seconds. Go digit separators
// are not accepted.
func ParseLoopPoint(s string) (LoopPoint, error) {
	if strings.Contains(s, "_") {
		return LoopPoint{}, fmt.Errorf("%w: %q", ErrInvalidLoopPoint, s)
	}

	if n, err := strconv.ParseUint(s, 0, 64); err == nil {
		return AtSample(n), nil
	}

	t, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return LoopPoint{}, fmt.Errorf("%w: %q", ErrInvalidLoopPoint, s)
	}
	if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
		return LoopPoint{}, fmt.Errorf("%w: %q is not a non-negative time", ErrInvalidLoopPoint, s)
	}

	return AtSeconds(t), nil
}

// IsSet reports whether p holds a value.
func (p LoopPoint) IsSet() bool { return p.Kind != LoopUnset }

// SampleAt converts p to an absolute sample index at the given rate.
// The boolean is false for an unset point.
func (p LoopPoint) SampleAt(sampleRate int) (uint64, bool) {
	switch p.Kind {
	case LoopSamples:
		return p.Samples, true
	case LoopSeconds:
		return uint64(math.Round(p.Seconds * float64(sampleRate))), true
	}
	return 0, false
}

func (p LoopPoint) String() string {
	switch p.Kind {
	case LoopSamples:
		return strconv.FormatUint(p.Samples, 10)
	case LoopSeconds:
		return strconv.FormatFloat(p.Seconds, 'f', -1, 64) + "s"
	}
	return ""
}

// Set parses s into p.
func (p *LoopPoint) Set(s string) error {
	v, err := ParseLoopPoint(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Loop is a resolved loop region in samples, End exclusive.
type Loop struct {
	Begin uint64
	End   uint64
}

// ResolveLoop turns begin and end into a sample region for a stream of total
// frames at sampleRate. A set begin with an unset end loops to total; a set
// end with an unset begin loops from 0. The boolean is false when neither
// point is set.
func ResolveLoop(begin, end LoopPoint, sampleRate int, total uint64) (Loop, bool, error) {
	if !begin.IsSet() && !end.IsSet() {
		return Loop{}, false, nil
	}
	if sampleRate <= 0 {
		return Loop{}, false, ErrInvalidSampleRate
	}

	b, ok := begin.SampleAt(sampleRate)
	if !ok {
		b = 0
	}
	e, ok := end.SampleAt(sampleRate)
	if !ok {
		e = total
	}

	if e > total {
		return Loop{}, false, fmt.Errorf("%w: loop end %d is past the last sample (%d)", ErrInvalidLoopPoint, e, total)
	}
	if b >= e {
		return Loop{}, false, fmt.Errorf("%w: loop begin %d is not before loop end %d", ErrInvalidLoopPoint, b, e)
	}

	return Loop{Begin: b, End: e}, true, nil
}
