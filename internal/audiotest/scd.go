// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"

	"github.com/ik5/scdtool/audio"
	"github.com/ik5/scdtool/formats/scd"
)

// SampleTables returns four distinct auxiliary tables. Item sizes are
// deliberately not multiples of 16.
func SampleTables() map[scd.TableID]scd.Table {
	item := func(b byte, n int) []byte { return bytes.Repeat([]byte{b}, n) }

	return map[scd.TableID]scd.Table{
		scd.Table1: {item(0x11, 0x13), item(0x12, 0x40)},
		scd.Table2: {item(0x21, 0x25)},
		scd.Table4: {item(0x41, 0x31), item(0x42, 0x07)},
		scd.Table5: {item(0x51, 0x10), item(0x52, 0x21), item(0x53, 0x03)},
	}
}

// PCMEntry returns a PCM entry of the given layout with a Reserved value
// so tests can check it survives a rewrite.
func PCMEntry(reserved uint16, channels, sampleRate, frames int) scd.Entry {
	e, err := scd.NewPCMEntry(audio.NewPCM16Info(channels, sampleRate, Ramp16(frames, channels)))
	if err != nil {
		panic(err)
	}
	e.Header.Reserved = reserved
	return e
}

// SCDTemplate returns a complete SCD file with SampleTables and entries.
func SCDTemplate(entries ...scd.Entry) []byte {
	w := scd.NewWriter(scd.DefaultFileHeader)
	w.Header.Unknown36 = 0x0102

	for id, t := range SampleTables() {
		if err := w.SetTable(id, t); err != nil {
			panic(err)
		}
	}

	for i, e := range entries {
		if err := w.SetEntry(i, e); err != nil {
			panic(err)
		}
	}

	b, err := w.Bytes()
	if err != nil {
		panic(err)
	}

	return b
}
