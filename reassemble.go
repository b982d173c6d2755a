// SPDX-License-Identifier: EPL-2.0

package scdtool

import (
	"fmt"

	"github.com/ik5/scdtool/formats/scd"
)

// Reassemble returns a writer holding every table and entry of tpl, with
// entry k replaced by entry.
func Reassemble(tpl *scd.Reader, k int, entry scd.Entry) (*scd.Writer, error) {
	if k < 0 || k >= tpl.EntryCount() {
		return nil, fmt.Errorf("%w: index %d, template has %d entries", ErrIndexOutOfRange, k, tpl.EntryCount())
	}

	w := scd.NewWriter(tpl.Header())

	for _, id := range scd.Tables {
		t, err := tpl.ReadTable(id)
		if err != nil {
			return nil, err
		}
		if err := w.SetTable(id, t); err != nil {
			return nil, err
		}
	}

	for i := range tpl.EntryCount() {
		e := entry
		if i != k {
			var err error
			if e, err = tpl.ReadEntry(i); err != nil {
				return nil, err
			}
		}

		if err := w.SetEntry(i, e); err != nil {
			return nil, err
		}
	}

	return w, nil
}
