// SPDX-License-Identifier: EPL-2.0

package scd

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Writer assembles a new SCD file from tables and entries.
type Writer struct {
	Header  FileHeader
	tables  map[TableID]Table
	entries []Entry
}

// NewWriter returns an empty writer using h for the file header fields.
func NewWriter(h FileHeader) *Writer {
	return &Writer{Header: h, tables: make(map[TableID]Table, len(Tables))}
}

// SetTable replaces one auxiliary table.
func (w *Writer) SetTable(id TableID, t Table) error {
	switch id {
	case Table1, Table2, Table4, Table5:
	default:
		return fmt.Errorf("%w: %d", ErrUnknownTable, id)
	}

	w.tables[id] = t.Clone()

	return nil
}

// SetEntry stores e at index i, padding with empty entries as needed.
func (w *Writer) SetEntry(i int, e Entry) error {
	if i < 0 || i > math.MaxUint16 {
		return fmt.Errorf("%w: index %d", ErrIndexOutOfRange, i)
	}

	for len(w.entries) <= i {
		w.entries = append(w.entries, Entry{Header: EntryHeader{Format: FormatEmpty}})
	}
	w.entries[i] = e

	return nil
}

// EntryCount returns the number of entries set so far.
func (w *Writer) EntryCount() int { return len(w.entries) }

// Bytes serializes the file. Offset lists and entries start 16 byte
// aligned; table items are written back to back so that each item keeps
// its exact size when read again.
func (w *Writer) Bytes() ([]byte, error) {
	t1, t2, t4, t5 := w.tables[Table1], w.tables[Table2], w.tables[Table4], w.tables[Table5]

	if len(t1) != len(t4) {
		return nil, fmt.Errorf("%w: %d and %d", ErrTableMismatch, len(t1), len(t4))
	}
	if len(t1) > math.MaxUint16 || len(t2) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: too many table items", ErrTooLarge)
	}

	// offset lists
	off := tableListOffset
	list := func(n int) int {
		at := off
		off = align(off + 4*n)
		return at
	}

	t1List := list(len(t1))
	t2List := list(len(t2))
	entryList := list(len(w.entries))
	t4List := list(len(t4))
	t5List := list(len(t5) + 1)

	// payload
	entryOffs := make([]int, len(w.entries))
	for i, e := range w.entries {
		entryOffs[i] = off
		off = align(off + e.Size())
	}

	itemOffs := make(map[TableID][]int, len(Tables))
	for _, id := range Tables {
		for _, item := range w.tables[id] {
			itemOffs[id] = append(itemOffs[id], off)
			off += len(item)
		}
	}

	if off > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, off)
	}

	out := make([]byte, off)

	h := w.Header
	h.FileSize = uint32(off)
	if h.HeaderSize == 0 {
		h.HeaderSize = fileHeaderSize
	}
	h.put(out)

	offsetsHeader{
		table1And4Count: uint16(len(t1)),
		table2Count:     uint16(len(t2)),
		entryCount:      uint16(len(w.entries)),
		unknown06:       h.Unknown36,
		table2Offset:    uint32(t2List),
		entryOffset:     uint32(entryList),
		table4Offset:    uint32(t4List),
		table5Offset:    uint32(t5List),
		unknown1C:       h.Unknown4C,
	}.put(out[fileHeaderSize:])

	putList := func(at int, offs []int) {
		for i, o := range offs {
			binary.LittleEndian.PutUint32(out[at+i*4:], uint32(o))
		}
	}

	putList(t1List, itemOffs[Table1])
	putList(t2List, itemOffs[Table2])
	putList(entryList, entryOffs)
	putList(t4List, itemOffs[Table4])
	putList(t5List, itemOffs[Table5])

	for i, e := range w.entries {
		copy(out[entryOffs[i]:], e.Bytes())
	}

	for _, id := range Tables {
		for i, item := range w.tables[id] {
			copy(out[itemOffs[id][i]:], item)
		}
	}

	return out, nil
}
