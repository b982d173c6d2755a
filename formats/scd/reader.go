// SPDX-License-Identifier: EPL-2.0

package scd

import (
	"encoding/binary"
	"fmt"
	"slices"
)

// Reader gives indexed access to the entries and tables of an SCD file.
// It keeps a reference to the data passed to Parse; everything it returns
// is a copy.
type Reader struct {
	data    []byte
	header  FileHeader
	tables  map[TableID][]uint32
	entries []uint32
	// bounds holds every item start plus len(data), sorted, so that the
	// size of an opaque table item is the distance to the next bound.
	bounds []uint32
}

// Parse indexes an SCD file held in memory.
func Parse(data []byte) (*Reader, error) {
	h, err := parseFileHeader(data)
	if err != nil {
		return nil, err
	}
	if uint64(len(data)) > 0xFFFFFFFF {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(data))
	}

	oh := parseOffsetsHeader(data[fileHeaderSize:])
	h.Unknown36 = oh.unknown06
	h.Unknown4C = oh.unknown1C

	r := &Reader{data: data, header: h, tables: make(map[TableID][]uint32, len(Tables))}

	lists := []struct {
		id    TableID
		off   uint32
		count int
	}{
		{Table1, tableListOffset, int(oh.table1And4Count)},
		{Table2, oh.table2Offset, int(oh.table2Count)},
		{Table4, oh.table4Offset, int(oh.table1And4Count)},
	}

	for _, l := range lists {
		if r.tables[l.id], err = r.readList(l.off, l.count); err != nil {
			return nil, fmt.Errorf("table %d: %w", l.id, err)
		}
	}

	if r.entries, err = r.readList(oh.entryOffset, int(oh.entryCount)); err != nil {
		return nil, fmt.Errorf("entries: %w", err)
	}

	if r.tables[Table5], err = r.readTerminatedList(oh.table5Offset); err != nil {
		return nil, fmt.Errorf("table %d: %w", Table5, err)
	}

	for _, offs := range r.tables {
		r.bounds = append(r.bounds, offs...)
	}
	r.bounds = append(r.bounds, r.entries...)
	r.bounds = append(r.bounds, uint32(len(data)))
	slices.Sort(r.bounds)
	r.bounds = slices.Compact(r.bounds)

	for _, off := range r.bounds {
		if int(off) > len(data) {
			return nil, fmt.Errorf("%w: item offset %#x past end of file (%#x)", ErrTruncated, off, len(data))
		}
	}

	return r, nil
}

func (r *Reader) readList(off uint32, count int) ([]uint32, error) {
	if count == 0 {
		return nil, nil
	}

	end := int(off) + count*4
	if int(off) < tableListOffset || end > len(r.data) {
		return nil, fmt.Errorf("%w: offset list at %#x with %d items", ErrTruncated, off, count)
	}

	out := make([]uint32, count)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(r.data[int(off)+i*4:])
	}

	return out, nil
}

func (r *Reader) readTerminatedList(off uint32) ([]uint32, error) {
	if off == 0 {
		return nil, nil
	}

	var out []uint32
	for p := int(off); ; p += 4 {
		if p+4 > len(r.data) {
			return nil, fmt.Errorf("%w: unterminated offset list at %#x", ErrTruncated, off)
		}

		v := binary.LittleEndian.Uint32(r.data[p:])
		if v == 0 {
			return out, nil
		}
		out = append(out, v)
	}
}

// Header returns the file header of the parsed file.
func (r *Reader) Header() FileHeader { return r.header }

// EntryCount returns the number of sound entries.
func (r *Reader) EntryCount() int { return len(r.entries) }

// ReadEntry returns a copy of entry i.
func (r *Reader) ReadEntry(i int) (Entry, error) {
	if i < 0 || i >= len(r.entries) {
		return Entry{}, fmt.Errorf("%w: index %d, file has %d entries", ErrIndexOutOfRange, i, len(r.entries))
	}

	e, err := parseEntry(r.data[r.entries[i]:])
	if err != nil {
		return Entry{}, fmt.Errorf("entry %d: %w", i, err)
	}

	return e, nil
}

// ReadTable returns a copy of one auxiliary table.
func (r *Reader) ReadTable(id TableID) (Table, error) {
	offs, ok := r.tables[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTable, id)
	}

	t := make(Table, len(offs))
	for i, off := range offs {
		t[i] = slices.Clone(r.data[off:r.next(off)])
	}

	return t, nil
}

// next returns the first bound after off.
func (r *Reader) next(off uint32) uint32 {
	i, found := slices.BinarySearch(r.bounds, off)
	if found {
		i++
	}
	if i >= len(r.bounds) {
		return uint32(len(r.data))
	}
	return r.bounds[i]
}
