// SPDX-License-Identifier: EPL-2.0

package sqpack

import (
	"bytes"
	"compress/flate"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	indexEntrySize = 16

	entryTypeBinary = 2

	// a block compressed size of this value marks stored (raw) data
	blockStored = 32000

	blockHeaderSize = 16
)

var magic = []byte("SqPack\x00\x00")

// Open returns the contents of internal from the installation at root.
func Open(root, internal string) ([]byte, error) {
	loc, err := locate(internal)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(root, "sqpack", loc.folder)

	index, err := os.ReadFile(filepath.Join(dir, loc.base()+".win32.index"))
	if err != nil {
		return nil, err
	}

	datID, offset, err := lookup(index, loc.hash)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", internal, err)
	}

	f, err := os.Open(filepath.Join(dir, fmt.Sprintf("%s.win32.dat%d", loc.base(), datID)))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := readEntry(f, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", internal, err)
	}

	return data, nil
}

// lookup finds hash in an index1 file and returns the dat file number and
// the byte offset of the entry in it.
func lookup(index []byte, hash uint64) (datID int, offset int64, err error) {
	if len(index) < 0x10 || !bytes.Equal(index[:len(magic)], magic) {
		return 0, 0, ErrBadIndex
	}

	hdr := int(binary.LittleEndian.Uint32(index[0x0C:]))
	if hdr+0x10 > len(index) {
		return 0, 0, ErrBadIndex
	}

	start := int(binary.LittleEndian.Uint32(index[hdr+0x08:]))
	size := int(binary.LittleEndian.Uint32(index[hdr+0x0C:]))
	if start+size > len(index) || size%indexEntrySize != 0 {
		return 0, 0, ErrBadIndex
	}

	for off := start; off < start+size; off += indexEntrySize {
		e := index[off:]
		file := binary.LittleEndian.Uint32(e)
		folder := binary.LittleEndian.Uint32(e[4:])
		if uint64(folder)<<32|uint64(file) != hash {
			continue
		}

		packed := binary.LittleEndian.Uint32(e[8:])
		if packed&1 != 0 {
			return 0, 0, fmt.Errorf("%w: hash collision entries are not supported", ErrUnsupportedEntry)
		}

		return int(packed>>1) & 7, int64(packed&^0xF) * 8, nil
	}

	return 0, 0, ErrFileNotFound
}

// readEntry inflates a binary dat entry starting at offset.
func readEntry(r io.ReaderAt, offset int64) ([]byte, error) {
	var info [0x18]byte
	if _, err := r.ReadAt(info[:], offset); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadData, err)
	}

	headerSize := int64(binary.LittleEndian.Uint32(info[0x00:]))
	kind := binary.LittleEndian.Uint32(info[0x04:])
	rawSize := int(binary.LittleEndian.Uint32(info[0x08:]))
	blocks := int(binary.LittleEndian.Uint32(info[0x14:]))

	if kind != entryTypeBinary {
		return nil, fmt.Errorf("%w: entry type %d", ErrUnsupportedEntry, kind)
	}
	if headerSize < int64(len(info)+blocks*8) {
		return nil, fmt.Errorf("%w: header of %d bytes for %d blocks", ErrBadData, headerSize, blocks)
	}

	table := make([]byte, blocks*8)
	if _, err := r.ReadAt(table, offset+int64(len(info))); err != nil {
		return nil, fmt.Errorf("%w: block table: %w", ErrBadData, err)
	}

	out := make([]byte, 0, rawSize)

	for i := range blocks {
		blockOff := offset + headerSize + int64(binary.LittleEndian.Uint32(table[i*8:]))

		var bh [blockHeaderSize]byte
		if _, err := r.ReadAt(bh[:], blockOff); err != nil {
			return nil, fmt.Errorf("%w: block %d: %w", ErrBadData, i, err)
		}

		compressed := int64(binary.LittleEndian.Uint32(bh[0x08:]))
		plain := int64(binary.LittleEndian.Uint32(bh[0x0C:]))
		body := io.NewSectionReader(r, blockOff+blockHeaderSize, max(compressed, plain))

		var src io.ReadCloser = io.NopCloser(body)
		if compressed != blockStored {
			src = flate.NewReader(io.LimitReader(body, compressed))
		}

		n := len(out)
		out = append(out, make([]byte, plain)...)
		_, err := io.ReadFull(src, out[n:])
		src.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: block %d: %w", ErrBadData, i, err)
		}
	}

	if len(out) != rawSize {
		return nil, fmt.Errorf("%w: inflated %d bytes, header says %d", ErrBadData, len(out), rawSize)
	}

	return out, nil
}
