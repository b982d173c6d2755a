// SPDX-License-Identifier: EPL-2.0

package scd

import (
	"encoding/binary"
	"fmt"
)

const (
	fileHeaderSize    = 0x30
	offsetsHeaderSize = 0x20
	entryHeaderSize   = 0x20
	auxHeaderSize     = 8

	tableListOffset = fileHeaderSize + offsetsHeaderSize
	alignment       = 0x10
)

// EntryFormat is the codec of a sound entry.
type EntryFormat int32

const (
	FormatEmpty EntryFormat = -1
	FormatPCM   EntryFormat = 0x01
	FormatOgg   EntryFormat = 0x06
	FormatADPCM EntryFormat = 0x0C
)

func (f EntryFormat) String() string {
	switch f {
	case FormatEmpty:
		return "empty"
	case FormatPCM:
		return "pcm"
	case FormatOgg:
		return "ogg"
	case FormatADPCM:
		return "adpcm"
	}
	return fmt.Sprintf("EntryFormat(%#x)", int32(f))
}

// TableID names the auxiliary tables. Entries are addressed separately.
type TableID int

const (
	Table1 TableID = 1
	Table2 TableID = 2
	Table4 TableID = 4
	Table5 TableID = 5
)

// Tables lists every auxiliary table in file order.
var Tables = []TableID{Table1, Table2, Table4, Table5}

// Table is an opaque auxiliary table: a list of items addressed by offset.
type Table [][]byte

// Clone returns a deep copy of t.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	for i, item := range t {
		out[i] = append([]byte(nil), item...)
	}
	return out
}

// FileHeader is the 0x30 byte SEDB/SSCF header plus the two unknown fields
// of the offsets header that follows it. FileSize is recomputed on write.
type FileHeader struct {
	Version     uint32
	BigEndian   uint8
	SSCFVersion uint8
	HeaderSize  uint16
	FileSize    uint32

	Unknown36 uint16
	Unknown4C uint32
}

// DefaultFileHeader is used by NewWriter when no template header is given.
var DefaultFileHeader = FileHeader{Version: 3, SSCFVersion: 4, HeaderSize: fileHeaderSize}

func parseFileHeader(b []byte) (FileHeader, error) {
	if len(b) < fileHeaderSize+offsetsHeaderSize {
		return FileHeader{}, fmt.Errorf("%w: %d bytes", ErrTruncated, len(b))
	}
	if string(b[0:4]) != "SEDB" || string(b[4:8]) != "SSCF" {
		return FileHeader{}, ErrNotSCD
	}

	h := FileHeader{
		Version:     binary.LittleEndian.Uint32(b[8:12]),
		BigEndian:   b[12],
		SSCFVersion: b[13],
		HeaderSize:  binary.LittleEndian.Uint16(b[14:16]),
		FileSize:    binary.LittleEndian.Uint32(b[16:20]),
	}

	if h.BigEndian != 0 {
		return FileHeader{}, fmt.Errorf("%w: big endian files are not supported", ErrNotSCD)
	}
	if h.HeaderSize != fileHeaderSize {
		return FileHeader{}, fmt.Errorf("%w: header size %#x", ErrNotSCD, h.HeaderSize)
	}

	return h, nil
}

func (h FileHeader) put(b []byte) {
	copy(b[0:4], "SEDB")
	copy(b[4:8], "SSCF")
	binary.LittleEndian.PutUint32(b[8:12], h.Version)
	b[12] = h.BigEndian
	b[13] = h.SSCFVersion
	binary.LittleEndian.PutUint16(b[14:16], h.HeaderSize)
	binary.LittleEndian.PutUint32(b[16:20], h.FileSize)
}

// offsetsHeader follows the file header and locates every offset list.
type offsetsHeader struct {
	table1And4Count uint16
	table2Count     uint16
	entryCount      uint16
	unknown06       uint16
	table2Offset    uint32
	entryOffset     uint32
	table4Offset    uint32
	table5Offset    uint32
	unknown1C       uint32
}

func parseOffsetsHeader(b []byte) offsetsHeader {
	return offsetsHeader{
		table1And4Count: binary.LittleEndian.Uint16(b[0:2]),
		table2Count:     binary.LittleEndian.Uint16(b[2:4]),
		entryCount:      binary.LittleEndian.Uint16(b[4:6]),
		unknown06:       binary.LittleEndian.Uint16(b[6:8]),
		table2Offset:    binary.LittleEndian.Uint32(b[8:12]),
		entryOffset:     binary.LittleEndian.Uint32(b[12:16]),
		table4Offset:    binary.LittleEndian.Uint32(b[16:20]),
		table5Offset:    binary.LittleEndian.Uint32(b[24:28]),
		unknown1C:       binary.LittleEndian.Uint32(b[28:32]),
	}
}

func (h offsetsHeader) put(b []byte) {
	binary.LittleEndian.PutUint16(b[0:2], h.table1And4Count)
	binary.LittleEndian.PutUint16(b[2:4], h.table2Count)
	binary.LittleEndian.PutUint16(b[4:6], h.entryCount)
	binary.LittleEndian.PutUint16(b[6:8], h.unknown06)
	binary.LittleEndian.PutUint32(b[8:12], h.table2Offset)
	binary.LittleEndian.PutUint32(b[12:16], h.entryOffset)
	binary.LittleEndian.PutUint32(b[16:20], h.table4Offset)
	binary.LittleEndian.PutUint32(b[24:28], h.table5Offset)
	binary.LittleEndian.PutUint32(b[28:32], h.unknown1C)
}

// EntryHeader is the 0x20 byte header in front of every sound entry.
type EntryHeader struct {
	StreamSize      uint32
	ChannelCount    uint32
	SamplingRate    uint32
	Format          EntryFormat
	LoopStartOffset uint32
	LoopEndOffset   uint32
	// StreamOffset is the distance from the end of this header to the
	// stream data: aux chunks plus codec extra data.
	StreamOffset  uint32
	AuxChunkCount uint16
	// Reserved has no known meaning and must survive a replacement.
	Reserved uint16
}

func parseEntryHeader(b []byte) EntryHeader {
	return EntryHeader{
		StreamSize:      binary.LittleEndian.Uint32(b[0x00:]),
		ChannelCount:    binary.LittleEndian.Uint32(b[0x04:]),
		SamplingRate:    binary.LittleEndian.Uint32(b[0x08:]),
		Format:          EntryFormat(int32(binary.LittleEndian.Uint32(b[0x0C:]))),
		LoopStartOffset: binary.LittleEndian.Uint32(b[0x10:]),
		LoopEndOffset:   binary.LittleEndian.Uint32(b[0x14:]),
		StreamOffset:    binary.LittleEndian.Uint32(b[0x18:]),
		AuxChunkCount:   binary.LittleEndian.Uint16(b[0x1C:]),
		Reserved:        binary.LittleEndian.Uint16(b[0x1E:]),
	}
}

func (h EntryHeader) put(b []byte) {
	binary.LittleEndian.PutUint32(b[0x00:], h.StreamSize)
	binary.LittleEndian.PutUint32(b[0x04:], h.ChannelCount)
	binary.LittleEndian.PutUint32(b[0x08:], h.SamplingRate)
	binary.LittleEndian.PutUint32(b[0x0C:], uint32(int32(h.Format)))
	binary.LittleEndian.PutUint32(b[0x10:], h.LoopStartOffset)
	binary.LittleEndian.PutUint32(b[0x14:], h.LoopEndOffset)
	binary.LittleEndian.PutUint32(b[0x18:], h.StreamOffset)
	binary.LittleEndian.PutUint16(b[0x1C:], h.AuxChunkCount)
	binary.LittleEndian.PutUint16(b[0x1E:], h.Reserved)
}

func align(n int) int {
	return (n + alignment - 1) &^ (alignment - 1)
}
