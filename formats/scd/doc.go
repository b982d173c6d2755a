// SPDX-License-Identifier: EPL-2.0

// Package scd reads and writes SCD sound containers (SEDB/SSCF files).
//
// A file starts with a 0x30 byte header and a 0x20 byte offsets header,
// followed by offset lists for four auxiliary tables and for the sound
// entries. Table items are treated as opaque byte blobs; the size of an
// item is the distance to the next item, entry or end of file.
//
// Each sound entry is a 0x20 byte EntryHeader, AuxChunkCount aux chunks
// (MARK carries the loop in samples), codec extra data and the stream.
// For Ogg entries the extra data is a seek header, a seek table of audio
// page offsets and the Vorbis header pages; OggStream puts the playable
// stream back together.
//
// Reader and Writer never modify each other's data: a Writer can be filled
// from a Reader, one entry replaced, and serialized, with every other entry
// and table coming out byte for byte the same.
//
//	r, err := scd.Parse(template)
//	w := scd.NewWriter(r.Header())
//	// copy tables and entries, then
//	w.SetEntry(k, replacement)
//	out, err := w.Bytes()
//
// Only little endian files are supported.
package scd
