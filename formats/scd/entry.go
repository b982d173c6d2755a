// SPDX-License-Identifier: EPL-2.0

package scd

import (
	"encoding/binary"
	"fmt"
	"math"
	"slices"

	"github.com/ik5/scdtool/audio"
	"github.com/ik5/scdtool/formats/vorbis"
)

const (
	markChunk = "MARK"
	markSize  = auxHeaderSize + 12

	oggSeekHeaderSize = 0x20
	oggVersion        = 2
)

// Entry is one sound entry: header, aux chunks, codec extra data and
// the stream itself.
type Entry struct {
	Header EntryHeader
	// Aux holds AuxChunkCount chunks, each an 8 byte name/size header
	// followed by its payload.
	Aux   []byte
	Extra []byte
	Data  []byte
}

// AuxChunk is one named chunk from Entry.Aux.
type AuxChunk struct {
	Name string
	Data []byte
}

func parseEntry(b []byte) (Entry, error) {
	if len(b) < entryHeaderSize {
		return Entry{}, fmt.Errorf("%w: entry header", ErrTruncated)
	}

	h := parseEntryHeader(b)

	total := uint64(entryHeaderSize) + uint64(h.StreamOffset) + uint64(h.StreamSize)
	if total > uint64(len(b)) {
		return Entry{}, fmt.Errorf("%w: entry needs %d bytes, %d left", ErrTruncated, total, len(b))
	}

	body := b[entryHeaderSize : entryHeaderSize+int(h.StreamOffset)]

	auxLen := 0
	for range h.AuxChunkCount {
		if len(body)-auxLen < auxHeaderSize {
			return Entry{}, fmt.Errorf("%w: aux chunk header", ErrTruncated)
		}
		size := int(binary.LittleEndian.Uint32(body[auxLen+4:]))
		if size < auxHeaderSize || size > len(body)-auxLen {
			return Entry{}, fmt.Errorf("%w: aux chunk of %d bytes", ErrTruncated, size)
		}
		auxLen += size
	}

	return Entry{
		Header: h,
		Aux:    slices.Clone(body[:auxLen]),
		Extra:  slices.Clone(body[auxLen:]),
		Data:   slices.Clone(b[entryHeaderSize+int(h.StreamOffset) : total]),
	}, nil
}

// Size returns the serialized size of the entry.
func (e Entry) Size() int {
	return entryHeaderSize + len(e.Aux) + len(e.Extra) + len(e.Data)
}

// Bytes serializes the entry. StreamSize and StreamOffset are derived from
// the payload; every other header field is written as is.
func (e Entry) Bytes() []byte {
	h := e.Header
	h.StreamSize = uint32(len(e.Data))
	h.StreamOffset = uint32(len(e.Aux) + len(e.Extra))

	b := make([]byte, e.Size())
	h.put(b)

	n := entryHeaderSize
	n += copy(b[n:], e.Aux)
	n += copy(b[n:], e.Extra)
	copy(b[n:], e.Data)

	return b
}

// AuxChunks splits Aux into its chunks.
func (e Entry) AuxChunks() []AuxChunk {
	var out []AuxChunk
	for b := e.Aux; len(b) >= auxHeaderSize; {
		size := int(binary.LittleEndian.Uint32(b[4:8]))
		if size < auxHeaderSize || size > len(b) {
			break
		}
		out = append(out, AuxChunk{Name: string(b[0:4]), Data: b[auxHeaderSize:size]})
		b = b[size:]
	}
	return out
}

// MarkLoop returns the loop stored in the MARK chunk, in samples.
func (e Entry) MarkLoop() (audio.Loop, bool) {
	for _, c := range e.AuxChunks() {
		if c.Name == markChunk && len(c.Data) >= 8 {
			return audio.Loop{
				Begin: uint64(binary.LittleEndian.Uint32(c.Data[0:4])),
				End:   uint64(binary.LittleEndian.Uint32(c.Data[4:8])),
			}, true
		}
	}
	return audio.Loop{}, false
}

// NewPCMEntry builds an entry holding 16-bit PCM samples as they are.
func NewPCMEntry(info audio.Info) (Entry, error) {
	if err := info.Validate(); err != nil {
		return Entry{}, err
	}
	if info.Format != audio.FormatPCM16 {
		return Entry{}, fmt.Errorf("%w: pcm entry needs pcm16 samples, got %s", audio.ErrUnsupportedFormat, info.Format)
	}
	if uint64(len(info.Data)) > math.MaxUint32 {
		return Entry{}, fmt.Errorf("%w: %d bytes of samples", ErrTooLarge, len(info.Data))
	}

	return Entry{
		Header: EntryHeader{
			StreamSize:   uint32(len(info.Data)),
			ChannelCount: uint32(info.Channels),
			SamplingRate: uint32(info.SampleRate),
			Format:       FormatPCM,
		},
		Data: slices.Clone(info.Data),
	}, nil
}

// NewOggEntry wraps an Ogg Vorbis stream. The header packets move into the
// extra data behind a seek table of audio page offsets, the audio pages
// become the stream, and when looping is set the loop is recorded both as
// stream byte offsets and as a MARK chunk.
func NewOggEntry(ogg []byte, loop audio.Loop, looping bool) (Entry, error) {
	st, err := vorbis.Probe(ogg)
	if err != nil {
		return Entry{}, err
	}

	headers := ogg[:st.HeaderEnd]
	data := ogg[st.HeaderEnd:]
	pages := st.AudioPages()

	if uint64(len(ogg)) > math.MaxUint32 || st.Samples > math.MaxUint32 {
		return Entry{}, fmt.Errorf("%w: %d bytes, %d samples", ErrTooLarge, len(ogg), st.Samples)
	}

	seekTable := make([]byte, 4*len(pages))
	for i, p := range pages {
		binary.LittleEndian.PutUint32(seekTable[i*4:], uint32(p.Offset-st.HeaderEnd))
	}

	extra := make([]byte, oggSeekHeaderSize, oggSeekHeaderSize+len(seekTable)+len(headers))
	extra[0] = oggVersion
	extra[1] = oggSeekHeaderSize
	binary.LittleEndian.PutUint32(extra[0x10:], uint32(len(seekTable)))
	binary.LittleEndian.PutUint32(extra[0x14:], uint32(len(headers)))
	extra = append(extra, seekTable...)
	extra = append(extra, headers...)

	e := Entry{
		Header: EntryHeader{
			StreamSize:   uint32(len(data)),
			ChannelCount: uint32(st.Channels),
			SamplingRate: uint32(st.SampleRate),
			Format:       FormatOgg,
		},
		Extra: extra,
		Data:  slices.Clone(data),
	}

	if !looping {
		return e, nil
	}

	if loop.Begin >= loop.End || loop.End > math.MaxUint32 {
		return Entry{}, fmt.Errorf("%w: %d..%d", audio.ErrInvalidLoopPoint, loop.Begin, loop.End)
	}

	e.Header.LoopStartOffset = 0
	e.Header.LoopEndOffset = uint32(len(data))

	startFound := false
	for _, p := range pages {
		if p.Granule == vorbis.NoGranule {
			continue
		}
		// a page's granule is the number of samples complete at its end
		if !startFound && uint64(p.Granule) > loop.Begin {
			e.Header.LoopStartOffset = uint32(p.Offset - st.HeaderEnd)
			startFound = true
		}
		if uint64(p.Granule) >= loop.End {
			e.Header.LoopEndOffset = uint32(p.End() - st.HeaderEnd)
			break
		}
	}

	mark := make([]byte, markSize)
	copy(mark[0:4], markChunk)
	binary.LittleEndian.PutUint32(mark[4:], markSize)
	binary.LittleEndian.PutUint32(mark[8:], uint32(loop.Begin))
	binary.LittleEndian.PutUint32(mark[12:], uint32(loop.End))

	e.Aux = mark
	e.Header.AuxChunkCount = 1

	return e, nil
}

// OggStream rebuilds the playable Ogg stream of an Ogg entry.
func (e Entry) OggStream() ([]byte, error) {
	if e.Header.Format != FormatOgg {
		return nil, fmt.Errorf("%w: entry format is %s", audio.ErrUnsupportedFormat, e.Header.Format)
	}
	if len(e.Extra) < oggSeekHeaderSize {
		return nil, fmt.Errorf("%w: ogg seek header", ErrTruncated)
	}

	version := e.Extra[0]
	headerSize := int(e.Extra[1])
	xorByte := e.Extra[2]
	seekSize := int(binary.LittleEndian.Uint32(e.Extra[0x10:]))
	vorbisSize := int(binary.LittleEndian.Uint32(e.Extra[0x14:]))

	if version != oggVersion {
		return nil, fmt.Errorf("%w: ogg entry version %d", audio.ErrUnsupportedFormat, version)
	}

	start := headerSize + seekSize
	if headerSize < oggSeekHeaderSize || seekSize < 0 || vorbisSize < 0 || start+vorbisSize > len(e.Extra) || start+vorbisSize < start {
		return nil, fmt.Errorf("%w: ogg headers", ErrTruncated)
	}

	out := make([]byte, 0, vorbisSize+len(e.Data))
	out = append(out, e.Extra[start:start+vorbisSize]...)
	if xorByte != 0 {
		for i := range out {
			out[i] ^= xorByte
		}
	}

	return append(out, e.Data...), nil
}
