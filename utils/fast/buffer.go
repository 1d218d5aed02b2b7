package fast

// buffer.go provides cursor-tracked byte readers/writers for fixed-layout
// binary structures, such as the genesis extraData validator records.
//
// The structures decoded with this package carry no self-describing framing:
// every field width is fixed and known up front, and the caller is expected
// to have validated the total length before reading. Reads therefore do not
// return errors; reading past the end panics, which in this codebase always
// indicates a missing length check at the call site.

import "encoding/binary"

// Reader consumes a byte slice field by field, tracking the cursor position.
type Reader struct {
	// buf is the underlying data source.
	buf []byte
	// offset is the current reading position.
	offset int
}

// Writer accumulates fixed-width fields into a byte slice.
type Writer struct {
	buf []byte
}

// NewReader creates a Reader positioned at the start of bb.
func NewReader(bb []byte) *Reader {
	return &Reader{
		buf:    bb,
		offset: 0,
	}
}

// NewWriter creates a Writer that appends to the provided initial slice.
// Usually called with `make([]byte, 0, capacity)`.
func NewWriter(bb []byte) *Writer {
	return &Writer{
		buf: bb,
	}
}

// Write appends a slice of bytes to the buffer.
func (b *Writer) Write(v []byte) {
	b.buf = append(b.buf, v...)
}

// WriteUint64 appends v as 8 big-endian bytes. Big-endian is the wire order
// of every integer field in the genesis extraData layout.
func (b *Writer) WriteUint64(v uint64) {
	var bb [8]byte
	binary.BigEndian.PutUint64(bb[:], v)
	b.buf = append(b.buf, bb[:]...)
}

// Read consumes and returns the next n bytes.
//
// The returned slice shares memory with the underlying buffer; callers that
// retain the result must copy it. Panics if fewer than n bytes remain.
func (b *Reader) Read(n int) []byte {
	res := b.buf[b.offset : b.offset+n]
	b.offset += n
	return res
}

// ReadUint64 consumes 8 bytes and decodes them as a big-endian uint64.
func (b *Reader) ReadUint64() uint64 {
	return binary.BigEndian.Uint64(b.Read(8))
}

// Position returns the current cursor index of the Reader.
func (b *Reader) Position() int {
	return b.offset
}

// Remaining returns how many unread bytes are left.
func (b *Reader) Remaining() int {
	return len(b.buf) - b.offset
}

// Bytes returns the entire underlying buffer of the Reader.
func (b *Reader) Bytes() []byte {
	return b.buf
}

// Bytes returns the accumulated content of the Writer.
func (b *Writer) Bytes() []byte {
	return b.buf
}

// Empty reports whether the Reader has consumed the whole buffer.
func (b *Reader) Empty() bool {
	return len(b.buf) == b.offset
}
