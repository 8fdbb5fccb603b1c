// Package io provides the accumulating-error binary reader/writer pair that
// every wire-format encoder in this module builds on, modeled on the
// BinWriter/BinReader pattern used throughout the wallet core.
package io

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

// ErrVarIntTooLarge is returned when a length-prefixed field would exceed
// the protocol cap enforced by this module.
var ErrVarIntTooLarge = errors.New("io: varint length exceeds protocol cap")

// MaxVarIntPayload bounds any single varint-prefixed payload ReadVarBytes
// will decode. It exists to keep a corrupt or adversarial length prefix
// from causing an unbounded allocation. WriteVarBytes does not check it.
const MaxVarIntPayload = 64 * 1024 * 1024

// BinWriter writes fixed-width little-endian integers and Kaspa-style
// variable-length fields, accumulating the first error it hits so callers
// can chain writes without checking an error after every call.
type BinWriter struct {
	w   io.Writer
	err error
}

// NewBinWriterFromIO wraps an io.Writer in a BinWriter.
func NewBinWriterFromIO(w io.Writer) *BinWriter {
	return &BinWriter{w: w}
}

// Err returns the first error encountered, if any.
func (w *BinWriter) Err() error {
	return w.err
}

// SetError records err as the writer's terminal error if one isn't already
// set; subsequent writes become no-ops.
func (w *BinWriter) SetError(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *BinWriter) writeBytes(p []byte) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.Write(p)
}

// WriteB writes a single byte.
func (w *BinWriter) WriteB(v byte) {
	w.writeBytes([]byte{v})
}

// WriteBool writes a boolean as a single 0x00/0x01 byte.
func (w *BinWriter) WriteBool(b bool) {
	if b {
		w.WriteB(1)
	} else {
		w.WriteB(0)
	}
}

// WriteU16LE writes a uint16 little-endian.
func (w *BinWriter) WriteU16LE(v uint16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	w.writeBytes(buf[:])
}

// WriteU32LE writes a uint32 little-endian.
func (w *BinWriter) WriteU32LE(v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	w.writeBytes(buf[:])
}

// WriteU64LE writes a uint64 little-endian.
func (w *BinWriter) WriteU64LE(v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	w.writeBytes(buf[:])
}

// WriteBytes writes p verbatim, with no length prefix.
func (w *BinWriter) WriteBytes(p []byte) {
	w.writeBytes(p)
}

// WriteVarUint writes n using the chain's variable-length integer
// encoding: 0x00-0xFC as a single byte, 0xFD+uint16LE, 0xFE+uint32LE,
// 0xFF+uint64LE.
func (w *BinWriter) WriteVarUint(n uint64) {
	switch {
	case n < 0xfd:
		w.WriteB(byte(n))
	case n <= 0xffff:
		w.WriteB(0xfd)
		w.WriteU16LE(uint16(n))
	case n <= 0xffffffff:
		w.WriteB(0xfe)
		w.WriteU32LE(uint32(n))
	default:
		w.WriteB(0xff)
		w.WriteU64LE(n)
	}
}

// WriteVarBytes writes len(p) as a varint followed by p.
func (w *BinWriter) WriteVarBytes(p []byte) {
	w.WriteVarUint(uint64(len(p)))
	w.writeBytes(p)
}

// BinReader is the mirror image of BinWriter: it reads fixed-width and
// varint fields, latching the first error and returning zero values
// thereafter.
type BinReader struct {
	r   io.Reader
	Err error
}

// NewBinReaderFromBuf builds a BinReader over an in-memory buffer.
func NewBinReaderFromBuf(b []byte) *BinReader {
	return &BinReader{r: bytes.NewReader(b)}
}

// NewBinReaderFromIO wraps an arbitrary io.Reader.
func NewBinReaderFromIO(r io.Reader) *BinReader {
	return &BinReader{r: r}
}

func (r *BinReader) readBytes(n int) []byte {
	if r.Err != nil {
		return nil
	}
	buf := make([]byte, n)
	if n == 0 {
		return buf
	}
	_, err := io.ReadFull(r.r, buf)
	if err != nil {
		r.Err = err
		return nil
	}
	return buf
}

// ReadB reads a single byte.
func (r *BinReader) ReadB() byte {
	b := r.readBytes(1)
	if r.Err != nil {
		return 0
	}
	return b[0]
}

// ReadBool reads a single byte as a boolean.
func (r *BinReader) ReadBool() bool {
	return r.ReadB() != 0
}

// ReadU16LE reads a little-endian uint16.
func (r *BinReader) ReadU16LE() uint16 {
	b := r.readBytes(2)
	if r.Err != nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// ReadU32LE reads a little-endian uint32.
func (r *BinReader) ReadU32LE() uint32 {
	b := r.readBytes(4)
	if r.Err != nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// ReadU64LE reads a little-endian uint64.
func (r *BinReader) ReadU64LE() uint64 {
	b := r.readBytes(8)
	if r.Err != nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// ReadBytes reads exactly len(buf) bytes into buf.
func (r *BinReader) ReadBytes(buf []byte) {
	if len(buf) == 0 {
		return
	}
	b := r.readBytes(len(buf))
	if r.Err != nil {
		return
	}
	copy(buf, b)
}

// ReadVarUint reads the chain's variable-length integer encoding.
func (r *BinReader) ReadVarUint() uint64 {
	b := r.ReadB()
	if r.Err != nil {
		return 0
	}
	switch b {
	case 0xfd:
		return uint64(r.ReadU16LE())
	case 0xfe:
		return uint64(r.ReadU32LE())
	case 0xff:
		return r.ReadU64LE()
	default:
		return uint64(b)
	}
}

// ReadVarBytes reads a varint length prefix followed by that many bytes,
// rejecting lengths beyond MaxVarIntPayload.
func (r *BinReader) ReadVarBytes() []byte {
	n := r.ReadVarUint()
	if r.Err != nil {
		return nil
	}
	if n > MaxVarIntPayload {
		r.Err = ErrVarIntTooLarge
		return nil
	}
	return r.readBytes(int(n))
}

// BufBinWriter is a BinWriter backed by an in-memory buffer, the common
// case for building a one-shot serialization before hashing or signing.
type BufBinWriter struct {
	*BinWriter
	buf *bytes.Buffer
}

// NewBufBinWriter creates a BufBinWriter ready for writes.
func NewBufBinWriter() *BufBinWriter {
	b := new(bytes.Buffer)
	return &BufBinWriter{BinWriter: NewBinWriterFromIO(b), buf: b}
}

// Bytes returns the accumulated bytes, or nil if an error occurred.
func (w *BufBinWriter) Bytes() []byte {
	if w.err != nil {
		return nil
	}
	b := w.buf.Bytes()
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// Len returns the number of bytes written so far.
func (w *BufBinWriter) Len() int {
	return w.buf.Len()
}

// Reset clears the buffer and any error, allowing the writer to be reused.
func (w *BufBinWriter) Reset() {
	w.buf.Reset()
	w.err = nil
}
