package bitpack

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/pchchv/bitpack/internal/bits"
)

// flusher is implemented by sinks which hold written octets back until
// flushed, such as bufio.Writer.
type flusher interface {
	Flush() error
}

// Writer encodes bit fields to an octet sink.
// Completed octets are pushed to the sink as soon as their last bit is
// written; the final partial octet is zero-padded and pushed by Align or
// Close. Close must be called to flush cached bits.
type Writer struct {
	out    io.ByteWriter    // octet sink
	f      flusher          // flushed by Align and Close; nil if out is unbuffered
	c      io.Closer        // underlying sink, if it can be closed
	cur    bits.WriteCursor // partially assembled octet and octet count
	closed bool
}

// NewWriter returns a new Writer that writes bits to w.
// If w does not implement io.ByteWriter it is wrapped in a bufio.Writer,
// which is flushed by Align and Close.
func NewWriter(w io.Writer) *Writer {
	out, ok := w.(io.ByteWriter)
	if !ok {
		out = bufio.NewWriter(w)
	}

	bw := NewByteWriter(out)
	bw.c, _ = w.(io.Closer)
	return bw
}

// NewByteWriter returns a new Writer that pushes one octet at a time to out.
func NewByteWriter(out io.ByteWriter) *Writer {
	bw := &Writer{out: out}
	bw.f, _ = out.(flusher)
	bw.c, _ = out.(io.Closer)
	return bw
}

// Count returns the number of complete octets handed to the sink since the
// Writer was created, including one the sink failed to accept.
// The count saturates at math.MaxUint64.
func (bw *Writer) Count() uint64 {
	return bw.cur.Count()
}

// Close pads the current octet with zero bits, pushes it, flushes the sink
// and closes it if it implements io.Closer.
// Calling Close on a closed Writer is a no-op.
func (bw *Writer) Close() error {
	if bw.closed {
		return nil
	}

	if _, err := bw.Align(1); err != nil {
		return err
	}

	bw.closed = true
	if bw.c != nil {
		return bw.c.Close()
	}
	return nil
}

// WriteBool writes one bit: 1 if x is true, 0 otherwise.
func (bw *Writer) WriteBool(x bool) error {
	if bw.closed {
		return ErrClosed
	}

	var b uint8
	if x {
		b = 1
	}
	return bw.writeUint8(1, b)
}

// WriteUint8 writes x as an unsigned integer of size bits, 1 through 8.
func (bw *Writer) WriteUint8(size uint, x uint8) error {
	if err := bw.checkUnsigned("bitpack.Writer.WriteUint8", size, Width8, uint64(x)); err != nil {
		return err
	}
	return bw.writeUint8(size, x)
}

// WriteUint16 writes x as an unsigned integer of size bits, 1 through 16.
func (bw *Writer) WriteUint16(size uint, x uint16) error {
	if err := bw.checkUnsigned("bitpack.Writer.WriteUint16", size, Width16, uint64(x)); err != nil {
		return err
	}
	return bw.writeUint16(size, x)
}

// WriteUint32 writes x as an unsigned integer of size bits, 1 through 32.
func (bw *Writer) WriteUint32(size uint, x uint32) error {
	if err := bw.checkUnsigned("bitpack.Writer.WriteUint32", size, Width32, uint64(x)); err != nil {
		return err
	}
	return bw.writeUint32(size, x)
}

// WriteUint64 writes x as an unsigned integer of size bits, 1 through 64.
func (bw *Writer) WriteUint64(size uint, x uint64) error {
	if err := bw.checkUnsigned("bitpack.Writer.WriteUint64", size, Width64, x); err != nil {
		return err
	}
	return bw.writeUint64(size, x)
}

// WriteInt8 writes x as a signed integer of size bits, 2 through 8.
func (bw *Writer) WriteInt8(size uint, x int8) error {
	return bw.writeSigned("bitpack.Writer.WriteInt8", size, Width8, int64(x))
}

// WriteInt16 writes x as a signed integer of size bits, 2 through 16.
func (bw *Writer) WriteInt16(size uint, x int16) error {
	return bw.writeSigned("bitpack.Writer.WriteInt16", size, Width16, int64(x))
}

// WriteInt32 writes x as a signed integer of size bits, 2 through 32.
func (bw *Writer) WriteInt32(size uint, x int32) error {
	return bw.writeSigned("bitpack.Writer.WriteInt32", size, Width32, int64(x))
}

// WriteInt64 writes x as a signed integer of size bits, 2 through 64.
func (bw *Writer) WriteInt64(size uint, x int64) error {
	return bw.writeSigned("bitpack.Writer.WriteInt64", size, Width64, x)
}

// WriteFloat32 writes the 32-bit IEEE 754 representation of x.
func (bw *Writer) WriteFloat32(x float32) error {
	if bw.closed {
		return ErrClosed
	}
	return bw.writeUint32(32, math.Float32bits(x))
}

// WriteFloat64 writes the 64-bit IEEE 754 representation of x.
func (bw *Writer) WriteFloat64(x float64) error {
	if bw.closed {
		return ErrClosed
	}
	return bw.writeUint64(64, math.Float64bits(x))
}

func (bw *Writer) checkUnsigned(op string, size, width uint, x uint64) error {
	if bw.closed {
		return ErrClosed
	}

	if err := CheckSize(op, false, size, width); err != nil {
		return err
	}

	if !FitsUnsigned(size, x) {
		return fmt.Errorf("%s: %w; %d does not fit in %d unsigned bits", op, ErrValueOutOfRange, x, size)
	}

	return nil
}

// writeSigned writes a sign bit followed by the low size-1 bits of the
// two's complement representation of x.
func (bw *Writer) writeSigned(op string, size, width uint, x int64) error {
	if bw.closed {
		return ErrClosed
	}

	if err := CheckSize(op, true, size, width); err != nil {
		return err
	}

	if !FitsSigned(size, x) {
		return fmt.Errorf("%s: %w; %d does not fit in %d signed bits", op, ErrValueOutOfRange, x, size)
	}

	var neg uint8
	if x < 0 {
		neg = 1
	}

	if err := bw.writeUint8(1, neg); err != nil {
		return err
	}

	return bw.writeUnsigned(size-1, uint64(x)&bits.Mask64(size-1))
}

// writeUnsigned writes the lowest n bits of x, 1 through 64, using the
// narrowest integer width able to hold them.
func (bw *Writer) writeUnsigned(n uint, x uint64) error {
	switch {
	case n <= 8:
		return bw.writeUint8(n, uint8(x))
	case n <= 16:
		return bw.writeUint16(n, uint16(x))
	case n <= 32:
		return bw.writeUint32(n, uint32(x))
	default:
		return bw.writeUint64(n, x)
	}
}

// writeUint8 writes the lowest n bits of x, 1 through 8.
// A field wider than the room left in the current octet is split in two:
// the high part completes and pushes the current octet and the low part
// starts the next one.
func (bw *Writer) writeUint8(n uint, x uint8) error {
	if room := bw.cur.Room(); n > room {
		if err := bw.writeUint8(room, x>>(n-room)); err != nil {
			return err
		}
		return bw.writeUint8(n-room, x)
	}

	bw.cur.Put(n, x)
	if bw.cur.Full() {
		return bw.out.WriteByte(bw.cur.Drain())
	}
	return nil
}

func (bw *Writer) writeUint16(n uint, x uint16) error {
	return writeChunks(n, 8, uint64(x), func(k uint, v uint64) error {
		return bw.writeUint8(k, uint8(v))
	})
}

func (bw *Writer) writeUint32(n uint, x uint32) error {
	return writeChunks(n, 16, uint64(x), func(k uint, v uint64) error {
		return bw.writeUint16(k, uint16(v))
	})
}

func (bw *Writer) writeUint64(n uint, x uint64) error {
	return writeChunks(n, 32, x, func(k uint, v uint64) error {
		return bw.writeUint32(k, uint32(v))
	})
}

// writeChunks splits the lowest n bits of x into consecutive chunks of at
// most step bits and writes them, most significant chunk first.
func writeChunks(n, step uint, x uint64, write func(k uint, v uint64) error) error {
	for n > 0 {
		k := min(n, step)
		n -= k
		if err := write(k, x>>n&bits.Mask64(k)); err != nil {
			return err
		}
	}
	return nil
}

// flush flushes the sink if it buffers octets.
func (bw *Writer) flush() error {
	if bw.f != nil {
		return bw.f.Flush()
	}
	return nil
}
