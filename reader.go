package bitpack

import (
	"bufio"
	"io"
	"math"

	"github.com/pchchv/bitpack/internal/bits"
)

// Reader decodes bit fields from an octet source.
// It buffers bits up to the next byte boundary.
type Reader struct {
	in  io.ByteReader   // octet source
	c   io.Closer       // underlying source, if it can be closed
	cur bits.ReadCursor // partially consumed octet and octet count
}

// NewReader returns a new Reader that reads bits from r.
// If r does not implement io.ByteReader it is wrapped in a bufio.Reader,
// which may read ahead of the last bit consumed.
func NewReader(r io.Reader) *Reader {
	in, ok := r.(io.ByteReader)
	if !ok {
		in = bufio.NewReader(r)
	}

	br := NewByteReader(in)
	br.c, _ = r.(io.Closer)
	return br
}

// NewByteReader returns a new Reader that pulls one octet at a time from in.
// io.EOF returned by in marks the end of data.
func NewByteReader(in io.ByteReader) *Reader {
	br := &Reader{in: in, cur: bits.NewReadCursor()}
	br.c, _ = in.(io.Closer)
	return br
}

// Count returns the number of octets pulled from the source since the
// Reader was created, including a partially consumed one.
// The count saturates at math.MaxUint64.
func (br *Reader) Count() uint64 {
	return br.cur.Count()
}

// Close discards the unread bits of the current octet and closes the
// underlying source if it implements io.Closer.
func (br *Reader) Close() error {
	br.cur.Skip()
	if br.c != nil {
		return br.c.Close()
	}
	return nil
}

// ReadBool reads one bit and reports whether it is set.
func (br *Reader) ReadBool() (bool, error) {
	x, err := br.readUint8(1)
	return x == 1, err
}

// ReadUint8 reads an unsigned integer of size bits, 1 through 8.
func (br *Reader) ReadUint8(size uint) (uint8, error) {
	if err := CheckSize("bitpack.Reader.ReadUint8", false, size, Width8); err != nil {
		return 0, err
	}
	return br.readUint8(size)
}

// ReadUint16 reads an unsigned integer of size bits, 1 through 16.
func (br *Reader) ReadUint16(size uint) (uint16, error) {
	if err := CheckSize("bitpack.Reader.ReadUint16", false, size, Width16); err != nil {
		return 0, err
	}
	return br.readUint16(size)
}

// ReadUint32 reads an unsigned integer of size bits, 1 through 32.
func (br *Reader) ReadUint32(size uint) (uint32, error) {
	if err := CheckSize("bitpack.Reader.ReadUint32", false, size, Width32); err != nil {
		return 0, err
	}
	return br.readUint32(size)
}

// ReadUint64 reads an unsigned integer of size bits, 1 through 64.
func (br *Reader) ReadUint64(size uint) (uint64, error) {
	if err := CheckSize("bitpack.Reader.ReadUint64", false, size, Width64); err != nil {
		return 0, err
	}
	return br.readUint64(size)
}

// ReadInt8 reads a signed integer of size bits, 2 through 8.
func (br *Reader) ReadInt8(size uint) (int8, error) {
	x, err := br.readSigned("bitpack.Reader.ReadInt8", size, Width8)
	return int8(x), err
}

// ReadInt16 reads a signed integer of size bits, 2 through 16.
func (br *Reader) ReadInt16(size uint) (int16, error) {
	x, err := br.readSigned("bitpack.Reader.ReadInt16", size, Width16)
	return int16(x), err
}

// ReadInt32 reads a signed integer of size bits, 2 through 32.
func (br *Reader) ReadInt32(size uint) (int32, error) {
	x, err := br.readSigned("bitpack.Reader.ReadInt32", size, Width32)
	return int32(x), err
}

// ReadInt64 reads a signed integer of size bits, 2 through 64.
func (br *Reader) ReadInt64(size uint) (int64, error) {
	return br.readSigned("bitpack.Reader.ReadInt64", size, Width64)
}

// ReadFloat32 reads the 32-bit IEEE 754 representation of a float32.
func (br *Reader) ReadFloat32() (float32, error) {
	x, err := br.readUint32(32)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(x), nil
}

// ReadFloat64 reads the 64-bit IEEE 754 representation of a float64.
func (br *Reader) ReadFloat64() (float64, error) {
	x, err := br.readUint64(64)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(x), nil
}

// readSigned reads a sign bit followed by size-1 magnitude bits and
// extends the sign across the full 64 bits.
func (br *Reader) readSigned(op string, size, width uint) (int64, error) {
	if err := CheckSize(op, true, size, width); err != nil {
		return 0, err
	}

	neg, err := br.readUint8(1)
	if err != nil {
		return 0, err
	}

	x, err := br.readUnsigned(size - 1)
	if err != nil {
		return 0, unexpected(err)
	}

	v := int64(x)
	if neg == 1 {
		v |= -1 << (size - 1)
	}
	return v, nil
}

// readUnsigned reads n bits, 1 through 64, using the narrowest integer
// width able to hold them.
func (br *Reader) readUnsigned(n uint) (uint64, error) {
	switch {
	case n <= 8:
		x, err := br.readUint8(n)
		return uint64(x), err
	case n <= 16:
		x, err := br.readUint16(n)
		return uint64(x), err
	case n <= 32:
		x, err := br.readUint32(n)
		return uint64(x), err
	default:
		return br.readUint64(n)
	}
}

// readUint8 reads n bits, 1 through 8.
// A field wider than the bits left in the cached octet is split in two:
// the high part drains the cached octet and the low part is read from the
// next one.
func (br *Reader) readUint8(n uint) (uint8, error) {
	if br.cur.Empty() {
		if err := br.fill(); err != nil {
			return 0, err
		}
	}

	avail := br.cur.Available()
	if n <= avail {
		return br.cur.Take(n), nil
	}

	hi := br.cur.Take(avail)
	lo, err := br.readUint8(n - avail)
	if err != nil {
		return 0, unexpected(err)
	}
	return hi<<(n-avail) | lo, nil
}

func (br *Reader) readUint16(n uint) (uint16, error) {
	x, err := readChunks(n, 8, func(k uint) (uint64, error) {
		x, err := br.readUint8(k)
		return uint64(x), err
	})
	return uint16(x), err
}

func (br *Reader) readUint32(n uint) (uint32, error) {
	x, err := readChunks(n, 16, func(k uint) (uint64, error) {
		x, err := br.readUint16(k)
		return uint64(x), err
	})
	return uint32(x), err
}

func (br *Reader) readUint64(n uint) (uint64, error) {
	return readChunks(n, 32, func(k uint) (uint64, error) {
		x, err := br.readUint32(k)
		return uint64(x), err
	})
}

// readChunks reads n bits as consecutive chunks of at most step bits and
// joins them, first chunk most significant.
func readChunks(n, step uint, read func(k uint) (uint64, error)) (x uint64, err error) {
	for first := true; n > 0; first = false {
		k := min(n, step)
		v, err := read(k)
		if err != nil {
			if !first {
				err = unexpected(err)
			}
			return 0, err
		}
		x = x<<k | v
		n -= k
	}
	return x, nil
}

// fill pulls the next octet from the source into the cursor.
func (br *Reader) fill() error {
	x, err := br.in.ReadByte()
	if err != nil {
		return err
	}
	br.cur.Load(x)
	return nil
}
