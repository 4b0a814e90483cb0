package octet

import (
	"fmt"
	"io"
)

// ArrayReader reads octets from buf[index:limit].
type ArrayReader struct {
	buf   []byte
	index int
	limit int
}

// NewArrayReader returns an ArrayReader reading buf from index up to,
// but not including, limit.
func NewArrayReader(buf []byte, index, limit int) (*ArrayReader, error) {
	if err := checkBounds("octet.NewArrayReader", len(buf), index, limit); err != nil {
		return nil, err
	}
	return &ArrayReader{buf: buf, index: index, limit: limit}, nil
}

// ReadByte returns buf[index] and advances index.
// It returns io.EOF once index reaches limit.
func (r *ArrayReader) ReadByte() (byte, error) {
	if r.index >= r.limit {
		return 0, io.EOF
	}
	x := r.buf[r.index]
	r.index++
	return x, nil
}

// Index returns the position of the next octet to be read.
func (r *ArrayReader) Index() int {
	return r.index
}

// ArrayWriter writes octets into buf[index:limit].
type ArrayWriter struct {
	buf   []byte
	index int
	limit int
}

// NewArrayWriter returns an ArrayWriter filling buf from index up to,
// but not including, limit.
func NewArrayWriter(buf []byte, index, limit int) (*ArrayWriter, error) {
	if err := checkBounds("octet.NewArrayWriter", len(buf), index, limit); err != nil {
		return nil, err
	}
	return &ArrayWriter{buf: buf, index: index, limit: limit}, nil
}

// WriteByte stores x at buf[index] and advances index.
// It returns ErrFull once index reaches limit.
func (w *ArrayWriter) WriteByte(x byte) error {
	if w.index >= w.limit {
		return ErrFull
	}
	w.buf[w.index] = x
	w.index++
	return nil
}

// Index returns the position the next octet will be written to.
func (w *ArrayWriter) Index() int {
	return w.index
}

// Bytes returns the octets written so far, from the start of the buffer.
func (w *ArrayWriter) Bytes() []byte {
	return w.buf[:w.index]
}

func checkBounds(op string, n, index, limit int) error {
	if index < 0 || limit < index || limit > n {
		return fmt.Errorf("%s: invalid bounds; index (%d) and limit (%d) outside [0, %d]", op, index, limit, n)
	}
	return nil
}
