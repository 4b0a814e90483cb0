package octet

import (
	"hash"
	"io"
)

// HashReader tees every octet read from a source into a hash.
// Octets are hashed only when the source returns them without error.
type HashReader struct {
	in io.ByteReader
	h  hash.Hash
}

// NewHashReader returns a HashReader over in feeding h.
func NewHashReader(in io.ByteReader, h hash.Hash) *HashReader {
	return &HashReader{in: in, h: h}
}

// ReadByte reads an octet from the source and adds it to the hash.
func (r *HashReader) ReadByte() (byte, error) {
	x, err := r.in.ReadByte()
	if err != nil {
		return 0, err
	}
	r.h.Write([]byte{x})
	return x, nil
}

// Hash returns the hash fed by r.
func (r *HashReader) Hash() hash.Hash {
	return r.h
}

// Close closes the source if it implements io.Closer.
func (r *HashReader) Close() error {
	if c, ok := r.in.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// HashWriter tees every octet written to a sink into a hash.
// Octets are hashed only when the sink accepts them.
type HashWriter struct {
	out io.ByteWriter
	h   hash.Hash
}

// NewHashWriter returns a HashWriter over out feeding h.
func NewHashWriter(out io.ByteWriter, h hash.Hash) *HashWriter {
	return &HashWriter{out: out, h: h}
}

// WriteByte writes x to the sink and adds it to the hash.
func (w *HashWriter) WriteByte(x byte) error {
	if err := w.out.WriteByte(x); err != nil {
		return err
	}
	w.h.Write([]byte{x})
	return nil
}

// Hash returns the hash fed by w.
func (w *HashWriter) Hash() hash.Hash {
	return w.h
}

// Flush flushes the sink if it buffers octets.
func (w *HashWriter) Flush() error {
	if f, ok := w.out.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close closes the sink if it implements io.Closer.
func (w *HashWriter) Close() error {
	if c, ok := w.out.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
