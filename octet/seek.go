package octet

import (
	"fmt"
	"io"

	"github.com/pchchv/bitpack/internal/bufseekio"
)

// SeekReader is a buffered octet source over a seekable stream, such as
// an *os.File, starting at an explicit offset.
type SeekReader struct {
	rs *bufseekio.ReadSeeker
	c  io.Closer
}

// NewSeekReader returns a SeekReader positioned at offset in rs.
// The stream is closed by Close if it implements io.Closer.
func NewSeekReader(rs io.ReadSeeker, offset int64) (*SeekReader, error) {
	if offset < 0 {
		return nil, fmt.Errorf("octet.NewSeekReader: negative offset (%d)", offset)
	}

	r := &SeekReader{rs: bufseekio.NewReadSeeker(rs)}
	r.c, _ = rs.(io.Closer)
	if _, err := r.rs.Seek(offset, io.SeekStart); err != nil {
		return nil, err
	}
	return r, nil
}

// Read implements io.Reader.
func (r *SeekReader) Read(p []byte) (int, error) {
	return r.rs.Read(p)
}

// ReadByte reads the octet at the current offset and advances it.
func (r *SeekReader) ReadByte() (byte, error) {
	return r.rs.ReadByte()
}

// Seek implements io.Seeker. The buffered window is reused when the
// target offset falls inside it.
func (r *SeekReader) Seek(offset int64, whence int) (int64, error) {
	return r.rs.Seek(offset, whence)
}

// Offset returns the offset of the next octet to be read.
func (r *SeekReader) Offset() int64 {
	return r.rs.Position()
}

// Close closes the underlying stream if it implements io.Closer.
func (r *SeekReader) Close() error {
	if r.c != nil {
		return r.c.Close()
	}
	return nil
}
