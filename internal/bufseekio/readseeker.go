// Package bufseekio implements buffered random-access reading.
package bufseekio

import "io"

const (
	defaultBufSize    = 4096
	minReadBufferSize = 16
)

// ReadSeeker implements buffering for an io.ReadSeeker object.
// ReadSeeker is based on bufio.Reader with
// Seek functionality added and unneeded functionality removed.
type ReadSeeker struct {
	buf []byte
	pos int64         // absolute start position of buf
	rd  io.ReadSeeker // read-seeker provided by the client
	r   int           // buf read positions within buf
	w   int           // buf write positions within buf
	err error
}

// NewReadSeeker returns a new ReadSeeker whose buffer has the default size.
func NewReadSeeker(rd io.ReadSeeker) *ReadSeeker {
	return NewReadSeekerSize(rd, defaultBufSize)
}

// NewReadSeekerSize returns a new ReadSeeker whose buffer has at least the
// specified size. If rd is already a ReadSeeker with a large enough buffer,
// it returns rd.
//
// The position of rd when it is passed in is taken as offset 0.
func NewReadSeekerSize(rd io.ReadSeeker, size int) *ReadSeeker {
	if b, ok := rd.(*ReadSeeker); ok && len(b.buf) >= size {
		return b
	}

	if size < minReadBufferSize {
		size = minReadBufferSize
	}

	return &ReadSeeker{
		buf: make([]byte, size),
		rd:  rd,
	}
}

// Read reads data into p. It returns the number of bytes read into p.
// The bytes are taken from at most one Read on the underlying reader,
// hence n may be less than len(p).
// At EOF, the count will be zero and err will be io.EOF.
func (b *ReadSeeker) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		if b.buffered() > 0 {
			return 0, nil
		}
		return 0, b.readErr()
	}

	if b.r == b.w {
		if b.err != nil {
			return 0, b.readErr()
		}

		if len(p) >= len(b.buf) {
			// large read, empty buffer: read directly into p to avoid copy.
			b.pos += int64(b.w)
			b.r, b.w = 0, 0
			n, b.err = b.rd.Read(p)
			b.pos += int64(n)
			return n, b.readErr()
		}

		b.fill()
		if b.r == b.w {
			return 0, b.readErr()
		}
	}

	n = copy(p, b.buf[b.r:b.w])
	b.r += n
	return n, nil
}

// ReadByte reads and returns a single byte.
// If no byte is available, returns an error.
func (b *ReadSeeker) ReadByte() (byte, error) {
	for b.r == b.w {
		if b.err != nil {
			return 0, b.readErr()
		}
		b.fill()
	}

	c := b.buf[b.r]
	b.r++
	return c, nil
}

// Seek implements io.Seeker. Seeking within the buffered data does not
// touch the underlying read-seeker.
func (b *ReadSeeker) Seek(offset int64, whence int) (int64, error) {
	if whence == io.SeekCurrent {
		offset += b.Position()
		whence = io.SeekStart
	}

	if whence == io.SeekStart && b.pos <= offset && offset <= b.pos+int64(b.w) {
		b.r = int(offset - b.pos)
		return offset, nil
	}

	n, err := b.rd.Seek(offset, whence)
	b.pos, b.r, b.w, b.err = n, 0, 0, nil
	return n, err
}

// Position returns the offset of the next byte to be read.
func (b *ReadSeeker) Position() int64 {
	return b.pos + int64(b.r)
}

// fill discards the buffered data and reads a new chunk into the buffer.
func (b *ReadSeeker) fill() {
	b.pos += int64(b.w)
	b.r, b.w = 0, 0
	n, err := b.rd.Read(b.buf)
	if n == 0 && err == nil {
		err = io.ErrNoProgress
	}
	b.w, b.err = n, err
}

// buffered returns the number of bytes that can
// be read from the current buffer.
func (b *ReadSeeker) buffered() int {
	return b.w - b.r
}

func (b *ReadSeeker) readErr() error {
	err := b.err
	b.err = nil
	return err
}
