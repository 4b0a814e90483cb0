package octet

import (
	"context"
	"io"
)

// ChanReader receives octets from a channel.
type ChanReader struct {
	ctx context.Context
	ch  <-chan byte
}

// NewChanReader returns a ChanReader receiving from ch.
// A closed channel reads as io.EOF; a done ctx aborts a pending receive
// with ctx.Err().
func NewChanReader(ctx context.Context, ch <-chan byte) *ChanReader {
	return &ChanReader{ctx: ctx, ch: ch}
}

// ReadByte blocks until an octet is received, ch is closed or ctx is done.
func (r *ChanReader) ReadByte() (byte, error) {
	select {
	case x, ok := <-r.ch:
		if !ok {
			return 0, io.EOF
		}
		return x, nil
	case <-r.ctx.Done():
		return 0, r.ctx.Err()
	}
}

// ChanWriter sends octets to a channel.
type ChanWriter struct {
	ctx    context.Context
	ch     chan<- byte
	closed bool
}

// NewChanWriter returns a ChanWriter sending to ch. A done ctx aborts a
// pending send with ctx.Err().
func NewChanWriter(ctx context.Context, ch chan<- byte) *ChanWriter {
	return &ChanWriter{ctx: ctx, ch: ch}
}

// WriteByte blocks until x is sent or ctx is done.
func (w *ChanWriter) WriteByte(x byte) error {
	if w.closed {
		return ErrClosed
	}

	select {
	case w.ch <- x:
		return nil
	case <-w.ctx.Done():
		return w.ctx.Err()
	}
}

// Close closes the channel, signaling end of data to the receiver.
// Calling Close on a closed ChanWriter is a no-op.
func (w *ChanWriter) Close() error {
	if !w.closed {
		w.closed = true
		close(w.ch)
	}
	return nil
}
