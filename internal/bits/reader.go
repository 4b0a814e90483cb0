// Package bits provides the bit registers shared by the bit reader and
// writer, and small binary coding helpers.
package bits

// ReadCursor tracks the octet currently being drained by a reader.
// It buffers bits up to the next byte boundary.
type ReadCursor struct {
	x   uint8  // last octet pulled from the source
	pos uint   // number of bits of x already consumed; 8 if x is spent
	n   uint64 // number of octets pulled so far
}

// NewReadCursor returns an empty ReadCursor, which must be loaded before
// the first bit is taken.
func NewReadCursor() ReadCursor {
	return ReadCursor{pos: 8}
}

// Empty reports whether every bit of the cached octet has been consumed.
func (c *ReadCursor) Empty() bool {
	return c.pos >= 8
}

// Available returns the number of unread bits in the cached octet.
func (c *ReadCursor) Available() uint {
	if c.pos >= 8 {
		return 0
	}
	return 8 - c.pos
}

// Load caches the next octet pulled from the source.
func (c *ReadCursor) Load(x uint8) {
	c.x = x
	c.pos = 0
	c.n = inc(c.n)
}

// Take consumes the next n bits of the cached octet, most significant
// first, and returns them as the lowest n bits of the result.
// n must be between 1 and Available.
func (c *ReadCursor) Take(n uint) uint8 {
	x := c.x << c.pos >> (8 - n)
	c.pos += n
	return x
}

// Skip discards the unread bits of the cached octet and returns their
// number.
func (c *ReadCursor) Skip() uint {
	n := c.Available()
	c.pos = 8
	return n
}

// Count returns the number of octets pulled so far.
func (c *ReadCursor) Count() uint64 {
	return c.n
}
