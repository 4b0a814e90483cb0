package bits

import "math"

// WriteCursor tracks the octet currently being assembled by a writer.
// A full octet is handed out by Drain before any further bit is placed,
// so pos never stays at 8 between two writes.
type WriteCursor struct {
	x   uint8  // bits placed so far, left-aligned
	pos uint   // number of bits placed into x
	n   uint64 // number of octets drained so far
}

// Pending returns the number of bits placed into the current octet.
func (c *WriteCursor) Pending() uint {
	return c.pos
}

// Room returns the number of bits left in the current octet.
func (c *WriteCursor) Room() uint {
	return 8 - c.pos
}

// Put places the lowest n bits of x after the bits already placed.
// n must be between 1 and Room.
func (c *WriteCursor) Put(n uint, x uint8) {
	x &= Mask8(n)
	c.x |= x << (8 - c.pos - n)
	c.pos += n
}

// Full reports whether the current octet is complete.
func (c *WriteCursor) Full() bool {
	return c.pos >= 8
}

// Drain returns the current octet, zero-padded on the right, and resets
// the cursor for the next one.
func (c *WriteCursor) Drain() uint8 {
	x := c.x
	c.x, c.pos = 0, 0
	c.n = inc(c.n)
	return x
}

// Count returns the number of octets drained so far.
func (c *WriteCursor) Count() uint64 {
	return c.n
}

// Mask8 returns an octet with its lowest n bits set.
func Mask8(n uint) uint8 {
	if n >= 8 {
		return 0xFF
	}
	return 1<<n - 1
}

// Mask64 returns a value with its lowest n bits set.
func Mask64(n uint) uint64 {
	if n >= 64 {
		return math.MaxUint64
	}
	return 1<<n - 1
}

// inc increments an octet counter, saturating at math.MaxUint64.
func inc(n uint64) uint64 {
	if n == math.MaxUint64 {
		return n
	}
	return n + 1
}
