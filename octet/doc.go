// Package octet provides octet sources and sinks for bitpack.Reader and
// bitpack.Writer: fixed slices, functions, channels, seekable streams and
// checksumming wrappers.
//
// Sources implement io.ByteReader and return io.EOF at the end of data.
// Sinks implement io.ByteWriter.
package octet

import "errors"

var (
	// ErrFull is returned by a sink which has no room for another octet.
	ErrFull = errors.New("sink full")
	// ErrClosed is returned by operations on a closed source or sink.
	ErrClosed = errors.New("closed")
)
