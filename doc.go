// Package bitpack provides bit-granularity encoding and decoding of integers,
// booleans and byte sequences on top of any byte-oriented source or sink.
//
// Fields are packed tightly across octet boundaries, most significant bit
// first, so a 3-bit enum followed by a 13-bit length occupies exactly two
// octets:
//
//	w := bitpack.NewWriter(buf)
//	w.WriteUint8(3, kind)
//	w.WriteUint16(13, length)
//	w.Close()
//
// The layout is not self-describing. A Reader decodes a stream only when it
// issues the same sequence of calls, with the same sizes, as the Writer that
// produced it.
//
// Octet counting, and therefore alignment, starts at zero when a Reader or
// Writer is created, regardless of the position of the underlying transport.
//
// Reader and Writer are not safe for concurrent use.
package bitpack
