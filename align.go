package bitpack

import "math"

// Align discards the unread bits of the current octet, then discards whole
// octets until the number of octets pulled since the Reader was created is
// a multiple of byteCount. It returns the number of bits discarded.
//
// Calling Align twice without an intervening read discards nothing the
// second time.
func (br *Reader) Align(byteCount uint) (skipped uint64, err error) {
	if byteCount < 1 {
		return 0, invalidArgument("bitpack.Reader.Align", "byte count", uint64(byteCount), 1, math.MaxUint)
	}

	skipped = uint64(br.cur.Skip())
	if rem := br.cur.Count() % uint64(byteCount); rem != 0 {
		for i := uint64(byteCount) - rem; i > 0; i-- {
			if err := br.fill(); err != nil {
				if skipped > 0 {
					err = unexpected(err)
				}
				return skipped, err
			}
			br.cur.Skip()
			skipped += 8
		}
	}

	return skipped, nil
}

// Align pads the current octet with zero bits and pushes it, then pushes
// zero octets until the number of octets pushed since the Writer was
// created is a multiple of byteCount. Buffered octets are flushed to the
// underlying sink. It returns the number of padding bits written.
//
// Calling Align twice without an intervening write pads nothing the second
// time.
func (bw *Writer) Align(byteCount uint) (padded uint64, err error) {
	if bw.closed {
		return 0, ErrClosed
	}

	if byteCount < 1 {
		return 0, invalidArgument("bitpack.Writer.Align", "byte count", uint64(byteCount), 1, math.MaxUint)
	}

	if bw.cur.Pending() > 0 {
		room := bw.cur.Room()
		if err := bw.writeUint8(room, 0); err != nil {
			return 0, err
		}
		padded = uint64(room)
	}

	if rem := bw.cur.Count() % uint64(byteCount); rem != 0 {
		for i := uint64(byteCount) - rem; i > 0; i-- {
			if err := bw.writeUint8(8, 0); err != nil {
				return padded, err
			}
			padded += 8
		}
	}

	return padded, bw.flush()
}
