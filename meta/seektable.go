package meta

import (
	"fmt"

	"github.com/pchchv/bitpack"
	"github.com/pchchv/bitpack/codec"
)

// PlaceholderPoint represent the sample number used
// to specify placeholder seek points.
const PlaceholderPoint = 0xFFFFFFFFFFFFFFFF

// seekPointSize is the size of a seek point in octets.
const seekPointSize = 18

// A SeekPoint specifies the byte offset and
// initial sample number of a given target frame.
type SeekPoint struct {
	// Sample number of the first sample in the target frame,
	// or 0xFFFFFFFFFFFFFFFF for a placeholder point.
	SampleNum uint64
	// Offset in bytes from the first byte of
	// the first frame header to the first byte of
	// the target frame's header.
	Offset uint64
	// Number of samples in the target frame.
	NSamples uint16
}

// seekPoint is the codec of a single seek point: 64-bit sample number,
// 64-bit offset and 16-bit sample count.
var seekPoint = codec.Func(
	func(w *bitpack.Writer, p SeekPoint) error {
		if err := w.WriteUint64(64, p.SampleNum); err != nil {
			return err
		}
		if err := w.WriteUint64(64, p.Offset); err != nil {
			return err
		}
		return w.WriteUint16(16, p.NSamples)
	},
	func(r *bitpack.Reader) (p SeekPoint, err error) {
		if p.SampleNum, err = r.ReadUint64(64); err != nil {
			return p, err
		}
		if p.Offset, err = r.ReadUint64(64); err != nil {
			return p, unexpected(err)
		}
		p.NSamples, err = r.ReadUint16(16)
		return p, unexpected(err)
	},
)

// SeekTable contains one or more pre-calculated audio frame seek points.
type SeekTable struct {
	Points []SeekPoint // one or more seek points
}

// parseSeekTable reads and parses the body of a SeekTable metadata block.
func (block *Block) parseSeekTable(r *bitpack.Reader) error {
	// number of seek points is derived from the header length,
	// divided by the size of a SeekPoint;
	// which is 18 bytes.
	n := block.Length / seekPointSize
	if n < 1 {
		return errShortBody("meta.Block.parseSeekTable", block.Length, seekPointSize)
	}
	if block.Length%seekPointSize != 0 {
		return fmt.Errorf("meta.Block.parseSeekTable: length (%d) is not a multiple of %d", block.Length, seekPointSize)
	}

	table := &SeekTable{Points: make([]SeekPoint, n)}
	for i := range table.Points {
		point, err := seekPoint.Decode(r)
		if err != nil {
			return err
		}
		table.Points[i] = point
	}
	if err := table.verify(); err != nil {
		return err
	}

	block.Body = table
	return nil
}

// verify checks that the seek points are sorted in ascending order by
// sample number. Each seek point must have a unique sample number,
// except for placeholder points.
func (table *SeekTable) verify() error {
	if len(table.Points) < 1 {
		return fmt.Errorf("meta.SeekTable: at least one seek point is required")
	}

	var prev uint64
	for i, point := range table.Points {
		sampleNum := point.SampleNum
		if sampleNum == PlaceholderPoint {
			continue
		}
		if i != 0 {
			switch {
			case sampleNum < prev:
				return fmt.Errorf("meta.SeekTable: invalid seek point order; sample number (%d) < prev (%d)", sampleNum, prev)
			case sampleNum == prev:
				return fmt.Errorf("meta.SeekTable: duplicate seek point with sample number (%d)", sampleNum)
			}
		}
		prev = sampleNum
	}
	return nil
}

func (table *SeekTable) write(w *bitpack.Writer) error {
	for _, point := range table.Points {
		if err := seekPoint.Encode(w, point); err != nil {
			return err
		}
	}
	return nil
}

func errShortBody(op string, length, want int64) error {
	return fmt.Errorf("%s: body too short; length (%d) < %d", op, length, want)
}
