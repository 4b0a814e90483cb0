// Package crc8 implements the 8-bit cyclic redundancy check, or CRC-8,
// checksum, most significant bit first and with a zero initial value.
package crc8

import "github.com/pchchv/bitpack/internal/hashutil"

// Size of a CRC-8 checksum in bytes.
const Size = 1

// ATM is the CRC-8-ATM polynomial x^8 + x^2 + x + 1, as used by FLAC frame
// headers.
const ATM = 0x07

// ATMTable is the table for the ATM polynomial.
var ATMTable = MakeTable(ATM)

// Table is a 256-word table representing
// the polynomial for efficient processing.
type Table [256]uint8

// MakeTable returns the Table constructed from the specified polynomial.
func MakeTable(poly uint8) *Table {
	t := new(Table)
	for i := range t {
		crc := uint8(i)
		for j := 0; j < 8; j++ {
			if crc&0x80 != 0 {
				crc = crc<<1 ^ poly
			} else {
				crc <<= 1
			}
		}
		t[i] = crc
	}
	return t
}

// digest represents the partial evaluation of a checksum.
type digest struct {
	crc   uint8
	table *Table
}

// New creates a new hashutil.Hash8 computing the CRC-8 checksum
// using the polynomial represented by the Table.
func New(table *Table) hashutil.Hash8 {
	return &digest{table: table}
}

// NewATM creates a new hashutil.Hash8 computing the CRC-8 checksum
// using the ATM polynomial.
func NewATM() hashutil.Hash8 {
	return New(ATMTable)
}

func (d *digest) Size() int {
	return Size
}

func (d *digest) BlockSize() int {
	return 1
}

func (d *digest) Reset() {
	d.crc = 0
}

func (d *digest) Write(p []byte) (n int, err error) {
	d.crc = Update(d.crc, d.table, p)
	return len(p), nil
}

// Sum appends the current hash to b and returns the resulting slice.
func (d *digest) Sum(b []byte) []byte {
	return append(b, d.crc)
}

func (d *digest) Sum8() uint8 {
	return d.crc
}

// Update returns the result of adding the bytes in p to the crc.
func Update(crc uint8, table *Table, p []byte) uint8 {
	for _, v := range p {
		crc = table[crc^v]
	}
	return crc
}

// Checksum returns the CRC-8 checksum of data
// using the polynomial represented by the Table.
func Checksum(data []byte, table *Table) uint8 {
	return Update(0, table, data)
}

// ChecksumATM returns the CRC-8 checksum of data
// using the ATM polynomial.
func ChecksumATM(data []byte) uint8 {
	return Update(0, ATMTable, data)
}
