package disk

// Package disk models 5.25" floppy media as a bag of halftrack bitstreams,
// the same level of abstraction the 1541's head actually sees, rather than
// as a sector array. Sector-level D64 images are converted to this form at
// load time; the drive subsystem only ever reads and writes single bits.

import "github.com/retrosys/c64core/internal/curated"

// gcrEncodeTable is the 1541's 4-bit to 5-bit GCR nibble translation. Every
// nibble maps to a code with no more than two consecutive zero bits - the
// property that lets the read head distinguish a SYNC mark (ten
// consecutive one-bits) from data.
var gcrEncodeTable = [16]uint8{
	0x0a, 0x0b, 0x12, 0x13, 0x0e, 0x0f, 0x16, 0x17,
	0x09, 0x19, 0x1a, 0x1b, 0x0d, 0x1d, 0x1e, 0x15,
}

var gcrDecodeTable = buildGcrDecodeTable()

func buildGcrDecodeTable() map[uint8]uint8 {
	m := make(map[uint8]uint8, 16)
	for nibble, code := range gcrEncodeTable {
		m[code] = uint8(nibble)
	}
	return m
}

// ErrInvalidGCR reports a 5-bit group with no corresponding 4-bit nibble.
var ErrInvalidGCR = curated.Errorf("disk: invalid GCR code")

// EncodeGCR converts 4 data bytes into 5 GCR bytes (32 bits -> 40 bits).
func EncodeGCR(in [4]uint8) [5]uint8 {
	var bits uint64
	nBits := 0
	push := func(code uint8) {
		bits = bits<<5 | uint64(code)
		nBits += 5
	}
	push(gcrEncodeTable[in[0]>>4])
	push(gcrEncodeTable[in[0]&0x0f])
	push(gcrEncodeTable[in[1]>>4])
	push(gcrEncodeTable[in[1]&0x0f])
	push(gcrEncodeTable[in[2]>>4])
	push(gcrEncodeTable[in[2]&0x0f])
	push(gcrEncodeTable[in[3]>>4])
	push(gcrEncodeTable[in[3]&0x0f])

	var out [5]uint8
	for i := 4; i >= 0; i-- {
		out[i] = uint8(bits)
		bits >>= 8
	}
	return out
}

// DecodeGCR converts 5 GCR bytes back into 4 data bytes. Returns
// ErrInvalidGCR if any 5-bit group does not correspond to a valid nibble.
func DecodeGCR(in [5]uint8) ([4]uint8, error) {
	var bits uint64
	for _, b := range in {
		bits = bits<<8 | uint64(b)
	}

	var nibbles [8]uint8
	for i := 7; i >= 0; i-- {
		code := uint8(bits & 0x1f)
		bits >>= 5
		n, ok := gcrDecodeTable[code]
		if !ok {
			return [4]uint8{}, ErrInvalidGCR
		}
		nibbles[i] = n
	}

	var out [4]uint8
	out[0] = nibbles[0]<<4 | nibbles[1]
	out[1] = nibbles[2]<<4 | nibbles[3]
	out[2] = nibbles[4]<<4 | nibbles[5]
	out[3] = nibbles[6]<<4 | nibbles[7]
	return out, nil
}
