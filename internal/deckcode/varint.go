package deckcode

import "math"

// carryBits returns the low bits of value with the continue flag at
// position bits set when value does not fit. bits is at most 7.
func carryBits(value uint32, bits uint) byte {
	limit := uint32(1) << bits
	result := value & (limit - 1)
	if value >= limit {
		result |= limit
	}
	return byte(result)
}

// appendVarint writes the part of value above alreadyWritten bits as 7-bit
// chunks, continue flag in bit 7 of every chunk but the last. Nothing is
// written when the remaining value is zero.
func appendVarint(buf []byte, value uint32, alreadyWritten uint) []byte {
	value >>= alreadyWritten
	for value > 0 {
		buf = append(buf, carryBits(value, chunkBits))
		value >>= chunkBits
	}
	return buf
}

// readVarint reassembles a value whose low baseBits bits (and continue
// flag) were already read as baseValue. Continuation bytes come from
// buf[cursor:end]. With baseBits zero the value lives entirely in
// continuation bytes. It returns the value and the advanced cursor.
func readVarint(buf []byte, cursor, end int, baseValue uint32, baseBits uint) (uint32, int, error) {
	var value uint64
	shift := uint(0)

	if baseBits > 0 {
		continueBit := uint32(1) << baseBits
		value = uint64(baseValue & (continueBit - 1))
		if baseValue&continueBit == 0 {
			return uint32(value), cursor, nil
		}
		shift = baseBits
	}

	for {
		if cursor >= end {
			return 0, cursor, decodeErr(cursor, ErrTruncated)
		}
		if shift >= 32 {
			return 0, cursor, decodeErr(cursor, ErrVarintOverflow)
		}
		next := buf[cursor]
		cursor++

		value |= uint64(next&0x7f) << shift
		if value > math.MaxUint32 {
			return 0, cursor - 1, decodeErr(cursor-1, ErrVarintOverflow)
		}
		if next&0x80 == 0 {
			return uint32(value), cursor, nil
		}
		shift += chunkBits
	}
}
