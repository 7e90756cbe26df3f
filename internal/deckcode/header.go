package deckcode

const checksumOffset = 1

type header struct {
	version  Version
	base     byte // byte 0; its low nibble starts the hero count
	checksum byte
	// entries occupy payload[entryStart:entryEnd]; the name follows.
	entryStart int
	entryEnd   int
}

func readHeader(payload []byte) (header, error) {
	if len(payload) < 2 {
		return header{}, decodeErr(len(payload), ErrTruncated)
	}
	version := Version(payload[0] >> 4)
	l, ok := layoutFor(version)
	if !ok {
		return header{}, decodeErr(0, ErrUnsupportedVersion)
	}
	if len(payload) < l.headerSize {
		return header{}, decodeErr(len(payload), ErrTruncated)
	}

	h := header{
		version:    version,
		base:       payload[0],
		checksum:   payload[checksumOffset],
		entryStart: l.headerSize,
		entryEnd:   len(payload),
	}
	if l.hasNameLength {
		nameLength := int(payload[2])
		if nameLength > len(payload)-l.headerSize {
			return header{}, decodeErr(2, ErrNameLength)
		}
		h.entryEnd -= nameLength
	}
	return h, nil
}

// appendHeader writes a CurrentVersion header with a zero checksum
// placeholder, followed by any hero count continuation bytes.
func appendHeader(buf []byte, heroCount, nameLength int) []byte {
	buf = append(buf,
		byte(CurrentVersion)<<4|carryBits(uint32(heroCount), heroCountBits),
		0,
		byte(nameLength),
	)
	return appendVarint(buf, uint32(heroCount), heroCountBits)
}

// checksum is the low byte of the sum of the entry section.
func checksum(entries []byte) byte {
	var sum uint32
	for _, b := range entries {
		sum += uint32(b)
	}
	return byte(sum & 0xff)
}
