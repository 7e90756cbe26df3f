package deckcode

import "fmt"

// entry is one decoded hero or card. For heroes count carries the turn.
type entry struct {
	id    uint32
	count uint32
}

// appendEntry writes one (count, delta) pair. count must be at least 1.
func appendEntry(buf []byte, count, delta uint32) ([]byte, error) {
	start := len(buf)

	// Counts 1-3 fit in the two header bits with a bias of one. Anything
	// larger sets both bits and follows the delta as its own varint.
	extended := count-1 >= countCodeExtended
	code := byte(countCodeExtended)
	if !extended {
		code = byte(count - 1)
	}

	buf = append(buf, code<<6|carryBits(delta, entryDeltaBits))
	buf = appendVarint(buf, delta, entryDeltaBits)
	if extended {
		buf = appendVarint(buf, count, 0)
	}

	if size := len(buf) - start; size > MaxEntrySize {
		return buf[:start], &EncodeError{Err: ErrEntryTooLarge, Detail: fmt.Sprintf("%d bytes", size)}
	}
	return buf, nil
}

// readEntry decodes the entry at buf[cursor:] without reading at or past
// end. The returned id is prevID plus the decoded delta.
func readEntry(buf []byte, cursor, end int, prevID uint32) (entry, int, error) {
	if cursor >= end {
		return entry{}, cursor, decodeErr(cursor, ErrTruncated)
	}
	header := buf[cursor]
	cursor++

	delta, cursor, err := readVarint(buf, cursor, end, uint32(header), entryDeltaBits)
	if err != nil {
		return entry{}, cursor, err
	}
	id := prevID + delta
	if id < prevID {
		return entry{}, cursor, decodeErr(cursor, ErrVarintOverflow)
	}

	code := header >> 6
	if code != countCodeExtended {
		return entry{id: id, count: uint32(code) + 1}, cursor, nil
	}
	count, cursor, err := readVarint(buf, cursor, end, 0, 0)
	if err != nil {
		return entry{}, cursor, err
	}
	return entry{id: id, count: count}, cursor, nil
}
