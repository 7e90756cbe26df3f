package deckcode

// Decode parses a deck code into a Deck. Heroes and cards are returned in
// wire order, which is ascending by id.
func Decode(token string) (Deck, error) {
	payload, err := ParseToken(token)
	if err != nil {
		return Deck{}, err
	}
	return DecodeBytes(payload)
}

// DecodeBytes parses a raw payload, as produced by Encoder.EncodeBytes.
func DecodeBytes(payload []byte) (Deck, error) {
	h, err := readHeader(payload)
	if err != nil {
		return Deck{}, err
	}
	if sum := checksum(payload[h.entryStart:h.entryEnd]); sum != h.checksum {
		return Deck{}, decodeErr(checksumOffset, ErrChecksum)
	}

	heroCount, cursor, err := readVarint(payload, h.entryStart, h.entryEnd, uint32(h.base), heroCountBits)
	if err != nil {
		return Deck{}, err
	}

	// Every entry is at least one byte, so the remaining section bounds
	// how many heroes can really be present.
	capacity := h.entryEnd - cursor
	if uint64(heroCount) < uint64(capacity) {
		capacity = int(heroCount)
	}
	deck := Deck{
		Heroes: make([]HeroEntry, 0, capacity),
		Cards:  make([]CardEntry, 0, h.entryEnd-cursor),
	}

	var prev uint32
	for i := uint32(0); i < heroCount; i++ {
		var e entry
		if e, cursor, err = readEntry(payload, cursor, h.entryEnd, prev); err != nil {
			return Deck{}, err
		}
		deck.Heroes = append(deck.Heroes, HeroEntry{ID: e.id, Turn: e.count})
		prev = e.id
	}

	prev = 0
	for cursor < h.entryEnd {
		var e entry
		if e, cursor, err = readEntry(payload, cursor, h.entryEnd, prev); err != nil {
			return Deck{}, err
		}
		deck.Cards = append(deck.Cards, CardEntry{ID: e.id, Count: e.count})
		prev = e.id
	}

	deck.Name = string(payload[h.entryEnd:])
	return deck, nil
}
