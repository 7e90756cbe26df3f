package deckcode

import (
	"fmt"
	"unicode/utf8"
)

// Sanitizer cleans untrusted markup out of a deck name before it is
// encoded.
type Sanitizer interface {
	Sanitize(name string) string
}

// SanitizerFunc adapts a plain function to Sanitizer.
type SanitizerFunc func(name string) string

func (f SanitizerFunc) Sanitize(name string) string { return f(name) }

// Encoder turns decks into deck codes. It holds no mutable state and may
// be shared between goroutines if its Sanitizer can.
type Encoder struct {
	sanitizer Sanitizer
}

// NewEncoder returns an Encoder that passes names through s. A nil s keeps
// names as given, apart from the length cap.
func NewEncoder(s Sanitizer) *Encoder {
	return &Encoder{sanitizer: s}
}

// Encode is shorthand for NewEncoder(nil).Encode.
func Encode(deck Deck) (string, error) {
	return NewEncoder(nil).Encode(deck)
}

// Encode returns the deck code for deck. The deck is canonicalized on a
// copy; the caller's slices keep their order.
func (e *Encoder) Encode(deck Deck) (string, error) {
	payload, err := e.EncodeBytes(deck)
	if err != nil {
		return "", err
	}
	return FormatToken(payload), nil
}

// EncodeBytes returns the binary payload for deck without the text
// transport applied.
func (e *Encoder) EncodeBytes(deck Deck) ([]byte, error) {
	deck = Canonical(deck)
	if len(deck.Heroes) != HeroCount {
		return nil, &EncodeError{Err: ErrHeroCount, Detail: fmt.Sprintf("got %d", len(deck.Heroes))}
	}
	if len(deck.Cards) == 0 {
		return nil, &EncodeError{Err: ErrNoCards}
	}

	name := e.name(deck.Name)
	payload := make([]byte, 0, HeaderSize+2*(len(deck.Heroes)+len(deck.Cards))+len(name))
	payload = appendHeader(payload, len(deck.Heroes), len(name))

	var err error
	var prev uint32
	for _, hero := range deck.Heroes {
		if hero.Turn == 0 {
			return nil, &EncodeError{Err: ErrZeroCount, Detail: fmt.Sprintf("hero %d", hero.ID)}
		}
		if payload, err = appendEntry(payload, hero.Turn, hero.ID-prev); err != nil {
			return nil, err
		}
		prev = hero.ID
	}

	prev = 0
	for _, card := range deck.Cards {
		if card.Count == 0 {
			return nil, &EncodeError{Err: ErrZeroCount, Detail: fmt.Sprintf("card %d", card.ID)}
		}
		if payload, err = appendEntry(payload, card.Count, card.ID-prev); err != nil {
			return nil, err
		}
		prev = card.ID
	}

	entryEnd := len(payload)
	payload = append(payload, name...)
	payload[checksumOffset] = checksum(payload[HeaderSize:entryEnd])
	return payload, nil
}

func (e *Encoder) name(raw string) string {
	if raw == "" {
		return ""
	}
	if e.sanitizer != nil {
		raw = e.sanitizer.Sanitize(raw)
	}
	return TrimName(raw)
}

// TrimName shrinks name to at most MaxNameLength bytes. It cuts from the
// end a quarter of the excess at a time (at least one byte), backing each
// cut up to the start of a rune so multi-byte characters are never split.
func TrimName(name string) string {
	for len(name) > MaxNameLength {
		step := max(1, (len(name)-MaxNameLength)/4)
		cut := len(name) - step
		for cut > 0 && !utf8.RuneStart(name[cut]) {
			cut--
		}
		name = name[:cut]
	}
	return name
}
