package deckcode

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed reports a token whose text is not valid base64.
	ErrMalformed = errors.New("deckcode: malformed token")
	// ErrTruncated reports a payload that ends inside the header or an entry.
	ErrTruncated = errors.New("deckcode: truncated payload")
	// ErrVarintOverflow reports a varint wider than 32 bits.
	ErrVarintOverflow = errors.New("deckcode: varint overflows uint32")
	// ErrNameLength reports a name length larger than the payload.
	ErrNameLength = errors.New("deckcode: name length exceeds payload")
	// ErrChecksum reports a checksum byte that does not match the entries.
	ErrChecksum = errors.New("deckcode: checksum mismatch")
	// ErrUnsupportedVersion reports a layout version newer than this package.
	ErrUnsupportedVersion = errors.New("deckcode: unsupported version")

	ErrHeroCount     = errors.New("deckcode: deck must have exactly 5 heroes")
	ErrNoCards       = errors.New("deckcode: deck must have at least one card")
	ErrZeroCount     = errors.New("deckcode: count and turn must be at least 1")
	ErrEntryTooLarge = errors.New("deckcode: entry exceeds maximum size")
)

// DecodeError is returned for any token or payload that cannot be decoded.
// Offset is the payload byte index where decoding stopped, or -1 when the
// failure happened before the payload was available.
type DecodeError struct {
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Offset < 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v at byte %d", e.Err, e.Offset)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError is returned when a deck cannot be turned into a token.
type EncodeError struct {
	Err    error
	Detail string
}

func (e *EncodeError) Error() string {
	if e.Detail == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + ": " + e.Detail
}

func (e *EncodeError) Unwrap() error { return e.Err }

func decodeErr(offset int, err error) error {
	return &DecodeError{Offset: offset, Err: err}
}
