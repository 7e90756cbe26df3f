// Package deckcode converts between Artifact Deck Codes and decks.
//
// A deck code is the text "ADC" followed by a URL-safe base64 rendering of a
// small binary payload:
//
//	byte 0      version (high nibble) | hero count base bits (low nibble)
//	byte 1      checksum of the entry section
//	byte 2      name length in bytes (version 2 and later)
//	...         hero count continuation bytes, hero entries, card entries
//	...         name bytes
//
// Each entry is a header byte holding a two bit count code, a continue flag
// and the low five bits of the id delta from the previous entry, followed
// by 7-bit continuation chunks for the rest of the delta and, when the
// count code is 3, the full count. Heroes and cards keep separate delta
// bases, so both lists must be sorted by id before they are written.
//
// Decoding is all-or-nothing: a payload that is truncated, overflows, or
// fails its checksum returns a *DecodeError and no deck.
package deckcode
