package deckcode

import (
	"cmp"
	"slices"
)

// HeroEntry is a hero and the turn it is deployed on (1-indexed).
type HeroEntry struct {
	ID   uint32 `json:"id"`
	Turn uint32 `json:"turn"`
}

// CardEntry is a card and the number of copies in the deck.
type CardEntry struct {
	ID    uint32 `json:"id"`
	Count uint32 `json:"count"`
}

// Deck is the structured form of a deck code. Entries are ordered and
// compared by ID alone.
type Deck struct {
	Heroes []HeroEntry `json:"heroes"`
	Cards  []CardEntry `json:"cards"`
	Name   string      `json:"name"`
}

// Canonical returns a copy of deck with heroes and cards stably sorted by
// id. The input slices are left untouched.
func Canonical(deck Deck) Deck {
	out := Deck{
		Heroes: slices.Clone(deck.Heroes),
		Cards:  slices.Clone(deck.Cards),
		Name:   deck.Name,
	}
	slices.SortStableFunc(out.Heroes, func(a, b HeroEntry) int { return cmp.Compare(a.ID, b.ID) })
	slices.SortStableFunc(out.Cards, func(a, b CardEntry) int { return cmp.Compare(a.ID, b.ID) })
	return out
}
