package cards

import (
	"cmp"
	"slices"
)

// Database indexes the cards of one or more card sets by id. It is
// read-only after construction and safe for concurrent use.
type Database struct {
	sets []CardSet
	byID map[uint32]Card
}

// NewDatabase indexes sets in order; a card id seen again in a later set
// replaces the earlier card.
func NewDatabase(sets ...CardSet) *Database {
	db := &Database{
		sets: sets,
		byID: make(map[uint32]Card),
	}
	for _, set := range sets {
		for _, card := range set.CardList {
			db.byID[card.CardID] = card
		}
	}
	return db
}

func (db *Database) Lookup(id uint32) (Card, bool) {
	card, ok := db.byID[id]
	return card, ok
}

// All returns every card sorted by id.
func (db *Database) All() []Card {
	out := make([]Card, 0, len(db.byID))
	for _, card := range db.byID {
		out = append(out, card)
	}
	slices.SortFunc(out, func(a, b Card) int { return cmp.Compare(a.CardID, b.CardID) })
	return out
}

func (db *Database) Sets() []SetInfo {
	out := make([]SetInfo, 0, len(db.sets))
	for _, set := range db.sets {
		out = append(out, set.SetInfo)
	}
	return out
}

func (db *Database) Len() int { return len(db.byID) }
