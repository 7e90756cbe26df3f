// Package deck joins decoded deck codes with card metadata.
package deck

import (
	"fmt"

	"github.com/youruser/artifactdeck/internal/cards"
	"github.com/youruser/artifactdeck/internal/deckcode"
)

// Lookup resolves a card id to its metadata. *cards.Database implements it.
type Lookup interface {
	Lookup(id uint32) (cards.Card, bool)
}

type HeroCard struct {
	Card cards.Card `json:"card"`
	Turn uint32     `json:"turn"`
}

type CardCard struct {
	Card  cards.Card `json:"card"`
	Count uint32     `json:"count"`
}

// Deck is a deck code with every entry resolved to its card.
type Deck struct {
	Name   string     `json:"name"`
	Heroes []HeroCard `json:"heroes"`
	Cards  []CardCard `json:"cards"`
}

// UnknownCardError reports an id the card database does not know.
type UnknownCardError struct {
	ID uint32
}

func (e *UnknownCardError) Error() string {
	return fmt.Sprintf("unknown card id %d", e.ID)
}

// Resolve looks up every hero and card of code. Entry order is kept.
func Resolve(code deckcode.Deck, db Lookup) (Deck, error) {
	out := Deck{
		Name:   code.Name,
		Heroes: make([]HeroCard, 0, len(code.Heroes)),
		Cards:  make([]CardCard, 0, len(code.Cards)),
	}
	for _, h := range code.Heroes {
		card, ok := db.Lookup(h.ID)
		if !ok {
			return Deck{}, &UnknownCardError{ID: h.ID}
		}
		out.Heroes = append(out.Heroes, HeroCard{Card: card, Turn: h.Turn})
	}
	for _, c := range code.Cards {
		card, ok := db.Lookup(c.ID)
		if !ok {
			return Deck{}, &UnknownCardError{ID: c.ID}
		}
		out.Cards = append(out.Cards, CardCard{Card: card, Count: c.Count})
	}
	return out, nil
}

// Code converts d back to codec entries. Signature cards included by one
// of the heroes are left out; they come with the hero.
func (d Deck) Code() deckcode.Deck {
	signatures := make(map[uint32]bool)
	out := deckcode.Deck{
		Name:   d.Name,
		Heroes: make([]deckcode.HeroEntry, 0, len(d.Heroes)),
		Cards:  make([]deckcode.CardEntry, 0, len(d.Cards)),
	}
	for _, h := range d.Heroes {
		out.Heroes = append(out.Heroes, deckcode.HeroEntry{ID: h.Card.CardID, Turn: h.Turn})
		for _, id := range h.Card.Signatures() {
			signatures[id] = true
		}
	}
	for _, c := range d.Cards {
		if signatures[c.Card.CardID] {
			continue
		}
		out.Cards = append(out.Cards, deckcode.CardEntry{ID: c.Card.CardID, Count: c.Count})
	}
	return out
}

// TotalCards counts card copies, heroes not included.
func (d Deck) TotalCards() int {
	total := 0
	for _, c := range d.Cards {
		total += int(c.Count)
	}
	return total
}
