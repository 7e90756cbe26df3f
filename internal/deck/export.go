package deck

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// ExportDeckText renders d as a plain text list in lang. Heroes are
// ordered by turn, then id; cards by id.
func ExportDeckText(d Deck, lang string) string {
	var b strings.Builder
	if d.Name != "" {
		fmt.Fprintf(&b, "# %s\n", d.Name)
	}

	heroes := slices.Clone(d.Heroes)
	slices.SortStableFunc(heroes, func(x, y HeroCard) int {
		if c := cmp.Compare(x.Turn, y.Turn); c != 0 {
			return c
		}
		return cmp.Compare(x.Card.CardID, y.Card.CardID)
	})
	b.WriteString("Heroes:\n")
	for _, h := range heroes {
		fmt.Fprintf(&b, "  turn %d: %s\n", h.Turn, h.Card.Name(lang))
	}

	cardsByID := slices.Clone(d.Cards)
	slices.SortStableFunc(cardsByID, func(x, y CardCard) int { return cmp.Compare(x.Card.CardID, y.Card.CardID) })
	fmt.Fprintf(&b, "Cards (%d):\n", d.TotalCards())
	for _, c := range cardsByID {
		fmt.Fprintf(&b, "  %dx %s\n", c.Count, c.Card.Name(lang))
	}
	return strings.TrimRight(b.String(), "\n")
}
