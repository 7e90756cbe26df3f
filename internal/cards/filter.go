package cards

import "strings"

type FilterOptions struct {
	Colors    []string `json:"colors"`
	Types     []string `json:"types"`
	ManaCosts []int    `json:"mana_costs"`
	GoldCosts []int    `json:"gold_costs"`
	FreeWords string   `json:"free_words"`
	Language  string   `json:"language"`
	// HeroesOnly and NoHeroes are mutually exclusive; HeroesOnly wins.
	HeroesOnly bool `json:"heroes_only"`
	NoHeroes   bool `json:"no_heroes"`
}

func containsAny(hay []string, needles []string) bool {
	for _, n := range needles {
		for _, h := range hay {
			if strings.EqualFold(h, n) {
				return true
			}
		}
	}
	return false
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// Filter returns the cards matching every set option, in input order.
func Filter(cards []Card, opt FilterOptions) []Card {
	lang := opt.Language
	if lang == "" {
		lang = DefaultLanguage
	}
	keywords := strings.Fields(strings.ToLower(opt.FreeWords))

	out := []Card{}
	for _, c := range cards {
		if opt.HeroesOnly && !c.IsHero() {
			continue
		}
		if !opt.HeroesOnly && opt.NoHeroes && c.IsHero() {
			continue
		}
		if len(opt.Colors) > 0 && !containsAny(c.Colors(), opt.Colors) {
			continue
		}
		if len(opt.Types) > 0 && !containsAny([]string{c.CardType}, opt.Types) {
			continue
		}
		if len(opt.ManaCosts) > 0 && !containsInt(opt.ManaCosts, c.ManaCost) {
			continue
		}
		if len(opt.GoldCosts) > 0 && !containsInt(opt.GoldCosts, c.GoldCost) {
			continue
		}
		if len(keywords) > 0 {
			name := strings.ToLower(c.Name(lang))
			text := strings.ToLower(c.CardText.Get(lang))
			ok := true
			for _, k := range keywords {
				if !strings.Contains(name, k) && !strings.Contains(text, k) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}
