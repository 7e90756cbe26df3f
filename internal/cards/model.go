package cards

// CardSetFile is the top level object of a card set JSON document.
type CardSetFile struct {
	CardSet CardSet `json:"card_set"`
}

type CardSet struct {
	Version  int     `json:"version"`
	SetInfo  SetInfo `json:"set_info"`
	CardList []Card  `json:"card_list"`
}

type SetInfo struct {
	SetID       int            `json:"set_id"`
	PackItemDef int            `json:"pack_item_def"`
	Name        TranslatedText `json:"name"`
}

// TranslatedText maps a language key ("english", "german", "schinese", ...)
// to text in that language.
type TranslatedText map[string]string

// Get returns the text for lang, falling back to English.
func (t TranslatedText) Get(lang string) string {
	if s := t[lang]; s != "" {
		return s
	}
	return t[DefaultLanguage]
}

type Card struct {
	CardID      uint32         `json:"card_id"`
	BaseCardID  uint32         `json:"base_card_id"`
	CardType    string         `json:"card_type"`
	SubType     string         `json:"sub_type,omitempty"`
	CardName    TranslatedText `json:"card_name"`
	CardText    TranslatedText `json:"card_text"`
	MiniImage   Image          `json:"mini_image"`
	LargeImage  Image          `json:"large_image"`
	IngameImage Image          `json:"ingame_image"`
	Illustrator string         `json:"illustrator,omitempty"`
	IsRed       bool           `json:"is_red,omitempty"`
	IsGreen     bool           `json:"is_green,omitempty"`
	IsBlue      bool           `json:"is_blue,omitempty"`
	IsBlack     bool           `json:"is_black,omitempty"`
	GoldCost    int            `json:"gold_cost,omitempty"`
	ManaCost    int            `json:"mana_cost,omitempty"`
	Attack      int            `json:"attack,omitempty"`
	HitPoints   int            `json:"hit_points,omitempty"`
	References  []Reference    `json:"references"`
}

type Image struct {
	Default string `json:"default,omitempty"`
}

type Reference struct {
	CardID  uint32 `json:"card_id"`
	RefType string `json:"ref_type"`
	Count   int    `json:"count,omitempty"`
}

const (
	TypeHero = "Hero"

	// RefIncludes marks a signature card that comes with a hero.
	RefIncludes = "includes"
)

func (c Card) Name(lang string) string { return c.CardName.Get(lang) }

func (c Card) IsHero() bool { return c.CardType == TypeHero }

// Colors lists the card's colors in a fixed order.
func (c Card) Colors() []string {
	var out []string
	if c.IsRed {
		out = append(out, "red")
	}
	if c.IsGreen {
		out = append(out, "green")
	}
	if c.IsBlue {
		out = append(out, "blue")
	}
	if c.IsBlack {
		out = append(out, "black")
	}
	return out
}

// Signatures returns the ids of the cards this card includes in a deck.
func (c Card) Signatures() []uint32 {
	var out []uint32
	for _, ref := range c.References {
		if ref.RefType == RefIncludes {
			out = append(out, ref.CardID)
		}
	}
	return out
}
