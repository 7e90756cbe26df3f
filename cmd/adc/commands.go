package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/youruser/artifactdeck/internal/cards"
	"github.com/youruser/artifactdeck/internal/deck"
	"github.com/youruser/artifactdeck/internal/deckcode"
	imagepkg "github.com/youruser/artifactdeck/internal/image"
	"github.com/youruser/artifactdeck/internal/sanitize"
)

func runDecode(e env, args []string) error {
	flagSet := newFlagSet("decode", e)
	cardsDir := flagSet.String("cards", "", "card set directory; resolves card names when set")
	lang := flagSet.String("lang", cards.DefaultLanguage, "card text language")
	asJSON := flagSet.Bool("json", false, "print JSON instead of text")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if flagSet.NArg() == 0 {
		return usagef("at least one deck code is required")
	}

	var db *cards.Database
	if *cardsDir != "" {
		var err error
		if db, err = cards.LoadCardsFromDataDir(*cardsDir); err != nil {
			return err
		}
	}
	language := cards.MatchLanguage(*lang)

	for i, code := range flagSet.Args() {
		d, err := deckcode.Decode(code)
		if err != nil {
			return fmt.Errorf("%s: %w", code, err)
		}
		if i > 0 && !*asJSON {
			fmt.Fprintln(e.stdout)
		}

		if db == nil {
			if *asJSON {
				if err := writeJSON(e.stdout, d); err != nil {
					return err
				}
				continue
			}
			printEntries(e.stdout, d)
			continue
		}

		resolved, err := deck.Resolve(d, db)
		if err != nil {
			return fmt.Errorf("%s: %w", code, err)
		}
		if *asJSON {
			if err := writeJSON(e.stdout, resolved); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintln(e.stdout, deck.ExportDeckText(resolved, language))
	}
	return nil
}

func printEntries(w io.Writer, d deckcode.Deck) {
	if d.Name != "" {
		fmt.Fprintf(w, "# %s\n", d.Name)
	}
	fmt.Fprintln(w, "Heroes:")
	for _, h := range d.Heroes {
		fmt.Fprintf(w, "  turn %d: %d\n", h.Turn, h.ID)
	}
	fmt.Fprintln(w, "Cards:")
	for _, c := range d.Cards {
		fmt.Fprintf(w, "  %dx %d\n", c.Count, c.ID)
	}
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func runEncode(e env, args []string) error {
	flagSet := newFlagSet("encode", e)
	file := flagSet.String("file", "-", "deck JSON file, - for stdin")
	policyName := flagSet.String("sanitize", sanitize.PolicyUGC, "name sanitize policy (ugc, strict)")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if flagSet.NArg() != 0 {
		return usagef("unexpected argument %q", flagSet.Arg(0))
	}
	policy, err := sanitize.New(*policyName)
	if err != nil {
		return usagef("%v", err)
	}

	var data []byte
	if *file == "-" {
		data, err = io.ReadAll(e.stdin)
	} else {
		data, err = os.ReadFile(*file)
	}
	if err != nil {
		return err
	}

	var d deckcode.Deck
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("parsing deck: %w", err)
	}
	code, err := deckcode.NewEncoder(policy).Encode(d)
	if err != nil {
		return err
	}
	fmt.Fprintln(e.stdout, code)
	return nil
}

func runQR(e env, args []string) error {
	flagSet := newFlagSet("qr", e)
	size := flagSet.Int("size", 400, "image edge in pixels")
	output := flagSet.StringP("output", "o", "", "output PNG file (default: stdout)")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if flagSet.NArg() != 1 {
		return usagef("exactly one deck code is required")
	}
	if *size <= 0 {
		return usagef("--size must be positive")
	}

	payload, err := deckcode.ParseToken(flagSet.Arg(0))
	if err != nil {
		return err
	}
	if _, err := deckcode.DecodeBytes(payload); err != nil {
		return err
	}
	png, err := imagepkg.GenerateQRPNG(deckcode.FormatToken(payload), *size)
	if err != nil {
		return err
	}
	if *output == "" {
		_, err = e.stdout.Write(png)
		return err
	}
	return os.WriteFile(*output, png, 0o644)
}

func runCards(e env, args []string) error {
	flagSet := newFlagSet("cards", e)
	cardsDir := flagSet.String("cards", "data", "card set directory")
	heroes := flagSet.Bool("heroes", false, "only list heroes")
	search := flagSet.String("search", "", "words that must appear in the name or text")
	lang := flagSet.String("lang", cards.DefaultLanguage, "card text language")
	colors := flagSet.StringSlice("color", nil, "colors to include (red, green, blue, black)")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	db, err := cards.LoadCardsFromDataDir(*cardsDir)
	if err != nil {
		return err
	}
	language := cards.MatchLanguage(*lang)
	matches := cards.Filter(db.All(), cards.FilterOptions{
		Colors:     *colors,
		FreeWords:  *search,
		Language:   language,
		HeroesOnly: *heroes,
	})
	for _, c := range matches {
		fmt.Fprintf(e.stdout, "%d\t%s\t%s\n", c.CardID, c.CardType, c.Name(language))
	}
	return nil
}
