package cards

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func loadTestdata(t *testing.T) *Database {
	t.Helper()
	db, err := LoadCardsFromDataDir("testdata")
	if err != nil {
		t.Fatalf("LoadCardsFromDataDir: %v", err)
	}
	return db
}

func TestParseCardSetAcceptsComments(t *testing.T) {
	data := []byte(`{
		// comment
		"card_set": {"version": 2, "set_info": {"set_id": 1, "name": {"english": "Call to Arms",},},
		"card_list": [{"card_id": 7, "card_type": "Creep", "card_name": {"english": "Seven"}, "references": []},]}
	}`)
	set, err := ParseCardSet(data)
	if err != nil {
		t.Fatalf("ParseCardSet: %v", err)
	}
	if set.Version != 2 || set.SetInfo.SetID != 1 || set.SetInfo.Name.Get("french") != "Call to Arms" {
		t.Errorf("set = %+v", set)
	}
	if len(set.CardList) != 1 || set.CardList[0].CardID != 7 {
		t.Errorf("cards = %+v", set.CardList)
	}
}

func TestParseCardSetInvalid(t *testing.T) {
	if _, err := ParseCardSet([]byte(`{"card_set": [`)); err == nil {
		t.Fatal("ParseCardSet succeeded on truncated JSON")
	}
}

func TestLoadCardsFromDataDir(t *testing.T) {
	db := loadTestdata(t)
	if db.Len() != 4 {
		t.Fatalf("Len = %d, want 4", db.Len())
	}
	hero, ok := db.Lookup(4000)
	if !ok {
		t.Fatal("Lookup(4000) missing")
	}
	if !hero.IsHero() || hero.Name("german") != "Testwächter" || hero.Name("thai") != "Test Warden" {
		t.Errorf("hero = %+v", hero)
	}
	if got := hero.Signatures(); !reflect.DeepEqual(got, []uint32{4002}) {
		t.Errorf("Signatures = %v, want [4002]", got)
	}
	if got := hero.Colors(); !reflect.DeepEqual(got, []string{"green"}) {
		t.Errorf("Colors = %v", got)
	}
	if _, ok := db.Lookup(1); ok {
		t.Error("Lookup(1) found a card")
	}
	if sets := db.Sets(); len(sets) != 1 || sets[0].Name.Get(DefaultLanguage) != "Test Set" {
		t.Errorf("Sets = %+v", sets)
	}
}

func TestLoadCardsFromEmptyDir(t *testing.T) {
	if _, err := LoadCardsFromDataDir(t.TempDir()); err == nil {
		t.Fatal("LoadCardsFromDataDir on empty dir succeeded")
	}
}

func TestDatabaseAllSortedAndLaterSetsWin(t *testing.T) {
	first := CardSet{CardList: []Card{{CardID: 30}, {CardID: 10, CardType: "Creep"}}}
	second := CardSet{CardList: []Card{{CardID: 10, CardType: "Spell"}, {CardID: 20}}}
	db := NewDatabase(first, second)

	var ids []uint32
	for _, c := range db.All() {
		ids = append(ids, c.CardID)
	}
	if !reflect.DeepEqual(ids, []uint32{10, 20, 30}) {
		t.Errorf("All ids = %v", ids)
	}
	if c, _ := db.Lookup(10); c.CardType != "Spell" {
		t.Errorf("Lookup(10).CardType = %q, want Spell", c.CardType)
	}
}

func TestFilter(t *testing.T) {
	all := loadTestdata(t).All()
	ids := func(cards []Card) []uint32 {
		out := []uint32{}
		for _, c := range cards {
			out = append(out, c.CardID)
		}
		return out
	}

	tests := []struct {
		name string
		opt  FilterOptions
		want []uint32
	}{
		{"no options", FilterOptions{}, []uint32{4000, 4002, 10091, 10200}},
		{"green", FilterOptions{Colors: []string{"Green"}}, []uint32{4000, 4002}},
		{"heroes only", FilterOptions{HeroesOnly: true}, []uint32{4000}},
		{"no heroes", FilterOptions{NoHeroes: true, Colors: []string{"green"}}, []uint32{4002}},
		{"type", FilterOptions{Types: []string{"item"}}, []uint32{10200}},
		{"mana", FilterOptions{ManaCosts: []int{3, 4}}, []uint32{4002, 10091}},
		{"gold", FilterOptions{GoldCosts: []int{5}}, []uint32{10200}},
		{"free words", FilterOptions{FreeWords: "double NIGHT"}, []uint32{10091}},
		{"free words translated", FilterOptions{FreeWords: "wächter", Language: "german"}, []uint32{4000}},
		{"no match", FilterOptions{Colors: []string{"red"}}, []uint32{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ids(Filter(all, tt.opt)); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "english"},
		{"german", "german"},
		{"de-DE,de;q=0.9,en;q=0.5", "german"},
		{"pt-BR", "brazilian"},
		{"zh-TW", "tchinese"},
		{"zh-CN", "schinese"},
		{"ko", "koreana"},
		{"en-GB", "english"},
		{"not a language;;", "english"},
	}
	for _, tt := range tests {
		if got := MatchLanguage(tt.in); got != tt.want {
			t.Errorf("MatchLanguage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCacheRoundTrip(t *testing.T) {
	db := loadTestdata(t)
	path := filepath.Join(t.TempDir(), "cache", "cards.cbor")
	if err := SaveCache(path, db); err != nil {
		t.Fatalf("SaveCache: %v", err)
	}
	cached, err := LoadCache(path)
	if err != nil {
		t.Fatalf("LoadCache: %v", err)
	}
	if cached.Len() != db.Len() {
		t.Fatalf("cached Len = %d, want %d", cached.Len(), db.Len())
	}
	for _, want := range db.All() {
		got, ok := cached.Lookup(want.CardID)
		if !ok {
			t.Fatalf("cached Lookup(%d) missing", want.CardID)
		}
		if got.Name(DefaultLanguage) != want.Name(DefaultLanguage) || got.ManaCost != want.ManaCost ||
			!reflect.DeepEqual(got.Signatures(), want.Signatures()) {
			t.Errorf("cached card %d = %+v, want %+v", want.CardID, got, want)
		}
	}

	first, _ := os.ReadFile(path)
	if err := SaveCache(path, db); err != nil {
		t.Fatal(err)
	}
	second, _ := os.ReadFile(path)
	if string(first) != string(second) {
		t.Error("cache encoding is not deterministic")
	}
}

func TestLoadCacheRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.cbor")
	if err := os.WriteFile(path, []byte{0xff, 0x00}, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCache(path); err == nil {
		t.Fatal("LoadCache accepted garbage")
	}
}

func TestLoadDatabaseUsesCache(t *testing.T) {
	dataDir := t.TempDir()
	source, err := os.ReadFile(filepath.Join("testdata", "card_set_00.jsonc"))
	if err != nil {
		t.Fatal(err)
	}
	setPath := filepath.Join(dataDir, "card_set_00.jsonc")
	if err := os.WriteFile(setPath, source, 0o644); err != nil {
		t.Fatal(err)
	}
	cachePath := filepath.Join(t.TempDir(), "cards.cbor")

	db, err := LoadDatabase(dataDir, cachePath, testLogger())
	if err != nil {
		t.Fatalf("LoadDatabase: %v", err)
	}
	if db.Len() != 4 {
		t.Fatalf("Len = %d, want 4", db.Len())
	}
	if _, err := os.Stat(cachePath); err != nil {
		t.Fatalf("cache not written: %v", err)
	}

	// With the source gone only the cache can satisfy the load.
	if err := os.Remove(setPath); err != nil {
		t.Fatal(err)
	}
	cached, err := LoadDatabase(dataDir, cachePath, testLogger())
	if err != nil {
		t.Fatalf("LoadDatabase from cache: %v", err)
	}
	if cached.Len() != 4 {
		t.Errorf("cached Len = %d, want 4", cached.Len())
	}
}

func TestLoadDatabaseWithoutCache(t *testing.T) {
	db, err := LoadDatabase("testdata", "", testLogger())
	if err != nil {
		t.Fatal(err)
	}
	if db.Len() != 4 {
		t.Errorf("Len = %d, want 4", db.Len())
	}
}
