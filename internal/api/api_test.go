package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"

	"github.com/youruser/artifactdeck/internal/cards"
	"github.com/youruser/artifactdeck/internal/config"
	"github.com/youruser/artifactdeck/internal/deckcode"
	"github.com/youruser/artifactdeck/internal/sanitize"
)

const exampleCode = "ADCJWkTZX05uwGDCRV4XQGy3QGLmqUBg4GQJgGLGgO7AaABR3JlZW4vQmxhY2sgRXhhbXBsZQ__"

func init() {
	gin.SetMode(gin.TestMode)
}

// exampleDatabase knows every card in exampleCode except the ids in skip.
func exampleDatabase(t *testing.T, skip ...uint32) *cards.Database {
	t.Helper()
	d, err := deckcode.Decode(exampleCode)
	if err != nil {
		t.Fatal(err)
	}
	skipped := make(map[uint32]bool)
	for _, id := range skip {
		skipped[id] = true
	}
	var list []cards.Card
	add := func(id uint32, cardType string) {
		if skipped[id] {
			return
		}
		list = append(list, cards.Card{
			CardID:    id,
			CardType:  cardType,
			CardName:  cards.TranslatedText{"english": fmt.Sprintf("Card %d", id), "german": fmt.Sprintf("Karte %d", id)},
			MiniImage: cards.Image{Default: fmt.Sprintf("https://art.invalid/%d.png", id)},
			IsGreen:   id%2 == 0,
		})
	}
	for _, h := range d.Heroes {
		add(h.ID, cards.TypeHero)
	}
	for _, c := range d.Cards {
		add(c.ID, "Creep")
	}
	return cards.NewDatabase(cards.CardSet{CardList: list})
}

func newTestServer(t *testing.T, db *cards.Database) (*Server, *gin.Engine) {
	t.Helper()
	policy, err := sanitize.New(sanitize.PolicyUGC)
	if err != nil {
		t.Fatal(err)
	}
	s := NewServer(Options{
		Cards:     db,
		Sanitizer: policy,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config:    config.Default(),
	})
	return s, NewRouter(s)
}

func do(r http.Handler, method, target string, body []byte, headers ...string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("response is not JSON: %v: %s", err, w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	_, r := newTestServer(t, exampleDatabase(t))
	w := do(r, http.MethodGet, "/api/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Status string `json:"status"`
		Cards  int    `json:"cards"`
	}
	decodeJSON(t, w, &resp)
	if resp.Status != "ok" || resp.Cards != 20 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestDecode(t *testing.T) {
	_, r := newTestServer(t, nil)
	w := do(r, http.MethodGet, "/api/deck/"+exampleCode, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Deck deckcode.Deck `json:"deck"`
	}
	decodeJSON(t, w, &resp)
	if resp.Deck.Name != "Green/Black Example" || len(resp.Deck.Heroes) != 5 || len(resp.Deck.Cards) != 15 {
		t.Errorf("deck = %+v", resp.Deck)
	}
}

func TestDecodeResolved(t *testing.T) {
	_, r := newTestServer(t, exampleDatabase(t))
	w := do(r, http.MethodGet, "/api/deck/"+exampleCode+"?resolve=1", nil, "Accept-Language", "de-DE,de;q=0.8")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Language   string `json:"language"`
		TotalCards int    `json:"total_cards"`
		Resolved   struct {
			Heroes []struct {
				Card cards.Card `json:"card"`
			} `json:"heroes"`
		} `json:"resolved"`
	}
	decodeJSON(t, w, &resp)
	if resp.Language != "german" {
		t.Errorf("language = %q, want german", resp.Language)
	}
	if resp.TotalCards != 36 {
		t.Errorf("total_cards = %d, want 36", resp.TotalCards)
	}
	if len(resp.Resolved.Heroes) != 5 || resp.Resolved.Heroes[0].Card.CardID != 4005 {
		t.Errorf("resolved heroes = %+v", resp.Resolved.Heroes)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		db     *cards.Database
		target string
		want   int
	}{
		{"malformed", nil, "/api/deck/ADC!!!", http.StatusBadRequest},
		{"bad checksum", nil, "/api/deck/" + strings.Replace(exampleCode, "TZX", "TZY", 1), http.StatusBadRequest},
		{"no database", nil, "/api/deck/" + exampleCode + "?resolve=true", http.StatusServiceUnavailable},
		{"unknown card", exampleDatabase(t, 10091), "/api/deck/" + exampleCode + "?resolve=true", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, r := newTestServer(t, tt.db)
			w := do(r, http.MethodGet, tt.target, nil)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.want, w.Body.String())
			}
			var resp struct {
				Error string `json:"error"`
			}
			decodeJSON(t, w, &resp)
			if resp.Error == "" {
				t.Error("error message missing")
			}
		})
	}
}

func TestEncode(t *testing.T) {
	_, r := newTestServer(t, nil)
	d, err := deckcode.Decode(exampleCode)
	if err != nil {
		t.Fatal(err)
	}
	// Shuffle so the handler has to canonicalize.
	d.Cards[0], d.Cards[len(d.Cards)-1] = d.Cards[len(d.Cards)-1], d.Cards[0]
	body, _ := json.Marshal(d)

	w := do(r, http.MethodPost, "/api/deck/encode", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Code string `json:"code"`
	}
	decodeJSON(t, w, &resp)
	if resp.Code != exampleCode {
		t.Errorf("code = %q, want %q", resp.Code, exampleCode)
	}
}

func TestEncodeRejects(t *testing.T) {
	_, r := newTestServer(t, nil)
	tests := []struct {
		name string
		body string
	}{
		{"not json", "{"},
		{"four heroes", `{"heroes":[{"id":1,"turn":1},{"id":2,"turn":1},{"id":3,"turn":1},{"id":4,"turn":1}],"cards":[{"id":9,"count":1}]}`},
		{"no cards", `{"heroes":[{"id":1,"turn":1},{"id":2,"turn":1},{"id":3,"turn":1},{"id":4,"turn":1},{"id":5,"turn":1}],"cards":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/api/deck/encode", []byte(tt.body))
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestText(t *testing.T) {
	_, r := newTestServer(t, exampleDatabase(t))
	w := do(r, http.MethodGet, "/api/deck/"+exampleCode+"/text?lang=german", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.HasPrefix(body, "# Green/Black Example\nHeroes:\n") {
		t.Errorf("text = %q", body)
	}
	if !strings.Contains(body, "3x Karte 10354") {
		t.Errorf("text missing translated card line: %q", body)
	}
}

func TestQR(t *testing.T) {
	_, r := newTestServer(t, nil)
	w := do(r, http.MethodGet, "/api/deck/"+exampleCode+"/qr?size=200", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}
	img, err := png.Decode(w.Body)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if img.Bounds().Dx() != 200 {
		t.Errorf("width = %d, want 200", img.Bounds().Dx())
	}

	etag := w.Header().Get("ETag")
	if etag == "" {
		t.Fatal("ETag missing")
	}
	// The same deck without its prefix is the same payload.
	w = do(r, http.MethodGet, "/api/deck/"+strings.TrimPrefix(exampleCode, "ADC")+"/qr?size=200", nil, "If-None-Match", etag)
	if w.Code != http.StatusNotModified {
		t.Errorf("conditional status = %d, want 304", w.Code)
	}

	w = do(r, http.MethodGet, "/api/deck/"+exampleCode+"/qr?size=300", nil, "If-None-Match", etag)
	if w.Code != http.StatusOK {
		t.Errorf("other size status = %d, want 200", w.Code)
	}
}

func TestQRBadSize(t *testing.T) {
	_, r := newTestServer(t, nil)
	for _, size := range []string{"0", "-4", "big", "999999"} {
		w := do(r, http.MethodGet, "/api/deck/"+exampleCode+"/qr?size="+size, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("size=%s: status = %d, want 400", size, w.Code)
		}
	}
}

func TestDeckImage(t *testing.T) {
	s, r := newTestServer(t, exampleDatabase(t))
	var calls atomic.Int32
	s.fetchImage = func(ctx context.Context, url string) (image.Image, error) {
		calls.Add(1)
		if strings.HasSuffix(url, "/3000.png") {
			return nil, errors.New("art missing")
		}
		return imaging.New(20, 30, color.NRGBA{G: 0xff, A: 0xff}), nil
	}

	w := do(r, http.MethodGet, "/api/deck/"+exampleCode+"/image", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if _, err := png.Decode(w.Body); err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if got := calls.Load(); got != 20 {
		t.Errorf("fetches = %d, want 20", got)
	}
}

func TestFilter(t *testing.T) {
	_, r := newTestServer(t, exampleDatabase(t))
	w := do(r, http.MethodPost, "/api/cards/filter", []byte(`{"heroes_only": true}`))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Count int          `json:"count"`
		Cards []cards.Card `json:"cards"`
	}
	decodeJSON(t, w, &resp)
	if resp.Count != 5 || len(resp.Cards) != 5 {
		t.Errorf("count = %d, cards = %d, want 5", resp.Count, len(resp.Cards))
	}

	w = do(r, http.MethodPost, "/api/cards/filter", []byte(`{"free_words": "karte 3000", "language": "de"}`))
	decodeJSON(t, w, &resp)
	if resp.Count != 1 || resp.Cards[0].CardID != 3000 {
		t.Errorf("translated search = %+v", resp)
	}
}

func TestFilterWithoutDatabase(t *testing.T) {
	_, r := newTestServer(t, nil)
	w := do(r, http.MethodPost, "/api/cards/filter", []byte(`{}`))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}
