package api

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"image"
	"image/png"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/zeebo/blake3"
	"golang.org/x/sync/errgroup"

	"github.com/youruser/artifactdeck/internal/cards"
	"github.com/youruser/artifactdeck/internal/deck"
	"github.com/youruser/artifactdeck/internal/deckcode"
	imagepkg "github.com/youruser/artifactdeck/internal/image"
)

// maxConcurrentFetches bounds parallel art downloads for one deck image.
const maxConcurrentFetches = 8

var errNoCards = errors.New("card database not loaded")

func (s *Server) health(c *gin.Context) {
	count := 0
	if s.cards != nil {
		count = s.cards.Len()
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "cards": count})
}

// fail writes err as a JSON error with a status matching its kind.
func (s *Server) fail(c *gin.Context, err error) {
	var (
		decodeErr  *deckcode.DecodeError
		encodeErr  *deckcode.EncodeError
		unknownErr *deck.UnknownCardError
		status     int
	)
	switch {
	case errors.As(err, &decodeErr), errors.As(err, &encodeErr):
		status = http.StatusBadRequest
	case errors.As(err, &unknownErr):
		status = http.StatusNotFound
	case errors.Is(err, errNoCards):
		status = http.StatusServiceUnavailable
	default:
		status = http.StatusInternalServerError
		s.logger.Error("request failed", "route", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// language picks the card text language: ?lang=, then Accept-Language,
// then the configured default.
func (s *Server) language(c *gin.Context) string {
	if lang := c.Query("lang"); lang != "" {
		return cards.MatchLanguage(lang)
	}
	if accept := c.GetHeader("Accept-Language"); accept != "" {
		return cards.MatchLanguage(accept)
	}
	if s.config.Cards.Language != "" {
		return s.config.Cards.Language
	}
	return cards.DefaultLanguage
}

// decodeParam decodes the :code path parameter and returns the raw
// payload alongside the deck.
func decodeParam(c *gin.Context) ([]byte, deckcode.Deck, error) {
	payload, err := deckcode.ParseToken(c.Param("code"))
	if err != nil {
		return nil, deckcode.Deck{}, err
	}
	d, err := deckcode.DecodeBytes(payload)
	if err != nil {
		return nil, deckcode.Deck{}, err
	}
	return payload, d, nil
}

func (s *Server) resolve(code deckcode.Deck) (deck.Deck, error) {
	if s.cards == nil {
		return deck.Deck{}, errNoCards
	}
	return deck.Resolve(code, s.cards)
}

// fingerprint is a strong ETag for a rendering of payload.
func fingerprint(payload []byte, variant string) string {
	h := blake3.New()
	h.Write(payload)
	h.Write([]byte{0})
	h.Write([]byte(variant))
	sum := h.Sum(nil)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

// notModified sets the ETag and reports whether the client already has it.
func notModified(c *gin.Context, etag string) bool {
	c.Header("ETag", etag)
	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return true
	}
	return false
}

func (s *Server) decodeHandler(c *gin.Context) {
	_, code, err := decodeParam(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	resp := gin.H{"deck": code}
	if resolve, _ := strconv.ParseBool(c.Query("resolve")); resolve {
		resolved, err := s.resolve(code)
		if err != nil {
			s.fail(c, err)
			return
		}
		lang := s.language(c)
		resp["language"] = lang
		resp["resolved"] = resolved
		resp["total_cards"] = resolved.TotalCards()
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) encodeHandler(c *gin.Context) {
	var req deckcode.Deck
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	code, err := s.encoder.Encode(req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": code})
}

func (s *Server) textHandler(c *gin.Context) {
	_, code, err := decodeParam(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	resolved, err := s.resolve(code)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.String(http.StatusOK, deck.ExportDeckText(resolved, s.language(c)))
}

func (s *Server) qrHandler(c *gin.Context) {
	payload, _, err := decodeParam(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	size := s.config.Image.QRSize
	if sizeStr := c.Query("size"); sizeStr != "" {
		v, err := strconv.Atoi(sizeStr)
		if err != nil || v <= 0 || v > s.config.Image.MaxQRSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "size must be between 1 and " + strconv.Itoa(s.config.Image.MaxQRSize)})
			return
		}
		size = v
	}
	if notModified(c, fingerprint(payload, "qr:"+strconv.Itoa(size))) {
		return
	}
	b, err := imagepkg.GenerateQRPNG(deckcode.FormatToken(payload), size)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

func (s *Server) deckImageHandler(c *gin.Context) {
	payload, code, err := decodeParam(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	resolved, err := s.resolve(code)
	if err != nil {
		s.fail(c, err)
		return
	}
	if notModified(c, fingerprint(payload, "image")) {
		return
	}

	heroURLs := make([]string, len(resolved.Heroes))
	for i, h := range resolved.Heroes {
		heroURLs[i] = h.Card.LargeImage.Default
		if heroURLs[i] == "" {
			heroURLs[i] = h.Card.MiniImage.Default
		}
	}
	cardURLs := make([]string, len(resolved.Cards))
	for i, card := range resolved.Cards {
		cardURLs[i] = card.Card.MiniImage.Default
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.config.Image.FetchTimeout)
	defer cancel()
	heroImgs := s.fetchAll(ctx, heroURLs)
	cardImgs := s.fetchAll(ctx, cardURLs)

	qr, err := imagepkg.GenerateQRImage(deckcode.FormatToken(payload), s.config.Image.QRSize)
	if err != nil {
		s.fail(c, err)
		return
	}
	out := imagepkg.ComposeDeckImage(heroImgs, cardImgs, qr)

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, out); err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// fetchAll downloads urls concurrently. Empty urls and failed downloads
// leave a nil image, which renders as a placeholder.
func (s *Server) fetchAll(ctx context.Context, urls []string) []image.Image {
	out := make([]image.Image, len(urls))
	var g errgroup.Group
	g.SetLimit(maxConcurrentFetches)
	for i, url := range urls {
		if url == "" {
			continue
		}
		i, url := i, url
		g.Go(func() error {
			img, err := s.fetchImage(ctx, url)
			if err != nil {
				s.logger.Warn("card art download failed", "url", url, "error", err)
				return nil
			}
			out[i] = img
			return nil
		})
	}
	g.Wait()
	return out
}

func (s *Server) filterHandler(c *gin.Context) {
	var opt cards.FilterOptions
	if err := c.ShouldBindJSON(&opt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if s.cards == nil {
		s.fail(c, errNoCards)
		return
	}
	if opt.Language == "" {
		opt.Language = s.language(c)
	} else {
		opt.Language = cards.MatchLanguage(opt.Language)
	}
	out := cards.Filter(s.cards.All(), opt)
	c.JSON(http.StatusOK, gin.H{"count": len(out), "cards": out})
}
