package imagepkg

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

const (
	canvasWidth = 2150
	margin      = 48
	gap         = 8

	heroWidth  = 300
	heroHeight = 450
	qrSize     = 400

	cardWidth   = 200
	cardHeight  = 280
	cardsPerRow = 10
)

var (
	background  = color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	placeholder = color.NRGBA{R: 0xbb, G: 0xbb, B: 0xbb, A: 0xff}
)

// ComposeDeckImage lays out hero art in a row with the QR code at the top
// right, and card art below in rows of ten. Nil entries are drawn as grey
// placeholders so positions stay stable.
func ComposeDeckImage(heroes []image.Image, cards []image.Image, qr image.Image) image.Image {
	rows := (len(cards) + cardsPerRow - 1) / cardsPerRow
	height := margin + max(heroHeight, qrSize) + margin + rows*(cardHeight+gap) + margin
	canvas := imaging.New(canvasWidth, height, background)

	x := margin
	for _, hero := range heroes {
		canvas = imaging.Paste(canvas, tile(hero, heroWidth, heroHeight), image.Pt(x, margin))
		x += heroWidth + gap
	}

	if qr != nil {
		q := imaging.Resize(qr, qrSize, qrSize, imaging.NearestNeighbor)
		canvas = imaging.Paste(canvas, q, image.Pt(canvasWidth-margin-qrSize, margin))
	}

	top := margin + max(heroHeight, qrSize) + margin
	for i, card := range cards {
		pos := image.Pt(margin+(i%cardsPerRow)*(cardWidth+gap), top+(i/cardsPerRow)*(cardHeight+gap))
		canvas = imaging.Paste(canvas, tile(card, cardWidth, cardHeight), pos)
	}
	return canvas
}

func tile(img image.Image, width, height int) image.Image {
	if img == nil {
		return imaging.New(width, height, placeholder)
	}
	return imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos)
}
