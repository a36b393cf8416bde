package canvas

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Font sizes in points at 72 DPI.
const (
	TitleSize = 50
	BodySize  = 30
	HUDSize   = 20
)

// Fonts holds the faces used by the views.
type Fonts struct {
	Title font.Face
	Body  font.Face
	HUD   font.Face
}

// LoadFonts parses the bundled Go Regular font at the view sizes.
func LoadFonts() (*Fonts, error) {
	tt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	newFace := func(size float64) (font.Face, error) {
		return opentype.NewFace(tt, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	}

	f := &Fonts{}
	if f.Title, err = newFace(TitleSize); err != nil {
		return nil, fmt.Errorf("title face: %w", err)
	}
	if f.Body, err = newFace(BodySize); err != nil {
		return nil, fmt.Errorf("body face: %w", err)
	}
	if f.HUD, err = newFace(HUDSize); err != nil {
		return nil, fmt.Errorf("hud face: %w", err)
	}
	return f, nil
}
