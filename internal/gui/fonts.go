package gui

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Fonts are the faces used for panel text and the result banner.
type Fonts struct {
	Text  font.Face
	Label font.Face
}

// LoadFonts parses the TTF at path, or the embedded Go Regular when path is empty.
func LoadFonts(path string) (Fonts, error) {
	data := goregular.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Fonts{}, fmt.Errorf("read font: %w", err)
		}
		data = b
	}
	ttf, err := truetype.Parse(data)
	if err != nil {
		return Fonts{}, fmt.Errorf("parse font: %w", err)
	}
	return Fonts{
		Text:  truetype.NewFace(ttf, &truetype.Options{Size: 17}),
		Label: truetype.NewFace(ttf, &truetype.Options{Size: 26}),
	}, nil
}
