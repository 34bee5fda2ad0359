// Package sprites rasterises the piece set once at startup.
package sprites

import (
	"embed"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"

	"github.com/dulchik/chess-vs-ollama/internal/rules"
)

//go:embed pieces/*.svg
var pieceFS embed.FS

// supersample renders at this multiple of the target size before scaling down.
const supersample = 2

var palettes = map[rules.Color]*strings.Replacer{
	rules.White: strings.NewReplacer("FILL", "#ffffff", "STROKE", "#000000", "DETAIL", "#000000"),
	rules.Black: strings.NewReplacer("FILL", "#000000", "STROKE", "#000000", "DETAIL", "#ffffff"),
}

var kinds = []rules.PieceKind{rules.King, rules.Queen, rules.Rook, rules.Bishop, rules.Knight, rules.Pawn}

// Set maps each piece to its image.
type Set map[rules.Piece]image.Image

// Load renders all twelve pieces at size x size pixels. When dir is not
// empty, files named like wK.svg or bP.svg in it replace the built-in set.
func Load(size int, dir string) (Set, error) {
	set := make(Set, 12)
	for _, c := range []rules.Color{rules.White, rules.Black} {
		for _, k := range kinds {
			p := rules.Piece{Kind: k, Color: c}
			src, err := source(p, dir)
			if err != nil {
				return nil, err
			}
			img, err := Render(strings.NewReader(src), size)
			if err != nil {
				return nil, fmt.Errorf("render %s: %w", FileName(p), err)
			}
			set[p] = img
		}
	}
	return set, nil
}

// FileName is the override file name for p, e.g. "bN.svg".
func FileName(p rules.Piece) string {
	prefix := "w"
	if p.Color == rules.Black {
		prefix = "b"
	}
	return prefix + strings.ToUpper(p.Kind.Letter()) + ".svg"
}

func source(p rules.Piece, dir string) (string, error) {
	if dir != "" {
		b, err := os.ReadFile(filepath.Join(dir, FileName(p)))
		if err != nil {
			return "", fmt.Errorf("read piece: %w", err)
		}
		return string(b), nil
	}
	b, err := pieceFS.ReadFile("pieces/" + p.Kind.Letter() + ".svg")
	if err != nil {
		return "", fmt.Errorf("embedded piece %s: %w", p.Symbol(), err)
	}
	return palettes[p.Color].Replace(string(b)), nil
}

// Render rasterises an SVG document into a size x size RGBA image.
func Render(r io.Reader, size int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(r)
	if err != nil {
		return nil, err
	}
	big := size * supersample
	icon.SetTarget(0, 0, float64(big), float64(big))

	hi := image.NewRGBA(image.Rect(0, 0, big, big))
	scanner := rasterx.NewScannerGV(big, big, hi, hi.Bounds())
	icon.Draw(rasterx.NewDasher(big, big, scanner), 1)

	out := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(out, out.Bounds(), hi, hi.Bounds(), draw.Over, nil)
	return out, nil
}
