// Package layout holds the window geometry and the pixel/square transforms.
package layout

import (
	"image"

	"github.com/dulchik/chess-vs-ollama/internal/rules"
)

const (
	BoardAreaWidth  = 600
	BoardAreaHeight = 600
	PanelWidth      = 300
	ScreenWidth     = BoardAreaWidth + PanelWidth
	ScreenHeight    = BoardAreaHeight

	BoardSize   = 560
	SquareSize  = BoardSize / 8 // 70
	PieceSize   = SquareSize * 85 / 100
	BoardOffset = (BoardAreaWidth - BoardSize) / 2

	PanelPadding = 10
	LineHeight   = 30
)

// Board is the drawable rectangle of the 8x8 grid.
var Board = image.Rect(BoardOffset, BoardOffset, BoardOffset+BoardSize, BoardOffset+BoardSize)

// Panel is the commentary side panel.
var Panel = image.Rect(BoardAreaWidth, 0, ScreenWidth, ScreenHeight)

// SquareAt maps a pixel to the square under it, with White at the bottom.
func SquareAt(x, y int) (rules.Square, bool) {
	if !image.Pt(x, y).In(Board) {
		return rules.NoSquare, false
	}
	col := (x - BoardOffset) / SquareSize
	row := (y - BoardOffset) / SquareSize
	return rules.NewSquare(col, 7-row), true
}

// SquareRect is the pixel rectangle covered by sq.
func SquareRect(sq rules.Square) image.Rectangle {
	x := BoardOffset + sq.File()*SquareSize
	y := BoardOffset + (7-sq.Rank())*SquareSize
	return image.Rect(x, y, x+SquareSize, y+SquareSize)
}

// PieceOrigin is the top-left pixel of a piece image centred in sq.
func PieceOrigin(sq rules.Square) image.Point {
	r := SquareRect(sq)
	inset := (SquareSize - PieceSize) / 2
	return r.Min.Add(image.Pt(inset, inset))
}

// PromotionKinds is the picker order, nearest the promotion square first.
var PromotionKinds = [4]rules.PieceKind{rules.Queen, rules.Rook, rules.Bishop, rules.Knight}

// PromotionSquares lays the picker along the file of to, running back toward
// the mover's own side of the board.
func PromotionSquares(to rules.Square, mover rules.Color) [4]rules.Square {
	var out [4]rules.Square
	for i := range out {
		rank := to.Rank() - i
		if mover == rules.Black {
			rank = to.Rank() + i
		}
		out[i] = rules.NewSquare(to.File(), rank)
	}
	return out
}

// PromotionAt returns the picker entry under a pixel.
func PromotionAt(x, y int, to rules.Square, mover rules.Color) (rules.PieceKind, bool) {
	sq, ok := SquareAt(x, y)
	if !ok {
		return rules.NoKind, false
	}
	for i, s := range PromotionSquares(to, mover) {
		if s == sq {
			return PromotionKinds[i], true
		}
	}
	return rules.NoKind, false
}
