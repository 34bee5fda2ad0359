// Package gui draws the board and side panel with ebiten and forwards
// pointer presses to the session.
package gui

import (
	"context"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/rs/zerolog"

	"github.com/dulchik/chess-vs-ollama/internal/layout"
	"github.com/dulchik/chess-vs-ollama/internal/rules"
	"github.com/dulchik/chess-vs-ollama/internal/session"
	"github.com/dulchik/chess-vs-ollama/internal/sprites"
	"github.com/dulchik/chess-vs-ollama/internal/wrap"
)

const Title = "Chess vs Ollama"

var boardColors = [2]color.Color{
	color.RGBA{240, 217, 181, 255}, // light
	color.RGBA{181, 136, 99, 255},  // dark
}

var (
	highlight    = color.RGBA{255, 255, 0, 255}
	lastMoveTint = color.RGBA{255, 255, 0, 80}
	targetTint   = color.RGBA{0, 0, 0, 60}
	captureTint  = color.RGBA{255, 0, 0, 80}
	panelBg      = color.RGBA{200, 200, 200, 255}
	pickerBg     = color.RGBA{50, 50, 50, 230}
)

// selectionBorder is the outline width of the selected square.
const selectionBorder = 4

type Game struct {
	ctx     context.Context
	session *session.Session
	pieces  map[rules.Piece]*ebiten.Image
	fonts   Fonts
	log     zerolog.Logger

	mouseDown bool
	// drawnPly is the ply count at the last Draw. The oracle only moves once
	// the human's ply has been on screen.
	drawnPly int
}

func New(ctx context.Context, s *session.Session, set sprites.Set, fonts Fonts, log zerolog.Logger) *Game {
	pieces := make(map[rules.Piece]*ebiten.Image, len(set))
	for p, img := range set {
		pieces[p] = ebiten.NewImageFromImage(img)
	}
	return &Game{
		ctx:      ctx,
		session:  s,
		pieces:   pieces,
		fonts:    fonts,
		log:      log.With().Str("component", "gui").Logger(),
		drawnPly: -1,
	}
}

func (g *Game) Update() error {
	mousePressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	defer func() { g.mouseDown = mousePressed }()

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.session.Restart()
		g.drawnPly = -1
		return nil
	}

	g.session.Refresh()
	if g.session.GameOver() {
		return nil
	}

	if _, pending := g.session.PendingPromotion(); pending &&
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.session.CancelPromotion()
		return nil
	}

	if mousePressed && !g.mouseDown {
		x, y := ebiten.CursorPosition()
		g.handlePress(x, y)
	}

	if g.session.OracleToMove() && g.drawnPly == g.session.Plies() {
		g.log.Debug().Int("ply", g.session.Plies()).Msg("oracle turn")
		g.session.PlayOracle(g.ctx)
	}
	return nil
}

func (g *Game) handlePress(x, y int) {
	if p, ok := g.session.PendingPromotion(); ok {
		if kind, ok := layout.PromotionAt(x, y, p.To, g.session.Human()); ok {
			g.session.ChoosePromotion(g.ctx, kind)
			return
		}
		g.session.CancelPromotion()
		return
	}

	sq, ok := layout.SquareAt(x, y)
	if !ok {
		return
	}
	g.session.Click(g.ctx, sq)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.White)

	g.drawBoard(screen)
	g.drawPieces(screen)
	g.drawSelection(screen)
	g.drawPromotionPicker(screen)
	g.drawPanel(screen)
	g.drawResult(screen)

	g.drawnPly = g.session.Plies()
}

func fillRect(screen *ebiten.Image, r image.Rectangle, clr color.Color) {
	ebitenutil.DrawRect(screen, float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()), clr)
}

func (g *Game) drawBoard(screen *ebiten.Image) {
	board := g.session.Board()
	targets := g.session.LegalTargets()
	last, hasLast := g.session.LastMove()

	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			sq := rules.NewSquare(col, 7-row)
			r := layout.SquareRect(sq)
			fillRect(screen, r, boardColors[(row+col)%2])

			if hasLast && (sq == last.From || sq == last.To) {
				fillRect(screen, r, lastMoveTint)
			}
			if targets[sq] {
				if _, occupied := board.PieceAt(sq); occupied {
					fillRect(screen, r, captureTint)
				}
				fillRect(screen, r, targetTint)
			}
		}
	}
}

func (g *Game) drawPieces(screen *ebiten.Image) {
	for _, p := range g.session.Board().Pieces() {
		g.drawPiece(screen, p.Piece, p.Square)
	}
}

func (g *Game) drawPiece(screen *ebiten.Image, p rules.Piece, sq rules.Square) {
	img, ok := g.pieces[p]
	if !ok {
		return
	}
	o := layout.PieceOrigin(sq)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(o.X), float64(o.Y))
	screen.DrawImage(img, op)
}

func (g *Game) drawSelection(screen *ebiten.Image) {
	sq, ok := g.session.Selected()
	if !ok {
		return
	}
	r := layout.SquareRect(sq)
	b := selectionBorder
	fillRect(screen, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+b), highlight)
	fillRect(screen, image.Rect(r.Min.X, r.Max.Y-b, r.Max.X, r.Max.Y), highlight)
	fillRect(screen, image.Rect(r.Min.X, r.Min.Y, r.Min.X+b, r.Max.Y), highlight)
	fillRect(screen, image.Rect(r.Max.X-b, r.Min.Y, r.Max.X, r.Max.Y), highlight)
}

func (g *Game) drawPromotionPicker(screen *ebiten.Image) {
	p, ok := g.session.PendingPromotion()
	if !ok {
		return
	}
	human := g.session.Human()
	for i, sq := range layout.PromotionSquares(p.To, human) {
		fillRect(screen, layout.SquareRect(sq), pickerBg)
		g.drawPiece(screen, rules.Piece{Kind: layout.PromotionKinds[i], Color: human}, sq)
	}
}

func (g *Game) drawPanel(screen *ebiten.Image) {
	fillRect(screen, layout.Panel, panelBg)

	face := g.fonts.Text
	ascent := face.Metrics().Ascent.Ceil()
	x := layout.Panel.Min.X + layout.PanelPadding
	width := layout.PanelWidth - 2*layout.PanelPadding

	y := 20
	for _, line := range wrap.Lines(face, g.session.Commentary(), width) {
		text.Draw(screen, line, face, x, y+ascent, color.Black)
		y += layout.LineHeight
	}

	// Move list under the commentary, newest lines kept when space runs out.
	y += layout.LineHeight / 2
	footer := layout.ScreenHeight - layout.LineHeight
	moves := g.session.MoveList()
	if fit := (footer - y) / layout.LineHeight; fit < len(moves) {
		if fit < 0 {
			fit = 0
		}
		moves = moves[len(moves)-fit:]
	}
	for _, line := range moves {
		text.Draw(screen, line, face, x, y+ascent, color.RGBA{60, 60, 60, 255})
		y += layout.LineHeight
	}

	text.Draw(screen, "Press R to restart", face, x, footer+ascent/2, color.RGBA{90, 90, 90, 255})
}

func (g *Game) drawResult(screen *ebiten.Image) {
	if !g.session.GameOver() {
		return
	}
	label := g.session.Label()
	face := g.fonts.Label
	m := face.Metrics()
	w := wrap.Width(face, label)
	x := layout.BoardAreaWidth/2 - w/2
	y := layout.ScreenHeight - 30 + (m.Ascent.Ceil()-m.Descent.Ceil())/2
	text.Draw(screen, label, face, x, y, color.Black)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return layout.ScreenWidth, layout.ScreenHeight
}
