package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/corentings/chess/v2"
)

// Game is a Board backed by corentings/chess.
type Game struct {
	game *chess.Game
	// seen counts position keys reached through Apply, including the start.
	seen map[string]int
}

var _ Board = (*Game)(nil)

// New returns a game at the standard starting position.
func New() *Game {
	g := &Game{
		game: chess.NewGame(),
		seen: make(map[string]int),
	}
	g.seen[repetitionKey(g.FEN())]++
	return g
}

// NewFromFEN returns a game set up from a FEN record. Repetitions are counted
// from that position on.
func NewFromFEN(fen string) (*Game, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFEN, err)
	}
	g := &Game{
		game: chess.NewGame(opt),
		seen: make(map[string]int),
	}
	g.seen[repetitionKey(g.FEN())]++
	return g, nil
}

func (g *Game) Pieces() []Placement {
	board := g.game.Position().Board()
	var out []Placement
	for sq := chess.Square(0); sq <= chess.H8; sq++ {
		p := board.Piece(sq)
		if p == chess.NoPiece {
			continue
		}
		out = append(out, Placement{Square: Square(sq), Piece: fromChessPiece(p)})
	}
	return out
}

func (g *Game) PieceAt(sq Square) (Piece, bool) {
	if !sq.Valid() {
		return Piece{}, false
	}
	p := g.game.Position().Board().Piece(chess.Square(sq))
	if p == chess.NoPiece {
		return Piece{}, false
	}
	return fromChessPiece(p), true
}

func (g *Game) LegalMoves() []Move {
	valid := g.game.Position().ValidMoves()
	out := make([]Move, 0, len(valid))
	for _, m := range valid {
		out = append(out, Move{
			From:      Square(m.S1()),
			To:        Square(m.S2()),
			Promotion: fromChessKind(m.Promo()),
		})
	}
	return out
}

func (g *Game) IsLegal(m Move) bool {
	for _, l := range g.LegalMoves() {
		if l == m {
			return true
		}
	}
	return false
}

// Apply plays m if it is in the current legal-move set.
func (g *Game) Apply(m Move) error {
	if !g.IsLegal(m) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, m.UCI())
	}
	move, err := chess.UCINotation{}.Decode(g.game.Position(), m.UCI())
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrIllegalMove, m.UCI(), err)
	}
	if err := g.game.Move(move, nil); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrIllegalMove, m.UCI(), err)
	}
	g.seen[repetitionKey(g.FEN())]++
	return nil
}

func (g *Game) FEN() string {
	return g.game.Position().String()
}

func (g *Game) Turn() Color {
	if g.game.Position().Turn() == chess.Black {
		return Black
	}
	return White
}

func (g *Game) Status() Status {
	pos := g.game.Position()
	method := g.game.Method()
	fen := g.FEN()

	st := Status{
		Checkmate:            pos.Status() == chess.Checkmate,
		Stalemate:            pos.Status() == chess.Stalemate,
		InsufficientMaterial: method == chess.InsufficientMaterial,
		SeventyFiveMoves:     method == chess.SeventyFiveMoveRule || halfMoveClock(fen) >= 150,
		FivefoldRepetition:   method == chess.FivefoldRepetition || g.seen[repetitionKey(fen)] >= 5,
	}
	st.Ended = g.game.Outcome() != chess.NoOutcome
	return st
}

// repetitionKey keeps placement, side to move, castling and en passant.
func repetitionKey(fen string) string {
	fields := strings.Fields(fen)
	if len(fields) > 4 {
		fields = fields[:4]
	}
	return strings.Join(fields, " ")
}

func halfMoveClock(fen string) int {
	fields := strings.Fields(fen)
	if len(fields) < 5 {
		return 0
	}
	n, err := strconv.Atoi(fields[4])
	if err != nil {
		return 0
	}
	return n
}

func fromChessPiece(p chess.Piece) Piece {
	c := White
	if p.Color() == chess.Black {
		c = Black
	}
	return Piece{Kind: fromChessKind(p.Type()), Color: c}
}

func fromChessKind(t chess.PieceType) PieceKind {
	switch t {
	case chess.King:
		return King
	case chess.Queen:
		return Queen
	case chess.Rook:
		return Rook
	case chess.Bishop:
		return Bishop
	case chess.Knight:
		return Knight
	case chess.Pawn:
		return Pawn
	}
	return NoKind
}
