package rules

import (
	"errors"
	"strings"
	"testing"
)

func play(t *testing.T, g *Game, moves ...string) {
	t.Helper()
	for _, s := range moves {
		m, err := ParseUCI(s)
		if err != nil {
			t.Fatalf("parse %s: %v", s, err)
		}
		if err := g.Apply(m); err != nil {
			t.Fatalf("apply %s: %v", s, err)
		}
	}
}

func TestNewGameStartPosition(t *testing.T) {
	g := New()
	if got := len(g.LegalMoves()); got != 20 {
		t.Fatalf("expected 20 legal moves at start, got %d", got)
	}
	if got := len(g.Pieces()); got != 32 {
		t.Fatalf("expected 32 pieces, got %d", got)
	}
	if g.Turn() != White {
		t.Fatalf("expected white to move")
	}
	if !strings.HasPrefix(g.FEN(), "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w") {
		t.Fatalf("unexpected start FEN %q", g.FEN())
	}
	p, ok := g.PieceAt(NewSquare(4, 0))
	if !ok || p != (Piece{Kind: King, Color: White}) {
		t.Fatalf("expected white king on e1, got %+v %v", p, ok)
	}
	if g.Status().Over() {
		t.Fatalf("start position should not be over")
	}
}

func TestApplyIllegalLeavesPosition(t *testing.T) {
	g := New()
	before := g.FEN()
	m, _ := ParseUCI("e2e5")
	if err := g.Apply(m); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("expected ErrIllegalMove, got %v", err)
	}
	if g.FEN() != before {
		t.Fatalf("position changed after illegal move")
	}
}

func TestApplyLegalMove(t *testing.T) {
	g := New()
	play(t, g, "e2e4")
	if g.Turn() != Black {
		t.Fatalf("expected black to move")
	}
	if _, ok := g.PieceAt(NewSquare(4, 3)); !ok {
		t.Fatalf("expected a piece on e4")
	}
}

func TestScholarsMate(t *testing.T) {
	g := New()
	play(t, g, "e2e4", "e7e5", "f1c4", "b8c6", "d1h5", "g8f6", "h5f7")
	st := g.Status()
	if !st.Checkmate || !st.Over() {
		t.Fatalf("expected checkmate, got %+v", st)
	}
	if st.Stalemate {
		t.Fatalf("checkmate reported as stalemate")
	}
	if len(g.LegalMoves()) != 0 {
		t.Fatalf("expected no legal moves after mate")
	}
}

func TestLoydStalemate(t *testing.T) {
	g := New()
	play(t, g,
		"e2e3", "a7a5", "d1h5", "a8a6", "h5a5", "h7h5",
		"h2h4", "a6h6", "a5c7", "f7f6", "c7d7", "e8f7",
		"d7b7", "d8d3", "b7b8", "d3h7", "b8c8", "f7g6",
		"c8e6",
	)
	st := g.Status()
	if !st.Stalemate || st.Checkmate {
		t.Fatalf("expected stalemate, got %+v", st)
	}
}

func TestPromotionMoveListed(t *testing.T) {
	g := New()
	play(t, g,
		"a2a4", "b7b5", "a4b5", "a7a6", "b5a6", "c8b7", "a6a7", "b7c6",
	)
	want, _ := ParseUCI("a7b8q")
	if !g.IsLegal(want) {
		t.Fatalf("expected a7b8q to be legal")
	}
	plain := Move{From: want.From, To: want.To}
	if g.IsLegal(plain) {
		t.Fatalf("promotion without a piece kind should not be legal")
	}
	play(t, g, "a7b8q")
	p, _ := g.PieceAt(NewSquare(1, 7))
	if p != (Piece{Kind: Queen, Color: White}) {
		t.Fatalf("expected white queen on b8, got %+v", p)
	}
}

func TestFivefoldRepetitionCounted(t *testing.T) {
	g := New()
	for i := 0; i < 4; i++ {
		play(t, g, "g1f3", "g8f6", "f3g1", "f6g8")
	}
	if !g.Status().FivefoldRepetition {
		t.Fatalf("expected fivefold repetition after four knight shuffles")
	}
}

func TestRepetitionKeyDropsClocks(t *testing.T) {
	a := repetitionKey("8/8/8/8/8/8/8/K6k w - - 0 1")
	b := repetitionKey("8/8/8/8/8/8/8/K6k w - - 12 40")
	if a != b {
		t.Fatalf("expected clocks to be ignored: %q vs %q", a, b)
	}
	if halfMoveClock("8/8/8/8/8/8/8/K6k w - - 12 40") != 12 {
		t.Fatalf("expected half-move clock 12")
	}
}

func fromFEN(t *testing.T, fen string) *Game {
	t.Helper()
	g, err := NewFromFEN(fen)
	if err != nil {
		t.Fatalf("fen %q: %v", fen, err)
	}
	return g
}

func TestNewFromFEN(t *testing.T) {
	fen := "8/8/8/8/8/8/R7/K6k w - - 149 100"
	g := fromFEN(t, fen)
	if g.FEN() != fen {
		t.Fatalf("expected %q, got %q", fen, g.FEN())
	}
	if g.Status().Over() {
		t.Fatalf("expected a running game, got %+v", g.Status())
	}
	if _, err := NewFromFEN("not a position"); !errors.Is(err, ErrBadFEN) {
		t.Fatalf("expected ErrBadFEN, got %v", err)
	}
}

func TestSeventyFiveMoveRule(t *testing.T) {
	g := fromFEN(t, "8/8/8/8/8/8/R7/K6k w - - 149 100")
	play(t, g, "a2b2")

	st := g.Status()
	if halfMoveClock(g.FEN()) != 150 {
		t.Fatalf("expected half-move clock 150, got %s", g.FEN())
	}
	if !st.SeventyFiveMoves || !st.Over() {
		t.Fatalf("expected a 75-move draw, got %+v", st)
	}
	if st.Checkmate || st.Stalemate || st.InsufficientMaterial {
		t.Fatalf("unexpected predicates %+v", st)
	}
}

func TestInsufficientMaterial(t *testing.T) {
	g := fromFEN(t, "8/8/8/8/8/8/1r6/KN5k w - - 0 1")
	if g.Status().Over() {
		t.Fatalf("king and rook still have mating material")
	}
	play(t, g, "a1b2")

	st := g.Status()
	if !st.InsufficientMaterial || !st.Over() {
		t.Fatalf("expected a draw by insufficient material after Kxb2, got %+v", st)
	}
	if st.SeventyFiveMoves || st.Checkmate || st.Stalemate {
		t.Fatalf("unexpected predicates %+v", st)
	}
}
