// Package rules adapts a chess rules library to the small surface the board,
// the oracle and the GUI need. Nothing outside this package imports the library.
package rules

// Color is the side a piece belongs to or the side to move.
type Color int8

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	if c == Black {
		return "Black"
	}
	return "White"
}

type PieceKind int8

const (
	NoKind PieceKind = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

var kindLetters = [...]string{"", "k", "q", "r", "b", "n", "p"}

// Letter is the lowercase algebraic letter of the kind, "" for NoKind.
func (k PieceKind) Letter() string {
	if k < 0 || int(k) >= len(kindLetters) {
		return ""
	}
	return kindLetters[k]
}

type Piece struct {
	Kind  PieceKind
	Color Color
}

// Symbol follows FEN: uppercase for White, lowercase for Black.
func (p Piece) Symbol() string {
	l := p.Kind.Letter()
	if p.Color == White && l != "" {
		return string(l[0] - 'a' + 'A')
	}
	return l
}

// Square indexes the board from a1 = 0 to h8 = 63.
type Square int8

const NoSquare Square = -1

// NewSquare builds a square from zero-based file and rank.
func NewSquare(file, rank int) Square {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare
	}
	return Square(file + 8*rank)
}

func (s Square) File() int { return int(s) % 8 }
func (s Square) Rank() int { return int(s) / 8 }

func (s Square) Valid() bool { return s >= 0 && s < 64 }

func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{byte('a' + s.File()), byte('1' + s.Rank())})
}

// Placement is an occupied square.
type Placement struct {
	Square Square
	Piece  Piece
}

// Move is a from/to pair with an optional promotion kind.
type Move struct {
	From      Square
	To        Square
	Promotion PieceKind
}

// UCI renders the move in long algebraic coordinate notation, e.g. e7e8q.
func (m Move) UCI() string {
	return m.From.String() + m.To.String() + m.Promotion.Letter()
}

func (m Move) String() string { return m.UCI() }

// Status holds the terminal predicates of a position. More than one may hold.
type Status struct {
	Checkmate            bool
	Stalemate            bool
	InsufficientMaterial bool
	SeventyFiveMoves     bool
	FivefoldRepetition   bool
	// Ended is set when the library reports an outcome for any other reason.
	Ended bool
}

func (s Status) Over() bool {
	return s.Ended || s.Checkmate || s.Stalemate || s.InsufficientMaterial ||
		s.SeventyFiveMoves || s.FivefoldRepetition
}

// Board is the capability set the rest of the program relies on.
type Board interface {
	Pieces() []Placement
	PieceAt(sq Square) (Piece, bool)
	LegalMoves() []Move
	IsLegal(m Move) bool
	Apply(m Move) error
	FEN() string
	Turn() Color
	Status() Status
}
