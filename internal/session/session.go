// Package session holds the state of one game against the oracle and the
// transitions the window drives: human clicks, promotion choices, oracle
// turns, the terminal check and restarts.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"lukechampine.com/frand"

	"github.com/dulchik/chess-vs-ollama/internal/oracle"
	"github.com/dulchik/chess-vs-ollama/internal/rules"
)

// Welcome is the commentary shown before the first move.
const Welcome = "Welcome to Chess vs Ollama! I'm ready to play. Make your move!"

// Oracle plays the non-human side and comments on every ply.
type Oracle interface {
	RequestMove(ctx context.Context, pos oracle.Position) (rules.Move, error)
	RequestCommentary(ctx context.Context, pos oracle.Position) string
}

// Promotion is a human move waiting for its promotion piece.
type Promotion struct {
	From rules.Square
	To   rules.Square
}

type Session struct {
	ID uuid.UUID

	newBoard func() rules.Board
	board    rules.Board
	oracle   Oracle
	human    rules.Color
	baseLog  zerolog.Logger
	log      zerolog.Logger
	// intn picks the fallback when the oracle move cannot be played.
	intn func(n int) int

	selected   *rules.Square
	promotion  *Promotion
	commentary string
	history    []rules.Move

	gameOver bool
	label    string
}

// New starts a game. newBoard is called again on every Restart.
func New(newBoard func() rules.Board, o Oracle, human rules.Color, log zerolog.Logger) *Session {
	s := &Session{
		newBoard: newBoard,
		oracle:   o,
		human:    human,
		baseLog:  log,
		intn:     frand.Intn,
	}
	s.reset()
	return s
}

func (s *Session) reset() {
	s.ID = uuid.New()
	s.log = s.baseLog.With().Str("game", s.ID.String()).Logger()
	s.board = s.newBoard()
	s.selected = nil
	s.promotion = nil
	s.commentary = Welcome
	s.history = nil
	s.gameOver = false
	s.label = ""
	s.log.Info().Str("human", s.human.String()).Msg("new game")
}

// Restart throws the current game away and starts from the initial position.
func (s *Session) Restart() {
	s.reset()
}

func (s *Session) HumanToMove() bool {
	return !s.gameOver && s.board.Turn() == s.human
}

func (s *Session) OracleToMove() bool {
	return !s.gameOver && s.board.Turn() != s.human
}

// Click handles a press on sq during the human's turn. A first click
// selects. A second click plays selection->sq if it is legal, otherwise it
// moves the selection to sq.
func (s *Session) Click(ctx context.Context, sq rules.Square) {
	if !s.HumanToMove() || s.promotion != nil || !sq.Valid() {
		return
	}
	if s.selected == nil {
		s.selected = &sq
		return
	}

	from := *s.selected
	m := rules.Move{From: from, To: sq}
	if s.board.IsLegal(m) {
		s.selected = nil
		s.play(ctx, m)
		return
	}
	if s.needsPromotion(from, sq) {
		s.selected = nil
		s.promotion = &Promotion{From: from, To: sq}
		return
	}
	s.selected = &sq
}

func (s *Session) needsPromotion(from, to rules.Square) bool {
	for _, m := range s.board.LegalMoves() {
		if m.From == from && m.To == to && m.Promotion != rules.NoKind {
			return true
		}
	}
	return false
}

// ChoosePromotion completes the pending promotion with kind.
func (s *Session) ChoosePromotion(ctx context.Context, kind rules.PieceKind) {
	if s.promotion == nil {
		return
	}
	m := rules.Move{From: s.promotion.From, To: s.promotion.To, Promotion: kind}
	s.promotion = nil
	if !s.board.IsLegal(m) {
		return
	}
	s.play(ctx, m)
}

func (s *Session) CancelPromotion() {
	s.promotion = nil
}

// PlayOracle asks the oracle for its move and plays it. It blocks for the
// oracle round trips. An oracle error or an illegal reply is replaced by a
// uniformly random legal move, so the oracle side always moves.
func (s *Session) PlayOracle(ctx context.Context) {
	if !s.OracleToMove() {
		return
	}
	m, err := s.oracle.RequestMove(ctx, s.board)
	if errors.Is(err, oracle.ErrNoLegalMoves) {
		s.Refresh()
		return
	}
	if err == nil && !s.board.IsLegal(m) {
		err = fmt.Errorf("%w: %s", rules.ErrIllegalMove, m.UCI())
	}
	if err != nil {
		legal := s.board.LegalMoves()
		if len(legal) == 0 {
			s.Refresh()
			return
		}
		fallback := legal[s.intn(len(legal))]
		s.log.Warn().Err(err).Str("fallback", fallback.UCI()).Msg("oracle move rejected")
		m = fallback
	}
	s.play(ctx, m)
}

func (s *Session) play(ctx context.Context, m rules.Move) {
	mover := s.board.Turn()
	if err := s.board.Apply(m); err != nil {
		s.log.Error().Err(err).Str("move", m.UCI()).Msg("apply failed")
		return
	}
	s.history = append(s.history, m)
	s.log.Info().Str("side", mover.String()).Str("move", m.UCI()).Msg("move")

	s.commentary = s.oracle.RequestCommentary(ctx, s.board)
	s.Refresh()
}

// Refresh enters the game-over state once the board reports a terminal
// position. It is idempotent.
func (s *Session) Refresh() {
	if s.gameOver {
		return
	}
	st := s.board.Status()
	if !st.Over() {
		return
	}
	s.gameOver = true
	s.selected = nil
	s.promotion = nil
	s.label = TerminalLabel(st)
	s.log.Info().Str("result", s.label).Str("fen", s.board.FEN()).Msg("game over")
}

// TerminalLabel names a finished game. The predicates are checked in a
// fixed order, so a mate wins over any draw that also holds.
func TerminalLabel(st rules.Status) string {
	switch {
	case st.Checkmate:
		return "Checkmate!"
	case st.Stalemate:
		return "Stalemate!"
	case st.InsufficientMaterial:
		return "Draw (Insufficient material)"
	case st.SeventyFiveMoves:
		return "Draw (75-move rule)"
	case st.FivefoldRepetition:
		return "Draw (Fivefold repetition)"
	}
	return "Game Over!"
}

func (s *Session) Board() rules.Board { return s.board }

func (s *Session) Human() rules.Color { return s.human }

// Selected returns the selected square, if any.
func (s *Session) Selected() (rules.Square, bool) {
	if s.selected == nil {
		return rules.NoSquare, false
	}
	return *s.selected, true
}

// LegalTargets lists destinations of the selected piece.
func (s *Session) LegalTargets() map[rules.Square]bool {
	if s.selected == nil {
		return nil
	}
	targets := make(map[rules.Square]bool)
	for _, m := range s.board.LegalMoves() {
		if m.From == *s.selected {
			targets[m.To] = true
		}
	}
	return targets
}

func (s *Session) PendingPromotion() (Promotion, bool) {
	if s.promotion == nil {
		return Promotion{}, false
	}
	return *s.promotion, true
}

func (s *Session) Commentary() string { return s.commentary }

// LastMove returns the most recent ply.
func (s *Session) LastMove() (rules.Move, bool) {
	if len(s.history) == 0 {
		return rules.Move{}, false
	}
	return s.history[len(s.history)-1], true
}

// MoveList pairs the history into numbered lines: "1. e2e4 e7e5".
func (s *Session) MoveList() []string {
	var lines []string
	for i := 0; i < len(s.history); i += 2 {
		line := fmt.Sprintf("%d. %s", i/2+1, s.history[i].UCI())
		if i+1 < len(s.history) {
			line += " " + s.history[i+1].UCI()
		}
		lines = append(lines, line)
	}
	return lines
}

// Plies counts the moves played so far.
func (s *Session) Plies() int { return len(s.history) }

func (s *Session) GameOver() bool { return s.gameOver }

// Label is the terminal label, empty while the game is running.
func (s *Session) Label() string { return s.label }
