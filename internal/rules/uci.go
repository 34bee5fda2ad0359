package rules

import "fmt"

// ParseUCI parses coordinate notation such as "e2e4" or "e7e8q". The
// promotion letter must be lowercase. It checks syntax only; legality is a
// property of a position.
func ParseUCI(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("%w: %q", ErrBadUCI, s)
	}
	from, ok := parseSquare(s[0:2])
	if !ok {
		return Move{}, fmt.Errorf("%w: %q", ErrBadUCI, s)
	}
	to, ok := parseSquare(s[2:4])
	if !ok {
		return Move{}, fmt.Errorf("%w: %q", ErrBadUCI, s)
	}
	m := Move{From: from, To: to}
	if len(s) == 5 {
		switch s[4:] {
		case "q":
			m.Promotion = Queen
		case "r":
			m.Promotion = Rook
		case "b":
			m.Promotion = Bishop
		case "n":
			m.Promotion = Knight
		default:
			return Move{}, fmt.Errorf("%w: %q", ErrBadUCI, s)
		}
	}
	return m, nil
}

func parseSquare(s string) (Square, bool) {
	f, r := s[0], s[1]
	if f < 'a' || f > 'h' || r < '1' || r > '8' {
		return NoSquare, false
	}
	return NewSquare(int(f-'a'), int(r-'1')), true
}
