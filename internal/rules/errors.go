package rules

import "errors"

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrBadUCI      = errors.New("malformed uci move")
	ErrBadFEN      = errors.New("malformed fen")
)
