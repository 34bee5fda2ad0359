package oracle

import "errors"

var (
	// ErrCommunication covers transport failures and non-200 replies.
	ErrCommunication = errors.New("oracle communication failure")
	// ErrInvalidOutput covers replies that are not a legal UCI move.
	ErrInvalidOutput = errors.New("oracle output invalid")
	ErrNoLegalMoves  = errors.New("no legal moves")
)
