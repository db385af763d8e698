package txlog

import "errors"

var (
	// ErrNilParam indicates a required parameter is nil.
	ErrNilParam = errors.New("txlog: required parameter is nil")

	// ErrTxNotFound indicates no entry exists for the txid.
	ErrTxNotFound = errors.New("txlog: transaction not found")

	// ErrDuplicateTx indicates an entry already exists for the txid.
	ErrDuplicateTx = errors.New("txlog: duplicate transaction")

	// ErrInvalidTxID indicates the txid is not 32 bytes of hex.
	ErrInvalidTxID = errors.New("txlog: invalid txid")
)
