package tx

import "errors"

var (
	// ErrNilParam indicates a required parameter is nil.
	ErrNilParam = errors.New("tx: required parameter is nil")

	// ErrPayloadTooLarge indicates the OP_RETURN payload exceeds the relay
	// policy limit and no override was given.
	ErrPayloadTooLarge = errors.New("tx: payload exceeds OP_RETURN policy limit")

	// ErrInsufficientFunds indicates the selected UTXO cannot cover the fee.
	ErrInsufficientFunds = errors.New("tx: insufficient funds")

	// ErrInvalidFeeRate indicates a zero or negative fee rate.
	ErrInvalidFeeRate = errors.New("tx: fee rate must be positive")

	// ErrSigningFailed indicates transaction signing failed.
	ErrSigningFailed = errors.New("tx: signing failed")

	// ErrScriptBuild indicates script construction failed.
	ErrScriptBuild = errors.New("tx: script build failed")

	// ErrInvalidOPReturn indicates the OP_RETURN script is malformed.
	ErrInvalidOPReturn = errors.New("tx: invalid OP_RETURN format")

	// ErrInvalidUTXO indicates the UTXO reference is malformed.
	ErrInvalidUTXO = errors.New("tx: invalid UTXO")
)
