package config

import "errors"

var (
	// ErrInvalidNetwork indicates the network selector is not "test" or "main".
	ErrInvalidNetwork = errors.New("config: invalid network selector")

	// ErrInvalidFeeRate indicates the fee rate is zero, negative, or not a number.
	ErrInvalidFeeRate = errors.New("config: fee rate must be a positive number")

	// ErrEmptyPayload indicates no OP_RETURN payload was supplied.
	ErrEmptyPayload = errors.New("config: payload must not be empty")

	// ErrEmptyWalletPath indicates no wallet file path could be resolved.
	ErrEmptyWalletPath = errors.New("config: wallet file path must not be empty")
)
