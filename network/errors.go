package network

import "errors"

var (
	// ErrConnectionFailed indicates the client could not reach the node or API.
	ErrConnectionFailed = errors.New("network: connection failed")

	// ErrBroadcastRejected indicates the remote rejected the broadcast
	// transaction. The remote-supplied reason is carried in the wrapped text.
	ErrBroadcastRejected = errors.New("network: broadcast rejected")

	// ErrTxNotFound indicates the requested transaction does not exist.
	ErrTxNotFound = errors.New("network: transaction not found")

	// ErrInvalidResponse indicates a malformed or unexpected remote response.
	ErrInvalidResponse = errors.New("network: invalid response")

	// ErrNoRPCConfig indicates an operation requiring a local node was
	// attempted without RPC configuration.
	ErrNoRPCConfig = errors.New("network: local RPC not configured")

	// ErrTxIndexDisabled indicates the local node does not have txindex=1
	// enabled, which hybrid RPC mode requires.
	ErrTxIndexDisabled = errors.New("network: txindex not enabled on node")
)
