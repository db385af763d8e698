package network

import (
	"context"

	"github.com/btcmark/btcmark/tx"
)

// UtxoSource discovers unspent outputs for an address. The two
// implementations are the public index (MempoolClient) and the local node's
// UTXO-set scan (RPCClient). Errors from either name the attempted source;
// there is no automatic fallback between them.
type UtxoSource interface {
	FetchUTXOs(ctx context.Context, address string) ([]tx.UTXO, error)
}

// Broadcaster submits a raw transaction to the network and returns its txid.
type Broadcaster interface {
	Broadcast(ctx context.Context, rawTxHex string) (string, error)
}

// HistorySource lists past OP_RETURN transactions for an address.
type HistorySource interface {
	ListOpReturnTxs(ctx context.Context, address string) ([]OpReturnEntry, error)
}

// OpReturnEntry is one historical OP_RETURN transaction for an address.
type OpReturnEntry struct {
	TxID        string `json:"txid"`
	Payload     []byte `json:"payload"`
	Confirmed   bool   `json:"confirmed"`
	BlockHeight int64  `json:"block_height,omitempty"`
	Fee         int64  `json:"fee"`
	Size        int    `json:"size"`
}

// FeeRates are the recommended fee tiers published by the public index.
type FeeRates struct {
	Fastest  float64 `json:"fastestFee"`
	HalfHour float64 `json:"halfHourFee"`
	Hour     float64 `json:"hourFee"`
	Economy  float64 `json:"economyFee"`
	Minimum  float64 `json:"minimumFee"`
}
