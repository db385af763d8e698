package network

import (
	"context"

	"github.com/btcmark/btcmark/tx"
)

// MockService is a test double for UtxoSource, Broadcaster, and
// HistorySource. Function fields must be set before the corresponding
// method is called.
type MockService struct {
	FetchUTXOsFn      func(ctx context.Context, address string) ([]tx.UTXO, error)
	BroadcastFn       func(ctx context.Context, rawTxHex string) (string, error)
	ListOpReturnTxsFn func(ctx context.Context, address string) ([]OpReturnEntry, error)
}

func (m *MockService) FetchUTXOs(ctx context.Context, address string) ([]tx.UTXO, error) {
	return m.FetchUTXOsFn(ctx, address)
}

func (m *MockService) Broadcast(ctx context.Context, rawTxHex string) (string, error) {
	return m.BroadcastFn(ctx, rawTxHex)
}

func (m *MockService) ListOpReturnTxs(ctx context.Context, address string) ([]OpReturnEntry, error) {
	return m.ListOpReturnTxsFn(ctx, address)
}
