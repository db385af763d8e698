package network

import (
	"context"
	"encoding/hex"
	"fmt"
	"math"

	"github.com/btcmark/btcmark/tx"
)

// Compile-time interface checks.
var (
	_ UtxoSource  = (*RPCClient)(nil)
	_ Broadcaster = (*RPCClient)(nil)
)

// btcToSat converts a BTC float64 amount (as returned by the RPC node) to
// satoshis. math.Round avoids floating-point truncation issues.
func btcToSat(btc float64) int64 {
	return int64(math.Round(btc * 1e8))
}

// scanResult maps the JSON fields returned by scantxoutset.
type scanResult struct {
	Success  bool `json:"success"`
	Unspents []struct {
		TxID   string  `json:"txid"`
		Vout   uint32  `json:"vout"`
		Amount float64 `json:"amount"`
		Height int64   `json:"height"`
	} `json:"unspents"`
}

// FetchUTXOs discovers unspent outputs for the address by scanning the
// node's UTXO set: `scantxoutset "start" ["addr(<address>)"]`. The scan
// walks the whole chainstate, so it runs under the longer ScanTimeout and
// only ever reports confirmed outputs. No wallet import or txindex is
// required.
func (c *RPCClient) FetchUTXOs(ctx context.Context, address string) ([]tx.UTXO, error) {
	params := []interface{}{"start", []string{fmt.Sprintf("addr(%s)", address)}}
	var result scanResult
	if err := c.callSlow(ctx, "scantxoutset", params, &result); err != nil {
		return nil, fmt.Errorf("bitcoind scantxoutset: %w", err)
	}
	if !result.Success {
		return nil, fmt.Errorf("%w: scantxoutset reported failure", ErrInvalidResponse)
	}

	utxos := make([]tx.UTXO, len(result.Unspents))
	for i, u := range result.Unspents {
		utxos[i] = tx.UTXO{
			TxID:      u.TxID,
			Vout:      u.Vout,
			Value:     btcToSat(u.Amount),
			Address:   address,
			Confirmed: true,
		}
	}
	return utxos, nil
}

// Broadcast submits a raw transaction hex via `sendrawtransaction` and
// returns the txid. Node rejections are wrapped with ErrBroadcastRejected,
// keeping the node's reason text intact.
func (c *RPCClient) Broadcast(ctx context.Context, rawTxHex string) (string, error) {
	var txid string
	if err := c.Call(ctx, "sendrawtransaction", []interface{}{rawTxHex}, &txid); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBroadcastRejected, err)
	}
	return txid, nil
}

// GetRawTx returns the raw transaction bytes for txid via
// `getrawtransaction "txid" false`. Requires txindex=1 for transactions
// outside the node's wallet.
func (c *RPCClient) GetRawTx(ctx context.Context, txid string) ([]byte, error) {
	var rawHex string
	if err := c.Call(ctx, "getrawtransaction", []interface{}{txid, false}, &rawHex); err != nil {
		return nil, err
	}
	data, err := hex.DecodeString(rawHex)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid tx hex: %v", ErrInvalidResponse, err)
	}
	return data, nil
}

// indexInfoResult maps the getindexinfo response.
type indexInfoResult map[string]struct {
	Synced     bool  `json:"synced"`
	BestHeight int64 `json:"best_block_height"`
}

// CheckTxIndex verifies that the node maintains a synced transaction index.
// Hybrid RPC mode (public discovery + local verification) needs it; pure
// scan mode does not. Returns ErrTxIndexDisabled when the index is missing
// or still syncing.
func (c *RPCClient) CheckTxIndex(ctx context.Context) error {
	var result indexInfoResult
	if err := c.Call(ctx, "getindexinfo", []interface{}{"txindex"}, &result); err != nil {
		return fmt.Errorf("network: getindexinfo: %w", err)
	}
	info, ok := result["txindex"]
	if !ok {
		return fmt.Errorf("%w: add txindex=1 to bitcoin.conf and reindex, or use scan-only mode", ErrTxIndexDisabled)
	}
	if !info.Synced {
		return fmt.Errorf("%w: txindex is still syncing", ErrTxIndexDisabled)
	}
	return nil
}
