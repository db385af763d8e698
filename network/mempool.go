package network

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/btcmark/btcmark/tx"
)

// Public index base URLs per network selector.
const (
	mempoolMainURL = "https://mempool.space/api"
	mempoolTestURL = "https://mempool.space/testnet/api"

	mempoolTimeout = 10 * time.Second
)

// Compile-time interface checks.
var (
	_ UtxoSource    = (*MempoolClient)(nil)
	_ Broadcaster   = (*MempoolClient)(nil)
	_ HistorySource = (*MempoolClient)(nil)
)

// MempoolClient talks to the mempool.space REST API: UTXO discovery,
// transaction fetch, broadcast, OP_RETURN history, and recommended fees.
type MempoolClient struct {
	client *resty.Client
}

// NewMempoolClient creates a client for the given network selector
// ("test" or "main"). Unknown selectors default to testnet; the CLI
// validates the selector before getting here.
func NewMempoolClient(network string) *MempoolClient {
	base := mempoolTestURL
	if network == "main" {
		base = mempoolMainURL
	}
	client := resty.New().
		SetBaseURL(base).
		SetTimeout(mempoolTimeout)
	return &MempoolClient{client: client}
}

// NewMempoolClientURL creates a client against an explicit base URL.
// Used by tests and self-hosted mempool instances.
func NewMempoolClientURL(baseURL string) *MempoolClient {
	return &MempoolClient{client: resty.New().SetBaseURL(baseURL).SetTimeout(mempoolTimeout)}
}

// mempoolUTXO maps the /address/:addr/utxo response entries.
type mempoolUTXO struct {
	TxID   string `json:"txid"`
	Vout   uint32 `json:"vout"`
	Value  int64  `json:"value"`
	Status struct {
		Confirmed   bool  `json:"confirmed"`
		BlockHeight int64 `json:"block_height"`
	} `json:"status"`
}

// FetchUTXOs returns the unspent outputs the public index knows for address.
func (m *MempoolClient) FetchUTXOs(ctx context.Context, address string) ([]tx.UTXO, error) {
	var results []mempoolUTXO
	resp, err := m.client.R().
		SetContext(ctx).
		SetResult(&results).
		Get("/address/" + address + "/utxo")
	if err != nil {
		return nil, fmt.Errorf("mempool.space: %w: %v", ErrConnectionFailed, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("mempool.space: %w: HTTP %d: %s", ErrInvalidResponse, resp.StatusCode(), resp.String())
	}

	utxos := make([]tx.UTXO, len(results))
	for i, r := range results {
		utxos[i] = tx.UTXO{
			TxID:      r.TxID,
			Vout:      r.Vout,
			Value:     r.Value,
			Address:   address,
			Confirmed: r.Status.Confirmed,
		}
	}
	return utxos, nil
}

// Broadcast submits raw transaction hex via POST /tx. The index responds
// with the txid as plain text; rejections come back as a non-2xx status
// whose body text is surfaced verbatim.
func (m *MempoolClient) Broadcast(ctx context.Context, rawTxHex string) (string, error) {
	resp, err := m.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "text/plain").
		SetBody(rawTxHex).
		Post("/tx")
	if err != nil {
		return "", fmt.Errorf("mempool.space: %w: %v", ErrConnectionFailed, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: mempool.space: %s", ErrBroadcastRejected, strings.TrimSpace(resp.String()))
	}
	return strings.TrimSpace(resp.String()), nil
}

// GetRawTx fetches the raw transaction bytes for txid via /tx/:txid/hex.
func (m *MempoolClient) GetRawTx(ctx context.Context, txid string) ([]byte, error) {
	resp, err := m.client.R().
		SetContext(ctx).
		Get("/tx/" + txid + "/hex")
	if err != nil {
		return nil, fmt.Errorf("mempool.space: %w: %v", ErrConnectionFailed, err)
	}
	if resp.StatusCode() == 404 {
		return nil, fmt.Errorf("%w: %s", ErrTxNotFound, txid)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("mempool.space: %w: HTTP %d", ErrInvalidResponse, resp.StatusCode())
	}
	data, err := hex.DecodeString(strings.TrimSpace(resp.String()))
	if err != nil {
		return nil, fmt.Errorf("mempool.space: %w: invalid tx hex: %v", ErrInvalidResponse, err)
	}
	return data, nil
}

// mempoolTx maps the subset of /address/:addr/txs entries the history
// listing needs.
type mempoolTx struct {
	TxID   string `json:"txid"`
	Fee    int64  `json:"fee"`
	Size   int    `json:"size"`
	Status struct {
		Confirmed   bool  `json:"confirmed"`
		BlockHeight int64 `json:"block_height"`
	} `json:"status"`
	Vout []struct {
		ScriptPubKey     string `json:"scriptpubkey"`
		ScriptPubKeyType string `json:"scriptpubkey_type"`
	} `json:"vout"`
}

// ListOpReturnTxs returns the address's transactions that carry an
// OP_RETURN output, newest first, with the payload decoded from the
// data-carrier script. Transactions whose data push cannot be parsed are
// skipped rather than failing the whole listing.
func (m *MempoolClient) ListOpReturnTxs(ctx context.Context, address string) ([]OpReturnEntry, error) {
	var results []mempoolTx
	resp, err := m.client.R().
		SetContext(ctx).
		SetResult(&results).
		Get("/address/" + address + "/txs")
	if err != nil {
		return nil, fmt.Errorf("mempool.space: %w: %v", ErrConnectionFailed, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("mempool.space: %w: HTTP %d: %s", ErrInvalidResponse, resp.StatusCode(), resp.String())
	}

	var entries []OpReturnEntry
	for _, t := range results {
		for _, out := range t.Vout {
			if out.ScriptPubKeyType != "op_return" {
				continue
			}
			script, err := hex.DecodeString(out.ScriptPubKey)
			if err != nil {
				break
			}
			payload, err := tx.ParseOPReturnScript(script)
			if err != nil {
				break
			}
			entries = append(entries, OpReturnEntry{
				TxID:        t.TxID,
				Payload:     payload,
				Confirmed:   t.Status.Confirmed,
				BlockHeight: t.Status.BlockHeight,
				Fee:         t.Fee,
				Size:        t.Size,
			})
			break // count each tx once
		}
	}
	return entries, nil
}

// RecommendedFees returns the index's current fee-rate tiers in sat/vB.
func (m *MempoolClient) RecommendedFees(ctx context.Context) (*FeeRates, error) {
	var rates FeeRates
	resp, err := m.client.R().
		SetContext(ctx).
		SetResult(&rates).
		Get("/v1/fees/recommended")
	if err != nil {
		return nil, fmt.Errorf("mempool.space: %w: %v", ErrConnectionFailed, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("mempool.space: %w: HTTP %d", ErrInvalidResponse, resp.StatusCode())
	}
	return &rates, nil
}
