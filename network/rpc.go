package network

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"
)

// defaultRPCTimeout bounds ordinary RPC calls. UTXO-set scans override it
// via ScanTimeout since scantxoutset walks the whole chainstate.
const (
	defaultRPCTimeout = 30 * time.Second

	// ScanTimeout is the HTTP timeout applied to scantxoutset calls.
	ScanTimeout = 120 * time.Second
)

// RPCClient is a JSON-RPC 1.0 client for a Bitcoin Core node. It handles
// request serialization, Basic Auth, and response parsing; the Bitcoin
// methods in rpc_bitcoin.go are built on top of Call.
type RPCClient struct {
	url    string
	user   string
	pass   string
	client *http.Client
	scan   *http.Client // longer timeout for UTXO-set scans
	nextID atomic.Int64
}

// rpcRequest represents a JSON-RPC 1.0 request payload.
type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int64         `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

// rpcResponse represents a JSON-RPC 1.0 response payload.
type rpcResponse struct {
	ID     int64           `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// rpcError represents an error returned by the JSON-RPC server.
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewRPCClient creates a JSON-RPC client for the given node configuration.
// Basic Auth is used when User is non-empty; connections are pooled.
func NewRPCClient(cfg RPCConfig) *RPCClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRPCTimeout
	}
	transport := &http.Transport{
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 10,
	}
	return &RPCClient{
		url:    cfg.URL,
		user:   cfg.User,
		pass:   cfg.Password,
		client: &http.Client{Timeout: timeout, Transport: transport},
		scan:   &http.Client{Timeout: ScanTimeout, Transport: transport},
	}
}

// Call invokes a JSON-RPC method on the node and decodes the response into
// result. A nil params sends an empty array; a nil result discards the
// response body (useful for fire-and-forget calls).
//
// Call returns ErrConnectionFailed when the HTTP request fails and
// ErrInvalidResponse when the response cannot be decoded. RPC-level errors
// (e.g. -25 "bad-txns-inputs-missingorspent") are returned as plain errors
// carrying the server's message verbatim.
func (c *RPCClient) Call(ctx context.Context, method string, params []interface{}, result interface{}) error {
	return c.call(ctx, c.client, method, params, result)
}

// callSlow is Call with the scan-length timeout, for chainstate walks.
func (c *RPCClient) callSlow(ctx context.Context, method string, params []interface{}, result interface{}) error {
	return c.call(ctx, c.scan, method, params, result)
}

func (c *RPCClient) call(ctx context.Context, client *http.Client, method string, params []interface{}, result interface{}) error {
	if params == nil {
		params = []interface{}{}
	}
	reqBody := rpcRequest{
		JSONRPC: "1.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("network: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("network: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.user != "" {
		req.SetBasicAuth(c.user, c.pass)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Bitcoin Core returns RPC errors with non-2xx status codes but a valid
	// JSON-RPC body; fall through to body decoding when it looks like JSON.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
			respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
			return fmt.Errorf("%w: HTTP %d: %s", ErrConnectionFailed, resp.StatusCode, string(respBody))
		}
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrInvalidResponse, err)
	}

	if rpcResp.Error != nil {
		return fmt.Errorf("network: rpc error %d: %s", rpcResp.Error.Code, rpcResp.Error.Message)
	}

	if rpcResp.ID != reqBody.ID {
		return fmt.Errorf("%w: response ID mismatch: expected %d, got %d",
			ErrInvalidResponse, reqBody.ID, rpcResp.ID)
	}

	if result != nil && rpcResp.Result != nil {
		if err := json.Unmarshal(rpcResp.Result, result); err != nil {
			return fmt.Errorf("%w: unmarshal result: %w", ErrInvalidResponse, err)
		}
	}

	return nil
}
