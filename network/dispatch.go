package network

import (
	"context"
	"fmt"
)

// Channel identifies a broadcast delivery path. The choice is exclusive and
// resolved once per invocation from configuration, never negotiated at
// runtime or chained as a fallback.
type Channel int

const (
	// ChannelManual performs no network call; the caller prints the signed
	// hex for the operator to submit by hand.
	ChannelManual Channel = iota

	// ChannelPublicAPI submits through the public index (mempool.space).
	ChannelPublicAPI

	// ChannelLocalRPC submits through the local Bitcoin Core node.
	ChannelLocalRPC
)

// String names the channel for diagnostics.
func (c Channel) String() string {
	switch c {
	case ChannelPublicAPI:
		return "public API"
	case ChannelLocalRPC:
		return "local RPC"
	default:
		return "manual"
	}
}

// SelectChannel resolves the broadcast channel from invocation
// configuration: a configured local node wins, then an explicit broadcast
// request selects the public API, otherwise the run stays manual.
func SelectChannel(rpc *RPCConfig, broadcast bool) Channel {
	if rpc != nil {
		return ChannelLocalRPC
	}
	if broadcast {
		return ChannelPublicAPI
	}
	return ChannelManual
}

// Dispatcher submits a signed transaction over the channel selected at
// construction time. Each attempt is single-shot: a transport or rejection
// error is surfaced to the caller verbatim with no retry and no fallback to
// another channel.
type Dispatcher struct {
	channel Channel
	rpc     Broadcaster
	public  Broadcaster
}

// NewDispatcher wires a dispatcher for the given channel. The broadcaster
// for the selected channel must be non-nil; the other may be nil.
func NewDispatcher(channel Channel, rpc, public Broadcaster) *Dispatcher {
	return &Dispatcher{channel: channel, rpc: rpc, public: public}
}

// Channel returns the resolved delivery channel.
func (d *Dispatcher) Channel() Channel { return d.channel }

// Dispatch submits the raw transaction hex. On the manual channel it
// performs no network call and returns an empty txid.
func (d *Dispatcher) Dispatch(ctx context.Context, rawTxHex string) (string, error) {
	switch d.channel {
	case ChannelLocalRPC:
		if d.rpc == nil {
			return "", ErrNoRPCConfig
		}
		return d.rpc.Broadcast(ctx, rawTxHex)
	case ChannelPublicAPI:
		if d.public == nil {
			return "", fmt.Errorf("%w: public broadcaster not wired", ErrInvalidResponse)
		}
		return d.public.Broadcast(ctx, rawTxHex)
	default:
		return "", nil
	}
}

// SelectUTXOSource resolves the UTXO discovery path: the local node's
// UTXO-set scan when rpcOnly is set, otherwise the public index. The
// returned name labels the source in diagnostics so failures say which
// path was attempted.
func SelectUTXOSource(rpcOnly bool, rpc *RPCClient, public *MempoolClient) (UtxoSource, string, error) {
	if rpcOnly {
		if rpc == nil {
			return nil, "", fmt.Errorf("%w: scan-only mode requires RPC credentials", ErrNoRPCConfig)
		}
		return rpc, "bitcoind scantxoutset", nil
	}
	return public, "mempool.space", nil
}
