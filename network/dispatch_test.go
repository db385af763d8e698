package network

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectChannel(t *testing.T) {
	tests := []struct {
		name      string
		rpc       *RPCConfig
		broadcast bool
		want      Channel
	}{
		{"nothing configured stays manual", nil, false, ChannelManual},
		{"broadcast flag selects public API", nil, true, ChannelPublicAPI},
		{"configured node always wins", &RPCConfig{URL: "http://localhost:18332"}, false, ChannelLocalRPC},
		{"configured node wins over broadcast flag", &RPCConfig{URL: "http://localhost:18332"}, true, ChannelLocalRPC},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectChannel(tt.rpc, tt.broadcast))
		})
	}
}

func TestChannelString(t *testing.T) {
	assert.Equal(t, "manual", ChannelManual.String())
	assert.Equal(t, "public API", ChannelPublicAPI.String())
	assert.Equal(t, "local RPC", ChannelLocalRPC.String())
}

func TestDispatch_ManualSkipsNetwork(t *testing.T) {
	called := false
	mock := &MockService{
		BroadcastFn: func(ctx context.Context, rawTxHex string) (string, error) {
			called = true
			return "txid", nil
		},
	}

	d := NewDispatcher(ChannelManual, mock, mock)
	txid, err := d.Dispatch(context.Background(), "deadbeef")
	require.NoError(t, err)
	assert.Empty(t, txid)
	assert.False(t, called)
}

func TestDispatch_RoutesToSelectedChannel(t *testing.T) {
	rpcMock := &MockService{
		BroadcastFn: func(ctx context.Context, rawTxHex string) (string, error) {
			return "via-rpc", nil
		},
	}
	publicMock := &MockService{
		BroadcastFn: func(ctx context.Context, rawTxHex string) (string, error) {
			return "via-public", nil
		},
	}

	d := NewDispatcher(ChannelLocalRPC, rpcMock, publicMock)
	txid, err := d.Dispatch(context.Background(), "deadbeef")
	require.NoError(t, err)
	assert.Equal(t, "via-rpc", txid)

	d = NewDispatcher(ChannelPublicAPI, rpcMock, publicMock)
	txid, err = d.Dispatch(context.Background(), "deadbeef")
	require.NoError(t, err)
	assert.Equal(t, "via-public", txid)
}

func TestDispatch_SingleAttemptNoFallback(t *testing.T) {
	rpcMock := &MockService{
		BroadcastFn: func(ctx context.Context, rawTxHex string) (string, error) {
			return "", ErrBroadcastRejected
		},
	}
	publicMock := &MockService{
		BroadcastFn: func(ctx context.Context, rawTxHex string) (string, error) {
			t.Fatal("public channel must not be tried after an RPC failure")
			return "", nil
		},
	}

	d := NewDispatcher(ChannelLocalRPC, rpcMock, publicMock)
	_, err := d.Dispatch(context.Background(), "deadbeef")
	assert.ErrorIs(t, err, ErrBroadcastRejected)
}

func TestDispatch_MissingBroadcaster(t *testing.T) {
	d := NewDispatcher(ChannelLocalRPC, nil, nil)
	_, err := d.Dispatch(context.Background(), "deadbeef")
	assert.ErrorIs(t, err, ErrNoRPCConfig)
}

func TestSelectUTXOSource(t *testing.T) {
	rpc := NewRPCClient(RPCConfig{URL: "http://localhost:18332"})
	public := NewMempoolClient("test")

	source, name, err := SelectUTXOSource(false, nil, public)
	require.NoError(t, err)
	assert.Equal(t, "mempool.space", name)
	assert.Same(t, public, source)

	source, name, err = SelectUTXOSource(true, rpc, public)
	require.NoError(t, err)
	assert.Equal(t, "bitcoind scantxoutset", name)
	assert.Same(t, rpc, source)

	_, _, err = SelectUTXOSource(true, nil, public)
	assert.ErrorIs(t, err, ErrNoRPCConfig)
}
