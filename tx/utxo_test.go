package tx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUTXOOutPoint(t *testing.T) {
	u := UTXO{TxID: strings.Repeat("ab", 32), Vout: 3, Value: 1000}
	op, err := u.OutPoint()
	require.NoError(t, err)

	assert.Equal(t, uint32(3), op.Index)
	// chainhash round-trips back to the display hex.
	assert.Equal(t, u.TxID, op.Hash.String())
}

func TestUTXOOutPoint_Invalid(t *testing.T) {
	tests := []struct {
		name string
		txid string
	}{
		{"empty", ""},
		{"too short", "abcd"},
		{"not hex", strings.Repeat("zz", 32)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := UTXO{TxID: tt.txid}
			_, err := u.OutPoint()
			assert.ErrorIs(t, err, ErrInvalidUTXO)
		})
	}
}

func TestSelectUTXO(t *testing.T) {
	utxos := []UTXO{
		{TxID: strings.Repeat("aa", 32), Value: 100},
		{TxID: strings.Repeat("bb", 32), Value: 200},
		{TxID: strings.Repeat("cc", 32), Value: 300},
	}

	tests := []struct {
		name      string
		utxos     []UTXO
		index     int
		wantValue int64
		wantErr   bool
	}{
		{"negative picks first", utxos, -1, 100, false},
		{"explicit index", utxos, 1, 200, false},
		{"last index", utxos, 2, 300, false},
		{"out of range", utxos, 3, 0, true},
		{"empty set", nil, -1, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectUTXO(tt.utxos, tt.index)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidUTXO)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantValue, got.Value)
		})
	}
}
