package tx

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// Policy constants. These mirror Bitcoin Core's default relay policy and are
// deliberately kept as documented package constants rather than measured
// values so fee quotes stay backward compatible.
const (
	// DustLimit is the minimum economical output value in satoshis.
	DustLimit = int64(546)

	// MaxStandardPayload is Bitcoin Core's default -datacarriersize: the
	// largest OP_RETURN payload standard nodes will relay.
	MaxStandardPayload = 80

	// CompressedPubKeyLen is the length of a compressed public key.
	CompressedPubKeyLen = 33

	// TxIDLen is the length of a transaction ID.
	TxIDLen = 32
)

// UTXO references an unspent transaction output selected for spending.
// It is an immutable value object: fetched from an index or node once per
// invocation and passed by copy through the pipeline.
type UTXO struct {
	TxID      string `json:"txid"` // display hex (big-endian)
	Vout      uint32 `json:"vout"`
	Value     int64  `json:"value"` // satoshis
	Address   string `json:"address,omitempty"`
	Confirmed bool   `json:"confirmed"`
}

// OutPoint converts the UTXO's display-hex txid and output index into a wire
// outpoint. chainhash reverses the display hex into internal byte order.
func (u UTXO) OutPoint() (*wire.OutPoint, error) {
	if len(u.TxID) != TxIDLen*2 {
		return nil, fmt.Errorf("%w: txid must be %d hex chars, got %d", ErrInvalidUTXO, TxIDLen*2, len(u.TxID))
	}
	hash, err := chainhash.NewHashFromStr(u.TxID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidUTXO, err)
	}
	return wire.NewOutPoint(hash, u.Vout), nil
}

// SelectUTXO picks the UTXO to spend from the fetched set. When index is
// negative the first entry is used; otherwise the entry at index is returned,
// failing if the index is out of range.
func SelectUTXO(utxos []UTXO, index int) (UTXO, error) {
	if len(utxos) == 0 {
		return UTXO{}, fmt.Errorf("%w: no unspent outputs available", ErrInvalidUTXO)
	}
	if index < 0 {
		return utxos[0], nil
	}
	if index >= len(utxos) {
		return UTXO{}, fmt.Errorf("%w: utxo index %d out of range (have %d)", ErrInvalidUTXO, index, len(utxos))
	}
	return utxos[index], nil
}
