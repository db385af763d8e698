package tx

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// SignedTx is a fully signed transaction ready for broadcast.
type SignedTx struct {
	Tx   *wire.MsgTx
	Raw  []byte // witness serialization, byte-exact broadcast payload
	TxID string // display hex: double-SHA256 of the non-witness serialization
}

// Hex returns the broadcast-ready hex encoding of the signed transaction.
func (s *SignedTx) Hex() string {
	return hex.EncodeToString(s.Raw)
}

// Sign produces a signed copy of the unsigned transaction. The single input
// is signed with the BIP-143 witness sighash algorithm under SIGHASH_ALL:
// the script code is the P2WPKH program of the key's own address, and the
// committed input value is utxo.Value. The resulting witness stack is
// exactly [DER signature || 0x01, compressed public key].
//
// btcec's ECDSA is deterministic (RFC 6979), so signing the same digest with
// the same key always yields identical bytes. The unsigned transaction is not
// mutated; Sign works on an independent copy.
func Sign(unsigned *wire.MsgTx, priv *btcec.PrivateKey, utxo UTXO, params *chaincfg.Params) (*SignedTx, error) {
	if unsigned == nil {
		return nil, fmt.Errorf("%w: unsigned transaction", ErrNilParam)
	}
	if priv == nil {
		return nil, fmt.Errorf("%w: private key", ErrNilParam)
	}
	if len(unsigned.TxIn) != 1 {
		return nil, fmt.Errorf("%w: expected exactly 1 input, got %d", ErrSigningFailed, len(unsigned.TxIn))
	}

	pkScript, err := P2WPKHScript(priv.PubKey(), params)
	if err != nil {
		return nil, err
	}

	msgTx := unsigned.Copy()
	fetcher := txscript.NewCannedPrevOutputFetcher(pkScript, utxo.Value)
	sigHashes := txscript.NewTxSigHashes(msgTx, fetcher)

	witness, err := txscript.WitnessSignature(msgTx, sigHashes, 0, utxo.Value, pkScript,
		txscript.SigHashAll, priv, true)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSigningFailed, err)
	}
	msgTx.TxIn[0].Witness = witness
	msgTx.TxIn[0].SignatureScript = nil

	var buf bytes.Buffer
	if err := msgTx.Serialize(&buf); err != nil {
		return nil, fmt.Errorf("%w: serialize: %v", ErrSigningFailed, err)
	}

	return &SignedTx{
		Tx:   msgTx,
		Raw:  buf.Bytes(),
		TxID: msgTx.TxHash().String(),
	}, nil
}

// P2WPKHScript returns the pay-to-witness-pubkey-hash locking script for the
// given public key: OP_0 <20-byte Hash160(compressed pubkey)>.
func P2WPKHScript(pub *btcec.PublicKey, params *chaincfg.Params) ([]byte, error) {
	if pub == nil {
		return nil, fmt.Errorf("%w: public key", ErrNilParam)
	}
	addr, err := btcutil.NewAddressWitnessPubKeyHash(btcutil.Hash160(pub.SerializeCompressed()), params)
	if err != nil {
		return nil, fmt.Errorf("%w: witness address: %v", ErrScriptBuild, err)
	}
	script, err := txscript.PayToAddrScript(addr)
	if err != nil {
		return nil, fmt.Errorf("%w: P2WPKH script: %v", ErrScriptBuild, err)
	}
	return script, nil
}
