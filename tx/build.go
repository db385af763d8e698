package tx

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

const (
	// txVersion is the transaction version emitted by Build.
	txVersion = 2

	// txLockTime is the locktime emitted by Build.
	txLockTime = 0
)

// BuildResult is an unsigned transaction together with the fee quote it was
// built against. Change is the value of the change output, or 0 when the
// dust policy folded the remainder into the fee.
type BuildResult struct {
	Tx     *wire.MsgTx
	Fee    FeeQuote
	Change int64
}

// Build assembles the unsigned one-input transaction spending utxo:
// a zero-value data-carrier output first, then a change output paying
// changeAddr, in that fixed order (the order is part of the contract so
// rebuilt transactions reproduce the same txid).
//
// Payloads above MaxStandardPayload are rejected before any fee computation
// unless allowLargeData is set. The fee is estimated twice: first assuming a
// change output exists, then, when the resulting change would fall below
// DustLimit, again without one; the remainder then contributes to the fee
// and no change output is emitted. Build fails with ErrInsufficientFunds
// when the UTXO cannot cover even the no-change fee.
//
// The single input carries empty signature script and witness placeholders;
// signature material is attached only by Sign.
func Build(utxo UTXO, payload []byte, changeAddr string, params *chaincfg.Params, rate float64, allowLargeData bool) (*BuildResult, error) {
	if params == nil {
		return nil, fmt.Errorf("%w: network params", ErrNilParam)
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrScriptBuild)
	}
	if len(payload) > MaxStandardPayload && !allowLargeData {
		return nil, fmt.Errorf("%w: %d bytes > %d (use the large-payload override to build anyway)",
			ErrPayloadTooLarge, len(payload), MaxStandardPayload)
	}
	if rate <= 0 {
		return nil, fmt.Errorf("%w: %g sat/vB", ErrInvalidFeeRate, rate)
	}

	outPoint, err := utxo.OutPoint()
	if err != nil {
		return nil, err
	}

	dataScript, err := BuildOPReturnScript(payload)
	if err != nil {
		return nil, err
	}

	// Provisional quote assumes a change output exists.
	quote := EstimateFee(true, len(payload), rate)
	change := utxo.Value - quote.Fee

	hasChange := change >= DustLimit
	if !hasChange {
		// Sub-dust change is folded into the fee: requote without the
		// change output and keep whatever remains as implicit fee.
		quote = EstimateFee(false, len(payload), rate)
		if utxo.Value < quote.Fee {
			return nil, fmt.Errorf("%w: utxo holds %d sat, fee requires %d sat (short %d)",
				ErrInsufficientFunds, utxo.Value, quote.Fee, quote.Fee-utxo.Value)
		}
		change = 0
	}

	msgTx := wire.NewMsgTx(txVersion)
	msgTx.LockTime = txLockTime
	msgTx.AddTxIn(wire.NewTxIn(outPoint, nil, nil))
	msgTx.AddTxOut(wire.NewTxOut(0, dataScript))

	if hasChange {
		addr, err := btcutil.DecodeAddress(changeAddr, params)
		if err != nil {
			return nil, fmt.Errorf("%w: change address: %v", ErrScriptBuild, err)
		}
		changeScript, err := txscript.PayToAddrScript(addr)
		if err != nil {
			return nil, fmt.Errorf("%w: change script: %v", ErrScriptBuild, err)
		}
		msgTx.AddTxOut(wire.NewTxOut(change, changeScript))
	}

	return &BuildResult{Tx: msgTx, Fee: quote, Change: change}, nil
}
