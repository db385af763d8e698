package tx

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPrivKey returns the key whose scalar is 1, i.e. the secp256k1
// generator point. Its P2WPKH program is the BIP-173 reference vector.
func testPrivKey(t *testing.T) *btcec.PrivateKey {
	t.Helper()
	var scalar [32]byte
	scalar[31] = 1
	priv, _ := btcec.PrivKeyFromBytes(scalar[:])
	return priv
}

func buildSignable(t *testing.T, value int64) (*BuildResult, UTXO) {
	t.Helper()
	utxo := testUTXO(value)
	result, err := Build(utxo, []byte("anchored data!"), testChangeAddr, &chaincfg.TestNet3Params, 2.0, false)
	require.NoError(t, err)
	return result, utxo
}

func TestP2WPKHScript_KnownVector(t *testing.T) {
	priv := testPrivKey(t)
	script, err := P2WPKHScript(priv.PubKey(), &chaincfg.TestNet3Params)
	require.NoError(t, err)

	// OP_0 <20-byte Hash160> from the BIP-173 reference vector.
	assert.Equal(t, "0014751e76e8199196d454941c45d1b3a323f1433bd6", hex.EncodeToString(script))
}

func TestSign_WitnessShape(t *testing.T) {
	priv := testPrivKey(t)
	result, utxo := buildSignable(t, 100000)

	signed, err := Sign(result.Tx, priv, utxo, &chaincfg.TestNet3Params)
	require.NoError(t, err)

	witness := signed.Tx.TxIn[0].Witness
	require.Len(t, witness, 2)

	// DER signature with the sighash type byte appended.
	sig := witness[0]
	assert.Equal(t, byte(0x30), sig[0])
	assert.Equal(t, byte(txscript.SigHashAll), sig[len(sig)-1])

	// Compressed public key of the signing key.
	assert.Equal(t, priv.PubKey().SerializeCompressed(), witness[1])
	assert.Len(t, witness[1], CompressedPubKeyLen)

	assert.Empty(t, signed.Tx.TxIn[0].SignatureScript)
}

func TestSign_ValidUnderScriptEngine(t *testing.T) {
	priv := testPrivKey(t)
	result, utxo := buildSignable(t, 100000)

	signed, err := Sign(result.Tx, priv, utxo, &chaincfg.TestNet3Params)
	require.NoError(t, err)

	pkScript, err := P2WPKHScript(priv.PubKey(), &chaincfg.TestNet3Params)
	require.NoError(t, err)

	fetcher := txscript.NewCannedPrevOutputFetcher(pkScript, utxo.Value)
	sigHashes := txscript.NewTxSigHashes(signed.Tx, fetcher)
	vm, err := txscript.NewEngine(pkScript, signed.Tx, 0, txscript.StandardVerifyFlags,
		nil, sigHashes, utxo.Value, fetcher)
	require.NoError(t, err)
	assert.NoError(t, vm.Execute())
}

func TestSign_Deterministic(t *testing.T) {
	priv := testPrivKey(t)
	result, utxo := buildSignable(t, 100000)

	first, err := Sign(result.Tx, priv, utxo, &chaincfg.TestNet3Params)
	require.NoError(t, err)
	second, err := Sign(result.Tx, priv, utxo, &chaincfg.TestNet3Params)
	require.NoError(t, err)

	assert.Equal(t, first.Raw, second.Raw)
	assert.Equal(t, first.TxID, second.TxID)
}

func TestSign_DoesNotMutateUnsigned(t *testing.T) {
	priv := testPrivKey(t)
	result, utxo := buildSignable(t, 100000)

	_, err := Sign(result.Tx, priv, utxo, &chaincfg.TestNet3Params)
	require.NoError(t, err)
	assert.Empty(t, result.Tx.TxIn[0].Witness)
}

func TestSign_TxIDIsNonWitnessDoubleSHA256(t *testing.T) {
	priv := testPrivKey(t)
	result, utxo := buildSignable(t, 100000)

	signed, err := Sign(result.Tx, priv, utxo, &chaincfg.TestNet3Params)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, signed.Tx.SerializeNoWitness(&buf))
	assert.Equal(t, chainhash.DoubleHashH(buf.Bytes()).String(), signed.TxID)

	// The witness serialization is strictly larger than the txid preimage.
	assert.Greater(t, len(signed.Raw), buf.Len())
}

func TestSign_RawHexRoundTrip(t *testing.T) {
	priv := testPrivKey(t)
	result, utxo := buildSignable(t, 100000)

	signed, err := Sign(result.Tx, priv, utxo, &chaincfg.TestNet3Params)
	require.NoError(t, err)

	decoded, err := hex.DecodeString(signed.Hex())
	require.NoError(t, err)
	assert.Equal(t, signed.Raw, decoded)
}

func TestSign_InvalidInputs(t *testing.T) {
	priv := testPrivKey(t)
	result, utxo := buildSignable(t, 100000)

	_, err := Sign(nil, priv, utxo, &chaincfg.TestNet3Params)
	assert.ErrorIs(t, err, ErrNilParam)

	_, err = Sign(result.Tx, nil, utxo, &chaincfg.TestNet3Params)
	assert.ErrorIs(t, err, ErrNilParam)

	multi := result.Tx.Copy()
	op, err := testUTXO(1).OutPoint()
	require.NoError(t, err)
	multi.AddTxIn(wire.NewTxIn(op, nil, nil))
	_, err = Sign(multi, priv, utxo, &chaincfg.TestNet3Params)
	assert.ErrorIs(t, err, ErrSigningFailed)
}
