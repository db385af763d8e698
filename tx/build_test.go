package tx

import (
	"bytes"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Witness program of the secp256k1 generator point key, the BIP-173
// reference address.
const testChangeAddr = "tb1qw508d6qejxtdg4y5r3zarvary0c5xw7kxpjzsx"

func testUTXO(value int64) UTXO {
	return UTXO{
		TxID:      strings.Repeat("ab", 32),
		Vout:      0,
		Value:     value,
		Confirmed: true,
	}
}

func TestBuild_WithChange(t *testing.T) {
	payload := []byte("14 bytes here!")
	require.Len(t, payload, 14)

	result, err := Build(testUTXO(100000), payload, testChangeAddr, &chaincfg.TestNet3Params, 2.0, false)
	require.NoError(t, err)

	assert.Equal(t, 133, result.Fee.VSize)
	assert.Equal(t, int64(266), result.Fee.Fee)
	assert.Equal(t, int64(99734), result.Change)

	require.Len(t, result.Tx.TxOut, 2)
	require.Len(t, result.Tx.TxIn, 1)

	// Data output first and zero-valued, change second.
	assert.Equal(t, int64(0), result.Tx.TxOut[0].Value)
	assert.True(t, IsOPReturnScript(result.Tx.TxOut[0].PkScript))
	assert.Equal(t, int64(99734), result.Tx.TxOut[1].Value)
	assert.False(t, IsOPReturnScript(result.Tx.TxOut[1].PkScript))

	got, err := ParseOPReturnScript(result.Tx.TxOut[0].PkScript)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestBuild_VersionAndLockTime(t *testing.T) {
	result, err := Build(testUTXO(100000), []byte("data"), testChangeAddr, &chaincfg.TestNet3Params, 2.0, false)
	require.NoError(t, err)

	assert.Equal(t, int32(2), result.Tx.Version)
	assert.Equal(t, uint32(0), result.Tx.LockTime)
	assert.Empty(t, result.Tx.TxIn[0].SignatureScript)
	assert.Empty(t, result.Tx.TxIn[0].Witness)
}

func TestBuild_ValueConservation(t *testing.T) {
	utxo := testUTXO(100000)
	result, err := Build(utxo, []byte("14 bytes here!"), testChangeAddr, &chaincfg.TestNet3Params, 2.0, false)
	require.NoError(t, err)

	var outSum int64
	for _, out := range result.Tx.TxOut {
		outSum += out.Value
	}
	assert.Equal(t, utxo.Value, outSum+result.Fee.Fee)
}

func TestBuild_SubDustChangeFoldedIntoFee(t *testing.T) {
	payload := []byte("10 bytes..")
	require.Len(t, payload, 10)

	// 600 sat cannot cover the with-change fee plus a dust-or-better change
	// output; the build requotes without change and succeeds.
	result, err := Build(testUTXO(600), payload, testChangeAddr, &chaincfg.TestNet3Params, 2.0, false)
	require.NoError(t, err)

	assert.Equal(t, 98, result.Fee.VSize)
	assert.Equal(t, int64(196), result.Fee.Fee)
	assert.Equal(t, int64(0), result.Change)
	require.Len(t, result.Tx.TxOut, 1)
	assert.True(t, IsOPReturnScript(result.Tx.TxOut[0].PkScript))
}

func TestBuild_ChangeAtDustBoundary(t *testing.T) {
	payload := []byte("14 bytes here!")

	// At 1 sat/vB the with-change fee is 133 sat. A value of fee+546 leaves
	// change exactly at the dust limit, which is kept.
	result, err := Build(testUTXO(133+DustLimit), payload, testChangeAddr, &chaincfg.TestNet3Params, 1.0, false)
	require.NoError(t, err)
	require.Len(t, result.Tx.TxOut, 2)
	assert.Equal(t, DustLimit, result.Change)

	// One satoshi less and the change output is dropped.
	result, err = Build(testUTXO(133+DustLimit-1), payload, testChangeAddr, &chaincfg.TestNet3Params, 1.0, false)
	require.NoError(t, err)
	require.Len(t, result.Tx.TxOut, 1)
	assert.Equal(t, int64(0), result.Change)
}

func TestBuild_InsufficientFunds(t *testing.T) {
	_, err := Build(testUTXO(150), []byte("10 bytes.."), testChangeAddr, &chaincfg.TestNet3Params, 2.0, false)
	require.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Contains(t, err.Error(), "short 46")
}

func TestBuild_PayloadSizePolicy(t *testing.T) {
	atLimit := bytes.Repeat([]byte{0x0a}, MaxStandardPayload)
	overLimit := bytes.Repeat([]byte{0x0a}, MaxStandardPayload+1)

	_, err := Build(testUTXO(100000), atLimit, testChangeAddr, &chaincfg.TestNet3Params, 2.0, false)
	assert.NoError(t, err)

	// Rejected before any fee arithmetic, even with plenty of funds.
	_, err = Build(testUTXO(100000), overLimit, testChangeAddr, &chaincfg.TestNet3Params, 2.0, false)
	assert.ErrorIs(t, err, ErrPayloadTooLarge)

	result, err := Build(testUTXO(100000), overLimit, testChangeAddr, &chaincfg.TestNet3Params, 2.0, true)
	require.NoError(t, err)
	got, err := ParseOPReturnScript(result.Tx.TxOut[0].PkScript)
	require.NoError(t, err)
	assert.Len(t, got, MaxStandardPayload+1)
}

func TestBuild_InvalidInputs(t *testing.T) {
	valid := testUTXO(100000)

	_, err := Build(valid, []byte("data"), testChangeAddr, nil, 2.0, false)
	assert.ErrorIs(t, err, ErrNilParam)

	_, err = Build(valid, nil, testChangeAddr, &chaincfg.TestNet3Params, 2.0, false)
	assert.ErrorIs(t, err, ErrScriptBuild)

	_, err = Build(valid, []byte("data"), testChangeAddr, &chaincfg.TestNet3Params, 0, false)
	assert.ErrorIs(t, err, ErrInvalidFeeRate)

	_, err = Build(valid, []byte("data"), "not-an-address", &chaincfg.TestNet3Params, 2.0, false)
	assert.ErrorIs(t, err, ErrScriptBuild)

	badUTXO := valid
	badUTXO.TxID = "zzzz"
	_, err = Build(badUTXO, []byte("data"), testChangeAddr, &chaincfg.TestNet3Params, 2.0, false)
	assert.ErrorIs(t, err, ErrInvalidUTXO)
}
