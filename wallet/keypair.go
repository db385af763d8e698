// Package wallet holds the signing key pair for the OP_RETURN tool: random
// key generation, P2WPKH address derivation, and WIF persistence with
// owner-only permissions and optional passphrase encryption.
package wallet

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

// KeyPair is the wallet's signing identity: a private scalar, its compressed
// public key, and the derived P2WPKH address on the selected network.
// Immutable for the process lifetime; created once and threaded through the
// pipeline by value.
type KeyPair struct {
	priv    *btcec.PrivateKey
	address string
	params  *chaincfg.Params
}

// Generate produces a new cryptographically random private key. Failure of
// the underlying randomness source is fatal and not retried.
func Generate() (*btcec.PrivateKey, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("wallet: key generation: %w", err)
	}
	return priv, nil
}

// NewKeyPair derives the compressed public key and bech32 P2WPKH address for
// priv on the given network. Derivation is deterministic and cannot fail for
// a valid private key; errors indicate malformed key material.
func NewKeyPair(priv *btcec.PrivateKey, params *chaincfg.Params) (*KeyPair, error) {
	if priv == nil {
		return nil, fmt.Errorf("%w: nil private key", ErrMalformedKey)
	}
	if params == nil {
		return nil, fmt.Errorf("%w: nil params", ErrInvalidNetwork)
	}
	addr, err := btcutil.NewAddressWitnessPubKeyHash(
		btcutil.Hash160(priv.PubKey().SerializeCompressed()), params)
	if err != nil {
		return nil, fmt.Errorf("%w: address derivation: %v", ErrMalformedKey, err)
	}
	return &KeyPair{
		priv:    priv,
		address: addr.EncodeAddress(),
		params:  params,
	}, nil
}

// PrivateKey returns the signing key.
func (k *KeyPair) PrivateKey() *btcec.PrivateKey { return k.priv }

// PublicKey returns the derived public key.
func (k *KeyPair) PublicKey() *btcec.PublicKey { return k.priv.PubKey() }

// Address returns the bech32 P2WPKH address.
func (k *KeyPair) Address() string { return k.address }

// Params returns the chain parameters the address was derived for.
func (k *KeyPair) Params() *chaincfg.Params { return k.params }

// WIF encodes the private key in wallet import format (compressed).
func (k *KeyPair) WIF() (string, error) {
	wif, err := btcutil.NewWIF(k.priv, k.params, true)
	if err != nil {
		return "", fmt.Errorf("%w: WIF encoding: %v", ErrMalformedKey, err)
	}
	return wif.String(), nil
}
