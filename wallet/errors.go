package wallet

import "errors"

var (
	// ErrKeyNotFound indicates no wallet file exists at the given path.
	ErrKeyNotFound = errors.New("wallet: key file not found")

	// ErrKeyExists indicates a wallet file already exists and would be
	// overwritten. An existing key is never silently regenerated.
	ErrKeyExists = errors.New("wallet: key file already exists")

	// ErrMalformedKey indicates the key material could not be decoded.
	ErrMalformedKey = errors.New("wallet: malformed key material")

	// ErrInvalidNetwork indicates an unknown network selector.
	ErrInvalidNetwork = errors.New("wallet: invalid network")

	// ErrWrongNetwork indicates the stored key was encoded for a different
	// network than the one selected.
	ErrWrongNetwork = errors.New("wallet: key network mismatch")

	// ErrDecryptionFailed indicates the encrypted wallet could not be
	// decrypted (wrong passphrase or corrupted file).
	ErrDecryptionFailed = errors.New("wallet: decryption failed")

	// ErrChecksumMismatch indicates decryption produced data that fails the
	// integrity check.
	ErrChecksumMismatch = errors.New("wallet: checksum mismatch")
)
