package wallet

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

// WalletPathEnv overrides the wallet file path when set.
const WalletPathEnv = "BTCMARK_WALLET"

// ResolveWalletPath resolves the effective wallet file path: the
// BTCMARK_WALLET environment variable takes priority over flagPath, a
// leading tilde expands to the user's home directory, and the result is
// made absolute.
func ResolveWalletPath(flagPath string) (string, error) {
	path := flagPath
	if env := os.Getenv(WalletPathEnv); env != "" {
		path = env
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("wallet: resolve home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("wallet: resolve wallet path: %w", err)
	}
	return abs, nil
}

// LoadKey reads the wallet file at path and returns the key pair for the
// given network. With an empty passphrase the file holds a plain WIF string;
// otherwise it holds the encrypted format produced by SaveKey. A key encoded
// for a different network is rejected rather than reinterpreted.
func LoadKey(path, passphrase string, params *chaincfg.Params) (*KeyPair, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("wallet: read key file: %w", err)
	}

	wifStr := strings.TrimSpace(string(data))
	if passphrase != "" {
		wifStr, err = DecryptKey(data, passphrase)
		if err != nil {
			return nil, err
		}
	}
	if wifStr == "" {
		return nil, fmt.Errorf("%w: key file is empty", ErrMalformedKey)
	}

	return keyPairFromWIF(wifStr, params)
}

// SaveKey writes the key pair's WIF to path. The parent directory is created
// with owner-only access, the write happens under an exclusive file lock to
// avoid torn writes, and the file itself gets owner-only permissions. An
// existing file is never overwritten.
func SaveKey(path string, kp *KeyPair, passphrase string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrKeyExists, path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("wallet: create wallet directory: %w", err)
	}

	wifStr, err := kp.WIF()
	if err != nil {
		return err
	}

	data := []byte(wifStr + "\n")
	if passphrase != "" {
		data, err = EncryptKey(wifStr, passphrase)
		if err != nil {
			return err
		}
	}

	lock, err := acquireLock(path + ".lock")
	if err != nil {
		return fmt.Errorf("wallet: %w", err)
	}
	defer releaseLock(lock)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w: %s", ErrKeyExists, path)
		}
		return fmt.Errorf("wallet: create key file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("wallet: write key file: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("wallet: sync key file: %w", err)
	}
	return nil
}

// LoadOrCreateKey loads the key at path, generating and persisting a fresh
// one when no file exists yet. The returned bool reports whether a new key
// was created.
func LoadOrCreateKey(path, passphrase string, params *chaincfg.Params) (*KeyPair, bool, error) {
	kp, err := LoadKey(path, passphrase, params)
	if err == nil {
		return kp, false, nil
	}
	if !errors.Is(err, ErrKeyNotFound) {
		return nil, false, err
	}

	priv, err := Generate()
	if err != nil {
		return nil, false, err
	}
	kp, err = NewKeyPair(priv, params)
	if err != nil {
		return nil, false, err
	}
	if err := SaveKey(path, kp, passphrase); err != nil {
		return nil, false, err
	}
	return kp, true, nil
}

func keyPairFromWIF(wifStr string, params *chaincfg.Params) (*KeyPair, error) {
	wif, err := btcutil.DecodeWIF(wifStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedKey, err)
	}
	if !wif.IsForNet(params) {
		return nil, fmt.Errorf("%w: key is not for network %q", ErrWrongNetwork, params.Name)
	}
	return NewKeyPair(wif.PrivKey, params)
}
