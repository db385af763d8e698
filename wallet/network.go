package wallet

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
)

// Network selector names accepted on the command line.
const (
	NetworkTest = "test"
	NetworkMain = "main"
)

// networks maps selector names to chain parameters.
var networks = map[string]*chaincfg.Params{
	NetworkTest: &chaincfg.TestNet3Params,
	NetworkMain: &chaincfg.MainNetParams,
}

// GetParams returns the chain parameters for a network selector.
func GetParams(name string) (*chaincfg.Params, error) {
	if params, ok := networks[name]; ok {
		return params, nil
	}
	return nil, fmt.Errorf("%w: %q (want %q or %q)", ErrInvalidNetwork, name, NetworkTest, NetworkMain)
}

// DefaultRPCPort returns the default Bitcoin Core RPC port for a network.
func DefaultRPCPort(name string) int {
	if name == NetworkMain {
		return 8332
	}
	return 18332
}
