package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/urfave/cli/v2"

	"github.com/btcmark/btcmark/network"
	"github.com/btcmark/btcmark/wallet"
)

// runEnv is the shared runtime wiring every command starts from: the
// resolved network, the wallet key pair, and the network clients. The RPC
// client is nil when no local node is configured.
type runEnv struct {
	netName    string
	params     *chaincfg.Params
	walletPath string
	keys       *wallet.KeyPair
	created    bool
	rpcConfig  *network.RPCConfig
	rpc        *network.RPCClient
	public     *network.MempoolClient
}

// buildEnv resolves the wallet and network clients from the global flags.
// A missing wallet file is created on the spot; callers check env.created
// before spending.
func buildEnv(c *cli.Context) (*runEnv, error) {
	netName := c.String("network")
	params, err := wallet.GetParams(netName)
	if err != nil {
		return nil, err
	}

	walletPath, err := wallet.ResolveWalletPath(c.String("wallet-file"))
	if err != nil {
		return nil, err
	}
	keys, created, err := wallet.LoadOrCreateKey(walletPath, c.String("wallet-pass"), params)
	if err != nil {
		return nil, err
	}

	rpcConfig, err := network.ResolveRPCConfig(rpcFlags(c), rpcEnviron(), wallet.DefaultRPCPort(netName))
	if err != nil {
		return nil, err
	}

	env := &runEnv{
		netName:    netName,
		params:     params,
		walletPath: walletPath,
		keys:       keys,
		created:    created,
		rpcConfig:  rpcConfig,
		public:     network.NewMempoolClient(netName),
	}
	if rpcConfig != nil {
		env.rpc = network.NewRPCClient(*rpcConfig)
	}
	return env, nil
}

// journalPath resolves the transaction journal location: the --txlog flag
// when given, otherwise a txlog.db next to the wallet file.
func (e *runEnv) journalPath(c *cli.Context) string {
	if p := c.String("txlog"); p != "" {
		return p
	}
	return filepath.Join(filepath.Dir(e.walletPath), "txlog.db")
}

// reportNewWallet prints the freshly created wallet's address and the
// funding instruction. A new wallet has nothing to spend, so commands that
// need coins stop here.
func (e *runEnv) reportNewWallet() {
	fmt.Printf("Created new wallet: %s\n", e.walletPath)
	fmt.Printf("  Network: %s\n", e.netName)
	fmt.Printf("  Address: %s\n", e.keys.Address())
	fmt.Println("Fund this address, then re-run the command.")
}

func rpcFlags(c *cli.Context) network.RPCFlags {
	return network.RPCFlags{
		URL:      c.String("rpc-url"),
		User:     c.String("rpc-user"),
		Password: c.String("rpc-password"),
		Host:     c.String("rpc-host"),
		Port:     c.Int("rpc-port"),
	}
}

func rpcEnviron() map[string]string {
	return map[string]string{
		network.EnvRPCURL:  os.Getenv(network.EnvRPCURL),
		network.EnvRPCUser: os.Getenv(network.EnvRPCUser),
		network.EnvRPCPass: os.Getenv(network.EnvRPCPass),
	}
}
