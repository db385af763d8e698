package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var (
	// Version information (set via ldflags during build)
	version = "dev"
	commit  = "unknown"
)

func main() {
	app := &cli.App{
		Name:    "btcmark",
		Usage:   "Anchor data on Bitcoin with OP_RETURN transactions",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		Description: `Builds, signs, and optionally broadcasts single-input P2WPKH
transactions carrying an OP_RETURN data output. The wallet is a single
WIF key file; change returns to the wallet's own address.`,
		Commands: []*cli.Command{
			sendCommand(),
			balanceCommand(),
			historyCommand(),
			showCommand(),
			addressCommand(),
			feesCommand(),
		},
		// Global flags available to all commands. RPC and wallet-path
		// environment overrides are resolved in the wallet and network
		// packages rather than through EnvVars, so the precedence rules
		// stay in one tested place.
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "wallet-file",
				Aliases: []string{"w"},
				Value:   "wallet.key",
				Usage:   "Path to the WIF key file (BTCMARK_WALLET overrides)",
			},
			&cli.StringFlag{
				Name:  "wallet-pass",
				Usage: "Passphrase for an encrypted key file (empty for plain WIF)",
			},
			&cli.StringFlag{
				Name:    "network",
				Aliases: []string{"n"},
				Value:   "test",
				Usage:   "Network selector: \"test\" or \"main\"",
			},
			&cli.StringFlag{
				Name:  "rpc-url",
				Usage: "Bitcoin Core JSON-RPC URL (BTCMARK_RPC_URL overrides default)",
			},
			&cli.StringFlag{
				Name:  "rpc-user",
				Usage: "Bitcoin Core RPC username",
			},
			&cli.StringFlag{
				Name:  "rpc-password",
				Usage: "Bitcoin Core RPC password",
			},
			&cli.StringFlag{
				Name:  "rpc-host",
				Usage: "Bitcoin Core RPC host (default localhost)",
			},
			&cli.IntFlag{
				Name:  "rpc-port",
				Usage: "Bitcoin Core RPC port (default 18332 test, 8332 main)",
			},
			&cli.StringFlag{
				Name:  "txlog",
				Usage: "Path to the local transaction journal (default next to the wallet file)",
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "btcmark: %v\n", err)
		os.Exit(1)
	}
}
