package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/btcmark/btcmark/config"
	"github.com/btcmark/btcmark/network"
	"github.com/btcmark/btcmark/tx"
	"github.com/btcmark/btcmark/txlog"
)

func sendCommand() *cli.Command {
	return &cli.Command{
		Name:  "send",
		Usage: "Build, sign, and dispatch an OP_RETURN transaction",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "data",
				Aliases:  []string{"d"},
				Usage:    "Payload text to embed in the OP_RETURN output",
				Required: true,
			},
			&cli.Float64Flag{
				Name:    "fee-rate",
				Aliases: []string{"f"},
				Value:   2.0,
				Usage:   "Fee rate in sat/vB (fractional allowed)",
			},
			&cli.IntFlag{
				Name:  "utxo-index",
				Value: -1,
				Usage: "Index of the unspent output to spend (-1 picks the first)",
			},
			&cli.BoolFlag{
				Name:  "allow-large-opreturn",
				Usage: "Build payloads above the 80-byte standardness limit anyway",
			},
			&cli.BoolFlag{
				Name:    "broadcast",
				Aliases: []string{"b"},
				Usage:   "Submit through the public API (a configured RPC node always broadcasts)",
			},
			&cli.BoolFlag{
				Name:  "rpc-only",
				Usage: "Discover unspent outputs via the local node's UTXO-set scan",
			},
		},
		Action: runSend,
	}
}

func runSend(c *cli.Context) error {
	env, err := buildEnv(c)
	if err != nil {
		return err
	}
	if env.created {
		env.reportNewWallet()
		return nil
	}

	cfg := config.Config{
		Network:        env.netName,
		WalletFile:     env.walletPath,
		FeeRate:        c.Float64("fee-rate"),
		Payload:        c.String("data"),
		UTXOIndex:      c.Int("utxo-index"),
		AllowLargeData: c.Bool("allow-large-opreturn"),
		Broadcast:      c.Bool("broadcast"),
		RPCOnly:        c.Bool("rpc-only"),
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	ctx := c.Context
	source, sourceName, err := network.SelectUTXOSource(cfg.RPCOnly, env.rpc, env.public)
	if err != nil {
		return err
	}
	utxos, err := source.FetchUTXOs(ctx, env.keys.Address())
	if err != nil {
		return err
	}
	utxo, err := tx.SelectUTXO(utxos, cfg.UTXOIndex)
	if err != nil {
		return fmt.Errorf("%w (source: %s, address: %s)", err, sourceName, env.keys.Address())
	}

	built, err := tx.Build(utxo, []byte(cfg.Payload), env.keys.Address(), env.params, cfg.FeeRate, cfg.AllowLargeData)
	if err != nil {
		return err
	}
	signed, err := tx.Sign(built.Tx, env.keys.PrivateKey(), utxo, env.params)
	if err != nil {
		return err
	}

	channel := network.SelectChannel(env.rpcConfig, cfg.Broadcast)

	// Journal before dispatch so the raw bytes survive a failed broadcast.
	store, err := txlog.Open(env.journalPath(c))
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	entry := &txlog.Entry{
		TxID:      signed.TxID,
		RawTx:     signed.Raw,
		Payload:   []byte(cfg.Payload),
		Network:   env.netName,
		Channel:   channel.String(),
		FeePaid:   built.Fee.Fee,
		CreatedAt: time.Now().UTC(),
	}
	if err := store.Put(entry); err != nil && !errors.Is(err, txlog.ErrDuplicateTx) {
		return err
	}

	fmt.Printf("Transaction: %s\n", signed.TxID)
	fmt.Printf("  Input:    %s:%d (%d sat via %s)\n", utxo.TxID, utxo.Vout, utxo.Value, sourceName)
	fmt.Printf("  Fee:      %s\n", built.Fee)
	if built.Change > 0 {
		fmt.Printf("  Change:   %d sat back to %s\n", built.Change, env.keys.Address())
	} else {
		fmt.Println("  Change:   none (sub-dust remainder folded into fee)")
	}
	fmt.Printf("  Channel:  %s\n", channel)

	if channel == network.ChannelManual {
		fmt.Println("\nSigned transaction hex (submit manually):")
		fmt.Println(signed.Hex())
		return nil
	}

	dispatcher := network.NewDispatcher(channel, env.rpc, env.public)
	txid, err := dispatcher.Dispatch(ctx, signed.Hex())
	if err != nil {
		// The signed bytes are still usable; print them so a rejection on
		// one channel does not strand the transaction.
		fmt.Println("\nSigned transaction hex:")
		fmt.Println(signed.Hex())
		return fmt.Errorf("dispatch via %s: %w", channel, err)
	}

	entry.Broadcast = true
	if err := store.Update(entry); err != nil {
		fmt.Fprintf(os.Stderr, "warning: journal update failed: %v\n", err)
	}
	fmt.Printf("\nBroadcast accepted: %s\n", txid)
	return nil
}

func balanceCommand() *cli.Command {
	return &cli.Command{
		Name:  "balance",
		Usage: "List the wallet's unspent outputs and total balance",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "rpc-only",
				Usage: "Discover unspent outputs via the local node's UTXO-set scan",
			},
		},
		Action: func(c *cli.Context) error {
			env, err := buildEnv(c)
			if err != nil {
				return err
			}
			if env.created {
				env.reportNewWallet()
				return nil
			}

			source, sourceName, err := network.SelectUTXOSource(c.Bool("rpc-only"), env.rpc, env.public)
			if err != nil {
				return err
			}
			utxos, err := source.FetchUTXOs(c.Context, env.keys.Address())
			if err != nil {
				return err
			}

			fmt.Printf("Address: %s (%s, via %s)\n", env.keys.Address(), env.netName, sourceName)
			var total int64
			for i, u := range utxos {
				state := "unconfirmed"
				if u.Confirmed {
					state = "confirmed"
				}
				fmt.Printf("  [%d] %s:%d  %d sat (%s)\n", i, u.TxID, u.Vout, u.Value, state)
				total += u.Value
			}
			fmt.Printf("Total: %d sat across %d output(s)\n", total, len(utxos))
			return nil
		},
	}
}

func historyCommand() *cli.Command {
	return &cli.Command{
		Name:   "history",
		Usage:  "List the wallet's OP_RETURN transactions and the local journal",
		Action: runHistory,
	}
}

func runHistory(c *cli.Context) error {
	env, err := buildEnv(c)
	if err != nil {
		return err
	}
	if env.created {
		env.reportNewWallet()
		return nil
	}

	entries, err := env.public.ListOpReturnTxs(c.Context, env.keys.Address())
	if err != nil {
		return err
	}
	fmt.Printf("On-chain OP_RETURN history for %s:\n", env.keys.Address())
	if len(entries) == 0 {
		fmt.Println("  (none)")
	}
	for _, e := range entries {
		state := "unconfirmed"
		if e.Confirmed {
			state = fmt.Sprintf("block %d", e.BlockHeight)
		}
		fmt.Printf("  %s  %q  fee %d sat, %d bytes (%s)\n", e.TxID, e.Payload, e.Fee, e.Size, state)
	}

	// The local journal also holds transactions that were never broadcast.
	dbPath := env.journalPath(c)
	if _, err := os.Stat(dbPath); err != nil {
		return nil
	}
	store, err := txlog.Open(dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	local, err := store.List()
	if err != nil {
		return err
	}
	fmt.Printf("\nLocal journal (%s):\n", dbPath)
	if len(local) == 0 {
		fmt.Println("  (empty)")
	}
	for _, e := range local {
		state := "built only"
		if e.Broadcast {
			state = "broadcast via " + e.Channel
		}
		fmt.Printf("  %s  %q  fee %d sat, %s, %s\n",
			e.TxID, e.Payload, e.FeePaid, e.CreatedAt.Format(time.RFC3339), state)
	}
	return nil
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Fetch a transaction's raw hex by txid",
		ArgsUsage: "TXID",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "rpc-only",
				Usage: "Fetch through the local node (requires txindex)",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return fmt.Errorf("txid argument is required")
			}
			txid := c.Args().Get(0)

			env, err := buildEnv(c)
			if err != nil {
				return err
			}

			ctx := c.Context
			var raw []byte
			if c.Bool("rpc-only") {
				if env.rpc == nil {
					return network.ErrNoRPCConfig
				}
				if err := env.rpc.CheckTxIndex(ctx); err != nil {
					return err
				}
				raw, err = env.rpc.GetRawTx(ctx, txid)
			} else {
				raw, err = env.public.GetRawTx(ctx, txid)
			}
			if err != nil {
				return err
			}
			fmt.Printf("%x\n", raw)
			return nil
		},
	}
}

func addressCommand() *cli.Command {
	return &cli.Command{
		Name:  "address",
		Usage: "Print the wallet's receive address, creating the wallet if needed",
		Action: func(c *cli.Context) error {
			env, err := buildEnv(c)
			if err != nil {
				return err
			}
			if env.created {
				env.reportNewWallet()
				return nil
			}
			fmt.Printf("Wallet:  %s\n", env.walletPath)
			fmt.Printf("Network: %s\n", env.netName)
			fmt.Printf("Address: %s\n", env.keys.Address())
			return nil
		},
	}
}

func feesCommand() *cli.Command {
	return &cli.Command{
		Name:  "fees",
		Usage: "Show the public index's recommended fee rates",
		Action: func(c *cli.Context) error {
			net := c.String("network")
			client := network.NewMempoolClient(net)
			rates, err := client.RecommendedFees(c.Context)
			if err != nil {
				return err
			}
			fmt.Printf("Recommended fee rates (%s, sat/vB):\n", net)
			fmt.Printf("  Fastest:   %g\n", rates.Fastest)
			fmt.Printf("  Half hour: %g\n", rates.HalfHour)
			fmt.Printf("  Hour:      %g\n", rates.Hour)
			fmt.Printf("  Economy:   %g\n", rates.Economy)
			fmt.Printf("  Minimum:   %g\n", rates.Minimum)
			return nil
		},
	}
}
