package network

import (
	"fmt"
	"time"
)

// Environment variables recognized for RPC configuration.
const (
	EnvRPCURL  = "BTCMARK_RPC_URL"
	EnvRPCUser = "BTCMARK_RPC_USER"
	EnvRPCPass = "BTCMARK_RPC_PASS"
)

// RPCConfig holds the connection parameters for a Bitcoin Core node's
// JSON-RPC interface. A nil *RPCConfig means no local node is configured.
type RPCConfig struct {
	URL      string        `json:"url"`
	User     string        `json:"user"`
	Password string        `json:"password"`
	Timeout  time.Duration `json:"timeout,omitempty"`
}

// RPCFlags carries the raw command-line values the config is resolved from.
// Either a full URL or user/password (+optional host/port) can be given.
type RPCFlags struct {
	URL      string
	User     string
	Password string
	Host     string
	Port     int
}

// ResolveRPCConfig merges RPC configuration from two sources with
// decreasing priority:
//
//  1. CLI flags (--rpc-url, or --rpc-user/--rpc-password with
//     --rpc-host/--rpc-port)
//  2. Environment variables (BTCMARK_RPC_URL, BTCMARK_RPC_USER,
//     BTCMARK_RPC_PASS)
//
// defaultPort fills in the port when credentials are given without one
// (18332 for testnet, 8332 for mainnet). Returns nil when no source
// configures a node; the dispatcher then never selects the LocalRPC
// channel. Credentials without a resolvable URL are an error rather than a
// silently ignored flag.
func ResolveRPCConfig(flags RPCFlags, env map[string]string, defaultPort int) (*RPCConfig, error) {
	result := RPCConfig{}

	if env != nil {
		if v := env[EnvRPCURL]; v != "" {
			result.URL = v
		}
		if v := env[EnvRPCUser]; v != "" {
			result.User = v
		}
		if v := env[EnvRPCPass]; v != "" {
			result.Password = v
		}
	}

	if flags.URL != "" {
		result.URL = flags.URL
	}
	if flags.User != "" {
		result.User = flags.User
	}
	if flags.Password != "" {
		result.Password = flags.Password
	}

	// Build the URL from components when credentials were given without one.
	if result.URL == "" && result.User != "" {
		if result.Password == "" {
			return nil, fmt.Errorf("%w: RPC user given without password", ErrNoRPCConfig)
		}
		host := flags.Host
		if host == "" {
			host = "localhost"
		}
		port := flags.Port
		if port == 0 {
			port = defaultPort
		}
		result.URL = fmt.Sprintf("http://%s:%d", host, port)
	}

	if result.URL == "" {
		return nil, nil
	}
	return &result, nil
}
