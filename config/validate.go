// Package config validates invocation configuration before any key
// material is touched or network calls are made. Validation failures are
// caller input errors: surfaced immediately, never retried.
package config

import (
	"fmt"
	"math"
)

// Config is the resolved per-invocation configuration for building a
// transaction.
type Config struct {
	Network        string  // "test" or "main"
	WalletFile     string  // resolved absolute path
	FeeRate        float64 // sat/vB, fractional allowed
	Payload        string  // OP_RETURN payload text
	UTXOIndex      int     // -1 selects the first available
	AllowLargeData bool
	Broadcast      bool
	RPCOnly        bool
}

// Validate checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func Validate(cfg Config) error {
	if cfg.Network != "test" && cfg.Network != "main" {
		return fmt.Errorf("%w: %q (want \"test\" or \"main\")", ErrInvalidNetwork, cfg.Network)
	}
	if cfg.WalletFile == "" {
		return ErrEmptyWalletPath
	}
	if err := ValidateFeeRate(cfg.FeeRate); err != nil {
		return err
	}
	if cfg.Payload == "" {
		return ErrEmptyPayload
	}
	return nil
}

// ValidateFeeRate rejects non-positive and non-finite fee rates before any
// fee arithmetic runs on them.
func ValidateFeeRate(rate float64) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidFeeRate, rate)
	}
	return nil
}
