// Package config holds the small set of tunables the wallet-core
// packages need at construction time: network selection, dust policy,
// fee-estimator cache behavior, and mass-model coefficients.
package config

import (
	"go.uber.org/zap"

	"github.com/Namp88/hoosat-wallet-core/pkg/address"
	"github.com/Namp88/hoosat-wallet-core/pkg/feepolicy"
)

// Config is built via New with functional Options; the zero value is not
// meant to be used directly.
type Config struct {
	Network             address.Network
	DustThreshold       uint64
	FeeEstimatorTTLSecs int64
	MassConfig          feepolicy.MassConfig
	Logger              *zap.SugaredLogger
}

// Option mutates a Config under construction.
type Option func(*Config)

// WithNetwork selects mainnet or testnet. Defaults to Mainnet.
func WithNetwork(n address.Network) Option {
	return func(c *Config) { c.Network = n }
}

// WithDustThreshold overrides the change-output dust floor. Only a
// Builder constructed via txbuilder.NewWithConfig picks this up; a Builder
// built with txbuilder.New uses the package's own DustThreshold constant.
func WithDustThreshold(v uint64) Option {
	return func(c *Config) { c.DustThreshold = v }
}

// WithFeeEstimatorTTL overrides the fee-recommendation cache TTL, in
// seconds.
func WithFeeEstimatorTTL(seconds int64) Option {
	return func(c *Config) { c.FeeEstimatorTTLSecs = seconds }
}

// WithMassConfig overrides the mass-model coefficients.
func WithMassConfig(mc feepolicy.MassConfig) Option {
	return func(c *Config) { c.MassConfig = mc }
}

// WithLogger injects a logger; components that need one (currently only
// the fee estimator's RPC-fallback path) pull it from here.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Config) { c.Logger = l }
}

// New builds a Config with defaults (mainnet, 1000 base-unit dust floor,
// 60s fee cache TTL, the network's default mass coefficients, no logger),
// applying opts in order.
func New(opts ...Option) *Config {
	c := &Config{
		Network:             address.Mainnet,
		DustThreshold:       1000,
		FeeEstimatorTTLSecs: 60,
		MassConfig:          feepolicy.DefaultMassConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewEstimator builds a feepolicy.Estimator from this Config.
func (c *Config) NewEstimator() (*feepolicy.Estimator, error) {
	return feepolicy.NewEstimator(c.FeeEstimatorTTLSecs, c.Logger)
}
