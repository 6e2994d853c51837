// Package config loads the indexer's runtime configuration: the set of
// chains to index, the RPC/store/eventbus endpoints, and operational knobs
// like RPC concurrency and polling interval, from a TOML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// ChainConfig describes one network the indexer tracks.
type ChainConfig struct {
	ChainID            uint64   `koanf:"chain_id"`
	Name               string   `koanf:"name"`
	RPCURLs            []string `koanf:"rpc_urls"`
	WSURLs             []string `koanf:"ws_urls"`
	PollIntervalMs     uint64   `koanf:"poll_interval_ms"`
	FinalityBlockCount uint64   `koanf:"finality_block_count"`
	StartBlock         uint64   `koanf:"start_block"`
	MaxRequestsPerSec  uint64   `koanf:"max_requests_per_second"`
	// Contracts maps a contract's name (as used in registry.Context.Contracts
	// and filter.Filter.Name, e.g. "ConditionalTokens") to its deployed
	// address on this chain, generalizing the teacher's hardcoded
	// ContractAddresses{CTFExchange, ConditionalTokens} struct into an
	// arbitrary named set.
	Contracts map[string]string `koanf:"contracts"`
}

// DatabaseConfig configures the Postgres-backed indexing store.
type DatabaseConfig struct {
	DSN          string `koanf:"dsn"`
	MaxConns     int32  `koanf:"max_conns"`
	SchemaPrefix string `koanf:"schema_prefix"`
}

// SyncStoreConfig configures the embedded bbolt-backed sync cache.
type SyncStoreConfig struct {
	Path string `koanf:"path"`
}

// EventBusConfig configures the downstream NATS JetStream publisher.
type EventBusConfig struct {
	URL    string `koanf:"url"`
	Stream string `koanf:"stream"`
}

// TelemetryConfig configures the Prometheus metrics endpoint and the
// separate liveness/readiness HTTP endpoint.
type TelemetryConfig struct {
	ListenAddr string `koanf:"listen_addr"`
	HealthAddr string `koanf:"health_addr"`
}

// Ordering selects how the indexing runtime merges events across chains.
const (
	OrderingOmnichain  = "omnichain"
	OrderingMultichain = "multichain"
)

// Config is the full, validated runtime configuration.
type Config struct {
	Chains    []ChainConfig   `koanf:"chains"`
	Database  DatabaseConfig  `koanf:"database"`
	SyncStore SyncStoreConfig `koanf:"sync_store"`
	EventBus  EventBusConfig  `koanf:"event_bus"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	LogLevel  string          `koanf:"log_level"`
	// Ordering is "omnichain" (a single global checkpoint-sorted stream,
	// the default) or "multichain" (one independent stream per chain,
	// a.k.a. experimental_isolated).
	Ordering string `koanf:"ordering"`
}

// Load reads configPath as TOML, then applies environment variable
// overrides (e.g. DATABASE_DSN overrides database.dsn), mirroring the
// teacher's internal/util.InitConfig dotted-path convention.
func Load(logger *zerolog.Logger, configPath string) (*Config, error) {
	ko := koanf.New(".")

	if err := ko.Load(file.Provider(configPath), toml.Parser()); err != nil {
		return nil, fmt.Errorf("config: failed to load %s: %w", configPath, err)
	}

	if err := ko.Load(env.Provider("", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(s), "_", ".")
	}), nil); err != nil {
		logger.Warn().Err(err).Msg("config: failed to load environment overrides")
	}

	var cfg Config
	if err := ko.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the minimal set of invariants the rest of the indexer
// assumes holds: at least one chain, each chain has an RPC endpoint and a
// non-zero finality window, and the database DSN is set.
func (c *Config) Validate() error {
	if len(c.Chains) == 0 {
		return fmt.Errorf("config: at least one [[chains]] entry is required")
	}
	seen := make(map[uint64]bool, len(c.Chains))
	for _, ch := range c.Chains {
		if ch.ChainID == 0 {
			return fmt.Errorf("config: chain %q: chain_id must be set", ch.Name)
		}
		if seen[ch.ChainID] {
			return fmt.Errorf("config: duplicate chain_id %d", ch.ChainID)
		}
		seen[ch.ChainID] = true
		if len(ch.RPCURLs) == 0 {
			return fmt.Errorf("config: chain %q: at least one rpc url is required", ch.Name)
		}
		if ch.FinalityBlockCount == 0 {
			return fmt.Errorf("config: chain %q: finality_block_count must be > 0", ch.Name)
		}
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("config: database.dsn is required")
	}
	if c.Ordering == "" {
		c.Ordering = OrderingOmnichain
	}
	if c.Ordering != OrderingOmnichain && c.Ordering != OrderingMultichain {
		return fmt.Errorf("config: ordering must be %q or %q, got %q", OrderingOmnichain, OrderingMultichain, c.Ordering)
	}
	return nil
}

// ChainByID returns the configuration for chainID, if present.
func (c *Config) ChainByID(chainID uint64) (ChainConfig, bool) {
	for _, ch := range c.Chains {
		if ch.ChainID == chainID {
			return ch, true
		}
	}
	return ChainConfig{}, false
}
