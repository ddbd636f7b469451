// Package config loads on-disk solver/server/client configuration from HCL
// files. Grounded on internal/client/config.go and internal/server/config.go:
// struct tags, a Default*Config function, and a loader that falls back to
// defaults when the file is absent, then backfills zero-valued fields with
// defaults after decoding.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/betteridle/sdk/solver"
)

// Config is the complete on-disk configuration for the betteridle CLI: the
// solver's own tuning knobs, plus how cmd/serve and cmd/inspect's client
// reach each other.
type Config struct {
	Solver SolverSettings `hcl:"solver,block"`
	Server ServerSettings `hcl:"server,block"`
	Client ClientSettings `hcl:"client,block"`
}

// SolverSettings mirrors the scalar fields of sdk/solver.SolverOptions.
// SellPolicyOverride is deliberately absent: it is a sellpolicy.Spec
// interface value chosen per goal, not a config-file scalar.
type SolverSettings struct {
	MaxExpandedNodes           int     `hcl:"max_expanded_nodes,optional"`
	MaxQueueSize               int     `hcl:"max_queue_size,optional"`
	Seed                       int64   `hcl:"seed,optional"`
	CandidateCacheSize         int     `hcl:"candidate_cache_size,optional"`
	InventoryThresholdFraction float64 `hcl:"inventory_threshold_fraction,optional"`
}

// ServerSettings configures cmd/serve.
type ServerSettings struct {
	Address     string `hcl:"address,optional"`
	Port        int    `hcl:"port,optional"`
	LogLevel    string `hcl:"log_level,optional"`
	MaxSessions int    `hcl:"max_sessions,optional"`
	// AuthToken is the bearer token internal/auth checks on the websocket
	// upgrade. Empty disables auth (local/dev use only).
	AuthToken string `hcl:"auth_token,optional"`
}

// ClientSettings configures a client of cmd/serve's websocket endpoint.
// The inspect subcommand reads a plan file and does not use these settings.
type ClientSettings struct {
	ServerURL      string `hcl:"server_url,optional"`
	ConnectTimeout int    `hcl:"connect_timeout,optional"`
	LogLevel       string `hcl:"log_level,optional"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Solver: SolverSettings{
			MaxExpandedNodes:   200_000,
			MaxQueueSize:       500_000,
			Seed:               1,
			CandidateCacheSize: 4096,
		},
		Server: ServerSettings{
			Address:     "localhost",
			Port:        8080,
			LogLevel:    "info",
			MaxSessions: 16,
		},
		Client: ClientSettings{
			ServerURL:      "ws://localhost:8080/ws",
			ConnectTimeout: 10,
			LogLevel:       "warn",
		},
	}
}

// Load reads filename as HCL and backfills any zero-valued field with
// Default()'s value. A missing file is not an error: Default() is returned
// as-is.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: parsing %s: %s", filename, diags.Error())
	}

	var cfg Config
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("config: decoding %s: %s", filename, diags.Error())
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	d := Default()

	if cfg.Solver.MaxExpandedNodes == 0 {
		cfg.Solver.MaxExpandedNodes = d.Solver.MaxExpandedNodes
	}
	if cfg.Solver.MaxQueueSize == 0 {
		cfg.Solver.MaxQueueSize = d.Solver.MaxQueueSize
	}
	if cfg.Solver.Seed == 0 {
		cfg.Solver.Seed = d.Solver.Seed
	}
	if cfg.Solver.CandidateCacheSize == 0 {
		cfg.Solver.CandidateCacheSize = d.Solver.CandidateCacheSize
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = d.Server.Address
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = d.Server.Port
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = d.Server.LogLevel
	}
	if cfg.Server.MaxSessions == 0 {
		cfg.Server.MaxSessions = d.Server.MaxSessions
	}

	if cfg.Client.ServerURL == "" {
		cfg.Client.ServerURL = d.Client.ServerURL
	}
	if cfg.Client.ConnectTimeout == 0 {
		cfg.Client.ConnectTimeout = d.Client.ConnectTimeout
	}
	if cfg.Client.LogLevel == "" {
		cfg.Client.LogLevel = d.Client.LogLevel
	}
}

// Validate checks the configuration is well-formed.
func (c *Config) Validate() error {
	if c.Solver.MaxExpandedNodes <= 0 {
		return fmt.Errorf("config: solver max_expanded_nodes must be > 0")
	}
	if c.Solver.MaxQueueSize <= 0 {
		return fmt.Errorf("config: solver max_queue_size must be > 0")
	}
	if c.Solver.InventoryThresholdFraction < 0 || c.Solver.InventoryThresholdFraction > 1 {
		return fmt.Errorf("config: solver inventory_threshold_fraction must be in [0, 1]")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server port %d out of range", c.Server.Port)
	}
	if c.Server.MaxSessions <= 0 {
		return fmt.Errorf("config: server max_sessions must be > 0")
	}
	return nil
}

// ToSolverOptions converts the scalar solver settings into sdk/solver's
// SolverOptions shape. Callers attach SellPolicyOverride themselves, since
// it is chosen per goal, not per config file.
func (s SolverSettings) ToSolverOptions() solver.SolverOptions {
	return solver.SolverOptions{
		MaxExpandedNodes:           s.MaxExpandedNodes,
		MaxQueueSize:               s.MaxQueueSize,
		Seed:                       s.Seed,
		CandidateCacheSize:         s.CandidateCacheSize,
		InventoryThresholdFraction: s.InventoryThresholdFraction,
	}
}
