package main

import (
	"fmt"

	"github.com/lox/betteridle/cmd/betteridle/shared"
	"github.com/lox/betteridle/internal/unlocks"
	"github.com/lox/betteridle/registry"
)

// GenUnlocksCmd precomputes internal/unlocks.Table for a content pack and
// writes it to disk. Grounded on cmd/gen-preflop/main.go's "load input,
// compute once, write JSON" shape.
type GenUnlocksCmd struct {
	Catalog string `kong:"required,help='Path to a JSON content pack'"`
	Out     string `kong:"required,help='Path to write the unlock table'"`
	Debug   bool   `kong:"help='Enable debug logging'"`
}

func (c *GenUnlocksCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	catalog, err := registry.LoadCatalog(c.Catalog)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	table := unlocks.Compute(catalog)
	if err := unlocks.Save(table, c.Out); err != nil {
		return fmt.Errorf("save unlock table: %w", err)
	}

	logger.Info("generated unlock table", "skills", len(table), "out", c.Out)
	return nil
}
