package main

import (
	"fmt"
	"os"

	"github.com/lox/betteridle/internal/regression"
)

// RegressCmd runs the scripted end-to-end scenarios against the built-in
// fixture catalog. Grounded on cmd/regression-tester/main.go's flow (parse
// flags, run, print report, exit non-zero on failure), narrowed from a
// many-mode bot-comparison harness to a fixed scenario list.
type RegressCmd struct {
	Seed int64 `kong:"default='1',help='Deterministic solver seed'"`
}

func (c *RegressCmd) Run() error {
	catalog := regression.BuildCatalog()
	results := regression.Run(catalog, regression.Scenarios(), c.Seed)

	regression.WriteReport(os.Stdout, results)

	for _, r := range results {
		if !r.Passed {
			return fmt.Errorf("regression: %d scenario(s) failed", countFailed(results))
		}
	}
	return nil
}

func countFailed(results []regression.Result) int {
	n := 0
	for _, r := range results {
		if !r.Passed {
			n++
		}
	}
	return n
}
