package main

import (
	"github.com/alecthomas/kong"
)

var version = "dev"

type CLI struct {
	Version    kong.VersionFlag `short:"v" help:"Show version"`
	Solve      SolveCmd         `cmd:"" help:"Solve a goal against an initial state and write the resulting plan"`
	Serve      ServeCmd         `cmd:"" help:"Run the websocket solve/execute server"`
	Inspect    InspectCmd       `cmd:"" help:"Walk a persisted plan step by step in a terminal UI"`
	Batch      BatchCmd         `cmd:"" help:"Solve several goals concurrently"`
	Regress    RegressCmd       `cmd:"regress" help:"Run the scripted end-to-end regression scenarios"`
	Benchmark  BenchmarkCmd     `cmd:"" help:"Repeat a solve many times and report node/tick distributions"`
	GenUnlocks GenUnlocksCmd    `cmd:"gen-unlocks" help:"Precompute the catalog's per-skill unlock boundary table"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("betteridle"),
		kong.Description("Offline planner for idle-game skill/currency goals"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
