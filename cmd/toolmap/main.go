// Package main provides the entry point for the toolmap CLI.
package main

import (
	"context"
	"os"

	"github.com/agentstation/toolmap/cmd/toolmap/app"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	application, err := app.New(version, commit, date, builtBy)
	if err != nil {
		app.ExitOnError(err)
	}

	ctx, cancel := app.ContextWithSignals(context.Background())
	err = application.Execute(ctx, os.Args[1:])
	cancel()
	app.ExitOnError(err)
}
