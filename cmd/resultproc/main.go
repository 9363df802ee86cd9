package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	resultproc "github.com/testworks-io/resultproc"
	"github.com/testworks-io/resultproc/exitcodes"
	"github.com/testworks-io/resultproc/flags"
)

var (
	Version   = "v0.1.0"
	GitCommit = ""
	GitDate   = ""
)

func main() {
	log.SetDefault(log.NewLogger(slog.NewJSONHandler(
		os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s-%s", Version, GitCommit, GitDate)
	app.Name = "resultproc"
	app.Usage = "Test result post-processing service"
	app.Description = "resultproc merges, filters and reduces test result trees and emits report artifacts"
	app.ArgsUsage = "input [input ...]"
	app.Flags = flags.Flags
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		// Configuration errors, empty filtered results and missing
		// artifacts all surface here as fatal conditions.
		log.Error("Application failed", "message", err)
		os.Exit(exitcodes.RuntimeErr)
	}
}

func run(ctx *cli.Context) error {
	logger := log.New("app", "resultproc")

	cfg, err := resultproc.NewConfig(ctx, logger)
	if err != nil {
		return err
	}

	svc := resultproc.NewService(cfg)
	rc, err := svc.Run(ctx.Context)
	if err != nil {
		return err
	}
	if rc != exitcodes.Success {
		// Failed tests surface through the exit status without an extra
		// error message.
		os.Exit(rc)
	}
	return nil
}
