package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/specialistvlad/prodgraph/internal/app"
	"github.com/specialistvlad/prodgraph/internal/cli"
	"github.com/specialistvlad/prodgraph/internal/source"
)

// main is the entrypoint for the prodgraph application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The real main function handles errors and exit codes.
	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW, logW io.Writer, args []string) error {
	env, err := cli.LoadEnv(".env")
	if err != nil {
		return err
	}

	cfg, shouldExit, err := cli.Parse(args, logW, env)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	loader, err := source.Open(cfg.SourceConfig())
	if err != nil {
		return &cli.ExitError{Code: 2, Message: err.Error()}
	}

	prodgraph := app.NewApp(outW, logW, cfg, loader, nil)
	defer prodgraph.Close()

	return prodgraph.Run(ctx)
}
