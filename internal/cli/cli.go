package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/specialistvlad/prodgraph/internal/app"
	"github.com/specialistvlad/prodgraph/internal/availability"
	"github.com/specialistvlad/prodgraph/internal/source"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments with flag defaults taken from env. It
// returns a populated Config, a boolean indicating if the program should exit
// cleanly, or an ExitError.
func Parse(args []string, output io.Writer, env Env) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("prodgraph", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
prodgraph - Builds the task dependency graph of a production plan.

Usage:
  prodgraph [options] [SOURCE]

Arguments:
  SOURCE
    Directory or file with resource, groups and tasks records (.json, .yaml,
    .yml, .hcl), an s3://bucket/prefix URL, or a postgres:// DSN.

Every option can also be set with a PRODGRAPH_* environment variable or in a
.env file, e.g. PRODGRAPH_SOURCE or PRODGRAPH_S3_ENDPOINT.

Options:
`)
		flagSet.PrintDefaults()
	}

	sourceFlag := flagSet.String("source", env.get("SOURCE", ""), "Record source: path, s3://bucket/prefix or postgres:// DSN.")
	sFlag := flagSet.String("s", "", "Record source (shorthand).")
	referenceFlag := flagSet.String("reference", env.get("REFERENCE", ""), "Reference instant for availability windows (RFC3339, '2006-01-02 15:04:05-0700' or a date). Default: today 00:00 UTC.")
	splitFlag := flagSet.String("split", env.get("SPLIT", "fill"), "Micro-batch split strategy. Options: 'fill' or 'even'.")
	outputFlag := flagSet.String("output-format", env.get("OUTPUT_FORMAT", "json"), "Plan output format. Options: 'json' or 'yaml'.")
	logFormatFlag := flagSet.String("log-format", env.get("LOG_FORMAT", "text"), "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", env.get("LOG_LEVEL", "info"), "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	s3Endpoint := flagSet.String("s3-endpoint", env.get("S3_ENDPOINT", ""), "S3 endpoint for s3:// sources.")
	s3Region := flagSet.String("s3-region", env.get("S3_REGION", "us-east-1"), "S3 region.")
	s3AccessKey := flagSet.String("s3-access-key", env.get("S3_ACCESS_KEY", ""), "S3 access key.")
	s3SecretKey := flagSet.String("s3-secret-key", env.get("S3_SECRET_KEY", ""), "S3 secret key.")
	s3SSL := flagSet.Bool("s3-ssl", env.getBool("S3_USE_SSL", true), "Use TLS for S3.")
	pgDSN := flagSet.String("pg-dsn", env.get("PG_DSN", ""), "Postgres DSN used when the source is 'postgres'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	src := *sourceFlag
	if *sFlag != "" {
		src = *sFlag
	} else if flagSet.NArg() > 0 {
		src = flagSet.Arg(0)
	}
	slog.Debug("Record source determined.", "source", src)

	if src == "" {
		slog.Debug("No record source provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	reference, err := parseReference(*referenceFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	config, err := app.NewConfig(app.Config{
		Source: src,
		S3: source.S3Config{
			Endpoint:  *s3Endpoint,
			Region:    *s3Region,
			AccessKey: *s3AccessKey,
			SecretKey: *s3SecretKey,
			UseSSL:    *s3SSL,
		},
		PostgresDSN:  *pgDSN,
		Reference:    reference,
		Split:        strings.ToLower(*splitFlag),
		OutputFormat: strings.ToLower(*outputFlag),
		LogFormat:    strings.ToLower(*logFormatFlag),
		LogLevel:     strings.ToLower(*logLevelFlag),
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "source", config.Source)
	return config, false, nil
}

var referenceLayouts = []string{time.RFC3339, availability.TimestampLayout, "2006-01-02"}

// parseReference accepts an empty string, meaning the default reference.
func parseReference(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range referenceLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid reference %q: use RFC3339, %q or a date", s, availability.TimestampLayout)
}
