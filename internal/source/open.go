package source

import (
	"fmt"
	"net/url"
	"strings"
)

// Config selects and configures a loader.
type Config struct {
	// Source is a directory or file path, an s3://bucket/prefix URL, or a
	// postgres:// DSN.
	Source string
	// S3 supplies endpoint and credentials for s3:// sources.
	S3 S3Config
	// PostgresDSN is used when Source is the bare word "postgres".
	PostgresDSN string
}

// Open returns the loader for cfg.Source. Loaders holding connections also
// implement io.Closer.
func Open(cfg Config) (Loader, error) {
	src := strings.TrimSpace(cfg.Source)
	switch {
	case src == "":
		return nil, fmt.Errorf("record source is required")
	case strings.HasPrefix(src, "s3://"):
		u, err := url.Parse(src)
		if err != nil {
			return nil, fmt.Errorf("parsing s3 source %q: %w", src, err)
		}
		s3cfg := cfg.S3
		s3cfg.Bucket = u.Host
		s3cfg.Prefix = u.Path
		s3, err := NewS3(s3cfg)
		if err != nil {
			return nil, err
		}
		return s3, nil
	case strings.HasPrefix(src, "postgres://"), strings.HasPrefix(src, "postgresql://"):
		return openPostgres(src)
	case src == "postgres":
		return openPostgres(cfg.PostgresDSN)
	default:
		return Dir{Path: src}, nil
	}
}

func openPostgres(dsn string) (Loader, error) {
	pg, err := NewPostgres(dsn, nil)
	if err != nil {
		return nil, err
	}
	return pg, nil
}
