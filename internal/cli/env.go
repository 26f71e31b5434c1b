package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix marks the environment variables that provide flag defaults.
const EnvPrefix = "PRODGRAPH_"

// Env holds flag defaults keyed by environment variable name.
type Env map[string]string

// LoadEnv reads the given env files, skipping missing ones, and overlays the
// process environment. Later files win over earlier ones; the process
// environment wins over every file.
func LoadEnv(files ...string) (Env, error) {
	env := Env{}
	for _, file := range files {
		values, err := godotenv.Read(file)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("reading env file %s: %w", file, err)
		}
		for k, v := range values {
			env[k] = v
		}
	}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(k, EnvPrefix) {
			env[k] = v
		}
	}
	return env, nil
}

func (e Env) get(name, fallback string) string {
	if v, ok := e[EnvPrefix+name]; ok && v != "" {
		return v
	}
	return fallback
}

func (e Env) getBool(name string, fallback bool) bool {
	switch strings.ToLower(e.get(name, "")) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}
