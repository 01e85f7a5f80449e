// Package config reads optional defaults for minigrep from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// File mirrors the TOML layout:
//
//	nodes   = ["http://10.0.0.1:8081", "http://10.0.0.2:8081"]
//	quorum  = 2
//	timeout = "30s"
//	address = ":8081"
//	color   = "auto"
type File struct {
	Nodes   []string `toml:"nodes"`
	Quorum  int      `toml:"quorum"`
	Timeout Duration `toml:"timeout"`
	Address string   `toml:"address"`
	Color   string   `toml:"color"`
}

// Duration accepts time.ParseDuration strings in TOML.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

// Load parses the file at path. An empty path yields a zero File.
func Load(path string) (*File, error) {
	var f File
	if path == "" {
		return &f, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}

	if err := toml.Unmarshal(raw, &f); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("failed to parse config %q at %d:%d: %w", path, row, col, err)
		}
		return nil, fmt.Errorf("failed to parse config %q: %w", path, err)
	}
	return &f, nil
}
