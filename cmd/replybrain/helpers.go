package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/introflow/replybrain/internal/classify"
	"github.com/introflow/replybrain/internal/config"
	"github.com/introflow/replybrain/internal/engine"
)

// defaultDBPath is where the labeled corpus lives unless configured
// otherwise.
const defaultDBPath = "$HOME/.local/share/replybrain/corpus.db"

// buildEngine compiles the engine, applying a pattern overrides file when
// one is configured.
func buildEngine() (*engine.Engine, error) {
	path := viper.GetString("patterns.path")
	if path == "" {
		return engine.NewDefault(), nil
	}

	families, err := classify.LoadOverrides(config.ExpandPath(path))
	if err != nil {
		return nil, err
	}
	classifier, err := classify.New(families)
	if err != nil {
		return nil, fmt.Errorf("failed to compile pattern overrides: %w", err)
	}
	return engine.New(classifier), nil
}

// corpusDBPath resolves the corpus database location.
func corpusDBPath() string {
	path := viper.GetString("database.path")
	if path == "" {
		path = defaultDBPath
	}
	return config.ExpandPath(path)
}

// readTextArg returns the joined command arguments, or stdin when no
// arguments were given, so replies can be piped in.
func readTextArg(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
