// Package config loads the engine's optional TOML configuration file:
// worker-pool size, transposition table size, per-search time budget, and
// the opening book path. Values are defaults; CHESS_NPROC and any flags
// cmd/negamaxd parses take precedence over the file (SPEC_FULL.md §1).
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// FileName is the default config file name looked up in the working
// directory, matching the teacher's flat ~/.termchess/config.toml idiom
// reduced to a single project-relative file.
const FileName = "negamax.toml"

// Config holds engine defaults overridable by the TOML file and, above
// that, CLI flags/env vars.
type Config struct {
	// Workers is the worker-pool size. Zero means auto-detect (runtime.NumCPU,
	// overridden by CHESS_NPROC).
	Workers int `toml:"workers"`
	// TableSize is the transposition table slot count. Zero means tt.DefaultSize.
	TableSize int `toml:"table_size"`
	// SearchBudgetMillis is the per-search wall-clock budget. Zero means unbounded
	// (depth-limited only).
	SearchBudgetMillis int `toml:"search_budget_millis"`
	// BookPath is the Polyglot opening book file path.
	BookPath string `toml:"book_path"`
	// MaxDepth is the iterative-deepening ceiling.
	MaxDepth int `toml:"max_depth"`
}

// Default returns the built-in defaults: auto-detected worker count, the
// transposition table's default size, a 5 second search budget, the
// standard book path, and a depth ceiling of 8.
func Default() Config {
	return Config{
		Workers:            0,
		TableSize:          0,
		SearchBudgetMillis: 5000,
		BookPath:           "res/opening_book.bin",
		MaxDepth:           8,
	}
}

// Load reads path and overlays it onto Default(). If path does not exist,
// the defaults are returned unchanged -- a missing negamax.toml is not an
// error (unlike a missing opening book, which is fatal per spec 7).
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
