package engine

import (
	"github.com/wildfunctions/sci_calculator/pkg/calc"
	"github.com/wildfunctions/sci_calculator/pkg/parser"
)

// Config holds all parameters for a calculator session.
type Config struct {
	Layout     string `json:"layout"`
	LayoutFile string `json:"layout_file,omitempty"` // overrides Layout when set
	Digits     int    `json:"digits"`
	MaxDepth   int    `json:"max_depth"`
	Format     string `json:"format"` // "text", "json" or "latex"
	Verbose    bool   `json:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Layout:   "scientific",
		Digits:   calc.DefaultDigits,
		MaxDepth: parser.DefaultMaxDepth,
		Format:   "text",
		Verbose:  false,
	}
}
