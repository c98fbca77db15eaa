// Package config provides configuration management for the chisel CLI.
//
// Configuration is layered (highest to lowest precedence): command-line
// flags, CHISEL_-prefixed environment variables, a chisel.yaml config file
// found in or above the working directory, and built-in defaults.
package config

// PassConfig selects one pass and optionally restricts where it runs.
type PassConfig struct {
	Name           string   `koanf:"name"`
	IgnorePrefixes []string `koanf:"ignore_prefixes"`
}

// Config holds all CLI configuration options.
type Config struct {
	// Passes is the ordered pipeline. A missing key means "all built-in
	// passes in catalog order"; an explicitly empty list disables all
	// styling (the pipeline becomes the identity).
	Passes []PassConfig `koanf:"passes"`
	// PassesSet records whether the passes key was present at all,
	// distinguishing "default pipeline" from "explicitly empty".
	PassesSet bool `koanf:"-"`

	Policy       string `koanf:"policy"`      // log or raise
	Width        int    `koanf:"width"`       // printer line budget
	PluginsDir   string `koanf:"plugins_dir"` // directory of *.star passes
	Verbose      bool   `koanf:"verbose"`
	OutputFormat string `koanf:"output"` // auto, text, plain
}

// Default configuration values.
const (
	DefaultPolicy     = "log"
	DefaultWidth      = 80
	DefaultPluginsDir = ".chisel/passes"
	DefaultOutput     = "auto" // auto-detect: TTY=styled, non-TTY=plain
)
