package config

import "fmt"

// Validate checks that the loaded configuration is internally consistent.
func (c *Config) Validate() error {
	switch c.Policy {
	case "log", "raise":
	default:
		return fmt.Errorf("invalid policy %q (must be \"log\" or \"raise\")", c.Policy)
	}
	if c.Width < 1 {
		return fmt.Errorf("invalid width %d (must be at least 1)", c.Width)
	}
	switch c.OutputFormat {
	case "auto", "text", "plain":
	default:
		return fmt.Errorf("invalid output format %q (must be \"auto\", \"text\" or \"plain\")", c.OutputFormat)
	}
	seen := make(map[string]bool, len(c.Passes))
	for _, p := range c.Passes {
		if p.Name == "" {
			return fmt.Errorf("pass entry with empty name")
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate pass %q in config", p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}
