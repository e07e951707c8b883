package config

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/jlabel/internal/bank"
	"github.com/leapstack-labs/jlabel/internal/cli/output"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := bank.ParseFallback(c.Fallback); err != nil {
		return err
	}
	if _, err := output.ParseMode(c.OutputFormat); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	return nil
}

// BankConfig returns the compile options for the question bank.
// Call Validate first; an invalid fallback compiles without one.
func (c *Config) BankConfig(logger *slog.Logger) bank.Config {
	fb, _ := bank.ParseFallback(c.Fallback)
	return bank.Config{
		Fallback:       fb,
		TolerateQuirks: c.TolerateQuirks,
		Workers:        c.Workers,
		Logger:         logger,
	}
}
