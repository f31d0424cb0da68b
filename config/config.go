// Package config holds command-line configuration for the engine demo
// binaries, in the same flag-based style the teacher project uses for its
// transmitter configuration.
package config

import "flag"

// Config holds all application configuration values.
type Config struct {
	Pin           int
	TestPattern   bool
	StandardBurst bool
	Diag          bool
	DiagInterval  int // milliseconds
}

// New creates and returns a new Config struct populated from command-line flags.
func New() *Config {
	cfg := &Config{}
	flag.IntVar(&cfg.Pin, "pin", 27, "GPIO pin driving the PWM composite output")
	flag.BoolVar(&cfg.TestPattern, "test", true, "Fill the framebuffer with SMPTE color bars instead of a real content producer")
	flag.BoolVar(&cfg.StandardBurst, "standard-burst", false, "Emit color burst on every active line (standards-correct) instead of only on vertical-sync lines")
	flag.BoolVar(&cfg.Diag, "diag", false, "Launch the terminal diagnostics dashboard instead of running headless")
	flag.IntVar(&cfg.DiagInterval, "diag-interval-ms", 250, "Diagnostics dashboard poll interval in milliseconds")
	flag.Parse()
	return cfg
}
