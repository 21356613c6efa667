package config

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	strict := true
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Run: RunConfig{
			Paths:       []string{"features"},
			Format:      "progress",
			Strict:      &strict,
			Concurrency: 1,
		},
		Trace: TraceConfig{
			Enabled:  false,
			Database: ".stepctx/trace.db",
		},
		Report: ReportConfig{
			Format: "markdown",
		},
	}
}
