package cli

import (
	"errors"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fjglira/GoE2E-StepContext/internal/config"
	"github.com/fjglira/GoE2E-StepContext/internal/logging"
)

var (
	cfgFile   string
	verbose   bool
	cfg       *config.Config
	log       *logrus.Logger
	logCloser io.Closer
)

// rootCmd is the base command for stepctx.
var rootCmd = &cobra.Command{
	Use:   "stepctx",
	Short: "Inspect nested step execution of BDD scenarios",
	Long: `stepctx tracks which step of a scenario is executing, including steps
invoked from inside other steps, and renders the recorded traces.

Everything is driven by a YAML configuration file (stepctx.yaml).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(cmd)
		if err != nil {
			return err
		}

		logCfg := cfg.Logging
		if verbose {
			logCfg.Level = "debug"
		}
		log, logCloser, err = logging.New(logCfg)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser == nil {
			return nil
		}
		return logCloser.Close()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "stepctx.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Initialize default logger (overridden in PersistentPreRunE)
	log = logrus.New()
}

// loadConfig reads the config file. A missing default file yields the
// defaults; a missing file named explicitly with --config is an error.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if _, err := os.Stat(cfgFile); errors.Is(err, os.ErrNotExist) && !cmd.Flags().Changed("config") {
		return config.DefaultConfig(), nil
	}
	return config.Load(cfgFile)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
