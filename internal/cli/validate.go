package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fjglira/GoE2E-StepContext/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the stepctx.yaml configuration file",
	Long:  `Loads the configuration file and checks for errors, missing required fields, and invalid values.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %q is valid.\n", cfgFile)
		log.Debugf("Loaded config: %+v", cfg)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
