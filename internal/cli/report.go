package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fjglira/GoE2E-StepContext/internal/report"
	"github.com/fjglira/GoE2E-StepContext/pkg/trace"
)

var (
	reportDB     string
	reportFormat string
	reportOutput string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render recorded step traces",
	Long:  `Reads the trace database written by a godogbind suite with trace.enabled and renders every scenario as a nested step tree.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := firstNonEmpty(reportDB, cfg.Trace.Database)
		format := firstNonEmpty(reportFormat, cfg.Report.Format)
		output := firstNonEmpty(reportOutput, cfg.Report.Output)

		if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("no trace database at %s: enable trace in the config and run the suite first", dbPath)
		}

		store, err := trace.Open(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		traces, err := store.Scenarios()
		if err != nil {
			return err
		}

		log.WithFields(logrus.Fields{
			"database":  dbPath,
			"format":    format,
			"scenarios": len(traces),
		}).Info("Rendering step trace")

		var w io.Writer = cmd.OutOrStdout()
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create report file: %w", err)
			}
			defer f.Close()
			w = f
		}

		return report.Render(w, format, traces)
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportDB, "db", "", "trace database (defaults to trace.database)")
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "", "markdown, html or terminal (defaults to report.format)")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "write the report to a file instead of stdout")
	rootCmd.AddCommand(reportCmd)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
