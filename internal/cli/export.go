package cli

import (
	"os"

	"github.com/spf13/cobra"

	"taskpanel/internal/export"
	"taskpanel/internal/logger"
	"taskpanel/internal/query"
)

var (
	exportFormat   string
	exportStatus   string
	exportPriority string
	exportOutput   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tasks as JSON, CSV or PDF",
	Long: `Writes every task matching the filters to a file or stdout.

Example:
taskpanel export --format csv --status pending -o pending.csv
taskpanel export --format pdf --priority high -o high.pdf
`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", export.FormatJSON, "Output format (json, csv, pdf)")
	exportCmd.Flags().StringVar(&exportStatus, "status", "all", "Status filter (all, pending, completed)")
	exportCmd.Flags().StringVar(&exportPriority, "priority", "all", "Priority filter (all, low, medium, high)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}
	svc, closeSvc, err := openService(cfg, path)
	if err != nil {
		return err
	}
	defer closeSvc()

	state := query.Decode(map[string]string{
		query.ParamStatus:   exportStatus,
		query.ParamPriority: exportPriority,
	})
	data, err := export.NewExporter(svc, cfg.BatchLimit).Export(cmd.Context(), exportFormat, state)
	if err != nil {
		return err
	}

	if exportOutput == "" || exportOutput == "-" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
		return err
	}
	logger.WithFields(map[string]interface{}{
		"format": exportFormat,
		"file":   exportOutput,
		"bytes":  len(data),
	}).Info("export written")
	return nil
}
