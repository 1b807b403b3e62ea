package cli

import (
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"taskpanel/internal/logger"
	"taskpanel/internal/query"
	"taskpanel/internal/ui"
)

var (
	viewStatus   string
	viewPriority string
	viewPage     int
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive task panel (default)",
	Long: `Opens the task panel. The initial filters and page come from the flags;
out-of-range values fall back to their defaults.

Example:
taskpanel ui --status completed --page 2
`,
	Args: cobra.NoArgs,
	RunE: runUI,
}

func init() {
	addViewFlags(uiCmd)
}

func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&viewStatus, "status", "all", "Initial status filter (all, pending, completed)")
	cmd.Flags().StringVar(&viewPriority, "priority", "all", "Initial priority filter (all, low, medium, high)")
	cmd.Flags().IntVar(&viewPage, "page", 1, "Initial page")
}

func initialState() query.ViewState {
	return query.Decode(map[string]string{
		query.ParamStatus:   viewStatus,
		query.ParamPriority: viewPriority,
		query.ParamPage:     strconv.Itoa(viewPage),
	})
}

func runUI(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	// The panel owns the terminal; logs go to the configured file or nowhere.
	var out io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	logger.Setup(logger.Options{Verbose: verbose || debug, JSON: jsonLogs, Quiet: quiet, Output: out})

	svc, closeSvc, err := openService(cfg, path)
	if err != nil {
		return err
	}
	defer closeSvc()

	return ui.Run(cmd.Context(), svc, cfg, path, initialState())
}
