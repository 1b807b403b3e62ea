package cli

import (
	"github.com/spf13/cobra"

	"taskpanel/internal/logger"
)

var (
	configPath string
	remoteURL  string
	debug      bool
	verbose    bool
	jsonLogs   bool
	quiet      bool

	// Set at build time with -ldflags "-X taskpanel/internal/cli.version=...".
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "taskpanel",
	Short: "Terminal admin panel for a task service",
	Long: `taskpanel manages tasks from the terminal.

Without a subcommand it opens the interactive panel: a paginated, filterable
task list with a month calendar, add/edit dialogs and confirmed deletes.
The same store can be served over HTTP with "serve" and other instances can
point at it with --remote.

Example:
taskpanel
taskpanel ui --status pending --priority high
taskpanel serve --addr 127.0.0.1:8000
taskpanel --remote http://127.0.0.1:8000 export --format csv -o tasks.csv
`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Setup(logger.Options{Verbose: verbose || debug, JSON: jsonLogs, Quiet: quiet, Output: cmd.ErrOrStderr()})
	},
	RunE: runUI,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $TASKPANEL_CONFIG or ~/.config/taskpanel/config.toml)")
	rootCmd.PersistentFlags().StringVar(&remoteURL, "remote", "", "Base URL of a taskpanel server to use instead of the local store")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging (same as --debug)")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only show errors")

	addViewFlags(rootCmd)

	rootCmd.AddCommand(uiCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(versionCmd)
}
