package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"taskpanel/internal/api"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the task store over HTTP",
	Long: `Serves the configured store as a JSON API under /api/v1/tasks until
interrupted. Other taskpanel instances can use it with --remote.

Example:
taskpanel serve --addr 0.0.0.0:8000
`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "addr", "", "Listen address (defaults to listen_addr from the config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}
	svc, closeSvc, err := openService(cfg, path)
	if err != nil {
		return err
	}
	defer closeSvc()

	addr := listenAddr
	if addr == "" {
		addr = cfg.ListenAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return api.NewServer(svc, cfg.BatchLimit).ListenAndServe(ctx, addr)
}
