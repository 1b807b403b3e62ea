package cli

import (
	"strings"

	"taskpanel/internal/api"
	"taskpanel/internal/config"
	"taskpanel/internal/logger"
	"taskpanel/internal/service"
	"taskpanel/internal/storage"
)

// loadConfig reads the config named by --config, falling back to the
// environment and XDG defaults. It returns the path actually used.
func loadConfig() (config.Config, string, error) {
	path := configPath
	if path == "" {
		path = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return cfg, path, err
	}
	return cfg, path, nil
}

// openService returns the task service the command works against: the HTTP
// client when a remote URL is configured, otherwise the local store. The
// returned func releases it.
func openService(cfg config.Config, path string) (service.Service, func() error, error) {
	remote := strings.TrimSpace(remoteURL)
	if remote == "" {
		remote = strings.TrimSpace(cfg.RemoteURL)
	}
	if remote != "" {
		logger.L().WithField("remote", remote).Debug("using remote task service")
		return api.NewClient(remote, nil), func() error { return nil }, nil
	}

	source := cfg.DatabaseSource(path)
	store, err := storage.Open(cfg.DBDriver, source)
	if err != nil {
		return nil, nil, err
	}
	logger.L().WithField("driver", cfg.DBDriver).Debug("opened task store")
	return store, store.Close, nil
}
