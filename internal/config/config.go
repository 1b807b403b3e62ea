package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	apperrors "taskpanel/internal/errors"
)

const (
	AppName               = "taskpanel"
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "tasks.db"

	// EnvConfigPath overrides the config file location.
	EnvConfigPath = "TASKPANEL_CONFIG"
)

const (
	AppearanceSystem = "system"
	AppearanceLight  = "light"
	AppearanceDark   = "dark"
)

var Appearances = []string{AppearanceSystem, AppearanceLight, AppearanceDark}

type Keymap struct {
	Quit           string `toml:"quit"`
	Add            string `toml:"add"`
	Up             string `toml:"up"`
	Down           string `toml:"down"`
	Toggle         string `toml:"toggle"`
	Delete         string `toml:"delete"`
	Detail         string `toml:"detail"`
	Confirm        string `toml:"confirm"`
	Cancel         string `toml:"cancel"`
	Edit           string `toml:"edit"`
	PriorityUp     string `toml:"priority_up"`
	PriorityDown   string `toml:"priority_down"`
	NextPage       string `toml:"next_page"`
	PrevPage       string `toml:"prev_page"`
	StatusFilter   string `toml:"status_filter"`
	PriorityFilter string `toml:"priority_filter"`
	ToggleView     string `toml:"toggle_view"`
	Settings       string `toml:"settings"`
	Refresh        string `toml:"refresh"`
	Help           string `toml:"help"`
}

type Config struct {
	DBDriver        string `toml:"db_driver"`
	DBPath          string `toml:"db_path"`
	DBDSN           string `toml:"db_dsn"`
	RemoteURL       string `toml:"remote_url"`
	ListenAddr      string `toml:"listen_addr"`
	PageSize        int    `toml:"page_size"`
	BatchLimit      int    `toml:"batch_limit"`
	CacheTTLSeconds int    `toml:"cache_ttl_seconds"`
	Appearance      string `toml:"appearance"`
	LogFile         string `toml:"log_file"`
	Keys            Keymap `toml:"keys"`
}

// DefaultConfigDir returns $XDG_CONFIG_HOME/taskpanel, or ~/.config/taskpanel.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

func ResolveConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return filepath.Join(DefaultConfigDir(), DefaultConfigFileName)
}

func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := Save(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, apperrors.NewConfigurationError("Config file is not valid TOML").
			WithContext("path", path).
			WithOriginalError(err)
	}
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return write(path, cfg)
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (c Config) Validate() error {
	switch c.DBDriver {
	case "sqlite", "mysql":
	default:
		return apperrors.NewConfigurationError("db_driver must be sqlite or mysql").WithContext("db_driver", c.DBDriver)
	}
	if c.DBDriver == "mysql" && c.DBDSN == "" && c.RemoteURL == "" {
		return apperrors.NewConfigurationError("db_dsn is required for the mysql driver")
	}
	if !ValidAppearance(c.Appearance) {
		return apperrors.NewConfigurationError("appearance must be system, light or dark").WithContext("appearance", c.Appearance)
	}
	return nil
}

// DatabaseSource returns the DSN or file path handed to the storage driver.
// A relative db_path is resolved against the directory of configPath.
func (c Config) DatabaseSource(configPath string) string {
	if c.DBDriver == "mysql" {
		return c.DBDSN
	}
	if filepath.IsAbs(c.DBPath) || configPath == "" {
		return c.DBPath
	}
	return filepath.Join(filepath.Dir(configPath), c.DBPath)
}

func ValidAppearance(v string) bool {
	for _, a := range Appearances {
		if a == v {
			return true
		}
	}
	return false
}

func (c *Config) fillDefaults() {
	def := defaultConfig()
	if c.DBDriver == "" {
		c.DBDriver = def.DBDriver
	}
	if c.DBPath == "" {
		c.DBPath = DefaultDBName
	}
	if c.ListenAddr == "" {
		c.ListenAddr = def.ListenAddr
	}
	if c.PageSize < 1 {
		c.PageSize = def.PageSize
	}
	if c.BatchLimit < 1 {
		c.BatchLimit = def.BatchLimit
	}
	if c.CacheTTLSeconds < 1 {
		c.CacheTTLSeconds = def.CacheTTLSeconds
	}
	if c.Appearance == "" {
		c.Appearance = def.Appearance
	}
}

// Default returns the configuration written on first launch.
func Default() Config { return defaultConfig() }

func defaultConfig() Config {
	return Config{
		DBDriver:        "sqlite",
		DBPath:          DefaultDBName,
		ListenAddr:      "127.0.0.1:8000",
		PageSize:        5,
		BatchLimit:      100,
		CacheTTLSeconds: 30,
		Appearance:      AppearanceSystem,
		Keys: Keymap{
			Quit:           "q",
			Add:            "a",
			Up:             "k",
			Down:           "j",
			Toggle:         " ",
			Delete:         "d",
			Detail:         "enter",
			Confirm:        "enter",
			Cancel:         "esc",
			Edit:           "e",
			PriorityUp:     "+",
			PriorityDown:   "-",
			NextPage:       "]",
			PrevPage:       "[",
			StatusFilter:   "s",
			PriorityFilter: "p",
			ToggleView:     "c",
			Settings:       ",",
			Refresh:        "r",
			Help:           "?",
		},
	}
}
