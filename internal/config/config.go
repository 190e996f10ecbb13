package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"

	defaultBackend         = BackendSQLite
	defaultRefreshInterval = time.Second
	defaultLogLevel        = "info"
	defaultLogMaxSizeMB    = 10
	defaultLogMaxFiles     = 5
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Storage StorageConfig `toml:"storage"`
	Journey JourneyConfig `toml:"journey"`
	Logging LoggingConfig `toml:"logging"`
}

type StorageConfig struct {
	Backend    string `toml:"backend"`
	Path       string `toml:"path"`
	SyncWrites bool   `toml:"sync_writes"`
}

type JourneyConfig struct {
	RefreshInterval time.Duration `toml:"refresh_interval"`
}

type LoggingConfig struct {
	Level     string `toml:"level"`
	File      string `toml:"file"`
	MaxSizeMB int    `toml:"max_size_mb"`
	MaxFiles  int    `toml:"max_files"`
}

type LoadOptions struct {
	ConfigPath string
	Env        map[string]string
	Flags      FlagOverrides
}

type FlagOverrides struct {
	DataDir        *string
	StorageBackend *string
}

// LoadReport records where the effective config came from.
type LoadReport struct {
	ConfigPath string
	FileLoaded bool
	DataDir    string
}

func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Backend:    defaultBackend,
			Path:       "",
			SyncWrites: true,
		},
		Journey: JourneyConfig{
			RefreshInterval: defaultRefreshInterval,
		},
		Logging: LoggingConfig{
			Level:     defaultLogLevel,
			File:      "",
			MaxSizeMB: defaultLogMaxSizeMB,
			MaxFiles:  defaultLogMaxFiles,
		},
	}
}

// Load applies defaults, then the TOML file, then BLOOM_* env, then flags.
// An empty storage path resolves to a file under the data directory.
func Load(opts LoadOptions) (Config, LoadReport, error) {
	cfg := DefaultConfig()
	report := LoadReport{}

	configPath, err := resolveConfigPath(opts)
	if err != nil {
		return Config{}, report, fmt.Errorf("resolve config path: %w", err)
	}
	report.ConfigPath = configPath
	loaded, err := loadAndApplyFile(configPath, &cfg)
	if err != nil {
		return Config{}, report, err
	}
	report.FileLoaded = loaded

	if err := applyEnvOverrides(&cfg, opts); err != nil {
		return Config{}, report, err
	}

	dataDir, err := bloomHome(opts)
	if err != nil {
		return Config{}, report, fmt.Errorf("resolve data dir: %w", err)
	}
	if opts.Flags.DataDir != nil && *opts.Flags.DataDir != "" {
		dataDir = *opts.Flags.DataDir
		cfg.Storage.Path = ""
	}
	if opts.Flags.StorageBackend != nil && *opts.Flags.StorageBackend != "" {
		cfg.Storage.Backend = *opts.Flags.StorageBackend
	}
	report.DataDir = dataDir

	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	if err := validate(cfg); err != nil {
		return Config{}, report, err
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = DefaultStoragePath(dataDir, cfg.Storage.Backend)
	}

	return cfg, report, nil
}

// DefaultStoragePath is bloom.db for SQLite and a badger/ directory for Badger.
func DefaultStoragePath(dataDir, backend string) string {
	if backend == BackendBadger {
		return filepath.Join(dataDir, "badger")
	}
	return filepath.Join(dataDir, "bloom.db")
}

type rawConfig struct {
	Storage *rawStorage `toml:"storage"`
	Journey *rawJourney `toml:"journey"`
	Logging *rawLogging `toml:"logging"`
}

type rawStorage struct {
	Backend    *string `toml:"backend"`
	Path       *string `toml:"path"`
	SyncWrites *bool   `toml:"sync_writes"`
}

type rawJourney struct {
	RefreshInterval *string `toml:"refresh_interval"`
}

type rawLogging struct {
	Level     *string `toml:"level"`
	File      *string `toml:"file"`
	MaxSizeMB *int    `toml:"max_size_mb"`
	MaxFiles  *int    `toml:"max_files"`
}

func loadAndApplyFile(path string, cfg *Config) (bool, error) {
	if path == "" {
		return false, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read config file %q: %w", path, err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false, fmt.Errorf("%w: parse TOML file %q: %v", ErrInvalidConfig, path, err)
	}

	if err := applyRawConfig(cfg, raw); err != nil {
		return false, err
	}
	return true, nil
}

func applyRawConfig(cfg *Config, raw rawConfig) error {
	if raw.Storage != nil {
		setString(raw.Storage.Backend, &cfg.Storage.Backend)
		setString(raw.Storage.Path, &cfg.Storage.Path)
		setBool(raw.Storage.SyncWrites, &cfg.Storage.SyncWrites)
	}

	if raw.Journey != nil {
		if err := setDuration("journey.refresh_interval", raw.Journey.RefreshInterval, &cfg.Journey.RefreshInterval); err != nil {
			return err
		}
	}

	if raw.Logging != nil {
		setString(raw.Logging.Level, &cfg.Logging.Level)
		setString(raw.Logging.File, &cfg.Logging.File)
		setInt(raw.Logging.MaxSizeMB, &cfg.Logging.MaxSizeMB)
		setInt(raw.Logging.MaxFiles, &cfg.Logging.MaxFiles)
	}

	return nil
}

func applyEnvOverrides(cfg *Config, opts LoadOptions) error {
	if value, ok := lookupEnv(opts, "BLOOM_STORAGE_BACKEND"); ok {
		cfg.Storage.Backend = value
	}
	if value, ok := lookupEnv(opts, "BLOOM_STORAGE_PATH"); ok {
		cfg.Storage.Path = value
	}
	if value, ok := lookupEnv(opts, "BLOOM_STORAGE_SYNC_WRITES"); ok {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: parse BLOOM_STORAGE_SYNC_WRITES: %v", ErrInvalidConfig, err)
		}
		cfg.Storage.SyncWrites = parsed
	}

	if value, ok := lookupEnv(opts, "BLOOM_JOURNEY_REFRESH_INTERVAL"); ok {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: parse BLOOM_JOURNEY_REFRESH_INTERVAL: %v", ErrInvalidConfig, err)
		}
		cfg.Journey.RefreshInterval = d
	}

	if value, ok := lookupEnv(opts, "BLOOM_LOG_LEVEL"); ok {
		cfg.Logging.Level = value
	}
	if value, ok := lookupEnv(opts, "BLOOM_LOG_FILE"); ok {
		cfg.Logging.File = value
	}
	if value, ok := lookupEnv(opts, "BLOOM_LOG_MAX_SIZE_MB"); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: parse BLOOM_LOG_MAX_SIZE_MB: %v", ErrInvalidConfig, err)
		}
		cfg.Logging.MaxSizeMB = parsed
	}
	if value, ok := lookupEnv(opts, "BLOOM_LOG_MAX_FILES"); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: parse BLOOM_LOG_MAX_FILES: %v", ErrInvalidConfig, err)
		}
		cfg.Logging.MaxFiles = parsed
	}

	return nil
}

func validate(cfg Config) error {
	switch cfg.Storage.Backend {
	case BackendSQLite, BackendBadger:
	default:
		return fmt.Errorf("%w: storage.backend must be %q or %q, got %q", ErrInvalidConfig, BackendSQLite, BackendBadger, cfg.Storage.Backend)
	}
	if cfg.Journey.RefreshInterval < 100*time.Millisecond || cfg.Journey.RefreshInterval > time.Minute {
		return fmt.Errorf("%w: journey.refresh_interval must be between 100ms and 1m", ErrInvalidConfig)
	}
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level must be debug, info, warn or error", ErrInvalidConfig)
	}
	if cfg.Logging.MaxSizeMB <= 0 {
		return fmt.Errorf("%w: logging.max_size_mb must be > 0", ErrInvalidConfig)
	}
	if cfg.Logging.MaxFiles < 0 {
		return fmt.Errorf("%w: logging.max_files must be >= 0", ErrInvalidConfig)
	}
	return nil
}

func setDuration(field string, raw *string, target *time.Duration) error {
	if raw == nil {
		return nil
	}
	d, err := time.ParseDuration(*raw)
	if err != nil {
		return fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, field, err)
	}
	*target = d
	return nil
}

func setString(raw *string, target *string) {
	if raw != nil {
		*target = *raw
	}
}

func setBool(raw *bool, target *bool) {
	if raw != nil {
		*target = *raw
	}
}

func setInt(raw *int, target *int) {
	if raw != nil {
		*target = *raw
	}
}

func resolveConfigPath(opts LoadOptions) (string, error) {
	if opts.ConfigPath != "" {
		return opts.ConfigPath, nil
	}
	if value, ok := lookupEnv(opts, "BLOOM_CONFIG_PATH"); ok {
		return value, nil
	}
	return defaultConfigPath(opts)
}

func lookupEnv(opts LoadOptions, key string) (string, bool) {
	if opts.Env != nil {
		if value, ok := opts.Env[key]; ok {
			return value, true
		}
	}
	return os.LookupEnv(key)
}

func bloomHome(opts LoadOptions) (string, error) {
	if value, ok := lookupEnv(opts, "BLOOM_HOME"); ok && value != "" {
		return value, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home: %w", err)
	}

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Application Support", "Bloom"), nil
	}

	dataHome := filepath.Join(home, ".local", "share")
	if xdgDataHome, ok := lookupEnv(opts, "XDG_DATA_HOME"); ok && xdgDataHome != "" {
		dataHome = xdgDataHome
	}
	return filepath.Join(dataHome, "bloom"), nil
}

func defaultConfigPath(opts LoadOptions) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home: %w", err)
	}

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Application Support", "Bloom", "config.toml"), nil
	}

	configHome := filepath.Join(home, ".config")
	if xdgConfigHome, ok := lookupEnv(opts, "XDG_CONFIG_HOME"); ok && xdgConfigHome != "" {
		configHome = xdgConfigHome
	}
	return filepath.Join(configHome, "bloom", "config.toml"), nil
}

// Path returns the config file Load would read for opts.
func Path(opts LoadOptions) (string, error) {
	return resolveConfigPath(opts)
}
