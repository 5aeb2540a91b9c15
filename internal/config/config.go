package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "taskboard.db"
	DefaultLogName        = "taskboard.log"
	DefaultRedisPrefix    = "taskboard:"

	BackendSQLite = "sqlite"
	BackendRedis  = "redis"

	envConfigPath = "TASKBOARD_CONFIG"
)

type Keymap struct {
	Quit    string `toml:"quit"`
	Add     string `toml:"add"`
	Up      string `toml:"up"`
	Down    string `toml:"down"`
	Left    string `toml:"left"`
	Right   string `toml:"right"`
	Grab    string `toml:"grab"`
	Cancel  string `toml:"cancel"`
	Delete  string `toml:"delete"`
	Detail  string `toml:"detail"`
	Confirm string `toml:"confirm"`
	Search  string `toml:"search"`
	Theme   string `toml:"theme"`
}

type RedisConfig struct {
	Addr   string `toml:"addr"`
	Prefix string `toml:"prefix"`
	DB     int    `toml:"db"`
}

type SearchConfig struct {
	IncludeDescriptions bool `toml:"include_descriptions"`
}

type LogConfig struct {
	Path   string `toml:"path"`
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type Config struct {
	DBPath       string       `toml:"db_path"`
	Backend      string       `toml:"backend"`
	SQLiteDriver string       `toml:"sqlite_driver"`
	Redis        RedisConfig  `toml:"redis"`
	Search       SearchConfig `toml:"search"`
	Log          LogConfig    `toml:"log"`
	Keys         Keymap       `toml:"keys"`
}

// ResolveConfigPath picks the config file: $TASKBOARD_CONFIG, then the user
// config dir, then the working directory.
func ResolveConfigPath() string {
	if p := os.Getenv(envConfigPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, "taskboard", DefaultConfigFileName)
}

func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return resolvePaths(path, cfg), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	applyDefaults(&cfg)
	return resolvePaths(path, cfg), nil
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// applyDefaults fills values an older or hand-written config left empty.
func applyDefaults(cfg *Config) {
	def := defaultConfig()
	if cfg.DBPath == "" {
		cfg.DBPath = def.DBPath
	}
	if cfg.Backend == "" {
		cfg.Backend = def.Backend
	}
	if cfg.SQLiteDriver == "" {
		cfg.SQLiteDriver = def.SQLiteDriver
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = def.Redis.Addr
	}
	if cfg.Redis.Prefix == "" {
		cfg.Redis.Prefix = def.Redis.Prefix
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Log.Format
	}
	fillKeys(&cfg.Keys, def.Keys)
}

func fillKeys(k *Keymap, def Keymap) {
	pairs := []struct {
		dst *string
		def string
	}{
		{&k.Quit, def.Quit},
		{&k.Add, def.Add},
		{&k.Up, def.Up},
		{&k.Down, def.Down},
		{&k.Left, def.Left},
		{&k.Right, def.Right},
		{&k.Grab, def.Grab},
		{&k.Cancel, def.Cancel},
		{&k.Delete, def.Delete},
		{&k.Detail, def.Detail},
		{&k.Confirm, def.Confirm},
		{&k.Search, def.Search},
		{&k.Theme, def.Theme},
	}
	for _, p := range pairs {
		if *p.dst == "" {
			*p.dst = p.def
		}
	}
}

// resolvePaths anchors relative file paths at the config file's directory.
func resolvePaths(configPath string, cfg Config) Config {
	base := filepath.Dir(configPath)
	if cfg.DBPath != "" && !filepath.IsAbs(cfg.DBPath) && !isURI(cfg.DBPath) {
		cfg.DBPath = filepath.Join(base, cfg.DBPath)
	}
	if cfg.Log.Path != "" && !filepath.IsAbs(cfg.Log.Path) {
		cfg.Log.Path = filepath.Join(base, cfg.Log.Path)
	}
	return cfg
}

func isURI(p string) bool {
	return len(p) >= 5 && p[:5] == "file:"
}

func defaultConfig() Config {
	return Config{
		DBPath:       DefaultDBName,
		Backend:      BackendSQLite,
		SQLiteDriver: "sqlite",
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: DefaultRedisPrefix,
		},
		Log: LogConfig{
			Path:   DefaultLogName,
			Level:  "info",
			Format: "text",
		},
		Keys: Keymap{
			Quit:    "q",
			Add:     "a",
			Up:      "k",
			Down:    "j",
			Left:    "h",
			Right:   "l",
			Grab:    " ",
			Cancel:  "esc",
			Delete:  "d",
			Detail:  "enter",
			Confirm: "enter",
			Search:  "/",
			Theme:   "t",
		},
	}
}
