package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "dayplan.db"
)

type Keymap struct {
	Quit      string `toml:"quit"`
	Add       string `toml:"add"`
	Up        string `toml:"up"`
	Down      string `toml:"down"`
	Toggle    string `toml:"toggle"`
	Delete    string `toml:"delete"`
	Edit      string `toml:"edit"`
	Confirm   string `toml:"confirm"`
	Cancel    string `toml:"cancel"`
	Filter    string `toml:"filter"`
	Inherit   string `toml:"inherit"`
	Clear     string `toml:"clear"`
	Subtasks  string `toml:"subtasks"`
	MoveUp    string `toml:"move_up"`
	MoveDown  string `toml:"move_down"`
	Calendar  string `toml:"calendar"`
	PrevMonth string `toml:"prev_month"`
	NextMonth string `toml:"next_month"`
}

type Config struct {
	DBPath        string `toml:"db_path"`
	DefaultFilter string `toml:"default_filter"`
	LogPath       string `toml:"log_path"`
	Keys          Keymap `toml:"keys"`
}

// ResolveConfigPath prefers a config.toml in the working directory,
// otherwise the user config dir.
func ResolveConfigPath() string {
	if _, err := os.Stat(DefaultConfigFileName); err == nil {
		return DefaultConfigFileName
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, "dayplan", DefaultConfigFileName)
}

func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		DBPath:        DefaultDBName,
		DefaultFilter: "all",
		Keys: Keymap{
			Quit:      "q",
			Add:       "a",
			Up:        "k",
			Down:      "j",
			Toggle:    " ",
			Delete:    "d",
			Edit:      "e",
			Confirm:   "enter",
			Cancel:    "esc",
			Filter:    "f",
			Inherit:   "i",
			Clear:     "c",
			Subtasks:  "s",
			MoveUp:    "K",
			MoveDown:  "J",
			Calendar:  "v",
			PrevMonth: "[",
			NextMonth: "]",
		},
	}
}
