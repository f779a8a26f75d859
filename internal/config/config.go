package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "cadence"

type Config struct {
	GaplessPlayback bool     `koanf:"gapless_playback" default:"true"`
	NerdFontIcons   bool     `koanf:"nerd_font_icons"`
	Notifications   bool     `koanf:"notifications" default:"true"`
	LibrarySources  []string `koanf:"library_sources" validate:"dive,required"` // scanned on startup

	LibraryDB   string `koanf:"library_db"`   // default: $XDG_DATA_HOME/cadence/library.db
	PlaylistDir string `koanf:"playlist_dir"` // default: $XDG_DATA_HOME/cadence/playlists

	// Dispatch loop period; auto-advance precision depends on it.
	TickInterval time.Duration `koanf:"tick_interval" default:"100ms" validate:"gte=10ms,lte=1s"`

	Log LogConfig `koanf:"log"`

	// Action name to keys, replacing the default keys of that action.
	Keys map[string][]string `koanf:"keys"`
}

type LogConfig struct {
	Level string `koanf:"level" default:"info" validate:"oneof=debug info warn error"`
	File  string `koanf:"file"` // default: $XDG_STATE_HOME/cadence/cadence.log
}

// Load reads the user config, then ./config.toml, then explicit when
// non-empty. Later files override earlier ones key by key. A missing
// explicit file is an error; missing implicit files are skipped.
func Load(explicit string) (*Config, error) {
	paths := getConfigPaths()
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, errors.Wrap(err, "config file")
		}
		paths = append(paths, explicit)
	}
	return load(paths)
}

func load(paths []string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, "parse %s", path)
			}
		}
	}

	// Defaults first so keys absent from every file keep them and
	// explicit false values survive.
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.Wrap(err, "set defaults")
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	for i, src := range cfg.LibrarySources {
		cfg.LibrarySources[i] = expandPath(src)
	}
	cfg.LibraryDB = orDefault(expandPath(cfg.LibraryDB), filepath.Join(xdg.DataHome, appName, "library.db"))
	cfg.PlaylistDir = orDefault(expandPath(cfg.PlaylistDir), filepath.Join(xdg.DataHome, appName, "playlists"))
	cfg.Log.File = orDefault(expandPath(cfg.Log.File), filepath.Join(xdg.StateHome, appName, appName+".log"))

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

func getConfigPaths() []string {
	return []string{
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
