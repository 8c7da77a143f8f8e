package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/go-arcade/guild/pkg/cache"
	"github.com/go-arcade/guild/pkg/database"
	"github.com/go-arcade/guild/pkg/http"
	"github.com/go-arcade/guild/pkg/log"
	"github.com/go-arcade/guild/pkg/trace"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. GUILD_HTTP_AUTH_SECRETKEY
const EnvPrefix = "GUILD"

type AppConfig struct {
	Log      log.Conf          `mapstructure:"log"`
	Http     http.Http         `mapstructure:"http"`
	Database database.Database `mapstructure:"database"`
	Redis    cache.Redis       `mapstructure:"redis"`
	Trace    trace.Conf        `mapstructure:"trace"`
}

var (
	mu  sync.RWMutex
	cfg AppConfig
)

// LoadConfigFile reads the toml file at path and keeps watching it. Only the
// log level is applied on change; every other section needs a restart.
func LoadConfigFile(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	var loaded AppConfig
	if err := v.Unmarshal(&loaded); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration file: %w", err)
	}
	applyDefaults(&loaded)

	mu.Lock()
	cfg = loaded
	mu.Unlock()

	v.OnConfigChange(func(e fsnotify.Event) {
		var changed AppConfig
		if err := v.Unmarshal(&changed); err != nil {
			log.Errorw("failed to reload configuration", "path", e.Name, "error", err)
			return
		}
		applyDefaults(&changed)
		reloadLog(changed.Log)
		log.Infow("configuration reloaded", "path", e.Name)
	})
	v.WatchConfig()

	log.Infow("config file loaded",
		"path", path,
	)
	return &loaded, nil
}

func applyDefaults(c *AppConfig) {
	defaults := log.SetDefaults()
	if c.Log.Output == "" {
		c.Log.Output = defaults.Output
	}
	if c.Log.Path == "" {
		c.Log.Path = defaults.Path
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Level
	}
	c.Http.SetDefaults()
	c.Database.SetDefaults()
	c.Redis.SetDefaults()
	c.Trace.SetDefaults()
}

// reloadLog rebuilds the logger when the log section changed
func reloadLog(next log.Conf) {
	mu.Lock()
	prev := cfg.Log
	cfg.Log = next
	mu.Unlock()
	if prev == next {
		return
	}
	if _, err := log.NewLog(&next); err != nil {
		log.Errorw("failed to apply log configuration", "error", err)
	}
}

// Current returns a copy of the last loaded configuration
func Current() AppConfig {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}
