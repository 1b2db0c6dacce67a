package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var (
	config *Config
	path   string
	mu     sync.Mutex
	v      *viper.Viper
)

// environment variables bound to configuration keys
var envBindings = map[string]string{
	"server.port":              "PORT",
	"frontend.client_url":      "CLIENT_URL",
	"data.mongodb.uri":         "MONGO_URI",
	"auth.jwt.secret":          "JWT_SECRET",
	"auth.admin_invite_token":  "ADMIN_INVITE_TOKEN",
	"observes.sentry.endpoint": "SENTRY_DSN",
}

// Config represents the configuration implementation.
type Config struct {
	AppName     string
	Environment string
	Host        string
	Port        int
	Frontend    *Frontend
	Logger      *Logger
	Data        *Data
	Auth        *Auth
	Storage     *Storage
	Observes    *Observes
	Viper       *viper.Viper
}

// IsProd reports whether the service runs in production.
func (c *Config) IsProd() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	if err := c.ValidateAuth(); err != nil {
		return err
	}
	if c.Data == nil || c.Data.MongoDB == nil || c.Data.MongoDB.URI == "" {
		return errors.New("data.mongodb.uri (MONGO_URI) is required")
	}
	return nil
}

// ValidateAuth checks the token settings, which every store needs.
func (c *Config) ValidateAuth() error {
	if c.Auth == nil || c.Auth.JWT == nil || c.Auth.JWT.Secret == "" {
		return errors.New("auth.jwt.secret (JWT_SECRET) is required")
	}
	return nil
}

// GetConfig returns the last loaded configuration.
func GetConfig() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()
	if config == nil {
		return nil, errors.New("config not loaded")
	}
	return config, nil
}

// LoadConfig loads the configuration from the file and the environment.
// An empty configPath searches the usual locations and tolerates a missing file.
func LoadConfig(configPath string) (*Config, error) {
	nv := viper.New()
	if configPath != "" {
		nv.SetConfigFile(configPath)
	} else {
		nv.SetConfigName("config")
		nv.SetConfigType("yaml")
		nv.AddConfigPath("/etc/taskmanager")
		nv.AddConfigPath("$HOME/.taskmanager")
		nv.AddConfigPath(".")
	}

	nv.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	nv.AutomaticEnv()
	for key, env := range envBindings {
		if err := nv.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if err := nv.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		AppName:     getStringOrDefault(nv, "app_name", "taskmanager"),
		Environment: getStringOrDefault(nv, "environment", "development"),
		Host:        nv.GetString("server.host"),
		Port:        getIntOrDefault(nv, "server.port", 5000),
		Frontend:    getFrontendConfig(nv),
		Logger:      getLoggerConfig(nv),
		Data:        getDataConfig(nv),
		Auth:        getAuth(nv),
		Storage:     getStorageConfig(nv),
		Observes:    getObservesConfig(nv),
		Viper:       nv,
	}

	mu.Lock()
	v = nv
	path = configPath
	config = cfg
	mu.Unlock()

	return cfg, nil
}

// Reload reloads the configuration from the file.
func Reload() error {
	mu.Lock()
	p := path
	mu.Unlock()

	if _, err := LoadConfig(p); err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}
	return nil
}

// Watch watches the configuration file and reloads it when it changes.
func Watch(callback func(*Config)) {
	mu.Lock()
	wv := v
	mu.Unlock()
	if wv == nil || wv.ConfigFileUsed() == "" {
		return
	}

	wv.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		if err := Reload(); err != nil {
			fmt.Printf("Error reloading config: %v\n", err)
			return
		}
		cfg, err := GetConfig()
		if err != nil {
			return
		}
		callback(cfg)
	})
	wv.WatchConfig()
}
