package config

import (
	"fmt"
	"sync"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

// AuthConfig holds the single shared secret gating the whole app.
// PasswordHash (pbkdf2, generated with util.HashPassword) wins over the
// plaintext Password when both are set.
type AuthConfig struct {
	Password        string `mapstructure:"password"`
	PasswordHash    string `mapstructure:"password_hash"`
	SessionTTLHours int    `mapstructure:"session_ttl_hours"`
}

type SecurityConfig struct {
	EncryptionKey string `mapstructure:"encryption_key"`
}

type BackupConfig struct {
	Dir string `mapstructure:"dir"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Security SecurityConfig `mapstructure:"security"`
	Backup   BackupConfig   `mapstructure:"backup"`
}

var (
	appConfig *Config
	once      sync.Once
)

// Load loads configuration from the given file path (e.g. "config.yaml").
// If path is empty, it defaults to "config.yaml" in the current working
// directory. Environment variables prefixed CRS_ override file values,
// e.g. CRS_AUTH_PASSWORD.
func Load(path string) (*Config, error) {
	var err error
	once.Do(func() {
		v := viper.New()

		if path == "" {
			v.SetConfigName("config")
			v.SetConfigType("yaml")
			v.AddConfigPath(".")
		} else {
			v.SetConfigFile(path)
		}

		v.SetEnvPrefix("CRS") // course record system
		v.AutomaticEnv()

		v.SetDefault("server.address", "0.0.0.0")
		v.SetDefault("server.port", 8080)
		v.SetDefault("database.path", "data/records.db")
		v.SetDefault("auth.session_ttl_hours", 24*7)
		v.SetDefault("backup.dir", "data/backups")

		if err = v.ReadInConfig(); err != nil {
			err = fmt.Errorf("read config: %w", err)
			return
		}

		var c Config
		if err = v.Unmarshal(&c); err != nil {
			err = fmt.Errorf("unmarshal config: %w", err)
			return
		}

		if c.Auth.Password == "" && c.Auth.PasswordHash == "" {
			err = fmt.Errorf("auth.password or auth.password_hash must be set")
			return
		}

		appConfig = &c
	})

	if err != nil {
		return nil, err
	}
	return appConfig, nil
}

// Get returns the loaded global configuration.
// Call Load() once at application startup.
func Get() *Config {
	return appConfig
}
