package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const keyEnv = "ENV"
const envLocal = "local"

const (
	defaultPort                = "8080"
	defaultBackendTimeout      = 10 * time.Second
	defaultEditPath            = "/documentos/form/%d"
	defaultSessionMaxIdle      = 30 * time.Minute
	defaultShortNoticeDuration = 2 * time.Second
	defaultLongNoticeDuration  = 3 * time.Second
	defaultLogLevel            = "info"
)

type Config struct {
	config *viper.Viper
}

func Load(env string) (*Config, error) {

	if len(env) == 0 {
		if env = os.Getenv(keyEnv); len(env) == 0 {
			env = envLocal
		}
	}

	configPath, err := getConfigPath(env)

	viperConfig := viper.New()
	setDefaults(viperConfig)
	if err == nil {
		viperConfig.SetConfigFile(configPath)
		if err := viperConfig.ReadInConfig(); err != nil {
			slog.Warn(fmt.Sprintf("error reading config file, %s", err))
		}
	}
	viperConfig.AutomaticEnv()

	cfg := &Config{
		config: viperConfig,
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", defaultPort)
	v.SetDefault("backend.timeout", defaultBackendTimeout)
	v.SetDefault("backend.rate_limit", 0)
	v.SetDefault("edit.path", defaultEditPath)
	v.SetDefault("session.max_idle", defaultSessionMaxIdle)
	v.SetDefault("notice.short_duration", defaultShortNoticeDuration)
	v.SetDefault("notice.long_duration", defaultLongNoticeDuration)
	v.SetDefault("log.level", defaultLogLevel)
}

// Set overrides a file key. Used by the CLI to apply flags on top of the file.
func (c *Config) Set(key string, value any) {
	c.config.Set(key, value)
}

func (c *Config) GetPort() string {
	port := c.config.GetString("PORT")
	if len(port) == 0 {
		port = c.config.GetString("server.port")
	}

	return port
}

func (c *Config) GetBackendURL() string {
	backendURL := c.config.GetString("BACKEND_URL")
	if len(backendURL) == 0 {
		backendURL = c.config.GetString("backend.url")
	}

	return strings.TrimSuffix(backendURL, "/")
}

func (c *Config) GetBackendTimeout() time.Duration {
	if c.config.IsSet("BACKEND_TIMEOUT") {
		return c.config.GetDuration("BACKEND_TIMEOUT")
	}

	return c.config.GetDuration("backend.timeout")
}

// GetBackendRateLimit returns the outbound requests per second allowed
// towards the backend. Zero disables limiting.
func (c *Config) GetBackendRateLimit() float64 {
	if c.config.IsSet("BACKEND_RATE_LIMIT") {
		return c.config.GetFloat64("BACKEND_RATE_LIMIT")
	}

	return c.config.GetFloat64("backend.rate_limit")
}

func (c *Config) GetEditPath() string {
	editPath := c.config.GetString("EDIT_PATH")
	if len(editPath) == 0 {
		editPath = c.config.GetString("edit.path")
	}

	return editPath
}

func (c *Config) GetSessionMaxIdle() time.Duration {
	if c.config.IsSet("SESSION_MAX_IDLE") {
		return c.config.GetDuration("SESSION_MAX_IDLE")
	}

	return c.config.GetDuration("session.max_idle")
}

func (c *Config) GetCORSAllowedOrigins() []string {
	origins := c.config.GetString("CORS_ALLOWED_ORIGINS")
	if len(origins) > 0 {
		return strings.Split(origins, ",")
	}

	return c.config.GetStringSlice("cors.allowed_origins")
}

func (c *Config) GetShortNoticeDuration() time.Duration {
	return c.config.GetDuration("notice.short_duration")
}

func (c *Config) GetLongNoticeDuration() time.Duration {
	return c.config.GetDuration("notice.long_duration")
}

func (c *Config) GetLogLevel() string {
	level := c.config.GetString("LOG_LEVEL")
	if len(level) == 0 {
		level = c.config.GetString("log.level")
	}

	return level
}

func getProjectRoot() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}

	for {
		configDir := filepath.Join(currentDir, "config")
		if info, err := os.Stat(configDir); err == nil && info.IsDir() {
			return currentDir, nil
		}

		parent := filepath.Dir(currentDir)

		if parent == currentDir {
			break
		}

		currentDir = parent
	}

	return "", fmt.Errorf("could not find project root (directory containing 'config' folder)")
}

func getConfigPath(env string) (string, error) {
	configFile := fmt.Sprintf("config.%s.yaml", env)

	projectRoot, err := getProjectRoot()
	if err != nil {
		slog.Warn("failed to find project root with config directory, will use environment variables instead", "err", err.Error())
		return "", fmt.Errorf("failed to find project root: %w", err)
	}
	configPath := filepath.Join(projectRoot, "config", configFile)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		slog.Warn("failed to find config file within config directory, will use environment variables instead", "err", err.Error())
		return "", fmt.Errorf("config file does not exist: %s", configPath)
	}

	return configPath, nil
}
