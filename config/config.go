package config

import (
	"encoding/json"
	"os"
	"sync"
	"time"
)

type Config struct {
	BackendURL            string   `json:"backendURL"`
	ListenAddr            string   `json:"listenAddr"`
	DatabasePath          string   `json:"databasePath"`
	RequestTimeoutSeconds int      `json:"requestTimeoutSeconds"`
	AllowedOrigins        []string `json:"allowedOrigins"`
}

const (
	DefaultBackendURL     = "http://localhost:5000/api"
	DefaultListenAddr     = ":8080"
	DefaultDatabasePath   = "./stockdesk.db"
	DefaultRequestTimeout = 15
)

var (
	cfg = withDefaults(Config{})
	mu  sync.RWMutex
)

var configFilePath = "./stockdesk_config.json"

// SetPath points the package at another config file. Used by tests and the -config flag.
func SetPath(path string) {
	mu.Lock()
	defer mu.Unlock()
	configFilePath = path
}

func withDefaults(c Config) Config {
	if c.BackendURL == "" {
		c.BackendURL = DefaultBackendURL
	}
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.DatabasePath == "" {
		c.DatabasePath = DefaultDatabasePath
	}
	if c.RequestTimeoutSeconds <= 0 {
		c.RequestTimeoutSeconds = DefaultRequestTimeout
	}
	if c.AllowedOrigins == nil {
		c.AllowedOrigins = []string{"*"}
	}
	return c
}

// LoadConfig reads the config file. A missing file yields the defaults.
func LoadConfig() (Config, error) {
	mu.Lock()
	defer mu.Unlock()

	file, err := os.ReadFile(configFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg = withDefaults(Config{})
			return cfg, nil
		}
		return Config{}, err
	}

	var tempCfg Config
	if err := json.Unmarshal(file, &tempCfg); err != nil {
		return Config{}, err
	}
	cfg = withDefaults(tempCfg)
	return cfg, nil
}

func SaveConfig(newCfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	newCfg = withDefaults(newCfg)

	file, err := json.MarshalIndent(newCfg, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(configFilePath, file, 0644); err != nil {
		return err
	}
	cfg = newCfg
	return nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// RequestTimeout is the configured backend timeout as a duration.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}
