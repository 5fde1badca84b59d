package config

import (
	"errors"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"devserve/logger"
)

// The binding and serving root are fixed; nothing in the environment changes them.
const (
	DefaultHost            = "localhost"
	DefaultPort            = 8000
	DefaultRoot            = "."
	DefaultShutdownTimeout = 5 * time.Second

	// DebugEnv toggles debug request logging. It is the only setting read
	// from the environment or an optional .env file.
	DebugEnv = "DEVSERVER_DEBUG"
)

type Config struct {
	Host            string
	Port            int
	Root            string
	Debug           bool
	ShutdownTimeout time.Duration
}

// Addr returns the host:port the server listens on
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// URL returns the address printed in the ready message
func (c *Config) URL() string {
	return "http://" + c.Addr()
}

// Default returns the fixed configuration without touching the environment
func Default() *Config {
	return &Config{
		Host:            DefaultHost,
		Port:            DefaultPort,
		Root:            DefaultRoot,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// GetConfig loads the optional .env file and returns the configuration
func GetConfig() *Config {
	log := logger.GetLogger()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Error("Failed to load .env file", map[string]interface{}{
			"error": err.Error(),
		})
	}

	cfg := Default()
	cfg.Debug = parseBool(os.Getenv(DebugEnv))

	log.Info("Loaded configuration", map[string]interface{}{
		"addr":  cfg.Addr(),
		"root":  cfg.Root,
		"debug": cfg.Debug,
	})

	return cfg
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	}
	return false
}
