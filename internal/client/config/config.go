// Package config holds the CLI client settings: defaults overlaid by an
// optional JSON or YAML file. Command-line flags are bound by the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/todolist/internal/flagx"
	"github.com/dmitrijs2005/todolist/internal/timex"
	"gopkg.in/yaml.v3"
)

// Config holds runtime settings for the todolist CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the gRPC endpoint.
//   - RequestTimeout: deadline applied to every call.
type Config struct {
	ServerEndpointAddr string
	RequestTimeout     time.Duration
}

// FileConfig is the on-disk form; absent keys keep their current values.
type FileConfig struct {
	ServerEndpointAddr *string         `json:"server_endpoint_addr" yaml:"server_endpoint_addr"`
	RequestTimeout     *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 5 * time.Second
}

// LoadConfig applies defaults and then the file named by -c/--config in
// args, if any.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := cfg.LoadFile(flagx.ConfigFileFlag(args)); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile overlays values from path. An empty path is a no-op.
func (c *Config) LoadFile(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}

	if fc.ServerEndpointAddr != nil {
		c.ServerEndpointAddr = *fc.ServerEndpointAddr
	}
	if fc.RequestTimeout != nil {
		c.RequestTimeout = fc.RequestTimeout.Duration
	}
	return nil
}
