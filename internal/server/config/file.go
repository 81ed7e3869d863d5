package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/todolist/internal/flagx"
	"github.com/dmitrijs2005/todolist/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig mirrors Config for decoding config files. Pointer fields tell
// "absent" apart from a zero value so a file only overrides what it names.
type FileConfig struct {
	EndpointAddrGRPC *string         `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	DatabaseDSN      *string         `json:"database_dsn" yaml:"database_dsn"`
	StoreType        *string         `json:"store_type" yaml:"store_type"`
	LogFormat        *string         `json:"log_format" yaml:"log_format"`
	LogLevel         *string         `json:"log_level" yaml:"log_level"`
	RateLimit        *float64        `json:"rate_limit" yaml:"rate_limit"`
	RateBurst        *int            `json:"rate_burst" yaml:"rate_burst"`
	S3RootUser       *string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword   *string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket         *string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region         *string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint   *string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	BackupInterval   *timex.Duration `json:"backup_interval" yaml:"backup_interval"`
}

// parseFile overlays values from the file named by -c/-config, if any.
// Files ending in .yaml or .yml are decoded as YAML, anything else as JSON.
func parseFile(config *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	c := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}

	c.apply(config)
	return nil
}

func (c *FileConfig) apply(config *Config) {
	set(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	set(&config.DatabaseDSN, c.DatabaseDSN)
	set(&config.StoreType, c.StoreType)
	set(&config.LogFormat, c.LogFormat)
	set(&config.LogLevel, c.LogLevel)
	set(&config.RateLimit, c.RateLimit)
	set(&config.RateBurst, c.RateBurst)
	set(&config.S3RootUser, c.S3RootUser)
	set(&config.S3RootPassword, c.S3RootPassword)
	set(&config.S3Bucket, c.S3Bucket)
	set(&config.S3Region, c.S3Region)
	set(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	if c.BackupInterval != nil {
		config.BackupInterval = c.BackupInterval.Duration
	}
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
