package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/parts-atlas/pkg/store/warehouse"
	"github.com/spf13/viper"
)

const (
	SourceDuckDB     = "duckdb"
	SourceCSV        = "csv"
	SourceS3         = "s3"
	SourceSnowflake  = "snowflake"
	SourceDatabricks = "databricks"

	InventoryForecast  = "forecast"
	InventorySimulated = "simulated"

	EnvPrefix = "ATLAS"
)

type Config struct {
	Source    Source    `mapstructure:"source"`
	Inventory Inventory `mapstructure:"inventory"`
	Server    Server    `mapstructure:"server"`
	Report    Report    `mapstructure:"report"`
}

type Source struct {
	Kind        string                    `mapstructure:"kind"`
	DbPath      string                    `mapstructure:"db_path"`
	Dir         string                    `mapstructure:"dir"`
	FallbackDir string                    `mapstructure:"fallback_dir"`
	Bucket      string                    `mapstructure:"bucket"`
	Prefix      string                    `mapstructure:"prefix"`
	Region      string                    `mapstructure:"region"`
	Profile     string                    `mapstructure:"profile"`
	Snowflake   warehouse.SnowflakeConfig `mapstructure:"snowflake"`
	Databricks  DatabricksSource          `mapstructure:"databricks"`
}

// DatabricksSource holds warehouse credentials, optionally completed from a
// .databrickscfg profile.
type DatabricksSource struct {
	warehouse.DatabricksConfig `mapstructure:",squash"`
	CfgPath                    string `mapstructure:"cfg_path"`
	CfgProfile                 string `mapstructure:"cfg_profile"`
}

type Inventory struct {
	Mode string `mapstructure:"mode"`
	Seed uint64 `mapstructure:"seed"`
}

type Server struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type Report struct {
	Format    string `mapstructure:"format"`
	OutputDir string `mapstructure:"output_dir"`
}

var defaults = map[string]any{
	"source.kind":                   SourceDuckDB,
	"source.db_path":                "parts-atlas.db",
	"source.dir":                    "",
	"source.fallback_dir":           "",
	"source.bucket":                 "",
	"source.prefix":                 "",
	"source.region":                 "",
	"source.profile":                "",
	"source.snowflake.account":      "",
	"source.snowflake.user":         "",
	"source.snowflake.password":     "",
	"source.snowflake.database":     "",
	"source.snowflake.schema":       "",
	"source.snowflake.warehouse":    "",
	"source.snowflake.role":         "",
	"source.databricks.host":        "",
	"source.databricks.token":       "",
	"source.databricks.http_path":   "",
	"source.databricks.catalog":     "",
	"source.databricks.schema":      "",
	"source.databricks.cfg_path":    "",
	"source.databricks.cfg_profile": "",
	"inventory.mode":                InventoryForecast,
	"inventory.seed":                42,
	"server.host":                   "127.0.0.1",
	"server.port":                   8080,
	"server.shutdown_timeout":       "10s",
	"report.format":                 "text",
	"report.output_dir":             ".",
}

// Load reads the optional config file at path and overlays ATLAS_* environment
// variables, e.g. ATLAS_SOURCE_KIND or ATLAS_SERVER_PORT.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Inventory.Mode {
	case InventoryForecast, InventorySimulated:
	default:
		return fmt.Errorf("invalid inventory mode %q", c.Inventory.Mode)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}
