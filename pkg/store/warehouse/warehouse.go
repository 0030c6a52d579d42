package warehouse

import (
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/databricks/databricks-sql-go"
	sqlstore "github.com/de-tools/parts-atlas/pkg/store/sql"
	"github.com/de-tools/parts-atlas/pkg/store/dataset"
	sf "github.com/snowflakedb/gosnowflake"
)

type SnowflakeConfig struct {
	Account   string `mapstructure:"account"`
	User      string `mapstructure:"user"`
	Password  string `mapstructure:"password"`
	Database  string `mapstructure:"database"`
	Schema    string `mapstructure:"schema"`
	Warehouse string `mapstructure:"warehouse"`
	Role      string `mapstructure:"role"`
}

type DatabricksConfig struct {
	Host     string `mapstructure:"host"`
	Token    string `mapstructure:"token"`
	HTTPPath string `mapstructure:"http_path"`
	Catalog  string `mapstructure:"catalog"`
	Schema   string `mapstructure:"schema"`
}

// SnowflakeDSN builds the gosnowflake DSN for the configured account.
func SnowflakeDSN(cfg SnowflakeConfig) (string, error) {
	if cfg.Account == "" || cfg.User == "" {
		return "", fmt.Errorf("snowflake account and user are required")
	}
	return sf.DSN(&sf.Config{
		Account:   cfg.Account,
		User:      cfg.User,
		Password:  cfg.Password,
		Database:  cfg.Database,
		Schema:    cfg.Schema,
		Warehouse: cfg.Warehouse,
		Role:      cfg.Role,
	})
}

// DatabricksDSN builds the databricks-sql-go DSN for a SQL warehouse.
func DatabricksDSN(cfg DatabricksConfig) (string, error) {
	if cfg.Host == "" || cfg.Token == "" || cfg.HTTPPath == "" {
		return "", fmt.Errorf("databricks host, token and http_path are required")
	}
	dsn := fmt.Sprintf("token:%s@%s%s", cfg.Token, cfg.Host, cfg.HTTPPath)

	params := url.Values{}
	if cfg.Catalog != "" {
		params.Set("catalog", cfg.Catalog)
	}
	if cfg.Schema != "" {
		params.Set("schema", cfg.Schema)
	}
	if qp := params.Encode(); qp != "" {
		dsn = dsn + "?" + qp
	}
	return dsn, nil
}

// NewSnowflakeLoader reads the dataset tables from the configured database/schema.
func NewSnowflakeLoader(cfg SnowflakeConfig) (dataset.Loader, *sql.DB, error) {
	dsn, err := SnowflakeDSN(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create DSN: %w", err)
	}
	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to Snowflake: %w", err)
	}
	loader, err := sqlstore.NewDatasetStore(db, "")
	if err != nil {
		return nil, nil, err
	}
	return loader, db, nil
}

// NewDatabricksLoader reads the dataset tables through a Databricks SQL warehouse.
func NewDatabricksLoader(cfg DatabricksConfig) (dataset.Loader, *sql.DB, error) {
	dsn, err := DatabricksDSN(cfg)
	if err != nil {
		return nil, nil, err
	}
	db, err := sql.Open("databricks", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to Databricks: %w", err)
	}
	loader, err := sqlstore.NewDatasetStore(db, "")
	if err != nil {
		return nil, nil, err
	}
	return loader, db, nil
}
