// Package config provides configuration management for the billing system.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	TableStore TableStoreConfig
	Billing    BillingConfig
	Debug      bool
}

// TableStoreConfig holds the remote table-store API settings.
type TableStoreConfig struct {
	BaseURL   string
	AppID     string
	AppSecret string
	AppToken  string
	TableID   string
}

// BillingConfig holds billing behavior settings.
type BillingConfig struct {
	TaxRate      float64
	IssuerPath   string // issuer YAML for document rendering
	AccountsPath string // account-title YAML for journal export (optional)
	DBPath       string // local SQLite history database
	OutputDir    string // where exports and rendered documents land
}

// Load loads configuration from environment variables. It automatically
// loads a .env file from the current directory if available; a custom .env
// path may be given.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Ignore error if no .env in the current directory.
		_ = godotenv.Load()
	}

	taxRate, err := parseFloatEnv("BILLING_TAX_RATE", 0.10)
	if err != nil {
		return nil, fmt.Errorf("invalid BILLING_TAX_RATE: %w", err)
	}

	config := &Config{
		TableStore: TableStoreConfig{
			BaseURL:   getEnvOrDefault("TABLESTORE_BASE_URL", "https://open.larksuite.com"),
			AppID:     os.Getenv("TABLESTORE_APP_ID"),
			AppSecret: os.Getenv("TABLESTORE_APP_SECRET"),
			AppToken:  os.Getenv("TABLESTORE_APP_TOKEN"),
			TableID:   os.Getenv("TABLESTORE_TABLE_ID"),
		},
		Billing: BillingConfig{
			TaxRate:      taxRate,
			IssuerPath:   getEnvOrDefault("BILLING_ISSUER_PATH", "config/issuer.yaml"),
			AccountsPath: os.Getenv("BILLING_ACCOUNTS_PATH"),
			DBPath:       getEnvOrDefault("BILLING_DB_PATH", "billing-history.db"),
			OutputDir:    getEnvOrDefault("BILLING_OUTPUT_DIR", "output"),
		},
		Debug: os.Getenv("DEBUG") == "true",
	}

	return config, nil
}

// Validate checks that all named fields are set. Field names follow the
// "section.key" convention, e.g. "tablestore.appId".
func (c *Config) Validate(required ...string) error {
	var missing []string

	for _, name := range required {
		var value string
		switch name {
		case "tablestore.baseUrl":
			value = c.TableStore.BaseURL
		case "tablestore.appId":
			value = c.TableStore.AppID
		case "tablestore.appSecret":
			value = c.TableStore.AppSecret
		case "tablestore.appToken":
			value = c.TableStore.AppToken
		case "tablestore.tableId":
			value = c.TableStore.TableID
		case "billing.issuerPath":
			value = c.Billing.IssuerPath
		case "billing.dbPath":
			value = c.Billing.DBPath
		case "billing.outputDir":
			value = c.Billing.OutputDir
		}

		if value == "" {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v\nPlease check your .env file or environment variables", missing)
	}

	return nil
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseFloatEnv parses a float64 from an environment variable.
// Returns defaultValue if the environment variable is not set.
func parseFloatEnv(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float value for %s: %s", key, value)
	}

	return parsed, nil
}
