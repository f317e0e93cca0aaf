// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configs/config.yaml, merges config.{APP_ENVIRONMENT}.yaml over it
// and then applies environment overrides.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // optional

	return finalize(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finalize(v)
}

func finalize(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads the first .env found walking up from the working
// directory, falling back to the module root.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

func envOverride(field *string, name string) {
	if *field != "" {
		return
	}
	if val := os.Getenv(name); val != "" {
		*field = val
	}
}

// overrideEmptyConfig fills values that are still empty after the yaml merge
// from the conventional environment variable names.
func overrideEmptyConfig(cfg *Config) {
	d := &cfg.Integrations.Dynamics365
	envOverride(&d.TenantID, "DYNAMICS_365_TENANT_ID")
	envOverride(&d.ClientID, "DYNAMICS_365_CLIENT_ID")
	envOverride(&d.ClientSecret, "DYNAMICS_365_CLIENT_SECRET")
	envOverride(&d.EnvironmentURL, "DYNAMICS_365_ENVIRONMENT_URL")
	if val := os.Getenv("DYNAMICS_365_API_VERSION"); val != "" {
		d.APIVersion = val
	}
	// Only the literal string "true" turns the integration on.
	if val, ok := os.LookupEnv("ENABLE_DYNAMICS_365_INTEGRATION"); ok {
		d.Enabled = val == "true"
	}

	envOverride(&cfg.APIs.LLM.BaseURL, "LLM_API_URL")
	envOverride(&cfg.APIs.LLM.APIKey, "LLM_API_KEY")

	envOverride(&cfg.App.PublicURL, "PUBLIC_URL")

	envOverride(&cfg.Integrations.AWS.Region, "AWS_REGION")
	envOverride(&cfg.Integrations.AWS.S3.Bucket, "S3_BUCKET")

	envOverride(&cfg.Database.Postgres.User, "DB_USER")
	envOverride(&cfg.Database.Postgres.Password, "DB_PASSWORD")

	if val := os.Getenv("PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			cfg.Server.Port = port
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "rfp-dashboard"
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 120000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10000
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = 50 << 20
	}

	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 25
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Database.Elasticsearch.Index == "" {
		cfg.Database.Elasticsearch.Index = "knowledge-base"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	for key, svc := range cfg.Services {
		if svc.Timeout == 0 {
			svc.Timeout = 30000
		}
		cfg.Services[key] = svc
	}

	if cfg.Integrations.Dynamics365.APIVersion == "" {
		cfg.Integrations.Dynamics365.APIVersion = "v9.2"
	}
	if cfg.Integrations.Dynamics365.Timeout == 0 {
		cfg.Integrations.Dynamics365.Timeout = 30000
	}

	if cfg.APIs.LLM.Model == "" {
		cfg.APIs.LLM.Model = "gemini-2.5-flash"
	}
	if cfg.APIs.LLM.Timeout == 0 {
		cfg.APIs.LLM.Timeout = 60000
	}
	if cfg.Integrations.AWS.Region == "" {
		cfg.Integrations.AWS.Region = "us-east-1"
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if cfg.Database.Postgres.Host == "" {
		return fmt.Errorf("database.postgres.host is required")
	}
	if cfg.Database.Postgres.Database == "" {
		return fmt.Errorf("database.postgres.database is required")
	}
	if cfg.Database.Postgres.User == "" {
		return fmt.Errorf("database.postgres.user is required")
	}

	if cfg.Database.Redis.Address == "" {
		return fmt.Errorf("database.redis.address is required")
	}

	if cfg.Integrations.AWS.S3.Enabled && cfg.Integrations.AWS.S3.Bucket == "" {
		return fmt.Errorf("integrations.aws.s3.bucket is required when s3 is enabled")
	}
	if cfg.Integrations.AWS.SNS.Enabled && cfg.Integrations.AWS.SNS.TopicARN == "" {
		return fmt.Errorf("integrations.aws.sns.topic_arn is required when sns is enabled")
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// GetServiceConfig retrieves service-specific configuration with fallback to defaults
func GetServiceConfig(cfg *Config, name string) ServiceConfig {
	if svc, exists := cfg.Services[name]; exists {
		return svc
	}
	return ServiceConfig{
		Enabled: true,
		Timeout: 30000,
	}
}

// IsServiceEnabled checks if a specific service group is enabled
func IsServiceEnabled(cfg *Config, name string) bool {
	if svc, exists := cfg.Services[name]; exists {
		return svc.Enabled
	}
	return true
}
