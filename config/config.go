package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Database drivers accepted in DB_DRIVER.
const (
	DriverSQLite      = "sqlite"
	DriverSQLiteNoCGO = "sqlite-nocgo"
	DriverPostgres    = "postgres"
)

const (
	defaultConfigFile  = "config.yaml"
	defaultEnvFile     = ".env"
	defaultSecretsDir  = "/run/secrets"
	defaultRecipeLimit = 10
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost string `yaml:"server_host"`
	ServerPort string `yaml:"server_port"`

	// Number of recipes returned by capped searches when no amount is given
	RecipeAmount int `yaml:"recipe_amount"`

	// Database configuration
	DBDriver    string `yaml:"db_driver"`
	DBPath      string `yaml:"db_path"`
	DatabaseURL string `yaml:"database_url"`

	// Rate limiting; an empty RedisURL keeps the counters in memory
	RedisURL        string        `yaml:"redis_url"`
	RateLimitMax    int           `yaml:"rate_limit_max"`
	RateLimitWindow time.Duration `yaml:"rate_limit_window"`

	// JWT configuration; the admin routes are disabled without a secret
	JWTSecret string `yaml:"jwt_secret"`

	// Seeding
	SeedFile    string `yaml:"seed_file"`
	SeedOnStart bool   `yaml:"seed_on_start"`

	CORSOrigins []string `yaml:"cors_origins"`

	// Image storage
	S3Bucket       string        `yaml:"s3_bucket"`
	AWSRegion      string        `yaml:"aws_region"`
	ImageURLExpiry time.Duration `yaml:"image_url_expiry"`

	Environment Environment `yaml:"-"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() *Config {
	return &Config{
		ServerHost:      "0.0.0.0",
		ServerPort:      "3000",
		RecipeAmount:    defaultRecipeLimit,
		DBDriver:        DriverSQLite,
		DBPath:          filepath.Join("database", "Recipes.sqlite"),
		RateLimitMax:    100,
		RateLimitWindow: 15 * time.Minute,
		SeedFile:        filepath.Join("_recipes", "recipes.json"),
		CORSOrigins:     []string{"*"},
		AWSRegion:       "us-east-1",
		ImageURLExpiry:  15 * time.Minute,
	}
}

// LoadConfig builds the configuration from, in increasing precedence, the
// defaults, the YAML file named by CONFIG_FILE (config.yaml when present), a
// .env file, the process environment and, outside CI, Docker secrets.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := Defaults()
	cfg.Environment = env

	if err := loadFile(cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration file: %w", err)
	}

	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = defaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	if err := loadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if env != CI {
		loadSecrets(cfg)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadFile merges the YAML configuration file into cfg. A missing default file
// is not an error; a missing file named explicitly is.
func loadFile(cfg *Config) error {
	path := os.Getenv("CONFIG_FILE")
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	log.Printf("Loaded configuration from %s", path)
	return nil
}

// loadEnv overrides cfg with any configuration variables that are set.
func loadEnv(cfg *Config) error {
	setString(&cfg.ServerHost, "SERVER_HOST")
	setString(&cfg.ServerPort, "PORT")
	setString(&cfg.ServerPort, "SERVER_PORT")
	setString(&cfg.DBDriver, "DB_DRIVER")
	setString(&cfg.DBPath, "DB_PATH")
	setString(&cfg.DatabaseURL, "DATABASE_URL")
	setString(&cfg.RedisURL, "REDIS_URL")
	setString(&cfg.JWTSecret, "JWT_SECRET")
	setString(&cfg.SeedFile, "SEED_FILE")
	setString(&cfg.S3Bucket, "S3_BUCKET_NAME")
	setString(&cfg.AWSRegion, "AWS_REGION")

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.CORSOrigins = origins
	}

	var errs []error
	errs = append(errs,
		setInt(&cfg.RecipeAmount, "RECIPE_AMOUNT"),
		setInt(&cfg.RateLimitMax, "RATE_LIMIT_MAX"),
		setDuration(&cfg.RateLimitWindow, "RATE_LIMIT_WINDOW"),
		setDuration(&cfg.ImageURLExpiry, "IMAGE_URL_EXPIRY"),
		setBool(&cfg.SeedOnStart, "SEED_ON_START"),
	)
	return errors.Join(errs...)
}

// loadSecrets reads Docker secrets, which win over every other source.
func loadSecrets(cfg *Config) {
	if v := readSecret("jwt_secret"); v != "" {
		cfg.JWTSecret = v
	}
	if v := readSecret("database_url"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := readSecret("redis_url"); v != "" {
		cfg.RedisURL = v
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return ValidationError{Field: key, Message: fmt.Sprintf("invalid integer %q", v)}
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return ValidationError{Field: key, Message: fmt.Sprintf("invalid duration %q", v)}
	}
	*dst = d
	return nil
}

func setBool(dst *bool, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return ValidationError{Field: key, Message: fmt.Sprintf("invalid boolean %q", v)}
	}
	*dst = b
	return nil
}

// Addr returns the host:port the HTTP server listens on.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// AdminEnabled reports whether the admin routes are served.
func (c *Config) AdminEnabled() bool {
	return c.JWTSecret != ""
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = defaultSecretsDir
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
