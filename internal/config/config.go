// Package config resolves the server configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the YAML file when --config is not given.
const EnvConfigPath = "CARESHARE_CONFIG"

// Config is the resolved runtime configuration.
type Config struct {
	Port       int    `validate:"min=1,max=65535"`
	DBPath     string `validate:"required"`
	StaticPath string

	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=text json"`

	JWTSecret string        `validate:"required,min=16"`
	JWTTTL    time.Duration `validate:"min=1m"`

	DefaultMonthlyBudget decimal.Decimal

	ReceiptBackend string `validate:"oneof=disk s3"`
	ReceiptDir     string
	ReceiptBaseURL string
	S3Bucket       string
	S3Region       string
	S3Prefix       string

	RateLimitRPS   float64 `validate:"gte=0"`
	RateLimitBurst int     `validate:"gte=0"`
	// TrustedProxies lists the IPs or CIDRs whose forwarding headers name
	// the real client. Empty means clients are keyed by their own address.
	TrustedProxies []string `validate:"dive,cidr|ip"`
}

// fileConfig mirrors the YAML schema. Money is read as a string so any
// YAML scalar form parses the same way.
type fileConfig struct {
	Port                 int    `yaml:"port"`
	DBPath               string `yaml:"db_path"`
	StaticPath           string `yaml:"static_path"`
	LogLevel             string `yaml:"log_level"`
	LogFormat            string `yaml:"log_format"`
	JWTSecret            string `yaml:"jwt_secret"`
	JWTTTL               string `yaml:"jwt_ttl"`
	DefaultMonthlyBudget string `yaml:"default_monthly_budget"`
	Receipts             struct {
		Backend string `yaml:"backend"`
		Dir     string `yaml:"dir"`
		BaseURL string `yaml:"base_url"`
		S3      struct {
			Bucket string `yaml:"bucket"`
			Region string `yaml:"region"`
			Prefix string `yaml:"prefix"`
		} `yaml:"s3"`
	} `yaml:"receipts"`
	RateLimit struct {
		RPS            float64  `yaml:"rps"`
		Burst          int      `yaml:"burst"`
		TrustedProxies []string `yaml:"trusted_proxies"`
	} `yaml:"rate_limit"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		Port:                 8080,
		DBPath:               "./data/careshare.db",
		StaticPath:           "../frontend/static",
		LogLevel:             "info",
		LogFormat:            "text",
		JWTTTL:               24 * time.Hour,
		DefaultMonthlyBudget: decimal.Zero,
		ReceiptBackend:       "disk",
		ReceiptDir:           "./data/receipts",
		ReceiptBaseURL:       "/receipts",
		RateLimitRPS:         20,
		RateLimitBurst:       40,
	}
}

// Load resolves configuration in priority order: defaults, then the YAML
// file at path (or $CARESHARE_CONFIG), then environment variables. A .env
// file in the working directory fills in variables that are not already set.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return nil, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and the receipt backend requirements.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag())
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.DefaultMonthlyBudget.IsNegative() {
		return errors.New("invalid config: DEFAULT_MONTHLY_BUDGET cannot be negative")
	}
	switch c.ReceiptBackend {
	case "disk":
		if c.ReceiptDir == "" {
			return errors.New("invalid config: RECEIPT_DIR is required for the disk receipt backend")
		}
	case "s3":
		if c.S3Bucket == "" || c.S3Region == "" {
			return errors.New("invalid config: S3_BUCKET and S3_REGION are required for the s3 receipt backend")
		}
	}
	return nil
}

func applyFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var f fileConfig
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if f.Port > 0 {
		cfg.Port = f.Port
	}
	setString(&cfg.DBPath, f.DBPath)
	setString(&cfg.StaticPath, f.StaticPath)
	setString(&cfg.LogLevel, f.LogLevel)
	setString(&cfg.LogFormat, f.LogFormat)
	setString(&cfg.JWTSecret, f.JWTSecret)
	if f.JWTTTL != "" {
		d, err := time.ParseDuration(f.JWTTTL)
		if err != nil {
			return fmt.Errorf("parse config file: jwt_ttl: %w", err)
		}
		cfg.JWTTTL = d
	}
	if f.DefaultMonthlyBudget != "" {
		d, err := decimal.NewFromString(f.DefaultMonthlyBudget)
		if err != nil {
			return fmt.Errorf("parse config file: default_monthly_budget: %w", err)
		}
		cfg.DefaultMonthlyBudget = d
	}
	setString(&cfg.ReceiptBackend, f.Receipts.Backend)
	setString(&cfg.ReceiptDir, f.Receipts.Dir)
	setString(&cfg.ReceiptBaseURL, f.Receipts.BaseURL)
	setString(&cfg.S3Bucket, f.Receipts.S3.Bucket)
	setString(&cfg.S3Region, f.Receipts.S3.Region)
	setString(&cfg.S3Prefix, f.Receipts.S3.Prefix)
	if f.RateLimit.RPS > 0 {
		cfg.RateLimitRPS = f.RateLimit.RPS
	}
	if f.RateLimit.Burst > 0 {
		cfg.RateLimitBurst = f.RateLimit.Burst
	}
	if len(f.RateLimit.TrustedProxies) > 0 {
		cfg.TrustedProxies = f.RateLimit.TrustedProxies
	}
	return nil
}

func applyEnv(cfg *Config) error {
	var err error
	if cfg.Port, err = envInt("PORT", cfg.Port); err != nil {
		return err
	}
	setString(&cfg.DBPath, os.Getenv("DB_PATH"))
	setString(&cfg.StaticPath, os.Getenv("STATIC_PATH"))
	setString(&cfg.LogLevel, strings.ToLower(os.Getenv("LOG_LEVEL")))
	setString(&cfg.LogFormat, strings.ToLower(os.Getenv("LOG_FORMAT")))
	setString(&cfg.JWTSecret, os.Getenv("JWT_SECRET"))
	if raw := os.Getenv("JWT_TTL"); raw != "" {
		if cfg.JWTTTL, err = time.ParseDuration(raw); err != nil {
			return fmt.Errorf("JWT_TTL: %w", err)
		}
	}
	if raw := os.Getenv("DEFAULT_MONTHLY_BUDGET"); raw != "" {
		if cfg.DefaultMonthlyBudget, err = decimal.NewFromString(raw); err != nil {
			return fmt.Errorf("DEFAULT_MONTHLY_BUDGET: %w", err)
		}
	}
	setString(&cfg.ReceiptBackend, strings.ToLower(os.Getenv("RECEIPT_BACKEND")))
	setString(&cfg.ReceiptDir, os.Getenv("RECEIPT_DIR"))
	setString(&cfg.ReceiptBaseURL, os.Getenv("RECEIPT_BASE_URL"))
	setString(&cfg.S3Bucket, os.Getenv("S3_BUCKET"))
	setString(&cfg.S3Region, os.Getenv("S3_REGION"))
	setString(&cfg.S3Prefix, os.Getenv("S3_PREFIX"))
	if raw := os.Getenv("RATE_LIMIT_RPS"); raw != "" {
		if cfg.RateLimitRPS, err = strconv.ParseFloat(raw, 64); err != nil {
			return fmt.Errorf("RATE_LIMIT_RPS: %w", err)
		}
	}
	if cfg.RateLimitBurst, err = envInt("RATE_LIMIT_BURST", cfg.RateLimitBurst); err != nil {
		return err
	}
	if raw := os.Getenv("TRUSTED_PROXIES"); raw != "" {
		cfg.TrustedProxies = cfg.TrustedProxies[:0:0]
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, p)
			}
		}
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func envInt(name string, fallback int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}
