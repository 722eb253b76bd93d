package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config holds every runtime setting of the storefront API.
type Config struct {
	Server    Server    `yaml:"server"`
	Mongo     Mongo     `yaml:"mongo"`
	Redis     Redis     `yaml:"redis"`
	Auth      Auth      `yaml:"auth"`
	OTP       OTP       `yaml:"otp"`
	Store     Store     `yaml:"store"`
	Logger    Logger    `yaml:"logger"`
	Email     Email     `yaml:"email"`
	AdminSeed AdminSeed `yaml:"admin_seed"`
}

type Server struct {
	Port          string   `yaml:"port"`
	CorsOrigins   []string `yaml:"cors_origins"`
	AuthRateLimit float64  `yaml:"auth_rate_limit"`
	AuthRateBurst int      `yaml:"auth_rate_burst"`
}

type Mongo struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type Redis struct {
	Addr       string        `yaml:"addr"`
	Password   string        `yaml:"password"`
	DB         int           `yaml:"db"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

type Auth struct {
	CustomerSecret string        `yaml:"customer_secret"`
	AdminSecret    string        `yaml:"admin_secret"`
	AdminTokenTTL  time.Duration `yaml:"admin_token_ttl"`
}

type OTP struct {
	Mode            string        `yaml:"mode"`
	FixedCode       string        `yaml:"fixed_code"`
	CustomerTTL     time.Duration `yaml:"customer_ttl"`
	AdminTTL        time.Duration `yaml:"admin_ttl"`
	ExposeTestCode  bool          `yaml:"expose_test_code"`
	RequirePhoneOTP bool          `yaml:"require_phone_otp"`
}

type Store struct {
	LowStockThreshold int `yaml:"low_stock_threshold"`
}

type Logger struct {
	Mode     string `yaml:"mode"`
	Filename string `yaml:"filename"`
}

type Email struct {
	SendgridAPIKey string `yaml:"sendgrid_api_key"`
	Sender         string `yaml:"sender"`
}

type AdminSeed struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Mobile   string `yaml:"mobile"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Server: Server{
			Port:          "8000",
			CorsOrigins:   []string{"*"},
			AuthRateLimit: 5,
			AuthRateBurst: 10,
		},
		Mongo: Mongo{
			URI:      "mongodb://localhost:27017",
			Database: "ramani",
		},
		Redis: Redis{SessionTTL: 30 * 24 * time.Hour},
		Auth: Auth{
			CustomerSecret: "ramani-fashion-secret-key",
			AdminSecret:    "ramani-admin-secret-key",
			AdminTokenTTL:  24 * time.Hour,
		},
		OTP: OTP{
			Mode:            "fixed",
			FixedCode:       "123456",
			CustomerTTL:     10 * time.Minute,
			AdminTTL:        5 * time.Minute,
			ExposeTestCode:  true,
			RequirePhoneOTP: true,
		},
		Store:  Store{LowStockThreshold: 10},
		Logger: Logger{Mode: "development"},
	}
}

// Load reads .env, then the optional YAML file, then environment overrides.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		zap.S().Debug("No .env file found. Proceeding with environment variables.")
	}

	cfg := Default()

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
	}
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.applyEnv(os.LookupEnv)
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = cast.ToInt(v)
		}
	}
	flt := func(key string, dst *float64) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = cast.ToFloat64(v)
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = cast.ToBool(v)
		}
	}
	dur := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = cast.ToDuration(v)
		}
	}

	str("PORT", &c.Server.Port)
	if v, ok := lookup("CORS_ORIGINS"); ok && v != "" {
		c.Server.CorsOrigins = splitList(v)
	}
	flt("AUTH_RATE_LIMIT", &c.Server.AuthRateLimit)
	num("AUTH_RATE_BURST", &c.Server.AuthRateBurst)

	str("MONGO_URI", &c.Mongo.URI)
	str("MONGO_DATABASE", &c.Mongo.Database)

	str("REDIS_ADDR", &c.Redis.Addr)
	str("REDIS_PASSWORD", &c.Redis.Password)
	num("REDIS_DB", &c.Redis.DB)
	dur("GUEST_SESSION_TTL", &c.Redis.SessionTTL)

	str("JWT_SECRET", &c.Auth.CustomerSecret)
	str("ADMIN_JWT_SECRET", &c.Auth.AdminSecret)
	dur("ADMIN_TOKEN_TTL", &c.Auth.AdminTokenTTL)

	str("OTP_MODE", &c.OTP.Mode)
	str("OTP_FIXED_CODE", &c.OTP.FixedCode)
	dur("OTP_TTL", &c.OTP.CustomerTTL)
	dur("ADMIN_OTP_TTL", &c.OTP.AdminTTL)
	boolean("EXPOSE_TEST_OTP", &c.OTP.ExposeTestCode)
	boolean("REQUIRE_PHONE_OTP", &c.OTP.RequirePhoneOTP)

	num("LOW_STOCK_THRESHOLD", &c.Store.LowStockThreshold)

	str("LOG_MODE", &c.Logger.Mode)
	str("LOG_FILE", &c.Logger.Filename)

	str("SENDGRID_API_KEY", &c.Email.SendgridAPIKey)
	str("EMAIL_SENDER", &c.Email.Sender)

	str("ADMIN_SEED_EMAIL", &c.AdminSeed.Email)
	str("ADMIN_SEED_PASSWORD", &c.AdminSeed.Password)
	str("ADMIN_SEED_MOBILE", &c.AdminSeed.Mobile)
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
