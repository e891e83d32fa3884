package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host                 string
	Port                 int
	ReadTimeoutSec       int     `mapstructure:"read_timeout_sec"`
	WriteTimeoutSec      int     `mapstructure:"write_timeout_sec"`
	IdleTimeoutSec       int     `mapstructure:"idle_timeout_sec"`
	RequestTimeoutSec    int     `mapstructure:"request_timeout_sec"`
	RateLimit            float64 `mapstructure:"rate_limit"`
	RateBurst            int     `mapstructure:"rate_burst"`
	RateLimitPerIP       bool    `mapstructure:"rate_limit_per_ip"`
	MaxConcurrent        int64   `mapstructure:"max_concurrent"`
	MaxBodyBytes         int64   `mapstructure:"max_body_bytes"`
	LegacyConflictStatus bool    `mapstructure:"legacy_conflict_status"`
}

type App struct {
	Name string
	Env  string
}

type FileRotate struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int `mapstructure:"max_size_mb"`
	MaxBackups int `mapstructure:"max_backups"`
	MaxAgeDays int `mapstructure:"max_age_days"`
	Compress   bool
}

type Log struct {
	Level  string
	JSON   bool
	Rotate FileRotate
}

// DB selects the entity store. Driver is one of postgres, mysql, mongo, memory.
type DB struct {
	Driver             string
	DSN                string
	Host               string
	Port               int
	Name               string
	Username           string
	Password           string
	MaxOpenConns       int    `mapstructure:"max_open_conns"`
	MaxIdleConns       int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeMin int    `mapstructure:"conn_max_lifetime_min"`
	AutoMigrate        bool   `mapstructure:"auto_migrate"`
	LogLevel           string `mapstructure:"log_level"`
}

type Mongo struct {
	URI               string
	Database          string
	ConnectTimeoutSec int `mapstructure:"connect_timeout_sec"`
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Session configures the login session. Store is one of memory, db, redis;
// db keeps sessions next to the entities.
type Session struct {
	Store        string
	CookieName   string `mapstructure:"cookie_name"`
	Secret       string
	Issuer       string
	MaxAgeHours  int `mapstructure:"max_age_hours"`
	Rolling      bool
	SecureCookie bool `mapstructure:"secure_cookie"`
}

type Seed struct {
	Enabled     bool
	Username    string
	Password    string
	CatalogFile string `mapstructure:"catalog_file"`
}

type Config struct {
	App     App
	HTTP    HTTP
	Log     Log
	DB      DB
	Mongo   Mongo
	Redis   Redis `mapstructure:"redis"`
	Session Session
	Seed    Seed
}

func (s Session) MaxAge() time.Duration { return time.Duration(s.MaxAgeHours) * time.Hour }

func (h HTTP) RequestTimeout() time.Duration {
	return time.Duration(h.RequestTimeoutSec) * time.Second
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "shop-api")
	v.SetDefault("app.env", "development")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 3000)
	v.SetDefault("http.read_timeout_sec", 5)
	v.SetDefault("http.write_timeout_sec", 10)
	v.SetDefault("http.idle_timeout_sec", 60)
	v.SetDefault("http.request_timeout_sec", 10)
	v.SetDefault("http.rate_limit", 200)
	v.SetDefault("http.rate_burst", 400)
	v.SetDefault("http.rate_limit_per_ip", false)
	v.SetDefault("http.max_concurrent", 300)
	v.SetDefault("http.max_body_bytes", 1<<20)
	v.SetDefault("http.legacy_conflict_status", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.rotate.enable", false)
	v.SetDefault("log.rotate.filename", "logs/app.log")
	v.SetDefault("log.rotate.max_size_mb", 100)
	v.SetDefault("log.rotate.max_backups", 5)
	v.SetDefault("log.rotate.max_age_days", 14)
	v.SetDefault("log.rotate.compress", true)

	v.SetDefault("db.driver", "mongo")
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 27017)
	v.SetDefault("db.name", "shop")
	v.SetDefault("db.username", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime_min", 30)
	v.SetDefault("db.auto_migrate", true)
	v.SetDefault("db.log_level", "warn")

	v.SetDefault("mongo.uri", "")
	v.SetDefault("mongo.database", "")
	v.SetDefault("mongo.connect_timeout_sec", 10)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("session.store", "db")
	v.SetDefault("session.cookie_name", "sid")
	v.SetDefault("session.secret", "")
	v.SetDefault("session.issuer", "shop-api")
	v.SetDefault("session.max_age_hours", 48)
	v.SetDefault("session.rolling", false)
	v.SetDefault("session.secure_cookie", false)

	v.SetDefault("seed.enabled", false)
	v.SetDefault("seed.username", "")
	v.SetDefault("seed.password", "")
	v.SetDefault("seed.catalog_file", "")
}

// legacyEnv maps the environment names of the previous deployment onto keys.
var legacyEnv = map[string]string{
	"db.host":        "DB_HOST",
	"db.port":        "DB_PORT",
	"db.name":        "DB_NAME",
	"seed.enabled":   "DB_SEED",
	"seed.username":  "USERNAME",
	"seed.password":  "PASSWORD",
	"session.secret": "COOKIE_SECRET",
	"app.env":        "NODE_ENV",
}

// Load reads defaults, then the optional YAML file at path, then the
// environment. A missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		// APP_* wins over the legacy name.
		if err := v.BindEnv(key, "APP_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	switch c.DB.Driver {
	case "postgres", "mysql", "mongo", "memory":
	default:
		return fmt.Errorf("unsupported db driver %q", c.DB.Driver)
	}
	switch c.Session.Store {
	case "memory", "db", "redis":
	default:
		return fmt.Errorf("unsupported session store %q", c.Session.Store)
	}
	if c.Session.Secret == "" {
		return errors.New("session secret is required (APP_SESSION_SECRET or COOKIE_SECRET)")
	}
	if c.Session.MaxAgeHours <= 0 {
		return errors.New("session max age must be > 0")
	}
	return nil
}

// MongoURI prefers an explicit URI and otherwise builds one from host and port.
func (c *Config) MongoURI() string {
	if c.Mongo.URI != "" {
		return c.Mongo.URI
	}
	return fmt.Sprintf("mongodb://%s:%d", c.DB.Host, c.DB.Port)
}

func (c *Config) MongoDatabase() string {
	if c.Mongo.Database != "" {
		return c.Mongo.Database
	}
	return c.DB.Name
}

func (c *Config) IsProduction() bool { return c.App.Env == "production" }
