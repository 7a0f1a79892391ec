package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host              string
	Port              int
	ReadTimeoutSec    int
	WriteTimeoutSec   int
	IdleTimeoutSec    int
	RequestTimeoutSec int
	MaxBodyBytes      int64
	RateLimitRPS      float64
	RateLimitBurst    int
	MaxConcurrent     int64
	CORSOrigins       []string
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
}

type LogFile struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level string
	JSON  bool
	File  LogFile
}

type JWT struct {
	Secret            string
	Issuer            string
	Audience          string
	AccessTokenTTLMin int
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

// Auth 登录相关：bcrypt 成本与失败次数限制
type Auth struct {
	BcryptCost      int
	MaxFailedLogins int
	LoginWindowMin  int
	LoginRPS        float64
	LoginBurst      int
}

type Telemetry struct {
	Enabled     bool
	Endpoint    string
	SampleRatio float64
}

type Config struct {
	App       App
	Log       Log
	JWT       JWT
	DB        DB
	Redis     Redis `mapstructure:"redis"`
	Auth      Auth
	Telemetry Telemetry
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "youwatch-api")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.readTimeoutSec", 5)
	v.SetDefault("app.http.writeTimeoutSec", 10)
	v.SetDefault("app.http.idleTimeoutSec", 60)
	v.SetDefault("app.http.requestTimeoutSec", 10)
	v.SetDefault("app.http.maxBodyBytes", 1<<20)
	v.SetDefault("app.http.rateLimitRPS", 200)
	v.SetDefault("app.http.rateLimitBurst", 400)
	v.SetDefault("app.http.maxConcurrent", 300)

	v.SetDefault("log.level", "info")

	v.SetDefault("jwt.issuer", "youwatch-api")
	v.SetDefault("jwt.audience", "youwatch-clients")
	v.SetDefault("jwt.accessTokenTTLMin", 120)

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "file:youwatch.db?_pragma=foreign_keys(1)")
	v.SetDefault("db.maxOpenConns", 20)
	v.SetDefault("db.maxIdleConns", 5)
	v.SetDefault("db.connMaxLifetimeMin", 30)
	v.SetDefault("db.autoMigrate", true)
	v.SetDefault("db.logLevel", "warn")

	v.SetDefault("auth.bcryptCost", 10)
	v.SetDefault("auth.maxFailedLogins", 5)
	v.SetDefault("auth.loginWindowMin", 15)
	v.SetDefault("auth.loginRPS", 5)
	v.SetDefault("auth.loginBurst", 10)

	v.SetDefault("telemetry.endpoint", "localhost:4317")
	v.SetDefault("telemetry.sampleRatio", 1.0)
}

// Read 读取 YAML + APP_ 前缀环境变量（a.b.c -> APP_A_B_C）
func Read(path string) (*Config, error) {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
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

func Load(path string) *Config {
	c, err := Read(path)
	if err != nil {
		log.Fatalf("%v", err)
	}
	return c
}

func (c *Config) Validate() error {
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("config: jwt.secret must be at least 32 bytes")
	}
	if c.JWT.Issuer == "" || c.JWT.Audience == "" {
		return fmt.Errorf("config: jwt.issuer and jwt.audience are required")
	}
	switch c.DB.Driver {
	case "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("config: unsupported db.driver %q", c.DB.Driver)
	}
	return nil
}
