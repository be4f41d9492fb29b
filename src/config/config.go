package config

import (
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

type Config struct {
	Service         ServiceConfig        `mapstructure:"service"`
	Log             LogConfig            `mapstructure:"log"`
	Databases       DatabasesConfig      `mapstructure:"databases"`
	Cache           CacheConfig          `mapstructure:"cache"`
	ExternalClients ExternalClientConfig `mapstructure:"externalClients"`
	Auth            AuthConfig           `mapstructure:"auth"`
	Mail            MailConfig           `mapstructure:"mail"`
	AWS             AWSConfig            `mapstructure:"aws"`
	Worker          WorkerConfig         `mapstructure:"worker"`

	mutex sync.RWMutex
}

type ServiceType string

const (
	API    ServiceType = "API"
	WORKER ServiceType = "WORKER"
)

const ProductionEnvironment = "production"

type ServiceConfig struct {
	Type        ServiceType `mapstructure:"type"`
	Port        string      `mapstructure:"port"`
	Environment string      `mapstructure:"environment"`
	FrontendURL string      `mapstructure:"frontendUrl"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type DatabasesConfig struct {
	SQL   SQLConfig   `mapstructure:"sql"`
	Redis RedisConfig `mapstructure:"redis"`
}

type SQLConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	Driver           string `mapstructure:"driver"`
	Database         string `mapstructure:"database"`
	ConnectionString string `mapstructure:"connection_string"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
	TLS      bool   `mapstructure:"tls"`
}

type CacheBackend string

const (
	MemoryCache CacheBackend = "memory"
	RedisCache  CacheBackend = "redis"
)

type CacheConfig struct {
	Backend      CacheBackend `mapstructure:"backend"`
	SingleFlight bool         `mapstructure:"singleFlight"`
}

type ExternalClientConfig struct {
	CoinGecko CoinGeckoConfig `mapstructure:"coingecko"`
}

type CoinGeckoConfig struct {
	BaseURL        string `mapstructure:"baseUrl"`
	APIKey         string `mapstructure:"apiKey"`
	APIKeySecretID string `mapstructure:"apiKeySecretId"`
	TimeoutSeconds int    `mapstructure:"timeoutSeconds"`
}

type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
}

type JWTConfig struct {
	Secret       string `mapstructure:"secret"`
	SecretID     string `mapstructure:"secretId"`
	ExpirationMs int64  `mapstructure:"expirationMs"`
	Issuer       string `mapstructure:"issuer"`
}

type MailConfig struct {
	QueueURL     string `mapstructure:"queueUrl"`
	ServiceEmail string `mapstructure:"serviceEmail"`
}

type AWSConfig struct {
	Region string `mapstructure:"region"`
}

type WorkerConfig struct {
	ReplayCron string `mapstructure:"replayCron"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service.type", string(API))
	v.SetDefault("service.port", "8000")
	v.SetDefault("service.environment", "development")
	v.SetDefault("service.frontendUrl", "http://localhost:5173")
	v.SetDefault("log.level", "info")
	v.SetDefault("cache.backend", string(MemoryCache))
	v.SetDefault("externalClients.coingecko.baseUrl", "https://api.coingecko.com/api/v3")
	v.SetDefault("externalClients.coingecko.timeoutSeconds", 10)
	v.SetDefault("auth.jwt.expirationMs", 86400000)
	v.SetDefault("auth.jwt.issuer", "cryptoapp")
	v.SetDefault("aws.region", "us-east-1")
}

// LoadConfig reads appsettings.yaml, or appsettings.<env>.yaml when env is set, from path.
// Environment variables prefixed with CRYPTOAPP_ override file values.
func LoadConfig(path string, env string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(path)
	if env != "" {
		v.SetConfigName("appsettings." + env)
	} else {
		v.SetConfigName("appsettings")
	}
	v.SetConfigType("yaml")

	v.SetEnvPrefix("CRYPTOAPP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}
	cfg := new(Config)
	err = v.Unmarshal(cfg)
	if err != nil {
		return nil, err
	}

	// The environment drives cache freshness, so it is kept live across config file edits.
	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg.SetEnvironment(v.GetString("service.environment"))
	})
	v.WatchConfig()

	return cfg, nil
}

// Environment returns the current service environment.
func (c *Config) Environment() string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.Service.Environment
}

func (c *Config) SetEnvironment(env string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.Service.Environment = env
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment(), ProductionEnvironment)
}
