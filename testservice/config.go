package testservice

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/uisync/selection-harness/store"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables that override configuration, such as
// SELECTIONSERVICE_PORT or SELECTIONSERVICE_REDIS_URL.
const EnvPrefix = "SELECTIONSERVICE"

// Config holds the component service settings.
type Config struct {
	Port            int           `mapstructure:"port"`
	LogLevel        string        `mapstructure:"log_level"`
	CallbackTimeout time.Duration `mapstructure:"callback_timeout"`
	Redis           RedisConfig   `mapstructure:"redis"`
	Consul          ConsulConfig  `mapstructure:"consul"`
	DynamoDB        DynamoConfig  `mapstructure:"dynamodb"`
}

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

type ConsulConfig struct {
	Address string `mapstructure:"address"`
}

type DynamoConfig struct {
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint"`
	Table    string `mapstructure:"table"`
}

// LoadConfig reads configuration from defaults, an optional YAML file, and the environment, with
// later sources taking precedence. If configFile is empty, SELECTIONSERVICE_CONFIG names the
// file; if that is also empty, only defaults and the environment are used.
func LoadConfig(configFile string) (Config, error) {
	v := viper.New()

	v.SetDefault("port", 8000)
	v.SetDefault("log_level", "info")
	v.SetDefault("callback_timeout", 5*time.Second)
	v.SetDefault("redis.url", "")
	v.SetDefault("consul.address", "")
	v.SetDefault("dynamodb.region", "")
	v.SetDefault("dynamodb.endpoint", "")
	v.SetDefault("dynamodb.table", store.DefaultDynamoDBTable)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile == "" {
		configFile = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if _, ok := parseLogLevel(c.LogLevel); !ok {
		return Config{}, fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return c, nil
}

// StoreSettings converts the persistence part of the configuration.
func (c Config) StoreSettings() store.Settings {
	return store.Settings{
		RedisURL:         c.Redis.URL,
		ConsulAddress:    c.Consul.Address,
		DynamoDBRegion:   c.DynamoDB.Region,
		DynamoDBEndpoint: c.DynamoDB.Endpoint,
		DynamoDBTable:    c.DynamoDB.Table,
	}
}

// Loggers returns loggers writing to standard error at the configured level.
func (c Config) Loggers() ldlog.Loggers {
	loggers := ldlog.NewDefaultLoggers()
	level, _ := parseLogLevel(c.LogLevel)
	loggers.SetMinLevel(level)
	return loggers
}

func parseLogLevel(s string) (ldlog.LogLevel, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return ldlog.Debug, true
	case "info", "":
		return ldlog.Info, true
	case "warn":
		return ldlog.Warn, true
	case "error":
		return ldlog.Error, true
	case "none":
		return ldlog.None, true
	default:
		return ldlog.None, false
	}
}
