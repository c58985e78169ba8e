package config

import (
	"errors"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// DefaultUserAgent is the User-Agent sent when the data source is fetched over HTTP.
const DefaultUserAgent = "oshikatsu/1.0 (+https://luqmanhadi.com)"

// DefaultDataSource is the data file read on every render when nothing else is configured.
const DefaultDataSource = "public/oshikatsu.json"

// PageConfig holds the static strings of the page head, header and footer.
type PageConfig struct {
	Title       string `mapstructure:"title"`
	Description string `mapstructure:"description"`
	Icon        string `mapstructure:"icon"`
	Owner       string `mapstructure:"owner"`
	Heading     string `mapstructure:"heading"`
	LogoPath    string `mapstructure:"logo_path"`
	LogoAlt     string `mapstructure:"logo_alt"`
	LogoSize    int    `mapstructure:"logo_size"`
	FooterText  string `mapstructure:"footer_text"`
	LinkURL     string `mapstructure:"link_url"`
	LinkText    string `mapstructure:"link_text"`
}

type Config struct {
	DataSource            string `mapstructure:"data_source"` // file path or http(s) URL
	PublicDir             string `mapstructure:"public_dir"`
	Locale                string `mapstructure:"locale"`
	Timezone              string `mapstructure:"timezone"` // IANA name, empty means the process local zone
	ProxyConnectionString string `mapstructure:"proxy_connection_string"`
	ClientTimeout         string `mapstructure:"client_timeout"` // Go duration string like "30s", "1m", etc.
	ClientRetries         int    `mapstructure:"client_retries"`
	UserAgent             string `mapstructure:"user_agent"`
	Server                struct {
		Port    int    `mapstructure:"port"`
		Address string `mapstructure:"address"`
	} `mapstructure:"server"`
	LogLevel    string `mapstructure:"log_level"`
	Compression struct {
		Enabled bool `mapstructure:"enabled"`
		Level   int  `mapstructure:"level"`
	} `mapstructure:"compression"`
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"cors"`
	Metrics struct {
		Enabled bool `mapstructure:"enabled"`
		Port    int  `mapstructure:"port"`
	} `mapstructure:"metrics"`
	GRPC struct {
		Enabled       bool   `mapstructure:"enabled"`
		Port          int    `mapstructure:"port"`
		CheckInterval string `mapstructure:"check_interval"` // Go duration string
	} `mapstructure:"grpc"`
	Sentry struct {
		DSN         string `mapstructure:"dsn"`
		Environment string `mapstructure:"environment"`
	} `mapstructure:"sentry"`
	Page PageConfig `mapstructure:"page"`
}

var (
	globalConfig *Config
	logger       zerolog.Logger
)

func init() {
	// Logs go to stderr so "render" can write the page to stdout
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: false,
	}).With().Timestamp().Logger()

	config, err := LoadConfig("")
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}
	apply(config)
}

// Load reads the configuration from path (or the default search paths when path is
// empty), replaces the global configuration and reconfigures the log level.
func Load(path string) (*Config, error) {
	config, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	apply(config)
	return config, nil
}

func apply(config *Config) {
	level := zerolog.InfoLevel // default
	if config.LogLevel != "" {
		if parsedLevel, err := zerolog.ParseLevel(config.LogLevel); err == nil {
			level = parsedLevel
		} else {
			logger.Warn().Str("invalid_level", config.LogLevel).Msg("Invalid log level, using default 'info'")
		}
	}

	zerolog.SetGlobalLevel(level)
	logger = logger.Level(level)

	logger.Debug().Str("level", level.String()).Msg("Logging configured")
	globalConfig = config
}

// LoadConfig builds a Config from defaults, the optional config file and APP_ environment
// variables. It does not touch the global configuration.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variable support
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Add specific environment variable for log level
	_ = v.BindEnv("log_level", "LOG_LEVEL")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_source", DefaultDataSource)
	v.SetDefault("public_dir", "public")
	v.SetDefault("locale", "en")
	v.SetDefault("timezone", "")
	v.SetDefault("proxy_connection_string", "")
	v.SetDefault("client_timeout", "10s")
	v.SetDefault("client_retries", 2)
	v.SetDefault("user_agent", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.address", "localhost")
	v.SetDefault("compression.enabled", true)
	v.SetDefault("compression.level", 5)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("grpc.enabled", false)
	v.SetDefault("grpc.port", 9091)
	v.SetDefault("grpc.check_interval", "30s")
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "production")

	v.SetDefault("page.title", "My Oshikatsu Information")
	v.SetDefault("page.description", "A list of my favorite characters and idols.")
	v.SetDefault("page.icon", "https://fav.farm/💖")
	v.SetDefault("page.owner", "Luqman Hadi")
	v.SetDefault("page.heading", "Oshikatsu Information")
	v.SetDefault("page.logo_path", "/oshikatsujson.png")
	v.SetDefault("page.logo_alt", "Oshikatsu JSON Logo")
	v.SetDefault("page.logo_size", 200)
	v.SetDefault("page.footer_text", "Oshikatsu - but with JSON files.")
	v.SetDefault("page.link_url", "https://luqmanhadi.com")
	v.SetDefault("page.link_text", "Return to luqmanhadi.com")
}

func GetConfig() *Config {
	return globalConfig
}

func GetLogger() zerolog.Logger {
	return logger
}
