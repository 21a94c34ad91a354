package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig              `mapstructure:"server"`
	Database  DatabaseConfig            `mapstructure:"database"`
	Providers map[string]ProviderConfig `mapstructure:"providers"`

	// Process-wide model defaults, used when neither the session nor the
	// user specifies anything.
	DefaultProvider     string `mapstructure:"default_provider"`
	DefaultModel        string `mapstructure:"default_model"`
	DefaultSummaryModel string `mapstructure:"default_summary_model"`

	// Provider used for embedding calls. Falls back to DefaultProvider
	// when the configured one fails.
	EmbeddingsProvider string `mapstructure:"embeddings_provider"`

	Budget  BudgetConfig  `mapstructure:"budget"`
	Context ContextConfig `mapstructure:"context"`

	JWTSecret string `mapstructure:"jwt_secret"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"sslmode"`

	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type ProviderConfig struct {
	Type         string `mapstructure:"type"`
	Name         string `mapstructure:"name"`
	BaseURL      string `mapstructure:"base_url"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
}

type BudgetConfig struct {
	// Daily token allowance granted to every user.
	DailyTokens int `mapstructure:"daily_tokens"`
}

type ContextConfig struct {
	// Number of new messages required before the summary is regenerated.
	SummaryThreshold int `mapstructure:"summary_threshold"`
	// Maximum number of relevant prior exchanges retrieved per request.
	RetrievalLimit int `mapstructure:"retrieval_limit"`
	// Recent messages included verbatim when the session does not set its
	// own history window size.
	RecentMessages int `mapstructure:"recent_messages"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	homeDir, err := os.UserHomeDir()
	if err == nil {
		viper.AddConfigPath(filepath.Join(homeDir, ".boardboost"))
	}

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// No config file is fine; defaults plus env overrides apply.
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	loadEnvOverrides(&cfg)

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "boardboost")
	viper.SetDefault("database.database", "boardboost")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", 5*time.Minute)

	viper.SetDefault("default_provider", "openai")
	viper.SetDefault("default_model", "gpt-3.5-turbo")
	viper.SetDefault("default_summary_model", "gpt-3.5-turbo")
	viper.SetDefault("embeddings_provider", "openai")

	viper.SetDefault("budget.daily_tokens", 100000)
	viper.SetDefault("context.summary_threshold", 10)
	viper.SetDefault("context.retrieval_limit", 3)
	viper.SetDefault("context.recent_messages", 5)

	viper.SetDefault("providers", map[string]interface{}{
		"openai": map[string]interface{}{
			"type":          "openai",
			"name":          "OpenAI",
			"default_model": "gpt-3.5-turbo",
		},
		"anthropic": map[string]interface{}{
			"type":          "anthropic",
			"name":          "Anthropic",
			"default_model": "claude-3-sonnet-20240229",
		},
	})
}

func loadEnvOverrides(cfg *Config) {
	if port := os.Getenv("BOARDBOOST_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if host := os.Getenv("BOARDBOOST_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if secret := os.Getenv("BOARDBOOST_JWT_SECRET"); secret != "" {
		cfg.JWTSecret = secret
	}

	if dbHost := os.Getenv("POSTGRES_HOST"); dbHost != "" {
		cfg.Database.Host = dbHost
	}
	if dbPort := os.Getenv("POSTGRES_PORT"); dbPort != "" {
		if port, err := strconv.Atoi(dbPort); err == nil {
			cfg.Database.Port = port
		}
	}
	if dbUser := os.Getenv("POSTGRES_USER"); dbUser != "" {
		cfg.Database.User = dbUser
	}
	if dbPass := os.Getenv("POSTGRES_PASSWORD"); dbPass != "" {
		cfg.Database.Password = dbPass
	}
	if dbName := os.Getenv("POSTGRES_DB"); dbName != "" {
		cfg.Database.Database = dbName
	}

	// Provider API keys come from the environment, never the config file.
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		if p, ok := cfg.Providers["openai"]; ok {
			p.APIKey = key
			cfg.Providers["openai"] = p
		}
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		if p, ok := cfg.Providers["anthropic"]; ok {
			p.APIKey = key
			cfg.Providers["anthropic"] = p
		}
	}
}
