package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DB      DBConfig
	Server  ServerConfig
	Redis   RedisConfig
	LLM     LLMConfig
	Scraper ScraperConfig
	Logger  LoggerConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  string
}

// DBConfig selects the SQL dialect. Driver is one of "sqlite3", "postgres"
// or "oracle"; DSN is passed to the driver unchanged.
type DBConfig struct {
	Driver string
	DSN    string
}

type RedisConfig struct {
	Enabled  bool
	Address  string
	Password string
	DB       int
	QuizTTL  time.Duration
}

// LLMConfig configures the text completion oracle.
// Provider is one of "googleai", "openai" or "ollama".
type LLMConfig struct {
	Provider    string
	Model       string
	APIKey      string
	ServerURL   string
	Timeout     time.Duration
	Temperature float64
}

// Credential returns the value the provider cannot run without:
// the API key for hosted providers, the server URL for ollama.
func (c LLMConfig) Credential() string {
	if c.Provider == "ollama" {
		return c.ServerURL
	}
	return c.APIKey
}

type ScraperConfig struct {
	Timeout           time.Duration
	UserAgent         string
	AllowedDomain     string
	MaxChars          int
	MinParagraphChars int
}

type LoggerConfig struct {
	Level string
	Env   string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 120*time.Second)
	v.SetDefault("server.cors_origins", "http://localhost:5173,http://localhost:3000")

	v.SetDefault("db.driver", "sqlite3")
	v.SetDefault("db.dsn", "quiz_history.db")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.quiz_ttl", 24*time.Hour)

	v.SetDefault("llm.provider", "googleai")
	v.SetDefault("llm.model", "gemini-2.0-flash-001")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.server_url", "http://localhost:11434")
	v.SetDefault("llm.timeout", 90*time.Second)
	v.SetDefault("llm.temperature", 0.7)

	v.SetDefault("scraper.timeout", 10*time.Second)
	v.SetDefault("scraper.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	v.SetDefault("scraper.allowed_domain", "wikipedia.org")
	v.SetDefault("scraper.max_chars", 10000)
	v.SetDefault("scraper.min_paragraph_chars", 50)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")
}

func LoadConfig() (*Config, error) {
	// Add config paths based on environment
	if os.Getenv("ENV") == "test" {
		// For test environment, look for config in the project root
		return load("../../config", "../../")
	}
	return load(".", "./config")
}

func load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Log the config file being used
	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	config := &Config{
		DB: DBConfig{
			Driver: v.GetString("db.driver"),
			DSN:    v.GetString("db.dsn"),
		},
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
			CORSOrigins:  v.GetString("server.cors_origins"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			QuizTTL:  v.GetDuration("redis.quiz_ttl"),
		},
		LLM: LLMConfig{
			Provider:    v.GetString("llm.provider"),
			Model:       v.GetString("llm.model"),
			APIKey:      v.GetString("llm.api_key"),
			ServerURL:   v.GetString("llm.server_url"),
			Timeout:     v.GetDuration("llm.timeout"),
			Temperature: v.GetFloat64("llm.temperature"),
		},
		Scraper: ScraperConfig{
			Timeout:           v.GetDuration("scraper.timeout"),
			UserAgent:         v.GetString("scraper.user_agent"),
			AllowedDomain:     v.GetString("scraper.allowed_domain"),
			MaxChars:          v.GetInt("scraper.max_chars"),
			MinParagraphChars: v.GetInt("scraper.min_paragraph_chars"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
	}

	// Override with environment variables if set
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		config.DB.DSN = dsn
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		config.DB.Driver = driver
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		v.Set("server.port", port)
		config.Server.Port = v.GetInt("server.port")
	}
	if llmServer := os.Getenv("LLM_SERVER"); llmServer != "" {
		config.LLM.ServerURL = llmServer
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	switch config.LLM.Provider {
	case "googleai":
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			config.LLM.APIKey = key
		}
	case "openai":
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			config.LLM.APIKey = key
		}
	}

	return config, nil
}

// ServerAddress returns the listen address for the HTTP server.
func (c *Config) ServerAddress() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
