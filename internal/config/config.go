package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

type AppConfig struct {
	Env                Environment
	LogLevel           string
	ServerPort         string
	RawBodyLog         bool
	HttpTimeoutSeconds int
}

type SheetConfig struct {
	URL      string
	File     string
	Encoding string
}

type LlmConfig struct {
	URL         string
	Token       string
	Model       string
	Temperature float64
	MaxTokens   int
}

type TemplateConfig struct {
	Path string
}

type OutputConfig struct {
	Dir        string
	SchemaFile string
}

type StoreAuthMode string

const (
	AuthModeKey     StoreAuthMode = "key"
	AuthModeAccount StoreAuthMode = "account"
)

type StoreConfig struct {
	Enabled    bool
	URL        string
	Bucket     string
	AuthMode   StoreAuthMode
	KeyID      string
	Key        string
	AccountID  string
	AccountKey string
}

type Config struct {
	App      AppConfig
	Sheet    SheetConfig
	Llm      LlmConfig
	Template TemplateConfig
	Output   OutputConfig
	Store    StoreConfig
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	appEnv := getEnv("APP_ENV", "development")
	env := parseEnvironment(appEnv)

	logLevel := getLogLevel(env)

	return &Config{
		App: AppConfig{
			Env:                env,
			LogLevel:           logLevel,
			ServerPort:         getEnv("APP_SERVER_PORT", "8080"),
			RawBodyLog:         getEnvBool("APP_RAW_BODY_LOG", false),
			HttpTimeoutSeconds: getEnvInt("APP_HTTP_TIMEOUT_SECONDS", 30),
		},
		Sheet: SheetConfig{
			URL:      getEnv("SHEET_URL", ""),
			File:     getEnv("SHEET_FILE", ""),
			Encoding: getEnv("SHEET_ENCODING", ""),
		},
		Llm: LlmConfig{
			URL:         getEnv("LLM_URL", "https://api.openai.com/v1/chat/completions"),
			Token:       getEnv("LLM_TOKEN", ""),
			Model:       getEnv("LLM_MODEL", "gpt-4o-mini"),
			Temperature: getEnvFloat("LLM_TEMPERATURE", 0.7),
			MaxTokens:   getEnvInt("LLM_MAX_TOKENS", 500),
		},
		Template: TemplateConfig{
			Path: getEnv("TEMPLATE_PATH", "Maturity_Slide_Template.pptx"),
		},
		Output: OutputConfig{
			Dir:        getEnv("OUTPUT_DIR", "output"),
			SchemaFile: getEnv("SCHEMA_FILE", ""),
		},
		Store: StoreConfig{
			Enabled:    getEnvBool("STORE_ENABLED", false),
			URL:        getEnv("STORE_URL", "https://api.backblazeb2.com"),
			Bucket:     getEnv("STORE_BUCKET", ""),
			AuthMode:   parseAuthMode(getEnv("STORE_AUTH_MODE", "key")),
			KeyID:      getEnv("STORE_KEY_ID", ""),
			Key:        getEnv("STORE_KEY", ""),
			AccountID:  getEnv("STORE_ACCOUNT_ID", ""),
			AccountKey: getEnv("STORE_ACCOUNT_KEY", ""),
		},
	}, nil
}

func (c *Config) Validate() error {
	if c.Sheet.URL == "" && c.Sheet.File == "" {
		return fmt.Errorf("SHEET_URL or SHEET_FILE is required")
	}
	if c.Llm.Token == "" {
		return fmt.Errorf("LLM_TOKEN is required")
	}
	if c.Store.Enabled {
		if c.Store.Bucket == "" {
			return fmt.Errorf("STORE_BUCKET is required when STORE_ENABLED=true")
		}
		switch c.Store.AuthMode {
		case AuthModeKey:
			if c.Store.KeyID == "" || c.Store.Key == "" {
				return fmt.Errorf("STORE_KEY_ID and STORE_KEY are required for STORE_AUTH_MODE=key")
			}
		case AuthModeAccount:
			if c.Store.AccountID == "" || c.Store.AccountKey == "" {
				return fmt.Errorf("STORE_ACCOUNT_ID and STORE_ACCOUNT_KEY are required for STORE_AUTH_MODE=account")
			}
		}
	}
	return nil
}

// Credentials returns the identifier/secret pair selected by the auth mode toggle.
func (s *StoreConfig) Credentials() (string, string) {
	if s.AuthMode == AuthModeAccount {
		return s.AccountID, s.AccountKey
	}
	return s.KeyID, s.Key
}

func parseEnvironment(envStr string) Environment {
	env := Environment(strings.ToLower(envStr))

	switch env {
	case Development, Production:
		return env
	default:
		return Development
	}
}

func parseAuthMode(modeStr string) StoreAuthMode {
	mode := StoreAuthMode(strings.ToLower(modeStr))

	switch mode {
	case AuthModeKey, AuthModeAccount:
		return mode
	default:
		return AuthModeKey
	}
}

func getLogLevel(env Environment) string {
	if env == Production {
		return getEnv("APP_LOG_LEVEL", "info")
	}

	return getEnv("APP_LOG_LEVEL", "debug")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value == "true" {
		return true
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
