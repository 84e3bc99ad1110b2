package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort          = 8000
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultAgentTimeout  = 120 * time.Second
	// ModeMock selects the offline runner instead of the Responses API.
	ModeMock = "MOCK"
)

type Config struct {
	Port            int
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	AgentTimeout    time.Duration
	AgentConfigFile string
	AgentMode       string
	LogDir          string
}

// LoadConfig reads a .env file if one exists, then the process environment.
func LoadConfig() Config {
	// a missing .env is normal in deployments, variables come from the platform
	_ = godotenv.Load()

	return Config{
		Port:            getEnvInt("PORT", DefaultPort),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", DefaultOpenAIBaseURL),
		AgentTimeout:    time.Duration(getEnvInt("AGENT_TIMEOUT_SECONDS", int(DefaultAgentTimeout/time.Second))) * time.Second,
		AgentConfigFile: getEnv("AGENT_CONFIG_FILE", ""),
		AgentMode:       getEnv("AGENT_MODE", ""),
		LogDir:          getEnv("LOG_DIR", "./logs"),
	}
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func (c Config) MockMode() bool {
	return c.AgentMode == ModeMock
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
