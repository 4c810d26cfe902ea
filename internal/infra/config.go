package infra

import (
	"os"
	"strconv"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv           string
	Port             string
	RPCURL           string
	PrivateKey       string
	ContractAddress  string
	StorageAPIKey    string
	StorageBaseURL   string
	LocalStorageDir  string
	OpenAIAPIKey     string
	OpenAIModel      string
	OpenAIBaseURL    string
	MockMinting      bool
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed. Chain credentials are deliberately not validated
// here: the mock pipeline runs without any, and the live minter reports its
// own configuration errors.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "3001"),
		RPCURL:           os.Getenv("POLYGON_RPC_URL"),
		PrivateKey:       os.Getenv("PRIVATE_KEY"),
		ContractAddress:  os.Getenv("CONTRACT_ADDRESS"),
		StorageAPIKey:    os.Getenv("NFT_STORAGE_API_KEY"),
		StorageBaseURL:   getEnv("NFT_STORAGE_BASE_URL", "https://api.nft.storage"),
		LocalStorageDir:  os.Getenv("LOCAL_STORAGE_DIR"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:      getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		MockMinting:      getEnvBool("MOCK_MINTING", false),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 120)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
