package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"mailsift/utils"
)

var (
	AppConfig Config
	envLoaded bool
)

type RedisConfig struct {
	Enabled  bool   `json:"enabled"`
	Address  string `json:"address"`
	Password string `json:"-"`
	DB       int    `json:"db"`
}

type OAuthConfig struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"-"`
	RedirectURI  string `json:"redirect_uri"`
}

type Config struct {
	Environment string      `json:"environment"`
	ServerPort  string      `json:"server_port"`
	FrontendURL string      `json:"frontend_url"`
	Google      OAuthConfig `json:"google"`

	// StateSecret signs the OAuth state token. Generated at startup when unset.
	StateSecret string `json:"-"`

	OpenAIModel   string `json:"openai_model"`
	OpenAIBaseURL string `json:"openai_base_url"`

	SessionTTL        time.Duration `json:"session_ttl"`
	SweepInterval     time.Duration `json:"sweep_interval"`
	ClassifyPacing    time.Duration `json:"classify_pacing"`
	MaxFetchResults   int           `json:"max_fetch_results"`
	RateLimitClassify int           `json:"rate_limit_classify"`

	SentryDSN string      `json:"-"`
	Redis     RedisConfig `json:"redis"`
}

func init() {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()
	envLoaded = true
}

func LoadConfig() error {
	AppConfig = Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		ServerPort:  getEnv("SERVER_PORT", "5001"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		Google: OAuthConfig{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURI:  getEnv("GOOGLE_REDIRECT_URI", "http://localhost:5001/auth/google/callback"),
		},
		StateSecret:       getEnv("STATE_SECRET", ""),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		SessionTTL:        getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		SweepInterval:     getEnvAsDuration("SESSION_SWEEP_INTERVAL", time.Hour),
		ClassifyPacing:    getEnvAsDuration("CLASSIFY_PACING", 400*time.Millisecond),
		MaxFetchResults:   getEnvAsInt("MAX_FETCH_RESULTS", 50),
		RateLimitClassify: getEnvAsInt("RATE_LIMIT_CLASSIFY", 5),
		SentryDSN:         getEnv("SENTRY_DSN", ""),
		Redis: RedisConfig{
			Enabled:  getEnv("REDIS_ENABLED", "") == "true",
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
	}

	// Validate required configurations
	if AppConfig.Environment == "production" {
		if AppConfig.Google.ClientID == "" || AppConfig.Google.ClientSecret == "" {
			return fmt.Errorf("Google OAuth credentials are required in production")
		}
		if AppConfig.StateSecret == "" {
			return fmt.Errorf("STATE_SECRET is required in production")
		}
	}

	// Outside production a per-process signing key is good enough; state
	// tokens only need to outlive one OAuth handshake.
	if AppConfig.StateSecret == "" {
		secret, err := utils.GenerateSecureToken()
		if err != nil {
			return fmt.Errorf("failed to generate state secret: %w", err)
		}
		AppConfig.StateSecret = secret
	}

	logConfig()
	return nil
}

// Helper functions
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	if !envLoaded && fallback == "" {
		log.Printf("⚠️ Environment variable %s not found and no fallback provided", key)
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	var value int
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return fallback
	}
	return value
}

func logConfig() {
	log.Println("🔧 Loaded configuration:")
	log.Printf("Environment: %s", AppConfig.Environment)
	log.Printf("Server Port: %s", AppConfig.ServerPort)
	log.Printf("Frontend URL: %s", AppConfig.FrontendURL)
	log.Printf("OpenAI Model: %s", AppConfig.OpenAIModel)
	log.Printf("Google OAuth configured: %t", AppConfig.Google.ClientID != "")
	log.Printf("Redis session store: %t", AppConfig.Redis.Enabled)
}
