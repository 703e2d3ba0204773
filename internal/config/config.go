package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"interview-coach"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	AI        AI
	RateLimit RateLimit
	Redis     Redis
	Upload    Upload
	CORS      CORS
}

// AI configures the generative-AI provider used for question generation and
// answer evaluation. The key is read lazily per request so a misconfigured
// deployment surfaces as a configuration error, not a startup crash.
type AI struct {
	Provider    string        `env:"AI_PROVIDER" envDefault:"gemini"`
	GeminiKey   string        `env:"GEMINI_API_KEY"`
	GeminiModel string        `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	OpenAIKey   string        `env:"OPENAI_API_KEY"`
	OpenAIURL   string        `env:"OPENAI_BASE_URL" envDefault:"https://api.deepseek.com"`
	OpenAIModel string        `env:"OPENAI_MODEL" envDefault:"deepseek-chat"`
	Timeout     time.Duration `env:"AI_TIMEOUT" envDefault:"90s"`
}

// RateLimit governs the per-client request budgets for the two AI-backed
// operations plus the sweep cadence for expired counters.
type RateLimit struct {
	GenerateMax    int           `env:"RATE_LIMIT_GENERATE_MAX" envDefault:"10"`
	GenerateWindow time.Duration `env:"RATE_LIMIT_GENERATE_WINDOW" envDefault:"1h"`
	EvaluateMax    int           `env:"RATE_LIMIT_EVALUATE_MAX" envDefault:"50"`
	EvaluateWindow time.Duration `env:"RATE_LIMIT_EVALUATE_WINDOW" envDefault:"1h"`
	SweepInterval  time.Duration `env:"RATE_LIMIT_SWEEP_INTERVAL" envDefault:"10m"`
}

// Redis holds the optional shared rate-limit store. When Addr is empty the
// limiter falls back to a per-process in-memory counter.
type Redis struct {
	Addr     string `env:"REDIS_ADDR"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`
}

// Upload bounds document ingestion.
type Upload struct {
	MaxFileSize  int64 `env:"UPLOAD_MAX_FILE_BYTES" envDefault:"10485760"`
	MinTextChars int   `env:"UPLOAD_MIN_TEXT_CHARS" envDefault:"50"`
}

// CORS holds Cross-Origin Resource Sharing configuration.
type CORS struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://127.0.0.1:3000"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,POST,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Content-Type,Authorization"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE" envDefault:"3600"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
