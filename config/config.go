// Package config loads runtime configuration from the environment with
// sensible defaults, so the binary runs locally with nothing set (the
// gateway then answers from its local fallback tier).
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config is the full runtime configuration.
type Config struct {
	// Addr is the listen address of the HTTP server.
	Addr string
	// DataRoot anchors the database and generated artifacts.
	DataRoot string
	// DBPath is the sqlite database file.
	DBPath string
	// GeneratedDir holds generated resume artifacts.
	GeneratedDir string

	// JWTSecret signs access and reset tokens.
	JWTSecret string

	// OpenRouterKey enables the primary LLM provider when non-empty.
	OpenRouterKey string
	// AnthropicKey enables the secondary LLM provider when non-empty.
	AnthropicKey string

	// AgentWorkers bounds concurrent agent calls.
	AgentWorkers int
	// AgentWait is the caller-side budget for one agent dispatch.
	AgentWait time.Duration

	// SMTP settings for password-reset mail; mail is skipped when Host
	// is empty.
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string
}

// Load reads the environment and fills in defaults.
func Load() Config {
	dataRoot := envStr("DATA_ROOT", "/app/data")
	return Config{
		Addr:          envStr("ADDR", ":8000"),
		DataRoot:      dataRoot,
		DBPath:        filepath.Join(dataRoot, "career_ai.db"),
		GeneratedDir:  filepath.Join(dataRoot, "generated_resumes"),
		JWTSecret:     envStr("SECRET_KEY", "supersecret"),
		OpenRouterKey: os.Getenv("OPENROUTER_API_KEY"),
		AnthropicKey:  os.Getenv("ANTHROPIC_API_KEY"),
		AgentWorkers:  envInt("AGENT_WORKERS", 10),
		AgentWait:     envDuration("AGENT_WAIT", 60*time.Second),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      envInt("SMTP_PORT", 587),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPass:      os.Getenv("SMTP_PASS"),
		MailFrom:      envStr("MAIL_FROM", "no-reply@career-navigator.local"),
	}
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
