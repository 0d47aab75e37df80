// Package config resolves the runtime configuration once at startup. The
// resulting Config is passed to whoever needs it — nothing reads shared
// process state after boot.
package config

import (
	"bufio"
	"os"
	"strings"
	"time"
)

// Placeholder values shipped in .env.example; they count as "not configured".
const (
	placeholderURL = "postgres://postgres@your-project.example.com:5432/postgres"
	placeholderKey = "your-access-key"
)

type Config struct {
	Port   string
	AppEnv string

	// Remote store connection; both must be real values or the process
	// runs on the mock store.
	RemoteDBURL string
	RemoteDBKey string

	JWTSecret []byte
	ChefPIN   string

	MockLatency  time.Duration
	FeedInterval time.Duration

	// Generative advisor endpoint; empty means the advisor always falls
	// back to the static reply.
	AIEndpoint string
	AIKey      string
}

// Load reads the environment, merging a .env file first when one exists.
func Load() Config {
	mergeDotEnv(".env")

	return Config{
		Port:         getEnv("PORT", "8080"),
		AppEnv:       getEnv("APP_ENV", "local"),
		RemoteDBURL:  getEnv("REMOTE_DB_URL", ""),
		RemoteDBKey:  getEnv("REMOTE_DB_KEY", ""),
		JWTSecret:    []byte(getEnv("JWT_SECRET", "self_order_super_secret_2024")),
		ChefPIN:      getEnv("CHEF_PIN", "1234"),
		MockLatency:  getDuration("MOCK_LATENCY", 300*time.Millisecond),
		FeedInterval: getDuration("FEED_INTERVAL", 5*time.Second),
		AIEndpoint:   getEnv("AI_ENDPOINT", "https://generativelanguage.googleapis.com/v1beta"),
		AIKey:        getEnv("AI_API_KEY", ""),
	}
}

// RemoteConfigured reports whether both remote connection parameters carry
// real values. Absent or placeholder values deterministically mean mock.
func (c Config) RemoteConfigured() bool {
	return c.RemoteDBURL != "" && c.RemoteDBKey != "" &&
		c.RemoteDBURL != placeholderURL && c.RemoteDBKey != placeholderKey
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

// mergeDotEnv loads KEY=VALUE lines into the environment without overriding
// variables that are already set.
func mergeDotEnv(path string) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		value := strings.Trim(strings.TrimSpace(line[idx+1:]), `"'`)
		if key == "" || os.Getenv(key) != "" {
			continue
		}
		os.Setenv(key, value)
	}
}
