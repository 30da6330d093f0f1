// Package config handles service configuration: YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type GeminiConfig struct {
	Model   string   `yaml:"model"`
	APIKeys []string `yaml:"api_keys"`
}

type EngineConfig struct {
	Kind           string       `yaml:"kind"` // heuristic | remote | gemini
	BaseURL        string       `yaml:"base_url"`
	TimeoutSeconds int          `yaml:"timeout_seconds"`
	TokenBudget    int          `yaml:"token_budget"`
	Gemini         GeminiConfig `yaml:"gemini"`
}

type RedisConfig struct {
	Addr       string `yaml:"addr"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	TTLMinutes int    `yaml:"ttl_minutes"`
}

type CacheConfig struct {
	Backend      string      `yaml:"backend"` // memory | redis
	MaxEntries   int         `yaml:"max_entries"`
	MaxCostBytes int         `yaml:"max_cost_bytes"`
	Redis        RedisConfig `yaml:"redis"`
}

type PipelineConfig struct {
	MaxRetries               int     `yaml:"max_retries"`
	RetryBaseSeconds         int     `yaml:"retry_base_seconds"`
	MergeSimilarityThreshold float64 `yaml:"merge_similarity_threshold"`
}

type ExtractConfig struct {
	MinConfidence       float64 `yaml:"min_confidence"`
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	MaxTasks            int     `yaml:"max_tasks"`
	MaxReminders        int     `yaml:"max_reminders"`
	MaxTitles           int     `yaml:"max_titles"`
}

type ResourceConfig struct {
	Adaptive    bool `yaml:"adaptive"`
	PollSeconds int  `yaml:"poll_seconds"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
	Engine   EngineConfig   `yaml:"engine"`
	Cache    CacheConfig    `yaml:"cache"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Extract  ExtractConfig  `yaml:"extract"`
	Resource ResourceConfig `yaml:"resource"`
}

// Load reads path (or $CONFIG_PATH, or "config.yaml"), applies environment
// overrides, and validates. A missing file is not an error; env and
// defaults still apply.
func Load(path string) (*Config, error) {
	if path == "" {
		path = getEnv("CONFIG_PATH", "config.yaml")
	}

	var cfg Config
	if f, err := os.Open(path); err == nil {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	overrideFromEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate applies defaults and rejects inconsistent settings.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8000"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Engine.Kind == "" {
		c.Engine.Kind = "heuristic"
	}
	switch c.Engine.Kind {
	case "heuristic":
	case "remote":
		if c.Engine.BaseURL == "" {
			return fmt.Errorf("engine.base_url is required for the remote engine")
		}
	case "gemini":
		if len(c.Engine.Gemini.APIKeys) == 0 {
			return fmt.Errorf("engine.gemini.api_keys is required for the gemini engine")
		}
	default:
		return fmt.Errorf("unknown engine kind %q", c.Engine.Kind)
	}

	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
	if c.Cache.Backend != "memory" && c.Cache.Backend != "redis" {
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("cache.redis.addr is required for the redis backend")
	}
	return nil
}

func overrideFromEnv(cfg *Config) {
	cfg.Server.Addr = getEnv("HTTP_ADDR", cfg.Server.Addr)
	cfg.Logging.Level = getEnv("LOG_LEVEL", cfg.Logging.Level)
	cfg.Engine.Kind = getEnv("ENGINE_KIND", cfg.Engine.Kind)
	cfg.Engine.BaseURL = getEnv("ENGINE_BASE_URL", cfg.Engine.BaseURL)
	cfg.Engine.TokenBudget = getEnvInt("ENGINE_TOKEN_BUDGET", cfg.Engine.TokenBudget)
	cfg.Engine.Gemini.Model = getEnv("GEMINI_MODEL", cfg.Engine.Gemini.Model)
	if keys := getEnvList("GEMINI_API_KEYS", nil); keys != nil {
		cfg.Engine.Gemini.APIKeys = keys
	}
	cfg.Cache.Backend = getEnv("CACHE_BACKEND", cfg.Cache.Backend)
	cfg.Cache.Redis.Addr = getEnv("REDIS_ADDR", cfg.Cache.Redis.Addr)
	cfg.Cache.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Cache.Redis.Password)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if t := strings.TrimSpace(p); t != "" {
				result = append(result, t)
			}
		}
		return result
	}
	return def
}
