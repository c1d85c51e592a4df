package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/sethvargo/go-envconfig"
	log "github.com/sirupsen/logrus"
)

type (
	Config struct {
		TelegramAPIToken string   `env:"TOKEN,required"`
		BotName          string   `env:"BOT_NAME"`
		DefaultLanguage  string   `env:"LANG,default=en"`
		EnabledHandlers  []string `env:"HANDLERS,default=game"`
		LogLevel         int      `env:"LOG_LEVEL,default=4"`
		DotPath          string   `env:"DOT_PATH,default=~/.guessbot"`
		Store            string   `env:"STORE,default=sqlite"`
		LLM              LLM
		Oracle           Oracle
		Queue            Queue
		Observability    Observability
	}

	LLM struct {
		APIKey      string `env:"LLM_API_KEY,required"`
		BaseURL     string `env:"LLM_API_URL,default=https://api.openai.com/v1"`
		ImageModel  string `env:"IMAGE_MODEL,default=dall-e-3"`
		ImageSize   string `env:"IMAGE_SIZE,default=1024x1024"`
		ImagePrompt string `env:"IMAGE_PROMPT,default=An illustration of {{ .word }} without any text or letters"`
	}

	Oracle struct {
		Embedder       string `env:"EMBEDDER,default=openai"`
		EmbeddingModel string `env:"EMBEDDING_MODEL"`
		GeminiAPIKey   string `env:"GEMINI_API_KEY"`
		LocalModelsDir string `env:"LOCAL_MODELS_DIR,default=models"`
		LocalModel     string `env:"LOCAL_MODEL,default=sentence-transformers/all-MiniLM-L6-v2"`
		VocabularyFile string `env:"VOCABULARY_FILE"`
		CacheSize      int    `env:"EMBEDDING_CACHE_SIZE,default=4096"`
	}

	Queue struct {
		MaxSize int           `env:"QUEUE_MAX_SIZE,default=10"`
		Delay   time.Duration `env:"QUEUE_DELAY,default=60s"`
	}

	Observability struct {
		MetricsAddr string `env:"METRICS_ADDR,default=:2112"`
		OTelEnabled bool   `env:"OTEL_ENABLED,default=false"`
	}
)

var (
	once         sync.Once
	globalConfig = &Config{}
	globalErr    error
)

func Load() (Config, error) {
	once.Do(func() {
		cfg := &Config{}
		envcfg := envconfig.Config{
			Lookuper: envconfig.PrefixLookuper("GB_", envconfig.OsLookuper()),
			Target:   cfg,
		}
		if err := envconfig.ProcessWith(context.Background(), &envcfg); err != nil {
			globalErr = fmt.Errorf("process env config: %w", err)
			return
		}
		if err := cfg.validate(); err != nil {
			globalErr = err
			return
		}
		home, err := os.UserHomeDir()
		if err != nil {
			globalErr = fmt.Errorf("get user home directory: %w", err)
			return
		}
		cfg.DotPath = strings.Replace(cfg.DotPath, "~", home, 1)
		log.Traceln("loaded config")
		globalConfig = cfg
	})
	return *globalConfig, globalErr
}

func (c *Config) validate() error {
	if c.Queue.MaxSize < 1 {
		return fmt.Errorf("queue max size must be positive, got %d", c.Queue.MaxSize)
	}
	if c.Queue.Delay < 0 {
		return fmt.Errorf("queue delay must not be negative, got %s", c.Queue.Delay)
	}
	switch c.Store {
	case "sqlite", "memory":
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	switch c.Oracle.Embedder {
	case "openai", "local":
	case "gemini":
		if c.Oracle.GeminiAPIKey == "" {
			return fmt.Errorf("gemini embedder requires GB_GEMINI_API_KEY")
		}
	default:
		return fmt.Errorf("unknown embedder %q", c.Oracle.Embedder)
	}
	return nil
}
