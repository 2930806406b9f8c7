package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go-mod.ewintr.nl/vid2blog/fetch"
	"go-mod.ewintr.nl/vid2blog/process"
)

type Config struct {
	Port            int
	OpenAIKey       string
	OpenAIBaseURL   string
	OpenAIModel     string
	YoutubeKey      string
	TranscriptLang  string
	PlayerURL       string
	OEmbedURL       string
	UpstreamTimeout time.Duration
	AllowedOrigins  []string
}

// Load reads an optional .env file and then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getParam("API_PORT", "8080"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid port: %w", err)
	}
	timeout, err := time.ParseDuration(getParam("UPSTREAM_TIMEOUT", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid upstream timeout: %w", err)
	}

	return Config{
		Port:            port,
		OpenAIKey:       getParam("OPENAI_API_KEY", ""),
		OpenAIBaseURL:   getParam("OPENAI_BASE_URL", process.DefaultOpenAIBaseURL),
		OpenAIModel:     getParam("OPENAI_MODEL", process.DefaultOpenAIModel),
		YoutubeKey:      getParam("YOUTUBE_API_KEY", ""),
		TranscriptLang:  getParam("TRANSCRIPT_LANG", "en"),
		PlayerURL:       getParam("YOUTUBE_PLAYER_URL", fetch.DefaultPlayerURL),
		OEmbedURL:       getParam("OEMBED_URL", fetch.DefaultOEmbedURL),
		UpstreamTimeout: timeout,
		AllowedOrigins:  splitList(getParam("CORS_ORIGINS", "*")),
	}, nil
}

// Validate only checks what makes the service unusable. A missing YouTube
// key disables the Data API sources.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.OpenAIKey == "" {
		return errors.New("OPENAI_API_KEY is not set")
	}
	if c.UpstreamTimeout <= 0 {
		return errors.New("upstream timeout must be positive")
	}

	return nil
}

func getParam(param, def string) string {
	if val, ok := os.LookupEnv(param); ok {
		return val
	}
	return def
}

func splitList(s string) []string {
	var res []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			res = append(res, item)
		}
	}

	return res
}
