package config

import (
	"os"
	"strconv"
	"strings"

	"taikai/internal/tourney"
)

type Config struct {
	ReportPassword string

	SpectatorEnabled bool
	SpectatorAddr    string
	SpectatorURL     string

	GeminiAPIKey   string
	AnnouncerModel string

	DiscordToken   string
	DiscordChannel string

	LogPath string
}

// Load reads the session configuration from the environment. Every key has
// a usable default; nothing here is required.
func Load() Config {
	addr := envDefault("TAIKAI_SPECTATOR_ADDR", ":8089")
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}
	return Config{
		ReportPassword:   envDefault("TAIKAI_REPORT_PASSWORD", tourney.DefaultReportPassword),
		SpectatorEnabled: envBoolDefault("TAIKAI_SPECTATOR", true),
		SpectatorAddr:    addr,
		SpectatorURL:     envDefault("TAIKAI_SPECTATOR_URL", "http://localhost"+addr),
		GeminiAPIKey:     strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		AnnouncerModel:   envDefault("TAIKAI_ANNOUNCER_MODEL", "gemini-2.5-flash"),
		DiscordToken:     strings.TrimSpace(os.Getenv("DISCORD_BOT_TOKEN")),
		DiscordChannel:   strings.TrimSpace(os.Getenv("DISCORD_CHANNEL_ID")),
		LogPath:          envDefault("TAIKAI_LOG", "taikai.log"),
	}
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envBoolDefault(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
