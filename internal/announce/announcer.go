// Package announce produces the ceremonial flavor text shown between steps
// and broadcasts round verdicts. Everything here is best effort: failures
// fall back to fixed lines and never gate progression.
package announce

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"
)

const generateTimeout = 8 * time.Second

// FallbackAnnouncement is used whenever generation is unavailable or fails.
const FallbackAnnouncement = "静かに駒音の響く会場。全力を尽くし、良い将棋を指しましょう。"

// Announcer turns a short context line describing the current transition
// into a one-sentence ceremonial announcement.
type Announcer interface {
	Announce(ctx context.Context, moment string) string
}

// Noop always answers with the fallback line.
type Noop struct{}

func (Noop) Announce(context.Context, string) string {
	return FallbackAnnouncement
}

// Generator produces announcements with the Gemini API.
type Generator struct {
	client *genai.Client
	model  string
	log    *slog.Logger
}

func NewGenerator(ctx context.Context, apiKey, model string, logger *slog.Logger) (*Generator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("announcer API key is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Generator{client: client, model: model, log: logger}, nil
}

// Announce asks the model for one short line. Any failure, empty answer, or
// timeout yields the fixed fallback; errors are logged and swallowed.
func (g *Generator) Announce(ctx context.Context, moment string) string {
	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	prompt := "あなたは将棋団体戦の司会です。次の場面にふさわしい、格調高い一文のアナウンスを日本語で返してください。" +
		"前置きや引用符は不要です。場面: " + moment
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		g.log.Warn("announcement generation failed", "err", err)
		return FallbackAnnouncement
	}
	text := strings.TrimSpace(result.Text())
	if text == "" {
		return FallbackAnnouncement
	}
	return text
}
