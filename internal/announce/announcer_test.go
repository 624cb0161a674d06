package announce

import (
	"context"
	"testing"
)

func TestNoopAnswersFallback(t *testing.T) {
	var a Announcer = Noop{}
	got := a.Announce(context.Background(), "第1回戦 オーダー提出")
	if got != FallbackAnnouncement {
		t.Fatalf("got %q want fallback line", got)
	}
}

func TestNewGeneratorRequiresKey(t *testing.T) {
	if _, err := NewGenerator(context.Background(), "", "gemini-2.5-flash", nil); err == nil {
		t.Fatalf("expected error for empty API key")
	}
}

func TestNewDiscordNotifierRequiresConfig(t *testing.T) {
	if _, err := NewDiscordNotifier("", "123", nil); err == nil {
		t.Fatalf("expected error for empty token")
	}
	if _, err := NewDiscordNotifier("token", "", nil); err == nil {
		t.Fatalf("expected error for empty channel")
	}
}
