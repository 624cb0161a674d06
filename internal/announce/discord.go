package announce

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// DiscordNotifier posts round verdicts to a Discord channel. It uses the
// REST surface only; no gateway connection is opened.
type DiscordNotifier struct {
	session *discordgo.Session
	channel string
	log     *slog.Logger
}

func NewDiscordNotifier(token, channelID string, logger *slog.Logger) (*DiscordNotifier, error) {
	if token == "" || channelID == "" {
		return nil, fmt.Errorf("discord token and channel id are required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	return &DiscordNotifier{session: session, channel: channelID, log: logger}, nil
}

// Notify sends the message and drops any error after logging it.
func (n *DiscordNotifier) Notify(message string) {
	if _, err := n.session.ChannelMessageSend(n.channel, message); err != nil {
		n.log.Warn("discord notify failed", "err", err)
	}
}
