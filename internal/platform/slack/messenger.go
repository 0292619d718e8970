package slack

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/slack-taskbot/internal/config"
	slackapi "github.com/slack-go/slack"
)

// ErrMissingBotToken is returned by PostMessage when no bot token is configured.
var ErrMissingBotToken = errors.New("slack bot token is not configured")

// Messenger posts messages with chat.postMessage.
type Messenger struct {
	client   *slackapi.Client
	hasToken bool
	logger   *slog.Logger
}

// NewMessenger creates a Messenger from the Slack configuration. A missing
// bot token does not fail construction; it fails each delivery instead.
func NewMessenger(cfg config.SlackConfig, logger *slog.Logger) *Messenger {
	if logger == nil {
		logger = slog.Default()
	}

	apiURL := cfg.APIURL
	if apiURL != "" && !strings.HasSuffix(apiURL, "/") {
		apiURL += "/"
	}

	opts := []slackapi.Option{
		slackapi.OptionHTTPClient(&http.Client{Timeout: cfg.Timeout()}),
	}
	if apiURL != "" {
		opts = append(opts, slackapi.OptionAPIURL(apiURL))
	}

	return &Messenger{
		client:   slackapi.New(cfg.BotToken, opts...),
		hasToken: cfg.BotToken != "",
		logger:   logger.With(slog.String("component", "slack_messenger")),
	}
}

// PostMessage sends text to channel. The call is bound to ctx so shutdown
// cancels it.
func (m *Messenger) PostMessage(ctx context.Context, channel, text string) error {
	if !m.hasToken {
		return ErrMissingBotToken
	}

	respChannel, ts, err := m.client.PostMessageContext(ctx, channel, slackapi.MsgOptionText(text, false))
	if err != nil {
		return fmt.Errorf("chat.postMessage to %s failed: %w", channel, err)
	}

	m.logger.DebugContext(ctx, "message posted",
		slog.String("channel_id", respChannel),
		slog.String("ts", ts))
	return nil
}
