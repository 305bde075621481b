package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/betoborelli9/beto-bot/internal/api"
	"github.com/betoborelli9/beto-bot/internal/interfaces"
)

const baseURL = "https://api.telegram.org"

// Notifier sends Markdown messages to a Telegram chat via the Bot API.
type Notifier struct {
	token  string
	chatID string
	client *api.Client
}

var _ interfaces.Notifier = (*Notifier)(nil)

func New(token, chatID string) *Notifier {
	return newWithBaseURL(token, chatID, baseURL)
}

func newWithBaseURL(token, chatID, base string) *Notifier {
	return &Notifier{
		token:  token,
		chatID: chatID,
		client: api.NewClient(
			api.WithBaseURL(base),
			api.WithTimeout(10*time.Second),
		),
	}
}

func (n *Notifier) Send(ctx context.Context, text string) error {
	payload := map[string]string{
		"chat_id":    n.chatID,
		"text":       text,
		"parse_mode": "Markdown",
	}

	resp, err := n.client.PostJSON(ctx, "/bot"+n.token+"/sendMessage", payload, nil)
	if err != nil {
		return fmt.Errorf("telegram sendMessage: %w", err)
	}

	var result struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := resp.Decode(&result); err != nil {
		return fmt.Errorf("parse telegram response: %w", err)
	}
	if !result.OK {
		return fmt.Errorf("telegram sendMessage rejected: %s", result.Description)
	}
	return nil
}
