package alerts

import (
	"context"
	"fmt"
	"strings"

	"release-sync/core/reconcile"

	"gopkg.in/telebot.v3"
)

// maxMessageLength is the Telegram limit for a text message.
const maxMessageLength = 4096

// Sender is the subset of *telebot.Bot used by Telegram.
type Sender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// Telegram posts entries to a chat.
type Telegram struct {
	sender Sender
	chat   *telebot.Chat
}

// NewTelegram creates a Telegram sink backed by a bot with token.
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := telebot.NewBot(telebot.Settings{Token: token, Offline: true})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return NewTelegramWithSender(bot, chatID), nil
}

// NewTelegramWithSender creates a Telegram sink using sender.
func NewTelegramWithSender(sender Sender, chatID int64) *Telegram {
	return &Telegram{sender: sender, chat: &telebot.Chat{ID: chatID}}
}

// Notify sends the entries, split into as many messages as the size limit needs.
func (t *Telegram) Notify(ctx context.Context, entries []reconcile.Unmatched) error {
	if len(entries) == 0 {
		return nil
	}
	for _, msg := range messages("Versions not included in any release cycle:", Lines(entries)) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := t.sender.Send(t.chat, msg, &telebot.SendOptions{ParseMode: telebot.ModeDefault, DisableWebPagePreview: true}); err != nil {
			return fmt.Errorf("failed to send telegram alert: %w", err)
		}
	}
	return nil
}

func messages(header string, lines []string) []string {
	var out []string
	var b strings.Builder
	b.WriteString(header)
	for _, line := range lines {
		if b.Len()+1+len(line) > maxMessageLength {
			out = append(out, b.String())
			b.Reset()
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	return append(out, b.String())
}
