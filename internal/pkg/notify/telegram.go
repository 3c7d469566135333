// Package notify pushes agenda digests to a Telegram chat. Entirely
// optional: the service runs fine without a configured bot.
package notify

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Aguus467/angulismotv/internal/pkg/models"
)

// TelegramNotifier announces newly discovered events after each aggregation
// pass. Sends are rate limited to stay under Telegram's per-chat message
// limits.
type TelegramNotifier struct {
	bot             *tgbotapi.BotAPI
	chatID          int64
	minSendInterval time.Duration

	mu       sync.Mutex
	lastSend time.Time
	seen     map[string]struct{}
}

// NewTelegramNotifier creates a notifier. Returns nil when the bot cannot be
// reached so callers can just nil-check and move on.
func NewTelegramNotifier(token string, chatID int64, minSendInterval time.Duration) *TelegramNotifier {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		slog.Error("Failed to create telegram bot", "error", err)
		return nil
	}

	bot.Debug = false

	if _, err := bot.GetMe(); err != nil {
		slog.Error("Failed to get bot info", "error", err)
		return nil
	}

	if minSendInterval <= 0 {
		minSendInterval = 2 * time.Second
	}

	return &TelegramNotifier{
		bot:             bot,
		chatID:          chatID,
		minSendInterval: minSendInterval,
		seen:            make(map[string]struct{}),
	}
}

// NotifyNewEvents sends a digest of events not announced before, keyed by
// team signature. Safe for concurrent use.
func (n *TelegramNotifier) NotifyNewEvents(groups []models.GroupedEvent) {
	if n == nil {
		return
	}

	n.mu.Lock()
	var fresh []models.GroupedEvent
	for _, g := range groups {
		sig := models.TeamSignature(g.Teams)
		if sig == "" {
			continue
		}
		if _, ok := n.seen[sig]; ok {
			continue
		}
		n.seen[sig] = struct{}{}
		fresh = append(fresh, g)
	}
	n.mu.Unlock()

	if len(fresh) == 0 {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 %d new event(s) on the agenda\n\n", len(fresh))
	for _, g := range fresh {
		clock := models.ClockTime(g.StartTime)
		fmt.Fprintf(&b, "• %s  %s", clock, g.Title)
		if g.Competition != "" {
			fmt.Fprintf(&b, " (%s)", g.Competition)
		}
		b.WriteString("\n")
	}

	n.send(b.String())
}

func (n *TelegramNotifier) send(text string) {
	n.mu.Lock()
	if wait := n.minSendInterval - time.Since(n.lastSend); wait > 0 {
		time.Sleep(wait)
	}
	n.lastSend = time.Now()
	n.mu.Unlock()

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		slog.Error("Failed to send telegram message", "error", err)
		return
	}
	slog.Info("Sent agenda digest to telegram")
}
