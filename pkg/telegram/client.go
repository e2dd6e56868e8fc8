package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"golang-investment-alert/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier delivers an alert message to the configured recipients.
type Notifier interface {
	SendMessage(text string) error
}

// sender is the part of the bot API the client uses, extracted so
// delivery failures can be simulated in tests.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// client fans a message out to every configured chat.
type client struct {
	bot     sender
	chatIDs []int64
	log     *logger.Logger
}

// NewClient creates a Telegram notifier. When no token or no chat IDs
// are configured it returns a console notifier that prints the message
// instead; that is a supported mode, not an error.
func NewClient(botToken string, chatIDs []int64, log *logger.Logger) (Notifier, error) {
	if botToken == "" || len(chatIDs) == 0 {
		log.Info("Telegram not configured, messages will be printed to the console")
		return &consoleNotifier{}, nil
	}

	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &client{
		bot:     bot,
		chatIDs: chatIDs,
		log:     log,
	}, nil
}

// SendMessage sends the text to every configured chat. A failure for
// one chat is logged and does not stop delivery to the rest; the last
// error is returned.
func (c *client) SendMessage(text string) error {
	var lastErr error
	for _, chatID := range c.chatIDs {
		msg := tgbotapi.NewMessage(chatID, text)
		if _, err := c.bot.Send(msg); err != nil {
			c.log.Error("Failed to send Telegram message",
				logger.ErrorField(err),
				logger.Int64Field("chat_id", chatID),
			)
			lastErr = err
		}
	}
	return lastErr
}

type consoleNotifier struct{}

func (n *consoleNotifier) SendMessage(text string) error {
	fmt.Println(text)
	return nil
}

// ParseChatIDs parses a comma-separated chat ID list. Entries that are
// not valid integers are logged and skipped.
func ParseChatIDs(raw string, log *logger.Logger) []int64 {
	var chatIDs []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		chatID, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			log.Warn("Skipping invalid chat ID", logger.StringField("chat_id", part))
			continue
		}
		chatIDs = append(chatIDs, chatID)
	}
	return chatIDs
}
