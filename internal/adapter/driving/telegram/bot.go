// Package telegram is the driving adapter that receives bot commands from
// Telegram and sends back the router's replies.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ericfisherdev/budgetbot/internal/application"
	"github.com/ericfisherdev/budgetbot/internal/domain/model"
)

// ErrUpdatesClosed is returned by Run when the update stream ends before the
// context is canceled.
var ErrUpdatesClosed = errors.New("telegram update channel closed")

// maxMessageLength is the Bot API limit on sendMessage text, in characters.
const maxMessageLength = 4096

const truncatedSuffix = "\n..."

// API is the subset of *tgbotapi.BotAPI used by Bot.
type API interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	StopReceivingUpdates()
}

// Dispatcher turns a command into reply text.
type Dispatcher interface {
	Dispatch(ctx context.Context, cmd model.Command) string
	Commands() []application.CommandInfo
}

// Bot long-polls Telegram and answers every message with exactly one reply.
type Bot struct {
	api         API
	dispatcher  Dispatcher
	pollTimeout time.Duration
	logger      *slog.Logger
}

// NewAPI authenticates with the Bot API using token.
func NewAPI(token string) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect to telegram: %w", err)
	}
	return api, nil
}

// NewBot creates a Bot. pollTimeout is the long-poll duration sent to getUpdates.
func NewBot(api API, dispatcher Dispatcher, pollTimeout time.Duration, logger *slog.Logger) *Bot {
	return &Bot{
		api:         api,
		dispatcher:  dispatcher,
		pollTimeout: pollTimeout,
		logger:      logger,
	}
}

// Run registers the command menu, then handles updates one at a time until
// ctx is canceled.
func (b *Bot) Run(ctx context.Context) error {
	b.registerCommands()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = int(b.pollTimeout / time.Second)
	u.AllowedUpdates = []string{"message"}

	updates := b.api.GetUpdatesChan(u)
	b.logger.Info("telegram polling started", "poll_timeout", b.pollTimeout)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("telegram polling stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return ErrUpdatesClosed
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return
	}

	cmd := toCommand(msg)
	reply := b.dispatcher.Dispatch(ctx, cmd)
	if fitted, cut := fitMessage(reply); cut {
		b.logger.Warn("reply truncated to message limit",
			"chat_id", cmd.ChatID,
			"command", cmd.Name,
			"length", len([]rune(reply)),
		)
		reply = fitted
	}

	if _, err := b.api.Send(tgbotapi.NewMessage(cmd.ChatID, reply)); err != nil {
		b.logger.Error("failed to send reply",
			"chat_id", cmd.ChatID,
			"command", cmd.Name,
			"update_id", update.UpdateID,
			"error", err,
		)
	}
}

// fitMessage shortens text to maxMessageLength characters, cutting at the
// last full line that fits. It reports whether text was shortened.
func fitMessage(text string) (string, bool) {
	runes := []rune(text)
	if len(runes) <= maxMessageLength {
		return text, false
	}

	kept := string(runes[:maxMessageLength-len([]rune(truncatedSuffix))])
	if i := strings.LastIndexByte(kept, '\n'); i > 0 {
		kept = kept[:i]
	}
	return kept + truncatedSuffix, true
}

// toCommand strips any @botname suffix from the command, lowercases it and
// splits its arguments on whitespace.
func toCommand(msg *tgbotapi.Message) model.Command {
	cmd := model.Command{ChatID: msg.Chat.ID, Text: msg.Text}
	if msg.IsCommand() {
		cmd.Name = strings.ToLower(msg.Command())
		cmd.Args = strings.Fields(msg.CommandArguments())
	}
	return cmd
}

func (b *Bot) registerCommands() {
	infos := b.dispatcher.Commands()
	commands := make([]tgbotapi.BotCommand, 0, len(infos))
	for _, info := range infos {
		commands = append(commands, tgbotapi.BotCommand{Command: info.Name, Description: info.Description})
	}

	if _, err := b.api.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		b.logger.Warn("failed to register command menu", "error", err)
		return
	}
	b.logger.Debug("registered command menu", "commands", len(commands))
}
