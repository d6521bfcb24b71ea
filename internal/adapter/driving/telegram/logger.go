package telegram

import (
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// slogBridge routes the library's Printf-style logging into slog at debug level.
type slogBridge struct {
	logger *slog.Logger
}

func (s slogBridge) Println(v ...any) {
	s.logger.Debug(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

func (s slogBridge) Printf(format string, v ...any) {
	s.logger.Debug(fmt.Sprintf(format, v...))
}

// UseLogger installs logger as the library-wide logger for tgbotapi.
func UseLogger(logger *slog.Logger) error {
	return tgbotapi.SetLogger(slogBridge{logger: logger.With("component", "tgbotapi")})
}
