package bot

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/dayoon/recruit-bot/internal/models"
	"github.com/dayoon/recruit-bot/internal/router"
)

// Bot is the Telegram transport over the same assistant core the HTTP
// endpoint uses. The chat ID doubles as the session identifier.
type Bot struct {
	api    *tgbotapi.BotAPI
	router *router.Router
	logger *zap.Logger
}

func New(token string, router *router.Router, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &Bot{
		api:    api,
		router: router,
		logger: logger,
	}, nil
}

func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil {
			continue
		}

		go b.handleMessage(update.Message)
	}

	return nil
}

func (b *Bot) handleMessage(message *tgbotapi.Message) {
	if message.IsCommand() {
		b.handleCommand(message)
		return
	}

	resp := b.router.Route(context.Background(), models.ChatRequest{
		Message:   message.Text,
		SessionID: strconv.FormatInt(message.Chat.ID, 10),
	})

	b.logger.Info("Routed message",
		zap.Int64("chat_id", message.Chat.ID),
		zap.String("intent", string(resp.Intent)),
		zap.Float64("confidence", resp.Confidence))

	b.sendMessage(message.Chat.ID, resp.Response)
}

func (b *Bot) handleCommand(message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		b.handleStart(message)
	case "help":
		b.handleHelp(message)
	default:
		b.sendMessage(message.Chat.ID, "알 수 없는 명령입니다. /help 를 입력해 보세요.")
	}
}

func (b *Bot) handleStart(message *tgbotapi.Message) {
	welcome := `안녕하세요! HR 채용 어시스턴트입니다.

채용 공고 초안 작성, 지원자 조회, 간단한 계산을 도와드립니다.
그냥 메시지를 보내시면 됩니다. /help 로 자세한 안내를 볼 수 있습니다.`

	b.sendMessage(message.Chat.ID, welcome)
}

func (b *Bot) handleHelp(message *tgbotapi.Message) {
	help := `사용 방법:
- 채용 공고 내용을 길게 적어 보내면 초안을 만들어 드립니다.
- "개발팀 지원자 조회" 처럼 물어보면 지원자 현황을 알려 드립니다.
- "연봉 4000만원 3명 인건비 계산" 같은 계산도 가능합니다.
- 그 외의 질문은 자유롭게 대화하듯 보내 주세요.`

	b.sendMessage(message.Chat.ID, help)
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}
