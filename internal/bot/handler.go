// Package bot содержит диалоговый автомат: приём обновлений Telegram,
// сведение кнопок к интентам и переходы между состояниями.
package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Karen042009/Arvion-telegram-bot/internal/content"
	"github.com/Karen042009/Arvion-telegram-bot/internal/database"
	"github.com/Karen042009/Arvion-telegram-bot/internal/gemini"
	"github.com/Karen042009/Arvion-telegram-bot/internal/session"
	"github.com/Karen042009/Arvion-telegram-bot/pkg/locales"
	"github.com/Karen042009/Arvion-telegram-bot/pkg/models"
)

// Provider — генеративные операции, которые нужны диспетчеру
type Provider interface {
	Translate(ctx context.Context, text, targetLang, sourceLang string) (*gemini.TranslationResult, error)
	TranslateImage(ctx context.Context, image []byte, mimeType, targetLang string) (*gemini.TranslationResult, error)
	EvaluateTranslation(ctx context.Context, originalText, userTranslation, sourceLang, targetLang string) (string, error)
	FunFact(ctx context.Context, mode, subject, interfaceLang string) (string, error)
	Chat(ctx context.Context, userID int64, userText, persona string) (string, error)
}

// ContentSource — оркестратор учебного материала
type ContentSource interface {
	Request(ctx context.Context, recency content.Recency, req content.Request) (*models.GeneratedItem, error)
}

// Voice — озвучка текста
type Voice interface {
	Synthesize(ctx context.Context, text, lang string) ([]byte, error)
}

// Bot представляет Telegram-бота
type Bot struct {
	api      *tgbotapi.BotAPI
	sender   Sender
	db       *database.DB
	ai       Provider
	content  ContentSource
	voice    Voice
	sessions *session.Manager
	locales  *locales.Table
	intents  *Resolver
	log      *zap.Logger
}

// New создаёт бота поверх Bot API
func New(token string, db *database.DB, ai Provider, src ContentSource, voice Voice, table *locales.Table, log *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания бота: %w", err)
	}
	log.Info("Авторизован в Telegram", zap.String("username", api.Self.UserName))

	b := newBot(newAPISender(api, log), db, ai, src, voice, table, log)
	b.api = api
	return b, nil
}

// newBot собирает бота с произвольным транспортом (для тестов)
func newBot(sender Sender, db *database.DB, ai Provider, src ContentSource, voice Voice, table *locales.Table, log *zap.Logger) *Bot {
	return &Bot{
		sender:   sender,
		db:       db,
		ai:       ai,
		content:  src,
		voice:    voice,
		sessions: session.NewManager(),
		locales:  table,
		intents:  NewResolver(table),
		log:      log,
	}
}

// Start запускает обработку обновлений. Каждое обновление обрабатывается
// в своей горутине; сообщения одного пользователя сериализует мьютекс
// его сессии.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update := <-updates:
			go b.handleUpdate(ctx, update)
		}
	}
}

// turn — контекст обработки одного сообщения
type turn struct {
	ctx     context.Context
	chatID  int64
	profile *models.UserProfile
	i18n    map[string]string
	sess    *session.Session
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	userID := msg.From.ID
	chatID := msg.Chat.ID

	sess := b.sessions.Acquire(userID)
	defer sess.Release()

	profile, err := b.db.GetOrCreateUser(userID)
	if err != nil {
		b.log.Error("Не удалось прочитать профиль пользователя",
			zap.Int64("user_id", userID), zap.Error(err))
		i18n := b.locales.Resolve(locales.DefaultLang)
		b.send(chatID, locales.T("storage_error", i18n), nil)
		return
	}

	t := &turn{
		ctx:     ctx,
		chatID:  chatID,
		profile: profile,
		i18n:    b.locales.Resolve(profile.InterfaceLang),
		sess:    sess,
	}

	if msg.IsCommand() {
		b.handleCommand(t, msg.Command())
		return
	}

	b.dispatch(t, msg)
}

func (b *Bot) handleCommand(t *turn, command string) {
	switch command {
	case "start":
		b.send(t.chatID, locales.T("welcome", t.i18n), nil)
		b.showMainMenu(t)
	case "menu":
		b.showMainMenu(t)
	case "stats":
		b.showStats(t)
	case "fact":
		b.showFact(t)
	case "reset":
		b.resetChatHistory(t)
	default:
		b.send(t.chatID, locales.T("unknown_command", t.i18n), nil)
	}
}

// dispatch разводит сообщение по текущему состоянию автомата.
// Автомат плоский, ветки сгруппированы по workflow.
func (b *Bot) dispatch(t *turn, msg *tgbotapi.Message) {
	switch t.sess.State {
	case models.StateIdle:
		b.handleMainMenu(t, msg.Text)

	case models.StateInSettings:
		b.handleSettingsMenu(t, msg.Text)
	case models.StateAwaitingInterfaceLang,
		models.StateAwaitingNativeLang,
		models.StateAwaitingLearningMode,
		models.StateAwaitingSubject,
		models.StateAwaitingLevel:
		b.handleSettingsInput(t, msg.Text)

	case models.StateInTranslationMode, models.StateAwaitingTTSChoice:
		b.handleTranslatorInput(t, msg)
	case models.StateAwaitingSourceLang, models.StateAwaitingTargetLang:
		b.handleTranslatorLangChoice(t, msg.Text)

	case models.StateInLearningMenu:
		b.handleLearnMenu(t, msg.Text)
	case models.StateAwaitingLearningAnswer:
		b.handleLearningAnswer(t, msg.Text)
	case models.StateAwaitingQuizAnswer:
		b.handleQuizAnswer(t, msg.Text)

	case models.StateInChatMenu:
		b.handleChatMenu(t, msg.Text)
	case models.StateAwaitingRoleplayScenario:
		b.handleRoleplayChoice(t, msg.Text)
	case models.StateInChat, models.StateInRoleplay:
		b.handleChatMessage(t, msg.Text)

	default:
		b.log.Warn("Неизвестное состояние сессии",
			zap.Int64("user_id", t.profile.UserID), zap.String("state", t.sess.State))
		b.showMainMenu(t)
	}
}

// handleMainMenu — состояние idle: выбор workflow
func (b *Bot) handleMainMenu(t *turn, text string) {
	switch b.intents.Resolve(text, GroupGlobal) {
	case IntentTranslate:
		b.enterTranslator(t)
	case IntentLearn:
		b.enterLearnMenu(t)
	case IntentChat:
		b.enterChatMenu(t)
	case IntentSettings:
		b.enterSettings(t)
	case IntentBackToMain:
		b.showMainMenu(t)
	}
	// нераспознанный текст в меню молча игнорируется
}

// send отправляет текст, ошибки транспорта только логируются:
// диалоговое состояние от них не зависит
func (b *Bot) send(chatID int64, text string, keyboard interface{}) int {
	id, err := b.sender.SendText(chatID, text, keyboard)
	if err != nil {
		b.log.Warn("Не удалось отправить сообщение", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	return id
}

// sendPlaceholder показывает «идёт обработка…» и возвращает id для удаления
func (b *Bot) sendPlaceholder(t *turn, key string) int {
	return b.send(t.chatID, locales.T(key, t.i18n), nil)
}

func (b *Bot) deletePlaceholder(t *turn, messageID int) {
	if messageID != 0 {
		b.sender.DeleteMessage(t.chatID, messageID)
	}
}

// bumpStat увеличивает счётчик. Ошибка хранилища не рушит ответ
// пользователю: материал уже сгенерирован и показан.
func (b *Bot) bumpStat(t *turn, stat string) {
	if err := b.db.IncrementUserStat(t.profile.UserID, stat); err != nil {
		b.log.Warn("Не удалось обновить статистику",
			zap.Int64("user_id", t.profile.UserID), zap.String("stat", stat), zap.Error(err))
	}
}
