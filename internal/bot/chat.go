package bot

import (
	"go.uber.org/zap"

	"github.com/Karen042009/Arvion-telegram-bot/internal/config"
	"github.com/Karen042009/Arvion-telegram-bot/pkg/locales"
	"github.com/Karen042009/Arvion-telegram-bot/pkg/models"
)

// enterChatMenu открывает выбор режима общения
func (b *Bot) enterChatMenu(t *turn) {
	t.sess.State = models.StateInChatMenu
	b.send(t.chatID, locales.T("select_chat_mode", t.i18n), chatModeKeyboard(t.i18n))
}

// handleChatMenu — состояние in_chat_menu
func (b *Bot) handleChatMenu(t *turn, text string) {
	switch b.intents.Resolve(text, GroupChat) {
	case IntentChatRegular:
		t.sess.Chat().Persona = ""
		t.sess.State = models.StateInChat
		b.send(t.chatID, locales.T("chat_prompt", t.i18n), chatKeyboard(t.i18n))
	case IntentChatRoleplay:
		t.sess.State = models.StateAwaitingRoleplayScenario
		b.send(t.chatID, locales.T("select_roleplay_scenario", t.i18n), roleplayKeyboard(t.i18n))
	case IntentBackToMain:
		b.showMainMenu(t)
	case IntentBackToChatModes:
		b.enterChatMenu(t)
	}
}

// handleRoleplayChoice — выбор сценария. Персона говорит на изучаемом
// языке пользователя.
func (b *Bot) handleRoleplayChoice(t *turn, text string) {
	var personaKey string
	switch b.intents.Resolve(text, GroupChat) {
	case IntentRoleplayCafe:
		personaKey = "persona_cafe"
	case IntentRoleplayHotel:
		personaKey = "persona_hotel"
	case IntentRoleplayJob:
		personaKey = "persona_job_interview"
	case IntentBackToChatModes:
		b.enterChatMenu(t)
		return
	case IntentBackToMain:
		b.showMainMenu(t)
		return
	default:
		return
	}

	lang := config.SupportedLanguages[t.profile.LearningLang].GeminiName
	t.sess.Chat().Persona = locales.T(personaKey, t.i18n, "lang", lang)
	t.sess.State = models.StateInRoleplay
	b.send(t.chatID, locales.T("roleplay_started", t.i18n), chatKeyboard(t.i18n))
}

// handleChatMessage — реплика в свободном чате или ролевой игре
func (b *Bot) handleChatMessage(t *turn, text string) {
	switch b.intents.Resolve(text, GroupChat) {
	case IntentBackToChatModes:
		b.enterChatMenu(t)
		return
	case IntentBackToMain:
		b.showMainMenu(t)
		return
	}
	if text == "" {
		return
	}

	placeholder := b.sendPlaceholder(t, "chat_thinking")
	answer, err := b.ai.Chat(t.ctx, t.profile.UserID, text, t.sess.Chat().Persona)
	b.deletePlaceholder(t, placeholder)
	if err != nil {
		b.log.Warn("Ответ в чате не удался", zap.Int64("user_id", t.profile.UserID), zap.Error(err))
		b.send(t.chatID, locales.T("generation_error", t.i18n), nil)
		return
	}
	b.send(t.chatID, answer, nil)
}
