package bot

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Karen042009/Arvion-telegram-bot/internal/config"
	"github.com/Karen042009/Arvion-telegram-bot/internal/gemini"
	"github.com/Karen042009/Arvion-telegram-bot/pkg/locales"
	"github.com/Karen042009/Arvion-telegram-bot/pkg/models"
)

// showMainMenu возвращает пользователя в главное меню. Возврат в idle
// сбрасывает данные workflow и окно недавних, профиль не трогается.
func (b *Bot) showMainMenu(t *turn) {
	t.sess.State = models.StateIdle
	t.sess.Clear()
	b.send(t.chatID, locales.T("main_menu_text", t.i18n), mainMenuKeyboard(t.i18n))
}

// showStats показывает счётчики и дневной стрик. Возврат в idle —
// как и любой другой: данные workflow и окно недавних сбрасываются.
func (b *Bot) showStats(t *turn) {
	t.sess.State = models.StateIdle
	t.sess.Clear()

	p := t.profile
	text := locales.T("stats_header", t.i18n) +
		locales.T("stats_body", t.i18n,
			"translations", strconv.Itoa(p.TranslationsCount),
			"concepts", strconv.Itoa(p.WordsLearnedCount),
			"quizzes", strconv.Itoa(p.QuizzesPassedCount),
			"facts", strconv.Itoa(p.FactsRequested),
		)
	if p.StreakCount > 0 {
		text += locales.T("streak_text", t.i18n, "count", strconv.Itoa(p.StreakCount))
	}
	b.send(t.chatID, text, mainMenuKeyboard(t.i18n))
}

// showFact генерирует факт о предмете изучения
func (b *Bot) showFact(t *turn) {
	subject := activeSubject(t.profile)
	placeholder := b.sendPlaceholder(t, "chat_thinking")

	fact, err := b.ai.FunFact(t.ctx, t.profile.LearningMode, subject, interfaceLangName(t.profile))
	b.deletePlaceholder(t, placeholder)
	if err != nil {
		b.log.Warn("Не удалось сгенерировать факт",
			zap.Int64("user_id", t.profile.UserID), zap.Error(err))
		b.send(t.chatID, locales.T("generation_error", t.i18n), nil)
		return
	}

	b.bumpStat(t, "facts_requested_count")
	b.send(t.chatID, locales.T("fun_fact_text", t.i18n, "subject", subject, "fact", fact), nil)
}

// resetChatHistory очищает сохранённую историю диалога с ИИ
func (b *Bot) resetChatHistory(t *turn) {
	if err := b.db.ClearChatHistory(t.profile.UserID); err != nil {
		b.log.Error("Не удалось очистить историю чата",
			zap.Int64("user_id", t.profile.UserID), zap.Error(err))
		b.send(t.chatID, locales.T("storage_error", t.i18n), nil)
		return
	}
	b.send(t.chatID, locales.T("chat_history_cleared", t.i18n), nil)
}

// langContext собирает языковой контекст профиля для промптов
func langContext(p *models.UserProfile) gemini.LangInfo {
	return gemini.LangInfo{
		Native:            config.SupportedLanguages[p.NativeLang].GeminiName,
		Learning:          config.SupportedLanguages[p.LearningLang].GeminiName,
		Programming:       config.SupportedProgrammingLanguages[p.ProgrammingLang].DisplayName,
		InterfaceLangName: interfaceLangName(p),
	}
}

func interfaceLangName(p *models.UserProfile) string {
	return config.SupportedLanguages[p.InterfaceLang].GeminiName
}

// activeSubject — предмет изучения, выбранный режимом
func activeSubject(p *models.UserProfile) string {
	if p.LearningMode == models.ModeProgramming {
		return config.SupportedProgrammingLanguages[p.ProgrammingLang].DisplayName
	}
	return config.SupportedLanguages[p.LearningLang].GeminiName
}

// activeLevel — отображаемый уровень для активного режима
func activeLevel(p *models.UserProfile) string {
	if p.LearningMode == models.ModeProgramming {
		return config.ProgrammingLevels[p.ProgrammingLevel]
	}
	return config.LearningLevels[p.LearningLevel]
}

// displayLang — имя языка для пользователя по коду; "auto" рисуется
// локализованной кнопкой автоопределения
func displayLang(code string, i18n map[string]string) string {
	if code == "auto" {
		return locales.T("auto_detect", i18n)
	}
	return config.SupportedLanguages[code].DisplayName
}

// codeByGeminiName находит код языка по имени, которым его называет
// провайдер (для озвучки определённого языка)
func codeByGeminiName(name string) (string, bool) {
	for code, lang := range config.SupportedLanguages {
		if strings.EqualFold(lang.GeminiName, strings.TrimSpace(name)) {
			return code, true
		}
	}
	return "", false
}
