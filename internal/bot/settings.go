package bot

import (
	"strings"

	"go.uber.org/zap"

	"github.com/Karen042009/Arvion-telegram-bot/internal/config"
	"github.com/Karen042009/Arvion-telegram-bot/pkg/locales"
	"github.com/Karen042009/Arvion-telegram-bot/pkg/models"
)

// enterSettings показывает меню настроек с текущими значениями
func (b *Bot) enterSettings(t *turn) {
	t.sess.State = models.StateInSettings

	p := t.profile
	mode := locales.T("mode_human", t.i18n)
	if p.LearningMode == models.ModeProgramming {
		mode = locales.T("mode_programming", t.i18n)
	}

	lines := []string{
		locales.T("settings_header", t.i18n),
		"",
		locales.T("interface_lang_button", t.i18n) + ": " + displayLang(p.InterfaceLang, t.i18n),
		locales.T("native_lang_button", t.i18n) + ": " + displayLang(p.NativeLang, t.i18n),
		locales.T("learning_mode_button", t.i18n) + ": " + mode,
		locales.T("learning_lang_button", t.i18n) + ": " + activeSubject(p),
		locales.T("level_button", t.i18n) + ": " + activeLevel(p),
	}
	b.send(t.chatID, strings.Join(lines, "\n"), settingsKeyboard(t.i18n))
}

// handleSettingsMenu — состояние in_settings: выбор настройки
func (b *Bot) handleSettingsMenu(t *turn, text string) {
	switch b.intents.Resolve(text, GroupSettings) {
	case IntentInterfaceLang:
		t.sess.State = models.StateAwaitingInterfaceLang
		b.send(t.chatID, locales.T("select_interface_lang", t.i18n),
			languageKeyboard(t.i18n, false, "back_to_settings_menu"))
	case IntentNativeLang:
		t.sess.State = models.StateAwaitingNativeLang
		b.send(t.chatID, locales.T("select_native_lang", t.i18n),
			languageKeyboard(t.i18n, false, "back_to_settings_menu"))
	case IntentLearningMode:
		t.sess.State = models.StateAwaitingLearningMode
		b.send(t.chatID, locales.T("select_learning_mode", t.i18n), modeKeyboard(t.i18n))
	case IntentLearningLang:
		t.sess.State = models.StateAwaitingSubject
		if t.profile.LearningMode == models.ModeProgramming {
			b.send(t.chatID, locales.T("select_programming_lang", t.i18n),
				programmingKeyboard(t.i18n, "back_to_settings_menu"))
		} else {
			b.send(t.chatID, locales.T("select_learning_lang", t.i18n),
				languageKeyboard(t.i18n, false, "back_to_settings_menu"))
		}
	case IntentLevel:
		t.sess.State = models.StateAwaitingLevel
		if t.profile.LearningMode == models.ModeProgramming {
			b.send(t.chatID, locales.T("select_programming_level", t.i18n),
				levelKeyboard(t.i18n, config.ProgrammingLevels))
		} else {
			b.send(t.chatID, locales.T("select_learning_level", t.i18n),
				levelKeyboard(t.i18n, config.LearningLevels))
		}
	case IntentBackToMain:
		b.showMainMenu(t)
	case IntentBackToSettings:
		b.enterSettings(t)
	}
}

// handleSettingsInput — состояния awaiting_*: валидация выбора.
// Невалидный ввод не меняет состояние и не порождает ответа.
func (b *Bot) handleSettingsInput(t *turn, text string) {
	if b.intents.Resolve(text, GroupSettings) == IntentBackToSettings {
		b.enterSettings(t)
		return
	}
	if b.intents.Resolve(text, GroupGlobal) == IntentBackToMain {
		b.showMainMenu(t)
		return
	}

	column, value, ok := b.resolveSetting(t, text)
	if !ok {
		return
	}

	if err := b.db.UpdateUserSetting(t.profile.UserID, column, value); err != nil {
		b.log.Error("Не удалось сохранить настройку",
			zap.Int64("user_id", t.profile.UserID), zap.String("setting", column), zap.Error(err))
		b.send(t.chatID, locales.T("storage_error", t.i18n), nil)
		return
	}

	b.applySetting(t, column, value)
	b.send(t.chatID, locales.T("settings_updated", t.i18n), nil)
	b.enterSettings(t)
}

// resolveSetting сводит текст кнопки к колонке и значению
// для текущего состояния настроек
func (b *Bot) resolveSetting(t *turn, text string) (column, value string, ok bool) {
	switch t.sess.State {
	case models.StateAwaitingInterfaceLang:
		if code, found := config.FindLanguageByDisplayName(text, config.SupportedLanguages); found {
			return "interface_lang", code, true
		}
	case models.StateAwaitingNativeLang:
		if code, found := config.FindLanguageByDisplayName(text, config.SupportedLanguages); found {
			return "native_lang", code, true
		}
	case models.StateAwaitingLearningMode:
		switch b.intents.Resolve(text, GroupSettings) {
		case IntentModeHuman:
			return "learning_mode", models.ModeHuman, true
		case IntentModeProg:
			return "learning_mode", models.ModeProgramming, true
		}
	case models.StateAwaitingSubject:
		if t.profile.LearningMode == models.ModeProgramming {
			if code, found := config.FindLanguageByDisplayName(text, config.SupportedProgrammingLanguages); found {
				return "programming_lang", code, true
			}
		} else if code, found := config.FindLanguageByDisplayName(text, config.SupportedLanguages); found {
			return "learning_lang", code, true
		}
	case models.StateAwaitingLevel:
		if t.profile.LearningMode == models.ModeProgramming {
			if code, found := config.FindLevelByDisplayName(text, config.ProgrammingLevels); found {
				return "programming_level", code, true
			}
		} else if code, found := config.FindLevelByDisplayName(text, config.LearningLevels); found {
			return "learning_level", code, true
		}
	}
	return "", "", false
}

// applySetting обновляет профиль в памяти. Смена языка интерфейса —
// живая: действующий словарь пересобирается для этого пользователя,
// сама таблица локализаций не мутируется.
func (b *Bot) applySetting(t *turn, column, value string) {
	switch column {
	case "interface_lang":
		t.profile.InterfaceLang = value
		t.i18n = b.locales.Resolve(value)
	case "native_lang":
		t.profile.NativeLang = value
	case "learning_mode":
		t.profile.LearningMode = value
	case "learning_lang":
		t.profile.LearningLang = value
	case "programming_lang":
		t.profile.ProgrammingLang = value
	case "learning_level":
		t.profile.LearningLevel = value
	case "programming_level":
		t.profile.ProgrammingLevel = value
	}
}
