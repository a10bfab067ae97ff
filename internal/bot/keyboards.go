package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Karen042009/Arvion-telegram-bot/internal/config"
	"github.com/Karen042009/Arvion-telegram-bot/internal/content"
	"github.com/Karen042009/Arvion-telegram-bot/pkg/locales"
	"github.com/Karen042009/Arvion-telegram-bot/pkg/models"
)

// Reply-клавиатуры. Надписи берутся из действующего словаря пользователя,
// матчинг обратно в интенты делает Resolver.

func keyboard(rows ...[]tgbotapi.KeyboardButton) tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	return kb
}

func row(labels ...string) []tgbotapi.KeyboardButton {
	buttons := make([]tgbotapi.KeyboardButton, len(labels))
	for i, l := range labels {
		buttons[i] = tgbotapi.NewKeyboardButton(l)
	}
	return buttons
}

func mainMenuKeyboard(i18n map[string]string) tgbotapi.ReplyKeyboardMarkup {
	return keyboard(
		row(locales.T("translate_button", i18n), locales.T("learn_button", i18n)),
		row(locales.T("chat_button", i18n), locales.T("settings_button", i18n)),
	)
}

func settingsKeyboard(i18n map[string]string) tgbotapi.ReplyKeyboardMarkup {
	return keyboard(
		row(locales.T("interface_lang_button", i18n), locales.T("native_lang_button", i18n)),
		row(locales.T("learning_mode_button", i18n), locales.T("learning_lang_button", i18n)),
		row(locales.T("level_button", i18n)),
		row(locales.T("back_to_main_menu", i18n)),
	)
}

// languageKeyboard — выбор человеческого языка, по две кнопки в ряд.
// withAuto добавляет автоопределение первой строкой.
func languageKeyboard(i18n map[string]string, withAuto bool, backKey string) tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	if withAuto {
		rows = append(rows, row(locales.T("auto_detect", i18n)))
	}
	rows = append(rows, displayNameRows(config.LanguageCodes, config.SupportedLanguages)...)
	rows = append(rows, row(locales.T(backKey, i18n)))
	return keyboard(rows...)
}

func programmingKeyboard(i18n map[string]string, backKey string) tgbotapi.ReplyKeyboardMarkup {
	rows := displayNameRows(config.ProgrammingLanguageCodes, config.SupportedProgrammingLanguages)
	rows = append(rows, row(locales.T(backKey, i18n)))
	return keyboard(rows...)
}

func displayNameRows(codes []string, table map[string]config.Language) [][]tgbotapi.KeyboardButton {
	var rows [][]tgbotapi.KeyboardButton
	for i := 0; i < len(codes); i += 2 {
		labels := []string{table[codes[i]].DisplayName}
		if i+1 < len(codes) {
			labels = append(labels, table[codes[i+1]].DisplayName)
		}
		rows = append(rows, row(labels...))
	}
	return rows
}

func levelKeyboard(i18n map[string]string, levels map[string]string) tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	for _, code := range config.LevelCodes {
		rows = append(rows, row(levels[code]))
	}
	rows = append(rows, row(locales.T("back_to_settings_menu", i18n)))
	return keyboard(rows...)
}

func modeKeyboard(i18n map[string]string) tgbotapi.ReplyKeyboardMarkup {
	return keyboard(
		row(locales.T("mode_human", i18n), locales.T("mode_programming", i18n)),
		row(locales.T("back_to_settings_menu", i18n)),
	)
}

func translatorKeyboard(i18n map[string]string) tgbotapi.ReplyKeyboardMarkup {
	return keyboard(
		row(locales.T("translator_change_source", i18n), locales.T("translator_change_target", i18n)),
		row(locales.T("translator_swap", i18n)),
		row(locales.T("back_to_main_menu", i18n)),
	)
}

func ttsChoiceKeyboard(i18n map[string]string) tgbotapi.ReplyKeyboardMarkup {
	return keyboard(
		row(locales.T("tts_source", i18n), locales.T("tts_target", i18n)),
		row(locales.T("back_to_translator", i18n)),
	)
}

func learnMenuKeyboard(i18n map[string]string, mode string) tgbotapi.ReplyKeyboardMarkup {
	activity := locales.T("new_word", i18n)
	if mode == models.ModeProgramming {
		activity = locales.T("new_concept", i18n)
	}
	return keyboard(
		row(activity, locales.T("quiz", i18n)),
		row(locales.T("back_to_main_menu", i18n)),
	)
}

func learningAnswerKeyboard(i18n map[string]string) tgbotapi.ReplyKeyboardMarkup {
	return keyboard(row(locales.T("back_to_learn_menu", i18n)))
}

// quizKeyboard — варианты ответа по одному в ряд. При длинных вариантах
// кнопки рисуются буквами, сами варианты уходят текстом вопроса.
func quizKeyboard(i18n map[string]string, options []string, useLabels bool) tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	if useLabels {
		rows = append(rows, row(content.Labels(len(options))...))
	} else {
		for _, opt := range options {
			rows = append(rows, row(opt))
		}
	}
	rows = append(rows, row(locales.T("back_to_learn_menu", i18n)))
	return keyboard(rows...)
}

func afterQuizKeyboard(i18n map[string]string) tgbotapi.ReplyKeyboardMarkup {
	return keyboard(
		row(locales.T("next_quiz", i18n)),
		row(locales.T("back_to_learn_menu", i18n)),
	)
}

func afterConceptKeyboard(i18n map[string]string) tgbotapi.ReplyKeyboardMarkup {
	return keyboard(
		row(locales.T("next_concept", i18n), locales.T("quiz", i18n)),
		row(locales.T("back_to_learn_menu", i18n)),
	)
}

func chatModeKeyboard(i18n map[string]string) tgbotapi.ReplyKeyboardMarkup {
	return keyboard(
		row(locales.T("chat_mode_regular", i18n), locales.T("chat_mode_roleplay", i18n)),
		row(locales.T("back_to_main_menu", i18n)),
	)
}

func roleplayKeyboard(i18n map[string]string) tgbotapi.ReplyKeyboardMarkup {
	return keyboard(
		row(locales.T("roleplay_cafe", i18n)),
		row(locales.T("roleplay_hotel", i18n)),
		row(locales.T("roleplay_job_interview", i18n)),
		row(locales.T("back_to_chat_modes", i18n)),
	)
}

func chatKeyboard(i18n map[string]string) tgbotapi.ReplyKeyboardMarkup {
	return keyboard(row(locales.T("back_to_chat_modes", i18n)))
}
