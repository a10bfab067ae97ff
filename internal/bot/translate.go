package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Karen042009/Arvion-telegram-bot/internal/config"
	"github.com/Karen042009/Arvion-telegram-bot/pkg/locales"
	"github.com/Karen042009/Arvion-telegram-bot/pkg/models"
)

// enterTranslator открывает переводчик. Направление по умолчанию:
// автоопределение → родной язык пользователя.
func (b *Bot) enterTranslator(t *turn) {
	t.sess.State = models.StateInTranslationMode

	td := t.sess.Translation()
	if td.SourceLang == "" {
		td.SourceLang = "auto"
	}
	if td.TargetLang == "" {
		td.TargetLang = t.profile.NativeLang
	}

	text := locales.T("universal_translator_prompt", t.i18n) + "\n\n" +
		locales.T("source_lang_label", t.i18n) + ": " + displayLang(td.SourceLang, t.i18n) + "\n" +
		locales.T("target_lang_label", t.i18n) + ": " + displayLang(td.TargetLang, t.i18n)
	b.send(t.chatID, text, translatorKeyboard(t.i18n))
}

// handleTranslatorInput обслуживает in_translation_mode и awaiting_tts_choice.
// В awaiting_tts_choice нераспознанный текст — это следующий запрос на
// перевод, а не ошибка: пользователь просто продолжил переводить.
func (b *Bot) handleTranslatorInput(t *turn, msg *tgbotapi.Message) {
	td := t.sess.Translation()

	switch b.intents.Resolve(msg.Text, GroupTranslation) {
	case IntentBackToMain:
		b.showMainMenu(t)
		return
	case IntentBackToTranslator:
		b.enterTranslator(t)
		return
	case IntentChangeSource:
		t.sess.State = models.StateAwaitingSourceLang
		b.send(t.chatID, locales.T("select_source_lang", t.i18n),
			languageKeyboard(t.i18n, true, "back_to_translator"))
		return
	case IntentChangeTarget:
		t.sess.State = models.StateAwaitingTargetLang
		b.send(t.chatID, locales.T("select_target_lang", t.i18n),
			languageKeyboard(t.i18n, false, "back_to_translator"))
		return
	case IntentSwap:
		if td.SourceLang == "auto" {
			b.send(t.chatID, locales.T("cannot_swap_auto", t.i18n), nil)
			return
		}
		td.SourceLang, td.TargetLang = td.TargetLang, td.SourceLang
		b.enterTranslator(t)
		return
	case IntentVoiceSource:
		// на фото без распознанного текста озвучивать нечего; надпись
		// кнопки не должна провалиться в перевод как новый запрос
		if t.sess.State == models.StateAwaitingTTSChoice {
			if td.LastSourceText == "" {
				b.send(t.chatID, locales.T("voice_error", t.i18n), nil)
			} else {
				b.speak(t, td.LastSourceText, td.LastSourceCode)
			}
			return
		}
	case IntentVoiceTarget:
		if t.sess.State == models.StateAwaitingTTSChoice {
			if td.LastTranslatedText == "" {
				b.send(t.chatID, locales.T("voice_error", t.i18n), nil)
			} else {
				b.speak(t, td.LastTranslatedText, td.LastTargetCode)
			}
			return
		}
	}

	if len(msg.Photo) > 0 {
		b.translatePhoto(t, msg.Photo)
		return
	}
	if msg.Text != "" {
		b.translateText(t, msg.Text)
	}
}

// handleTranslatorLangChoice — выбор языка источника или цели
func (b *Bot) handleTranslatorLangChoice(t *turn, text string) {
	switch b.intents.Resolve(text, GroupTranslation) {
	case IntentBackToTranslator:
		b.enterTranslator(t)
		return
	case IntentBackToMain:
		b.showMainMenu(t)
		return
	case IntentAutoDetect:
		if t.sess.State == models.StateAwaitingSourceLang {
			t.sess.Translation().SourceLang = "auto"
			b.enterTranslator(t)
		}
		return
	}

	code, found := config.FindLanguageByDisplayName(text, config.SupportedLanguages)
	if !found {
		return
	}
	if t.sess.State == models.StateAwaitingSourceLang {
		t.sess.Translation().SourceLang = code
	} else {
		t.sess.Translation().TargetLang = code
	}
	b.enterTranslator(t)
}

func (b *Bot) translateText(t *turn, text string) {
	td := t.sess.Translation()
	placeholder := b.sendPlaceholder(t, "translating")

	sourceName := "auto"
	if td.SourceLang != "auto" {
		sourceName = config.SupportedLanguages[td.SourceLang].GeminiName
	}
	result, err := b.ai.Translate(t.ctx, text, config.SupportedLanguages[td.TargetLang].GeminiName, sourceName)
	b.deletePlaceholder(t, placeholder)
	if err != nil {
		b.log.Warn("Перевод не удался", zap.Int64("user_id", t.profile.UserID), zap.Error(err))
		b.send(t.chatID, locales.T("translation_error", t.i18n), translatorKeyboard(t.i18n))
		t.sess.State = models.StateInTranslationMode
		return
	}

	b.showTranslation(t, text, result.TranslatedText, result.DetectedLanguageName)
}

func (b *Bot) translatePhoto(t *turn, photos []tgbotapi.PhotoSize) {
	td := t.sess.Translation()
	placeholder := b.sendPlaceholder(t, "translating")

	// последний размер — самый крупный
	image, err := b.sender.Download(photos[len(photos)-1].FileID)
	if err != nil {
		b.deletePlaceholder(t, placeholder)
		b.log.Warn("Не удалось скачать фото", zap.Int64("user_id", t.profile.UserID), zap.Error(err))
		b.send(t.chatID, locales.T("translation_error", t.i18n), translatorKeyboard(t.i18n))
		return
	}

	result, err := b.ai.TranslateImage(t.ctx, image, "image/jpeg",
		config.SupportedLanguages[td.TargetLang].GeminiName)
	b.deletePlaceholder(t, placeholder)
	if err != nil {
		b.log.Warn("Перевод фото не удался", zap.Int64("user_id", t.profile.UserID), zap.Error(err))
		b.send(t.chatID, locales.T("translation_error", t.i18n), translatorKeyboard(t.i18n))
		t.sess.State = models.StateInTranslationMode
		return
	}

	b.showTranslation(t, result.FoundText, result.TranslatedText, result.DetectedLanguageName)
}

// showTranslation показывает результат и предлагает озвучку
func (b *Bot) showTranslation(t *turn, sourceText, translatedText, detectedName string) {
	td := t.sess.Translation()

	sourceCode := td.SourceLang
	if sourceCode == "auto" {
		if code, ok := codeByGeminiName(detectedName); ok {
			sourceCode = code
		} else {
			sourceCode = locales.DefaultLang
		}
	}
	td.LastSourceText = sourceText
	td.LastTranslatedText = translatedText
	td.LastSourceCode = sourceCode
	td.LastTargetCode = td.TargetLang

	sourceLabel := detectedName
	if td.SourceLang != "auto" {
		sourceLabel = config.SupportedLanguages[td.SourceLang].DisplayName
	}

	b.bumpStat(t, "translations_count")
	b.send(t.chatID, locales.T("translation_result", t.i18n,
		"source_lang", sourceLabel,
		"target_lang", config.SupportedLanguages[td.TargetLang].DisplayName,
		"translated_text", translatedText,
	), ttsChoiceKeyboard(t.i18n))
	t.sess.State = models.StateAwaitingTTSChoice
}

// speak озвучивает текст. Состояние не меняется: после озвучки
// пользователь остаётся у результата перевода.
func (b *Bot) speak(t *turn, text, langCode string) {
	placeholder := b.sendPlaceholder(t, "generating_voice")
	audio, err := b.voice.Synthesize(t.ctx, text, langCode)
	b.deletePlaceholder(t, placeholder)
	if err != nil {
		b.log.Warn("Озвучка не удалась", zap.Int64("user_id", t.profile.UserID), zap.Error(err))
		b.send(t.chatID, locales.T("voice_error", t.i18n), nil)
		return
	}
	if err := b.sender.SendVoice(t.chatID, audio); err != nil {
		b.log.Warn("Не удалось отправить голосовое", zap.Int64("user_id", t.profile.UserID), zap.Error(err))
		b.send(t.chatID, locales.T("voice_error", t.i18n), nil)
	}
}
