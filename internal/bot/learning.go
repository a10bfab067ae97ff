package bot

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/Karen042009/Arvion-telegram-bot/internal/config"
	"github.com/Karen042009/Arvion-telegram-bot/internal/content"
	"github.com/Karen042009/Arvion-telegram-bot/pkg/locales"
	"github.com/Karen042009/Arvion-telegram-bot/pkg/models"
)

// enterLearnMenu открывает меню обучения для активного режима
func (b *Bot) enterLearnMenu(t *turn) {
	t.sess.State = models.StateInLearningMenu

	p := t.profile
	var text string
	if p.LearningMode == models.ModeProgramming {
		text = locales.T("learn_menu_text_programming", t.i18n,
			"programming_lang", config.SupportedProgrammingLanguages[p.ProgrammingLang].DisplayName,
			"level", activeLevel(p))
	} else {
		text = locales.T("learn_menu_text_human", t.i18n,
			"learning_lang", config.SupportedLanguages[p.LearningLang].DisplayName,
			"level", activeLevel(p))
	}
	b.send(t.chatID, text, learnMenuKeyboard(t.i18n, p.LearningMode))
}

// handleLearnMenu — состояние in_learning_menu: выбор активности
func (b *Bot) handleLearnMenu(t *turn, text string) {
	switch b.intents.Resolve(text, GroupLearning) {
	case IntentNewWord:
		if t.profile.LearningMode == models.ModeHuman {
			b.requestWord(t)
		}
	case IntentNewConcept, IntentNextConcept:
		if t.profile.LearningMode == models.ModeProgramming {
			b.requestConcept(t)
		}
	case IntentQuiz, IntentNextQuiz:
		b.requestQuiz(t)
	case IntentBackToLearn:
		b.enterLearnMenu(t)
	case IntentBackToMain:
		b.showMainMenu(t)
	}
}

// requestWord генерирует слово для перевода на родной язык
func (b *Bot) requestWord(t *turn) {
	placeholder := b.sendPlaceholder(t, "generating_word")
	item, err := b.content.Request(t.ctx, t.sess, content.Request{
		Activity: models.ActivityWord,
		Mode:     models.ModeHuman,
		Lang:     langContext(t.profile),
		Level:    activeLevel(t.profile),
	})
	b.deletePlaceholder(t, placeholder)
	if err != nil {
		b.failGeneration(t, err)
		return
	}

	ld := t.sess.Learning()
	ld.OriginalText = item.Item
	ld.SourceLang = config.SupportedLanguages[t.profile.LearningLang].GeminiName
	ld.TargetLang = config.SupportedLanguages[t.profile.NativeLang].GeminiName

	text := locales.T("learn_word_prompt", t.i18n,
		"level", activeLevel(t.profile),
		"text_to_translate", item.Item) + "\n" +
		locales.T("learn_translate_this", t.i18n,
			"target_lang_name", config.SupportedLanguages[t.profile.NativeLang].DisplayName)
	b.send(t.chatID, text, learningAnswerKeyboard(t.i18n))
	t.sess.State = models.StateAwaitingLearningAnswer
}

// handleLearningAnswer — перевод слова проверяет провайдер, а не бот:
// у перевода нет единственного правильного ответа
func (b *Bot) handleLearningAnswer(t *turn, text string) {
	switch b.intents.Resolve(text, GroupLearning) {
	case IntentBackToLearn:
		b.enterLearnMenu(t)
		return
	case IntentBackToMain:
		b.showMainMenu(t)
		return
	}

	ld := t.sess.Learning()
	placeholder := b.sendPlaceholder(t, "evaluating_answer")
	feedback, err := b.ai.EvaluateTranslation(t.ctx, ld.OriginalText, text, ld.SourceLang, ld.TargetLang)
	b.deletePlaceholder(t, placeholder)
	if err != nil {
		b.failGeneration(t, err)
		return
	}

	b.bumpStat(t, "words_learned_count")
	b.send(t.chatID, locales.T("ai_feedback", t.i18n, "feedback", feedback),
		learnMenuKeyboard(t.i18n, t.profile.LearningMode))
	t.sess.State = models.StateInLearningMenu
}

// requestConcept генерирует концепцию программирования. Шага с ответом
// нет: материал показан, пользователь остаётся в меню обучения.
func (b *Bot) requestConcept(t *turn) {
	placeholder := b.sendPlaceholder(t, "generating_concept")
	item, err := b.content.Request(t.ctx, t.sess, content.Request{
		Activity: models.ActivityConcept,
		Mode:     models.ModeProgramming,
		Lang:     langContext(t.profile),
		Level:    activeLevel(t.profile),
	})
	b.deletePlaceholder(t, placeholder)
	if err != nil {
		b.failGeneration(t, err)
		return
	}

	b.bumpStat(t, "words_learned_count")
	b.send(t.chatID, locales.T("prog_concept_text", t.i18n,
		"title", item.Item,
		"explanation", item.Explanation,
		"code", item.CodeExample,
	), afterConceptKeyboard(t.i18n))
	t.sess.State = models.StateInLearningMenu
}

// requestQuiz генерирует викторину для активного режима
func (b *Bot) requestQuiz(t *turn) {
	placeholder := b.sendPlaceholder(t, "generating_quiz")
	item, err := b.content.Request(t.ctx, t.sess, content.Request{
		Activity: models.ActivityQuiz,
		Mode:     t.profile.LearningMode,
		Lang:     langContext(t.profile),
		Level:    activeLevel(t.profile),
	})
	b.deletePlaceholder(t, placeholder)
	if err != nil {
		b.failGeneration(t, err)
		return
	}

	ld := t.sess.Learning()
	ld.CorrectQuizAnswer = item.CorrectAnswerText
	ld.QuizOptions = item.Options
	ld.UseLabels = content.UseLetterLabels(item.Options)

	text := locales.T("quiz_question", t.i18n, "question", item.Question)
	if ld.UseLabels {
		// варианты длинные: в кнопках буквы, тексты — в вопросе
		labels := content.Labels(len(item.Options))
		var list []string
		for i, opt := range item.Options {
			list = append(list, labels[i]+") "+opt)
		}
		text += "\n\n" + strings.Join(list, "\n")
	}
	b.send(t.chatID, text, quizKeyboard(t.i18n, item.Options, ld.UseLabels))
	t.sess.State = models.StateAwaitingQuizAnswer
}

// handleQuizAnswer сверяет ответ локально: у викторины ответ канонический
func (b *Bot) handleQuizAnswer(t *turn, text string) {
	switch b.intents.Resolve(text, GroupLearning) {
	case IntentBackToLearn:
		b.enterLearnMenu(t)
		return
	case IntentBackToMain:
		b.showMainMenu(t)
		return
	}

	ld := t.sess.Learning()
	if content.EvaluateAnswer(text, ld.CorrectQuizAnswer, ld.QuizOptions, ld.UseLabels) {
		b.bumpStat(t, "quizzes_passed_count")
		b.send(t.chatID, locales.T("quiz_result_correct", t.i18n,
			"answer", ld.CorrectQuizAnswer), afterQuizKeyboard(t.i18n))
	} else {
		b.send(t.chatID, locales.T("quiz_result_incorrect", t.i18n,
			"user_answer", text,
			"correct_answer", ld.CorrectQuizAnswer), afterQuizKeyboard(t.i18n))
	}
	t.sess.State = models.StateInLearningMenu
}

// failGeneration показывает одну локализованную фразу об ошибке и
// возвращает пользователя в меню обучения, не оставляя его в состоянии
// ожидания материала
func (b *Bot) failGeneration(t *turn, err error) {
	if errors.Is(err, content.ErrGenerationFailed) {
		b.log.Warn("Попытки генерации исчерпаны", zap.Int64("user_id", t.profile.UserID))
	} else {
		b.log.Warn("Ошибка генерации", zap.Int64("user_id", t.profile.UserID), zap.Error(err))
	}
	b.send(t.chatID, locales.T("generation_error", t.i18n),
		learnMenuKeyboard(t.i18n, t.profile.LearningMode))
	t.sess.State = models.StateInLearningMenu
}
