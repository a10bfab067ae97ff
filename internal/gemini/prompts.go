package gemini

import (
	"fmt"
	"strings"

	"github.com/Karen042009/Arvion-telegram-bot/pkg/models"
)

// LangInfo — языковой контекст для построения промптов
type LangInfo struct {
	Native            string // имя родного языка для провайдера
	Learning          string // имя изучаемого языка
	Programming       string // имя языка программирования
	InterfaceLangName string // язык, на котором должен отвечать провайдер
}

// DefaultPersona — персона свободного чата
const DefaultPersona = "You are a helpful and friendly AI language tutor."

func buildTranslatePrompt(text, targetLang, sourceLang string) string {
	return fmt.Sprintf(
		`Translate "%s" into %s. Source language is %s. Respond in JSON: `+
			`{"detected_language_name": "...", "translated_text": "..."}`,
		text, targetLang, sourceLang)
}

func buildImagePrompt(targetLang string) string {
	return fmt.Sprintf(
		`Analyze this image. Identify all text. Then, translate it to %s. `+
			`Format as JSON: {"found_text": "...", "translated_text": "...", "detected_language_name": "..."}`,
		targetLang)
}

func buildFeedbackPrompt(originalText, userTranslation, sourceLang, targetLang string) string {
	return fmt.Sprintf(
		`Original: "%s" (%s). User translation: "%s" (%s). Provide brief feedback in %s.`+
			"\n"+`JSON response: {"feedback": "..."}`,
		originalText, sourceLang, userTranslation, targetLang, targetLang)
}

func buildFunFactPrompt(mode, subject, interfaceLang string) string {
	langInstruction := fmt.Sprintf("CRITICAL: The fact MUST be in %s.", interfaceLang)
	if mode == models.ModeHuman {
		return fmt.Sprintf(
			"Tell me one surprising, fun fact about the country/culture of the %s language. %s",
			subject, langInstruction)
	}
	return fmt.Sprintf(
		"Tell me one surprising, fun fact about the history or a feature of %s. %s",
		subject, langInstruction)
}

// BuildLearningPrompt строит промпт генерации учебного материала.
// recentItems — окно недавних: просьба не повторяться совещательная,
// провайдер не обязан её соблюдать.
func BuildLearningPrompt(activity models.ActivityType, mode string, info LangInfo, level string, recentItems []string) (string, error) {
	var recentPrompt string
	if len(recentItems) > 0 {
		quoted := make([]string, len(recentItems))
		for i, item := range recentItems {
			quoted[i] = `"` + item + `"`
		}
		recentPrompt = fmt.Sprintf(
			"\nIMPORTANT: Do not generate any of the following, which the user has seen: %s.",
			strings.Join(quoted, ", "))
	}

	switch mode {
	case models.ModeHuman:
		return buildHumanLearningPrompt(activity, info, level, recentPrompt)
	case models.ModeProgramming:
		return buildProgrammingLearningPrompt(activity, info, level, recentPrompt)
	}
	return "", fmt.Errorf("неизвестный режим обучения: %q", mode)
}

func buildHumanLearningPrompt(activity models.ActivityType, info LangInfo, level, recentPrompt string) (string, error) {
	switch activity {
	case models.ActivityWord:
		return fmt.Sprintf(
			"Generate one interesting word in %s for a %s learner. Provide its translation in %s.%s\n"+
				`JSON response: {"item": "...", "translation": "..."}`,
			info.Learning, level, info.Native, recentPrompt), nil
	case models.ActivityQuiz:
		return fmt.Sprintf(
			"Create a multiple-choice quiz about %s for a %s speaker at %s level.%s\n"+
				`JSON response: {"question": "...", "options": [...], "correct_answer_text": "..."}`,
			info.Learning, info.Native, level, recentPrompt), nil
	}
	return "", fmt.Errorf("активность %q недоступна в режиме human", activity)
}

func buildProgrammingLearningPrompt(activity models.ActivityType, info LangInfo, level, recentPrompt string) (string, error) {
	academicPrompt := "\nEnsure the explanation is academically sound, clear, and suitable for a " +
		"university-level student, but adapt the core complexity to the user's selected proficiency level."
	langInstruction := fmt.Sprintf(
		"CRITICAL INSTRUCTION: The entire response MUST be exclusively in the %s language. "+
			"DO NOT mix languages. Use correct and natural-sounding terminology.",
		info.InterfaceLangName)

	switch activity {
	case models.ActivityConcept:
		return fmt.Sprintf(
			"Generate a core concept for a %s developer at '%s' level. %s%s %s\n"+
				"Provide an explanation and a code example.\n"+
				`JSON response: {"item": "...", "explanation": "...", "code_example": "..."}`,
			info.Programming, level, academicPrompt, recentPrompt, langInstruction), nil
	case models.ActivityQuiz:
		return fmt.Sprintf(
			"Create a quiz about %s for a developer at '%s' level. %s%s %s\n"+
				`JSON response: {"question": "...", "options": [...], "correct_answer_text": "Exact text of correct option."}`,
			info.Programming, level, academicPrompt, recentPrompt, langInstruction), nil
	}
	return "", fmt.Errorf("активность %q недоступна в режиме programming", activity)
}
