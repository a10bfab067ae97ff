package bot

import (
	"github.com/Karen042009/Arvion-telegram-bot/pkg/locales"
)

// Intent — каноническое действие, к которому сводится нажатие кнопки.
// Значение интента совпадает с ключом локализации его кнопки.
type Intent string

const (
	IntentNone Intent = ""

	// Главное меню
	IntentTranslate  Intent = "translate_button"
	IntentLearn      Intent = "learn_button"
	IntentChat       Intent = "chat_button"
	IntentSettings   Intent = "settings_button"
	IntentBackToMain Intent = "back_to_main_menu"

	// Настройки
	IntentBackToSettings Intent = "back_to_settings_menu"
	IntentInterfaceLang  Intent = "interface_lang_button"
	IntentNativeLang     Intent = "native_lang_button"
	IntentLearningMode   Intent = "learning_mode_button"
	IntentLearningLang   Intent = "learning_lang_button"
	IntentLevel          Intent = "level_button"
	IntentModeHuman      Intent = "mode_human"
	IntentModeProg       Intent = "mode_programming"

	// Переводчик
	IntentBackToTranslator Intent = "back_to_translator"
	IntentChangeSource     Intent = "translator_change_source"
	IntentChangeTarget     Intent = "translator_change_target"
	IntentSwap             Intent = "translator_swap"
	IntentAutoDetect       Intent = "auto_detect"
	IntentVoiceSource      Intent = "tts_source"
	IntentVoiceTarget      Intent = "tts_target"

	// Обучение
	IntentBackToLearn Intent = "back_to_learn_menu"
	IntentNewWord     Intent = "new_word"
	IntentNewConcept  Intent = "new_concept"
	IntentQuiz        Intent = "quiz"
	IntentNextQuiz    Intent = "next_quiz"
	IntentNextConcept Intent = "next_concept"

	// Чат
	IntentBackToChatModes Intent = "back_to_chat_modes"
	IntentChatRegular     Intent = "chat_mode_regular"
	IntentChatRoleplay    Intent = "chat_mode_roleplay"
	IntentRoleplayCafe    Intent = "roleplay_cafe"
	IntentRoleplayHotel   Intent = "roleplay_hotel"
	IntentRoleplayJob     Intent = "roleplay_job_interview"
)

// Group — группа состояний диалога. У каждой группы свой порядок
// проверки интентов: одна и та же надпись в разных локалях может
// принадлежать разным ключам, и сырая строка сама по себе
// недизамбигуируема.
type Group int

const (
	GroupGlobal Group = iota
	GroupSettings
	GroupTranslation
	GroupLearning
	GroupChat
)

var groupPriority = map[Group][]Intent{
	GroupGlobal: {
		IntentBackToMain, IntentTranslate, IntentLearn, IntentChat, IntentSettings,
	},
	GroupSettings: {
		IntentBackToSettings, IntentInterfaceLang, IntentNativeLang,
		IntentLearningMode, IntentLearningLang, IntentLevel,
		IntentModeHuman, IntentModeProg,
	},
	GroupTranslation: {
		IntentBackToTranslator, IntentChangeSource, IntentChangeTarget,
		IntentSwap, IntentAutoDetect, IntentVoiceSource, IntentVoiceTarget,
	},
	GroupLearning: {
		IntentBackToLearn, IntentNewWord, IntentNewConcept,
		IntentQuiz, IntentNextQuiz, IntentNextConcept,
	},
	GroupChat: {
		IntentBackToChatModes, IntentChatRegular, IntentChatRoleplay,
		IntentRoleplayCafe, IntentRoleplayHotel, IntentRoleplayJob,
	},
}

// Resolver сводит текст кнопки к интенту. Клавиатура пользователя
// нарисована на его языке интерфейса, а диспетчеризация языконезависима,
// поэтому каждый интент матчится против объединения переводов ключа
// по всем локалям, а не против локали пользователя.
type Resolver struct {
	texts map[Intent]map[string]struct{}
}

// NewResolver строит резолвер по замороженной таблице локализаций
func NewResolver(table *locales.Table) *Resolver {
	r := &Resolver{texts: make(map[Intent]map[string]struct{})}
	for _, intents := range groupPriority {
		for _, in := range intents {
			if _, ok := r.texts[in]; ok {
				continue
			}
			set := make(map[string]struct{})
			for _, v := range table.AllTranslations(string(in)) {
				set[v] = struct{}{}
			}
			r.texts[in] = set
		}
	}
	return r
}

// Resolve возвращает первый интент группы, чья надпись совпала с текстом.
// Интенты группы проверяются раньше глобальных, порядок внутри группы
// фиксирован.
func (r *Resolver) Resolve(text string, group Group) Intent {
	for _, in := range groupPriority[group] {
		if _, ok := r.texts[in][text]; ok {
			return in
		}
	}
	if group != GroupGlobal {
		for _, in := range groupPriority[GroupGlobal] {
			if _, ok := r.texts[in][text]; ok {
				return in
			}
		}
	}
	return IntentNone
}
