package models

// UserProfile представляет настройки и счётчики пользователя из таблицы users
type UserProfile struct {
	UserID           int64
	InterfaceLang    string // код языка интерфейса, напр. "en", "hy"
	NativeLang       string // родной язык (используется в режиме human)
	LearningLang     string // изучаемый человеческий язык
	LearningLevel    string // beginner / intermediate / advanced
	ProgrammingLang  string // изучаемый язык программирования
	ProgrammingLevel string
	LearningMode     string // ModeHuman или ModeProgramming

	TranslationsCount  int
	WordsLearnedCount  int
	QuizzesPassedCount int
	FactsRequested     int
	StreakCount        int
	LastActivityDate   string // ISO-дата последней активности, для стрика
}

// Режимы обучения. Активная пара предмет/уровень выбирается по режиму.
const (
	ModeHuman       = "human"
	ModeProgramming = "programming"
)

// ChatRecord — одна запись истории диалога с ИИ
type ChatRecord struct {
	Role    string // "user" или "model"
	Content string
}

// ActivityType — тип генерируемого учебного материала
type ActivityType string

const (
	ActivityWord    ActivityType = "word"
	ActivityConcept ActivityType = "concept"
	ActivityQuiz    ActivityType = "quiz"
)

// GeneratedItem — проверенный ответ генератора. Не персистится:
// живёт только внутри текущего шага диалога.
type GeneratedItem struct {
	Item              string   `json:"item"`
	Translation       string   `json:"translation"`
	Explanation       string   `json:"explanation"`
	CodeExample       string   `json:"code_example"`
	Question          string   `json:"question"`
	Options           []string `json:"options"`
	CorrectAnswerText string   `json:"correct_answer_text"`
}

// Label возвращает основную метку элемента для окна недавних
func (g *GeneratedItem) Label() string {
	if g.Item != "" {
		return g.Item
	}
	return g.Question
}

// Константы состояний диалогового автомата (FSM). Автомат плоский,
// группировка по workflow — только для читаемости.
const (
	StateIdle = "idle"

	// Настройки
	StateInSettings            = "in_settings"
	StateAwaitingInterfaceLang = "awaiting_interface_lang"
	StateAwaitingNativeLang    = "awaiting_native_lang"
	StateAwaitingLearningMode  = "awaiting_learning_mode"
	StateAwaitingSubject       = "awaiting_learning_subject"
	StateAwaitingLevel         = "awaiting_level"

	// Переводчик
	StateInTranslationMode  = "in_translation_mode"
	StateAwaitingSourceLang = "awaiting_source_lang"
	StateAwaitingTargetLang = "awaiting_target_lang"
	StateAwaitingTTSChoice  = "awaiting_tts_choice"

	// Обучение
	StateInLearningMenu         = "in_learning_menu"
	StateAwaitingLearningAnswer = "awaiting_learning_answer"
	StateAwaitingQuizAnswer     = "awaiting_quiz_answer"

	// Чат
	StateInChatMenu               = "in_chat_menu"
	StateInChat                   = "in_chat"
	StateAwaitingRoleplayScenario = "awaiting_roleplay_scenario"
	StateInRoleplay               = "in_roleplay"
)
