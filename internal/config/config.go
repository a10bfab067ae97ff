package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramBotToken string
	GeminiAPIKey     string
	GeminiModel      string
	DatabasePath     string
	ProviderTimeout  time.Duration
	Debug            bool
}

// Load читает конфигурацию из .env и переменных окружения
func Load() (*Config, error) {
	// .env необязателен: в проде переменные приходят из окружения
	_ = godotenv.Load()

	cfg := &Config{
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		DatabasePath:     getEnv("DATABASE_NAME", "lingua_ai_bot.db"),
		ProviderTimeout:  30 * time.Second,
		Debug:            os.Getenv("DEBUG") != "",
	}

	if v := os.Getenv("PROVIDER_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("неверный PROVIDER_TIMEOUT: %w", err)
		}
		cfg.ProviderTimeout = d
	}

	if cfg.TelegramBotToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN не задан")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY не задан")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Language описывает поддерживаемый язык: имя для кнопок и имя для провайдера
type Language struct {
	DisplayName string
	GeminiName  string
}

// SupportedLanguages — человеческие языки. Порядок кнопок задаёт LanguageCodes.
var SupportedLanguages = map[string]Language{
	"en": {DisplayName: "English", GeminiName: "English"},
	"hy": {DisplayName: "Հայերեն", GeminiName: "Armenian"},
	"ru": {DisplayName: "Русский", GeminiName: "Russian"},
	"es": {DisplayName: "Español", GeminiName: "Spanish"},
	"fr": {DisplayName: "Français", GeminiName: "French"},
	"de": {DisplayName: "Deutsch", GeminiName: "German"},
	"it": {DisplayName: "Italiano", GeminiName: "Italian"},
	"pt": {DisplayName: "Português", GeminiName: "Portuguese"},
	"zh": {DisplayName: "中文 (Chinese)", GeminiName: "Chinese"},
	"ja": {DisplayName: "日本語 (Japanese)", GeminiName: "Japanese"},
	"ko": {DisplayName: "한국어 (Korean)", GeminiName: "Korean"},
	"hi": {DisplayName: "हिन्दी (Hindi)", GeminiName: "Hindi"},
	"ar": {DisplayName: "العربية (Arabic)", GeminiName: "Arabic"},
}

// LanguageCodes — стабильный порядок языков для клавиатур
var LanguageCodes = []string{
	"en", "hy", "ru", "es", "fr", "de", "it", "pt", "zh", "ja", "ko", "hi", "ar",
}

// SupportedProgrammingLanguages — предметы режима programming
var SupportedProgrammingLanguages = map[string]Language{
	"python":     {DisplayName: "Python"},
	"javascript": {DisplayName: "JavaScript"},
	"java":       {DisplayName: "Java"},
	"csharp":     {DisplayName: "C#"},
	"cpp":        {DisplayName: "C++"},
	"php":        {DisplayName: "PHP"},
	"swift":      {DisplayName: "Swift"},
	"kotlin":     {DisplayName: "Kotlin"},
	"sql":        {DisplayName: "SQL"},
	"go":         {DisplayName: "Go"},
}

// ProgrammingLanguageCodes — стабильный порядок предметов для клавиатур
var ProgrammingLanguageCodes = []string{
	"python", "javascript", "java", "csharp", "cpp", "php", "swift", "kotlin", "sql", "go",
}

// LearningLevels — уровни владения человеческим языком
var LearningLevels = map[string]string{
	"beginner":     "A1/A2 (Beginner)",
	"intermediate": "B1/B2 (Intermediate)",
	"advanced":     "C1/C2 (Advanced)",
}

// ProgrammingLevels — уровни для режима programming
var ProgrammingLevels = map[string]string{
	"beginner":     "Beginner / Junior",
	"intermediate": "Intermediate / Middle",
	"advanced":     "Advanced / Senior",
}

// LevelCodes — стабильный порядок уровней для клавиатур
var LevelCodes = []string{"beginner", "intermediate", "advanced"}

// FindLanguageByDisplayName возвращает код языка по тексту кнопки
func FindLanguageByDisplayName(name string, table map[string]Language) (string, bool) {
	for code, lang := range table {
		if lang.DisplayName == name {
			return code, true
		}
	}
	return "", false
}

// FindLevelByDisplayName возвращает код уровня по тексту кнопки
func FindLevelByDisplayName(name string, table map[string]string) (string, bool) {
	for code, display := range table {
		if display == name {
			return code, true
		}
	}
	return "", false
}
