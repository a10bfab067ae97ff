package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/Karen042009/Arvion-telegram-bot/internal/database"
)

// historyLimit ограничивает контекст диалога последними записями,
// чтобы не раздувать запрос к провайдеру
const historyLimit = 20

// TranslationResult — разобранный ответ перевода
type TranslationResult struct {
	DetectedLanguageName string `json:"detected_language_name"`
	TranslatedText       string `json:"translated_text"`
	FoundText            string `json:"found_text"`
}

// Service — высокоуровневые операции поверх клиента: перевод, фидбэк,
// факты и чат с историей
type Service struct {
	client *Client
	db     *database.DB
	log    *zap.Logger
}

func NewService(client *Client, db *database.DB, log *zap.Logger) *Service {
	return &Service{client: client, db: db, log: log}
}

// Translate переводит текст. sourceLang — имя языка или "auto"
func (s *Service) Translate(ctx context.Context, text, targetLang, sourceLang string) (*TranslationResult, error) {
	raw, err := s.client.Generate(ctx, buildTranslatePrompt(text, targetLang, sourceLang), true, 0.2)
	if err != nil {
		return nil, err
	}
	return parseTranslation(raw)
}

// TranslateImage распознаёт текст на изображении и переводит его
func (s *Service) TranslateImage(ctx context.Context, image []byte, mimeType, targetLang string) (*TranslationResult, error) {
	raw, err := s.client.GenerateVision(ctx, buildImagePrompt(targetLang), image, mimeType, 0.1)
	if err != nil {
		return nil, err
	}
	return parseTranslation(raw)
}

func parseTranslation(raw string) (*TranslationResult, error) {
	var result TranslationResult
	if err := json.Unmarshal([]byte(CleanJSON(raw)), &result); err != nil {
		return nil, fmt.Errorf("неверный JSON перевода: %w", err)
	}
	if result.TranslatedText == "" {
		return nil, fmt.Errorf("пустой перевод в ответе")
	}
	return &result, nil
}

// EvaluateTranslation просит провайдер оценить перевод пользователя
func (s *Service) EvaluateTranslation(ctx context.Context, originalText, userTranslation, sourceLang, targetLang string) (string, error) {
	raw, err := s.client.Generate(ctx,
		buildFeedbackPrompt(originalText, userTranslation, sourceLang, targetLang), true, 0.5)
	if err != nil {
		return "", err
	}
	var parsed struct {
		Feedback string `json:"feedback"`
	}
	if err := json.Unmarshal([]byte(CleanJSON(raw)), &parsed); err != nil {
		return "", fmt.Errorf("неверный JSON фидбэка: %w", err)
	}
	return parsed.Feedback, nil
}

// FunFact генерирует факт о предмете изучения. Неструктурированный ответ,
// максимальная температура.
func (s *Service) FunFact(ctx context.Context, mode, subject, interfaceLang string) (string, error) {
	return s.client.Generate(ctx, buildFunFactPrompt(mode, subject, interfaceLang), false, 1.0)
}

// Chat отвечает в диалоге с учётом сохранённой истории.
// Реплика пользователя пишется в историю до запроса: даже при ошибке
// провайдера контекст не теряется.
func (s *Service) Chat(ctx context.Context, userID int64, userText, persona string) (string, error) {
	if persona == "" {
		persona = DefaultPersona
	}

	history, err := s.db.GetChatHistory(userID, historyLimit)
	if err != nil {
		return "", fmt.Errorf("не удалось прочитать историю: %w", err)
	}

	if err := s.db.AddToChatHistory(userID, "user", userText); err != nil {
		return "", err
	}

	answer, err := s.client.GenerateChat(ctx, history, userText, persona)
	if err != nil {
		return "", err
	}

	if err := s.db.AddToChatHistory(userID, "model", answer); err != nil {
		s.log.Warn("Не удалось сохранить ответ модели", zap.Int64("user_id", userID), zap.Error(err))
	}
	return answer, nil
}
