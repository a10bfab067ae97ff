// Package content отвечает за запрос учебного материала у генеративного
// провайдера: промпт, валидация схемы, повторы и окно недавних.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Karen042009/Arvion-telegram-bot/internal/gemini"
	"github.com/Karen042009/Arvion-telegram-bot/pkg/models"
)

// ErrGenerationFailed — все попытки исчерпаны. Вызывающий показывает
// одну локализованную фразу и возвращает пользователя в меню.
var ErrGenerationFailed = errors.New("генерация не удалась")

// Generator — то, что умеет провайдер. Таймаут и пустые ответы провайдер
// превращает в ошибку, здесь они неразличимы с невалидной схемой.
type Generator interface {
	Generate(ctx context.Context, prompt string, structured bool, temperature float32) (string, error)
}

// Recency — окно недавних меток сессии
type Recency interface {
	RememberItem(label string)
	RecentItems() []string
}

// RetryPolicy — ограниченные повторы с фиксированной паузой.
// Пользователь ждёт синхронно, поэтому пауза короткая и без экспоненты.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultRetryPolicy — три попытки с полусекундной паузой
var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 3, Delay: 500 * time.Millisecond}

// Request — параметры запроса учебного материала
type Request struct {
	Activity models.ActivityType
	Mode     string
	Lang     gemini.LangInfo
	Level    string
}

type Orchestrator struct {
	gen    Generator
	policy RetryPolicy
	log    *zap.Logger
}

func NewOrchestrator(gen Generator, policy RetryPolicy, log *zap.Logger) *Orchestrator {
	return &Orchestrator{gen: gen, policy: policy, log: log}
}

// Request запрашивает материал, проверяет схему и при успехе дописывает
// метку в окно недавних. Окно перечитывается на каждой попытке: просьба
// «не повторяйся» уходит провайдеру в промпте.
func (o *Orchestrator) Request(ctx context.Context, recency Recency, req Request) (*models.GeneratedItem, error) {
	for attempt := 1; attempt <= o.policy.MaxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleepWithContext(ctx, o.policy.Delay); err != nil {
				return nil, err
			}
		}

		prompt, err := gemini.BuildLearningPrompt(req.Activity, req.Mode, req.Lang, req.Level, recency.RecentItems())
		if err != nil {
			return nil, err
		}

		raw, err := o.gen.Generate(ctx, prompt, true, 0.95)
		if err != nil {
			o.log.Warn("Попытка генерации не удалась",
				zap.String("activity", string(req.Activity)),
				zap.Int("attempt", attempt),
				zap.Error(err))
			continue
		}

		item, err := parseItem(raw, req.Activity)
		if err != nil {
			o.log.Warn("Ответ генератора не прошёл валидацию",
				zap.String("activity", string(req.Activity)),
				zap.Int("attempt", attempt),
				zap.Error(err))
			continue
		}

		recency.RememberItem(item.Label())
		return item, nil
	}
	return nil, ErrGenerationFailed
}

func parseItem(raw string, activity models.ActivityType) (*models.GeneratedItem, error) {
	var item models.GeneratedItem
	if err := json.Unmarshal([]byte(gemini.CleanJSON(raw)), &item); err != nil {
		return nil, err
	}
	if err := validate(&item, activity); err != nil {
		return nil, err
	}
	return &item, nil
}

// validate проверяет схему ответа для типа активности
func validate(item *models.GeneratedItem, activity models.ActivityType) error {
	switch activity {
	case models.ActivityQuiz:
		if item.Question == "" || len(item.Options) < 2 || item.CorrectAnswerText == "" {
			return errors.New("неполная схема викторины")
		}
	case models.ActivityWord:
		if item.Item == "" || item.Translation == "" {
			return errors.New("неполная схема слова")
		}
	case models.ActivityConcept:
		if item.Item == "" || item.Explanation == "" {
			return errors.New("неполная схема концепции")
		}
	default:
		return errors.New("неизвестный тип активности")
	}
	return nil
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
