// Package session хранит диалоговое состояние пользователей в памяти.
// Профиль пользователя живёт в базе, здесь — только текущий шаг диалога
// и временные данные активного workflow.
package session

import (
	"sync"

	"github.com/Karen042009/Arvion-telegram-bot/pkg/models"
)

// maxRecentItems — размер окна недавних элементов для подсказки
// генератору «не повторяйся»
const maxRecentItems = 15

// TranslationData — временные данные переводчика
type TranslationData struct {
	SourceLang string // код языка или "auto"
	TargetLang string

	LastSourceText     string
	LastTranslatedText string
	LastSourceCode     string
	LastTargetCode     string
}

// LearningData — временные данные обучения
type LearningData struct {
	// Для викторины
	CorrectQuizAnswer string
	QuizOptions       []string
	UseLabels         bool

	// Для перевода слова
	OriginalText string
	SourceLang   string
	TargetLang   string
}

// ChatData — временные данные чата
type ChatData struct {
	Persona string
}

// Data — данные активного workflow. Ровно одно поле не nil:
// смена workflow пересоздаёт Data, поэтому данные одного workflow
// по построению не видны другому.
type Data struct {
	Translation *TranslationData
	Learning    *LearningData
	Chat        *ChatData
}

// Session — диалоговая сессия одного пользователя. Все обращения идут
// под мьютексом сессии через Manager.Acquire / Release.
type Session struct {
	mu sync.Mutex

	State       string
	Data        Data
	recentItems []string
}

// Manager раздаёт сессии по идентификатору пользователя.
// Сессии разных пользователей не блокируют друг друга.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[int64]*Session)}
}

// Acquire возвращает сессию пользователя, захватив её мьютекс.
// Пока сессия не освобождена, следующее сообщение того же пользователя
// ждёт: медленный запрос к провайдеру не даст сообщению N+1 увидеть
// полуобновлённые данные.
func (m *Manager) Acquire(userID int64) *Session {
	m.mu.Lock()
	s, ok := m.sessions[userID]
	if !ok {
		s = &Session{State: models.StateIdle}
		m.sessions[userID] = s
	}
	m.mu.Unlock()

	s.mu.Lock()
	return s
}

// Release освобождает сессию
func (s *Session) Release() {
	s.mu.Unlock()
}

// Clear сбрасывает данные workflow и окно недавних. Профиль пользователя
// не трогаем — он живёт в базе.
func (s *Session) Clear() {
	s.Data = Data{}
	s.recentItems = nil
}

// Translation возвращает данные переводчика, при необходимости
// переключая сессию на этот workflow
func (s *Session) Translation() *TranslationData {
	if s.Data.Translation == nil {
		s.Data = Data{Translation: &TranslationData{}}
	}
	return s.Data.Translation
}

// Learning возвращает данные обучения, при необходимости
// переключая сессию на этот workflow
func (s *Session) Learning() *LearningData {
	if s.Data.Learning == nil {
		s.Data = Data{Learning: &LearningData{}}
	}
	return s.Data.Learning
}

// Chat возвращает данные чата, при необходимости
// переключая сессию на этот workflow
func (s *Session) Chat() *ChatData {
	if s.Data.Chat == nil {
		s.Data = Data{Chat: &ChatData{}}
	}
	return s.Data.Chat
}

// RememberItem дописывает метку в окно недавних, отрезая старое спереди
func (s *Session) RememberItem(label string) {
	if label == "" {
		return
	}
	s.recentItems = append(s.recentItems, label)
	if len(s.recentItems) > maxRecentItems {
		s.recentItems = s.recentItems[len(s.recentItems)-maxRecentItems:]
	}
}

// RecentItems возвращает копию окна недавних
func (s *Session) RecentItems() []string {
	out := make([]string, len(s.recentItems))
	copy(out, s.recentItems)
	return out
}
