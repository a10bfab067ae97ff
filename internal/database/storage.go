package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Karen042009/Arvion-telegram-bot/pkg/models"
)

// Колонки users, которые разрешено менять из диалога настроек.
// Всё остальное (счётчики, стрик) обновляется только своими методами.
var validSettingColumns = map[string]bool{
	"interface_lang":    true,
	"native_lang":       true,
	"learning_lang":     true,
	"learning_level":    true,
	"programming_lang":  true,
	"programming_level": true,
	"learning_mode":     true,
}

// Счётчики, которые разрешено инкрементировать
var validStatColumns = map[string]bool{
	"translations_count":    true,
	"words_learned_count":   true,
	"quizzes_passed_count":  true,
	"facts_requested_count": true,
}

// GetOrCreateUser возвращает профиль пользователя, создавая запись при первом обращении
func (db *DB) GetOrCreateUser(userID int64) (*models.UserProfile, error) {
	profile, err := db.getUser(userID)
	if err == nil {
		return profile, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("не удалось прочитать пользователя %d: %w", userID, err)
	}

	_, err = db.conn.Exec("INSERT OR IGNORE INTO users (user_id) VALUES (?)", userID)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать пользователя %d: %w", userID, err)
	}
	return db.getUser(userID)
}

func (db *DB) getUser(userID int64) (*models.UserProfile, error) {
	row := db.conn.QueryRow(`
		SELECT user_id, interface_lang, native_lang, learning_lang, learning_level,
		       programming_lang, programming_level, learning_mode,
		       translations_count, words_learned_count, quizzes_passed_count,
		       facts_requested_count, streak_count, last_activity_date
		FROM users WHERE user_id = ?`, userID)

	var p models.UserProfile
	err := row.Scan(
		&p.UserID, &p.InterfaceLang, &p.NativeLang, &p.LearningLang, &p.LearningLevel,
		&p.ProgrammingLang, &p.ProgrammingLevel, &p.LearningMode,
		&p.TranslationsCount, &p.WordsLearnedCount, &p.QuizzesPassedCount,
		&p.FactsRequested, &p.StreakCount, &p.LastActivityDate,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateUserSetting меняет одну колонку настроек. Имя колонки проверяется
// по allow-list, значение всегда уходит параметром.
func (db *DB) UpdateUserSetting(userID int64, setting, value string) error {
	if !validSettingColumns[setting] {
		return fmt.Errorf("запрещённая колонка настроек: %q", setting)
	}
	query := fmt.Sprintf("UPDATE users SET %s = ? WHERE user_id = ?", setting)
	if _, err := db.conn.Exec(query, value, userID); err != nil {
		return fmt.Errorf("не удалось обновить %s у пользователя %d: %w", setting, userID, err)
	}
	return nil
}

// IncrementUserStat увеличивает счётчик из allow-list и обновляет дневной стрик
func (db *DB) IncrementUserStat(userID int64, stat string) error {
	if err := db.updateDailyStreak(userID, time.Now()); err != nil {
		return err
	}
	if !validStatColumns[stat] {
		return fmt.Errorf("запрещённый счётчик: %q", stat)
	}
	query := fmt.Sprintf("UPDATE users SET %s = %s + 1 WHERE user_id = ?", stat, stat)
	if _, err := db.conn.Exec(query, userID); err != nil {
		return fmt.Errorf("не удалось увеличить %s у пользователя %d: %w", stat, userID, err)
	}
	return nil
}

// updateDailyStreak: активность вчера — +1, раньше — сброс в 1,
// сегодня уже было — ничего не делаем.
func (db *DB) updateDailyStreak(userID int64, now time.Time) error {
	today := now.Format("2006-01-02")
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")

	var streak int
	var lastActivity string
	row := db.conn.QueryRow(
		"SELECT streak_count, last_activity_date FROM users WHERE user_id = ?", userID)
	if err := row.Scan(&streak, &lastActivity); err != nil {
		if err == sql.ErrNoRows {
			return nil
		}
		return fmt.Errorf("не удалось прочитать стрик пользователя %d: %w", userID, err)
	}

	if lastActivity == today {
		return nil
	}

	newStreak := 1
	if lastActivity == yesterday {
		newStreak = streak + 1
	}

	_, err := db.conn.Exec(
		"UPDATE users SET streak_count = ?, last_activity_date = ? WHERE user_id = ?",
		newStreak, today, userID)
	if err != nil {
		return fmt.Errorf("не удалось обновить стрик пользователя %d: %w", userID, err)
	}
	return nil
}

// GetChatHistory возвращает последние limit записей истории в хронологическом порядке
func (db *DB) GetChatHistory(userID int64, limit int) ([]models.ChatRecord, error) {
	rows, err := db.conn.Query(`
		SELECT role, content FROM chat_history
		WHERE user_id = ? ORDER BY timestamp DESC, id DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать историю чата %d: %w", userID, err)
	}
	defer rows.Close()

	var history []models.ChatRecord
	for rows.Next() {
		var rec models.ChatRecord
		if err := rows.Scan(&rec.Role, &rec.Content); err != nil {
			return nil, err
		}
		history = append(history, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// DESC-выборка даёт записи от новых к старым, разворачиваем
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}
	return history, nil
}

// AddToChatHistory дописывает запись в историю чата
func (db *DB) AddToChatHistory(userID int64, role, content string) error {
	_, err := db.conn.Exec(
		"INSERT INTO chat_history (user_id, role, content) VALUES (?, ?, ?)",
		userID, role, content)
	if err != nil {
		return fmt.Errorf("не удалось сохранить сообщение пользователя %d: %w", userID, err)
	}
	return nil
}

// ClearChatHistory удаляет историю чата пользователя
func (db *DB) ClearChatHistory(userID int64) error {
	_, err := db.conn.Exec("DELETE FROM chat_history WHERE user_id = ?", userID)
	if err != nil {
		return fmt.Errorf("не удалось очистить историю чата %d: %w", userID, err)
	}
	return nil
}
