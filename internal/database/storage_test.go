package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Karen042009/Arvion-telegram-bot/pkg/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestGetOrCreateUser(t *testing.T) {
	db := newTestDB(t)

	p, err := db.GetOrCreateUser(42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), p.UserID)
	assert.Equal(t, "en", p.InterfaceLang)
	assert.Equal(t, models.ModeHuman, p.LearningMode)
	assert.Equal(t, 0, p.StreakCount)

	// Повторный вызов возвращает ту же запись
	p2, err := db.GetOrCreateUser(42)
	require.NoError(t, err)
	assert.Equal(t, p, p2)
}

func TestUpdateUserSetting(t *testing.T) {
	db := newTestDB(t)
	_, err := db.GetOrCreateUser(1)
	require.NoError(t, err)

	require.NoError(t, db.UpdateUserSetting(1, "learning_lang", "de"))
	require.NoError(t, db.UpdateUserSetting(1, "learning_mode", models.ModeProgramming))

	p, err := db.GetOrCreateUser(1)
	require.NoError(t, err)
	assert.Equal(t, "de", p.LearningLang)
	assert.Equal(t, models.ModeProgramming, p.LearningMode)

	t.Run("rejects column outside allow-list", func(t *testing.T) {
		err := db.UpdateUserSetting(1, "streak_count", "999")
		assert.Error(t, err)
	})
}

func TestIncrementUserStat(t *testing.T) {
	db := newTestDB(t)
	_, err := db.GetOrCreateUser(1)
	require.NoError(t, err)

	require.NoError(t, db.IncrementUserStat(1, "translations_count"))
	require.NoError(t, db.IncrementUserStat(1, "translations_count"))
	require.NoError(t, db.IncrementUserStat(1, "quizzes_passed_count"))

	p, err := db.GetOrCreateUser(1)
	require.NoError(t, err)
	assert.Equal(t, 2, p.TranslationsCount)
	assert.Equal(t, 1, p.QuizzesPassedCount)

	t.Run("rejects stat outside allow-list", func(t *testing.T) {
		err := db.IncrementUserStat(1, "interface_lang")
		assert.Error(t, err)
	})
}

func setLastActivity(t *testing.T, db *DB, userID int64, streak int, date string) {
	t.Helper()
	_, err := db.conn.Exec(
		"UPDATE users SET streak_count = ?, last_activity_date = ? WHERE user_id = ?",
		streak, date, userID)
	require.NoError(t, err)
}

func TestDailyStreak(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")
	twoDaysAgo := now.AddDate(0, 0, -2).Format("2006-01-02")
	today := now.Format("2006-01-02")

	t.Run("activity yesterday increments streak", func(t *testing.T) {
		db := newTestDB(t)
		_, err := db.GetOrCreateUser(1)
		require.NoError(t, err)
		setLastActivity(t, db, 1, 4, yesterday)

		require.NoError(t, db.updateDailyStreak(1, now))

		p, err := db.GetOrCreateUser(1)
		require.NoError(t, err)
		assert.Equal(t, 5, p.StreakCount)
		assert.Equal(t, today, p.LastActivityDate)
	})

	t.Run("activity two days ago resets streak to 1", func(t *testing.T) {
		db := newTestDB(t)
		_, err := db.GetOrCreateUser(1)
		require.NoError(t, err)
		setLastActivity(t, db, 1, 9, twoDaysAgo)

		require.NoError(t, db.updateDailyStreak(1, now))

		p, err := db.GetOrCreateUser(1)
		require.NoError(t, err)
		assert.Equal(t, 1, p.StreakCount)
	})

	t.Run("second increment same day is a no-op", func(t *testing.T) {
		db := newTestDB(t)
		_, err := db.GetOrCreateUser(1)
		require.NoError(t, err)
		setLastActivity(t, db, 1, 2, yesterday)

		require.NoError(t, db.updateDailyStreak(1, now))
		require.NoError(t, db.updateDailyStreak(1, now))

		p, err := db.GetOrCreateUser(1)
		require.NoError(t, err)
		assert.Equal(t, 3, p.StreakCount)
	})
}

func TestChatHistory(t *testing.T) {
	db := newTestDB(t)
	_, err := db.GetOrCreateUser(7)
	require.NoError(t, err)

	require.NoError(t, db.AddToChatHistory(7, "user", "привет"))
	require.NoError(t, db.AddToChatHistory(7, "model", "здравствуйте"))
	require.NoError(t, db.AddToChatHistory(7, "user", "как дела?"))

	history, err := db.GetChatHistory(7, 20)
	require.NoError(t, err)
	require.Len(t, history, 3)
	// Хронологический порядок
	assert.Equal(t, "привет", history[0].Content)
	assert.Equal(t, "как дела?", history[2].Content)

	t.Run("limit keeps most recent entries", func(t *testing.T) {
		history, err := db.GetChatHistory(7, 2)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, "здравствуйте", history[0].Content)
		assert.Equal(t, "как дела?", history[1].Content)
	})

	t.Run("clear removes everything", func(t *testing.T) {
		require.NoError(t, db.ClearChatHistory(7))
		history, err := db.GetChatHistory(7, 20)
		require.NoError(t, err)
		assert.Empty(t, history)
	})
}
