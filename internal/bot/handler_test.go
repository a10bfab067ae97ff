package bot

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Karen042009/Arvion-telegram-bot/internal/content"
	"github.com/Karen042009/Arvion-telegram-bot/internal/database"
	"github.com/Karen042009/Arvion-telegram-bot/internal/gemini"
	"github.com/Karen042009/Arvion-telegram-bot/pkg/locales"
	"github.com/Karen042009/Arvion-telegram-bot/pkg/models"
)

const testUserID int64 = 42

type sentMessage struct {
	chatID   int64
	text     string
	keyboard interface{}
}

type fakeSender struct {
	sent    []sentMessage
	deleted []int
	voices  int
	nextID  int
}

func (f *fakeSender) SendText(chatID int64, text string, keyboard interface{}) (int, error) {
	f.nextID++
	f.sent = append(f.sent, sentMessage{chatID, text, keyboard})
	return f.nextID, nil
}

func (f *fakeSender) DeleteMessage(_ int64, messageID int) {
	f.deleted = append(f.deleted, messageID)
}

func (f *fakeSender) SendVoice(int64, []byte) error {
	f.voices++
	return nil
}

func (f *fakeSender) Download(string) ([]byte, error) {
	return []byte("image-bytes"), nil
}

type fakeProvider struct {
	translateCalls int
	lastTranslated string
	imageFoundText string
	chatCalls      int
	lastPersona    string
}

func (f *fakeProvider) Translate(_ context.Context, text, _, _ string) (*gemini.TranslationResult, error) {
	f.translateCalls++
	f.lastTranslated = text
	return &gemini.TranslationResult{DetectedLanguageName: "English", TranslatedText: "перевод"}, nil
}

func (f *fakeProvider) TranslateImage(_ context.Context, _ []byte, _, _ string) (*gemini.TranslationResult, error) {
	f.translateCalls++
	return &gemini.TranslationResult{DetectedLanguageName: "English", TranslatedText: "перевод", FoundText: f.imageFoundText}, nil
}

func (f *fakeProvider) EvaluateTranslation(context.Context, string, string, string, string) (string, error) {
	return "Хороший перевод!", nil
}

func (f *fakeProvider) FunFact(context.Context, string, string, string) (string, error) {
	return "Интересный факт.", nil
}

func (f *fakeProvider) Chat(_ context.Context, _ int64, _ string, persona string) (string, error) {
	f.chatCalls++
	f.lastPersona = persona
	return "Ответ ассистента", nil
}

type fakeContent struct {
	item *models.GeneratedItem
	err  error
	reqs []content.Request
}

func (f *fakeContent) Request(_ context.Context, rec content.Recency, req content.Request) (*models.GeneratedItem, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return nil, f.err
	}
	rec.RememberItem(f.item.Label())
	return f.item, nil
}

type fakeVoice struct {
	calls int
}

func (f *fakeVoice) Synthesize(context.Context, string, string) ([]byte, error) {
	f.calls++
	return []byte("mp3"), nil
}

type harness struct {
	t       *testing.T
	bot     *Bot
	sender  *fakeSender
	ai      *fakeProvider
	content *fakeContent
	voice   *fakeVoice
	db      *database.DB
	en      map[string]string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db, err := database.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	table, err := locales.Load()
	require.NoError(t, err)

	sender := &fakeSender{}
	ai := &fakeProvider{}
	fc := &fakeContent{}
	voice := &fakeVoice{}

	return &harness{
		t:       t,
		bot:     newBot(sender, db, ai, fc, voice, table, zap.NewNop()),
		sender:  sender,
		ai:      ai,
		content: fc,
		voice:   voice,
		db:      db,
		en:      table.Resolve("en"),
	}
}

func (h *harness) sendText(text string) {
	h.bot.handleUpdate(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: testUserID},
		Chat:      &tgbotapi.Chat{ID: testUserID},
		Text:      text,
	}})
}

func (h *harness) sendCommand(cmd string) {
	text := "/" + cmd
	h.bot.handleUpdate(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: testUserID},
		Chat:      &tgbotapi.Chat{ID: testUserID},
		Text:      text,
		Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}},
	}})
}

func (h *harness) sendPhoto() {
	h.bot.handleUpdate(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: testUserID},
		Chat:      &tgbotapi.Chat{ID: testUserID},
		Photo:     []tgbotapi.PhotoSize{{FileID: "photo-1"}},
	}})
}

// press нажимает кнопку по её английской надписи
func (h *harness) press(key string) {
	h.sendText(h.en[key])
}

func (h *harness) state() string {
	s := h.bot.sessions.Acquire(testUserID)
	defer s.Release()
	return s.State
}

func (h *harness) recentItems() []string {
	s := h.bot.sessions.Acquire(testUserID)
	defer s.Release()
	return s.RecentItems()
}

func (h *harness) lastSent() string {
	require.NotEmpty(h.t, h.sender.sent)
	return h.sender.sent[len(h.sender.sent)-1].text
}

func (h *harness) profile() *models.UserProfile {
	p, err := h.db.GetOrCreateUser(testUserID)
	require.NoError(h.t, err)
	return p
}

func TestStartShowsMainMenu(t *testing.T) {
	h := newHarness(t)

	h.sendCommand("start")

	assert.Equal(t, models.StateIdle, h.state())
	require.Len(t, h.sender.sent, 2)
	assert.Equal(t, h.en["welcome"], h.sender.sent[0].text)
	assert.Equal(t, h.en["main_menu_text"], h.sender.sent[1].text)
}

func TestIdleIgnoresUnknownText(t *testing.T) {
	h := newHarness(t)

	h.sendText("просто болтовня в меню")

	assert.Empty(t, h.sender.sent)
	assert.Equal(t, models.StateIdle, h.state())
}

func TestSettingsRoundTrip(t *testing.T) {
	h := newHarness(t)

	h.press("settings_button")
	assert.Equal(t, models.StateInSettings, h.state())

	h.press("interface_lang_button")
	assert.Equal(t, models.StateAwaitingInterfaceLang, h.state())

	h.sendText("Русский")
	assert.Equal(t, models.StateInSettings, h.state())
	assert.Equal(t, "ru", h.profile().InterfaceLang)

	// подтверждение уже на новом языке интерфейса
	ru := h.bot.locales.Resolve("ru")
	texts := make([]string, 0, len(h.sender.sent))
	for _, m := range h.sender.sent {
		texts = append(texts, m.text)
	}
	assert.Contains(t, texts, ru["settings_updated"])
}

func TestSettingsInvalidInputIgnored(t *testing.T) {
	h := newHarness(t)

	h.press("settings_button")
	h.press("native_lang_button")
	before := len(h.sender.sent)

	h.sendText("не язык вовсе")

	assert.Equal(t, models.StateAwaitingNativeLang, h.state())
	assert.Len(t, h.sender.sent, before)
}

func TestTranslationAndTTSFallthrough(t *testing.T) {
	h := newHarness(t)

	h.press("translate_button")
	assert.Equal(t, models.StateInTranslationMode, h.state())

	h.sendText("hello world")
	assert.Equal(t, 1, h.ai.translateCalls)
	assert.Equal(t, models.StateAwaitingTTSChoice, h.state())
	assert.Equal(t, 1, h.profile().TranslationsCount)

	// нераспознанный текст в awaiting_tts_choice — следующий перевод
	h.sendText("how are you")
	assert.Equal(t, 2, h.ai.translateCalls)
	assert.Equal(t, "how are you", h.ai.lastTranslated)
	assert.Equal(t, models.StateAwaitingTTSChoice, h.state())
}

func TestTTSChoiceSendsVoice(t *testing.T) {
	h := newHarness(t)

	h.press("translate_button")
	h.sendText("hello world")

	h.press("tts_target")
	assert.Equal(t, 1, h.voice.calls)
	assert.Equal(t, 1, h.sender.voices)
	assert.Equal(t, models.StateAwaitingTTSChoice, h.state())
}

func TestSwapRefusedForAutoDetect(t *testing.T) {
	h := newHarness(t)

	h.press("translate_button")
	h.press("translator_swap")

	assert.Equal(t, h.en["cannot_swap_auto"], h.lastSent())
	assert.Equal(t, models.StateInTranslationMode, h.state())
}

func TestWordFlowAndBackToMenuClears(t *testing.T) {
	h := newHarness(t)
	h.content.item = &models.GeneratedItem{Item: "perro", Translation: "dog"}

	h.press("learn_button")
	assert.Equal(t, models.StateInLearningMenu, h.state())

	h.press("new_word")
	assert.Equal(t, models.StateAwaitingLearningAnswer, h.state())
	assert.Equal(t, []string{"perro"}, h.recentItems())

	h.press("back_to_main_menu")
	assert.Equal(t, models.StateIdle, h.state())
	assert.Empty(t, h.recentItems())
	// профиль возврат в меню не трогает
	assert.Equal(t, "es", h.profile().LearningLang)
}

func TestQuizFlow(t *testing.T) {
	h := newHarness(t)
	h.content.item = &models.GeneratedItem{
		Question:          "Столица Испании?",
		Options:           []string{"Мадрид", "Барселона"},
		CorrectAnswerText: "Мадрид",
	}

	h.press("learn_button")
	h.press("quiz")
	assert.Equal(t, models.StateAwaitingQuizAnswer, h.state())

	h.sendText("мадрид")
	assert.Equal(t, models.StateInLearningMenu, h.state())
	assert.Equal(t, 1, h.profile().QuizzesPassedCount)
	assert.Contains(t, h.lastSent(), "Мадрид")
}

func TestGenerationFailureReturnsToMenu(t *testing.T) {
	h := newHarness(t)
	h.content.err = content.ErrGenerationFailed

	h.press("learn_button")
	h.press("new_word")

	assert.Equal(t, models.StateInLearningMenu, h.state(),
		"после неудачи пользователь не застревает в ожидании материала")
	assert.Equal(t, h.en["generation_error"], h.lastSent())
}

func TestChatFlow(t *testing.T) {
	h := newHarness(t)

	h.press("chat_button")
	assert.Equal(t, models.StateInChatMenu, h.state())

	h.press("chat_mode_regular")
	assert.Equal(t, models.StateInChat, h.state())

	h.sendText("привет!")
	assert.Equal(t, 1, h.ai.chatCalls)
	assert.Equal(t, "Ответ ассистента", h.lastSent())

	h.sendCommand("reset")
	assert.Equal(t, h.en["chat_history_cleared"], h.lastSent())
}

func TestRoleplayPersona(t *testing.T) {
	h := newHarness(t)

	h.press("chat_button")
	h.press("chat_mode_roleplay")
	assert.Equal(t, models.StateAwaitingRoleplayScenario, h.state())

	h.press("roleplay_hotel")
	assert.Equal(t, models.StateInRoleplay, h.state())

	h.sendText("Hello!")
	// персона параметризована изучаемым языком (по умолчанию испанский)
	assert.Contains(t, h.ai.lastPersona, "Spanish")
}

func TestStatsCommand(t *testing.T) {
	h := newHarness(t)

	h.press("translate_button")
	h.sendText("hello")
	h.sendCommand("stats")

	assert.Contains(t, h.lastSent(), "1")
	assert.Equal(t, models.StateIdle, h.state())
}

// /stats — такой же возврат в idle, как и кнопка меню: данные workflow
// и окно недавних не переживают его
func TestStatsCommandClearsWorkflowData(t *testing.T) {
	h := newHarness(t)
	h.content.item = &models.GeneratedItem{Item: "perro", Translation: "собака"}

	h.press("learn_button")
	h.press("new_word")
	require.Equal(t, []string{"perro"}, h.recentItems())

	h.sendCommand("stats")

	assert.Equal(t, models.StateIdle, h.state())
	assert.Empty(t, h.recentItems())
	assert.Equal(t, "es", h.profile().LearningLang, "профиль сброс не трогает")
}

// Кнопка озвучки при пустом исходном тексте (фото без распознанного
// текста) не должна уйти на перевод собственной надписью
func TestVoiceChoiceWithoutSourceText(t *testing.T) {
	h := newHarness(t)
	h.ai.imageFoundText = ""

	h.press("translate_button")
	h.sendPhoto()
	require.Equal(t, models.StateAwaitingTTSChoice, h.state())
	require.Equal(t, 1, h.ai.translateCalls)

	h.press("tts_source")

	assert.Equal(t, 1, h.ai.translateCalls, "надпись кнопки не стала новым запросом")
	assert.Equal(t, 0, h.voice.calls)
	assert.Equal(t, h.en["voice_error"], h.lastSent())
	assert.Equal(t, models.StateAwaitingTTSChoice, h.state())
}
