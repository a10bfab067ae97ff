package bot

import (
	"fmt"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Sender — исходящая сторона транспорта. Выделена в интерфейс, чтобы
// диспетчер тестировался без сети.
type Sender interface {
	// SendText отправляет текст с необязательной клавиатурой,
	// возвращает id сообщения
	SendText(chatID int64, text string, keyboard interface{}) (int, error)
	// DeleteMessage удаляет сообщение, ошибки проглатываются
	DeleteMessage(chatID int64, messageID int)
	// SendVoice отправляет голосовое сообщение (mp3)
	SendVoice(chatID int64, audio []byte) error
	// Download скачивает файл Telegram по идентификатору
	Download(fileID string) ([]byte, error)
}

// apiSender — боевой Sender поверх Bot API
type apiSender struct {
	api  *tgbotapi.BotAPI
	http *http.Client
	log  *zap.Logger
}

func newAPISender(api *tgbotapi.BotAPI, log *zap.Logger) *apiSender {
	return &apiSender{
		api:  api,
		http: &http.Client{Timeout: 30 * time.Second},
		log:  log,
	}
}

// SendText отправляет сообщение в HTML-разметке. Если Telegram отверг
// разметку, один повтор простым текстом: сгенерированный контент может
// содержать незакрытые теги.
func (s *apiSender) SendText(chatID int64, text string, keyboard interface{}) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if keyboard != nil {
		msg.ReplyMarkup = keyboard
	}

	sent, err := s.api.Send(msg)
	if err != nil {
		s.log.Debug("HTML-отправка не удалась, повтор простым текстом",
			zap.Int64("chat_id", chatID), zap.Error(err))
		msg.ParseMode = ""
		sent, err = s.api.Send(msg)
	}
	if err != nil {
		return 0, fmt.Errorf("не удалось отправить сообщение: %w", err)
	}
	return sent.MessageID, nil
}

func (s *apiSender) DeleteMessage(chatID int64, messageID int) {
	if _, err := s.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		s.log.Debug("Не удалось удалить сообщение",
			zap.Int64("chat_id", chatID), zap.Int("message_id", messageID), zap.Error(err))
	}
}

func (s *apiSender) SendVoice(chatID int64, audio []byte) error {
	voice := tgbotapi.NewVoice(chatID, tgbotapi.FileBytes{Name: "voice.mp3", Bytes: audio})
	if _, err := s.api.Send(voice); err != nil {
		return fmt.Errorf("не удалось отправить голосовое: %w", err)
	}
	return nil
}

func (s *apiSender) Download(fileID string) ([]byte, error) {
	url, err := s.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить ссылку на файл: %w", err)
	}
	resp, err := s.http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("не удалось скачать файл: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("скачивание файла: статус %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
