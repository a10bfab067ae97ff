// Package tts озвучивает текст через публичную конечную точку
// Google Translate (mp3).
package tts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const endpoint = "https://translate.google.com/translate_tts"

// maxTextLen — предел длины фразы у конечной точки; более длинный
// текст обрезается по рунам
const maxTextLen = 200

type Client struct {
	http *http.Client
	log  *zap.Logger
}

func NewClient(timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
}

// Synthesize возвращает mp3-озвучку текста на языке lang (код вида "en")
func (c *Client) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("пустой текст для озвучки")
	}
	if runes := []rune(text); len(runes) > maxTextLen {
		text = string(runes[:maxTextLen])
	}

	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", lang)
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("запрос озвучки не удался: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("озвучка: статус %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать аудио: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("пустой аудиоответ")
	}

	c.log.Debug("Озвучка получена",
		zap.String("lang", lang),
		zap.Int("bytes", len(audio)),
		zap.Duration("elapsed", time.Since(start)))
	return audio, nil
}
