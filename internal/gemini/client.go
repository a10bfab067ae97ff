// Package gemini предоставляет клиент генеративного провайдера (Gemini API).
package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/Karen042009/Arvion-telegram-bot/pkg/models"
)

// Client — клиент Gemini. Любая ошибка вызова, таймаут или ответ без
// кандидатов трактуются одинаково: вызывающий получает ошибку и сам
// решает, повторять ли запрос.
type Client struct {
	api     *genai.Client
	model   string
	timeout time.Duration
	log     *zap.Logger
}

func NewClient(ctx context.Context, apiKey, model string, timeout time.Duration, log *zap.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("пустой API-ключ Gemini")
	}
	api, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("не удалось создать клиент Gemini: %w", err)
	}
	return &Client{api: api, model: model, timeout: timeout, log: log}, nil
}

// Generate выполняет один запрос генерации. structured=true просит у модели
// чистый JSON (application/json).
func (c *Client) Generate(ctx context.Context, prompt string, structured bool, temperature float32) (string, error) {
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	return c.generate(ctx, contents, c.config(structured, temperature, ""))
}

// GenerateVision — генерация по промпту и изображению
func (c *Client) GenerateVision(ctx context.Context, prompt string, image []byte, mimeType string, temperature float32) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromBytes(image, mimeType),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	return c.generate(ctx, contents, c.config(true, temperature, ""))
}

// GenerateChat — генерация ответа в диалоге: история + новая реплика,
// persona уходит системной инструкцией
func (c *Client) GenerateChat(ctx context.Context, history []models.ChatRecord, userText, persona string) (string, error) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, rec := range history {
		role := genai.Role(genai.RoleUser)
		if rec.Role == "model" {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(rec.Content, role))
	}
	contents = append(contents, genai.NewContentFromText(userText, genai.RoleUser))

	return c.generate(ctx, contents, c.config(false, 0.7, persona))
}

func (c *Client) config(structured bool, temperature float32, persona string) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{Temperature: genai.Ptr(temperature)}
	if structured {
		cfg.ResponseMIMEType = "application/json"
	}
	if persona != "" {
		cfg.SystemInstruction = genai.NewContentFromText(persona, genai.RoleUser)
	}
	return cfg
}

func (c *Client) generate(ctx context.Context, contents []*genai.Content, cfg *genai.GenerateContentConfig) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqID := uuid.NewString()
	start := time.Now()
	c.log.Debug("Запрос к Gemini", zap.String("request_id", reqID), zap.String("model", c.model))

	resp, err := c.api.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		c.log.Warn("Ошибка Gemini",
			zap.String("request_id", reqID),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", fmt.Errorf("ошибка генерации: %w", err)
	}

	if len(resp.Candidates) == 0 {
		c.log.Warn("Gemini вернул пустой список кандидатов", zap.String("request_id", reqID))
		return "", fmt.Errorf("нет кандидатов в ответе")
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("пустой текст в ответе")
	}

	c.log.Debug("Ответ Gemini получен",
		zap.String("request_id", reqID),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("length", len(text)))
	return text, nil
}

// CleanJSON срезает markdown-ограждения вокруг JSON: модели любят
// заворачивать ответ в ```json … ``` даже при structured-режиме.
func CleanJSON(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}
