// Package assistant answers reader questions about a single book through a
// hosted generative model.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// Defaults for the Gemini REST endpoint
const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-2.5-flash"
	DefaultTimeout = 30 * time.Second
)

// Book is what the assistant is told about the novel being discussed
type Book struct {
	Title   string
	Author  string
	Summary string
}

// Client answers a question about a book
type Client interface {
	Ask(ctx context.Context, book Book, question string) (string, error)
}

// Prompt renders the single-turn prompt sent for question
func Prompt(book Book, question string) string {
	return fmt.Sprintf("你是一个熟悉小说《%s》的AI助手。作者是%s。简介：%s。请回答读者的问题：%s",
		book.Title, book.Author, book.Summary, question)
}

// GeminiConfig configures the Gemini client
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Gemini talks to the generateContent endpoint of the Gemini API
type Gemini struct {
	cfg    GeminiConfig
	client *resty.Client
}

// NewGemini creates a Gemini client. Empty fields fall back to the defaults.
func NewGemini(cfg GeminiConfig) *Gemini {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetLogger(disableLogger{})

	return &Gemini{cfg: cfg, client: client}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Ask implements Client. The returned text may be empty when the model
// produced no text parts.
func (g *Gemini) Ask(ctx context.Context, book Book, question string) (string, error) {
	if g.cfg.APIKey == "" {
		return "", ErrNoCredential
	}

	var (
		result generateResponse
		failed apiError
	)

	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("x-goog-api-key", g.cfg.APIKey).
		SetPathParam("model", g.cfg.Model).
		SetBody(generateRequest{Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: Prompt(book, question)}},
		}}}).
		SetResult(&result).
		SetError(&failed).
		Post("/v1beta/models/{model}:generateContent")
	if err != nil {
		return "", errors.Wrap(err, "gemini request")
	}
	if resp.IsError() {
		msg := failed.Error.Message
		if msg == "" {
			msg = resp.Status()
		}
		return "", errors.Errorf("gemini: HTTP %d: %s", resp.StatusCode(), msg)
	}
	if len(result.Candidates) == 0 {
		return "", ErrNoAnswer
	}

	var sb strings.Builder
	for _, p := range result.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}

type disableLogger struct{}

func (disableLogger) Errorf(string, ...interface{}) {}
func (disableLogger) Warnf(string, ...interface{})  {}
func (disableLogger) Debugf(string, ...interface{}) {}
