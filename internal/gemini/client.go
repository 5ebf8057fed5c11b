// Package gemini calls the Gemini generateContent endpoint to produce
// a document summary and a ten-question quiz from extracted text.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/veyselka/AI-LIB/internal/utils"
)

const (
	temperature     = 0.5
	maxOutputTokens = 8192
)

var (
	// ErrNoCandidates means the service answered 200 but returned no
	// candidates at all.
	ErrNoCandidates = errors.New("gemini: response contained no candidates")
	// ErrEmptyContent means a candidate existed but carried no text
	// part. Kept distinct from ErrNoCandidates so callers can tell a
	// genuinely empty generation from an unexpected response shape.
	ErrEmptyContent = errors.New("gemini: candidate contained no text content")
)

type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	logger  *utils.Logger
}

func NewClient(apiKey, model, baseURL string, timeout time.Duration, logger *utils.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Summarize produces a long-form structured summary of the document.
func (c *Client) Summarize(ctx context.Context, text, title string) (string, error) {
	prompt := buildSummaryPrompt(text, title)
	return c.generateContent(ctx, prompt)
}

// GenerateQuestions produces the quiz payload: exactly ten questions,
// five classic and five multiple-choice. The returned JSON is validated
// against the questions schema before being handed back.
func (c *Client) GenerateQuestions(ctx context.Context, text, title string) (string, error) {
	prompt := buildQuestionsPrompt(text, title)

	payload, err := c.generateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	if err := ValidateQuestionsPayload(payload); err != nil {
		return "", fmt.Errorf("gemini: questions payload rejected: %w", err)
	}

	return payload, nil
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *Client) generateContent(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{
			Temperature:     temperature,
			MaxOutputTokens: maxOutputTokens,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("gemini: failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("gemini: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gemini: failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Gemini API error", "status", resp.StatusCode, "body", truncate(string(body), 500))
		return "", fmt.Errorf("gemini: API returned status %d", resp.StatusCode)
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("gemini: failed to unmarshal response: %w", err)
	}

	if genResp.Error != nil {
		return "", fmt.Errorf("gemini: API error %d: %s", genResp.Error.Code, genResp.Error.Message)
	}

	if len(genResp.Candidates) == 0 {
		return "", ErrNoCandidates
	}

	parts := genResp.Candidates[0].Content.Parts
	if len(parts) == 0 || strings.TrimSpace(parts[0].Text) == "" {
		return "", ErrEmptyContent
	}

	return stripCodeFence(parts[0].Text), nil
}

// stripCodeFence removes a wrapping markdown code fence, including an
// optional language tag on the opening fence, since the model tends to
// wrap JSON output that way.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = text[3:]
		// drop a language tag like "json" up to the first newline
		if idx := strings.Index(text, "\n"); idx >= 0 && !strings.ContainsAny(text[:idx], "{[\"") {
			text = text[idx+1:]
		}
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")

	return strings.TrimSpace(text)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
