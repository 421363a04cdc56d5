/*
gemini.go - Completer backed by the Gemini generateContent REST API

PURPOSE:
  Serializes the transcript into the provider's content format, applies
  the portal's system instruction and generation settings, and extracts
  the first candidate's text. All failures - transport, non-2xx status,
  unparseable body, empty candidates - surface as ErrProvider so the
  service layer can substitute the fallback reply.
*/
package assistant

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-3-flash-preview"
)

const systemInstructionTemplate = `You are the 汎亞國際 (PAN-ASIA International) Assistant, a helpful AI dedicated to Filipino Migrant Workers in Taiwan.
        The current user language preference is: %s.

        Guidelines:
        1. If user asks in Chinese, respond in Chinese using the name '汎亞國際'.
        2. If user asks in English or Tagalog, respond in Taglish (English mixed with Tagalog).
        3. Provide accurate information about Taiwan Labor Standards Act (LSA), daily life, and emergency procedures.
        4. Always remain supportive and friendly.
        5. If asked about sensitive legal issues, advise contacting 汎亞國際 (PAN-ASIA) coordinator immediately.
        Keep answers concise.`

// GeminiClient implements Completer over the generateContent endpoint.
type GeminiClient struct {
	APIKey  string
	Model   string
	BaseURL string
	HTTP    *http.Client
}

var _ Completer = (*GeminiClient)(nil)

// NewGeminiClient builds a client with the default model and endpoint.
func NewGeminiClient(apiKey string) *GeminiClient {
	return &GeminiClient{
		APIKey:  apiKey,
		Model:   defaultModel,
		BaseURL: defaultBaseURL,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Wire types for the generateContent request/response. Only the fields
// this client reads or writes are modeled.
type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"topP"`
	TopK        int     `json:"topK"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent         `json:"system_instruction,omitempty"`
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Complete sends the transcript plus prompt and returns the first
// candidate's text.
func (c *GeminiClient) Complete(ctx context.Context, prompt string, history []Message, locale Locale) (string, error) {
	langPref := "English/Tagalog"
	if locale == LocaleZH {
		langPref = "Traditional Chinese"
	}

	contents := make([]geminiContent, 0, len(history)+1)
	for _, m := range history {
		role := "user"
		if m.Speaker == SpeakerModel {
			role = "model"
		}
		contents = append(contents, geminiContent{Role: role, Parts: []geminiPart{{Text: m.Text}}})
	}
	contents = append(contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: prompt}}})

	reqBody := geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: fmt.Sprintf(systemInstructionTemplate, langPref)}},
		},
		Contents: contents,
		GenerationConfig: geminiGenerationConfig{
			Temperature: 0.7,
			TopP:        0.8,
			TopK:        40,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", ErrProvider, err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.BaseURL, c.Model, c.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrProvider, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrProvider, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrProvider, resp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrProvider, err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty candidates", ErrProvider)
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

func (c *GeminiClient) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}
