package genai

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
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-pro"

	// Upstream calls carry no caller-configurable deadline; this cap keeps
	// an abandoned call from holding a connection forever.
	requestTimeout = 60 * time.Second
)

// ErrUpstream wraps every failure mode of the text-generation endpoint:
// transport errors, non-200 statuses, and replies with no extractable text.
var ErrUpstream = errors.New("text generation failed")

// Client is a minimal Gemini generateContent client. One synchronous call
// per Generate, no retries, no streaming.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = defaultModel
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// Model reports the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

type generateRequest struct {
	Contents []generateContent `json:"contents"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generatePart struct {
	Text string `json:"text"`
}

// The reply envelope is not uniform across API versions, so the response
// struct carries every shape we know how to read. Extraction tries them
// in order and fails if none yields text.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []generatePart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Text string `json:"text"`
}

type generateError struct {
	Error struct {
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate sends a single text prompt and returns the model's raw reply.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: GEMINI_API_KEY not set", ErrUpstream)
	}

	body, err := json.Marshal(generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrUpstream, err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr generateError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("%w: API error (%d): %s", ErrUpstream, resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("%w: API error (%d)", ErrUpstream, resp.StatusCode)
	}

	var genResp generateResponse
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", ErrUpstream, err)
	}

	text := extractText(genResp)
	if text == "" {
		return "", fmt.Errorf("%w: unexpected response shape", ErrUpstream)
	}
	return text, nil
}

func extractText(resp generateResponse) string {
	if len(resp.Candidates) > 0 {
		var b strings.Builder
		for _, p := range resp.Candidates[0].Content.Parts {
			b.WriteString(p.Text)
		}
		if b.Len() > 0 {
			return b.String()
		}
	}
	return resp.Text
}
