// Package llm provides generation backend adapters.
// Clean Architecture: Adapters implementing ports.LLMService.
package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dwern/portfolio-chat/internal/domain/ports"
)

// GeminiAdapter implements ports.LLMService using the Google Generative
// Language API. Streaming uses the SSE variant of streamGenerateContent.
type GeminiAdapter struct {
	baseURL string
	model   string
	apiKey  string
	client  *http.Client
}

// NewGeminiAdapter creates a new Gemini generation adapter.
func NewGeminiAdapter(baseURL, model, apiKey string) *GeminiAdapter {
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}
	if model == "" {
		model = "gemini-2.5-flash-lite"
	}
	return &GeminiAdapter{
		baseURL: baseURL,
		model:   model,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 300 * time.Second, // Longer timeout for streaming
		},
	}
}

type geminiGenerateRequest struct {
	Contents []geminiTurn `json:"contents"`
}

type geminiTurn struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (r geminiGenerateResponse) text() string {
	var sb strings.Builder
	for _, c := range r.Candidates {
		for _, p := range c.Content.Parts {
			sb.WriteString(p.Text)
		}
	}
	return sb.String()
}

func (a *GeminiAdapter) newRequest(ctx context.Context, url, prompt string) (*http.Request, error) {
	body := geminiGenerateRequest{
		Contents: []geminiTurn{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
	}
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", a.apiKey)
	return req, nil
}

// Generate produces a complete response for the given prompt.
func (a *GeminiAdapter) Generate(ctx context.Context, prompt string) (string, error) {
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", a.baseURL, a.model)
	req, err := a.newRequest(ctx, url, prompt)
	if err != nil {
		return "", err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling Gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Gemini returned status %d", resp.StatusCode)
	}

	var genResp geminiGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	return genResp.text(), nil
}

// GenerateStream produces a streaming response via the SSE API. Chunks are
// delivered in order; the channel is closed when the model signals
// completion. Cancelling the context abandons the call.
func (a *GeminiAdapter) GenerateStream(ctx context.Context, prompt string) (<-chan ports.StreamToken, error) {
	url := fmt.Sprintf("%s/v1beta/models/%s:streamGenerateContent?alt=sse", a.baseURL, a.model)
	req, err := a.newRequest(ctx, url, prompt)
	if err != nil {
		return nil, err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling Gemini: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("Gemini returned status %d", resp.StatusCode)
	}

	ch := make(chan ports.StreamToken, 1)

	go func() {
		defer close(ch)
		defer resp.Body.Close()

		// Every send races context cancellation so an abandoned caller
		// cannot park this goroutine on the channel and strand the body.
		send := func(token ports.StreamToken) bool {
			select {
			case ch <- token:
				return true
			case <-ctx.Done():
				return false
			}
		}

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			select {
			case <-ctx.Done():
				send(ports.StreamToken{Done: true, Error: ctx.Err()})
				return
			default:
			}

			line := scanner.Text()
			if !strings.HasPrefix(line, "data: ") {
				continue
			}
			payload := strings.TrimPrefix(line, "data: ")

			var chunk geminiGenerateResponse
			if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
				continue // Skip malformed lines
			}

			if !send(ports.StreamToken{Content: chunk.text()}) {
				return
			}
		}

		if err := scanner.Err(); err != nil {
			send(ports.StreamToken{Done: true, Error: err})
			return
		}
		send(ports.StreamToken{Done: true})
	}()

	return ch, nil
}
