package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TaskCandidate is one structured task extracted from a brain dump. Every
// field except Title is optional; candidates pass through the same boundary
// validation as manually created tasks.
type TaskCandidate struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Area        string `json:"area,omitempty"`
	Bucket      string `json:"bucket,omitempty"`
	Priority    int    `json:"priority,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
}

// TaskSummary is the per-task context handed to the prioritization assistant.
type TaskSummary struct {
	Title          string `json:"title"`
	Status         string `json:"status"`
	Bucket         string `json:"bucket"`
	Priority       int    `json:"priority"`
	DueDate        string `json:"due_date,omitempty"`
	CompositeScore int    `json:"composite_score"`
}

type Client interface {
	ParseBrainDump(ctx context.Context, text string) ([]TaskCandidate, error)
	Prioritize(ctx context.Context, message string, tasks []TaskSummary) (string, error)
}

const brainDumpSystemPrompt = `You turn a free-text brain dump into a JSON array of tasks.
Each task: {"title": string (required), "description": string, "area": string,
"bucket": "today"|"this_week"|"later"|"backlog", "priority": 1-5 (1 highest),
"due_date": RFC3339 timestamp}.
Omit fields you cannot infer. Respond with the JSON array only.`

const prioritizeSystemPrompt = `You are a prioritization assistant for a personal task list.
You receive the user's current tasks as JSON, already ordered by composite score
(leverage + urgency + risk - friction, higher first). Recommend what to work on
and why, briefly.`

type HTTPClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewHTTPClient(baseURL, apiKey, model string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *HTTPClient) complete(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("oracle request: %w", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("oracle completion: %d %s", resp.StatusCode, string(data))
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("decode oracle response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("oracle returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

func (c *HTTPClient) ParseBrainDump(ctx context.Context, text string) ([]TaskCandidate, error) {
	content, err := c.complete(ctx, brainDumpSystemPrompt, text)
	if err != nil {
		return nil, err
	}

	var candidates []TaskCandidate
	if err := json.Unmarshal([]byte(extractJSON(content)), &candidates); err != nil {
		return nil, fmt.Errorf("parse brain dump output: %w", err)
	}
	return candidates, nil
}

func (c *HTTPClient) Prioritize(ctx context.Context, message string, tasks []TaskSummary) (string, error) {
	taskJSON, err := json.Marshal(tasks)
	if err != nil {
		return "", err
	}
	user := fmt.Sprintf("Current tasks:\n%s\n\nUser message: %s", taskJSON, message)
	return c.complete(ctx, prioritizeSystemPrompt, user)
}

// extractJSON strips markdown code fences and any prose around the first
// JSON array in the model output.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if i := strings.LastIndex(content, "```"); i >= 0 {
			content = content[:i]
		}
		content = strings.TrimSpace(content)
	}
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start >= 0 && end > start {
		return content[start : end+1]
	}
	return content
}
