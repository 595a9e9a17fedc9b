// Package web answers open internet questions through the Tavily search API
// and fans out question batches with staggered starts and bounded timeouts.
package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.tavily.com"

// Searcher answers a single question with a short synthesized answer.
type Searcher interface {
	Answer(ctx context.Context, question string) (string, error)
}

// TavilyClient implements Searcher against the Tavily /search endpoint in
// QnA mode: the API reads the hits and returns one answer string.
type TavilyClient struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

var _ Searcher = &TavilyClient{}

func NewTavilyClient(apiKey string) *TavilyClient {
	return &TavilyClient{
		BaseURL: defaultBaseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type tavilyRequest struct {
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth"`
	Topic         string `json:"topic"`
	Days          int    `json:"days"`
	MaxResults    int    `json:"max_results"`
	IncludeAnswer bool   `json:"include_answer"`
}

type tavilyResponse struct {
	Answer  string `json:"answer"`
	Results []struct {
		Title   string  `json:"title"`
		URL     string  `json:"url"`
		Content string  `json:"content"`
		Score   float64 `json:"score"`
	} `json:"results"`
}

func (c *TavilyClient) Answer(ctx context.Context, question string) (string, error) {
	reqPayload := tavilyRequest{
		Query:         question,
		SearchDepth:   "advanced",
		Topic:         "general",
		Days:          365,
		MaxResults:    6,
		IncludeAnswer: true,
	}
	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/search", bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("tavily request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tavily error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var tavilyResp tavilyResponse
	if err := json.Unmarshal(bodyBytes, &tavilyResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if tavilyResp.Answer == "" {
		return "", fmt.Errorf("tavily returned no answer for question")
	}
	return tavilyResp.Answer, nil
}
