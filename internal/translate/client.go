package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// 言語判定と翻訳の約束。失敗は呼び出し側が吸収する
type Translator interface {
	Detect(ctx context.Context, text string) (string, error)
	Translate(ctx context.Context, text string, source string, target string) (string, error)
}

type detectRequest struct {
	Q string `json:"q"`
}

type detectResult struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// DI。timeout<=0なら5秒
func NewClient(baseURL string, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	if c.baseURL == "" {
		return fmt.Errorf("translator not configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("translate api status %d: %s", resp.StatusCode, string(raw))
	}

	return json.Unmarshal(raw, out)
}

// 検出できなければエラー。呼び出し側は英語扱いにフォールバック
func (c *Client) Detect(ctx context.Context, text string) (string, error) {
	var results []detectResult
	if err := c.post(ctx, "/detect", detectRequest{Q: text}, &results); err != nil {
		return "", err
	}
	if len(results) == 0 || results[0].Language == "" {
		return "", fmt.Errorf("translate api empty detection")
	}
	return results[0].Language, nil
}

func (c *Client) Translate(ctx context.Context, text string, source string, target string) (string, error) {
	if source == target {
		return text, nil
	}

	var out translateResponse
	err := c.post(ctx, "/translate", translateRequest{
		Q:      text,
		Source: source,
		Target: target,
		Format: "text",
	}, &out)
	if err != nil {
		return "", err
	}
	if out.TranslatedText == "" {
		return "", fmt.Errorf("translate api empty translation")
	}
	return out.TranslatedText, nil
}
