package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/kdduha/genai-relay/internal/models"
)

// APIError is a non-200 reply from the relay.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) NewRequest(ctx context.Context, prompt string, file *Attachment) (*http.Request, error) {
	payload, err := NewPayload(prompt, file)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+Endpoint(file), payload.Body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", payload.ContentType)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// Generate sends one request and returns the model text.
func (c *Client) Generate(ctx context.Context, prompt string, file *Attachment) (string, error) {
	req, err := c.NewRequest(ctx, prompt, file)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp models.ErrorResponse
		if err := sonic.Unmarshal(body, &errResp); err != nil || errResp.Error == "" {
			return "", &APIError{
				Status:  resp.StatusCode,
				Message: fmt.Sprintf("HTTP error! status: %d", resp.StatusCode),
			}
		}
		return "", &APIError{Status: resp.StatusCode, Message: errResp.Error}
	}

	var result models.GenerationResult
	if err := sonic.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return result.Result, nil
}
