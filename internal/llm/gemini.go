package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/kdduha/genai-relay/internal/models"
	"google.golang.org/api/option"
)

type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: missing API key")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini init: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

func (g *GeminiClient) Generate(ctx context.Context, parts []models.Part) (string, error) {
	genParts, err := toGeminiParts(parts)
	if err != nil {
		return "", err
	}

	resp, err := g.client.GenerativeModel(g.model).GenerateContent(ctx, genParts...)
	if err != nil {
		return "", err
	}
	return geminiText(resp)
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

func toGeminiParts(parts []models.Part) ([]genai.Part, error) {
	out := make([]genai.Part, 0, len(parts))
	for _, p := range parts {
		if !p.IsInline() {
			out = append(out, genai.Text(p.Text))
			continue
		}
		data, err := p.InlineData.Bytes()
		if err != nil {
			return nil, fmt.Errorf("decode inline data: %w", err)
		}
		out = append(out, genai.Blob{MIMEType: p.InlineData.MIMEType, Data: data})
	}
	return out, nil
}

// geminiText joins the text parts of the first candidate.
func geminiText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		if resp != nil && resp.PromptFeedback != nil {
			return "", fmt.Errorf("gemini: prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return "", errors.New("gemini: empty response")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String(), nil
}
