package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/kdduha/genai-relay/internal/models"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

// OpenAIClient talks to any OpenAI compatible chat completions endpoint.
type OpenAIClient struct {
	client openai.Client
	model  string
}

func NewOpenAIClient(apiKey, baseURL, model string) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(baseURL),
		),
		model: model,
	}
}

func (o *OpenAIClient) Generate(ctx context.Context, parts []models.Part) (string, error) {
	content, err := toOpenAIContent(parts)
	if err != nil {
		return "", err
	}

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(content),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

var openAIAudioFormats = map[string]string{
	"audio/mpeg": "mp3",
	"audio/wav":  "wav",
}

func toOpenAIContent(parts []models.Part) ([]openai.ChatCompletionContentPartUnionParam, error) {
	content := make([]openai.ChatCompletionContentPartUnionParam, 0, len(parts))
	for _, p := range parts {
		if !p.IsInline() {
			content = append(content, openai.TextContentPart(p.Text))
			continue
		}

		inline := p.InlineData
		switch {
		case strings.HasPrefix(inline.MIMEType, "image/"):
			content = append(content, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
				URL: inline.DataURL(),
			}))
		case openAIAudioFormats[inline.MIMEType] != "":
			content = append(content, openai.InputAudioContentPart(openai.ChatCompletionContentPartInputAudioInputAudioParam{
				Data:   inline.Data,
				Format: openAIAudioFormats[inline.MIMEType],
			}))
		case strings.HasPrefix(inline.MIMEType, "text/"):
			raw, err := inline.Bytes()
			if err != nil {
				return nil, err
			}
			content = append(content, openai.TextContentPart(string(raw)))
		default:
			content = append(content, openai.FileContentPart(openai.ChatCompletionContentPartFileFileParam{
				FileData: openai.String(inline.DataURL()),
				Filename: openai.String("attachment"),
			}))
		}
	}
	return content, nil
}
