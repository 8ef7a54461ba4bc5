package fit

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAISummarizer condenses text with the OpenAI chat completions API.
type OpenAISummarizer struct {
	Model string
	Opts  []option.RequestOption
}

// NewOpenAISummarizer creates a summarizer for the given model. The API
// key is required; baseURL may be empty to use the default endpoint.
func NewOpenAISummarizer(model, apiKey, baseURL string) (*OpenAISummarizer, error) {
	if model == "" {
		return nil, errors.New("summarizer model is required")
	}
	if apiKey == "" {
		return nil, errors.New("openai api key missing")
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAISummarizer{Model: model, Opts: opts}, nil
}

// Summarize asks the model to rewrite text within the character budget.
// The model's answer is returned as-is; the caller enforces the budget.
func (o *OpenAISummarizer) Summarize(ctx context.Context, text string, budget int) (string, error) {
	client := openai.NewClient(o.Opts...)

	system := fmt.Sprintf(
		"You condense slide text. Rewrite the user's text in at most %d characters. "+
			"Keep the most important facts and figures. Reply with the rewritten text only.",
		budget,
	)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(text),
		},
	})
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("summarize: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
