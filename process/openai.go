package process

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go-mod.ewintr.nl/vid2blog/model"
)

const (
	DefaultOpenAIModel   = "gpt-4o"
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
)

type CompletionParams struct {
	Temperature float32
	MaxTokens   int
}

// Completer turns a prompt into text.
type Completer interface {
	Complete(ctx context.Context, prompt string, params CompletionParams) (string, error)
}

type OpenAI struct {
	client *openai.Client
	model  string
}

func NewOpenAI(apiKey, baseURL, model string, httpClient *http.Client) *OpenAI {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if httpClient != nil {
		config.HTTPClient = httpClient
	}
	if model == "" {
		model = DefaultOpenAIModel
	}

	return &OpenAI{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (o *OpenAI) Complete(ctx context.Context, prompt string, params CompletionParams) (string, error) {
	const systemPrompt = `You are an experienced content writer. You turn video material into written articles and follow the instructions of the user exactly.`

	resp, err := o.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       o.model,
			Temperature: params.Temperature,
			MaxTokens:   params.MaxTokens,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		})
	if err != nil {
		return "", fmt.Errorf("failed to fetch completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion has no choices")
	}

	return resp.Choices[len(resp.Choices)-1].Message.Content, nil
}

const (
	MessageQuotaExceeded      = "OpenAI API quota exceeded. Please check your billing details."
	MessageRateLimited        = "Too many requests. Please try again in a few moments."
	MessageServiceUnavailable = "AI service is currently unavailable. Please try again later or contact support."
	MessageGenerationFailed   = "Failed to generate blog post"
)

// classify maps a completion failure onto the error taxonomy. Quota is
// checked before rate limiting, both arrive as a 429.
func classify(err error) *model.Error {
	if e, ok := model.AsError(err); ok {
		return e
	}

	var status int
	text := strings.ToLower(err.Error())
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
		text = strings.ToLower(fmt.Sprintf("%s %v %s", apiErr.Type, apiErr.Code, apiErr.Message))
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	switch {
	case strings.Contains(text, "insufficient_quota"):
		return model.NewError(model.KindUpstreamUnavailable, model.CodeQuotaExceeded, MessageQuotaExceeded, err)
	case status == http.StatusTooManyRequests || strings.Contains(text, "rate_limit"):
		return model.NewError(model.KindUpstreamUnavailable, model.CodeRateLimited, MessageRateLimited, err)
	case status == http.StatusBadGateway || status == http.StatusServiceUnavailable || status == http.StatusGatewayTimeout:
		return model.NewError(model.KindUpstreamUnavailable, model.CodeServiceUnavailable, MessageServiceUnavailable, err)
	default:
		return model.NewError(model.KindInternal, model.CodeGenerationFailed, MessageGenerationFailed, err)
	}
}
