package ai

import (
	"context"
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// Fixed generation parameters. These are part of the service contract and
// deliberately not caller-controlled.
const (
	DefaultBaseURL = "https://ai.gateway.lovable.dev/v1"
	defaultModel   = "google/gemini-2.5-flash"

	generationTemperature = 0.7
	generationMaxTokens   = 8000
)

// gatewayClient performs one chat completion per call against the
// OpenAI-compatible LLM gateway. No retries here; retry policy, if any,
// belongs to the caller.
type gatewayClient struct {
	client *openai.Client
	model  string
}

func newGatewayClient(apiKey, baseURL, model string) *gatewayClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	cfg.BaseURL = baseURL
	if model == "" {
		model = defaultModel
	}
	return &gatewayClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// complete sends the two instruction strings and returns the raw reply
// text. Failures come back as *PipelineError classified by what the
// gateway answered (or failed to answer).
func (g *gatewayClient) complete(ctx context.Context, systemInstruction, userInstruction string) (string, error) {
	resp, err := g.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: g.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
				{Role: openai.ChatMessageRoleUser, Content: userInstruction},
			},
			Temperature: generationTemperature,
			MaxTokens:   generationMaxTokens,
		},
	)
	if err != nil {
		return "", classifyGatewayError(err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &PipelineError{Kind: KindEmptyResponse}
	}

	return resp.Choices[0].Message.Content, nil
}

// classifyGatewayError sorts a failed call into the kinds the handler maps
// to HTTP statuses. go-openai surfaces non-2xx responses as *APIError when
// the body carries an error envelope and *RequestError otherwise; anything
// else means the request never got an HTTP response.
func classifyGatewayError(err error) *PipelineError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return classifyUpstreamStatus(apiErr.HTTPStatusCode, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode > 0 {
		return classifyUpstreamStatus(reqErr.HTTPStatusCode, err)
	}

	return &PipelineError{Kind: KindTransportError, Err: err}
}

func classifyUpstreamStatus(status int, err error) *PipelineError {
	switch status {
	case http.StatusTooManyRequests:
		return &PipelineError{Kind: KindRateLimited, UpstreamStatus: status, Err: err}
	case http.StatusPaymentRequired:
		return &PipelineError{Kind: KindQuotaExceeded, UpstreamStatus: status, Err: err}
	default:
		return &PipelineError{Kind: KindUpstreamError, UpstreamStatus: status, Err: err}
	}
}
