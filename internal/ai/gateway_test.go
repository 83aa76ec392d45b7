package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// completionEnvelope is the outbound body shape the gateway expects.
type completionEnvelope struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

func newTestGenerator(t *testing.T, handler http.HandlerFunc) *Generator {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGenerator(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1"})
}

func replyWith(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	body := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	}
	json.NewEncoder(w).Encode(body)
}

func failWith(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"error":{"message":%q,"type":"gateway_error"}}`, message)
}

func requirePipelineError(t *testing.T, err error) *PipelineError {
	t.Helper()
	require.Error(t, err)
	var pipelineErr *PipelineError
	require.True(t, errors.As(err, &pipelineErr), "expected *PipelineError, got %T", err)
	return pipelineErr
}

func TestGenerateWebsiteSuccess(t *testing.T) {
	var captured completionEnvelope
	var authHeader string

	generator := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		replyWith(w, exactReply)
	})

	result, err := generator.GenerateWebsite(context.Background(), "a red heading")
	require.NoError(t, err)
	assert.Equal(t, exactResult, result)

	// Outbound contract: fixed model and sampling settings, bearer auth,
	// system instruction first and the prompt embedded verbatim.
	assert.Equal(t, "Bearer test-key", authHeader)
	assert.Equal(t, defaultModel, captured.Model)
	assert.InDelta(t, generationTemperature, captured.Temperature, 1e-6)
	assert.Equal(t, generationMaxTokens, captured.MaxTokens)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "user", captured.Messages[1].Role)
	assert.Contains(t, captured.Messages[1].Content, "a red heading")
}

func TestGenerateWebsiteRateLimited(t *testing.T) {
	generator := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		failWith(w, http.StatusTooManyRequests, "rate limited")
	})

	_, err := generator.GenerateWebsite(context.Background(), "anything")
	pipelineErr := requirePipelineError(t, err)
	assert.Equal(t, KindRateLimited, pipelineErr.Kind)
	assert.Equal(t, http.StatusTooManyRequests, pipelineErr.HTTPStatus())
	assert.Equal(t, http.StatusTooManyRequests, pipelineErr.UpstreamStatus)
}

func TestGenerateWebsiteQuotaExceeded(t *testing.T) {
	generator := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		failWith(w, http.StatusPaymentRequired, "out of credits")
	})

	_, err := generator.GenerateWebsite(context.Background(), "anything")
	pipelineErr := requirePipelineError(t, err)
	assert.Equal(t, KindQuotaExceeded, pipelineErr.Kind)
	assert.Equal(t, http.StatusPaymentRequired, pipelineErr.HTTPStatus())
}

func TestGenerateWebsiteUpstreamError(t *testing.T) {
	for _, status := range []int{http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable} {
		generator := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
			failWith(w, status, "upstream broke")
		})

		_, err := generator.GenerateWebsite(context.Background(), "anything")
		pipelineErr := requirePipelineError(t, err)
		assert.Equal(t, KindUpstreamError, pipelineErr.Kind)
		assert.Equal(t, http.StatusInternalServerError, pipelineErr.HTTPStatus())
		assert.Equal(t, status, pipelineErr.UpstreamStatus)
	}
}

func TestGenerateWebsiteNonJSONErrorBody(t *testing.T) {
	// Some proxies answer with plain text; classification must still see
	// the status code.
	generator := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, "slow down")
	})

	_, err := generator.GenerateWebsite(context.Background(), "anything")
	pipelineErr := requirePipelineError(t, err)
	assert.Equal(t, KindRateLimited, pipelineErr.Kind)
}

func TestGenerateWebsiteEmptyResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no choices", `{"choices":[]}`},
		{"empty content", `{"choices":[{"message":{"role":"assistant","content":""}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generator := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, tt.body)
			})

			_, err := generator.GenerateWebsite(context.Background(), "anything")
			pipelineErr := requirePipelineError(t, err)
			assert.Equal(t, KindEmptyResponse, pipelineErr.Kind)
			assert.Equal(t, http.StatusInternalServerError, pipelineErr.HTTPStatus())
		})
	}
}

func TestGenerateWebsiteTransportError(t *testing.T) {
	// Nothing listens here; the call fails before any HTTP response.
	generator := NewGenerator(Config{APIKey: "test-key", BaseURL: "http://127.0.0.1:1/v1"})

	_, err := generator.GenerateWebsite(context.Background(), "anything")
	pipelineErr := requirePipelineError(t, err)
	assert.Equal(t, KindTransportError, pipelineErr.Kind)
	assert.Equal(t, http.StatusInternalServerError, pipelineErr.HTTPStatus())
}

func TestGenerateWebsiteParseFailureKeepsRawOutOfResult(t *testing.T) {
	generator := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		replyWith(w, "I refuse to answer in JSON.")
	})

	result, err := generator.GenerateWebsite(context.Background(), "anything")
	pipelineErr := requirePipelineError(t, err)
	assert.Equal(t, KindParseFailure, pipelineErr.Kind)
	assert.Equal(t, "", result.HTML)
	assert.Equal(t, "", result.CSS)
	assert.Equal(t, "", result.JS)
}
