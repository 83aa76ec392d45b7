package ai

import (
	"context"
	"log"

	"github.com/google/uuid"

	"webgen_server/internal/ai/prompts"
	"webgen_server/internal/types"
)

// Config carries the generation settings injected once at startup.
type Config struct {
	APIKey  string // bearer credential for the LLM gateway
	BaseURL string // OpenAI-compatible endpoint; DefaultBaseURL when empty
	Model   string // defaultModel when empty

	PromptStyle     prompts.Style
	RequireComplete bool
}

// Generator is the full generation pipeline: build the instructions, call
// the gateway once, normalize the reply. Stateless across requests.
type Generator struct {
	gateway    *gatewayClient
	style      prompts.Style
	normalizer Normalizer
}

func NewGenerator(cfg Config) *Generator {
	return &Generator{
		gateway:    newGatewayClient(cfg.APIKey, cfg.BaseURL, cfg.Model),
		style:      cfg.PromptStyle,
		normalizer: Normalizer{RequireComplete: cfg.RequireComplete},
	}
}

// GenerateWebsite runs one prompt through the pipeline. The returned
// error, when non-nil, is always a *PipelineError.
func (g *Generator) GenerateWebsite(ctx context.Context, prompt string) (types.GenerationResult, error) {
	generationID := uuid.New().String()
	log.Printf("Generating website %s", generationID)

	raw, err := g.gateway.complete(ctx, prompts.SystemInstruction(g.style), prompts.UserInstruction(prompt))
	if err != nil {
		log.Printf("Gateway call failed for %s: %v", generationID, err)
		return types.GenerationResult{}, err
	}

	log.Printf("Raw AI reply for %s: %s", generationID, truncateForLog(raw, 500))

	result, err := g.normalizer.Normalize(raw)
	if err != nil {
		// The raw payload is the only way to diagnose a parse failure.
		log.Printf("Failed to parse AI reply for %s, raw reply: %s", generationID, raw)
		return types.GenerationResult{}, err
	}

	log.Printf("Generated website %s: %s", generationID, result.Description)
	return result, nil
}

func truncateForLog(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
