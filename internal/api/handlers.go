package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"webgen_server/internal/ai"
	"webgen_server/internal/types"
)

// SiteGenerator is the pipeline dependency of the API layer. Satisfied by
// *ai.Generator; substituted with a fake in tests.
type SiteGenerator interface {
	GenerateWebsite(ctx context.Context, prompt string) (types.GenerationResult, error)
}

// APIHandler holds dependencies for API endpoints.
type APIHandler struct {
	generator SiteGenerator
}

// NewAPIHandler initializes a new API handler with its dependencies.
func NewAPIHandler(generator SiteGenerator) *APIHandler {
	return &APIHandler{generator: generator}
}

// POST /generate
func (h *APIHandler) GenerateWebsite(c *gin.Context) {
	var req types.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt is required"})
		return
	}
	// Whitespace-only prompts are rejected before any outbound call.
	if strings.TrimSpace(req.Prompt) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt is required"})
		return
	}

	log.Printf("Received generation request, prompt length %d", len(req.Prompt))

	result, err := h.generator.GenerateWebsite(c.Request.Context(), req.Prompt)
	if err != nil {
		var pipelineErr *ai.PipelineError
		if errors.As(err, &pipelineErr) {
			log.Printf("Generation failed (%s): %v", pipelineErr.Kind, err)
			c.JSON(pipelineErr.HTTPStatus(), gin.H{"error": pipelineErr.Message()})
			return
		}
		log.Printf("Generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate website. Please try again."})
		return
	}

	c.JSON(http.StatusOK, result)
}
