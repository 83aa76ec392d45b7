package types

// GenerationRequest is the inbound body for POST /generate.
type GenerationRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// GenerationResult is the normalized outcome of one generation. All four
// fields are always present in the response body; an empty string is a
// valid value, absence is not.
type GenerationResult struct {
	HTML        string `json:"html"`
	CSS         string `json:"css"`
	JS          string `json:"js"`
	Description string `json:"description"`
}
