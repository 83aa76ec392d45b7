package ai

import (
	"encoding/json"
	"log"
	"regexp"
	"strings"

	"webgen_server/internal/types"
)

// Canned descriptions used when the model reply lacked one.
const (
	defaultDescription      = "Website generated successfully"
	fencedBlocksDescription = "Generated website from code blocks"
)

// extractionTier records which decode strategy produced the result. Logged
// for diagnostics only, never returned to the caller.
type extractionTier string

const (
	tierStrictJSON   extractionTier = "strict-json"
	tierFencedBlocks extractionTier = "fenced-blocks"
	tierFieldRegex   extractionTier = "field-regex"
)

// Fenced code blocks labeled per language, as models emit them when they
// ignore the JSON contract.
var (
	htmlFenceRe = regexp.MustCompile("```html\\n?([\\s\\S]*?)```")
	cssFenceRe  = regexp.MustCompile("```css\\n?([\\s\\S]*?)```")
	jsFenceRe   = regexp.MustCompile("```(?:javascript|js)\\n?([\\s\\S]*?)```")
)

// Field-level patterns against a JSON-looking body. The value capture
// consumes escaped-character pairs as units and tolerates a missing closing
// quote, so a document truncated mid-string at the token limit still yields
// its intact leading fields.
var (
	htmlFieldRe = regexp.MustCompile(`"html"\s*:\s*"((?:[^"\\]|\\.)*)`)
	cssFieldRe  = regexp.MustCompile(`"css"\s*:\s*"((?:[^"\\]|\\.)*)`)
	jsFieldRe   = regexp.MustCompile(`"js"\s*:\s*"((?:[^"\\]|\\.)*)`)
)

// Normalizer turns the model's free-form reply text into a
// GenerationResult. The model is asked for pure JSON but may fence it,
// surround it with commentary, truncate it at the token limit, or emit
// per-language code fences instead; the tiers are tried in order and the
// first usable result wins. Deterministic: same input, same output.
type Normalizer struct {
	// RequireComplete turns a missing css or js after a fallback tier into
	// a parse failure instead of defaulting the field to an empty string.
	RequireComplete bool
}

// Normalize applies the tiered decode. The returned error, when non-nil,
// is always a *PipelineError with KindParseFailure; the caller is expected
// to log the raw text alongside it.
func (n Normalizer) Normalize(raw string) (types.GenerationResult, error) {
	result, tier, err := n.normalize(raw)
	if err != nil {
		return types.GenerationResult{}, err
	}
	log.Printf("Normalized AI reply via %s tier", tier)
	return result, nil
}

func (n Normalizer) normalize(raw string) (types.GenerationResult, extractionTier, error) {
	cleaned := stripFences(raw)

	// Tier 1: the reply honored the contract, possibly wrapped in a fence.
	if result, ok := decodeStrict(cleaned); ok {
		return applyDefaults(result, defaultDescription), tierStrictJSON, nil
	}

	// Tier 2: separate fenced blocks per language instead of JSON.
	if result, ok := extractFenced(raw); ok {
		if n.RequireComplete && (result.CSS == "" || result.JS == "") {
			return types.GenerationResult{}, tierFencedBlocks, &PipelineError{Kind: KindParseFailure}
		}
		return applyDefaults(result, fencedBlocksDescription), tierFencedBlocks, nil
	}

	// Tier 3: looks like JSON but would not decode, typically truncated at
	// the token limit. Pull fields out individually.
	if strings.HasPrefix(cleaned, "{") {
		if result, ok := extractFields(raw, cleaned); ok {
			if n.RequireComplete && (result.CSS == "" || result.JS == "") {
				return types.GenerationResult{}, tierFieldRegex, &PipelineError{Kind: KindParseFailure}
			}
			return applyDefaults(result, defaultDescription), tierFieldRegex, nil
		}
	}

	return types.GenerationResult{}, "", &PipelineError{Kind: KindParseFailure}
}

// stripFences trims the reply and removes one leading ```json (or bare ```)
// marker and one trailing ``` marker, if present.
func stripFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
	}
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

func decodeStrict(cleaned string) (types.GenerationResult, bool) {
	// Require an object; json.Unmarshal would silently accept "null".
	if !strings.HasPrefix(cleaned, "{") {
		return types.GenerationResult{}, false
	}
	var result types.GenerationResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return types.GenerationResult{}, false
	}
	return result, true
}

// extractFenced captures the three per-language code fences. Usable only
// when the reply produced a non-empty html or css; a lone js block is not
// enough to call the generation a success.
func extractFenced(raw string) (types.GenerationResult, bool) {
	result := types.GenerationResult{
		HTML: fencedBlock(htmlFenceRe, raw),
		CSS:  fencedBlock(cssFenceRe, raw),
		JS:   fencedBlock(jsFenceRe, raw),
	}
	return result, result.HTML != "" || result.CSS != ""
}

func fencedBlock(re *regexp.Regexp, raw string) string {
	m := re.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// extractFields recovers html, css and js individually from a broken JSON
// body, falling back to the fenced-block pattern per field when the direct
// match yields nothing.
func extractFields(raw, cleaned string) (types.GenerationResult, bool) {
	result := types.GenerationResult{
		HTML: jsonField(htmlFieldRe, htmlFenceRe, raw, cleaned),
		CSS:  jsonField(cssFieldRe, cssFenceRe, raw, cleaned),
		JS:   jsonField(jsFieldRe, jsFenceRe, raw, cleaned),
	}
	return result, result.HTML != "" || result.CSS != ""
}

func jsonField(fieldRe, fenceRe *regexp.Regexp, raw, cleaned string) string {
	if m := fieldRe.FindStringSubmatch(cleaned); m != nil && m[1] != "" {
		return unescapeJSONString(m[1])
	}
	return fencedBlock(fenceRe, raw)
}

// unescapeJSONString resolves the escape sequences a captured JSON string
// value may contain. Unknown sequences and a dangling trailing backslash
// are left best-effort rather than rejected; the input may be truncated.
func unescapeJSONString(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			continue
		}
		i++
		if i >= len(s) {
			break
		}
		switch s[i] {
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case '/':
			b.WriteByte('/')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// applyDefaults enforces the response invariant: every field present, with
// a canned description when the model supplied none.
func applyDefaults(result types.GenerationResult, fallbackDescription string) types.GenerationResult {
	if result.Description == "" {
		result.Description = fallbackDescription
	}
	return result
}
