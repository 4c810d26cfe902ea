package enrich

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

func buildEnrichPrompt(req Request) string {
	draft := req.Draft
	existing, _ := json.Marshal(draft.Attributes)
	sb := &strings.Builder{}
	sb.WriteString("You are an expert NFT metadata generator. Based on the following information, create enhanced metadata for an NFT. Respond strictly with JSON matching this schema: ")
	sb.WriteString(`{"name":string,"description":string,"attributes":[{"trait_type":string,"value":string}],"collection":string,"background_color":string}`)
	fmt.Fprintf(sb, ". Original name: %q. Original description: %q. Art name: %q. Dimensions: %dx%dpx. Existing attributes: %s. Collection: %q.",
		draft.Name, draft.Description, req.ArtName, req.Width, req.Height, existing, draft.Collection)
	sb.WriteString(" Keep the name creative but relevant, write a detailed two to three sentence description, suggest additional attributes for style, colours and mood, and pick a hex background colour.")
	return sb.String()
}

func coalesce(values ...string) string {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			return v
		}
	}
	return ""
}

func parseModelPayload(raw string) (*modelEnrichPayload, error) {
	cleaned := extractJSONFragment(raw)
	if cleaned == "" {
		return nil, errors.New("empty payload")
	}
	var decoded modelEnrichPayload
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil {
		return nil, err
	}
	return &decoded, nil
}

// extractJSONFragment tolerates models that wrap their JSON in code fences
// or prose despite the response-format instruction.
func extractJSONFragment(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return ""
	}
	return text[start : end+1]
}
