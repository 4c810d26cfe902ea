package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"nftdesigner/internal/domain"
)

type OpenAIOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	Fallback   Enricher
	OnFallback func(reason string, err error)
}

// OpenAIEnricher asks a chat-completions model for improved metadata
// constrained to a fixed JSON shape. Any failure along the way degrades to
// the fallback enricher.
type OpenAIEnricher struct {
	apiKey     string
	model      string
	baseURL    string
	client     *http.Client
	fallback   Enricher
	onFallback func(reason string, err error)
}

const (
	openAIDefaultTimeout = 15 * time.Second
	defaultOpenAIModel   = "gpt-4o-mini"
)

type openAIChatRequest struct {
	Model          string          `json:"model"`
	Messages       []openAIMessage `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *openAIFormat   `json:"response_format,omitempty"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIFormat struct {
	Type string `json:"type"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// modelEnrichPayload is the only response shape the backend is allowed to
// produce. Anything that does not parse as this shape triggers passthrough.
type modelEnrichPayload struct {
	Name            string             `json:"name"`
	Description     string             `json:"description"`
	Attributes      []domain.Attribute `json:"attributes"`
	Collection      string             `json:"collection"`
	BackgroundColor string             `json:"background_color"`
}

func NewOpenAIEnricher(opts OpenAIOptions) (*OpenAIEnricher, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("openai api key is required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultOpenAIModel
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: openAIDefaultTimeout}
	}
	return &OpenAIEnricher{
		apiKey:     strings.TrimSpace(opts.APIKey),
		model:      model,
		baseURL:    baseURL,
		client:     client,
		fallback:   opts.Fallback,
		onFallback: opts.OnFallback,
	}, nil
}

func (o *OpenAIEnricher) Enrich(ctx context.Context, req Request) (*domain.EnrichedMetadata, error) {
	if o.apiKey == "" {
		return o.useFallback(ctx, req, "missing_api_key", nil)
	}
	payload := openAIChatRequest{
		Model:       o.model,
		Temperature: 0.7,
		MaxTokens:   500,
		ResponseFormat: &openAIFormat{
			Type: "json_object",
		},
		Messages: []openAIMessage{
			{Role: "system", Content: "You are an expert NFT metadata generator. Always respond with valid JSON only."},
			{Role: "user", Content: buildEnrichPrompt(req)},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return o.useFallback(ctx, req, "encode_request", err)
	}
	endpoint := fmt.Sprintf("%s/chat/completions", o.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return o.useFallback(ctx, req, "build_request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)
	resp, err := o.client.Do(httpReq)
	if err != nil {
		return o.useFallback(ctx, req, "http_request", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		return o.useFallback(ctx, req, fmt.Sprintf("http_%d", resp.StatusCode), fmt.Errorf("openai status %d", resp.StatusCode))
	}
	var out openAIChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return o.useFallback(ctx, req, "decode_response", err)
	}
	if len(out.Choices) == 0 {
		return o.useFallback(ctx, req, "empty_choices", errors.New("no choices"))
	}
	text := strings.TrimSpace(out.Choices[0].Message.Content)
	if text == "" {
		return o.useFallback(ctx, req, "empty_response", errors.New("empty response"))
	}
	parsed, err := parseModelPayload(text)
	if err != nil {
		return o.useFallback(ctx, req, "parse_payload", err)
	}
	return mergeEnrichment(req.Draft, parsed), nil
}

// mergeEnrichment keeps the caller's attributes first, appends the backend
// suggestions, and prefers backend name/description/colour over the draft.
// Duplicate trait names are kept; deduplication is not this layer's call.
func mergeEnrichment(draft domain.MintMetadataDraft, parsed *modelEnrichPayload) *domain.EnrichedMetadata {
	titler := cases.Title(language.Und)
	attrs := make([]domain.Attribute, 0, len(draft.Attributes)+len(parsed.Attributes))
	attrs = append(attrs, draft.Attributes...)
	for _, a := range parsed.Attributes {
		trait := strings.TrimSpace(a.TraitType)
		value := strings.TrimSpace(a.Value)
		if trait == "" || value == "" {
			continue
		}
		attrs = append(attrs, domain.Attribute{
			TraitType: titler.String(trait),
			Value:     value,
		})
	}
	return &domain.EnrichedMetadata{
		Name:            coalesce(parsed.Name, draft.Name),
		Description:     coalesce(parsed.Description, draft.Description),
		Attributes:      attrs,
		Collection:      coalesce(parsed.Collection, draft.Collection),
		BackgroundColor: coalesce(parsed.BackgroundColor, DefaultBackgroundColor),
	}
}

func (o *OpenAIEnricher) useFallback(ctx context.Context, req Request, reason string, fallbackErr error) (*domain.EnrichedMetadata, error) {
	if o.onFallback != nil {
		o.onFallback(reason, fallbackErr)
	}
	if o.fallback != nil {
		return o.fallback.Enrich(ctx, req)
	}
	return NewPassthrough().Enrich(ctx, req)
}

var _ Enricher = (*OpenAIEnricher)(nil)
