// Package enrich produces NFT metadata from the caller's draft, optionally
// improved by an AI text backend. Enrichment never fails outward: every
// backend problem degrades to the passthrough variant.
package enrich

import (
	"context"

	"nftdesigner/internal/domain"
)

// DefaultBackgroundColor is applied whenever the backend does not suggest one.
const DefaultBackgroundColor = "#1a1a1a"

const (
	passthroughProviderName = "passthrough"
	openAIProviderName      = "openai"
)

// Request carries the draft plus the art context used in the prompt.
type Request struct {
	Draft   domain.MintMetadataDraft
	ArtName string
	Width   int
	Height  int
}

// Enricher turns a metadata draft into the metadata that gets pinned.
type Enricher interface {
	Enrich(ctx context.Context, req Request) (*domain.EnrichedMetadata, error)
}

// Passthrough is the zero-dependency variant: the draft copied verbatim with
// the default display colour and no animation URL.
type Passthrough struct{}

func NewPassthrough() Passthrough {
	return Passthrough{}
}

func (Passthrough) Enrich(ctx context.Context, req Request) (*domain.EnrichedMetadata, error) {
	attrs := make([]domain.Attribute, len(req.Draft.Attributes))
	copy(attrs, req.Draft.Attributes)
	return &domain.EnrichedMetadata{
		Name:            req.Draft.Name,
		Description:     req.Draft.Description,
		Attributes:      attrs,
		Collection:      req.Draft.Collection,
		BackgroundColor: DefaultBackgroundColor,
	}, nil
}

var _ Enricher = Passthrough{}
