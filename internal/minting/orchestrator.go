// Package minting sequences the full pipeline for one exported artwork:
// normalize the raster, enrich the metadata, pin image and metadata JSON,
// then mint on-chain. Non-critical stages degrade with substitutes so the
// pipeline either completes with a full MintResult or fails with no partial
// state.
package minting

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"nftdesigner/internal/domain"
	"nftdesigner/internal/imaging"
	"nftdesigner/internal/providers/chain"
	"nftdesigner/internal/providers/enrich"
	"nftdesigner/internal/providers/ipfs"
)

// Stage labels one step of the linear pipeline.
type Stage string

const (
	StageReceived       Stage = "received"
	StageNormalized     Stage = "normalized"
	StageEnriched       Stage = "enriched"
	StageImageStored    Stage = "image_stored"
	StageMetadataStored Stage = "metadata_stored"
	StageMinted         Stage = "minted"
	StageCompleted      Stage = "completed"
)

// FailureAction decides what a stage failure does to the pipeline.
type FailureAction int

const (
	// Abort terminates the pipeline with the stage's error.
	Abort FailureAction = iota
	// Substitute continues with a locally generated placeholder value.
	Substitute
)

// Policy maps each fallible stage to its failure action. Keeping the
// degrade/fail-fast choice in one value makes it auditable and configurable
// per deployment.
type Policy map[Stage]FailureAction

// DefaultPolicy preserves the observed contract: storage degrades, image
// decoding and minting abort.
func DefaultPolicy() Policy {
	return Policy{
		StageNormalized:     Abort,
		StageImageStored:    Substitute,
		StageMetadataStored: Substitute,
		StageMinted:         Abort,
	}
}

// externalURLBase anchors the metadata's external_url field.
const externalURLBase = "https://nft-designer.com/token/"

// Options wires the orchestrator's collaborators. All clients are
// constructed by the caller and passed in; the orchestrator owns no hidden
// singletons.
type Options struct {
	Normalizer *imaging.Normalizer
	Enricher   enrich.Enricher
	Store      ipfs.Uploader
	Minter     chain.Minter
	Policy     Policy
	Logger     zerolog.Logger
}

// Orchestrator runs the minting pipeline.
type Orchestrator struct {
	normalizer *imaging.Normalizer
	enricher   enrich.Enricher
	store      ipfs.Uploader
	minter     chain.Minter
	policy     Policy
	logger     zerolog.Logger
}

func NewOrchestrator(opts Options) *Orchestrator {
	normalizer := opts.Normalizer
	if normalizer == nil {
		normalizer = imaging.NewNormalizer()
	}
	enricher := opts.Enricher
	if enricher == nil {
		enricher = enrich.NewPassthrough()
	}
	policy := opts.Policy
	if policy == nil {
		policy = DefaultPolicy()
	}
	return &Orchestrator{
		normalizer: normalizer,
		enricher:   enricher,
		store:      opts.Store,
		minter:     opts.Minter,
		policy:     policy,
		logger:     opts.Logger,
	}
}

// Mint runs the pipeline for the first exported item of the request. The
// data model allows multiple items but only one is processed per invocation.
func (o *Orchestrator) Mint(ctx context.Context, req domain.MintingRequest) (*domain.MintResult, error) {
	if len(req.ExportedData) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, domain.ErrNoExportedArt)
	}
	art := req.ExportedData[0]
	if len(req.ExportedData) > 1 {
		o.logger.Warn().Int("items", len(req.ExportedData)).Msg("multiple exported items, processing the first only")
	}

	o.logger.Info().Str("art", art.Name).Str("network", req.Metadata.Network).Msg("processing exported art")
	normalized, err := o.normalizer.Normalize(art.PNGData, art.Width, art.Height)
	if err != nil {
		return nil, err
	}

	// The enricher contract never fails outward, but a broken implementation
	// must not take the pipeline down either.
	enriched, err := o.enricher.Enrich(ctx, enrich.Request{
		Draft:   req.Metadata,
		ArtName: art.Name,
		Width:   art.Width,
		Height:  art.Height,
	})
	if err != nil || enriched == nil {
		o.logger.Warn().Err(err).Msg("enricher failed, using passthrough metadata")
		enriched, _ = enrich.NewPassthrough().Enrich(ctx, enrich.Request{Draft: req.Metadata, ArtName: art.Name, Width: art.Width, Height: art.Height})
	}

	imageCID, err := o.upload(ctx, StageImageStored, normalized, "image/png")
	if err != nil {
		return nil, err
	}

	metadataJSON, err := encodeTokenMetadata(enriched, art, imageCID)
	if err != nil {
		return nil, fmt.Errorf("assemble metadata: %w", err)
	}
	metadataCID, err := o.upload(ctx, StageMetadataStored, metadataJSON, "application/json")
	if err != nil {
		return nil, err
	}
	metadataURI := ipfs.URIScheme + metadataCID

	// The on-chain display name tracks user intent; the pinned metadata
	// carries the enriched content.
	outcome, err := o.minter.Mint(ctx, req.Metadata.Name, metadataURI, req.WalletAddress)
	if err != nil {
		return nil, err
	}

	o.logger.Info().
		Str("token_id", outcome.TokenID).
		Str("tx", outcome.TransactionHash).
		Str("metadata_uri", metadataURI).
		Msg("mint pipeline completed")

	return &domain.MintResult{
		TokenID:         outcome.TokenID,
		TransactionHash: outcome.TransactionHash,
		IPFSHash:        imageCID,
		MetadataURI:     metadataURI,
	}, nil
}

// upload pins a blob, applying the stage's failure action when the store is
// unavailable. Substituted placeholders keep the pipeline alive and are
// invisible to the caller.
func (o *Orchestrator) upload(ctx context.Context, stage Stage, data []byte, contentType string) (string, error) {
	if o.store != nil {
		cid, err := o.store.Upload(ctx, data, contentType)
		if err == nil {
			return cid, nil
		}
		if o.policy[stage] == Abort {
			return "", fmt.Errorf("store %s: %w", stage, err)
		}
		o.logger.Warn().Err(err).Str("stage", string(stage)).Msg("store upload failed, substituting placeholder cid")
	} else if o.policy[stage] == Abort {
		return "", fmt.Errorf("%w: no content store configured", domain.ErrConfiguration)
	}
	return ipfs.PlaceholderCID(data), nil
}

func encodeTokenMetadata(enriched *domain.EnrichedMetadata, art domain.ExportedArt, imageCID string) ([]byte, error) {
	attrs := enriched.Attributes
	if attrs == nil {
		attrs = []domain.Attribute{}
	}
	meta := domain.TokenMetadata{
		Name:            enriched.Name,
		Description:     enriched.Description,
		Image:           ipfs.URIScheme + imageCID,
		Attributes:      attrs,
		Collection:      enriched.Collection,
		ExternalURL:     externalURLBase + art.ID,
		BackgroundColor: enriched.BackgroundColor,
		AnimationURL:    enriched.AnimationURL,
	}
	return json.MarshalIndent(meta, "", "  ")
}
