package minting

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"regexp"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"

	"nftdesigner/contracts/nftdesigner"
	"nftdesigner/internal/domain"
	"nftdesigner/internal/providers/chain"
	"nftdesigner/internal/providers/enrich"
	"nftdesigner/internal/providers/ipfs"
)

type fakeUploader struct {
	upload func(context.Context, []byte, string) (string, error)
	calls  int
}

func (f *fakeUploader) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	f.calls++
	if f.upload != nil {
		return f.upload(ctx, data, contentType)
	}
	return "", errors.New("upload not implemented")
}

type fakeMinter struct {
	mint func(context.Context, string, string, string) (*chain.MintOutcome, error)
}

func (f *fakeMinter) Mint(ctx context.Context, name, uri, recipient string) (*chain.MintOutcome, error) {
	if f.mint != nil {
		return f.mint(ctx, name, uri, recipient)
	}
	return nil, errors.New("mint not implemented")
}

type fakeEnricher struct {
	enrich func(context.Context, enrich.Request) (*domain.EnrichedMetadata, error)
}

func (f *fakeEnricher) Enrich(ctx context.Context, req enrich.Request) (*domain.EnrichedMetadata, error) {
	if f.enrich != nil {
		return f.enrich(ctx, req)
	}
	return nil, errors.New("enrich not implemented")
}

var (
	tokenIDPattern = regexp.MustCompile(`^[0-9]+$`)
	txHashPattern  = regexp.MustCompile(`^0x[0-9a-f]{64}$`)
)

func realPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 800, 600))
	for x := 0; x < 800; x += 8 {
		for y := 0; y < 600; y += 8 {
			img.Set(x, y, color.RGBA{R: 240, G: 120, B: 20, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

func sunsetRequest(t *testing.T) domain.MintingRequest {
	return domain.MintingRequest{
		ExportedData: []domain.ExportedArt{{
			ID:      "f1",
			Name:    "Sunset Frame",
			PNGData: domain.ByteArray(realPNG(t)),
			Width:   800,
			Height:  600,
		}},
		Metadata: domain.MintMetadataDraft{
			Name:        "Sunset",
			Description: "A calm scene",
			Network:     "amoy",
		},
		WalletAddress: "0x00000000000000000000000000000000000000b2",
	}
}

func mockChainMinter() chain.Minter {
	signer := common.HexToAddress("0x00000000000000000000000000000000000000a1")
	return chain.NewMockMinter(chain.MockOptions{
		Ledger: nftdesigner.NewLedger(signer, ""),
		Signer: signer,
		Logger: zerolog.Nop(),
	})
}

func TestPipelineCompletesWithAllBackendsHealthy(t *testing.T) {
	store := &fakeUploader{upload: func(ctx context.Context, data []byte, contentType string) (string, error) {
		return "bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi", nil
	}}
	o := NewOrchestrator(Options{
		Enricher: enrich.NewPassthrough(),
		Store:    store,
		Minter:   mockChainMinter(),
		Logger:   zerolog.Nop(),
	})

	res, err := o.Mint(context.Background(), sunsetRequest(t))
	if err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}
	if !tokenIDPattern.MatchString(res.TokenID) {
		t.Fatalf("token id = %q, want numeric string", res.TokenID)
	}
	if !txHashPattern.MatchString(res.TransactionHash) {
		t.Fatalf("tx hash = %q, want 0x + 64 hex digits", res.TransactionHash)
	}
	if !strings.HasPrefix(res.MetadataURI, ipfs.URIScheme) {
		t.Fatalf("metadata uri = %q, want %s prefix", res.MetadataURI, ipfs.URIScheme)
	}
	if res.IPFSHash == "" {
		t.Fatalf("image hash missing: %+v", res)
	}
	if store.calls != 2 {
		t.Fatalf("store calls = %d, want 2 (image + metadata)", store.calls)
	}
}

func TestPipelineDegradesWhenStoreFails(t *testing.T) {
	store := &fakeUploader{upload: func(ctx context.Context, data []byte, contentType string) (string, error) {
		return "", errors.New("503 maintenance")
	}}
	o := NewOrchestrator(Options{
		Enricher: enrich.NewPassthrough(),
		Store:    store,
		Minter:   mockChainMinter(),
		Logger:   zerolog.Nop(),
	})

	res, err := o.Mint(context.Background(), sunsetRequest(t))
	if err != nil {
		t.Fatalf("Mint should degrade, got error: %v", err)
	}
	if !strings.HasPrefix(res.IPFSHash, "bafkrei") {
		t.Fatalf("image hash = %q, want placeholder cid", res.IPFSHash)
	}
	if !strings.HasPrefix(res.MetadataURI, ipfs.URIScheme+"bafkrei") {
		t.Fatalf("metadata uri = %q, want placeholder cid", res.MetadataURI)
	}
}

func TestPipelineWithoutStoreUsesPlaceholders(t *testing.T) {
	o := NewOrchestrator(Options{
		Enricher: enrich.NewPassthrough(),
		Store:    ipfs.Unconfigured{},
		Minter:   mockChainMinter(),
		Logger:   zerolog.Nop(),
	})
	res, err := o.Mint(context.Background(), sunsetRequest(t))
	if err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}
	if !strings.HasPrefix(res.IPFSHash, "bafkrei") {
		t.Fatalf("image hash = %q, want placeholder cid", res.IPFSHash)
	}
}

func TestPipelineAbortPolicyPropagatesStoreFailure(t *testing.T) {
	store := &fakeUploader{upload: func(ctx context.Context, data []byte, contentType string) (string, error) {
		return "", errors.New("503 maintenance")
	}}
	policy := DefaultPolicy()
	policy[StageImageStored] = Abort
	o := NewOrchestrator(Options{
		Enricher: enrich.NewPassthrough(),
		Store:    store,
		Minter:   mockChainMinter(),
		Policy:   policy,
		Logger:   zerolog.Nop(),
	})
	if _, err := o.Mint(context.Background(), sunsetRequest(t)); err == nil {
		t.Fatal("abort policy should propagate the store failure")
	}
}

func TestPipelineFailsFatallyOnMintError(t *testing.T) {
	o := NewOrchestrator(Options{
		Enricher: enrich.NewPassthrough(),
		Store:    ipfs.Unconfigured{},
		Minter: &fakeMinter{mint: func(ctx context.Context, name, uri, recipient string) (*chain.MintOutcome, error) {
			return nil, domain.ErrTransaction
		}},
		Logger: zerolog.Nop(),
	})
	_, err := o.Mint(context.Background(), sunsetRequest(t))
	if !errors.Is(err, domain.ErrTransaction) {
		t.Fatalf("err = %v, want ErrTransaction", err)
	}
}

func TestPipelineFailsFatallyOnDecodeError(t *testing.T) {
	req := sunsetRequest(t)
	req.ExportedData[0].PNGData = domain.ByteArray(bytes.Repeat([]byte{0xba, 0xad}, 200))
	o := NewOrchestrator(Options{
		Enricher: enrich.NewPassthrough(),
		Store:    ipfs.Unconfigured{},
		Minter:   mockChainMinter(),
		Logger:   zerolog.Nop(),
	})
	if _, err := o.Mint(context.Background(), req); !errors.Is(err, domain.ErrImageDecode) {
		t.Fatalf("err = %v, want ErrImageDecode", err)
	}
}

func TestPipelineRejectsEmptyExport(t *testing.T) {
	o := NewOrchestrator(Options{
		Minter: mockChainMinter(),
		Logger: zerolog.Nop(),
	})
	_, err := o.Mint(context.Background(), domain.MintingRequest{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestPipelineSurvivesBrokenEnricher(t *testing.T) {
	var captured string
	o := NewOrchestrator(Options{
		Enricher: &fakeEnricher{enrich: func(ctx context.Context, req enrich.Request) (*domain.EnrichedMetadata, error) {
			return nil, errors.New("backend exploded")
		}},
		Store: &fakeUploader{upload: func(ctx context.Context, data []byte, contentType string) (string, error) {
			if contentType == "application/json" {
				captured = string(data)
			}
			return "bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi", nil
		}},
		Minter: mockChainMinter(),
		Logger: zerolog.Nop(),
	})
	req := sunsetRequest(t)
	if _, err := o.Mint(context.Background(), req); err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}
	var meta domain.TokenMetadata
	if err := json.Unmarshal([]byte(captured), &meta); err != nil {
		t.Fatalf("metadata did not parse: %v", err)
	}
	if meta.Name != req.Metadata.Name || meta.Description != req.Metadata.Description {
		t.Fatalf("passthrough metadata = %+v", meta)
	}
}

func TestPipelineMintsWithDraftNameAndProcessesFirstItemOnly(t *testing.T) {
	var mintedName string
	req := sunsetRequest(t)
	req.ExportedData = append(req.ExportedData, domain.ExportedArt{ID: "f2", Name: "Second Frame"})
	req.Metadata.Name = "User Chosen Name"

	o := NewOrchestrator(Options{
		Enricher: &fakeEnricher{enrich: func(ctx context.Context, r enrich.Request) (*domain.EnrichedMetadata, error) {
			return &domain.EnrichedMetadata{
				Name:        "AI Branded Name",
				Description: r.Draft.Description,
				Attributes:  r.Draft.Attributes,
			}, nil
		}},
		Store: ipfs.Unconfigured{},
		Minter: &fakeMinter{mint: func(ctx context.Context, name, uri, recipient string) (*chain.MintOutcome, error) {
			mintedName = name
			return &chain.MintOutcome{TokenID: "0", TransactionHash: "0x" + strings.Repeat("ab", 32)}, nil
		}},
		Logger: zerolog.Nop(),
	})
	if _, err := o.Mint(context.Background(), req); err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}
	if mintedName != "User Chosen Name" {
		t.Fatalf("on-chain name = %q, want the draft's original name", mintedName)
	}
}

func TestTokenMetadataShape(t *testing.T) {
	enriched := &domain.EnrichedMetadata{
		Name:            "Sunset",
		Description:     "A calm scene",
		Attributes:      []domain.Attribute{{TraitType: "Mood", Value: "Calm"}},
		Collection:      "Evening Series",
		BackgroundColor: "#1a1a1a",
	}
	art := domain.ExportedArt{ID: "f1", Name: "Sunset Frame"}
	raw, err := encodeTokenMetadata(enriched, art, "bafyImage")
	if err != nil {
		t.Fatalf("encode returned error: %v", err)
	}
	var meta domain.TokenMetadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		t.Fatalf("metadata did not parse: %v", err)
	}
	if meta.Image != "ipfs://bafyImage" {
		t.Fatalf("image = %q", meta.Image)
	}
	if meta.ExternalURL != "https://nft-designer.com/token/f1" {
		t.Fatalf("external url = %q", meta.ExternalURL)
	}
	if len(meta.Attributes) != 1 || meta.Attributes[0].TraitType != "Mood" {
		t.Fatalf("attributes = %+v", meta.Attributes)
	}
}
