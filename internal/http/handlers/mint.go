package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"nftdesigner/internal/domain"
)

// mintRequest is the convenience shape sent by the design-tool plugin.
type mintRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Network     string              `json:"network"`
	Wallet      string              `json:"wallet"`
	Frame       *domain.ExportedArt `json:"frame"`
}

// MintNFT handles POST /api/mint-nft.
func (a *App) MintNFT(w http.ResponseWriter, r *http.Request) {
	var req mintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid JSON payload", "Failed to mint NFT")
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" ||
		req.Network == "" || req.Wallet == "" || req.Frame == nil {
		a.error(w, http.StatusBadRequest, "missing required fields",
			"Missing required fields: title, description, network, wallet, or frame data")
		return
	}
	if _, ok := domain.LookupNetwork(req.Network); !ok {
		a.error(w, http.StatusBadRequest, "unsupported network", "Unsupported network: "+req.Network)
		return
	}

	minting := domain.MintingRequest{
		ExportedData: []domain.ExportedArt{*req.Frame},
		Metadata: domain.MintMetadataDraft{
			Name:        strings.TrimSpace(req.Title),
			Description: strings.TrimSpace(req.Description),
			Attributes:  []domain.Attribute{},
			Network:     req.Network,
		},
		WalletAddress: req.Wallet,
	}
	a.runPipeline(w, r, minting)
}

// MintNFTLegacy handles POST /api/mint-nft-legacy with the full request
// shape produced by older plugin builds.
func (a *App) MintNFTLegacy(w http.ResponseWriter, r *http.Request) {
	var req domain.MintingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid JSON payload", "Failed to mint NFT")
		return
	}
	if msg := validateMintingRequest(&req); msg != "" {
		a.error(w, http.StatusBadRequest, msg, "Failed to mint NFT")
		return
	}
	a.runPipeline(w, r, req)
}

func (a *App) runPipeline(w http.ResponseWriter, r *http.Request, req domain.MintingRequest) {
	a.Logger.Info().Str("name", req.Metadata.Name).Str("network", req.Metadata.Network).Msg("starting mint pipeline")
	result, err := a.Service.Mint(r.Context(), req)
	if err != nil {
		a.Logger.Error().Err(err).Msg("mint pipeline failed")
		a.error(w, statusFor(err), err.Error(), "Failed to mint NFT")
		return
	}
	a.success(w, result, "NFT minted successfully")
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrImageDecode):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrConfiguration):
		return http.StatusInternalServerError
	case errors.Is(err, domain.ErrTransaction):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// validateMintingRequest enforces the legacy endpoint's structural rules and
// normalizes whitespace in place. It returns an empty string when valid.
func validateMintingRequest(req *domain.MintingRequest) string {
	if len(req.ExportedData) == 0 {
		return "exportedData is required and must be a non-empty array"
	}
	for _, item := range req.ExportedData {
		if item.ID == "" || item.Name == "" || len(item.PNGData) == 0 {
			return "each exported item must have id, name, and pngData"
		}
	}
	req.Metadata.Name = strings.TrimSpace(req.Metadata.Name)
	if req.Metadata.Name == "" {
		return "metadata name is required and must be a non-empty string"
	}
	req.Metadata.Description = strings.TrimSpace(req.Metadata.Description)
	if req.Metadata.Description == "" {
		return "metadata description is required and must be a non-empty string"
	}
	req.Metadata.Collection = strings.TrimSpace(req.Metadata.Collection)
	for _, attr := range req.Metadata.Attributes {
		if strings.TrimSpace(attr.TraitType) == "" || strings.TrimSpace(attr.Value) == "" {
			return "each attribute must have trait_type and value"
		}
	}
	if req.Metadata.Attributes == nil {
		req.Metadata.Attributes = []domain.Attribute{}
	}
	return ""
}
