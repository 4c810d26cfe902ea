package domain

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// ByteArray carries raw image payloads across the JSON boundary. The design
// tool exports byte values as a plain JSON number array, while programmatic
// callers tend to send base64 strings; both decode into the same slice.
type ByteArray []byte

func (b *ByteArray) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*b = nil
		return nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var nums []int
		if err := json.Unmarshal(data, &nums); err != nil {
			return fmt.Errorf("byte array: %w", err)
		}
		out := make([]byte, len(nums))
		for i, n := range nums {
			if n < 0 || n > 255 {
				return fmt.Errorf("byte array: value %d out of range at index %d", n, i)
			}
			out[i] = byte(n)
		}
		*b = out
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("byte array: %w", err)
	}
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return fmt.Errorf("byte array: %w", err)
	}
	*b = decoded
	return nil
}

func (b ByteArray) MarshalJSON() ([]byte, error) {
	return json.Marshal(base64.StdEncoding.EncodeToString(b))
}

// ExportedArt is one artwork unit produced by the design-tool extension.
// PNGData is authoritative for the on-chain image reference; SVGData is
// accepted for forward compatibility but unused downstream.
type ExportedArt struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	PNGData ByteArray `json:"pngData"`
	SVGData ByteArray `json:"svgData,omitempty"`
	Width   int       `json:"width"`
	Height  int       `json:"height"`
}

// Attribute is one trait_type/value pair of NFT metadata.
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// MintMetadataDraft is the caller-supplied minting intent.
type MintMetadataDraft struct {
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	Collection    string      `json:"collection,omitempty"`
	Attributes    []Attribute `json:"attributes"`
	AIDescription bool        `json:"aiDescription"`
	Network       string      `json:"network,omitempty"`
}

// MintingRequest is the full request shape accepted by the legacy endpoint.
// The data model allows multiple exported items but only the first is
// processed per invocation.
type MintingRequest struct {
	ExportedData  []ExportedArt     `json:"exportedData"`
	Metadata      MintMetadataDraft `json:"metadata"`
	WalletAddress string            `json:"walletAddress,omitempty"`
}

// EnrichedMetadata is the enricher output: the draft plus any
// backend-suggested additions. It is always producible, even with no
// enrichment backend configured.
type EnrichedMetadata struct {
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	Attributes      []Attribute `json:"attributes"`
	Collection      string      `json:"collection,omitempty"`
	BackgroundColor string      `json:"background_color,omitempty"`
	AnimationURL    string      `json:"animation_url,omitempty"`
}

// TokenMetadata is the metadata JSON document pinned to the content store
// and referenced by the token URI.
type TokenMetadata struct {
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	Image           string      `json:"image"`
	Attributes      []Attribute `json:"attributes"`
	Collection      string      `json:"collection,omitempty"`
	ExternalURL     string      `json:"external_url,omitempty"`
	BackgroundColor string      `json:"background_color,omitempty"`
	AnimationURL    string      `json:"animation_url,omitempty"`
}

// MintResult is the terminal pipeline response. All four fields are
// populated together; there is no partial success state.
type MintResult struct {
	TokenID         string `json:"tokenId"`
	TransactionHash string `json:"transactionHash"`
	IPFSHash        string `json:"ipfsHash"`
	MetadataURI     string `json:"metadataUri"`
}
