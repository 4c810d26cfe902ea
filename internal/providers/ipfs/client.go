// Package ipfs pins image and metadata blobs to a content-addressed store
// through the nft.storage HTTP API and synthesizes local placeholder
// identifiers for degraded operation.
package ipfs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// URIScheme prefixes every content identifier handed to the chain.
const URIScheme = "ipfs://"

// ErrMissingAPIKey indicates that the client was configured without credentials.
var ErrMissingAPIKey = errors.New("ipfs: api key is required")

// Uploader pins a blob and returns its content identifier.
type Uploader interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
}

// ClientOptions configures the nft.storage client.
type ClientOptions struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// Client uploads blobs to the nft.storage pinning API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

const defaultBaseURL = "https://api.nft.storage"

const defaultTimeout = 60 * time.Second

type uploadResponse struct {
	OK    bool `json:"ok"`
	Value struct {
		CID string `json:"cid"`
	} `json:"value"`
	Error struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	} `json:"error"`
}

func NewClient(opts ClientOptions) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    baseURL,
		httpClient: client,
	}, nil
}

// Upload pins the blob and returns the CID reported by the store.
func (c *Client) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("ipfs: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ipfs: upload: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("ipfs: decode response: %w", err)
	}
	if resp.StatusCode >= 300 || !out.OK {
		msg := out.Error.Message
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return "", fmt.Errorf("ipfs: upload rejected: %s", msg)
	}
	if out.Value.CID == "" {
		return "", errors.New("ipfs: upload response missing cid")
	}
	return out.Value.CID, nil
}

var _ Uploader = (*Client)(nil)

// Unconfigured always fails, letting the orchestrator substitute placeholder
// identifiers when no store credentials are present.
type Unconfigured struct{}

func (Unconfigured) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	return "", ErrMissingAPIKey
}

var _ Uploader = Unconfigured{}
