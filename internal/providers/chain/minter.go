// Package chain submits mint transactions to the NFTDesigner contract and
// waits for their confirmation.
package chain

import "context"

// MintOutcome is the chain's answer to a confirmed mint.
type MintOutcome struct {
	TokenID         string
	TransactionHash string
}

// Minter submits one mint call, waits for inclusion and returns the assigned
// token id with the transaction hash. An empty recipient mints to the
// signer's own address.
type Minter interface {
	Mint(ctx context.Context, displayName, metadataURI, recipient string) (*MintOutcome, error)
}
