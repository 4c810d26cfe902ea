package chain

import (
	"context"
	"encoding/binary"
	"fmt"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog"

	"nftdesigner/contracts/nftdesigner"
	"nftdesigner/internal/domain"
)

// MockMinter mints against an in-process ledger instead of a chain. It is
// selected in environments without live credentials and returns outcomes
// structurally identical to the real minter's, after a simulated
// confirmation delay. Because the ledger enforces the contract's rules,
// sequential id assignment and the paused/supply gates behave exactly as
// they would on-chain.
type MockMinter struct {
	ledger *nftdesigner.Ledger
	signer common.Address
	delay  time.Duration
	logger zerolog.Logger
}

// MockOptions configures the mock minter.
type MockOptions struct {
	Ledger *nftdesigner.Ledger
	Signer common.Address
	Delay  time.Duration
	Logger zerolog.Logger
}

func NewMockMinter(opts MockOptions) *MockMinter {
	ledger := opts.Ledger
	if ledger == nil {
		ledger = nftdesigner.NewLedger(opts.Signer, "")
	}
	return &MockMinter{
		ledger: ledger,
		signer: opts.Signer,
		delay:  opts.Delay,
		logger: opts.Logger,
	}
}

func (m *MockMinter) Mint(ctx context.Context, displayName, metadataURI, recipient string) (*MintOutcome, error) {
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", domain.ErrTransaction, ctx.Err())
		}
	}

	to := m.signer
	if recipient != "" {
		if !common.IsHexAddress(recipient) {
			return nil, fmt.Errorf("%w: recipient %q is not a hex address", domain.ErrValidation, recipient)
		}
		to = common.HexToAddress(recipient)
	}

	tokenID, err := m.ledger.Mint(to, metadataURI)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTransaction, err)
	}

	txHash := mockTxHash(to, tokenID, metadataURI)
	m.logger.Info().
		Str("name", displayName).
		Uint64("token_id", tokenID).
		Str("tx", txHash).
		Msg("mock mint confirmed")

	return &MintOutcome{
		TokenID:         strconv.FormatUint(tokenID, 10),
		TransactionHash: txHash,
	}, nil
}

// mockTxHash derives a stable 32-byte transaction hash from the mint inputs
// so repeated runs are reproducible in tests and logs.
func mockTxHash(to common.Address, tokenID uint64, uri string) string {
	var id [8]byte
	binary.BigEndian.PutUint64(id[:], tokenID)
	digest := crypto.Keccak256(to.Bytes(), id[:], []byte(uri))
	return common.BytesToHash(digest).Hex()
}

var _ Minter = (*MockMinter)(nil)
