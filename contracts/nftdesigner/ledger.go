package nftdesigner

import (
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// MaxSupply is the lifetime issuance ceiling of the contract.
const MaxSupply = 10000

// Revert reasons, matching the deployed contract's require messages.
var (
	ErrPaused        = errors.New("Pausable: paused")
	ErrNotPaused     = errors.New("Pausable: not paused")
	ErrNotOwner      = errors.New("Ownable: caller is not the owner")
	ErrZeroAddress   = errors.New("Cannot mint to zero address")
	ErrEmptyTokenURI = errors.New("Token URI cannot be empty")
	ErrMaxSupply     = errors.New("Maximum supply reached")
	ErrUnknownToken  = errors.New("URI query for nonexistent token")
)

// MintedEvent mirrors the contract's NFTMinted event.
type MintedEvent struct {
	To       common.Address
	TokenID  uint64
	TokenURI string
}

// Ledger reproduces the NFTDesigner contract's state machine in-process. It
// backs the mock minter and the contract-semantics tests, honouring the same
// transition rules the chain enforces: dense sequential token ids, a paused
// gate on all minting, owner-gated admin operations and the MaxSupply
// ceiling.
type Ledger struct {
	mu sync.Mutex

	owner     common.Address
	paused    bool
	baseURI   string
	mintPrice *big.Int
	supply    uint64
	owners    map[uint64]common.Address
	uris      map[uint64]string
	events    []MintedEvent
}

// NewLedger creates a ledger with the deployer as owner, the way the
// contract constructor fixes its admin.
func NewLedger(owner common.Address, baseURI string) *Ledger {
	return &Ledger{
		owner:     owner,
		baseURI:   baseURI,
		mintPrice: new(big.Int),
		owners:    make(map[uint64]common.Address),
		uris:      make(map[uint64]string),
	}
}

// Mint assigns the next sequential token id to `to`. Fails while paused, for
// the zero address, for an empty URI, and past the supply ceiling.
func (l *Ledger) Mint(to common.Address, uri string) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.checkMint(to, uri, 1); err != nil {
		return 0, err
	}
	return l.apply(to, uri), nil
}

// MintBatch applies mint semantics once per URI. The batch is atomic: any
// invalid entry rejects the whole call before state changes, mirroring an
// on-chain revert.
func (l *Ledger) MintBatch(to common.Address, uris []string) ([]uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.checkMint(to, "", 0); err != nil {
		return nil, err
	}
	if l.supply+uint64(len(uris)) > MaxSupply {
		return nil, ErrMaxSupply
	}
	for _, uri := range uris {
		if uri == "" {
			return nil, ErrEmptyTokenURI
		}
	}
	ids := make([]uint64, 0, len(uris))
	for _, uri := range uris {
		ids = append(ids, l.apply(to, uri))
	}
	return ids, nil
}

func (l *Ledger) checkMint(to common.Address, uri string, count uint64) error {
	if l.paused {
		return ErrPaused
	}
	if to == (common.Address{}) {
		return ErrZeroAddress
	}
	if count > 0 && uri == "" {
		return ErrEmptyTokenURI
	}
	if l.supply+count > MaxSupply {
		return ErrMaxSupply
	}
	return nil
}

func (l *Ledger) apply(to common.Address, uri string) uint64 {
	id := l.supply
	l.owners[id] = to
	l.uris[id] = uri
	l.supply++
	l.events = append(l.events, MintedEvent{To: to, TokenID: id, TokenURI: uri})
	return id
}

// Pause halts minting. Owner only.
func (l *Ledger) Pause(caller common.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if caller != l.owner {
		return ErrNotOwner
	}
	if l.paused {
		return ErrPaused
	}
	l.paused = true
	return nil
}

// Unpause re-enables minting. Owner only.
func (l *Ledger) Unpause(caller common.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if caller != l.owner {
		return ErrNotOwner
	}
	if !l.paused {
		return ErrNotPaused
	}
	l.paused = false
	return nil
}

// SetBaseURI updates the token URI prefix. Owner only.
func (l *Ledger) SetBaseURI(caller common.Address, newBaseURI string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if caller != l.owner {
		return ErrNotOwner
	}
	l.baseURI = newBaseURI
	return nil
}

// SetMintPrice updates the mint price. Owner only.
func (l *Ledger) SetMintPrice(caller common.Address, newPrice *big.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if caller != l.owner {
		return ErrNotOwner
	}
	l.mintPrice = new(big.Int).Set(newPrice)
	return nil
}

// TokenURI resolves baseURI + stored suffix for a minted token.
func (l *Ledger) TokenURI(tokenID uint64) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	suffix, ok := l.uris[tokenID]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnknownToken, tokenID)
	}
	return l.baseURI + suffix, nil
}

// OwnerOf returns the owner of a minted token.
func (l *Ledger) OwnerOf(tokenID uint64) (common.Address, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	owner, ok := l.owners[tokenID]
	if !ok {
		return common.Address{}, fmt.Errorf("%w: %d", ErrUnknownToken, tokenID)
	}
	return owner, nil
}

// TotalSupply returns the monotonic issuance counter.
func (l *Ledger) TotalSupply() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.supply
}

// Paused reports whether minting is halted.
func (l *Ledger) Paused() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.paused
}

// MintPrice returns the current mint price.
func (l *Ledger) MintPrice() *big.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return new(big.Int).Set(l.mintPrice)
}

// Owner returns the admin address.
func (l *Ledger) Owner() common.Address {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.owner
}

// Events returns the minted events in emission order.
func (l *Ledger) Events() []MintedEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]MintedEvent, len(l.events))
	copy(out, l.events)
	return out
}
