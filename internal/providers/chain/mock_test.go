package chain

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"

	"nftdesigner/contracts/nftdesigner"
	"nftdesigner/internal/domain"
)

var txHashPattern = regexp.MustCompile(`^0x[0-9a-f]{64}$`)

func newTestMockMinter() (*MockMinter, *nftdesigner.Ledger) {
	signer := common.HexToAddress("0x00000000000000000000000000000000000000a1")
	ledger := nftdesigner.NewLedger(signer, "")
	m := NewMockMinter(MockOptions{
		Ledger: ledger,
		Signer: signer,
		Logger: zerolog.Nop(),
	})
	return m, ledger
}

func TestMockMinterSequentialTokenIDs(t *testing.T) {
	m, _ := newTestMockMinter()
	for i := 0; i < 3; i++ {
		out, err := m.Mint(context.Background(), "Sunset", "ipfs://QmMeta", "")
		if err != nil {
			t.Fatalf("mint %d returned error: %v", i, err)
		}
		if out.TokenID != strconv.Itoa(i) {
			t.Fatalf("token id = %q, want %d", out.TokenID, i)
		}
		if !txHashPattern.MatchString(out.TransactionHash) {
			t.Fatalf("tx hash = %q, want 0x + 64 hex digits", out.TransactionHash)
		}
	}
}

func TestMockMinterRecipientDefaultsToSigner(t *testing.T) {
	m, ledger := newTestMockMinter()
	if _, err := m.Mint(context.Background(), "Sunset", "ipfs://QmMeta", ""); err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}
	owner, err := ledger.OwnerOf(0)
	if err != nil {
		t.Fatalf("OwnerOf returned error: %v", err)
	}
	if owner != ledger.Owner() {
		t.Fatalf("owner = %s, want signer %s", owner.Hex(), ledger.Owner().Hex())
	}
}

func TestMockMinterHonorsRecipient(t *testing.T) {
	m, ledger := newTestMockMinter()
	recipient := "0x00000000000000000000000000000000000000b2"
	if _, err := m.Mint(context.Background(), "Sunset", "ipfs://QmMeta", recipient); err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}
	owner, err := ledger.OwnerOf(0)
	if err != nil {
		t.Fatalf("OwnerOf returned error: %v", err)
	}
	if owner != common.HexToAddress(recipient) {
		t.Fatalf("owner = %s, want %s", owner.Hex(), recipient)
	}
}

func TestMockMinterRejectsBadRecipient(t *testing.T) {
	m, _ := newTestMockMinter()
	_, err := m.Mint(context.Background(), "Sunset", "ipfs://QmMeta", "not-an-address")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestMockMinterSurfacesLedgerRejections(t *testing.T) {
	m, ledger := newTestMockMinter()
	if err := ledger.Pause(ledger.Owner()); err != nil {
		t.Fatalf("Pause returned error: %v", err)
	}
	_, err := m.Mint(context.Background(), "Sunset", "ipfs://QmMeta", "")
	if !errors.Is(err, domain.ErrTransaction) {
		t.Fatalf("err = %v, want ErrTransaction", err)
	}
}

func TestNewEthereumMinterRequiresConfiguration(t *testing.T) {
	_, err := NewEthereumMinter(context.Background(), EthereumOptions{Logger: zerolog.Nop()})
	if !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("err = %v, want ErrConfiguration", err)
	}
	_, err = NewEthereumMinter(context.Background(), EthereumOptions{
		RPCURL:          "http://localhost:8545",
		PrivateKey:      "abc",
		ContractAddress: "not-hex",
		Logger:          zerolog.Nop(),
	})
	if !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("err = %v, want ErrConfiguration for bad address", err)
	}
}
