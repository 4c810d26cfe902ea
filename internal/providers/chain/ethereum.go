package chain

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog"

	"nftdesigner/contracts/nftdesigner"
	"nftdesigner/internal/domain"
)

// mintGasLimit caps every mint submission. Generous for the target networks
// and low enough to bound the damage of a reverting call.
const mintGasLimit = 500000

// EthereumOptions configures the live minter. RPCURL, PrivateKey and
// ContractAddress must all be resolvable; their absence is a configuration
// error, never degraded.
type EthereumOptions struct {
	RPCURL          string
	PrivateKey      string
	ContractAddress string
	Logger          zerolog.Logger
}

// EthereumMinter drives the deployed NFTDesigner contract through a JSON-RPC
// endpoint with a single signing credential.
type EthereumMinter struct {
	client   *ethclient.Client
	contract *nftdesigner.NFTDesigner
	signer   common.Address
	logger   zerolog.Logger
}

// NewEthereumMinter dials the endpoint, derives the signer and binds the
// contract. The chain id is taken from the endpoint itself.
func NewEthereumMinter(ctx context.Context, opts EthereumOptions) (*EthereumMinter, error) {
	if opts.RPCURL == "" || opts.PrivateKey == "" || opts.ContractAddress == "" {
		return nil, fmt.Errorf("%w: rpc url, private key and contract address are all required", domain.ErrConfiguration)
	}
	if !common.IsHexAddress(opts.ContractAddress) {
		return nil, fmt.Errorf("%w: contract address %q is not a hex address", domain.ErrConfiguration, opts.ContractAddress)
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(opts.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: parse private key: %v", domain.ErrConfiguration, err)
	}

	client, err := ethclient.DialContext(ctx, opts.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %v", domain.ErrConfiguration, opts.RPCURL, err)
	}
	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: read chain id: %v", domain.ErrConfiguration, err)
	}
	transactOpts, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: build transactor: %v", domain.ErrConfiguration, err)
	}
	transactOpts.GasLimit = mintGasLimit

	contract, err := nftdesigner.NewNFTDesigner(transactOpts, common.HexToAddress(opts.ContractAddress), client)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("bind contract: %w", err)
	}

	signer := crypto.PubkeyToAddress(key.PublicKey)
	opts.Logger.Info().
		Str("signer", signer.Hex()).
		Str("contract", opts.ContractAddress).
		Int64("chain_id", chainID.Int64()).
		Msg("ethereum minter ready")

	return &EthereumMinter{
		client:   client,
		contract: contract,
		signer:   signer,
		logger:   opts.Logger,
	}, nil
}

// Mint submits the mint call and blocks until the transaction is included.
// No retry happens here; retry policy, if any, belongs to the caller.
func (m *EthereumMinter) Mint(ctx context.Context, displayName, metadataURI, recipient string) (*MintOutcome, error) {
	to := m.signer
	if recipient != "" {
		if !common.IsHexAddress(recipient) {
			return nil, fmt.Errorf("%w: recipient %q is not a hex address", domain.ErrValidation, recipient)
		}
		to = common.HexToAddress(recipient)
	}

	m.logger.Info().Str("name", displayName).Str("to", to.Hex()).Str("uri", metadataURI).Msg("submitting mint")
	tx, err := m.contract.Mint(to, metadataURI)
	if err != nil {
		return nil, fmt.Errorf("%w: submit mint: %v", domain.ErrTransaction, err)
	}
	m.logger.Info().Str("tx", tx.Hash().Hex()).Msg("mint submitted, waiting for confirmation")

	receipt, err := bind.WaitMined(ctx, m.client, tx)
	if err != nil {
		return nil, fmt.Errorf("%w: wait for receipt of %s: %v", domain.ErrTransaction, tx.Hash().Hex(), err)
	}
	if receipt == nil {
		return nil, fmt.Errorf("%w: no receipt for %s", domain.ErrTransaction, tx.Hash().Hex())
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%w: mint reverted in %s", domain.ErrTransaction, tx.Hash().Hex())
	}

	// The contract issues dense sequential ids, so the freshly minted token
	// is totalSupply-1. A concurrent mint from another actor between our
	// confirmation and this read would skew the answer; acceptable for a
	// single-signer deployment.
	supply, err := m.contract.TotalSupply()
	if err != nil {
		return nil, fmt.Errorf("%w: read total supply: %v", domain.ErrTransaction, err)
	}
	tokenID := new(big.Int).Sub(supply, big.NewInt(1))

	m.logger.Info().Str("token_id", tokenID.String()).Str("tx", receipt.TxHash.Hex()).Msg("mint confirmed")
	return &MintOutcome{
		TokenID:         tokenID.String(),
		TransactionHash: receipt.TxHash.Hex(),
	}, nil
}

// Close releases the underlying RPC connection.
func (m *EthereumMinter) Close() {
	if m.client != nil {
		m.client.Close()
	}
}

var _ Minter = (*EthereumMinter)(nil)
