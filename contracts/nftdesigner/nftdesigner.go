// Package nftdesigner provides Go bindings for the NFTDesigner contract: a
// supply-capped, pausable NFT collection whose token ids are dense sequential
// integers assigned in mint order.
package nftdesigner

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// NFTDesigner is a high-level wrapper around the deployed contract.
type NFTDesigner struct {
	abi          abi.ABI
	address      common.Address
	contract     *bind.BoundContract
	transactOpts *bind.TransactOpts
}

// NewNFTDesigner connects to an already-deployed NFTDesigner contract.
func NewNFTDesigner(opts *bind.TransactOpts, addr common.Address, backend bind.ContractBackend) (*NFTDesigner, error) {
	parsed, err := abi.JSON(strings.NewReader(NFTDesignerABI))
	if err != nil {
		return nil, err
	}
	bound := bind.NewBoundContract(addr, parsed, backend, backend, backend)
	return &NFTDesigner{
		abi:          parsed,
		address:      addr,
		contract:     bound,
		transactOpts: opts,
	}, nil
}

// Address returns the contract address this binding targets.
func (c *NFTDesigner) Address() common.Address {
	return c.address
}

// Mint creates one token owned by `to` with the given URI suffix.
func (c *NFTDesigner) Mint(to common.Address, uri string) (*types.Transaction, error) {
	return c.contract.Transact(c.transactOpts, "mint", to, uri)
}

// MintBatch creates one token per URI, ids assigned sequentially across the
// whole batch in argument order.
func (c *NFTDesigner) MintBatch(to common.Address, uris []string) (*types.Transaction, error) {
	return c.contract.Transact(c.transactOpts, "mintBatch", to, uris)
}

// Pause halts all minting (owner only).
func (c *NFTDesigner) Pause() (*types.Transaction, error) {
	return c.contract.Transact(c.transactOpts, "pause")
}

// Unpause re-enables minting (owner only).
func (c *NFTDesigner) Unpause() (*types.Transaction, error) {
	return c.contract.Transact(c.transactOpts, "unpause")
}

// SetBaseURI updates the prefix prepended to every token URI (owner only).
func (c *NFTDesigner) SetBaseURI(newBaseURI string) (*types.Transaction, error) {
	return c.contract.Transact(c.transactOpts, "setBaseURI", newBaseURI)
}

// SetMintPrice updates the mint price (owner only).
func (c *NFTDesigner) SetMintPrice(newPrice *big.Int) (*types.Transaction, error) {
	return c.contract.Transact(c.transactOpts, "setMintPrice", newPrice)
}

// TokenURI resolves the full metadata URI for a token.
func (c *NFTDesigner) TokenURI(tokenID *big.Int) (string, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{}, &out, "tokenURI", tokenID); err != nil {
		return "", err
	}
	return out[0].(string), nil
}

// OwnerOf returns the current owner of a token.
func (c *NFTDesigner) OwnerOf(tokenID *big.Int) (common.Address, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{}, &out, "ownerOf", tokenID); err != nil {
		return common.Address{}, err
	}
	return out[0].(common.Address), nil
}

// TotalSupply returns how many tokens have been minted.
func (c *NFTDesigner) TotalSupply() (*big.Int, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{}, &out, "totalSupply"); err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// MintPrice returns the current mint price in wei.
func (c *NFTDesigner) MintPrice() (*big.Int, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{}, &out, "mintPrice"); err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// Paused reports whether minting is currently halted.
func (c *NFTDesigner) Paused() (bool, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{}, &out, "paused"); err != nil {
		return false, err
	}
	return out[0].(bool), nil
}

// Owner returns the admin address fixed at deploy.
func (c *NFTDesigner) Owner() (common.Address, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{}, &out, "owner"); err != nil {
		return common.Address{}, err
	}
	return out[0].(common.Address), nil
}

// MaxSupplyOnChain reads the contract's lifetime issuance ceiling.
func (c *NFTDesigner) MaxSupplyOnChain() (*big.Int, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{}, &out, "MAX_SUPPLY"); err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}
