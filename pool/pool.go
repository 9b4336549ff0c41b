// Package pool is the client for a lending pool contract. One client serves
// one pool in one protocol variant.
package pool

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"nftlend/backend"
	"nftlend/contracts"
	"nftlend/wallet"
)

// Mode selects the collateral acquisition variant of a pool.
type Mode string

const (
	// ModeBuyOpenSea buys the collateral from an existing market listing.
	ModeBuyOpenSea Mode = "BuyOpenSea"
	// ModeDirectMint mints the collateral on demand from the collection.
	ModeDirectMint Mode = "DirectMint"
)

// Modes lists the supported protocol variants.
func Modes() []Mode {
	return []Mode{ModeBuyOpenSea, ModeDirectMint}
}

// Valid reports whether the mode is a known protocol variant.
func (m Mode) Valid() bool {
	return m == ModeBuyOpenSea || m == ModeDirectMint
}

func (m Mode) abiJSON() string {
	if m == ModeDirectMint {
		return contracts.PoolDirectMintABI
	}
	return contracts.PoolBuyOpenSeaABI
}

// poolContract is the slice of bind.BoundContract the client uses.
type poolContract interface {
	Transact(opts *bind.TransactOpts, method string, params ...interface{}) (*types.Transaction, error)
	Call(opts *bind.CallOpts, results *[]interface{}, method string, params ...interface{}) error
}

// ethReader is the slice of ethclient.Client the client reads chain state
// through.
type ethReader interface {
	ChainID(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// Config carries everything a pool client needs at construction.
type Config struct {
	Mode                 Mode
	NftCollectionAddress string
	PoolAddress          string
	Signer               wallet.Signer
	Backend              *backend.Client
	Eth                  *ethclient.Client
	Logger               *zap.Logger
	Metrics              *Metrics
}

// Client talks to one pool contract and its backend endpoints. Methods are
// safe for concurrent use; the client holds no mutable state.
type Client struct {
	mode       Mode
	collection common.Address
	poolAddr   common.Address
	signer     wallet.Signer
	backend    *backend.Client
	contract   poolContract
	eth        ethReader
	log        *zap.Logger
	metrics    *Metrics
}

// NewClient validates the addresses and mode eagerly, before any network
// activity, and binds the variant's contract ABI.
func NewClient(cfg Config) (*Client, error) {
	if !cfg.Mode.Valid() {
		return nil, fmt.Errorf("unsupported pool mode %q, supported values: %v", cfg.Mode, Modes())
	}
	if err := wallet.AssertValidAddress(cfg.NftCollectionAddress); err != nil {
		return nil, fmt.Errorf("nft collection address: %w", err)
	}
	if err := wallet.AssertValidAddress(cfg.PoolAddress); err != nil {
		return nil, fmt.Errorf("pool address: %w", err)
	}
	if cfg.Signer == nil {
		return nil, fmt.Errorf("signer is required")
	}
	if cfg.Backend == nil {
		return nil, fmt.Errorf("backend client is required")
	}
	if cfg.Eth == nil {
		return nil, fmt.Errorf("eth client is required")
	}

	parsedABI, err := abi.JSON(strings.NewReader(cfg.Mode.abiJSON()))
	if err != nil {
		return nil, fmt.Errorf("parse pool abi: %w", err)
	}

	poolAddr := common.HexToAddress(cfg.PoolAddress)
	bound := bind.NewBoundContract(poolAddr, parsedABI, cfg.Eth, cfg.Eth, cfg.Eth)

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		mode:       cfg.Mode,
		collection: common.HexToAddress(cfg.NftCollectionAddress),
		poolAddr:   poolAddr,
		signer:     cfg.Signer,
		backend:    cfg.Backend,
		contract:   bound,
		eth:        cfg.Eth,
		log:        log,
		metrics:    cfg.Metrics,
	}, nil
}

// Mode returns the protocol variant the client was built for.
func (c *Client) Mode() Mode { return c.mode }

// PoolAddress returns the pool contract address.
func (c *Client) PoolAddress() common.Address { return c.poolAddr }

// NftCollectionAddress returns the collateral collection address.
func (c *Client) NftCollectionAddress() common.Address { return c.collection }
