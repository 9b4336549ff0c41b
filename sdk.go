// Package nftlend is the client SDK for an NFT-collateralized lending
// protocol. It combines a pool smart contract with the protocol's pricing
// and bookkeeping backend into a handful of loan operations.
package nftlend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"nftlend/backend"
	"nftlend/customer"
	"nftlend/pool"
	"nftlend/wallet"
)

// SDK is the entry point. One instance is bound to one backend environment
// at construction; the environment never changes afterwards. All derived
// clients share the signer, chain connection and logger.
type SDK struct {
	eth     *ethclient.Client
	signer  wallet.Signer
	env     backend.Environment
	backend *backend.Client
	log     *zap.Logger

	httpClient  *http.Client
	promReg     prometheus.Registerer
	poolMetrics *pool.Metrics
}

// Option configures the SDK at construction.
type Option func(*SDK)

// WithEnvironment selects the backend deployment. Default is production.
func WithEnvironment(env backend.Environment) Option {
	return func(s *SDK) { s.env = env }
}

// WithLogger enables diagnostic logging. Logging is not part of any
// functional contract; the default logger is a no-op.
func WithLogger(log *zap.Logger) Option {
	return func(s *SDK) { s.log = log }
}

// WithHTTPClient sets the HTTP client used for backend calls.
func WithHTTPClient(h *http.Client) Option {
	return func(s *SDK) { s.httpClient = h }
}

// WithMetrics registers SDK instrumentation with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(s *SDK) { s.promReg = reg }
}

// New builds an SDK over an already-dialed chain connection.
func New(eth *ethclient.Client, signer wallet.Signer, opts ...Option) (*SDK, error) {
	if eth == nil {
		return nil, fmt.Errorf("eth client is required")
	}
	if signer == nil {
		return nil, fmt.Errorf("signer is required")
	}

	s := &SDK{
		eth:    eth,
		signer: signer,
		env:    backend.EnvironmentProduction,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	backendOpts := []backend.Option{backend.WithLogger(s.log)}
	if s.httpClient != nil {
		backendOpts = append(backendOpts, backend.WithHTTPClient(s.httpClient))
	}
	if s.promReg != nil {
		backendOpts = append(backendOpts, backend.WithMetrics(backend.NewMetrics(s.promReg)))
		s.poolMetrics = pool.NewMetrics(s.promReg)
	}

	b, err := backend.NewClient(s.env, backendOpts...)
	if err != nil {
		return nil, err
	}
	s.backend = b
	return s, nil
}

// Dial connects to the chain RPC endpoint and builds an SDK over it.
func Dial(ctx context.Context, rpcURL string, signer wallet.Signer, opts ...Option) (*SDK, error) {
	eth, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial rpc: %w", err)
	}
	return New(eth, signer, opts...)
}

// PoolParams identifies one lending pool and its protocol variant.
type PoolParams struct {
	NftCollectionAddress string
	PoolAddress          string
	Mode                 pool.Mode
}

// Pool returns a client for one lending pool. Addresses and mode are
// validated here, before any network activity.
func (s *SDK) Pool(params PoolParams) (*pool.Client, error) {
	return pool.NewClient(pool.Config{
		Mode:                 params.Mode,
		NftCollectionAddress: params.NftCollectionAddress,
		PoolAddress:          params.PoolAddress,
		Signer:               s.signer,
		Backend:              s.backend,
		Eth:                  s.eth,
		Logger:               s.log,
		Metrics:              s.poolMetrics,
	})
}

// Customer returns the client for the borrower's off-chain registration
// data.
func (s *SDK) Customer() *customer.Client {
	return customer.NewClient(s.signer, s.backend, s.log)
}
