package pool

import (
	"context"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nftlend/backend"
)

const (
	testCollection = "0x1fB51960012a9e113669862C762f96A1f14881dC"
	testPoolAddr   = "0x812db15b8Bb43dBA89042eA8b919740C23aD48a3"
)

type stubSigner struct {
	address common.Address
	addrErr error
}

func (s *stubSigner) Address(context.Context) (common.Address, error) {
	return s.address, s.addrErr
}

func (s *stubSigner) SignMessage(context.Context, []byte) ([]byte, error) {
	return []byte{0x01}, nil
}

func (s *stubSigner) TransactorOpts(ctx context.Context, _ *big.Int) (*bind.TransactOpts, error) {
	return &bind.TransactOpts{From: s.address, Context: ctx}, nil
}

type stubContract struct {
	transactMethod string
	transactArgs   []interface{}
	transactOpts   *bind.TransactOpts
	tx             *types.Transaction
	transactErr    error

	callFn func(method string, results *[]interface{}, params []interface{}) error
}

func (s *stubContract) Transact(opts *bind.TransactOpts, method string, params ...interface{}) (*types.Transaction, error) {
	s.transactMethod = method
	s.transactArgs = params
	s.transactOpts = opts
	if s.transactErr != nil {
		return nil, s.transactErr
	}
	if s.tx == nil {
		s.tx = types.NewTx(&types.LegacyTx{Nonce: 1})
	}
	return s.tx, nil
}

func (s *stubContract) Call(_ *bind.CallOpts, results *[]interface{}, method string, params ...interface{}) error {
	return s.callFn(method, results, params)
}

type stubEth struct {
	chainID  *big.Int
	head     *types.Header
	gasPrice *big.Int
	tipCap   *big.Int
	receipt  *types.Receipt
}

func (s *stubEth) ChainID(context.Context) (*big.Int, error) { return s.chainID, nil }

func (s *stubEth) HeaderByNumber(context.Context, *big.Int) (*types.Header, error) {
	return s.head, nil
}

func (s *stubEth) SuggestGasPrice(context.Context) (*big.Int, error) { return s.gasPrice, nil }

func (s *stubEth) SuggestGasTipCap(context.Context) (*big.Int, error) { return s.tipCap, nil }

func (s *stubEth) TransactionReceipt(context.Context, common.Hash) (*types.Receipt, error) {
	return s.receipt, nil
}

func newTestBackend(t *testing.T, handler http.HandlerFunc) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := backend.NewClient(backend.EnvironmentLocal, backend.WithBaseURL(srv.URL), backend.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return c
}

func newTestPool(mode Mode, b *backend.Client, contract poolContract, eth ethReader, signer *stubSigner) *Client {
	return &Client{
		mode:       mode,
		collection: common.HexToAddress(testCollection),
		poolAddr:   common.HexToAddress(testPoolAddr),
		signer:     signer,
		backend:    b,
		contract:   contract,
		eth:        eth,
		log:        zap.NewNop(),
	}
}

func validConfig(mode Mode) Config {
	b, _ := backend.NewClient(backend.EnvironmentLocal)
	return Config{
		Mode:                 mode,
		NftCollectionAddress: testCollection,
		PoolAddress:          testPoolAddr,
		Signer:               &stubSigner{},
		Backend:              b,
		Eth:                  ethclient.NewClient(nil),
	}
}

func TestNewClient(t *testing.T) {
	for _, mode := range Modes() {
		c, err := NewClient(validConfig(mode))
		require.NoError(t, err)
		require.Equal(t, mode, c.Mode())
		require.Equal(t, common.HexToAddress(testPoolAddr), c.PoolAddress())
		require.Equal(t, common.HexToAddress(testCollection), c.NftCollectionAddress())
	}
}

func TestNewClientRejectsUnsupportedMode(t *testing.T) {
	cfg := validConfig(ModeBuyOpenSea)
	cfg.Mode = Mode("RentToOwn")

	_, err := NewClient(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "RentToOwn")
	require.Contains(t, err.Error(), string(ModeBuyOpenSea))
	require.Contains(t, err.Error(), string(ModeDirectMint))
}

func TestNewClientRejectsMalformedAddresses(t *testing.T) {
	cfg := validConfig(ModeBuyOpenSea)
	cfg.NftCollectionAddress = "not-an-address"
	_, err := NewClient(cfg)
	require.ErrorContains(t, err, "nft collection address")

	cfg = validConfig(ModeBuyOpenSea)
	cfg.PoolAddress = "0x123"
	_, err = NewClient(cfg)
	require.ErrorContains(t, err, "pool address")
}
