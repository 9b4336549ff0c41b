package nftlend

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"nftlend/backend"
	"nftlend/pool"
)

type stubSigner struct {
	address common.Address
}

func (s *stubSigner) Address(context.Context) (common.Address, error) {
	return s.address, nil
}

func (s *stubSigner) SignMessage(context.Context, []byte) ([]byte, error) {
	return []byte{0x01}, nil
}

func (s *stubSigner) TransactorOpts(_ context.Context, _ *big.Int) (*bind.TransactOpts, error) {
	return &bind.TransactOpts{From: s.address}, nil
}

func newTestSDK(t *testing.T, opts ...Option) *SDK {
	t.Helper()
	sdk, err := New(ethclient.NewClient(nil), &stubSigner{}, opts...)
	require.NoError(t, err)
	return sdk
}

func TestNewRequiresEthAndSigner(t *testing.T) {
	_, err := New(nil, &stubSigner{})
	require.ErrorContains(t, err, "eth client")

	_, err = New(ethclient.NewClient(nil), nil)
	require.ErrorContains(t, err, "signer")
}

func TestNewRejectsUnknownEnvironment(t *testing.T) {
	_, err := New(ethclient.NewClient(nil), &stubSigner{}, WithEnvironment(backend.Environment("staging")))
	require.Error(t, err)
	require.Contains(t, err.Error(), "staging")
}

func TestPoolValidatesEagerly(t *testing.T) {
	sdk := newTestSDK(t)

	_, err := sdk.Pool(PoolParams{
		NftCollectionAddress: "not-an-address",
		PoolAddress:          "0x812db15b8Bb43dBA89042eA8b919740C23aD48a3",
		Mode:                 pool.ModeBuyOpenSea,
	})
	require.ErrorContains(t, err, "nft collection address")

	_, err = sdk.Pool(PoolParams{
		NftCollectionAddress: "0x1fB51960012a9e113669862C762f96A1f14881dC",
		PoolAddress:          "0x812db15b8Bb43dBA89042eA8b919740C23aD48a3",
		Mode:                 pool.Mode("RentToOwn"),
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "RentToOwn")
	require.Contains(t, err.Error(), string(pool.ModeBuyOpenSea))
}

func TestPoolConstruction(t *testing.T) {
	sdk := newTestSDK(t, WithEnvironment(backend.EnvironmentLocal))

	p, err := sdk.Pool(PoolParams{
		NftCollectionAddress: "0x1fB51960012a9e113669862C762f96A1f14881dC",
		PoolAddress:          "0x812db15b8Bb43dBA89042eA8b919740C23aD48a3",
		Mode:                 pool.ModeDirectMint,
	})
	require.NoError(t, err)
	require.Equal(t, pool.ModeDirectMint, p.Mode())
}

func TestCustomerConstruction(t *testing.T) {
	sdk := newTestSDK(t)
	require.NotNil(t, sdk.Customer())
}

func TestWithMetricsRegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	sdk := newTestSDK(t, WithMetrics(reg))
	require.NotNil(t, sdk.poolMetrics)
}
