package pool

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestIsWhitelistedAddress(t *testing.T) {
	addr := common.HexToAddress("0x812db15b8Bb43dBA89042eA8b919740C23aD48a3")
	proofHash := common.HexToHash("0x1111111111111111111111111111111111111111111111111111111111111111")

	contract := &stubContract{
		callFn: func(method string, results *[]interface{}, params []interface{}) error {
			require.Equal(t, "isWhitelistedAddress", method)
			require.Equal(t, addr, params[0])
			proof := params[1].([][32]byte)
			require.Equal(t, proofHash, common.Hash(proof[0]))
			*results = []interface{}{true}
			return nil
		},
	}

	c := newTestPool(ModeDirectMint, nil, contract, &stubEth{}, &stubSigner{})

	ok, err := c.IsWhitelistedAddress(context.Background(), addr, []common.Hash{proofHash})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestIsWhitelistedAddressRejectedOutsideDirectMint(t *testing.T) {
	c := newTestPool(ModeBuyOpenSea, nil, &stubContract{}, &stubEth{}, &stubSigner{})

	_, err := c.IsWhitelistedAddress(context.Background(), common.Address{}, nil)
	require.ErrorContains(t, err, string(ModeDirectMint))
}
