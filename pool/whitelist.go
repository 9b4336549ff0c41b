package pool

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// IsWhitelistedAddress checks an allowlist inclusion proof directly against
// the pool contract, with no backend involvement. Mint variant only.
func (c *Client) IsWhitelistedAddress(ctx context.Context, address common.Address, proof []common.Hash) (bool, error) {
	if c.mode != ModeDirectMint {
		return false, fmt.Errorf("isWhitelistedAddress is only supported in mode %s", ModeDirectMint)
	}

	proofBytes := make([][32]byte, len(proof))
	for i, h := range proof {
		proofBytes[i] = h
	}

	var out []interface{}
	err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "isWhitelistedAddress", address, proofBytes)
	if err != nil {
		return false, fmt.Errorf("isWhitelistedAddress call: %w", err)
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}
