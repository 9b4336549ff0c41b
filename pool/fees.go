package pool

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
)

// FeeOverrides is either a legacy single gas price or the dual EIP-1559 fee
// caps, never a mix of both.
type FeeOverrides struct {
	GasPrice             *big.Int
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
}

// Legacy reports whether the overrides target a pre-fee-market network.
func (f FeeOverrides) Legacy() bool { return f.GasPrice != nil }

func (f FeeOverrides) apply(opts *bind.TransactOpts) {
	if f.Legacy() {
		opts.GasPrice = f.GasPrice
		return
	}
	opts.GasFeeCap = f.MaxFeePerGas
	opts.GasTipCap = f.MaxPriorityFeePerGas
}

// selectFeeOverrides probes the network's current fee reporting and picks the
// fee fields to attach. A head without a base fee means a legacy network.
// Fee markets move block to block, so this runs fresh before every
// submission.
func selectFeeOverrides(ctx context.Context, eth ethReader) (FeeOverrides, error) {
	head, err := eth.HeaderByNumber(ctx, nil)
	if err != nil {
		return FeeOverrides{}, fmt.Errorf("fetch chain head: %w", err)
	}

	if head.BaseFee == nil {
		gasPrice, err := eth.SuggestGasPrice(ctx)
		if err != nil {
			return FeeOverrides{}, fmt.Errorf("suggest gas price: %w", err)
		}
		return FeeOverrides{GasPrice: gasPrice}, nil
	}

	tip, err := eth.SuggestGasTipCap(ctx)
	if err != nil {
		return FeeOverrides{}, fmt.Errorf("suggest gas tip cap: %w", err)
	}
	maxFee := new(big.Int).Add(new(big.Int).Mul(head.BaseFee, big.NewInt(2)), tip)
	return FeeOverrides{MaxFeePerGas: maxFee, MaxPriorityFeePerGas: tip}, nil
}
