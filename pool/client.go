package pool

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"nftlend/backend"
)

// PreviewLoan fetches the live pricing preview for the collateral without
// touching the chain.
func (c *Client) PreviewLoan(ctx context.Context, nftID string, loanDurationDays int) (*backend.LivePriceData, error) {
	borrower, err := c.signer.Address(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve borrower address: %w", err)
	}

	if c.mode == ModeDirectMint {
		return c.backend.FetchLivePriceDirectMintData(ctx, c.collection.Hex(), loanDurationDays, borrower.Hex())
	}
	return c.backend.FetchLivePriceBuyOpenSeaData(ctx, c.collection.Hex(), nftID, loanDurationDays, borrower.Hex())
}

// StartLoan originates a loan for the collateral token: it fetches the
// backend's parameter bundle, submits the pool's buyNFT call and waits for
// inclusion. The receipt is returned only when its status is success; any
// other status is a fatal failure for this call.
//
// Starting the same loan twice produces two independent on-chain attempts;
// the second is expected to revert at the chain level and surfaces here as
// ErrTransactionFailed.
func (c *Client) StartLoan(ctx context.Context, nftID string, loanDurationDays int) (*types.Receipt, error) {
	return c.startLoan(ctx, nftID, loanDurationDays, nil)
}

// StartLoanWithProof is StartLoan for allowlisted mints: the proof is passed
// to the backend, which echoes the membership proof to submit on-chain. Only
// valid in ModeDirectMint.
func (c *Client) StartLoanWithProof(ctx context.Context, nftID string, loanDurationDays int, whitelistProof []common.Hash) (*types.Receipt, error) {
	if c.mode != ModeDirectMint {
		return nil, fmt.Errorf("whitelist proof is only supported in mode %s", ModeDirectMint)
	}
	return c.startLoan(ctx, nftID, loanDurationDays, whitelistProof)
}

func (c *Client) startLoan(ctx context.Context, nftID string, loanDurationDays int, whitelistProof []common.Hash) (*types.Receipt, error) {
	borrower, err := c.signer.Address(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve borrower address: %w", err)
	}

	c.log.Info("starting loan",
		zap.String("borrower", borrower.Hex()),
		zap.String("collection", c.collection.Hex()),
		zap.String("nftId", nftID),
		zap.Int("loanDurationDays", loanDurationDays),
	)

	var data *backend.StartLoanData
	if c.mode == ModeDirectMint {
		data, err = c.backend.FetchStartLoanDirectMintData(ctx, c.collection.Hex(), loanDurationDays, borrower.Hex(), hashesToHex(whitelistProof))
	} else {
		data, err = c.backend.FetchStartLoanBuyOpenSeaData(ctx, c.collection.Hex(), nftID, loanDurationDays, borrower.Hex())
	}
	if err != nil {
		return nil, err
	}

	args, err := buyNFTArgs(c.mode, &data.CustomerBuyNftParameters)
	if err != nil {
		return nil, err
	}

	opts, err := c.transactOpts(ctx, data.CustomerBuyNftOverrides)
	if err != nil {
		return nil, err
	}

	tx, err := c.contract.Transact(opts, "buyNFT", args...)
	if err != nil {
		c.metrics.incTransaction("buyNFT", "submit_error")
		return nil, fmt.Errorf("submit buyNFT: %w", err)
	}

	c.log.Info("buyNFT submitted", zap.String("tx", tx.Hash().Hex()))

	receipt, err := c.waitMined(ctx, tx)
	if err != nil {
		c.metrics.incTransaction("buyNFT", "wait_error")
		return nil, err
	}
	if err := checkReceiptStatus(receipt); err != nil {
		c.metrics.incTransaction("buyNFT", "reverted")
		c.log.Warn("buyNFT transaction failed", zap.String("tx", tx.Hash().Hex()))
		return nil, err
	}

	c.metrics.incTransaction("buyNFT", "confirmed")
	c.log.Info("buyNFT confirmed",
		zap.String("tx", tx.Hash().Hex()),
		zap.Uint64("block", receipt.BlockNumber.Uint64()),
	)
	return receipt, nil
}

// buyNFTArgs projects the backend's parameter bundle into the positional
// buyNFT arguments, preserving the contract's field order.
func buyNFTArgs(mode Mode, p *backend.BuyNftParameters) ([]interface{}, error) {
	tokenID, err := parseBigInt("tokenId", p.TokenID)
	if err != nil {
		return nil, err
	}
	priceOfNFT, err := parseBigInt("priceOfNFT", p.PriceOfNFT)
	if err != nil {
		return nil, err
	}
	floorPrice, err := parseBigInt("nftFloorPrice", p.NftFloorPrice)
	if err != nil {
		return nil, err
	}
	priceIncludingFees, err := parseBigInt("priceOfNFTIncludingFees", p.PriceOfNFTIncludingFees)
	if err != nil {
		return nil, err
	}
	if !common.IsHexAddress(p.CounterpartyAddress) {
		return nil, fmt.Errorf("backend returned invalid counterparty address %q", p.CounterpartyAddress)
	}
	orderExtraData, err := decodeHexBytes("orderExtraData", p.OrderExtraData)
	if err != nil {
		return nil, err
	}
	oracleSignature, err := decodeHexBytes("oracleSignature", p.OracleSignature)
	if err != nil {
		return nil, err
	}

	args := []interface{}{
		tokenID,
		priceOfNFT,
		floorPrice,
		priceIncludingFees,
		common.HexToAddress(p.CounterpartyAddress),
		big.NewInt(p.LoanTimestamp),
		big.NewInt(p.LoanDurationInSeconds),
		orderExtraData,
		oracleSignature,
	}

	if mode == ModeDirectMint {
		proof, err := proofToBytes32(p.Proof)
		if err != nil {
			return nil, err
		}
		args = append(args, proof)
	}
	return args, nil
}

// transactOpts merges the backend-supplied value and gas limit with freshly
// selected fee overrides. The backend values always win over caller input.
func (c *Client) transactOpts(ctx context.Context, overrides backend.BuyNftOverrides) (*bind.TransactOpts, error) {
	chainID, err := c.eth.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch chain id: %w", err)
	}
	opts, err := c.signer.TransactorOpts(ctx, chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx

	value, err := parseBigInt("value", overrides.Value)
	if err != nil {
		return nil, err
	}
	opts.Value = value
	opts.GasLimit = overrides.GasLimit

	fees, err := selectFeeOverrides(ctx, c.eth)
	if err != nil {
		return nil, err
	}
	fees.apply(opts)
	return opts, nil
}

func parseBigInt(field, value string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(strings.TrimSpace(value), 10)
	if !ok {
		return nil, fmt.Errorf("backend returned invalid %s %q", field, value)
	}
	return n, nil
}

func decodeHexBytes(field, value string) ([]byte, error) {
	if value == "" {
		return []byte{}, nil
	}
	if !strings.HasPrefix(value, "0x") {
		value = "0x" + value
	}
	raw, err := hexutil.Decode(value)
	if err != nil {
		return nil, fmt.Errorf("backend returned invalid %s: %w", field, err)
	}
	return raw, nil
}

func proofToBytes32(proof []string) ([][32]byte, error) {
	out := make([][32]byte, 0, len(proof))
	for _, item := range proof {
		raw, err := decodeHexBytes("proof", item)
		if err != nil {
			return nil, err
		}
		if len(raw) != 32 {
			return nil, fmt.Errorf("backend returned proof element of %d bytes, want 32", len(raw))
		}
		var h [32]byte
		copy(h[:], raw)
		out = append(out, h)
	}
	return out, nil
}

func hashesToHex(hashes []common.Hash) []string {
	if len(hashes) == 0 {
		return nil
	}
	out := make([]string, len(hashes))
	for i, h := range hashes {
		out[i] = h.Hex()
	}
	return out
}
