package pool

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

// Loan is the on-chain loan record for one collateral token and borrower.
// All numeric fields keep exact integer semantics; none of them is ever a
// float. The record is read-only from the client's side and becomes terminal
// once IsClosed or IsInLiquidation is set.
type Loan struct {
	Borrower                      common.Address
	TokenID                       *big.Int
	AmountAtStart                 *big.Int
	AmountOwedWithInterest        *big.Int
	NextPaymentAmount             *big.Int
	InterestAmountPerPayment      *big.Int
	LoanDurationInSeconds         *big.Int
	StartTime                     *big.Int
	NextPaymentTime               *big.Int
	RemainingNumberOfInstallments *big.Int
	DailyInterestRateAtStart      *big.Int
	IsClosed                      bool
	IsInLiquidation               bool
}

// rawLoan mirrors the contract's loan tuple layout for ABI decoding.
type rawLoan struct {
	Borrower                      common.Address
	TokenID                       *big.Int
	AmountAtStart                 *big.Int
	AmountOwedWithInterest        *big.Int
	NextPaymentAmount             *big.Int
	InterestAmountPerPayment      *big.Int
	LoanDurationInSeconds         *big.Int
	StartTime                     *big.Int
	NextPaymentTime               *big.Int
	RemainingNumberOfInstallments *big.Int
	DailyInterestRateAtStart      *big.Int
	IsClosed                      bool
	IsInLiquidation               bool
}

func loanFromRaw(raw rawLoan) *Loan {
	return &Loan{
		Borrower:                      raw.Borrower,
		TokenID:                       raw.TokenID,
		AmountAtStart:                 raw.AmountAtStart,
		AmountOwedWithInterest:        raw.AmountOwedWithInterest,
		NextPaymentAmount:             raw.NextPaymentAmount,
		InterestAmountPerPayment:      raw.InterestAmountPerPayment,
		LoanDurationInSeconds:         raw.LoanDurationInSeconds,
		StartTime:                     raw.StartTime,
		NextPaymentTime:               raw.NextPaymentTime,
		RemainingNumberOfInstallments: raw.RemainingNumberOfInstallments,
		DailyInterestRateAtStart:      raw.DailyInterestRateAtStart,
		IsClosed:                      raw.IsClosed,
		IsInLiquidation:               raw.IsInLiquidation,
	}
}

// RetrieveLoan reads the current loan record for the collateral token and
// the signer's address. No side effects; reflects the latest confirmed
// chain state at call time.
func (c *Client) RetrieveLoan(ctx context.Context, nftID string) (*Loan, error) {
	borrower, err := c.signer.Address(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve borrower address: %w", err)
	}
	tokenID, err := parseBigInt("nftId", nftID)
	if err != nil {
		return nil, err
	}

	c.log.Debug("retrieving loan",
		zap.String("nftId", nftID),
		zap.String("borrower", borrower.Hex()),
	)

	var out []interface{}
	err = c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "retrieveLoan", tokenID, borrower)
	if err != nil {
		return nil, fmt.Errorf("retrieveLoan call: %w", err)
	}
	raw := *abi.ConvertType(out[0], new(rawLoan)).(*rawLoan)
	return loanFromRaw(raw), nil
}

// PayNextLoanStep pays the next installment: it reads the loan immediately
// before submission and transfers exactly the NextPaymentAmount it read. If
// chain state moves between the read and the submission the transaction may
// fail on-chain; the client does not re-read or retry.
func (c *Client) PayNextLoanStep(ctx context.Context, nftID string) (*types.Receipt, error) {
	borrower, err := c.signer.Address(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve borrower address: %w", err)
	}
	tokenID, err := parseBigInt("nftId", nftID)
	if err != nil {
		return nil, err
	}

	loan, err := c.RetrieveLoan(ctx, nftID)
	if err != nil {
		return nil, err
	}

	c.log.Info("paying next loan step",
		zap.String("nftId", nftID),
		zap.String("borrower", borrower.Hex()),
		zap.String("nextPaymentAmount", loan.NextPaymentAmount.String()),
	)

	chainID, err := c.eth.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch chain id: %w", err)
	}
	opts, err := c.signer.TransactorOpts(ctx, chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	opts.Value = loan.NextPaymentAmount

	fees, err := selectFeeOverrides(ctx, c.eth)
	if err != nil {
		return nil, err
	}
	fees.apply(opts)

	tx, err := c.contract.Transact(opts, "refundLoan", tokenID, borrower)
	if err != nil {
		c.metrics.incTransaction("refundLoan", "submit_error")
		return nil, fmt.Errorf("submit refundLoan: %w", err)
	}

	receipt, err := c.waitMined(ctx, tx)
	if err != nil {
		c.metrics.incTransaction("refundLoan", "wait_error")
		return nil, err
	}
	if err := checkReceiptStatus(receipt); err != nil {
		c.metrics.incTransaction("refundLoan", "reverted")
		c.log.Warn("refundLoan transaction failed", zap.String("tx", tx.Hash().Hex()))
		return nil, err
	}

	c.metrics.incTransaction("refundLoan", "confirmed")
	c.log.Info("refundLoan confirmed", zap.String("tx", tx.Hash().Hex()))
	return receipt, nil
}
