package pool

import (
	"context"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"
)

func exampleRawLoan() rawLoan {
	return rawLoan{
		Borrower:                      common.HexToAddress("0x812db15b8Bb43dBA89042eA8b919740C23aD48a3"),
		TokenID:                       big.NewInt(231),
		AmountAtStart:                 mustBig("4100000000000000000"),
		AmountOwedWithInterest:        mustBig("3100000000000000000"),
		NextPaymentAmount:             mustBig("121464000000000000"),
		InterestAmountPerPayment:      mustBig("1464000000000000"),
		LoanDurationInSeconds:         big.NewInt(5184000),
		StartTime:                     big.NewInt(1719244800),
		NextPaymentTime:               big.NewInt(1721836800),
		RemainingNumberOfInstallments: big.NewInt(3),
		DailyInterestRateAtStart:      big.NewInt(12),
		IsClosed:                      false,
		IsInLiquidation:               false,
	}
}

func mustBig(value string) *big.Int {
	n, ok := new(big.Int).SetString(value, 10)
	if !ok {
		panic("bad test value " + value)
	}
	return n
}

// Packing a loan tuple through the contract ABI and decoding it back must be
// the identity, with every numeric field kept as an exact integer.
func TestLoanTupleDecodeRoundTrip(t *testing.T) {
	for _, mode := range Modes() {
		t.Run(string(mode), func(t *testing.T) {
			parsed, err := abi.JSON(strings.NewReader(mode.abiJSON()))
			require.NoError(t, err)

			method, ok := parsed.Methods["retrieveLoan"]
			require.True(t, ok)

			in := exampleRawLoan()
			packed, err := method.Outputs.Pack(in)
			require.NoError(t, err)

			out, err := method.Outputs.Unpack(packed)
			require.NoError(t, err)
			require.Len(t, out, 1)

			raw := *abi.ConvertType(out[0], new(rawLoan)).(*rawLoan)
			loan := loanFromRaw(raw)

			require.Equal(t, in.Borrower, loan.Borrower)
			require.Zero(t, in.TokenID.Cmp(loan.TokenID))
			require.Zero(t, in.AmountAtStart.Cmp(loan.AmountAtStart))
			require.Zero(t, in.AmountOwedWithInterest.Cmp(loan.AmountOwedWithInterest))
			require.Zero(t, in.NextPaymentAmount.Cmp(loan.NextPaymentAmount))
			require.Zero(t, in.InterestAmountPerPayment.Cmp(loan.InterestAmountPerPayment))
			require.Zero(t, in.LoanDurationInSeconds.Cmp(loan.LoanDurationInSeconds))
			require.Zero(t, in.StartTime.Cmp(loan.StartTime))
			require.Zero(t, in.NextPaymentTime.Cmp(loan.NextPaymentTime))
			require.Zero(t, in.RemainingNumberOfInstallments.Cmp(loan.RemainingNumberOfInstallments))
			require.Zero(t, in.DailyInterestRateAtStart.Cmp(loan.DailyInterestRateAtStart))
			require.Equal(t, in.IsClosed, loan.IsClosed)
			require.Equal(t, in.IsInLiquidation, loan.IsInLiquidation)
		})
	}
}

func TestRetrieveLoanQueriesWithBorrower(t *testing.T) {
	borrower := common.HexToAddress("0x812db15b8Bb43dBA89042eA8b919740C23aD48a3")
	contract := &stubContract{
		callFn: func(method string, results *[]interface{}, params []interface{}) error {
			require.Equal(t, "retrieveLoan", method)
			require.Equal(t, big.NewInt(231), params[0])
			require.Equal(t, borrower, params[1])
			*results = []interface{}{exampleRawLoan()}
			return nil
		},
	}

	c := newTestPool(ModeBuyOpenSea, nil, contract, &stubEth{}, &stubSigner{address: borrower})

	loan, err := c.RetrieveLoan(context.Background(), "231")
	require.NoError(t, err)
	require.Equal(t, borrower, loan.Borrower)
	require.Equal(t, "121464000000000000", loan.NextPaymentAmount.String())
}

func TestPayNextLoanStepTransfersExactNextPaymentAmount(t *testing.T) {
	borrower := common.HexToAddress("0x812db15b8Bb43dBA89042eA8b919740C23aD48a3")
	contract := &stubContract{
		callFn: func(method string, results *[]interface{}, params []interface{}) error {
			*results = []interface{}{exampleRawLoan()}
			return nil
		},
	}
	eth := &stubEth{
		chainID: big.NewInt(1),
		head:    &types.Header{BaseFee: big.NewInt(50)},
		tipCap:  big.NewInt(2),
		receipt: &types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(9)},
	}

	c := newTestPool(ModeBuyOpenSea, nil, contract, eth, &stubSigner{address: borrower})

	receipt, err := c.PayNextLoanStep(context.Background(), "231")
	require.NoError(t, err)
	require.Equal(t, eth.receipt, receipt)

	require.Equal(t, "refundLoan", contract.transactMethod)
	require.Equal(t, big.NewInt(231), contract.transactArgs[0])
	require.Equal(t, borrower, contract.transactArgs[1])
	require.Equal(t, "121464000000000000", contract.transactOpts.Value.String())
}

func TestPayNextLoanStepRevertedIsFatal(t *testing.T) {
	contract := &stubContract{
		callFn: func(method string, results *[]interface{}, params []interface{}) error {
			*results = []interface{}{exampleRawLoan()}
			return nil
		},
	}
	eth := &stubEth{
		chainID: big.NewInt(1),
		head:    &types.Header{BaseFee: big.NewInt(50)},
		tipCap:  big.NewInt(2),
		receipt: &types.Receipt{Status: types.ReceiptStatusFailed, BlockNumber: big.NewInt(9)},
	}

	c := newTestPool(ModeBuyOpenSea, nil, contract, eth, &stubSigner{})

	_, err := c.PayNextLoanStep(context.Background(), "231")
	require.ErrorIs(t, err, ErrTransactionFailed)
}
