package pool

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
)

// ErrTransactionFailed marks a transaction that was mined with a
// non-success status. Gas was spent; the SDK never retries.
var ErrTransactionFailed = errors.New("transaction failed")

const receiptPollInterval = 2 * time.Second

// waitMined polls until the transaction is mined or the context is done.
func (c *Client) waitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.eth.TransactionReceipt(ctx, tx.Hash())
		if receipt != nil {
			return receipt, nil
		}
		if err != nil && !errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("fetch receipt: %w", err)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// checkReceiptStatus treats exactly status 1 as success. A reverted but
// mined transaction is reported the same way as any other non-success
// status.
func checkReceiptStatus(receipt *types.Receipt) error {
	if receipt == nil {
		return fmt.Errorf("%w: no receipt", ErrTransactionFailed)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("%w: tx %s mined with status %d", ErrTransactionFailed, receipt.TxHash.Hex(), receipt.Status)
	}
	return nil
}
