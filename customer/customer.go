// Package customer manages a borrower's off-chain registration data.
package customer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"nftlend/backend"
	"nftlend/wallet"
)

// Client wraps the customer-data backend endpoints with login-signature
// authentication. Personal data never touches the chain; it only lives in
// the backend's database.
type Client struct {
	signer  wallet.Signer
	backend *backend.Client
	log     *zap.Logger
}

// NewClient builds a customer client over the given backend client.
func NewClient(signer wallet.Signer, b *backend.Client, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{signer: signer, backend: b, log: log}
}

// RequestLoginSignature triggers a wallet signature over the canonical
// ownership message. The pair works as a bearer credential for the
// customer-data endpoints and stays valid for a few days; reuse it across
// calls instead of prompting the wallet every time.
func (c *Client) RequestLoginSignature(ctx context.Context) (backend.LoginSignature, error) {
	borrower, err := c.signer.Address(ctx)
	if err != nil {
		return backend.LoginSignature{}, fmt.Errorf("resolve borrower address: %w", err)
	}
	c.log.Debug("requesting login signature", zap.String("borrower", borrower.Hex()))
	return backend.GenerateLoginSignature(ctx, c.signer)
}

// FetchCustomerData returns the record registered for the signer's address.
func (c *Client) FetchCustomerData(ctx context.Context, sig backend.LoginSignature) (*backend.CustomerData, error) {
	borrower, err := c.signer.Address(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve borrower address: %w", err)
	}
	c.log.Debug("fetching customer data", zap.String("borrower", borrower.Hex()))
	return c.backend.FetchCustomerData(ctx, borrower.Hex(), sig)
}

// RegisterEmail associates an email address with the signer's address, used
// for loan notifications and payment reminders.
func (c *Client) RegisterEmail(ctx context.Context, sig backend.LoginSignature, email string) error {
	borrower, err := c.signer.Address(ctx)
	if err != nil {
		return fmt.Errorf("resolve borrower address: %w", err)
	}
	c.log.Info("registering email", zap.String("borrower", borrower.Hex()))
	return c.backend.SetCustomerEmail(ctx, borrower.Hex(), sig, email)
}

// UnregisterEmail removes the email registration for the signer's address.
func (c *Client) UnregisterEmail(ctx context.Context, sig backend.LoginSignature) error {
	borrower, err := c.signer.Address(ctx)
	if err != nil {
		return fmt.Errorf("resolve borrower address: %w", err)
	}
	c.log.Info("unregistering email", zap.String("borrower", borrower.Hex()))
	return c.backend.DeleteCustomerEmail(ctx, borrower.Hex(), sig)
}
