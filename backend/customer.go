package backend

import (
	"context"
	"net/http"
)

// FetchCustomerData returns the customer record for the borrower address.
// Requires a login signature.
func (c *Client) FetchCustomerData(ctx context.Context, borrowerAddress string, sig LoginSignature) (*CustomerData, error) {
	var out CustomerData
	err := c.do(ctx, http.MethodGet, "/customerData/"+borrowerAddress, nil, loginHeaders(sig), nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SetCustomerEmail registers the email address for the borrower address.
func (c *Client) SetCustomerEmail(ctx context.Context, borrowerAddress string, sig LoginSignature, email string) error {
	body := struct {
		Email string `json:"email"`
	}{Email: email}
	return c.do(ctx, http.MethodPut, "/customerData/"+borrowerAddress+"/email", nil, loginHeaders(sig), body, nil)
}

// DeleteCustomerEmail removes the registered email for the borrower address.
func (c *Client) DeleteCustomerEmail(ctx context.Context, borrowerAddress string, sig LoginSignature) error {
	return c.do(ctx, http.MethodDelete, "/customerData/"+borrowerAddress+"/email", nil, loginHeaders(sig), nil, nil)
}
