package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Backend paths identify the protocol variant by a fixed segment.
const (
	segmentBuyOpenSea = "buyOpenSea"
	segmentDirectMint = "directMint"
)

func loanQuery(loanDurationDays int, borrowerAddress string) url.Values {
	q := url.Values{}
	q.Set("loanDurationDays", strconv.Itoa(loanDurationDays))
	q.Set("customerWalletAddress", borrowerAddress)
	return q
}

// FetchLivePriceBuyOpenSeaData returns the pricing preview for buying a
// listed token through the direct-purchase variant.
func (c *Client) FetchLivePriceBuyOpenSeaData(ctx context.Context, nftCollectionAddress, nftID string, loanDurationDays int, borrowerAddress string) (*LivePriceData, error) {
	path := "/nftCollections/" + nftCollectionAddress + "/protocolVariant/" + segmentBuyOpenSea + "/nftId/" + nftID + "/livePriceData"
	var out LivePriceData
	if err := c.do(ctx, http.MethodGet, path, loanQuery(loanDurationDays, borrowerAddress), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchStartLoanBuyOpenSeaData returns the parameter bundle to start a loan
// through the direct-purchase variant.
func (c *Client) FetchStartLoanBuyOpenSeaData(ctx context.Context, nftCollectionAddress, nftID string, loanDurationDays int, borrowerAddress string) (*StartLoanData, error) {
	path := "/nftCollections/" + nftCollectionAddress + "/protocolVariant/" + segmentBuyOpenSea + "/nftId/" + nftID + "/startLoanData"
	var out StartLoanData
	if err := c.do(ctx, http.MethodGet, path, loanQuery(loanDurationDays, borrowerAddress), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchLivePriceDirectMintData returns the pricing preview for minting from
// the collection's crowdsale.
func (c *Client) FetchLivePriceDirectMintData(ctx context.Context, nftCollectionAddress string, loanDurationDays int, borrowerAddress string) (*LivePriceData, error) {
	path := "/nftCollections/" + nftCollectionAddress + "/protocolVariant/" + segmentDirectMint + "/livePriceData"
	var out LivePriceData
	if err := c.do(ctx, http.MethodGet, path, loanQuery(loanDurationDays, borrowerAddress), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchStartLoanDirectMintData returns the parameter bundle to start a loan
// through the mint variant. whitelistProof may be nil for open mints.
func (c *Client) FetchStartLoanDirectMintData(ctx context.Context, nftCollectionAddress string, loanDurationDays int, borrowerAddress string, whitelistProof []string) (*StartLoanData, error) {
	path := "/nftCollections/" + nftCollectionAddress + "/protocolVariant/" + segmentDirectMint + "/startLoanData"
	q := loanQuery(loanDurationDays, borrowerAddress)
	for _, proof := range whitelistProof {
		q.Add("whitelistProof[]", proof)
	}
	var out StartLoanData
	if err := c.do(ctx, http.MethodGet, path, q, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
