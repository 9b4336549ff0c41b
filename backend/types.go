package backend

// CustomerData is the backend's record for a borrower address.
type CustomerData struct {
	Borrower               string `json:"borrower"`
	Email                  string `json:"email,omitempty"`
	Web3EmailProtectedData string `json:"web3EmailProtectedData,omitempty"`
}

// StartLoanData is the parameter bundle for a single loan origination call.
// It is consumed exactly once to build a transaction.
type StartLoanData struct {
	CustomerBuyNftParameters BuyNftParameters `json:"customerBuyNftParameters"`
	CustomerBuyNftOverrides  BuyNftOverrides  `json:"customerBuyNftOverrides"`
}

// BuyNftParameters is the exact field set for the pool's buyNFT call. Big
// monetary values travel as decimal strings to keep exact integer semantics.
// PriceOfNFTIncludingFees is authoritative; callers must not recompute it.
type BuyNftParameters struct {
	TokenID                 string   `json:"tokenId"`
	PriceOfNFT              string   `json:"priceOfNFT"`
	NftFloorPrice           string   `json:"nftFloorPrice"`
	PriceOfNFTIncludingFees string   `json:"priceOfNFTIncludingFees"`
	CounterpartyAddress     string   `json:"counterpartyAddress"`
	LoanTimestamp           int64    `json:"loanTimestamp"`
	LoanDurationInSeconds   int64    `json:"loanDurationInSeconds"`
	OrderExtraData          string   `json:"orderExtraData"`
	OracleSignature         string   `json:"oracleSignature"`
	Proof                   []string `json:"proof,omitempty"`
}

// BuyNftOverrides is the payment value and gas limit the backend attaches to
// a loan origination. Both always take precedence over caller input.
type BuyNftOverrides struct {
	Value    string `json:"value"`
	GasLimit uint64 `json:"gasLimit"`
}

// LivePriceData is the pricing preview for a collateral token or collection.
// PriceOfNFTIncludingFees equals RemainingBalanceWithInterest plus
// ProposedUpfrontPayment; the backend's values are authoritative.
type LivePriceData struct {
	PriceOfNFT                   string `json:"priceOfNFT"`
	NftFloorPrice                string `json:"nftFloorPrice"`
	PriceOfNFTIncludingFees      string `json:"priceOfNFTIncludingFees"`
	ProposedUpfrontPayment       string `json:"proposedUpfrontPayment"`
	RemainingBalanceWithInterest string `json:"remainingBalanceWithInterest"`
	NumberOfInstallments         int    `json:"numberOfInstallments"`
	LoanDurationDays             int    `json:"loanDurationDays"`
}
