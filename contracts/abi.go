// Package contracts carries the pool contract ABI fragments used by the SDK.
package contracts

// PoolBuyOpenSeaABI is the ABI of a pool that acquires collateral from an
// existing marketplace listing.
const PoolBuyOpenSeaABI = `[
  {
    "type": "function",
    "name": "buyNFT",
    "stateMutability": "payable",
    "inputs": [
      {"name": "tokenId", "type": "uint256"},
      {"name": "priceOfNFT", "type": "uint256"},
      {"name": "nftFloorPrice", "type": "uint256"},
      {"name": "priceOfNFTIncludingFees", "type": "uint256"},
      {"name": "settlementManager", "type": "address"},
      {"name": "loanTimestamp", "type": "uint256"},
      {"name": "loanDurationInSeconds", "type": "uint256"},
      {"name": "orderExtraData", "type": "bytes"},
      {"name": "oracleSignature", "type": "bytes"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "retrieveLoan",
    "stateMutability": "view",
    "inputs": [
      {"name": "tokenId", "type": "uint256"},
      {"name": "borrower", "type": "address"}
    ],
    "outputs": [
      {
        "name": "loan",
        "type": "tuple",
        "components": [
          {"name": "borrower", "type": "address"},
          {"name": "tokenID", "type": "uint256"},
          {"name": "amountAtStart", "type": "uint256"},
          {"name": "amountOwedWithInterest", "type": "uint256"},
          {"name": "nextPaymentAmount", "type": "uint256"},
          {"name": "interestAmountPerPayment", "type": "uint256"},
          {"name": "loanDurationInSeconds", "type": "uint256"},
          {"name": "startTime", "type": "uint256"},
          {"name": "nextPaymentTime", "type": "uint256"},
          {"name": "remainingNumberOfInstallments", "type": "uint160"},
          {"name": "dailyInterestRateAtStart", "type": "uint256"},
          {"name": "isClosed", "type": "bool"},
          {"name": "isInLiquidation", "type": "bool"}
        ]
      }
    ]
  },
  {
    "type": "function",
    "name": "refundLoan",
    "stateMutability": "payable",
    "inputs": [
      {"name": "tokenId", "type": "uint256"},
      {"name": "borrower", "type": "address"}
    ],
    "outputs": []
  }
]`

// PoolDirectMintABI is the ABI of a pool that mints collateral on demand from
// a crowdsale contract. buyNFT additionally takes an allowlist inclusion
// proof, and the pool exposes the allowlist check.
const PoolDirectMintABI = `[
  {
    "type": "function",
    "name": "buyNFT",
    "stateMutability": "payable",
    "inputs": [
      {"name": "tokenId", "type": "uint256"},
      {"name": "priceOfNFT", "type": "uint256"},
      {"name": "nftFloorPrice", "type": "uint256"},
      {"name": "priceOfNFTIncludingFees", "type": "uint256"},
      {"name": "crowdsaleContractAddress", "type": "address"},
      {"name": "loanTimestamp", "type": "uint256"},
      {"name": "loanDurationInSeconds", "type": "uint256"},
      {"name": "orderExtraData", "type": "bytes"},
      {"name": "oracleSignature", "type": "bytes"},
      {"name": "proof", "type": "bytes32[]"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "retrieveLoan",
    "stateMutability": "view",
    "inputs": [
      {"name": "tokenId", "type": "uint256"},
      {"name": "borrower", "type": "address"}
    ],
    "outputs": [
      {
        "name": "loan",
        "type": "tuple",
        "components": [
          {"name": "borrower", "type": "address"},
          {"name": "tokenID", "type": "uint256"},
          {"name": "amountAtStart", "type": "uint256"},
          {"name": "amountOwedWithInterest", "type": "uint256"},
          {"name": "nextPaymentAmount", "type": "uint256"},
          {"name": "interestAmountPerPayment", "type": "uint256"},
          {"name": "loanDurationInSeconds", "type": "uint256"},
          {"name": "startTime", "type": "uint256"},
          {"name": "nextPaymentTime", "type": "uint256"},
          {"name": "remainingNumberOfInstallments", "type": "uint160"},
          {"name": "dailyInterestRateAtStart", "type": "uint256"},
          {"name": "isClosed", "type": "bool"},
          {"name": "isInLiquidation", "type": "bool"}
        ]
      }
    ]
  },
  {
    "type": "function",
    "name": "refundLoan",
    "stateMutability": "payable",
    "inputs": [
      {"name": "tokenId", "type": "uint256"},
      {"name": "borrower", "type": "address"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "isWhitelistedAddress",
    "stateMutability": "view",
    "inputs": [
      {"name": "_address", "type": "address"},
      {"name": "_proof", "type": "bytes32[]"}
    ],
    "outputs": [
      {"name": "", "type": "bool"}
    ]
  }
]`
