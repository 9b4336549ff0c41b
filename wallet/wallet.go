// Package wallet holds the signing capability the SDK resolves accounts from.
package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer abstracts the wallet controlling the borrower account. Address is
// resolved fresh on every operation because the underlying wallet may switch
// accounts between calls.
type Signer interface {
	// Address returns the checksummed account address the signer controls.
	Address(ctx context.Context) (common.Address, error)
	// SignMessage signs an EIP-191 personal message and returns the
	// 65-byte signature with the recovery id offset by 27.
	SignMessage(ctx context.Context, message []byte) ([]byte, error)
	// TransactorOpts returns transaction-signing options bound to chainID.
	TransactorOpts(ctx context.Context, chainID *big.Int) (*bind.TransactOpts, error)
}

// PrivateKeySigner signs with an in-memory secp256k1 key.
type PrivateKeySigner struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewPrivateKeySigner parses a hex-encoded private key, with or without the
// 0x prefix.
func NewPrivateKeySigner(hexKey string) (*PrivateKeySigner, error) {
	hexKey = strings.TrimPrefix(hexKey, "0x")
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return &PrivateKeySigner{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

func (s *PrivateKeySigner) Address(context.Context) (common.Address, error) {
	return s.address, nil
}

func (s *PrivateKeySigner) SignMessage(_ context.Context, message []byte) ([]byte, error) {
	sig, err := crypto.Sign(accounts.TextHash(message), s.key)
	if err != nil {
		return nil, fmt.Errorf("sign message: %w", err)
	}
	// personal_sign convention
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}

func (s *PrivateKeySigner) TransactorOpts(ctx context.Context, chainID *big.Int) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(s.key, chainID)
	if err != nil {
		return nil, fmt.Errorf("transactor: %w", err)
	}
	opts.Context = ctx
	return opts, nil
}

// ValidAddress reports whether value is a well-formed hex account address.
func ValidAddress(value string) bool {
	return common.IsHexAddress(value)
}

// AssertValidAddress rejects anything that is not a well-formed hex account
// address.
func AssertValidAddress(value string) error {
	if !common.IsHexAddress(value) {
		return fmt.Errorf("not a valid Ethereum address: %q", value)
	}
	return nil
}
