// Command nftlend is a small demo harness for the SDK: it previews, starts,
// inspects and repays loans against a configured pool from the terminal.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"nftlend"
	"nftlend/backend"
	"nftlend/internal/config"
	"nftlend/pool"
	"nftlend/wallet"
)

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := zap.NewNop()
	if cfg.EnableLogging {
		logger, _ = zap.NewProduction()
		defer logger.Sync()
	}

	signer, err := wallet.NewPrivateKeySigner(cfg.PrivateKey)
	if err != nil {
		log.Fatalf("signer error: %v", err)
	}

	ctx := context.Background()
	sdk, err := nftlend.Dial(ctx, cfg.RPCURL, signer,
		nftlend.WithEnvironment(backend.Environment(cfg.Environment)),
		nftlend.WithLogger(logger),
	)
	if err != nil {
		log.Fatalf("sdk error: %v", err)
	}

	if err := run(ctx, sdk, cfg, os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("%s error: %v", os.Args[1], err)
	}
}

func run(ctx context.Context, sdk *nftlend.SDK, cfg *config.Config, command string, args []string) error {
	switch command {
	case "preview":
		nftID, days := loanArgs(args)
		p, err := poolClient(sdk, cfg)
		if err != nil {
			return err
		}
		preview, err := p.PreviewLoan(ctx, nftID, days)
		if err != nil {
			return err
		}
		return printJSON(preview)

	case "start":
		nftID, days := loanArgs(args)
		p, err := poolClient(sdk, cfg)
		if err != nil {
			return err
		}
		receipt, err := p.StartLoan(ctx, nftID, days)
		if err != nil {
			return err
		}
		fmt.Printf("loan started, tx %s in block %d\n", receipt.TxHash.Hex(), receipt.BlockNumber.Uint64())
		return nil

	case "retrieve":
		if len(args) < 1 {
			usage()
		}
		p, err := poolClient(sdk, cfg)
		if err != nil {
			return err
		}
		loan, err := p.RetrieveLoan(ctx, args[0])
		if err != nil {
			return err
		}
		return printLoan(loan)

	case "pay":
		if len(args) < 1 {
			usage()
		}
		p, err := poolClient(sdk, cfg)
		if err != nil {
			return err
		}
		receipt, err := p.PayNextLoanStep(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("installment paid, tx %s\n", receipt.TxHash.Hex())
		return nil

	case "whitelist":
		if len(args) < 1 {
			usage()
		}
		p, err := poolClient(sdk, cfg)
		if err != nil {
			return err
		}
		proof := make([]common.Hash, 0, len(args)-1)
		for _, raw := range args[1:] {
			proof = append(proof, common.HexToHash(raw))
		}
		ok, err := p.IsWhitelistedAddress(ctx, common.HexToAddress(args[0]), proof)
		if err != nil {
			return err
		}
		fmt.Printf("whitelisted: %v\n", ok)
		return nil

	case "customer":
		c := sdk.Customer()
		sig, err := c.RequestLoginSignature(ctx)
		if err != nil {
			return err
		}
		data, err := c.FetchCustomerData(ctx, sig)
		if err != nil {
			return err
		}
		return printJSON(data)

	case "register-email":
		if len(args) < 1 {
			usage()
		}
		c := sdk.Customer()
		sig, err := c.RequestLoginSignature(ctx)
		if err != nil {
			return err
		}
		if err := c.RegisterEmail(ctx, sig, args[0]); err != nil {
			return err
		}
		fmt.Println("email registered")
		return nil

	case "unregister-email":
		c := sdk.Customer()
		sig, err := c.RequestLoginSignature(ctx)
		if err != nil {
			return err
		}
		if err := c.UnregisterEmail(ctx, sig); err != nil {
			return err
		}
		fmt.Println("email unregistered")
		return nil

	default:
		usage()
		return nil
	}
}

func poolClient(sdk *nftlend.SDK, cfg *config.Config) (*pool.Client, error) {
	return sdk.Pool(nftlend.PoolParams{
		NftCollectionAddress: cfg.NftCollectionAddress,
		PoolAddress:          cfg.PoolAddress,
		Mode:                 pool.Mode(cfg.PoolMode),
	})
}

func loanArgs(args []string) (string, int) {
	if len(args) < 2 {
		usage()
	}
	days, err := strconv.Atoi(args[1])
	if err != nil {
		log.Fatalf("invalid loan duration %q", args[1])
	}
	return args[0], days
}

func printJSON(v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(raw))
	return nil
}

func printLoan(loan *pool.Loan) error {
	fmt.Printf("borrower:             %s\n", loan.Borrower.Hex())
	fmt.Printf("tokenID:              %s\n", loan.TokenID)
	fmt.Printf("amountAtStart:        %s\n", loan.AmountAtStart)
	fmt.Printf("owedWithInterest:     %s\n", loan.AmountOwedWithInterest)
	fmt.Printf("nextPaymentAmount:    %s\n", loan.NextPaymentAmount)
	fmt.Printf("nextPaymentTime:      %s\n", loan.NextPaymentTime)
	fmt.Printf("remainingInstallments: %s\n", loan.RemainingNumberOfInstallments)
	fmt.Printf("closed: %v, inLiquidation: %v\n", loan.IsClosed, loan.IsInLiquidation)
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: nftlend <command> [args]

commands:
  preview <nftId> <loanDurationDays>
  start <nftId> <loanDurationDays>
  retrieve <nftId>
  pay <nftId>
  whitelist <address> [proof...]
  customer
  register-email <email>
  unregister-email`)
	os.Exit(2)
}
