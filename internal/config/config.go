// Package config loads environment-driven settings for the demo CLI.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything the CLI needs to build an SDK instance.
type Config struct {
	Environment          string
	RPCURL               string
	PrivateKey           string
	NftCollectionAddress string
	PoolAddress          string
	PoolMode             string
	EnableLogging        bool
}

// Load reads configuration from the environment, with a .env file as
// fallback for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Environment:          envOr("NFTLEND_ENV", "production"),
		RPCURL:               envOr("NFTLEND_RPC_URL", ""),
		PrivateKey:           envOr("NFTLEND_PRIVATE_KEY", ""),
		NftCollectionAddress: envOr("NFTLEND_NFT_COLLECTION", ""),
		PoolAddress:          envOr("NFTLEND_POOL_ADDRESS", ""),
		PoolMode:             envOr("NFTLEND_POOL_MODE", "BuyOpenSea"),
		EnableLogging:        envOrBool("NFTLEND_ENABLE_LOGGING", false),
	}

	if cfg.RPCURL == "" {
		return nil, fmt.Errorf("NFTLEND_RPC_URL is required")
	}
	if cfg.PrivateKey == "" {
		return nil, fmt.Errorf("NFTLEND_PRIVATE_KEY is required")
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func envOrBool(key string, fallback bool) bool {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	return val == "1" || val == "true" || val == "yes"
}
