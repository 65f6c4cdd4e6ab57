// Package types contains shared type definitions used across multiple packages
package types

import "strings"

// NativeTokenAddress is the reserved placeholder address the upstream
// aggregator uses for a chain's native asset, which has no token contract.
const NativeTokenAddress = "0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE"

// NativeDecimals is the precision of every supported chain's native asset.
const NativeDecimals = 18

// Chain describes a supported EVM network and how to reach it.
type Chain struct {
	// EVM chain id
	ID int64 `json:"chain_id"`

	// Identifier the upstream aggregator uses for this chain
	Slug string `json:"slug"`

	// Human-readable network name
	Name string `json:"name"`

	// Symbol of the native asset (ETH, BNB, ...)
	NativeSymbol string `json:"native_symbol"`

	// Environment variable that overrides the RPC endpoint
	RPCEnv string `json:"-"`

	// Default public RPC endpoint
	DefaultRPC string `json:"-"`

	// LegacyGas marks chains without a functioning priority-fee market;
	// these use the single network-wide gas price query.
	LegacyGas bool `json:"legacy_gas"`
}

// Supported blockchain networks, keyed by EVM chain id.
var supportedChains = map[int64]Chain{
	1:     {ID: 1, Slug: "eth", Name: "Ethereum", NativeSymbol: "ETH", RPCEnv: "ETH_RPC_URL", DefaultRPC: "https://rpc.ankr.com/eth", LegacyGas: false},
	56:    {ID: 56, Slug: "bsc", Name: "BNB Chain", NativeSymbol: "BNB", RPCEnv: "BSC_RPC_URL", DefaultRPC: "https://rpc.ankr.com/bsc", LegacyGas: true},
	137:   {ID: 137, Slug: "polygon", Name: "Polygon", NativeSymbol: "MATIC", RPCEnv: "POLYGON_RPC_URL", DefaultRPC: "https://rpc.ankr.com/polygon", LegacyGas: false},
	10:    {ID: 10, Slug: "optimism", Name: "Optimism", NativeSymbol: "ETH", RPCEnv: "OPTIMISM_RPC_URL", DefaultRPC: "https://rpc.ankr.com/optimism", LegacyGas: false},
	42161: {ID: 42161, Slug: "arbitrum", Name: "Arbitrum", NativeSymbol: "ETH", RPCEnv: "ARBITRUM_RPC_URL", DefaultRPC: "https://rpc.ankr.com/arbitrum", LegacyGas: false},
	8453:  {ID: 8453, Slug: "base", Name: "Base", NativeSymbol: "ETH", RPCEnv: "BASE_RPC_URL", DefaultRPC: "https://mainnet.base.org", LegacyGas: false},
	43114: {ID: 43114, Slug: "avax", Name: "Avalanche C-Chain", NativeSymbol: "AVAX", RPCEnv: "AVAX_RPC_URL", DefaultRPC: "https://rpc.ankr.com/avalanche", LegacyGas: false},
}

// ChainByID returns the chain descriptor for an EVM chain id.
func ChainByID(id int64) (Chain, bool) {
	c, ok := supportedChains[id]
	return c, ok
}

// SlugForChain translates an EVM chain id to the upstream aggregator's
// own chain identifier. Empty string when the chain is not supported.
func SlugForChain(id int64) string {
	return supportedChains[id].Slug
}

// SupportedChains returns all chain descriptors, for the /chains endpoint.
func SupportedChains() []Chain {
	chains := make([]Chain, 0, len(supportedChains))
	for _, c := range supportedChains {
		chains = append(chains, c)
	}
	return chains
}

// IsNativeToken reports whether an address is the native asset sentinel.
// The comparison is case-insensitive like all address handling here.
func IsNativeToken(address string) bool {
	return strings.EqualFold(address, NativeTokenAddress)
}
