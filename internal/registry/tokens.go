// Package registry provides the static token lookup service: a curated
// per-chain map of token addresses to display metadata. It holds no state
// and a lookup miss is never an error; callers degrade formatting instead.
package registry

import (
	"strings"

	"github.com/yourorg/swap-quote-ea/internal/model"
	"github.com/yourorg/swap-quote-ea/internal/types"
)

// chainTokens holds the curated token lists per chain. Native assets use
// the sentinel address and always carry 18 decimals.
var chainTokens = map[int64][]model.Token{
	// Ethereum Mainnet
	1: {
		{Address: types.NativeTokenAddress, Symbol: "ETH", Name: "Ethereum", Decimals: 18},
		{Address: "0xdAC17F958D2ee523a2206206994597C13D831ec7", Symbol: "USDT", Name: "Tether USD", Decimals: 6},
		{Address: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", Symbol: "USDC", Name: "USD Coin", Decimals: 6},
		{Address: "0x6B175474E89094C44Da98b954EedeAC495271d0F", Symbol: "DAI", Name: "Dai Stablecoin", Decimals: 18},
		{Address: "0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599", Symbol: "WBTC", Name: "Wrapped BTC", Decimals: 8},
	},
	// BNB Chain
	56: {
		{Address: types.NativeTokenAddress, Symbol: "BNB", Name: "BNB", Decimals: 18},
		{Address: "0x55d398326f99059fF775485246999027B3197955", Symbol: "USDT", Name: "Tether USD", Decimals: 18},
		{Address: "0x8AC76a51cc950d9822D68b83fE1Ad97B32Cd580d", Symbol: "USDC", Name: "USD Coin", Decimals: 18},
		{Address: "0xe9e7CEA3DedcA5984780Bafc599bD69ADd087D56", Symbol: "BUSD", Name: "BUSD Token", Decimals: 18},
		{Address: "0x2170Ed0880ac9A755fd29B2688956BD959F933F8", Symbol: "ETH", Name: "Ethereum Token", Decimals: 18},
	},
	// Polygon
	137: {
		{Address: types.NativeTokenAddress, Symbol: "MATIC", Name: "Polygon", Decimals: 18},
		{Address: "0xc2132D05D31c914a87C6611C10748AEb04B58e8F", Symbol: "USDT", Name: "Tether USD", Decimals: 6},
		{Address: "0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359", Symbol: "USDC", Name: "USD Coin", Decimals: 6},
		{Address: "0x8f3Cf7ad23Cd3CaDbD9735AFf958023239c6A063", Symbol: "DAI", Name: "Dai Stablecoin", Decimals: 18},
		{Address: "0x7ceB23fD6bC0adD59E62ac25578270cFf1b9f619", Symbol: "WETH", Name: "Wrapped Ether", Decimals: 18},
	},
	// Optimism
	10: {
		{Address: types.NativeTokenAddress, Symbol: "ETH", Name: "Ethereum", Decimals: 18},
		{Address: "0x94b008aA00579c1307B0EF2c499aD98a8ce58e58", Symbol: "USDT", Name: "Tether USD", Decimals: 6},
		{Address: "0x0b2C639c533813f4Aa9D7837CAf62653d097Ff85", Symbol: "USDC", Name: "USD Coin", Decimals: 6},
		{Address: "0xDA10009cBd5D07dd0CeCc66161FC93D7c9000da1", Symbol: "DAI", Name: "Dai Stablecoin", Decimals: 18},
		{Address: "0x68f180fcCe6836688e9084f035309E29Bf0A2095", Symbol: "WBTC", Name: "Wrapped BTC", Decimals: 8},
	},
	// Arbitrum
	42161: {
		{Address: types.NativeTokenAddress, Symbol: "ETH", Name: "Ethereum", Decimals: 18},
		{Address: "0xFd086bC7CD5C481DCC9C85ebE478A1C0b69FCbb9", Symbol: "USDT", Name: "Tether USD", Decimals: 6},
		{Address: "0xaf88d065e77c8cC2239327C5EDb3A432268e5831", Symbol: "USDC", Name: "USD Coin", Decimals: 6},
		{Address: "0xDA10009cBd5D07dd0CeCc66161FC93D7c9000da1", Symbol: "DAI", Name: "Dai Stablecoin", Decimals: 18},
		{Address: "0x2f2a2543B76A4166549F7aaB2e75Bef0aefC5B0f", Symbol: "WBTC", Name: "Wrapped BTC", Decimals: 8},
	},
	// Base
	8453: {
		{Address: types.NativeTokenAddress, Symbol: "ETH", Name: "Ethereum", Decimals: 18},
		{Address: "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913", Symbol: "USDC", Name: "USD Coin", Decimals: 6},
		{Address: "0x50c5725949A6F0c72E6C4a641F24049A917DB0Cb", Symbol: "DAI", Name: "Dai Stablecoin", Decimals: 18},
		{Address: "0x4200000000000000000000000000000000000006", Symbol: "WETH", Name: "Wrapped Ether", Decimals: 18},
	},
	// Avalanche C-Chain
	43114: {
		{Address: types.NativeTokenAddress, Symbol: "AVAX", Name: "Avalanche", Decimals: 18},
		{Address: "0x9702230A8Ea53601f5cD2dc00fDBc13d4dF4A8c7", Symbol: "USDT", Name: "Tether USD", Decimals: 6},
		{Address: "0xB97EF9Ef8734C71904D8002F8b6Bc66Dd9c48a6E", Symbol: "USDC", Name: "USD Coin", Decimals: 6},
		{Address: "0xd586E7F844cEa2F87f50152665BCbc2C279D8d70", Symbol: "DAI", Name: "Dai Stablecoin", Decimals: 18},
		{Address: "0x49D5c2BdFfac6CE2BFdB6640F4F80f226bc10bAB", Symbol: "WETH", Name: "Wrapped Ether", Decimals: 18},
	},
}

// TokensForChain returns the curated token list for a chain, or nil for
// an unknown chain.
func TokensForChain(chainID int64) []model.Token {
	return chainTokens[chainID]
}

// FindToken resolves a token by chain and address, case-insensitively.
// The native sentinel resolves to the chain's native asset descriptor.
func FindToken(chainID int64, address string) (model.Token, bool) {
	if types.IsNativeToken(address) {
		if chain, ok := types.ChainByID(chainID); ok {
			return model.Token{
				Address:  types.NativeTokenAddress,
				Symbol:   chain.NativeSymbol,
				Name:     chain.Name,
				Decimals: types.NativeDecimals,
			}, true
		}
		return model.Token{}, false
	}

	for _, token := range chainTokens[chainID] {
		if strings.EqualFold(token.Address, address) {
			return token, true
		}
	}
	return model.Token{}, false
}
