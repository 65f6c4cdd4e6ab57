// Package model defines the core data structures for the swap-quote-ea.
package model

import "math/big"

// Token describes a token's on-chain identity and display metadata.
type Token struct {
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name,omitempty"`
	Decimals int32  `json:"decimals"`
}

// QuoteRequest is the input to the enrichment engine.
// AmountIn is a base-unit integer; it may exceed float64 range, so every
// consumer works on the *big.Int and never converts through floats.
type QuoteRequest struct {
	// EVM chain id of the network the swap executes on
	ChainID int64 `json:"chainId"`

	// Input and output token addresses, or the native asset sentinel
	TokenIn  string `json:"inTokenAddress"`
	TokenOut string `json:"outTokenAddress"`

	// Input amount in the input token's base units
	AmountIn *big.Int `json:"-"`

	// Optional address that will execute the swap
	Account string `json:"account,omitempty"`

	// Slippage tolerance in basis points, open interval (0, 10000)
	SlippageBps int64 `json:"slippageBps"`

	// Optional caller-supplied gas price override, wei per gas unit
	GasPrice *big.Int `json:"-"`
}

// SwapQuote is the upstream aggregator's response before enrichment.
// All amount fields are base-unit integer strings, passed through verbatim.
type SwapQuote struct {
	// Input amount echoed by the upstream
	InAmount string `json:"inAmount"`

	// Raw output amount in the output token's base units
	OutAmount string `json:"outAmount"`

	// Estimated gas units for the swap transaction
	EstimatedGas string `json:"estimatedGas"`

	// Execution fields: calldata, call target and native value to attach
	Data  string `json:"data"`
	To    string `json:"to"`
	Value string `json:"value"`
}

// EnrichedQuote is the engine's output: the upstream quote plus
// slippage-adjusted minimums, gas cost and human-readable amounts.
// The raw integer fields are the source of truth for any protective
// on-chain check; the formatted fields are derived and never authoritative.
type EnrichedQuote struct {
	InAmount string `json:"inAmount"`

	// Raw base-unit output amount as returned upstream, never mutated
	OutAmountRaw string `json:"outAmountRaw"`

	// OutAmountRaw scaled by the output token's decimals. Equals the raw
	// string when decimals are unknown.
	OutAmount string `json:"outAmount"`

	// OutAmountRaw reduced by the slippage tolerance, raw and formatted
	MinReceivedRaw string `json:"minReceivedRaw"`
	MinReceived    string `json:"minReceived"`

	// Gas price actually used, total cost in wei, and the cost scaled
	// to 18-decimal native-asset precision
	GasPriceWei   string `json:"gasPriceWei"`
	GasCostWei    string `json:"gasCostWei"`
	GasCostNative string `json:"gasCostNative"`

	EstimatedGas string `json:"estimatedGas"`

	// Execution fields passed through from the upstream quote
	Data  string `json:"data"`
	To    string `json:"to"`
	Value string `json:"value"`

	// Token descriptors when resolvable from the registry
	TokenIn  *Token `json:"tokenIn,omitempty"`
	TokenOut *Token `json:"tokenOut,omitempty"`

	SlippageBps int64 `json:"slippageBps"`
	ChainID     int64 `json:"chainId"`
}
