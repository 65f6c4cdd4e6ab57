// Package upstream provides the client for the DEX aggregator's swap-quote
// endpoint. The aggregator does all routing; this package only translates
// parameters out and the response envelope back in.
package upstream

import (
	"context"
	"math/big"

	"github.com/yourorg/swap-quote-ea/internal/model"
)

// Params are the normalized parameters for one swap-quote call.
// Slippage is a percentage string (the upstream interface is
// percentage-based; the basis-point conversion happens before this layer).
type Params struct {
	ChainID  int64
	TokenIn  string
	TokenOut string

	// Input amount in base units
	AmountIn *big.Int

	// Slippage percentage, e.g. "0.5" for 50 bps
	Slippage string

	// Optional executing account
	Account string

	// Optional gas price in wei to quote against
	GasPrice *big.Int
}

// Provider is the capability interface behind which other aggregators could
// be substituted. There is exactly one concrete implementation.
type Provider interface {
	GetQuote(ctx context.Context, params Params) (*model.SwapQuote, error)
}
