// Package validation provides request-level validation for quote requests.
// Structural failures are rejected here before any network call is made.
package validation

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/yourorg/swap-quote-ea/internal/model"
	"github.com/yourorg/swap-quote-ea/internal/types"
)

// Slippage tolerance bounds in basis points. Both ends are exclusive:
// zero tolerance and 100% tolerance are equally meaningless.
const (
	MinSlippageBps = 0
	MaxSlippageBps = 10000
)

// ValidTokenAddress reports whether an address is a well-formed token
// address or the native asset sentinel.
func ValidTokenAddress(address string) bool {
	if types.IsNativeToken(address) {
		return true
	}
	return common.IsHexAddress(address)
}

// ValidateRequest checks a quote request for structural problems.
// It returns a typed error suitable for direct HTTP status mapping.
func ValidateRequest(req model.QuoteRequest) error {
	if req.TokenIn == "" || req.TokenOut == "" {
		return fmt.Errorf("%w: inTokenAddress and outTokenAddress are required", model.ErrInvalidRequest)
	}
	if !ValidTokenAddress(req.TokenIn) {
		return fmt.Errorf("%w: malformed inTokenAddress %q", model.ErrInvalidRequest, req.TokenIn)
	}
	if !ValidTokenAddress(req.TokenOut) {
		return fmt.Errorf("%w: malformed outTokenAddress %q", model.ErrInvalidRequest, req.TokenOut)
	}
	if req.Account != "" && !common.IsHexAddress(req.Account) {
		return fmt.Errorf("%w: malformed account %q", model.ErrInvalidRequest, req.Account)
	}

	if req.AmountIn == nil {
		return fmt.Errorf("%w: amount is required", model.ErrInvalidRequest)
	}
	if req.AmountIn.Sign() <= 0 {
		return fmt.Errorf("%w: amount must be a positive base-unit integer", model.ErrInvalidRequest)
	}

	if req.GasPrice != nil && req.GasPrice.Sign() <= 0 {
		return fmt.Errorf("%w: gasPrice override must be positive", model.ErrInvalidRequest)
	}

	if _, ok := types.ChainByID(req.ChainID); !ok {
		return fmt.Errorf("%w: chain id %d", model.ErrUnsupportedChain, req.ChainID)
	}

	if req.SlippageBps <= MinSlippageBps || req.SlippageBps >= MaxSlippageBps {
		return fmt.Errorf("%w: slippageBps %d outside (0, 10000)", model.ErrInvalidSlippage, req.SlippageBps)
	}

	return nil
}
