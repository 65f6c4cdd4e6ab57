// Package quote implements the enrichment and validation engine: it
// composes the gas resolver, token registry and upstream client into a
// fully normalized, slippage-adjusted quote.
package quote

import (
	"context"
	"fmt"
	"math/big"

	"github.com/sirupsen/logrus"

	"github.com/yourorg/swap-quote-ea/internal/config"
	"github.com/yourorg/swap-quote-ea/internal/model"
	"github.com/yourorg/swap-quote-ea/internal/registry"
	"github.com/yourorg/swap-quote-ea/internal/upstream"
	"github.com/yourorg/swap-quote-ea/internal/validation"
)

// bpsDenominator is the number of basis points in 100%.
const bpsDenominator = 10000

// GasSource resolves a gas price for a chain, honoring a caller override.
type GasSource interface {
	GasPrice(ctx context.Context, chainID int64, override *big.Int) (*big.Int, error)
}

// Engine orchestrates one quote request end to end. It holds no per-request
// state; concurrent calls are independent.
type Engine struct {
	provider upstream.Provider
	gas      GasSource

	// Reject quotes whose normalized output exceeds the normalized input
	// by more than this multiple. Coarse by intent: it catches upstream
	// parameter bugs, not normal slippage or fees.
	maxRateMultiple *big.Int
}

// NewEngine creates an engine from configuration and its collaborators.
func NewEngine(cfg config.Config, provider upstream.Provider, gas GasSource) *Engine {
	multiple := cfg.MaxRateMultiple
	if multiple <= 0 {
		multiple = 1000
	}
	return &Engine{
		provider:        provider,
		gas:             gas,
		maxRateMultiple: big.NewInt(multiple),
	}
}

// GetQuote validates the request, resolves gas pricing and token metadata,
// fetches the upstream quote, sanity-checks the exchange rate and computes
// the slippage-adjusted minimum output and gas cost.
//
// Structural failures return a typed error. Formatting and gas-cost display
// failures degrade: the quote still comes back with raw values or zeroed
// cost fields, because they do not affect fund safety.
func (e *Engine) GetQuote(ctx context.Context, req model.QuoteRequest) (*model.EnrichedQuote, error) {
	if err := validation.ValidateRequest(req); err != nil {
		return nil, err
	}

	gasPrice, err := e.gas.GasPrice(ctx, req.ChainID, req.GasPrice)
	if err != nil {
		return nil, err
	}

	// Best-effort metadata. A miss degrades formatting and skips the rate
	// check; it never aborts the quote.
	tokenIn, haveIn := registry.FindToken(req.ChainID, req.TokenIn)
	tokenOut, haveOut := registry.FindToken(req.ChainID, req.TokenOut)

	raw, err := e.provider.GetQuote(ctx, upstream.Params{
		ChainID:  req.ChainID,
		TokenIn:  req.TokenIn,
		TokenOut: req.TokenOut,
		AmountIn: req.AmountIn,
		Slippage: slippagePercent(req.SlippageBps),
		Account:  req.Account,
		GasPrice: gasPrice,
	})
	if err != nil {
		return nil, err
	}

	outAmount, ok := new(big.Int).SetString(raw.OutAmount, 10)
	if !ok || outAmount.Sign() < 0 {
		return nil, &model.LogicError{Message: fmt.Sprintf("malformed output amount %q", raw.OutAmount)}
	}

	if haveIn && haveOut {
		if err := e.checkRate(req.AmountIn, outAmount, tokenIn.Decimals, tokenOut.Decimals); err != nil {
			return nil, err
		}
	} else {
		logrus.Debugf("Skipping rate check for chain %d: token metadata incomplete", req.ChainID)
	}

	minReceived := minReceivedRaw(outAmount, req.SlippageBps)

	enriched := &model.EnrichedQuote{
		InAmount:       raw.InAmount,
		OutAmountRaw:   outAmount.String(),
		OutAmount:      outAmount.String(),
		MinReceivedRaw: minReceived.String(),
		MinReceived:    minReceived.String(),
		EstimatedGas:   raw.EstimatedGas,
		Data:           raw.Data,
		To:             raw.To,
		Value:          raw.Value,
		SlippageBps:    req.SlippageBps,
		ChainID:        req.ChainID,
	}
	if haveIn {
		enriched.TokenIn = &tokenIn
	}
	if haveOut {
		enriched.TokenOut = &tokenOut
	}

	if haveOut {
		if formatted, err := FormatUnits(outAmount, tokenOut.Decimals); err == nil {
			enriched.OutAmount = formatted
		} else {
			logrus.Warnf("Formatting output amount failed: %v", err)
		}
		if formatted, err := FormatUnits(minReceived, tokenOut.Decimals); err == nil {
			enriched.MinReceived = formatted
		} else {
			logrus.Warnf("Formatting minimum received failed: %v", err)
		}
	}

	e.fillGasCost(enriched, raw.EstimatedGas, gasPrice)

	return enriched, nil
}

// checkRate rejects quotes whose output, normalized to a common 18-decimal
// scale, exceeds the input by more than the plausibility multiple. Without
// both tokens' decimals no fair comparison is possible and the caller skips
// the check entirely.
func (e *Engine) checkRate(amountIn, amountOut *big.Int, decimalsIn, decimalsOut int32) error {
	normIn := normalizeTo18(amountIn, decimalsIn)
	normOut := normalizeTo18(amountOut, decimalsOut)

	limit := new(big.Int).Mul(normIn, e.maxRateMultiple)
	if normOut.Cmp(limit) > 0 {
		return fmt.Errorf("%w: normalized output %s exceeds %sx input %s",
			model.ErrImplausibleRate, normOut, e.maxRateMultiple, normIn)
	}
	return nil
}

// minReceivedRaw computes outAmount * (10000 - slippageBps) / 10000 with
// integer floor. Truncation under-promises the guaranteed minimum, never
// over-promises it.
func minReceivedRaw(outAmount *big.Int, slippageBps int64) *big.Int {
	kept := new(big.Int).Mul(outAmount, big.NewInt(bpsDenominator-slippageBps))
	return kept.Div(kept, big.NewInt(bpsDenominator))
}

// fillGasCost computes estimatedGas * gasPrice and its 18-decimal native
// rendering. Failures zero the cost fields instead of aborting: the user
// should still see the trade terms when only the cost display fails.
func (e *Engine) fillGasCost(enriched *model.EnrichedQuote, estimatedGas string, gasPrice *big.Int) {
	enriched.GasPriceWei = "0"
	enriched.GasCostWei = "0"
	enriched.GasCostNative = "0"

	if gasPrice == nil {
		return
	}
	enriched.GasPriceWei = gasPrice.String()

	gasUnits, ok := new(big.Int).SetString(estimatedGas, 10)
	if !ok || gasUnits.Sign() < 0 {
		logrus.Warnf("Malformed estimated gas %q, zeroing cost fields", estimatedGas)
		return
	}

	cost := new(big.Int).Mul(gasUnits, gasPrice)
	enriched.GasCostWei = cost.String()

	if formatted, err := FormatUnits(cost, normalizedDecimals); err == nil {
		enriched.GasCostNative = formatted
	} else {
		logrus.Warnf("Formatting gas cost failed: %v", err)
	}
}
