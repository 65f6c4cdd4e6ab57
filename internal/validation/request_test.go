package validation

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/swap-quote-ea/internal/model"
	"github.com/yourorg/swap-quote-ea/internal/types"
)

func baseRequest() model.QuoteRequest {
	return model.QuoteRequest{
		ChainID:     1,
		TokenIn:     types.NativeTokenAddress,
		TokenOut:    "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
		AmountIn:    big.NewInt(1_000_000),
		SlippageBps: 100,
	}
}

func TestValidateRequestAccepts(t *testing.T) {
	req := baseRequest()
	require.NoError(t, ValidateRequest(req))

	req.Account = "0x28C6c06298d514Db089934071355E5743bf21d60"
	req.GasPrice = big.NewInt(1_000_000_000)
	require.NoError(t, ValidateRequest(req))

	// slippage bounds are exclusive, their neighbors are fine
	req.SlippageBps = 1
	require.NoError(t, ValidateRequest(req))
	req.SlippageBps = 9999
	require.NoError(t, ValidateRequest(req))
}

func TestValidateRequestRejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*model.QuoteRequest)
		wantErr error
	}{
		{"empty token in", func(r *model.QuoteRequest) { r.TokenIn = "" }, model.ErrInvalidRequest},
		{"empty token out", func(r *model.QuoteRequest) { r.TokenOut = "" }, model.ErrInvalidRequest},
		{"short token address", func(r *model.QuoteRequest) { r.TokenIn = "0xabc" }, model.ErrInvalidRequest},
		{"non-hex token address", func(r *model.QuoteRequest) { r.TokenOut = "0xZZb86991c6218b36c1d19D4a2e9Eb0cE3606eB48" }, model.ErrInvalidRequest},
		{"bad account", func(r *model.QuoteRequest) { r.Account = "vitalik.eth" }, model.ErrInvalidRequest},
		{"nil amount", func(r *model.QuoteRequest) { r.AmountIn = nil }, model.ErrInvalidRequest},
		{"zero amount", func(r *model.QuoteRequest) { r.AmountIn = big.NewInt(0) }, model.ErrInvalidRequest},
		{"negative amount", func(r *model.QuoteRequest) { r.AmountIn = big.NewInt(-1) }, model.ErrInvalidRequest},
		{"zero gas override", func(r *model.QuoteRequest) { r.GasPrice = big.NewInt(0) }, model.ErrInvalidRequest},
		{"unknown chain", func(r *model.QuoteRequest) { r.ChainID = 123456 }, model.ErrUnsupportedChain},
		{"zero slippage", func(r *model.QuoteRequest) { r.SlippageBps = 0 }, model.ErrInvalidSlippage},
		{"full slippage", func(r *model.QuoteRequest) { r.SlippageBps = 10000 }, model.ErrInvalidSlippage},
		{"negative slippage", func(r *model.QuoteRequest) { r.SlippageBps = -1 }, model.ErrInvalidSlippage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			tt.mutate(&req)
			err := ValidateRequest(req)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidTokenAddress(t *testing.T) {
	assert.True(t, ValidTokenAddress(types.NativeTokenAddress))
	assert.True(t, ValidTokenAddress("0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"))
	assert.True(t, ValidTokenAddress("0xA0B86991C6218B36C1D19D4A2E9EB0CE3606EB48"))
	assert.False(t, ValidTokenAddress(""))
	assert.False(t, ValidTokenAddress("0x123"))
	assert.False(t, ValidTokenAddress("A0b86991c6218b36c1d19D4a2e9Eb0cE3606eB4"))
}
