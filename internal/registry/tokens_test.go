package registry

import (
	"testing"

	"github.com/yourorg/swap-quote-ea/internal/types"
)

func TestFindToken(t *testing.T) {
	tests := []struct {
		name       string
		chainID    int64
		address    string
		wantSymbol string
		wantFound  bool
	}{
		{
			name:       "mainnet usdc",
			chainID:    1,
			address:    "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
			wantSymbol: "USDC",
			wantFound:  true,
		},
		{
			name:       "case insensitive lookup",
			chainID:    1,
			address:    "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48",
			wantSymbol: "USDC",
			wantFound:  true,
		},
		{
			name:       "native sentinel resolves to chain native asset",
			chainID:    43114,
			address:    types.NativeTokenAddress,
			wantSymbol: "AVAX",
			wantFound:  true,
		},
		{
			name:       "native sentinel lowercased",
			chainID:    1,
			address:    "0xeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee",
			wantSymbol: "ETH",
			wantFound:  true,
		},
		{
			name:      "unknown token",
			chainID:   1,
			address:   "0x9999999999999999999999999999999999999999",
			wantFound: false,
		},
		{
			name:      "unknown chain",
			chainID:   424242,
			address:   "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
			wantFound: false,
		},
		{
			name:      "native sentinel on unknown chain",
			chainID:   424242,
			address:   types.NativeTokenAddress,
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, found := FindToken(tt.chainID, tt.address)
			if found != tt.wantFound {
				t.Fatalf("FindToken() found = %v, want %v", found, tt.wantFound)
			}
			if found && token.Symbol != tt.wantSymbol {
				t.Errorf("FindToken() symbol = %v, want %v", token.Symbol, tt.wantSymbol)
			}
		})
	}
}

func TestNativeTokenAlwaysEighteenDecimals(t *testing.T) {
	for _, chain := range types.SupportedChains() {
		token, found := FindToken(chain.ID, types.NativeTokenAddress)
		if !found {
			t.Fatalf("native token missing for chain %d", chain.ID)
		}
		if token.Decimals != types.NativeDecimals {
			t.Errorf("chain %d native decimals = %d, want %d", chain.ID, token.Decimals, types.NativeDecimals)
		}
		if token.Symbol != chain.NativeSymbol {
			t.Errorf("chain %d native symbol = %s, want %s", chain.ID, token.Symbol, chain.NativeSymbol)
		}
	}
}

func TestTokensForChain(t *testing.T) {
	for _, chain := range types.SupportedChains() {
		tokens := TokensForChain(chain.ID)
		if len(tokens) == 0 {
			t.Errorf("chain %d has no curated tokens", chain.ID)
		}
	}

	if tokens := TokensForChain(424242); tokens != nil {
		t.Errorf("unknown chain should have no tokens, got %d", len(tokens))
	}
}
