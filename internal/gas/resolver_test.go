package gas

import (
	"context"
	"errors"
	"math/big"
	"testing"

	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/swap-quote-ea/internal/model"
)

// stubClient serves canned gas data and records which query was used.
type stubClient struct {
	gasPrice *big.Int
	tipCap   *big.Int
	baseFee  *big.Int

	gasPriceErr error
	tipCapErr   error
	headerErr   error

	legacyCalls int
	tipCalls    int
}

func (c *stubClient) SuggestGasPrice(_ context.Context) (*big.Int, error) {
	c.legacyCalls++
	return c.gasPrice, c.gasPriceErr
}

func (c *stubClient) SuggestGasTipCap(_ context.Context) (*big.Int, error) {
	c.tipCalls++
	return c.tipCap, c.tipCapErr
}

func (c *stubClient) HeaderByNumber(_ context.Context, _ *big.Int) (*ethtypes.Header, error) {
	if c.headerErr != nil {
		return nil, c.headerErr
	}
	return &ethtypes.Header{BaseFee: c.baseFee}, nil
}

func newStubResolver(client *stubClient) (*Resolver, *int) {
	dials := 0
	resolver := NewResolverWithDialer(func(_ context.Context, _ string) (Client, error) {
		dials++
		return client, nil
	})
	return resolver, &dials
}

func TestGasPriceOverrideWins(t *testing.T) {
	// the dialer must never run when an override is supplied
	resolver := NewResolverWithDialer(func(_ context.Context, _ string) (Client, error) {
		t.Fatal("dial must not happen for an override")
		return nil, nil
	})

	override := big.NewInt(42)
	price, err := resolver.GasPrice(context.Background(), 1, override)
	require.NoError(t, err)
	assert.Equal(t, override, price)
}

func TestGasPriceUnsupportedChain(t *testing.T) {
	resolver, _ := newStubResolver(&stubClient{})
	_, err := resolver.GasPrice(context.Background(), 999999, nil)
	require.ErrorIs(t, err, model.ErrUnsupportedChain)
}

func TestGasPriceLegacyChain(t *testing.T) {
	client := &stubClient{gasPrice: big.NewInt(3_000_000_000)}
	resolver, _ := newStubResolver(client)

	// chain 56 is flagged legacy: single network-wide gas price query
	price, err := resolver.GasPrice(context.Background(), 56, nil)
	require.NoError(t, err)
	assert.Equal(t, "3000000000", price.String())
	assert.Equal(t, 1, client.legacyCalls)
	assert.Zero(t, client.tipCalls)
}

func TestGasPriceEIP1559Chain(t *testing.T) {
	client := &stubClient{
		tipCap:  big.NewInt(1_000_000_000),  // 1 gwei tip
		baseFee: big.NewInt(10_000_000_000), // 10 gwei base
	}
	resolver, _ := newStubResolver(client)

	price, err := resolver.GasPrice(context.Background(), 1, nil)
	require.NoError(t, err)

	// maxFeePerGas = 2*baseFee + tip
	assert.Equal(t, "21000000000", price.String())
	assert.Zero(t, client.legacyCalls)
}

func TestGasPriceNoBaseFee(t *testing.T) {
	tests := []struct {
		name    string
		baseFee *big.Int
	}{
		{name: "nil base fee", baseFee: nil},
		{name: "zero base fee", baseFee: big.NewInt(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &stubClient{tipCap: big.NewInt(1), baseFee: tt.baseFee}
			resolver, _ := newStubResolver(client)

			_, err := resolver.GasPrice(context.Background(), 1, nil)
			require.ErrorIs(t, err, model.ErrGasUnavailable,
				"missing base fee must fail, never fall back to zero")
		})
	}
}

func TestGasPriceNetworkErrors(t *testing.T) {
	client := &stubClient{tipCapErr: errors.New("connection refused")}
	resolver, _ := newStubResolver(client)

	_, err := resolver.GasPrice(context.Background(), 1, nil)
	require.ErrorIs(t, err, model.ErrGasUnavailable)
}

func TestGasPriceDialFailure(t *testing.T) {
	resolver := NewResolverWithDialer(func(_ context.Context, _ string) (Client, error) {
		return nil, errors.New("no route to host")
	})

	_, err := resolver.GasPrice(context.Background(), 1, nil)
	require.ErrorIs(t, err, model.ErrGasUnavailable)
}

func TestClientCacheReuse(t *testing.T) {
	client := &stubClient{tipCap: big.NewInt(1), baseFee: big.NewInt(100)}
	resolver, dials := newStubResolver(client)

	for i := 0; i < 5; i++ {
		_, err := resolver.GasPrice(context.Background(), 1, nil)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, *dials, "client must be created once per chain")

	_, err := resolver.GasPrice(context.Background(), 137, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, *dials, "a second chain dials its own client")
}
