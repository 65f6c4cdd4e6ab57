// Package gas resolves current gas prices per chain, choosing between the
// legacy single gas-price scheme and EIP-1559 fee estimation.
package gas

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/sirupsen/logrus"

	"github.com/yourorg/swap-quote-ea/internal/config"
	"github.com/yourorg/swap-quote-ea/internal/model"
	"github.com/yourorg/swap-quote-ea/internal/types"
)

// Client is the read-only slice of the blockchain client the resolver needs.
// *ethclient.Client satisfies it; tests substitute a stub.
type Client interface {
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*ethtypes.Header, error)
}

// DialFunc creates a client bound to an RPC endpoint.
type DialFunc func(ctx context.Context, rawurl string) (Client, error)

// Resolver owns the per-chain client cache. Clients are created lazily on
// first use and live for the process lifetime; the cache is bounded by the
// static chain list so there is no eviction.
type Resolver struct {
	dial DialFunc

	mu      sync.RWMutex
	clients map[int64]Client
}

// NewResolver creates a resolver that dials real RPC endpoints.
func NewResolver() *Resolver {
	return NewResolverWithDialer(func(ctx context.Context, rawurl string) (Client, error) {
		return ethclient.DialContext(ctx, rawurl)
	})
}

// NewResolverWithDialer creates a resolver with an injected dialer, used by
// tests to avoid network access.
func NewResolverWithDialer(dial DialFunc) *Resolver {
	return &Resolver{
		dial:    dial,
		clients: make(map[int64]Client),
	}
}

// GasPrice returns the gas price to use for a chain in wei per gas unit.
// A non-nil override wins unconditionally: caller intent is never
// second-guessed. Legacy chains use the network-wide gas price; all others
// use an EIP-1559 estimate and take the max-fee-per-gas component.
func (r *Resolver) GasPrice(ctx context.Context, chainID int64, override *big.Int) (*big.Int, error) {
	if override != nil {
		return override, nil
	}

	chain, ok := types.ChainByID(chainID)
	if !ok {
		return nil, fmt.Errorf("%w: chain id %d", model.ErrUnsupportedChain, chainID)
	}

	client, err := r.clientFor(ctx, chain)
	if err != nil {
		return nil, fmt.Errorf("%w: dialing chain %d: %v", model.ErrGasUnavailable, chainID, err)
	}

	if chain.LegacyGas {
		price, err := client.SuggestGasPrice(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: chain %d: %v", model.ErrGasUnavailable, chainID, err)
		}
		logrus.Debugf("Legacy gas price for chain %d: %s wei", chainID, price)
		return price, nil
	}

	return r.eip1559MaxFee(ctx, client, chainID)
}

// eip1559MaxFee computes maxFeePerGas as 2*baseFee + tip from the latest
// header. A missing or zero base fee fails with GasUnavailable rather than
// falling back to zero, which would corrupt downstream cost estimates.
func (r *Resolver) eip1559MaxFee(ctx context.Context, client Client, chainID int64) (*big.Int, error) {
	tip, err := client.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: chain %d tip cap: %v", model.ErrGasUnavailable, chainID, err)
	}

	head, err := client.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: chain %d head: %v", model.ErrGasUnavailable, chainID, err)
	}

	if head.BaseFee == nil || head.BaseFee.Sign() <= 0 {
		return nil, fmt.Errorf("%w: chain %d reported no base fee", model.ErrGasUnavailable, chainID)
	}

	maxFee := new(big.Int).Mul(head.BaseFee, big.NewInt(2))
	maxFee.Add(maxFee, tip)
	logrus.Debugf("EIP-1559 max fee for chain %d: %s wei (base %s, tip %s)",
		chainID, maxFee, head.BaseFee, tip)
	return maxFee, nil
}

// clientFor returns the cached client for a chain, dialing on first use.
// Concurrent first uses may both dial; clients are stateless and
// functionally equivalent, so last-write-wins is fine.
func (r *Resolver) clientFor(ctx context.Context, chain types.Chain) (Client, error) {
	r.mu.RLock()
	client, ok := r.clients[chain.ID]
	r.mu.RUnlock()
	if ok {
		return client, nil
	}

	endpoint := config.RPCEndpoint(chain)
	client, err := r.dial(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.clients[chain.ID] = client
	r.mu.Unlock()

	logrus.Infof("Created RPC client for chain %d (%s)", chain.ID, chain.Slug)
	return client, nil
}
