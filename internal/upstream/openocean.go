package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"

	"github.com/yourorg/swap-quote-ea/internal/config"
	"github.com/yourorg/swap-quote-ea/internal/model"
	"github.com/yourorg/swap-quote-ea/internal/types"
)

// okCode is the payload status the OpenOcean API returns on success.
const okCode = 200

// OpenOceanClient implements Provider against the OpenOcean v4 API.
type OpenOceanClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewOpenOceanClient creates a client from configuration.
func NewOpenOceanClient(cfg config.Config) *OpenOceanClient {
	return &OpenOceanClient{
		baseURL:    cfg.UpstreamURL,
		apiKey:     cfg.UpstreamAPIKey,
		httpClient: StandardClient(newRetryClient()),
	}
}

// GetQuote calls the swap endpoint for the chain and maps the response
// envelope into the internal quote result. Execution fields pass through
// verbatim; no transformation happens at this layer.
func (c *OpenOceanClient) GetQuote(ctx context.Context, params Params) (*model.SwapQuote, error) {
	slug := types.SlugForChain(params.ChainID)
	if slug == "" {
		return nil, fmt.Errorf("%w: chain id %d", model.ErrUnsupportedChain, params.ChainID)
	}

	// url.Values sets each parameter exactly once, so a rebuilt or retried
	// request can never carry duplicates.
	query := url.Values{}
	query.Set("inTokenAddress", params.TokenIn)
	query.Set("outTokenAddress", params.TokenOut)
	query.Set("amount", params.AmountIn.String())
	query.Set("slippage", params.Slippage)
	if params.GasPrice != nil {
		query.Set("gasPrice", params.GasPrice.String())
	}
	if params.Account != "" {
		query.Set("account", params.Account)
	}

	endpoint := fmt.Sprintf("%s/%s/swap?%s", c.baseURL, slug, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	logrus.Debugf("Fetching swap quote from upstream: chain=%s amount=%s", slug, params.AmountIn)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching quote: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &model.TransportError{Status: resp.StatusCode, Body: string(body)}
	}

	var envelope struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Data    struct {
			InAmount     string `json:"inAmount"`
			OutAmount    string `json:"outAmount"`
			EstimatedGas string `json:"estimatedGas"`
			Data         string `json:"data"`
			To           string `json:"to"`
			Value        string `json:"value"`
		} `json:"data"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}

	if envelope.Code != okCode {
		return nil, &model.LogicError{Code: envelope.Code, Message: envelope.Message}
	}

	quote := &model.SwapQuote{
		InAmount:     envelope.Data.InAmount,
		OutAmount:    envelope.Data.OutAmount,
		EstimatedGas: envelope.Data.EstimatedGas,
		Data:         envelope.Data.Data,
		To:           envelope.Data.To,
		Value:        envelope.Data.Value,
	}
	if quote.Value == "" {
		quote.Value = "0"
	}

	logrus.Debugf("Upstream quote: in=%s out=%s gas=%s", quote.InAmount, quote.OutAmount, quote.EstimatedGas)
	return quote, nil
}

// newRetryClient creates a new HTTP client with retry capabilities
func newRetryClient() *retryablehttp.Client {
	c := retryablehttp.NewClient()
	c.RetryMax = 3
	c.RetryWaitMin = 500 * time.Millisecond
	c.RetryWaitMax = 3 * time.Second
	c.Logger = nil
	return c
}

// StandardClient converts a retryablehttp.Client to a standard http.Client
func StandardClient(retryClient *retryablehttp.Client) *http.Client {
	return retryClient.StandardClient()
}
