// Package main is the entry point for the Swap Quote External Adapter, a
// service that fetches cross-chain swap quotes from an upstream DEX
// aggregator and enriches them with slippage-adjusted minimums and gas
// cost estimates before a user submits an on-chain transaction.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/yourorg/swap-quote-ea/internal/circuitbreaker"
	"github.com/yourorg/swap-quote-ea/internal/config"
	"github.com/yourorg/swap-quote-ea/internal/gas"
	"github.com/yourorg/swap-quote-ea/internal/model"
	"github.com/yourorg/swap-quote-ea/internal/otel"
	"github.com/yourorg/swap-quote-ea/internal/quote"
	"github.com/yourorg/swap-quote-ea/internal/registry"
	"github.com/yourorg/swap-quote-ea/internal/security"
	"github.com/yourorg/swap-quote-ea/internal/types"
	"github.com/yourorg/swap-quote-ea/internal/upstream"
)

// startTime records when the service was initialized for uptime reporting
var startTime = time.Now()

// ServerConfig holds the configuration for the quote server
type ServerConfig struct {
	// HTTP port to listen on
	Port string

	// Request timeout for one quote
	Timeout time.Duration

	// Whether to enable the circuit breaker for upstream protection
	EnableCircuitBreaker bool

	// Whether to enable Prometheus metrics
	EnableMetrics bool

	// Whether to sign quote responses
	EnableSigning bool
}

// Server represents the quote server instance
type Server struct {
	config ServerConfig

	// Quote enrichment engine
	engine *quote.Engine

	// HTTP server instance
	server *http.Server

	// Circuit breaker for upstream fault detection
	breaker *circuitbreaker.CircuitBreaker

	// Metrics registry
	metrics *serverMetrics

	// Optional response signer
	signer *security.ResponseSigner

	// Rate limiter for the quote endpoint
	rateLimit *rate.Limiter

	// Default slippage applied when the caller supplies none
	defaultSlippageBps int64
}

// serverMetrics holds Prometheus metrics for the server
type serverMetrics struct {
	quoteCounter   *prometheus.CounterVec
	quoteDuration  *prometheus.HistogramVec
	upstreamErrors *prometheus.CounterVec
	breakerState   prometheus.Gauge
}

// registerMetrics sets up Prometheus metrics collection
func registerMetrics() *serverMetrics {
	m := &serverMetrics{
		quoteCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "swapquote_requests_total",
				Help: "Total number of quote requests processed",
			},
			[]string{"status"},
		),
		quoteDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "swapquote_request_duration_seconds",
				Help:    "Quote request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"status"},
		),
		upstreamErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "swapquote_upstream_errors_total",
				Help: "Total number of upstream and gas resolution errors",
			},
			[]string{"kind"},
		),
		breakerState: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "swapquote_circuit_breaker_state",
				Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
			},
		),
	}

	prometheus.MustRegister(
		m.quoteCounter,
		m.quoteDuration,
		m.upstreamErrors,
		m.breakerState,
	)

	return m
}

// main is the entry point for the application
func main() {
	setupLogging()

	cfg := config.Load()
	shutdownTracer := otel.InitTracer(cfg.OtelEndpoint)
	defer shutdownTracer()

	provider := upstream.NewOpenOceanClient(cfg)
	resolver := gas.NewResolver()
	engine := quote.NewEngine(cfg, provider, resolver)

	server := NewServer(cfg, engine)
	server.Start()
}

// setupLogging configures the logging for the application
func setupLogging() {
	logFormat := strings.ToLower(os.Getenv("LOG_FORMAT"))
	logLevel := strings.ToLower(os.Getenv("LOG_LEVEL"))

	switch logFormat {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	switch logLevel {
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "info":
		logrus.SetLevel(logrus.InfoLevel)
	case "warn", "warning":
		logrus.SetLevel(logrus.WarnLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	default:
		logrus.SetLevel(logrus.InfoLevel)
	}

	logrus.Info("Logging configured")
}

// NewServer creates a new server instance wired to the enrichment engine
func NewServer(cfg config.Config, engine *quote.Engine) *Server {
	serverConfig := ServerConfig{
		Port:                 cfg.Port,
		Timeout:              cfg.RequestTimeout,
		EnableCircuitBreaker: getEnvBool("ENABLE_CIRCUIT_BREAKER", true),
		EnableMetrics:        getEnvBool("ENABLE_METRICS", true),
		EnableSigning:        getEnvBool("ENABLE_RESPONSE_SIGNING", false),
	}

	server := &Server{
		config:             serverConfig,
		engine:             engine,
		rateLimit:          rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
		defaultSlippageBps: cfg.DefaultSlippageBps,
	}

	if serverConfig.EnableMetrics {
		server.metrics = registerMetrics()
	}

	if serverConfig.EnableCircuitBreaker {
		server.breaker = circuitbreaker.New(cfg.BreakerFailureThreshold, cfg.BreakerCooldown).
			WithTripCallback(func(reason string) {
				logrus.Warnf("Upstream circuit tripped: %s", reason)
			})
	}

	if serverConfig.EnableSigning {
		signer, err := security.NewResponseSigner()
		if err != nil {
			logrus.Warnf("Failed to initialize response signer: %v", err)
		} else {
			server.signer = signer
		}
	}

	logrus.WithFields(logrus.Fields{
		"port":            serverConfig.Port,
		"timeout":         serverConfig.Timeout,
		"circuit_breaker": serverConfig.EnableCircuitBreaker,
		"metrics":         serverConfig.EnableMetrics,
		"signing":         serverConfig.EnableSigning,
		"chains":          len(types.SupportedChains()),
	}).Info("Server initialized")

	return server
}

// Start begins the HTTP server and sets up graceful shutdown
func (s *Server) Start() {
	mux := http.NewServeMux()

	mux.HandleFunc("/quote", s.handleQuote)           // Quote enrichment endpoint
	mux.HandleFunc("/tokens", s.handleTokens)         // Token registry listing
	mux.HandleFunc("/chains", s.handleChains)         // Supported chain table
	mux.HandleFunc("/health", s.handleHealth)         // Health check endpoint
	mux.HandleFunc("/metrics", s.handleMetrics)       // Prometheus metrics endpoint
	mux.HandleFunc("/status", s.handleStatus)         // Service status endpoint
	mux.HandleFunc("/circuit", s.handleCircuitStatus) // Circuit breaker status/control

	s.server = &http.Server{
		Addr:         ":" + s.config.Port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.Infof("Server starting on port %s", s.config.Port)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Error starting server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		logrus.Fatalf("Server shutdown failed: %v", err)
	}

	logrus.Info("Server stopped")
}

// errorBody is the error response format: a message, optional detail and a
// timestamp so callers can correlate failures with their own logs.
type errorBody struct {
	Error     string `json:"error"`
	Details   string `json:"details,omitempty"`
	Timestamp string `json:"timestamp"`
}

// handleQuote processes one quote request end to end
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !s.rateLimit.Allow() {
		s.errorResponse(w, http.StatusTooManyRequests, "Rate limit exceeded", "")
		return
	}

	if s.breaker != nil {
		if err := s.breaker.Allow(); err != nil {
			s.observe(http.StatusServiceUnavailable, start)
			s.errorResponse(w, http.StatusServiceUnavailable, "Upstream temporarily unavailable", err.Error())
			return
		}
	}

	req, err := parseQuoteRequest(r, s.defaultSlippageBps)
	if err != nil {
		s.observe(http.StatusBadRequest, start)
		s.errorResponse(w, http.StatusBadRequest, "Invalid request parameters", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.config.Timeout)
	defer cancel()

	enriched, err := s.engine.GetQuote(ctx, req)
	if err != nil {
		status := model.HTTPStatus(err)
		s.recordOutcome(err)
		s.observe(status, start)
		otel.RecordError(ctx, err)
		logrus.WithFields(logrus.Fields{
			"chain_id": req.ChainID,
			"status":   status,
		}).Warnf("Quote failed: %v", err)
		s.errorResponse(w, status, errorLabel(err), err.Error())
		return
	}

	s.recordOutcome(nil)
	s.observe(http.StatusOK, start)
	logrus.WithFields(logrus.Fields{
		"chain_id":   req.ChainID,
		"out_amount": enriched.OutAmountRaw,
		"latency_ms": time.Since(start).Milliseconds(),
	}).Info("Quote served")

	var payload interface{} = enriched
	if s.signer != nil {
		signed, err := s.signer.Sign(enriched)
		if err != nil {
			logrus.Warnf("Failed to sign response: %v", err)
		} else {
			payload = signed
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

// parseQuoteRequest builds a QuoteRequest from query parameters. Absent
// slippage gets the configured default; explicit zero stays zero and is
// rejected downstream.
func parseQuoteRequest(r *http.Request, defaultSlippageBps int64) (model.QuoteRequest, error) {
	query := r.URL.Query()

	req := model.QuoteRequest{
		TokenIn:  query.Get("inTokenAddress"),
		TokenOut: query.Get("outTokenAddress"),
		Account:  query.Get("account"),
	}

	chainID, err := strconv.ParseInt(query.Get("chainId"), 10, 64)
	if err != nil {
		return req, errors.New("chainId must be an integer")
	}
	req.ChainID = chainID

	rawAmount := query.Get("amount")
	if rawAmount == "" {
		return req, errors.New("amount is required")
	}
	amount, ok := new(big.Int).SetString(rawAmount, 10)
	if !ok {
		return req, errors.New("amount must be a base-unit integer string")
	}
	req.AmountIn = amount

	req.SlippageBps = defaultSlippageBps
	if raw := query.Get("slippageBps"); raw != "" {
		bps, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return req, errors.New("slippageBps must be an integer")
		}
		req.SlippageBps = bps
	}

	if raw := query.Get("gasPrice"); raw != "" {
		gasPrice, ok := new(big.Int).SetString(raw, 10)
		if !ok {
			return req, errors.New("gasPrice must be a base-unit integer string")
		}
		req.GasPrice = gasPrice
	}

	return req, nil
}

// errorLabel gives the short, stable error name for the response body,
// keeping detail in the details field.
func errorLabel(err error) string {
	switch {
	case errors.Is(err, model.ErrInvalidRequest):
		return "Invalid request"
	case errors.Is(err, model.ErrUnsupportedChain):
		return "Unsupported chain"
	case errors.Is(err, model.ErrInvalidSlippage):
		return "Invalid slippage"
	case errors.Is(err, model.ErrGasUnavailable):
		return "Gas price unavailable"
	case errors.Is(err, model.ErrImplausibleRate):
		return "Implausible exchange rate"
	}

	var te *model.TransportError
	if errors.As(err, &te) {
		return "Upstream transport error"
	}
	var le *model.LogicError
	if errors.As(err, &le) {
		return "Upstream rejected quote"
	}
	return "Failed to fetch quote"
}

// recordOutcome feeds the circuit breaker and upstream error metrics.
// Only upstream-class failures count toward tripping the breaker; bad
// caller input says nothing about upstream health.
func (s *Server) recordOutcome(err error) {
	if err == nil {
		if s.breaker != nil {
			s.breaker.RecordSuccess()
		}
		return
	}

	var kind string
	var te *model.TransportError
	var le *model.LogicError
	switch {
	case errors.As(err, &te):
		kind = "transport"
	case errors.As(err, &le):
		kind = "logic"
	case errors.Is(err, model.ErrImplausibleRate):
		kind = "implausible_rate"
	case errors.Is(err, model.ErrGasUnavailable):
		kind = "gas"
	default:
		return
	}

	if s.metrics != nil {
		s.metrics.upstreamErrors.WithLabelValues(kind).Inc()
	}
	if s.breaker != nil && kind != "gas" {
		s.breaker.RecordFailure(err)
	}
}

// observe records request count and duration metrics and the breaker gauge
func (s *Server) observe(status int, start time.Time) {
	if s.metrics == nil {
		return
	}
	label := strconv.Itoa(status)
	s.metrics.quoteCounter.WithLabelValues(label).Inc()
	s.metrics.quoteDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
	if s.breaker != nil {
		s.metrics.breakerState.Set(float64(s.breaker.GetState()))
	}
}

// errorResponse returns a formatted error response
func (s *Server) errorResponse(w http.ResponseWriter, statusCode int, errorMsg, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(errorBody{
		Error:     errorMsg,
		Details:   details,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// handleTokens lists the curated token registry for a chain
func (s *Server) handleTokens(w http.ResponseWriter, r *http.Request) {
	chainID, err := strconv.ParseInt(r.URL.Query().Get("chainId"), 10, 64)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request parameters", "chainId must be an integer")
		return
	}

	if _, ok := types.ChainByID(chainID); !ok {
		s.errorResponse(w, http.StatusBadRequest, "Unsupported chain", "chain id "+strconv.FormatInt(chainID, 10))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"chainId": chainID,
		"tokens":  registry.TokensForChain(chainID),
	})
}

// handleChains lists the supported chain table
func (s *Server) handleChains(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"chains": types.SupportedChains(),
	})
}

// handleHealth is a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "OK",
		"version":   "1.0.0",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleMetrics exposes Prometheus metrics
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if !s.config.EnableMetrics {
		http.Error(w, "Metrics disabled", http.StatusServiceUnavailable)
		return
	}

	promhttp.Handler().ServeHTTP(w, r)
}

// handleStatus provides detailed service status information
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "operational",
		"uptime":  time.Since(startTime).String(),
		"version": "1.0.0",
		"chains":  len(types.SupportedChains()),
		"configuration": map[string]interface{}{
			"circuit_breaker": s.config.EnableCircuitBreaker,
			"metrics":         s.config.EnableMetrics,
			"signing":         s.config.EnableSigning,
		},
	}

	if s.breaker != nil {
		status["circuit_state"] = s.breaker.GetState()
	}
	if s.signer != nil {
		status["signer"] = s.signer.Signer()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}

// handleCircuitStatus allows viewing and controlling the circuit breaker
func (s *Server) handleCircuitStatus(w http.ResponseWriter, r *http.Request) {
	if s.breaker == nil {
		http.Error(w, "Circuit breaker not enabled", http.StatusServiceUnavailable)
		return
	}

	response := map[string]interface{}{
		"state": s.breaker.GetState(),
	}

	if r.Method == http.MethodPost {
		if r.URL.Query().Get("action") == "reset" {
			s.breaker.Reset()
			response["state"] = s.breaker.GetState()
			response["message"] = "Circuit breaker reset"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
