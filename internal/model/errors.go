package model

import (
	"errors"
	"fmt"
	"net/http"
)

// Typed failures for the quote pipeline. Validation and upstream errors
// abort the request; formatting and cost-display failures never surface
// here, they degrade in place.
var (
	// ErrInvalidRequest marks missing or malformed request parameters.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrUnsupportedChain marks a chain id with no upstream mapping.
	ErrUnsupportedChain = errors.New("unsupported chain")

	// ErrInvalidSlippage marks a slippage tolerance outside (0, 10000) bps.
	ErrInvalidSlippage = errors.New("invalid slippage")

	// ErrGasUnavailable marks a gas price lookup that produced no usable
	// fee. A zero gas price would corrupt downstream cost estimates, so
	// this is never silently defaulted.
	ErrGasUnavailable = errors.New("gas price unavailable")

	// ErrImplausibleRate marks a quote whose normalized output exceeds the
	// input by more than the plausibility threshold. It exists to catch
	// gross upstream malformation, not to price the trade.
	ErrImplausibleRate = errors.New("implausible exchange rate")
)

// TransportError is a non-success HTTP status from the upstream aggregator,
// carrying the status code and raw body for diagnostics.
type TransportError struct {
	Status int
	Body   string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("upstream transport error: status %d, body: %s", e.Status, e.Body)
}

// LogicError is a successful transport exchange whose payload status code
// was not the upstream's "ok" sentinel.
type LogicError struct {
	Code    int
	Message string
}

func (e *LogicError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream error: code %d", e.Code)
	}
	return fmt.Sprintf("upstream error: %s (code %d)", e.Message, e.Code)
}

// HTTPStatus maps a pipeline error to the response status class:
// 400 for definitive bad input, 502 for upstream failures and implausible
// rates, 503 for congestion/rate limiting the caller may retry, 500 otherwise.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, ErrUnsupportedChain),
		errors.Is(err, ErrInvalidSlippage):
		return http.StatusBadRequest
	case errors.Is(err, ErrGasUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrImplausibleRate):
		return http.StatusBadGateway
	}

	var te *TransportError
	if errors.As(err, &te) {
		if te.Status == http.StatusTooManyRequests {
			return http.StatusServiceUnavailable
		}
		return http.StatusBadGateway
	}

	var le *LogicError
	if errors.As(err, &le) {
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}
