package model

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid request", ErrInvalidRequest, http.StatusBadRequest},
		{"unsupported chain", ErrUnsupportedChain, http.StatusBadRequest},
		{"invalid slippage", ErrInvalidSlippage, http.StatusBadRequest},
		{"wrapped invalid slippage", fmt.Errorf("%w: slippageBps 0", ErrInvalidSlippage), http.StatusBadRequest},
		{"gas unavailable", ErrGasUnavailable, http.StatusServiceUnavailable},
		{"implausible rate", ErrImplausibleRate, http.StatusBadGateway},
		{"upstream transport", &TransportError{Status: 500, Body: "oops"}, http.StatusBadGateway},
		{"upstream rate limited", &TransportError{Status: 429, Body: "slow down"}, http.StatusServiceUnavailable},
		{"upstream logic", &LogicError{Code: 400, Message: "bad pair"}, http.StatusBadGateway},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTransportErrorMessage(t *testing.T) {
	err := &TransportError{Status: 503, Body: `{"error":"maintenance"}`}
	msg := err.Error()
	for _, want := range []string{"503", "maintenance"} {
		if !strings.Contains(msg, want) {
			t.Errorf("TransportError message %q missing %q", msg, want)
		}
	}
}

func TestLogicErrorMessage(t *testing.T) {
	withMessage := &LogicError{Code: 400, Message: "amount too small"}
	if !strings.Contains(withMessage.Error(), "amount too small") {
		t.Errorf("LogicError message %q missing upstream text", withMessage.Error())
	}

	withoutMessage := &LogicError{Code: 500}
	if !strings.Contains(withoutMessage.Error(), "500") {
		t.Errorf("LogicError message %q missing code", withoutMessage.Error())
	}
}
