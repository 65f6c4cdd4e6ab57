// Package security provides optional cryptographic integrity for quote
// responses, so a UI can verify a quote was produced by this service and
// not altered in transit.
package security

import (
	"crypto/ecdsa"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/sirupsen/logrus"
)

// SignedResponse wraps a response payload with a Keccak256-ECDSA signature
// over its canonical JSON bytes.
type SignedResponse struct {
	Payload   json.RawMessage `json:"payload"`
	Signature string          `json:"signature"`
	Signer    string          `json:"signer"`
	SignedAt  string          `json:"signedAt"`
}

// ResponseSigner signs quote responses with a process-lifetime key pair.
type ResponseSigner struct {
	privateKey *ecdsa.PrivateKey
	signer     string
}

// NewResponseSigner generates a fresh secp256k1 key pair. The signer
// address is published so clients can verify signatures.
func NewResponseSigner() (*ResponseSigner, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate signing key: %w", err)
	}

	signer := crypto.PubkeyToAddress(privateKey.PublicKey).Hex()
	logrus.Infof("Response signer initialized with address %s", signer)
	return &ResponseSigner{privateKey: privateKey, signer: signer}, nil
}

// Signer returns the address whose key signs responses.
func (s *ResponseSigner) Signer() string {
	return s.signer
}

// Sign wraps a payload in a signed envelope. The signature covers the exact
// payload bytes embedded in the envelope.
func (s *ResponseSigner) Sign(payload interface{}) (*SignedResponse, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	digest := crypto.Keccak256(raw)
	signature, err := crypto.Sign(digest, s.privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign payload: %w", err)
	}

	return &SignedResponse{
		Payload:   raw,
		Signature: hex.EncodeToString(signature),
		Signer:    s.signer,
		SignedAt:  time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// Verify checks a signed envelope against its embedded signer address.
func Verify(resp *SignedResponse) (bool, error) {
	signature, err := hex.DecodeString(resp.Signature)
	if err != nil {
		return false, fmt.Errorf("malformed signature: %w", err)
	}

	digest := crypto.Keccak256(resp.Payload)
	pubKey, err := crypto.SigToPub(digest, signature)
	if err != nil {
		return false, fmt.Errorf("failed to recover public key: %w", err)
	}

	return crypto.PubkeyToAddress(*pubKey).Hex() == resp.Signer, nil
}
