// Package wallet provides the signing identities used by the governor: a remote
// signing service for ledger extrinsics and a keyed transactor for the contract chain.
package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/impactchain/npo-governance/pkg/assethub"
)

const signPath = "/sign"

// ErrSignerRejected is returned when the signing service refuses a request.
var ErrSignerRejected = errors.New("signing request rejected")

type signRequest struct {
	Address string         `json:"address"`
	Call    *assethub.Call `json:"call"`
}

type signResponse struct {
	Extrinsic string `json:"extrinsic"`
	Error     string `json:"error,omitempty"`
}

// RemoteSigner signs ledger extrinsics through an HTTP signing service.
// The service holds the keys; the governor only forwards calls.
type RemoteSigner struct {
	endpoint string
	token    string
	client   *http.Client
	logger   *zap.Logger
}

// NewRemoteSigner creates a signer for the service at baseURL. token is sent as
// a bearer token when non-empty.
func NewRemoteSigner(baseURL, token string, timeout time.Duration, logger *zap.Logger) *RemoteSigner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RemoteSigner{
		endpoint: strings.TrimRight(baseURL, "/") + signPath,
		token:    token,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// SignExtrinsic implements assethub.Signer.
func (s *RemoteSigner) SignExtrinsic(ctx context.Context, address string, call *assethub.Call) (string, error) {
	body, err := json.Marshal(signRequest{Address: address, Call: call})
	if err != nil {
		return "", fmt.Errorf("failed to encode sign request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build sign request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("signing service unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read sign response: %w", err)
	}

	var out signResponse
	if err := json.Unmarshal(raw, &out); err != nil && resp.StatusCode == http.StatusOK {
		return "", fmt.Errorf("failed to decode sign response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := out.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", fmt.Errorf("%w: %d %s", ErrSignerRejected, resp.StatusCode, msg)
	}
	if out.Extrinsic == "" {
		return "", fmt.Errorf("%w: empty extrinsic", ErrSignerRejected)
	}

	s.logger.Debug("Extrinsic signed",
		zap.String("address", address),
		zap.String("pallet", call.Pallet),
		zap.String("method", call.Method))
	return out.Extrinsic, nil
}
