package assethub

import (
	"context"

	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"
)

const defaultPallet = "Assets"

// DialFunc opens a JSON-RPC session to the ledger endpoint.
type DialFunc func(ctx context.Context, endpoint string) (*rpc.Client, error)

// Option configures the ledger client using the functional options pattern.
type Option func(*settings)

type settings struct {
	logger *zap.Logger
	pallet string
	dial   DialFunc
}

// WithLogger sets a custom logger for the ledger client.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithPallet overrides the assets pallet name (e.g. "PoolAssets").
func WithPallet(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.pallet = name
		}
	}
}

// WithDialFunc overrides how sessions are opened, primarily for tests.
func WithDialFunc(d DialFunc) Option {
	return func(s *settings) { s.dial = d }
}

func applyOptions(opts []Option) settings {
	s := settings{
		logger: zap.NewNop(),
		pallet: defaultPallet,
		dial:   rpc.DialContext,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}
