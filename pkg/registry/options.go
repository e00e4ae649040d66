package registry

import (
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultGasLimit over-provisions every registry call instead of estimating.
	DefaultGasLimit       = 30_000_000
	defaultReceiptTimeout = 2 * time.Minute
	defaultPollInterval   = 2 * time.Second
)

// Option configures the registry contract client.
type Option func(*settings)

type settings struct {
	logger         *zap.Logger
	gasLimit       uint64
	receiptTimeout time.Duration
	pollInterval   time.Duration
}

// WithLogger sets a custom logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithGasLimit sets the fixed gas ceiling. Zero keeps the default.
func WithGasLimit(limit uint64) Option {
	return func(s *settings) {
		if limit > 0 {
			s.gasLimit = limit
		}
	}
}

// WithReceiptPolling sets how long and how often transaction receipts are polled.
func WithReceiptPolling(timeout, interval time.Duration) Option {
	return func(s *settings) {
		if timeout > 0 {
			s.receiptTimeout = timeout
		}
		if interval > 0 {
			s.pollInterval = interval
		}
	}
}

func applyOptions(opts []Option) settings {
	s := settings{
		logger:         zap.NewNop(),
		gasLimit:       DefaultGasLimit,
		receiptTimeout: defaultReceiptTimeout,
		pollInterval:   defaultPollInterval,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}
