// Package governor implements app.Runner for the NPO governance API process.
package governor

import (
	"context"
	"fmt"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apphttp "github.com/impactchain/npo-governance/pkg/app/http"
	"github.com/impactchain/npo-governance/pkg/assethub"
	"github.com/impactchain/npo-governance/pkg/auth"
	"github.com/impactchain/npo-governance/pkg/config"
	"github.com/impactchain/npo-governance/pkg/governance"
	"github.com/impactchain/npo-governance/pkg/journal"
	npo "github.com/impactchain/npo-governance/pkg/npo/service"
	"github.com/impactchain/npo-governance/pkg/pgutil"
	"github.com/impactchain/npo-governance/pkg/registry"
	"github.com/impactchain/npo-governance/pkg/token"
	"github.com/impactchain/npo-governance/pkg/wallet"
)

const startupTimeout = time.Minute

// Server holds cfg to init the governor.
type Server struct {
	cfg *config.Config
}

// NewServer initializes a new governor server.
func NewServer(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

func (s *Server) Run() error {
	if s.cfg == nil {
		return fmt.Errorf("governor config is nil")
	}
	cfg := s.cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting NPO governor",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
	)

	store, closeStore, err := s.openJournal(ctx, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	coordinator, err := s.newCoordinator(store, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := coordinator.Close(); err != nil {
			logger.Warn("Coordinator not closed cleanly", zap.Error(err))
		}
	}()

	if err := s.initialize(ctx, coordinator, logger); err != nil {
		return err
	}

	router, stopLimiter, err := s.setupRouter(coordinator, logger)
	if err != nil {
		return err
	}
	defer stopLimiter()

	return apphttp.ServeAndWait(ctx, router, logger, &cfg.Server)
}

func (s *Server) openJournal(ctx context.Context, logger *zap.Logger) (journal.Store, func(), error) {
	if !s.cfg.Database.Enabled {
		logger.Info("Journal database disabled, workflows kept in memory")
		return journal.NewMemoryStore(), func() {}, nil
	}

	db, err := pgutil.ConnectDB(ctx, &s.cfg.Database, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("connect journal db: %w", err)
	}
	return journal.NewStore(db), func() { _ = db.Close() }, nil
}

func (s *Server) tokenomics() (governance.Tokenomics, error) {
	g := s.cfg.Governance
	supply, err := token.ToBaseUnits(g.TotalSupply, g.TokenDecimals)
	if err != nil {
		return governance.Tokenomics{}, fmt.Errorf("invalid total supply: %w", err)
	}
	minBalance, ok := new(big.Int).SetString(g.MinBalance, 10)
	if !ok {
		return governance.Tokenomics{}, fmt.Errorf("invalid min balance %q", g.MinBalance)
	}
	return governance.Tokenomics{
		TotalSupply:         supply,
		OrganizationPercent: g.OrganizationPercent,
		Decimals:            g.TokenDecimals,
		MinBalance:          minBalance,
	}, nil
}

func (s *Server) newCoordinator(store journal.Store, logger *zap.Logger) (*governance.Coordinator, error) {
	cfg := s.cfg

	tk, err := s.tokenomics()
	if err != nil {
		return nil, err
	}

	verifiers := governance.FixedVerifiers(governance.StaticVerifiers(cfg.Governance.Verifiers.Addresses))
	if cfg.Governance.Verifiers.Source == "registry" {
		verifiers = governance.AuditorVerifiers(cfg.Governance.AuditorRegistryMethod, cfg.AssetHub.SS58Prefix, logger)
	}

	ledger := assethub.New(
		assethub.WithLogger(logger),
		assethub.WithPallet(cfg.AssetHub.Pallet),
	)

	c, err := governance.New(
		governance.WithLogger(logger),
		governance.WithLedger(ledger),
		governance.WithJournal(store),
		governance.WithTokenomics(tk),
		governance.WithVerifiers(verifiers),
		governance.WithRegistryDialer(governance.DialRegistry(
			registry.WithLogger(logger),
			registry.WithGasLimit(cfg.Contracts.GasLimit),
			registry.WithReceiptPolling(cfg.Contracts.ReceiptTimeout, cfg.Contracts.ReceiptPollInterval),
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("create coordinator: %w", err)
	}
	return c, nil
}

func (s *Server) initialize(ctx context.Context, c *governance.Coordinator, logger *zap.Logger) error {
	cfg := s.cfg

	var contractABI string
	if cfg.Contracts.ABIFile != "" {
		raw, err := os.ReadFile(cfg.Contracts.ABIFile)
		if err != nil {
			return fmt.Errorf("read registry abi: %w", err)
		}
		contractABI = string(raw)
	}

	initCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	if err := c.Initialize(initCtx, governance.InitParams{
		ContractEndpoint: cfg.Contracts.RPCURL,
		AssetEndpoint:    cfg.AssetHub.RPCURL,
		ContractAddress:  cfg.Contracts.RegistryAddress,
		ContractABI:      contractABI,
	}); err != nil {
		return fmt.Errorf("initialize coordinator: %w", err)
	}

	account, err := wallet.LoadAccount(&cfg.Wallet, cfg.Contracts.ChainID, logger)
	if err != nil {
		return fmt.Errorf("load wallet: %w", err)
	}
	if err := c.SetAccount(account); err != nil {
		return fmt.Errorf("set account: %w", err)
	}
	return nil
}

func (s *Server) setupRouter(c *governance.Coordinator, logger *zap.Logger) (chi.Router, func(), error) {
	cfg := s.cfg
	svc := npo.NewLog(npo.NewService(c, logger), logger)

	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Get("/ready", func(w http.ResponseWriter, _ *http.Request) {
		if !c.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("NOT_READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	})

	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler())
		logger.Info("Metrics enabled", zap.String("path", cfg.Metrics.Path))
	}

	var writeMiddleware []func(http.Handler) http.Handler
	if cfg.Auth.Enabled {
		validator, err := auth.NewJWTValidator([]byte(os.Getenv(cfg.Auth.JWTSecretEnv)), cfg.Auth.Issuer)
		if err != nil {
			return nil, nil, fmt.Errorf("api auth (env %s): %w", cfg.Auth.JWTSecretEnv, err)
		}
		writeMiddleware = append(writeMiddleware, validator.Middleware(logger))
	} else {
		logger.Warn("API authentication disabled")
	}

	stopLimiter := func() {}
	if cfg.RateLimit.Enabled {
		limiter := apphttp.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.IdleTTL, logger)
		writeMiddleware = append(writeMiddleware, limiter.Handler)
		stopLimiter = startCleanup(limiter, cfg.RateLimit.IdleTTL)
	}

	r.Route("/v1", func(r chi.Router) {
		npo.RegisterRoutes(r, svc, logger)
		r.Group(func(r chi.Router) {
			r.Use(writeMiddleware...)
			npo.RegisterWriteRoutes(r, svc, logger)
		})
	})

	return r, stopLimiter, nil
}

func startCleanup(limiter *apphttp.RateLimiter, interval time.Duration) func() {
	if interval <= 0 {
		return func() {}
	}
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				limiter.Cleanup()
			case <-done:
				return
			}
		}
	}()
	return func() {
		ticker.Stop()
		close(done)
	}
}
