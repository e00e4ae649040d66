package governor

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/impactchain/npo-governance/pkg/config"
	"github.com/impactchain/npo-governance/pkg/governance"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{RequestTimeout: 5 * time.Second},
		Metrics: config.MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Governance: config.GovernanceConfig{
			TotalSupply:         "1000000",
			OrganizationPercent: 75,
			TokenDecimals:       18,
			MinBalance:          "1000000",
		},
		Auth: config.AuthConfig{
			Enabled:      true,
			JWTSecretEnv: "GOVERNOR_TEST_JWT_SECRET",
		},
		RateLimit: config.RateLimitConfig{
			Enabled: true,
			RPS:     1,
			Burst:   1,
			IdleTTL: time.Minute,
		},
	}
}

func TestTokenomics(t *testing.T) {
	tk, err := NewServer(testConfig()).tokenomics()
	if err != nil {
		t.Fatalf("tokenomics failed: %v", err)
	}
	if tk.TotalSupply.Cmp(governance.DefaultTokenomics().TotalSupply) != 0 {
		t.Fatalf("total supply = %s, want default", tk.TotalSupply)
	}
	if tk.MinBalance.String() != "1000000" {
		t.Fatalf("min balance = %s, want 1000000", tk.MinBalance)
	}

	cfg := testConfig()
	cfg.Governance.MinBalance = "1e6"
	if _, err := NewServer(cfg).tokenomics(); err == nil {
		t.Fatal("expected error for non-integer min balance")
	}

	cfg = testConfig()
	cfg.Governance.TotalSupply = "lots"
	if _, err := NewServer(cfg).tokenomics(); err == nil {
		t.Fatal("expected error for non-numeric total supply")
	}
}

func TestSetupRouter(t *testing.T) {
	t.Setenv("GOVERNOR_TEST_JWT_SECRET", "0123456789abcdef0123456789abcdef")

	c, err := governance.New()
	if err != nil {
		t.Fatalf("governance.New failed: %v", err)
	}

	router, stop, err := NewServer(testConfig()).setupRouter(c, zap.NewNop())
	if err != nil {
		t.Fatalf("setupRouter failed: %v", err)
	}
	defer stop()

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"health", http.MethodGet, "/health", http.StatusOK},
		{"not ready", http.MethodGet, "/ready", http.StatusServiceUnavailable},
		{"metrics", http.MethodGet, "/metrics", http.StatusOK},
		{"read before init", http.MethodGet, "/v1/npos/count", http.StatusServiceUnavailable},
		{"write without token", http.MethodPost, "/v1/npos", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader("{}"))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("%s %s = %d, want %d", tt.method, tt.path, rec.Code, tt.want)
			}
		})
	}
}

func TestSetupRouter_MissingSecret(t *testing.T) {
	t.Setenv("GOVERNOR_TEST_JWT_SECRET", "")

	c, err := governance.New()
	if err != nil {
		t.Fatalf("governance.New failed: %v", err)
	}

	if _, _, err := NewServer(testConfig()).setupRouter(c, zap.NewNop()); err == nil {
		t.Fatal("expected error without JWT secret")
	}
}
