package app

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-contests/internal/config"
	"github.com/riskibarqy/fantasy-contests/internal/platform/logging"
)

func TestNewHTTPServer_MemoryWiring(t *testing.T) {
	cfg := config.Config{
		AppEnv:        config.EnvDev,
		ServiceName:   "fantasy-contests-api",
		HTTPAddr:      ":8080",
		AnubisBaseURL: "http://localhost:8081",
		AnubisTimeout: time.Second,
		ReadTimeout:   time.Second,
		WriteTimeout:  time.Second,
		CacheEnabled:  true,
		CacheTTL:      time.Minute,
	}

	srv, err := NewHTTPServer(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("build http server: %v", err)
	}

	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	if rec.Code != 200 {
		t.Fatalf("healthz status: got %d", rec.Code)
	}
}

func TestNewHTTPServer_RequiresAddr(t *testing.T) {
	cfg := config.Config{
		AnubisBaseURL: "http://localhost:8081",
		AnubisTimeout: time.Second,
	}

	if _, err := NewHTTPServer(cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty http addr")
	}
}

func TestBuildJobPublisher_DisabledReturnsNil(t *testing.T) {
	if p := buildJobPublisher(config.Config{}, logging.NewNop()); p != nil {
		t.Fatalf("expected nil publisher when qstash is disabled")
	}
}
