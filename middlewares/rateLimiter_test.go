package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestMemoryLimiterBlocksOverLimit(t *testing.T) {
	l := NewMemoryLimiter(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, _, err := l.Allow(ctx, "k")
		if err != nil || !allowed {
			t.Fatalf("request %d: allowed=%v err=%v", i, allowed, err)
		}
	}

	allowed, retryAfter, _ := l.Allow(ctx, "k")
	if allowed {
		t.Fatal("4th request should be blocked")
	}
	if retryAfter <= 0 || retryAfter > time.Minute {
		t.Errorf("retryAfter = %v", retryAfter)
	}
}

func TestMemoryLimiterKeysIndependent(t *testing.T) {
	l := NewMemoryLimiter(1, time.Minute)
	ctx := context.Background()

	if ok, _, _ := l.Allow(ctx, "a"); !ok {
		t.Fatal("first a blocked")
	}
	if ok, _, _ := l.Allow(ctx, "b"); !ok {
		t.Fatal("first b blocked")
	}
	if ok, _, _ := l.Allow(ctx, "a"); ok {
		t.Fatal("second a should be blocked")
	}
}

func TestMemoryLimiterWindowExpires(t *testing.T) {
	l := NewMemoryLimiter(1, 10*time.Millisecond)
	ctx := context.Background()

	l.Allow(ctx, "k")
	if ok, _, _ := l.Allow(ctx, "k"); ok {
		t.Fatal("should be blocked inside the window")
	}

	time.Sleep(20 * time.Millisecond)
	if ok, _, _ := l.Allow(ctx, "k"); !ok {
		t.Fatal("should be allowed after the window")
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimiter(NewMemoryLimiter(1, time.Minute)))
	r.GET("/api/test", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func(path string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := do("/api/test"); code != http.StatusOK {
		t.Fatalf("first request: %d", code)
	}
	if code := do("/api/test"); code != http.StatusTooManyRequests {
		t.Fatalf("second request: %d, want 429", code)
	}

	// health stays exempt even when the key is exhausted
	if code := do("/health"); code != http.StatusOK {
		t.Fatalf("health: %d", code)
	}
}

func TestRateLimiterSetsRetryAfter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimiter(NewMemoryLimiter(1, time.Minute)))
	r.GET("/api/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
	r.ServeHTTP(w, req)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("code = %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After header")
	}
}
