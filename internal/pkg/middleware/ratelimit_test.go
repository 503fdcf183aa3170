package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"godonaciones/internal/pkg/cache"
	"godonaciones/internal/pkg/middleware"
)

// fakeCache é um cache em memória com a mesma semântica de contador do Redis.
type fakeCache struct {
	data map[string]int
	fail bool // simula o cache indisponível
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]int)}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	n, err := f.GetInt(ctx, key)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(n), nil
}

func (f *fakeCache) GetInt(ctx context.Context, key string) (int, error) {
	if f.fail {
		return 0, errors.New("connection refused")
	}
	n, ok := f.data[key]
	if !ok {
		return 0, cache.ErrCacheMiss
	}
	return n, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if f.fail {
		return errors.New("connection refused")
	}
	f.data[key] = value.(int)
	return nil
}

func (f *fakeCache) Incr(ctx context.Context, key string) error {
	if f.fail {
		return errors.New("connection refused")
	}
	f.data[key]++
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func newLimitedHandler(client cache.Client, limit int) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return middleware.RateLimiter(client, limit, time.Minute)(next)
}

func doRequest(handler http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// TestRateLimiter_AllowsUnderLimit garante que requisições dentro do limite passam.
func TestRateLimiter_AllowsUnderLimit(t *testing.T) {
	handler := newLimitedHandler(newFakeCache(), 3)

	for i := 0; i < 3; i++ {
		rec := doRequest(handler, "10.0.0.1:5000")
		assert.Equal(t, http.StatusOK, rec.Code, "requisição %d deveria passar", i+1)
	}
}

// TestRateLimiter_Blocks429OverLimit garante o 429 após estourar o limite.
func TestRateLimiter_Blocks429OverLimit(t *testing.T) {
	handler := newLimitedHandler(newFakeCache(), 3)

	for i := 0; i < 3; i++ {
		doRequest(handler, "10.0.0.1:5000")
	}

	rec := doRequest(handler, "10.0.0.1:5000")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

// TestRateLimiter_PerIP garante que o contador é por IP de origem.
func TestRateLimiter_PerIP(t *testing.T) {
	handler := newLimitedHandler(newFakeCache(), 1)

	assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.1:5000").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, "10.0.0.1:5000").Code)

	// Outro IP não é afetado pelo contador do primeiro.
	assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.2:5000").Code)
}

// TestRateLimiter_CacheDown garante que a API segue funcionando sem o cache.
func TestRateLimiter_CacheDown(t *testing.T) {
	client := newFakeCache()
	client.fail = true
	handler := newLimitedHandler(client, 1)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.1:5000").Code)
	}
}
