package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

func newIdempServer(t *testing.T) (*echo.Echo, *miniredis.Miniredis, *atomic.Int64) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	var calls atomic.Int64
	e := echo.New()
	e.Use(Idempotency(rdb, 5*time.Minute))
	e.POST("/loans", func(c echo.Context) error {
		n := calls.Add(1)
		return c.JSON(http.StatusCreated, map[string]int64{"call": n})
	})
	e.GET("/loans", func(c echo.Context) error {
		calls.Add(1)
		return c.JSON(http.StatusOK, map[string]string{"ok": "yes"})
	})
	return e, mr, &calls
}

func doReq(e *echo.Echo, method, body, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/loans", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	e, _, calls := newIdempServer(t)
	key := strings.Repeat("a", 32)
	body := `{"loan_amount": "800"}`

	first := doReq(e, http.MethodPost, body, key)
	if first.Code != http.StatusCreated {
		t.Fatalf("first: %d", first.Code)
	}
	second := doReq(e, http.MethodPost, body, key)
	if second.Code != http.StatusCreated {
		t.Fatalf("replay: %d, body=%s", second.Code, second.Body.String())
	}
	if calls.Load() != 1 {
		t.Fatalf("handler ran %d times, want 1", calls.Load())
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("replayed body differs: %q vs %q", first.Body.String(), second.Body.String())
	}
}

func TestIdempotency_DifferentBodyConflicts(t *testing.T) {
	e, _, _ := newIdempServer(t)
	key := strings.Repeat("b", 32)

	if rec := doReq(e, http.MethodPost, `{"loan_amount": "800"}`, key); rec.Code != http.StatusCreated {
		t.Fatalf("first: %d", rec.Code)
	}
	rec := doReq(e, http.MethodPost, `{"loan_amount": "900"}`, key)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409; body=%s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !strings.Contains(resp["error"], "different body") {
		t.Fatalf("error = %q", resp["error"])
	}
}

func TestIdempotency_NoKeyPassesThrough(t *testing.T) {
	e, _, calls := newIdempServer(t)

	doReq(e, http.MethodPost, `{}`, "")
	doReq(e, http.MethodPost, `{}`, "")
	if calls.Load() != 2 {
		t.Fatalf("handler ran %d times, want 2", calls.Load())
	}
}

func TestIdempotency_GetSkipped(t *testing.T) {
	e, mr, calls := newIdempServer(t)
	key := strings.Repeat("c", 32)

	doReq(e, http.MethodGet, "", key)
	doReq(e, http.MethodGet, "", key)
	if calls.Load() != 2 {
		t.Fatalf("handler ran %d times, want 2", calls.Load())
	}
	if len(mr.Keys()) != 0 {
		t.Fatalf("GET should not touch the store, keys=%v", mr.Keys())
	}
}

func TestIdempotency_MalformedKeyRejected(t *testing.T) {
	e, _, calls := newIdempServer(t)

	rec := doReq(e, http.MethodPost, `{}`, "not-a-key")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if calls.Load() != 0 {
		t.Fatalf("handler ran %d times, want 0", calls.Load())
	}
}

func TestIdempotency_StoreDownFailsClosed(t *testing.T) {
	e, mr, _ := newIdempServer(t)
	mr.Close()

	rec := doReq(e, http.MethodPost, `{}`, strings.Repeat("d", 32))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503; body=%s", rec.Code, rec.Body.String())
	}
}
