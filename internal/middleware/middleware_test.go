package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-seatmap/internal/config"
	"github.com/iliyamo/venue-seatmap/internal/utils"
)

func newRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func serve(e *echo.Echo, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func bearer(t *testing.T, secret, user, role string, ttl time.Duration) http.Header {
	t.Helper()
	at, err := utils.NewAccessToken(secret, user, role, ttl)
	require.NoError(t, err)
	return http.Header{"Authorization": {"Bearer " + at.Token}}
}

func TestJWTAuthAndRoles(t *testing.T) {
	const secret = "test-secret"
	e := echo.New()
	g := e.Group("/owner", JWTAuth(secret), RequireRole(RoleOwner))
	g.GET("/me", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"user": UserID(c), "role": Role(c)})
	})

	t.Run("Should accept a valid owner token", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/owner/me", bearer(t, secret, "u-1", RoleOwner, time.Minute))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"user":"u-1","role":"OWNER"}`, rec.Body.String())
	})

	t.Run("Should reject a missing token", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/owner/me", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "missing bearer token")
	})

	t.Run("Should reject a token signed with another secret", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/owner/me", bearer(t, "other", "u-1", RoleOwner, time.Minute))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Should reject an expired token", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/owner/me", bearer(t, secret, "u-1", RoleOwner, -time.Minute))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Should forbid other roles", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/owner/me", bearer(t, secret, "u-1", RoleCustomer, time.Minute))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "abc", subject("abc"))
	assert.Equal(t, "42", subject(float64(42)))
	assert.Equal(t, "", subject(nil))
}

func cacheConfig() config.CacheConfig {
	return config.CacheConfig{
		Enabled:     true,
		Methods:     map[string]bool{http.MethodGet: true},
		TTL:         time.Minute,
		KeyStrategy: "route_query",
		Prefix:      "test:cache",
	}
}

func TestRedisCache(t *testing.T) {
	rdb := newRedis(t)
	cfg := cacheConfig()
	calls := 0

	e := echo.New()
	cache := NewRedisCache(cfg, rdb)
	e.GET("/v1/venues/:id", func(c echo.Context) error {
		calls++
		c.Response().Header().Set("X-Venue", c.Param("id"))
		return c.JSON(http.StatusOK, echo.Map{"id": c.Param("id"), "calls": calls})
	}, cache)
	e.GET("/v1/venues", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"items": []string{"arena", "bowl"}})
	}, cache)
	e.GET("/v1/missing/:id", func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
	}, cache)

	first := serve(e, http.MethodGet, "/v1/venues/arena", nil)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	second := serve(e, http.MethodGet, "/v1/venues/arena", nil)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, "arena", second.Header().Get("X-Venue"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, calls)

	t.Run("Should key by path parameter", func(t *testing.T) {
		other := serve(e, http.MethodGet, "/v1/venues/bowl", nil)
		assert.Equal(t, "MISS", other.Header().Get("X-Cache"))
		assert.Equal(t, 2, calls)
	})

	t.Run("Should not cache errors", func(t *testing.T) {
		serve(e, http.MethodGet, "/v1/missing/x", nil)
		rec := serve(e, http.MethodGet, "/v1/missing/x", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
		assert.Equal(t, 4, calls)
	})

	t.Run("Should purge the named venue and the listings", func(t *testing.T) {
		serve(e, http.MethodGet, "/v1/venues", nil)
		rec := serve(e, http.MethodGet, "/v1/venues", nil)
		require.Equal(t, "HIT", rec.Header().Get("X-Cache"))

		n, err := PurgeVenue(context.Background(), rdb, cfg, "arena")
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		rec = serve(e, http.MethodGet, "/v1/venues", nil)
		assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))

		rec = serve(e, http.MethodGet, "/v1/venues/arena", nil)
		assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
		rec = serve(e, http.MethodGet, "/v1/venues/bowl", nil)
		assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	})
}

func TestPurgeVenue_GlobCharacters(t *testing.T) {
	ctx := context.Background()
	rdb := newRedis(t)
	cfg := cacheConfig()

	t.Run("Should escape glob metacharacters in the venue id", func(t *testing.T) {
		assert.Equal(t, `test:cache:venue:a\*\?\[x\]\\:`, globEscape(VenueKeyPrefix(cfg, `a*?[x]\`)))
		assert.Equal(t, "test:cache:venue:plain:", globEscape(VenueKeyPrefix(cfg, "plain")))
	})

	t.Run("Should leave venues whose id merely matches the pattern", func(t *testing.T) {
		require.NoError(t, rdb.Set(ctx, VenueKeyPrefix(cfg, "a*")+"k1", "x", 0).Err())
		require.NoError(t, rdb.Set(ctx, VenueKeyPrefix(cfg, "ab")+"k2", "x", 0).Err())
		require.NoError(t, rdb.Set(ctx, VenueKeyPrefix(cfg, "a?")+"k3", "x", 0).Err())

		n, err := PurgeVenue(ctx, rdb, cfg, "a*")
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		left, err := rdb.Keys(ctx, "test:cache:*").Result()
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{VenueKeyPrefix(cfg, "ab") + "k2", VenueKeyPrefix(cfg, "a?") + "k3"}, left)
	})
}

func TestRedisCache_Disabled(t *testing.T) {
	cfg := cacheConfig()
	cfg.Enabled = false
	e := echo.New()
	e.GET("/x", func(c echo.Context) error { return c.String(http.StatusOK, "ok") }, NewRedisCache(cfg, newRedis(t)))

	rec := serve(e, http.MethodGet, "/x", nil)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Empty(t, rec.Header().Get("X-Cache"))

	n, err := PurgeVenue(context.Background(), nil, cfg, "arena")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPayloadCodec(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"a":1}`))
	require.NoError(t, err)

	status, got, body, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, hdr, got)
	assert.Equal(t, `{"a":1}`, string(body))

	_, _, _, ok = decodePayload([]byte{0, 0})
	assert.False(t, ok)
	_, _, _, ok = decodePayload([]byte{0, 0, 0, 200, 0, 0, 1, 0})
	assert.False(t, ok)
}

func TestTokenBucket(t *testing.T) {
	rdb := newRedis(t)
	cfg := config.RateLimitConfig{
		Enabled:        true,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Hour,
		TTL:            time.Hour,
		KeyStrategy:    "ip",
		Prefix:         "test:rl",
	}
	e := echo.New()
	e.GET("/v1/venues", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, NewTokenBucket(cfg, rdb))

	codes := make([]int, 0, 3)
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = serve(e, http.MethodGet, "/v1/venues", nil)
		codes = append(codes, last.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, "0", last.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "2", last.Header().Get("X-RateLimit-Limit"))
	assert.NotEmpty(t, last.Header().Get("Retry-After"))
	assert.Contains(t, last.Body.String(), "rate limit exceeded")

	t.Run("Should refill after the interval", func(t *testing.T) {
		b := tokenBucket{cfg: cfg, rdb: rdb, now: func() time.Time { return time.Now().Add(2 * time.Hour) }}
		res, err := b.take(context.Background(), "test:rl:ip:192.0.2.1")
		require.NoError(t, err)
		assert.True(t, res.allowed)
	})
}

func TestRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/venues", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/venues")
	c.Set(ctxUserID, "u-9")

	cfg := config.RateLimitConfig{Prefix: "rl"}
	assert.Equal(t, "rl:ip:192.0.2.1:user:u-9:route:GET /v1/venues", rateKey(cfg, c))
	cfg.KeyStrategy = "user"
	assert.Equal(t, "rl:user:u-9", rateKey(cfg, c))
}
