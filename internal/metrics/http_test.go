package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMetricsRouter(t *testing.T) (*gin.Engine, *Provider) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	provider, err := NewProvider("test_app")
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	})

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "test_app"))
	return router, provider
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	t.Run("Success_CountsByStatus", func(t *testing.T) {
		router, provider := newMetricsRouter(t)
		router.POST("/v1/anonymize", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"records": []string{}})
		})
		router.GET("/error", func(c *gin.Context) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error"})
		})

		for i := 0; i < 3; i++ {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/anonymize", strings.NewReader(`{"columns":["Owner"]}`)))
			assert.Equal(t, http.StatusOK, w.Code)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/error", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)

		body := scrape(t, provider)
		assert.Regexp(t, `test_app_http_requests_total\{[^}]*path="/v1/anonymize"[^}]*status_code="200"[^}]*\} 3`, body)
		assert.Regexp(t, `test_app_http_requests_total\{[^}]*path="/error"[^}]*status_code="500"[^}]*\} 1`, body)
		assert.Contains(t, body, "test_app_http_request_duration_seconds_bucket")
		assert.Contains(t, body, "test_app_http_requests_in_flight")
	})

	t.Run("Success_RecordsBodySize", func(t *testing.T) {
		router, provider := newMetricsRouter(t)
		router.POST("/v1/anonymize", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/anonymize", strings.NewReader(`{"records":[]}`)))
		require.Equal(t, http.StatusOK, w.Code)

		assert.Regexp(t, `test_app_http_request_size_bytes_count\{[^}]*\} 1`, scrape(t, provider))
	})

	t.Run("Success_UnknownRoute", func(t *testing.T) {
		router, provider := newMetricsRouter(t)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope/42", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)

		body := scrape(t, provider)
		assert.Contains(t, body, `path="unknown"`)
		assert.NotContains(t, body, "/nope/42")
	})

	t.Run("Success_RecordWithPathParams", func(t *testing.T) {
		router, provider := newMetricsRouter(t)
		router.GET("/v1/runs/:id", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
		})

		for _, id := range []string{"0190a5b2-0000-7000-8000-000000000001", "0190a5b2-0000-7000-8000-000000000002"} {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/runs/"+id, nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}

		body := scrape(t, provider)
		assert.Regexp(t, `test_app_http_requests_total\{[^}]*path="/v1/runs/:id"[^}]*\} 2`, body)
		assert.NotContains(t, body, "0190a5b2-0000-7000-8000-000000000001")
	})
}

func TestRoutePattern(t *testing.T) {
	assert.Equal(t, "/v1/runs/:id", routePattern("/v1/runs/:id"))
	assert.Equal(t, "unknown", routePattern(""))
}
