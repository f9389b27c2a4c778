package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/xpres/xpres-server/pkg/metrics"
)

func TestRequestID_AssignsAndEchoes(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/id", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/id", nil))
	got := w.Header().Get(RequestIDHeader)
	require.Len(t, got, 36)
	require.Equal(t, got, w.Body.String())

	req := httptest.NewRequest("GET", "/id", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRequestLogger_CountsRoutes(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/counted", func(c *gin.Context) { c.Status(http.StatusAccepted) })

	matched := metrics.HTTPRequests.WithLabelValues("/counted", "GET", "202")
	unmatched := metrics.HTTPRequests.WithLabelValues("unmatched", "GET", "404")
	m0, u0 := testutil.ToFloat64(matched), testutil.ToFloat64(unmatched)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/counted", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/nope", nil))

	require.Equal(t, m0+1, testutil.ToFloat64(matched))
	require.Equal(t, u0+1, testutil.ToFloat64(unmatched))
}

func TestCORS_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.POST("/receive", func(c *gin.Context) { c.Status(http.StatusCreated) })
	r.NoRoute(func(c *gin.Context) { c.JSON(http.StatusNotFound, gin.H{"error": "route not found"}) })

	preflight := httptest.NewRequest(http.MethodOptions, "/receive", nil)
	preflight.Header.Set("Origin", "http://localhost:5173")
	preflight.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, preflight)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	// a bare OPTIONS is not a preflight and gets the normal not-found answer
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/nope", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
