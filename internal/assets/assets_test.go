package assets

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) *gin.Engine {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte("<h1>ui</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "app.js"), []byte("console.log(1)"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "css"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "css", "styles.css"), []byte("body{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(root), "secret.txt"), []byte("s"), 0o644))

	g := gin.New()
	g.NoRoute(Serve(root), func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	return g
}

func do(g *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestServeFiles(t *testing.T) {
	g := newEngine(t)

	w := do(g, http.MethodGet, "/index.html")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "<h1>ui</h1>", w.Body.String())
	require.Contains(t, w.Header().Get("Content-Type"), "text/html")

	w = do(g, http.MethodGet, "/app.js")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "javascript")

	w = do(g, http.MethodGet, "/css/styles.css")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "text/css")

	w = do(g, http.MethodHead, "/app.js")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestServeFallsThrough(t *testing.T) {
	g := newEngine(t)

	for _, target := range []string{"/missing.js", "/css", "/css/", "/app.js/", "/index.html/", "/../secret.txt"} {
		w := do(g, http.MethodGet, target)
		require.Equal(t, http.StatusNotFound, w.Code, target)
		require.JSONEq(t, `{"error":"route not found"}`, w.Body.String())
	}

	w := do(g, http.MethodPost, "/app.js")
	require.Equal(t, http.StatusNotFound, w.Code)
}
