package assets

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// Serve returns a handler for use in front of the not-found handler: GET and
// HEAD requests naming a regular file under root are answered with that file,
// everything else falls through to the next handler. Directories are never
// listed, a trailing slash never names a file, and paths are cleaned before
// joining so they cannot leave root.
func Serve(root string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Next()
			return
		}
		if strings.HasSuffix(c.Request.URL.Path, "/") {
			c.Next()
			return
		}
		rel := path.Clean("/" + c.Request.URL.Path)
		if strings.Contains(rel, "\x00") || rel == "/" {
			c.Next()
			return
		}
		f, err := os.Open(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			c.Next()
			return
		}
		defer f.Close()
		info, err := f.Stat()
		if err != nil || !info.Mode().IsRegular() {
			c.Next()
			return
		}
		// ServeContent rather than ServeFile: the latter redirects /index.html to /
		http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
		c.Abort()
	}
}
