package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// SPA serves built frontend assets from dir. Paths that are not files fall
// back to index.html so client-side routes load; unknown /api paths get a
// JSON 404 instead.
func SPA(dir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqPath := c.Request.URL.Path
		if reqPath == "/api" || strings.HasPrefix(reqPath, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
			return
		}

		// Clean against "/" so the result cannot escape dir.
		clean := path.Clean("/" + reqPath)
		if clean != "/" {
			file := filepath.Join(dir, filepath.FromSlash(clean))
			if info, err := os.Stat(file); err == nil && info.Mode().IsRegular() {
				c.File(file)
				return
			}
		}

		index := filepath.Join(dir, "index.html")
		if _, err := os.Stat(index); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "frontend not built"})
			return
		}
		c.File(index)
	}
}
