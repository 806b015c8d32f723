// Package middleware provides HTTP middleware components for the cargo service.
package middleware

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// Compression returns a middleware that compresses HTTP responses using gzip.
// It compresses responses for clients that support gzip encoding. The
// Prometheus endpoint negotiates its own encoding and is left alone, as are
// spreadsheet downloads, which are already zip archives.
func Compression() gin.HandlerFunc {
	return gzip.Gzip(gzip.DefaultCompression,
		gzip.WithExcludedPaths([]string{"/metrics"}),
		gzip.WithExcludedExtensions([]string{".xlsx"}),
	)
}
