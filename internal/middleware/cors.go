package middleware

import (
	"strings" // Origin scheme checks
	"time"    // Preflight cache age

	"github.com/gin-contrib/cors" // CORS handling
	"github.com/gin-gonic/gin"    // Gin web framework
	"github.com/sirupsen/logrus"  // Logging library
)

// CORS lets the configured frontend origins call routes under pathPrefix
// with credentials. Other paths are never touched. Origins without an
// http(s) scheme are dropped; with none left the middleware passes requests
// through untouched.
//
// Install it with Use on the engine rather than on a route group: group
// middleware does not run for preflights, which have no matching route.
func CORS(pathPrefix string, origins []string) gin.HandlerFunc {
	var allowed []string
	for _, o := range origins {
		// gin-contrib/cors panics on origins without a scheme
		if strings.HasPrefix(o, "http://") || strings.HasPrefix(o, "https://") {
			allowed = append(allowed, strings.TrimSuffix(o, "/"))
			continue
		}
		logrus.WithField("origin", o).Warn("Ignoring CORS origin without http(s) scheme")
	}
	if len(allowed) == 0 {
		return func(c *gin.Context) { c.Next() }
	}
	handle := cors.New(cors.Config{
		AllowOrigins:     allowed,                                                                        // Frontend origins
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},                            // API verbs
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader}, // Request headers
		ExposeHeaders:    []string{RequestIDHeader},                                                      // Readable by the browser
		AllowCredentials: true,                                                                           // Cookies and auth headers
		MaxAge:           time.Hour,                                                                      // Preflight cache
	})
	return func(c *gin.Context) {
		if !underPrefix(c.Request.URL.Path, pathPrefix) {
			c.Next()
			return
		}
		handle(c)
	}
}

// underPrefix matches /api and /api/..., not /apix
func underPrefix(path, prefix string) bool {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		return true
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
