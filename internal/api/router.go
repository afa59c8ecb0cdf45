package api

import (
	"context"  // Health probe context
	"net/http" // HTTP status codes
	"time"     // Health probe timeout

	"digiwallet/internal/middleware" // Request id, access log, CORS

	"github.com/gin-gonic/gin"                                // Gin web framework
	"github.com/prometheus/client_golang/prometheus"          // Metrics registry
	"github.com/prometheus/client_golang/prometheus/promhttp" // Metrics endpoint
	"github.com/sirupsen/logrus"                              // Logging library
)

// Services groups the handler dependencies
type Services struct {
	Users      UserService
	Wallets    WalletService
	Cards      CardService
	Categories CategoryService
	Ledger     LedgerService
}

// RouterConfig carries the non-service router settings
type RouterConfig struct {
	CORSOrigins    []string                        // Allowed frontend origins
	TrustedProxies []string                        // Proxies trusted for client IPs
	Gatherer       prometheus.Gatherer             // Source for /metrics, none when nil
	HealthCheck    func(ctx context.Context) error // Backing store probe, optional
}

// NewRouter wires middleware and every API route
func NewRouter(svc Services, cfg RouterConfig) (*gin.Engine, error) {
	r := gin.New() // Gin router instance
	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}
	r.Use(
		gin.Recovery(),                           // Turn panics into 500s
		middleware.RequestID(),                   // Correlation id
		middleware.AccessLog(),                   // Structured access log
		middleware.CORS("/api", cfg.CORSOrigins), // Decoupled frontend, API routes only
	)

	r.GET("/health", HealthHandler(cfg.HealthCheck)) // Liveness and DB probe
	// Expose metrics when a registry is wired
	if cfg.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	apiGroup := r.Group("/api")

	users := apiGroup.Group("/users")
	users.POST("", SignupHandler(svc.Users))                              // Signup
	users.GET("", ListUsersHandler(svc.Users))                            // List users
	users.GET("/:id", GetUserHandler(svc.Users))                          // Get user
	users.GET("/username/:username", GetUserByUsernameHandler(svc.Users)) // Get user by username
	users.PUT("/:id/toggle-status", ToggleUserStatusHandler(svc.Users))   // Flip status

	wallets := apiGroup.Group("/wallets")
	wallets.POST("", CreateWalletHandler(svc.Wallets))              // Create wallet
	wallets.GET("", ListWalletsHandler(svc.Wallets))                // List wallets
	wallets.GET("/:id", GetWalletHandler(svc.Wallets))              // Get wallet
	wallets.GET("/user/:userId", GetUserWalletHandler(svc.Wallets)) // Get wallet by owner
	wallets.PUT("/:id/status", UpdateWalletStatusHandler(svc.Wallets))

	cards := apiGroup.Group("/cards")
	cards.POST("", CreateCardHandler(svc.Cards))                      // Create card
	cards.GET("/:id", GetCardHandler(svc.Cards))                      // Get card
	cards.GET("/wallet/:walletId", ListWalletCardsHandler(svc.Cards)) // Cards of a wallet
	cards.PUT("/:id/status", UpdateCardStatusHandler(svc.Cards))      // Set card status

	categories := apiGroup.Group("/categories")
	categories.POST("", CreateCategoryHandler(svc.Categories))
	categories.GET("", ListCategoriesHandler(svc.Categories))
	categories.GET("/:id", GetCategoryHandler(svc.Categories))

	transactions := apiGroup.Group("/transactions")
	transactions.POST("", CreateTransactionHandler(svc.Ledger))                      // Credit or debit
	transactions.GET("", ListTransactionsHandler(svc.Ledger))                        // All transactions
	transactions.GET("/:id", GetTransactionHandler(svc.Ledger))                      // One transaction
	transactions.GET("/wallet/:walletId", ListWalletTransactionsHandler(svc.Ledger)) // Wallet history

	return r, nil
}

// HealthHandler reports UP, or DOWN with 503 when check fails
func HealthHandler(check func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				logrus.WithField("error", err.Error()).Warn("Health check failed")
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "DOWN"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	}
}
