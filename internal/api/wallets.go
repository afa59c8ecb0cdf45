package api

import (
	"net/http" // HTTP status codes
	"strings"  // Status normalisation

	"digiwallet/internal/domain" // Domain models

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Fixed-point amounts
)

// CreateWalletRequest represents a wallet creation request
type CreateWalletRequest struct {
	UserID   uint            `json:"userId" binding:"required"` // Owner
	Balance  decimal.Decimal `json:"balance"`                   // Optional opening balance
	Currency string          `json:"currency"`                  // 3-letter code, USD by default
}

// StatusRequest carries a new status for a wallet or a card
type StatusRequest struct {
	Status string `json:"status" binding:"required"` // Target status
}

// CreateWalletHandler opens the wallet of a user (one wallet per user)
func CreateWalletHandler(wallets WalletService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateWalletRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		w, err := wallets.CreateWallet(c.Request.Context(), req.UserID, req.Balance, req.Currency)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, w) // Return created wallet
	}
}

// GetWalletHandler returns a wallet by id
func GetWalletHandler(wallets WalletService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		w, err := wallets.GetWallet(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, w)
	}
}

// GetUserWalletHandler returns the wallet owned by a user
func GetUserWalletHandler(wallets WalletService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := idParam(c, "userId")
		if !ok {
			return
		}
		w, err := wallets.GetWalletByUser(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, w)
	}
}

// ListWalletsHandler returns all wallets
func ListWalletsHandler(wallets WalletService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := wallets.ListWallets(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// UpdateWalletStatusHandler activates or deactivates a wallet
func UpdateWalletStatusHandler(wallets WalletService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		var req StatusRequest
		if !bindJSON(c, &req) {
			return
		}
		status := domain.WalletStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
		w, err := wallets.UpdateWalletStatus(c.Request.Context(), id, status)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, w)
	}
}
