package api

import (
	"net/http" // HTTP status codes
	"strings"  // Type normalisation

	"digiwallet/internal/domain"  // Domain models
	"digiwallet/internal/service" // Engine request

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Fixed-point amounts
)

// CreateTransactionRequest represents a credit or debit request.
// amount accepts a JSON number or a decimal string.
type CreateTransactionRequest struct {
	WalletID    uint            `json:"walletId" binding:"required"` // Target wallet
	Amount      decimal.Decimal `json:"amount"`                      // Positive amount
	Type        string          `json:"type" binding:"required"`     // CREDIT or DEBIT
	Category    string          `json:"category"`                    // Optional label
	ReferenceID string          `json:"referenceId"`                 // Optional, generated when empty
}

// CreateTransactionHandler runs a credit or debit through the balance engine
func CreateTransactionHandler(ledger LedgerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateTransactionRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		t, err := ledger.ApplyTransaction(c.Request.Context(), service.TransactionRequest{
			WalletID:    req.WalletID,                                                         // Wallet
			Type:        domain.TransactionType(strings.ToUpper(strings.TrimSpace(req.Type))), // Direction
			Amount:      req.Amount,                                                           // Amount
			Category:    req.Category,                                                         // Label
			ReferenceID: req.ReferenceID,                                                      // Reference
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, t) // Return the recorded transaction
	}
}

// GetTransactionHandler returns a transaction by id
func GetTransactionHandler(ledger LedgerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		t, err := ledger.GetTransaction(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, t)
	}
}

// ListWalletTransactionsHandler returns the history of a wallet, newest first
func ListWalletTransactionsHandler(ledger LedgerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		walletID, ok := idParam(c, "walletId")
		if !ok {
			return
		}
		list, err := ledger.ListWalletTransactions(c.Request.Context(), walletID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// ListTransactionsHandler returns every transaction, newest first
func ListTransactionsHandler(ledger LedgerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := ledger.ListTransactions(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}
