package api

import (
	"net/http" // HTTP status codes

	"digiwallet/internal/domain"  // Domain models
	"digiwallet/internal/service" // Service inputs

	"github.com/gin-gonic/gin" // Gin web framework
)

// CreateCardRequest represents a card creation request
type CreateCardRequest struct {
	WalletID   uint   `json:"walletId" binding:"required"`   // Wallet the card draws on
	CardNumber string `json:"cardNumber" binding:"required"` // 16 digits
	CardType   string `json:"cardType" binding:"required"`   // DEBIT, CREDIT, PREPAID, VIRTUAL
	ExpiryDate string `json:"expiryDate" binding:"required"` // YYYY-MM-DD
}

// CardResponse renders a card with a date-only expiry
type CardResponse struct {
	ID         uint              `json:"id"`
	WalletID   uint              `json:"walletId"`
	CardNumber string            `json:"cardNumber"`
	CardType   domain.CardType   `json:"cardType"`
	ExpiryDate string            `json:"expiryDate"`
	Status     domain.CardStatus `json:"status"`
}

func cardResponse(card *domain.Card) CardResponse {
	return CardResponse{
		ID:         card.ID,
		WalletID:   card.WalletID,
		CardNumber: card.CardNumber,
		CardType:   card.CardType,
		ExpiryDate: card.ExpiryDate.Format(service.ExpiryLayout),
		Status:     card.Status,
	}
}

// CreateCardHandler attaches a card to a wallet
func CreateCardHandler(cards CardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCardRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		card, err := cards.CreateCard(c.Request.Context(), service.NewCardInput{
			WalletID:   req.WalletID,                  // Wallet
			CardNumber: req.CardNumber,                // Number
			CardType:   domain.CardType(req.CardType), // Type, normalised by the service
			ExpiryDate: req.ExpiryDate,                // Expiry
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, cardResponse(card))
	}
}

// GetCardHandler returns a card by id
func GetCardHandler(cards CardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		card, err := cards.GetCard(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cardResponse(card))
	}
}

// ListWalletCardsHandler returns the cards of a wallet
func ListWalletCardsHandler(cards CardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		walletID, ok := idParam(c, "walletId")
		if !ok {
			return
		}
		list, err := cards.ListCardsByWallet(c.Request.Context(), walletID)
		if err != nil {
			respondError(c, err)
			return
		}
		out := make([]CardResponse, 0, len(list))
		for i := range list {
			out = append(out, cardResponse(&list[i]))
		}
		c.JSON(http.StatusOK, out)
	}
}

// UpdateCardStatusHandler sets the status of a card
func UpdateCardStatusHandler(cards CardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		var req StatusRequest
		if !bindJSON(c, &req) {
			return
		}
		card, err := cards.UpdateCardStatus(c.Request.Context(), id, domain.CardStatus(req.Status))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cardResponse(card))
	}
}
