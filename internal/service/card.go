package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"digiwallet/internal/apperror"
	"digiwallet/internal/domain"
	"digiwallet/internal/store"

	"github.com/sirupsen/logrus"
)

var cardNumberPattern = regexp.MustCompile(`^[0-9]{16}$`)

// ExpiryLayout is the wire format of Card.ExpiryDate
const ExpiryLayout = "2006-01-02"

// NewCardInput carries the fields of a new card
type NewCardInput struct {
	WalletID   uint
	CardNumber string
	CardType   domain.CardType
	ExpiryDate string
}

// CardService manages cards attached to wallets
type CardService struct {
	store store.Gateway
}

// NewCardService builds the service
func NewCardService(gw store.Gateway) *CardService {
	return &CardService{store: gw}
}

// CreateCard attaches a new card to an existing wallet
func (s *CardService) CreateCard(ctx context.Context, in NewCardInput) (*domain.Card, error) {
	const op = "card.CreateCard"

	number := strings.TrimSpace(in.CardNumber)
	if !cardNumberPattern.MatchString(number) {
		return nil, apperror.NewInvalidArgument(op, "card number must be exactly 16 digits")
	}
	cardType := domain.CardType(strings.ToUpper(string(in.CardType)))
	if !cardType.Valid() {
		return nil, apperror.NewInvalidArgument(op, "card type must be DEBIT, CREDIT, PREPAID or VIRTUAL, got %q", in.CardType)
	}
	expiry, err := time.Parse(ExpiryLayout, strings.TrimSpace(in.ExpiryDate))
	if err != nil {
		return nil, apperror.NewInvalidArgument(op, "expiry date must be YYYY-MM-DD, got %q", in.ExpiryDate)
	}

	if _, err := s.store.FindWallet(ctx, in.WalletID); err != nil {
		return nil, notFoundOr(op, "wallet", in.WalletID, err)
	}
	if _, err := s.store.FindCardByNumber(ctx, number); err == nil {
		return nil, apperror.NewAlreadyExists(op, "card number ending %s is already registered", number[12:])
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, apperror.Wrap(op, err)
	}

	c := &domain.Card{
		WalletID:   in.WalletID,
		CardNumber: number,
		CardType:   cardType,
		ExpiryDate: expiry,
		Status:     domain.CardActive,
	}
	if err := s.store.CreateCard(ctx, c); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperror.NewAlreadyExists(op, "card number ending %s is already registered", number[12:])
		}
		return nil, apperror.Wrap(op, err)
	}
	logrus.WithFields(logrus.Fields{"card_id": c.ID, "wallet_id": c.WalletID, "card_type": c.CardType}).Info("Card created")
	return c, nil
}

// GetCard returns a card by id
func (s *CardService) GetCard(ctx context.Context, id uint) (*domain.Card, error) {
	c, err := s.store.FindCard(ctx, id)
	if err != nil {
		return nil, notFoundOr("card.GetCard", "card", id, err)
	}
	return c, nil
}

// ListCardsByWallet returns the cards of an existing wallet
func (s *CardService) ListCardsByWallet(ctx context.Context, walletID uint) ([]domain.Card, error) {
	const op = "card.ListCardsByWallet"
	if _, err := s.store.FindWallet(ctx, walletID); err != nil {
		return nil, notFoundOr(op, "wallet", walletID, err)
	}
	cards, err := s.store.ListCardsByWallet(ctx, walletID)
	if err != nil {
		return nil, apperror.Wrap(op, err)
	}
	return cards, nil
}

// UpdateCardStatus sets the card status. Setting the current status is a no-op.
func (s *CardService) UpdateCardStatus(ctx context.Context, id uint, status domain.CardStatus) (*domain.Card, error) {
	const op = "card.UpdateCardStatus"
	status = domain.CardStatus(strings.ToUpper(string(status)))
	if !status.Valid() {
		return nil, apperror.NewInvalidArgument(op, "card status must be ACTIVE, INACTIVE or BLOCKED, got %q", status)
	}
	if err := s.store.UpdateCardStatus(ctx, id, status); err != nil {
		return nil, notFoundOr(op, "card", id, err)
	}
	return s.GetCard(ctx, id)
}
