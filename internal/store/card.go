package store

import (
	"context"

	"digiwallet/internal/domain"
)

// CreateCard inserts c and fills its id
func (s *Store) CreateCard(ctx context.Context, c *domain.Card) error {
	return s.create(ctx, "create card", c)
}

// FindCard loads a card by id
func (s *Store) FindCard(ctx context.Context, id uint) (*domain.Card, error) {
	return first[domain.Card](ctx, s, "find card", id)
}

// FindCardByNumber loads a card by its unique number
func (s *Store) FindCardByNumber(ctx context.Context, number string) (*domain.Card, error) {
	var c domain.Card
	if err := s.with(ctx).Where("card_number = ?", number).First(&c).Error; err != nil {
		return nil, translate("find card by number", err)
	}
	return &c, nil
}

// ListCardsByWallet returns the cards attached to a wallet
func (s *Store) ListCardsByWallet(ctx context.Context, walletID uint) ([]domain.Card, error) {
	var cards []domain.Card
	if err := s.with(ctx).Where("wallet_id = ?", walletID).Order("id").Find(&cards).Error; err != nil {
		return nil, translate("list cards", err)
	}
	return cards, nil
}

// UpdateCardStatus sets the status column
func (s *Store) UpdateCardStatus(ctx context.Context, id uint, status domain.CardStatus) error {
	return s.updateColumn(ctx, "update card status", &domain.Card{}, id, "status", status)
}
