package board

import (
	"context"
	"errors"
	"fmt"

	"github.com/chxlky/trello-clone-api/internal/models"
	"gorm.io/gorm"
)

// CardStore manages cards. Column ownership and card ownership are checked
// separately: a card's owner is fixed at creation and never derived from its
// column.
type CardStore struct {
	db *gorm.DB
}

func NewCardStore(db *gorm.DB) *CardStore {
	return &CardStore{db: db}
}

// CardPatch holds the optional fields of a card update. A nil field is left
// untouched.
type CardPatch struct {
	Title       *string
	Description *string
	ColumnID    *int64
}

func validateCardText(title, description string) error {
	if title == "" {
		return ErrCardTitleRequired
	}
	if tooLong(title, models.MaxCardTitleLength) {
		return ErrCardTitleTooLong
	}
	if tooLong(description, models.MaxCardDescriptionLength) {
		return ErrCardDescriptionTooLong
	}
	return nil
}

func (s *CardStore) Create(ctx context.Context, actor, columnID int64, title, description string) (*models.Card, error) {
	var card models.Card
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned, err := columnOwnedBy(tx, actor, columnID)
		if err != nil {
			return err
		}
		if !owned {
			return ErrColumnNotWritable
		}

		if err := validateCardText(title, description); err != nil {
			return err
		}

		taken, err := cardTitleTaken(tx, columnID, title, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrCardExists
		}

		var count int64
		if err := tx.Model(&models.Card{}).Where("column_id = ?", columnID).Count(&count).Error; err != nil {
			return fmt.Errorf("count cards: %w", err)
		}
		if count >= models.MaxCardsPerColumn {
			return ErrCardLimit
		}

		card = models.Card{
			Title:       title,
			Description: description,
			ColumnID:    columnID,
			UserID:      actor,
		}
		if err := tx.Create(&card).Error; err != nil {
			return fmt.Errorf("create card: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// List returns actor's cards in columnID. Unlike ColumnStore.List, an empty
// result is reported as a not-found error.
func (s *CardStore) List(ctx context.Context, actor, columnID int64, titleFilter string) ([]models.Card, error) {
	query := s.db.WithContext(ctx).Where("user_id = ? AND column_id = ?", actor, columnID)
	if titleFilter != "" {
		query = whereContains(query, "title", titleFilter)
	}

	var cards []models.Card
	if err := cardsByCreation(query).Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	if len(cards) == 0 {
		if titleFilter != "" {
			return nil, ErrNoCardsMatching
		}
		return nil, ErrNoCards
	}
	return cards, nil
}

// GetOne looks the card up inside columnID. The column only has to exist; the
// card itself must belong to actor.
func (s *CardStore) GetOne(ctx context.Context, actor, columnID, cardID int64) (*models.Card, error) {
	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.Column{}).Where("id = ?", columnID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("find column %d: %w", columnID, err)
	}
	if count == 0 {
		return nil, ErrColumnMissing
	}

	card, err := findCardInColumn(db, columnID, cardID)
	if err != nil {
		return nil, err
	}
	if card.UserID != actor {
		return nil, ErrCardForbidden
	}
	return card, nil
}

// Update applies patch to the card. Moving a card only checks that the target
// column belongs to actor; title uniqueness and capacity are not re-checked
// against the target.
func (s *CardStore) Update(ctx context.Context, actor, columnID, cardID int64, patch CardPatch) (*models.Card, error) {
	var card *models.Card
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		card, err = findCardInColumn(tx, columnID, cardID)
		if err != nil {
			return err
		}
		if card.UserID != actor {
			return ErrCardForbidden
		}

		updated := *card
		// an empty title is ignored rather than rejected
		if patch.Title != nil && *patch.Title != "" {
			if tooLong(*patch.Title, models.MaxCardTitleLength) {
				return ErrCardTitleTooLong
			}
			if *patch.Title != card.Title {
				taken, err := cardTitleTaken(tx, columnID, *patch.Title, cardID)
				if err != nil {
					return err
				}
				if taken {
					return ErrCardExists
				}
			}
			updated.Title = *patch.Title
		}

		if patch.Description != nil {
			if tooLong(*patch.Description, models.MaxCardDescriptionLength) {
				return ErrCardDescriptionTooLong
			}
			updated.Description = *patch.Description
		}

		if patch.ColumnID != nil && *patch.ColumnID != 0 && *patch.ColumnID != card.ColumnID {
			owned, err := columnOwnedBy(tx, actor, *patch.ColumnID)
			if err != nil {
				return err
			}
			if !owned {
				return ErrTargetColumnUnavailable
			}
			updated.ColumnID = *patch.ColumnID
		}

		if err := tx.Save(&updated).Error; err != nil {
			return fmt.Errorf("update card %d: %w", cardID, err)
		}
		card = &updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

// Delete looks the card up by id alone, whatever column it is in.
func (s *CardStore) Delete(ctx context.Context, actor, cardID int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var card models.Card
		err := tx.First(&card, cardID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCardNotFound
		}
		if err != nil {
			return fmt.Errorf("find card %d: %w", cardID, err)
		}
		if card.UserID != actor {
			return ErrCardForbidden
		}
		if err := tx.Delete(&card).Error; err != nil {
			return fmt.Errorf("delete card %d: %w", cardID, err)
		}
		return nil
	})
}

func findCardInColumn(db *gorm.DB, columnID, cardID int64) (*models.Card, error) {
	var card models.Card
	err := db.Where("id = ? AND column_id = ?", cardID, columnID).First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCardNotInColumn
	}
	if err != nil {
		return nil, fmt.Errorf("find card %d: %w", cardID, err)
	}
	return &card, nil
}

func columnOwnedBy(db *gorm.DB, owner, columnID int64) (bool, error) {
	var count int64
	err := db.Model(&models.Column{}).
		Where("id = ? AND user_id = ?", columnID, owner).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check column %d: %w", columnID, err)
	}
	return count > 0, nil
}

func cardTitleTaken(db *gorm.DB, columnID int64, title string, exceptID int64) (bool, error) {
	var count int64
	err := db.Model(&models.Card{}).
		Where("column_id = ? AND title = ? AND id <> ?", columnID, title, exceptID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check card title: %w", err)
	}
	return count > 0, nil
}
