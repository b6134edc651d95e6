package board

import (
	"context"
	"errors"
	"fmt"

	"github.com/chxlky/trello-clone-api/database"
	"github.com/chxlky/trello-clone-api/internal/models"
	"gorm.io/gorm"
)

// ColumnStore manages a user's columns. Every operation is scoped to owner and
// runs in its own transaction; all checks happen before the first write.
type ColumnStore struct {
	db *gorm.DB
}

func NewColumnStore(db *gorm.DB) *ColumnStore {
	return &ColumnStore{db: db}
}

func validateColumnName(name string) error {
	if name == "" {
		return ErrColumnNameRequired
	}
	if tooLong(name, models.MaxColumnNameLength) {
		return ErrColumnNameTooLong
	}
	return nil
}

func (s *ColumnStore) Create(ctx context.Context, owner int64, name string) (*models.Column, error) {
	if err := validateColumnName(name); err != nil {
		return nil, err
	}

	var column models.Column
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := columnNameTaken(tx, owner, name, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrColumnExists
		}

		var count int64
		if err := tx.Model(&models.Column{}).Where("user_id = ?", owner).Count(&count).Error; err != nil {
			return fmt.Errorf("count columns: %w", err)
		}
		if count >= models.MaxColumnsPerUser {
			return ErrColumnLimit
		}

		column = models.Column{Name: name, UserID: owner}
		if err := tx.Create(&column).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return ErrColumnExists
			}
			return fmt.Errorf("create column: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &column, nil
}

func (s *ColumnStore) Rename(ctx context.Context, owner, columnID int64, name string) (*models.Column, error) {
	if err := validateColumnName(name); err != nil {
		return nil, err
	}

	var column *models.Column
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		column, err = findOwnedColumn(tx, owner, columnID)
		if err != nil {
			return err
		}

		taken, err := columnNameTaken(tx, owner, name, columnID)
		if err != nil {
			return err
		}
		if taken {
			return ErrColumnExists
		}

		err = tx.Model(&models.Column{}).Where("id = ?", column.ID).Update("name", name).Error
		if err != nil {
			if database.IsUniqueViolation(err) {
				return ErrColumnExists
			}
			return fmt.Errorf("rename column %d: %w", columnID, err)
		}
		column.Name = name
		return nil
	})
	if err != nil {
		return nil, err
	}
	return column, nil
}

func (s *ColumnStore) Get(ctx context.Context, owner, columnID int64) (*models.Column, error) {
	return findOwnedColumn(s.db.WithContext(ctx), owner, columnID)
}

// List never fails on an empty result. A non-empty nameFilter restricts the
// result to names containing it, ignoring case.
func (s *ColumnStore) List(ctx context.Context, owner int64, nameFilter string) ([]models.Column, error) {
	query := s.db.WithContext(ctx).Preload("Cards", cardsByCreation).Where("user_id = ?", owner)
	if nameFilter != "" {
		query = whereContains(query, "name", nameFilter)
	}

	columns := []models.Column{}
	if err := query.Order("id").Find(&columns).Error; err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}
	return columns, nil
}

// Delete removes the column together with every card it holds.
func (s *ColumnStore) Delete(ctx context.Context, owner, columnID int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		column, err := findOwnedColumn(tx, owner, columnID)
		if err != nil {
			return err
		}
		if err := tx.Where("column_id = ?", column.ID).Delete(&models.Card{}).Error; err != nil {
			return fmt.Errorf("delete cards of column %d: %w", column.ID, err)
		}
		if err := tx.Delete(column).Error; err != nil {
			return fmt.Errorf("delete column %d: %w", column.ID, err)
		}
		return nil
	})
}

func findOwnedColumn(db *gorm.DB, owner, columnID int64) (*models.Column, error) {
	var column models.Column
	err := db.Preload("Cards", cardsByCreation).
		Where("id = ? AND user_id = ?", columnID, owner).
		First(&column).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrColumnNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find column %d: %w", columnID, err)
	}
	return &column, nil
}

// columnNameTaken reports whether another column of owner, other than
// exceptID, already uses name.
func columnNameTaken(db *gorm.DB, owner int64, name string, exceptID int64) (bool, error) {
	var count int64
	err := db.Model(&models.Column{}).
		Where("user_id = ? AND name = ? AND id <> ?", owner, name, exceptID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check column name: %w", err)
	}
	return count > 0, nil
}
