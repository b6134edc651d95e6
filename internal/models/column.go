package models

import "time"

const (
	MaxColumnNameLength = 80
	MaxColumnsPerUser   = 10
)

// Column groups cards for a single owner. Name is unique per owner.
type Column struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"size:80;not null;uniqueIndex:idx_columns_user_name"`
	UserID    int64  `gorm:"not null;index;uniqueIndex:idx_columns_user_name"`
	Cards     []Card `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ColumnView struct {
	ID     int64      `json:"id"`
	Name   string     `json:"name"`
	UserID int64      `json:"user_id"`
	Cards  []CardView `json:"cards"`
}

// View projects the column and its preloaded cards in creation order.
func (c Column) View() ColumnView {
	cards := make([]CardView, 0, len(c.Cards))
	for _, card := range c.Cards {
		cards = append(cards, card.View())
	}
	return ColumnView{
		ID:     c.ID,
		Name:   c.Name,
		UserID: c.UserID,
		Cards:  cards,
	}
}
