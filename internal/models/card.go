package models

import "time"

const (
	MaxCardTitleLength       = 100
	MaxCardDescriptionLength = 200
	MaxCardsPerColumn        = 10
)

// Card belongs to exactly one column but keeps its own owner, set once at
// creation from the acting user.
type Card struct {
	ID          int64  `gorm:"primaryKey"`
	Title       string `gorm:"size:100;not null"`
	Description string `gorm:"size:200;not null;default:''"`
	ColumnID    int64  `gorm:"not null;index"`
	UserID      int64  `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CardView struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ColumnID    int64  `json:"column_id"`
	UserID      int64  `json:"user_id"`
}

func (c Card) View() CardView {
	return CardView{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		ColumnID:    c.ColumnID,
		UserID:      c.UserID,
	}
}

func CardViews(cards []Card) []CardView {
	views := make([]CardView, 0, len(cards))
	for _, card := range cards {
		views = append(views, card.View())
	}
	return views
}
