package board

import (
	"context"
	"fmt"
	"testing"

	"github.com/chxlky/trello-clone-api/config"
	"github.com/chxlky/trello-clone-api/database"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Init(config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newStores(t *testing.T) (*ColumnStore, *CardStore) {
	db := newTestDB(t)
	return NewColumnStore(db), NewCardStore(db)
}

func mustColumn(t *testing.T, columns *ColumnStore, owner int64, name string) int64 {
	t.Helper()
	column, err := columns.Create(context.Background(), owner, name)
	require.NoError(t, err)
	return column.ID
}

func mustCard(t *testing.T, cards *CardStore, actor, columnID int64, title string) int64 {
	t.Helper()
	card, err := cards.Create(context.Background(), actor, columnID, title, "")
	require.NoError(t, err)
	return card.ID
}

func fillColumns(t *testing.T, columns *ColumnStore, owner int64, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		mustColumn(t, columns, owner, fmt.Sprintf("column-%d", i))
	}
}
