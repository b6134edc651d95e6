package board

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/chxlky/trello-clone-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestCardStore_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("owner comes from the acting user", func(t *testing.T) {
		columns, cards := newStores(t)
		column := mustColumn(t, columns, 7, "Todo")

		card, err := cards.Create(ctx, 7, column, "Fix bug", "")
		require.NoError(t, err)
		assert.Equal(t, int64(7), card.UserID)
		assert.Equal(t, column, card.ColumnID)
		assert.Equal(t, "", card.Description)
	})

	t.Run("column must belong to the actor", func(t *testing.T) {
		columns, cards := newStores(t)
		column := mustColumn(t, columns, 7, "Todo")

		_, err := cards.Create(ctx, 9, column, "Fix bug", "")
		assert.ErrorIs(t, err, ErrColumnNotWritable)

		_, err = cards.Create(ctx, 7, column+100, "Fix bug", "")
		assert.ErrorIs(t, err, ErrColumnNotWritable)
	})

	t.Run("validates text", func(t *testing.T) {
		columns, cards := newStores(t)
		column := mustColumn(t, columns, 1, "Todo")

		_, err := cards.Create(ctx, 1, column, "", "")
		assert.ErrorIs(t, err, ErrCardTitleRequired)
		_, err = cards.Create(ctx, 1, column, strings.Repeat("t", 101), "")
		assert.ErrorIs(t, err, ErrCardTitleTooLong)
		_, err = cards.Create(ctx, 1, column, "ok", strings.Repeat("d", 201))
		assert.ErrorIs(t, err, ErrCardDescriptionTooLong)
	})

	t.Run("titles are unique per column", func(t *testing.T) {
		columns, cards := newStores(t)
		todo := mustColumn(t, columns, 1, "Todo")
		done := mustColumn(t, columns, 1, "Done")
		mustCard(t, cards, 1, todo, "Fix bug")

		_, err := cards.Create(ctx, 1, todo, "Fix bug", "")
		assert.ErrorIs(t, err, ErrCardExists)

		_, err = cards.Create(ctx, 1, done, "Fix bug", "")
		assert.NoError(t, err)
	})

	t.Run("caps cards per column", func(t *testing.T) {
		columns, cards := newStores(t)
		column := mustColumn(t, columns, 1, "Todo")
		for i := 0; i < models.MaxCardsPerColumn; i++ {
			mustCard(t, cards, 1, column, fmt.Sprintf("card-%d", i))
		}

		_, err := cards.Create(ctx, 1, column, "eleventh", "")
		assert.ErrorIs(t, err, ErrCardLimit)
		kind, _ := KindOf(err)
		assert.Equal(t, KindCapacity, kind)
	})
}

func TestCardStore_List(t *testing.T) {
	ctx := context.Background()
	columns, cards := newStores(t)
	column := mustColumn(t, columns, 1, "Todo")
	mustCard(t, cards, 1, column, "Fix bug")
	mustCard(t, cards, 1, column, "Write docs")
	mustCard(t, cards, 1, column, "fix typo")

	t.Run("all cards in creation order", func(t *testing.T) {
		list, err := cards.List(ctx, 1, column, "")
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "Fix bug", list[0].Title)
		assert.Equal(t, "fix typo", list[2].Title)
	})

	t.Run("case-insensitive title filter", func(t *testing.T) {
		list, err := cards.List(ctx, 1, column, "FIX")
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("non-ASCII title filter", func(t *testing.T) {
		other := mustColumn(t, columns, 1, "Hechos")
		mustCard(t, cards, 1, other, "ÉXITO")
		mustCard(t, cards, 1, other, "Otro")

		for _, filter := range []string{"ÉXITO", "éxito", "Éxi"} {
			list, err := cards.List(ctx, 1, other, filter)
			require.NoError(t, err, filter)
			require.Len(t, list, 1, filter)
			assert.Equal(t, "ÉXITO", list[0].Title)
		}
	})

	t.Run("no matches is not found", func(t *testing.T) {
		_, err := cards.List(ctx, 1, column, "zzz")
		assert.ErrorIs(t, err, ErrNoCardsMatching)
	})

	t.Run("other users see nothing", func(t *testing.T) {
		_, err := cards.List(ctx, 2, column, "")
		assert.ErrorIs(t, err, ErrNoCards)
	})

	t.Run("empty column is not found", func(t *testing.T) {
		empty := mustColumn(t, columns, 1, "Empty")
		_, err := cards.List(ctx, 1, empty, "")
		assert.ErrorIs(t, err, ErrNoCards)
		kind, _ := KindOf(err)
		assert.Equal(t, KindNotFound, kind)
	})
}

func TestCardStore_GetOne(t *testing.T) {
	ctx := context.Background()
	columns, cards := newStores(t)
	column := mustColumn(t, columns, 7, "Todo")
	other := mustColumn(t, columns, 7, "Other")
	card := mustCard(t, cards, 7, column, "Fix bug")

	t.Run("owner reads the card", func(t *testing.T) {
		got, err := cards.GetOne(ctx, 7, column, card)
		require.NoError(t, err)
		assert.Equal(t, "Fix bug", got.Title)
	})

	t.Run("other users are forbidden", func(t *testing.T) {
		_, err := cards.GetOne(ctx, 9, column, card)
		assert.ErrorIs(t, err, ErrCardForbidden)
	})

	t.Run("missing column", func(t *testing.T) {
		_, err := cards.GetOne(ctx, 7, column+100, card)
		assert.ErrorIs(t, err, ErrColumnMissing)
	})

	t.Run("card in another column", func(t *testing.T) {
		_, err := cards.GetOne(ctx, 7, other, card)
		assert.ErrorIs(t, err, ErrCardNotInColumn)
	})
}

func TestCardStore_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("updates title and description", func(t *testing.T) {
		columns, cards := newStores(t)
		column := mustColumn(t, columns, 1, "Todo")
		card := mustCard(t, cards, 1, column, "Fix bug")

		updated, err := cards.Update(ctx, 1, column, card, CardPatch{
			Title:       ptr("Fix the bug"),
			Description: ptr("null pointer in handler"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Fix the bug", updated.Title)
		assert.Equal(t, "null pointer in handler", updated.Description)

		got, err := cards.GetOne(ctx, 1, column, card)
		require.NoError(t, err)
		assert.Equal(t, updated.View(), got.View())
	})

	t.Run("empty description clears, empty title is ignored", func(t *testing.T) {
		columns, cards := newStores(t)
		column := mustColumn(t, columns, 1, "Todo")
		created, err := cards.Create(ctx, 1, column, "Fix bug", "details")
		require.NoError(t, err)

		updated, err := cards.Update(ctx, 1, column, created.ID, CardPatch{
			Title:       ptr(""),
			Description: ptr(""),
		})
		require.NoError(t, err)
		assert.Equal(t, "Fix bug", updated.Title)
		assert.Equal(t, "", updated.Description)
	})

	t.Run("duplicate title conflicts", func(t *testing.T) {
		columns, cards := newStores(t)
		column := mustColumn(t, columns, 1, "Todo")
		mustCard(t, cards, 1, column, "taken")
		card := mustCard(t, cards, 1, column, "mine")

		_, err := cards.Update(ctx, 1, column, card, CardPatch{Title: ptr("taken")})
		assert.ErrorIs(t, err, ErrCardExists)
	})

	t.Run("only the card owner may update", func(t *testing.T) {
		columns, cards := newStores(t)
		column := mustColumn(t, columns, 1, "Todo")
		card := mustCard(t, cards, 1, column, "Fix bug")

		_, err := cards.Update(ctx, 2, column, card, CardPatch{Title: ptr("hijack")})
		assert.ErrorIs(t, err, ErrCardForbidden)
	})

	t.Run("card must be in the given column", func(t *testing.T) {
		columns, cards := newStores(t)
		column := mustColumn(t, columns, 1, "Todo")
		other := mustColumn(t, columns, 1, "Other")
		card := mustCard(t, cards, 1, column, "Fix bug")

		_, err := cards.Update(ctx, 1, other, card, CardPatch{Title: ptr("x")})
		assert.ErrorIs(t, err, ErrCardNotInColumn)
	})

	t.Run("moves to an owned column", func(t *testing.T) {
		columns, cards := newStores(t)
		todo := mustColumn(t, columns, 1, "Todo")
		done := mustColumn(t, columns, 1, "Done")
		card := mustCard(t, cards, 1, todo, "Fix bug")

		updated, err := cards.Update(ctx, 1, todo, card, CardPatch{ColumnID: ptr(done)})
		require.NoError(t, err)
		assert.Equal(t, done, updated.ColumnID)

		_, err = cards.GetOne(ctx, 1, done, card)
		assert.NoError(t, err)
	})

	t.Run("moving to a foreign column is forbidden and changes nothing", func(t *testing.T) {
		columns, cards := newStores(t)
		mine := mustColumn(t, columns, 1, "Todo")
		theirs := mustColumn(t, columns, 2, "Theirs")
		card := mustCard(t, cards, 1, mine, "Fix bug")

		_, err := cards.Update(ctx, 1, mine, card, CardPatch{
			Title:    ptr("renamed"),
			ColumnID: ptr(theirs),
		})
		assert.ErrorIs(t, err, ErrTargetColumnUnavailable)

		got, err := cards.GetOne(ctx, 1, mine, card)
		require.NoError(t, err)
		assert.Equal(t, mine, got.ColumnID)
		assert.Equal(t, "Fix bug", got.Title)
	})

	t.Run("moves skip destination uniqueness and capacity", func(t *testing.T) {
		columns, cards := newStores(t)
		source := mustColumn(t, columns, 1, "Source")
		full := mustColumn(t, columns, 1, "Full")
		for i := 0; i < models.MaxCardsPerColumn-1; i++ {
			mustCard(t, cards, 1, full, fmt.Sprintf("card-%d", i))
		}
		mustCard(t, cards, 1, full, "Fix bug")
		card := mustCard(t, cards, 1, source, "Fix bug")

		updated, err := cards.Update(ctx, 1, source, card, CardPatch{ColumnID: ptr(full)})
		require.NoError(t, err)
		assert.Equal(t, full, updated.ColumnID)

		list, err := cards.List(ctx, 1, full, "")
		require.NoError(t, err)
		assert.Len(t, list, models.MaxCardsPerColumn+1)
	})

	t.Run("owner is immutable", func(t *testing.T) {
		columns, cards := newStores(t)
		column := mustColumn(t, columns, 1, "Todo")
		card := mustCard(t, cards, 1, column, "Fix bug")

		updated, err := cards.Update(ctx, 1, column, card, CardPatch{Description: ptr("x")})
		require.NoError(t, err)
		assert.Equal(t, int64(1), updated.UserID)
	})
}

func TestCardStore_Delete(t *testing.T) {
	ctx := context.Background()
	columns, cards := newStores(t)
	column := mustColumn(t, columns, 1, "Todo")
	card := mustCard(t, cards, 1, column, "Fix bug")

	assert.ErrorIs(t, cards.Delete(ctx, 2, card), ErrCardForbidden)
	require.NoError(t, cards.Delete(ctx, 1, card))
	assert.ErrorIs(t, cards.Delete(ctx, 1, card), ErrCardNotFound)
}

func TestCardOwnershipIsIndependentOfColumn(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	columns, cards := NewColumnStore(db), NewCardStore(db)
	column := mustColumn(t, columns, 1, "Todo")
	card := mustCard(t, cards, 1, column, "Fix bug")

	// reassign the column to another user directly; the card keeps its owner
	require.NoError(t, db.Model(&models.Column{}).Where("id = ?", column).Update("user_id", 2).Error)

	_, err := cards.GetOne(ctx, 2, column, card)
	assert.ErrorIs(t, err, ErrCardForbidden)
	got, err := cards.GetOne(ctx, 1, column, card)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.UserID)
}
