package api

import (
	"encoding/json"
	"net/http"

	"github.com/chxlky/trello-clone-api/internal/board"
	"github.com/chxlky/trello-clone-api/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type createCardRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type updateCardRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ColumnID    *int64  `json:"column_id"`
}

func (h *Handler) CreateCardHandler(c *gin.Context) {
	columnID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req createCardRequest
	if err := bindJSONObject(c, &req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid JSON"})
		return
	}

	if columnID == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Column ID is required"})
		return
	}

	card, err := h.Cards.Create(c.Request.Context(), currentUser(c), columnID, req.Title, req.Description)
	if err != nil {
		respondError(c, err, cardNotFoundStatus)
		return
	}

	zap.L().Info("Card created",
		zap.Int64("cardID", card.ID),
		zap.Int64("columnID", card.ColumnID),
		zap.Int64("userID", card.UserID),
	)
	c.JSON(http.StatusCreated, card.View())
}

func (h *Handler) ListCardsHandler(c *gin.Context) {
	columnID, ok := pathID(c, "id")
	if !ok {
		return
	}

	cards, err := h.Cards.List(c.Request.Context(), currentUser(c), columnID, c.Query("title"))
	if err != nil {
		respondError(c, err, cardNotFoundStatus)
		return
	}
	c.JSON(http.StatusOK, models.CardViews(cards))
}

func (h *Handler) GetCardHandler(c *gin.Context) {
	columnID, ok := pathID(c, "id")
	if !ok {
		return
	}
	cardID, ok := pathID(c, "cid")
	if !ok {
		return
	}

	card, err := h.Cards.GetOne(c.Request.Context(), currentUser(c), columnID, cardID)
	if err != nil {
		respondError(c, err, cardNotFoundStatus)
		return
	}
	c.JSON(http.StatusOK, card.View())
}

func (h *Handler) UpdateCardHandler(c *gin.Context) {
	columnID, ok := pathID(c, "id")
	if !ok {
		return
	}
	cardID, ok := pathID(c, "cid")
	if !ok {
		return
	}

	// an empty object is rejected like malformed JSON
	body, err := c.GetRawData()
	var fields map[string]json.RawMessage
	if err == nil {
		err = json.Unmarshal(body, &fields)
	}
	var req updateCardRequest
	if err == nil {
		err = json.Unmarshal(body, &req)
	}
	if err != nil || len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON data"})
		return
	}

	card, err := h.Cards.Update(c.Request.Context(), currentUser(c), columnID, cardID, board.CardPatch{
		Title:       req.Title,
		Description: req.Description,
		ColumnID:    req.ColumnID,
	})
	if err != nil {
		respondError(c, err, cardNotFoundStatus)
		return
	}
	c.JSON(http.StatusOK, card.View())
}

// DeleteCardHandler finds the card by id alone; the column in the path is not
// consulted.
func (h *Handler) DeleteCardHandler(c *gin.Context) {
	if _, ok := pathID(c, "id"); !ok {
		return
	}
	cardID, ok := pathID(c, "cid")
	if !ok {
		return
	}

	if err := h.Cards.Delete(c.Request.Context(), currentUser(c), cardID); err != nil {
		respondError(c, err, cardNotFoundStatus)
		return
	}

	zap.L().Info("Card deleted", zap.Int64("cardID", cardID), zap.Int64("userID", currentUser(c)))
	c.JSON(http.StatusOK, gin.H{"message": "Card deleted successfully"})
}
