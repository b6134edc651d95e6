package api

import (
	"net/http"

	"github.com/chxlky/trello-clone-api/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type columnRequest struct {
	Name string `json:"name"`
}

func (h *Handler) CreateColumnHandler(c *gin.Context) {
	var req columnRequest
	if err := bindJSONObject(c, &req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid JSON"})
		return
	}

	column, err := h.Columns.Create(c.Request.Context(), currentUser(c), req.Name)
	if err != nil {
		respondError(c, err, columnNotFoundStatus)
		return
	}

	zap.L().Info("Column created", zap.Int64("columnID", column.ID), zap.Int64("userID", column.UserID))
	c.JSON(http.StatusCreated, column.View())
}

func (h *Handler) RenameColumnHandler(c *gin.Context) {
	columnID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req columnRequest
	if err := bindJSONObject(c, &req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid JSON"})
		return
	}

	column, err := h.Columns.Rename(c.Request.Context(), currentUser(c), columnID, req.Name)
	if err != nil {
		respondError(c, err, columnNotFoundStatus)
		return
	}
	c.JSON(http.StatusOK, column.View())
}

func (h *Handler) ListColumnsHandler(c *gin.Context) {
	columns, err := h.Columns.List(c.Request.Context(), currentUser(c), c.Query("name"))
	if err != nil {
		respondError(c, err, columnNotFoundStatus)
		return
	}

	views := make([]models.ColumnView, 0, len(columns))
	for _, column := range columns {
		views = append(views, column.View())
	}
	c.JSON(http.StatusOK, views)
}

func (h *Handler) GetColumnHandler(c *gin.Context) {
	columnID, ok := pathID(c, "id")
	if !ok {
		return
	}

	column, err := h.Columns.Get(c.Request.Context(), currentUser(c), columnID)
	if err != nil {
		respondError(c, err, columnNotFoundStatus)
		return
	}
	c.JSON(http.StatusOK, column.View())
}

func (h *Handler) DeleteColumnHandler(c *gin.Context) {
	columnID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.Columns.Delete(c.Request.Context(), currentUser(c), columnID); err != nil {
		respondError(c, err, columnNotFoundStatus)
		return
	}

	zap.L().Info("Column deleted", zap.Int64("columnID", columnID), zap.Int64("userID", currentUser(c)))
	c.JSON(http.StatusOK, gin.H{"message": "Column deleted successfully"})
}
