package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/chxlky/trello-clone-api/internal/board"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// JokeSource is implemented by integrations.JokeClient.
type JokeSource interface {
	Random(ctx context.Context) (string, error)
}

type Handler struct {
	DB      *gorm.DB
	Columns *board.ColumnStore
	Cards   *board.CardStore
	Jokes   JokeSource
}

func NewHandler(db *gorm.DB, jokes JokeSource) *Handler {
	return &Handler{
		DB:      db,
		Columns: board.NewColumnStore(db),
		Cards:   board.NewCardStore(db),
		Jokes:   jokes,
	}
}

func (h *Handler) HealthCheckHandler(c *gin.Context) {
	sqlDB, err := h.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		zap.L().Error("Database ping failed", zap.String("requestID", requestID(c)), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) JokeHandler(c *gin.Context) {
	joke, err := h.Jokes.Random(c.Request.Context())
	if err != nil {
		zap.L().Error("Error fetching joke", zap.String("requestID", requestID(c)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "External request failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"chiste": joke})
}

// pathID parses a positive integer path parameter. Anything else is answered
// with 404, as the route would not have matched.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return 0, false
	}
	return id, true
}

var errNullBody = errors.New("request body is null")

// bindJSONObject binds the request body into obj. A literal null body is
// rejected like malformed JSON.
func bindJSONObject(c *gin.Context, obj any) error {
	body, err := c.GetRawData()
	if err != nil {
		return err
	}
	if bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return errNullBody
	}
	return binding.JSON.BindBody(body, obj)
}
