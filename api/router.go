package api

import (
	"net/http"
	"slices"
	"time"

	"github.com/chxlky/trello-clone-api/internal/identity"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func corsConfig(origins []string) cors.Config {
	config := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Authorization", "Content-Type", headerRequestID},
		ExposeHeaders: []string{headerRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}
	return config
}

func NewRouter(h *Handler, resolver identity.Resolver, logger *zap.Logger, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(logger, true))
	router.Use(RequestID())
	router.Use(cors.New(corsConfig(allowedOrigins)))

	router.GET("/health", h.HealthCheckHandler)
	router.GET("/chiste", h.JokeHandler)

	authed := router.Group("/", Authenticate(resolver))
	{
		authed.POST("/columns", h.CreateColumnHandler)
		authed.GET("/columns", h.ListColumnsHandler)
		authed.GET("/columns/:id", h.GetColumnHandler)
		authed.PUT("/columns/:id", h.RenameColumnHandler)
		authed.DELETE("/columns/:id", h.DeleteColumnHandler)

		authed.POST("/columns/:id/cards", h.CreateCardHandler)
		authed.GET("/columns/:id/cards", h.ListCardsHandler)
		authed.GET("/columns/:id/cards/:cid", h.GetCardHandler)
		authed.PUT("/columns/:id/cards/:cid", h.UpdateCardHandler)
		authed.DELETE("/columns/:id/cards/:cid", h.DeleteCardHandler)
	}

	return router
}
