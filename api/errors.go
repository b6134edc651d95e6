package api

import (
	"errors"
	"net/http"

	"github.com/chxlky/trello-clone-api/internal/board"
	"github.com/chxlky/trello-clone-api/internal/identity"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Column endpoints never reveal whether a column exists: a missing column and
// someone else's column both answer 403. Card endpoints answer 404.
const (
	columnNotFoundStatus = http.StatusForbidden
	cardNotFoundStatus   = http.StatusNotFound
)

func boardStatus(kind board.Kind, notFoundStatus int) int {
	switch kind {
	case board.KindValidation, board.KindCapacity:
		return http.StatusBadRequest
	case board.KindConflict:
		return http.StatusConflict
	case board.KindNotFound:
		return notFoundStatus
	case board.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func identityStatus(kind identity.Kind) int {
	switch kind {
	case identity.KindMissingCredential, identity.KindMissingClaim:
		return http.StatusBadRequest
	case identity.KindExpiredCredential, identity.KindUnauthorized, identity.KindUpstream:
		return http.StatusUnauthorized
	case identity.KindMalformedCredential:
		return http.StatusForbidden
	default:
		return http.StatusUnauthorized
	}
}

// respondError writes the JSON error body for err. Errors outside the board
// taxonomy are logged and hidden behind a 500.
func respondError(c *gin.Context, err error, notFoundStatus int) {
	if kind, ok := board.KindOf(err); ok {
		status := boardStatus(kind, notFoundStatus)
		zap.L().Warn("Request rejected",
			zap.String("requestID", requestID(c)),
			zap.Stringer("kind", kind),
			zap.Int("status", status),
			zap.Error(err),
		)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	zap.L().Error("Request failed", zap.String("requestID", requestID(c)), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

func abortWithIdentityError(c *gin.Context, err error) {
	var idErr *identity.Error
	if !errors.As(err, &idErr) {
		zap.L().Error("Identity resolution failed", zap.String("requestID", requestID(c)), zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	status := identityStatus(idErr.Kind)
	zap.L().Warn("Authentication failed",
		zap.String("requestID", requestID(c)),
		zap.Int("status", status),
		zap.Error(err),
	)
	c.AbortWithStatusJSON(status, gin.H{"error": idErr.Message})
}
