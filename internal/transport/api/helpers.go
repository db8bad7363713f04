package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/srochno-market/internal/domain"
	"github.com/fsdevblog/srochno-market/internal/transport/api/middlewares"
)

// getUserIDFromContext берет из контекста gin ID текущего юзера. ID устанавливается
// в middlewares.AuthRequired. Для опционально авторизованных роутов возвращает 0.
func getUserIDFromContext(c *gin.Context) int64 {
	val, ok := c.Get(middlewares.CurrentUserIDKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// abortWithDomainError отображает бизнес-ошибку в http статус.
// Неизвестные ошибки уходят в 500 без деталей наружу.
func abortWithDomainError(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrGone):
		status = http.StatusGone
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInsufficientFunds):
		status = http.StatusPaymentRequired
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrGatewayUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrInvalid):
		status = http.StatusUnprocessableEntity
	default:
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}
	_ = c.AbortWithError(status, err).SetType(gin.ErrorTypePrivate)
}
