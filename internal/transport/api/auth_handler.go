package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService UserServicer
}

func NewAuthHandler(userService UserServicer) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

type TelegramAuthParams struct {
	InitData string `binding:"required" json:"init_data"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// Telegram POST RouteGroup + AuthTelegramRoute. Обменивает подписанную
// telegram initData на сессионный JWT. Юзер создается при первом входе.
func (h *AuthHandler) Telegram(c *gin.Context) {
	var params TelegramAuthParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	token, user, authErr := h.userService.Authenticate(ctx, params.InitData)
	if authErr != nil {
		abortWithDomainError(c, authErr)
		return
	}

	c.Header("Authorization", "Bearer "+token)
	c.JSON(http.StatusOK, AuthResponse{
		Token: token,
		User:  newUserResponse(user),
	})
}
