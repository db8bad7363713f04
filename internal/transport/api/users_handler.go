package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/fsdevblog/srochno-market/internal/domain"
	"github.com/fsdevblog/srochno-market/internal/repository/repoargs"
)

type UsersHandler struct {
	userService UserServicer
}

func NewUsersHandler(userService UserServicer) *UsersHandler {
	return &UsersHandler{
		userService: userService,
	}
}

type UserResponse struct {
	ID                           int64    `json:"id"`
	Username                     string   `json:"username"`
	FirstName                    string   `json:"first_name"`
	LastName                     string   `json:"last_name"`
	Balance                      int64    `json:"balance"`
	ActiveOrdersCount            int      `json:"active_orders_count"`
	CompletedOrdersCount         int      `json:"completed_orders_count"`
	AverageRating                float64  `json:"average_rating"`
	NotificationsEnabled         bool     `json:"notifications_enabled"`
	SubscribedCategories         []string `json:"subscribed_categories"`
	SubscribedCities             []string `json:"subscribed_cities"`
	NotificationFrequencyMinutes int      `json:"notification_frequency_minutes"`
}

func newUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:                           user.ID,
		Username:                     user.Username,
		FirstName:                    user.FirstName,
		LastName:                     user.LastName,
		Balance:                      user.Balance,
		ActiveOrdersCount:            user.ActiveOrdersCount,
		CompletedOrdersCount:         user.CompletedOrdersCount,
		AverageRating:                user.AverageRating,
		NotificationsEnabled:         user.NotificationsEnabled,
		SubscribedCategories:         user.SubscribedCategories,
		SubscribedCities:             user.SubscribedCities,
		NotificationFrequencyMinutes: user.NotificationFrequencyMinutes,
	}
}

// Me GET RouteGroup + MeRoute.
func (h *UsersHandler) Me(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, getErr := h.userService.Profile(reqCtx, currentUserID)
	if getErr != nil {
		abortWithDomainError(c, getErr)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

type PreferencesParams struct {
	Categories []string `json:"categories"`
	Cities     []string `json:"cities"`
}

// UpdatePreferences PUT RouteGroup + PreferencesRoute. Заменяет подписки целиком.
func (h *UsersHandler) UpdatePreferences(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var params PreferencesParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, updateErr := h.userService.UpdatePreferences(reqCtx, currentUserID, params.Categories, params.Cities)
	if updateErr != nil {
		abortWithDomainError(c, updateErr)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

type NotificationSettingsParams struct {
	Enabled          *bool `json:"enabled"`
	FrequencyMinutes *int  `binding:"omitempty,min=5,max=15" json:"frequency_minutes"`
}

// UpdateNotificationSettings PUT RouteGroup + NotificationSettingsRoute.
// nil-поля не меняются.
func (h *UsersHandler) UpdateNotificationSettings(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var params NotificationSettingsParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		var valErrs validator.ValidationErrors
		if errors.As(bindErr, &valErrs) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": valErrs.Error()})
			return
		}
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, updateErr := h.userService.UpdateNotificationSettings(reqCtx, currentUserID,
		repoargs.UpdateNotificationSettings{
			Enabled:          params.Enabled,
			FrequencyMinutes: params.FrequencyMinutes,
		})
	if updateErr != nil {
		abortWithDomainError(c, updateErr)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}
