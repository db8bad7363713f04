package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/fsdevblog/srochno-market/internal/domain"
	"github.com/fsdevblog/srochno-market/internal/repository/repoargs"
	"github.com/fsdevblog/srochno-market/internal/service"
)

type OrdersHandler struct {
	orderSvs OrderServicer
}

func NewOrdersHandler(orderSvs OrderServicer) *OrdersHandler {
	return &OrdersHandler{
		orderSvs: orderSvs,
	}
}

type OrderResponse struct {
	ID                  string                 `json:"id"`
	Category            string                 `json:"category"`
	Description         string                 `json:"description"`
	City                string                 `json:"city"`
	Contact             *string                `json:"contact"`
	Status              domain.OrderStatusType `json:"status"`
	CreatedAt           time.Time              `json:"created_at"`
	ExpiresInMinutes    int                    `json:"expires_in_minutes"`
	MinutesLeft         int                    `json:"minutes_left"`
	CustomerRespondedAt *time.Time             `json:"customer_responded_at,omitempty"`
}

func newOrderResponse(order *domain.Order) OrderResponse {
	resp := OrderResponse{
		ID:                  order.ID,
		Category:            order.Category,
		Description:         order.Description,
		City:                order.City,
		Status:              order.Status,
		CreatedAt:           order.CreatedAt,
		ExpiresInMinutes:    order.ExpiresInMinutes,
		MinutesLeft:         order.MinutesLeft(time.Now()),
		CustomerRespondedAt: order.CustomerRespondedAt,
	}
	if order.Contact != "" {
		contact := order.Contact
		resp.Contact = &contact
	}
	return resp
}

type OrderCreateParams struct {
	Category    string `binding:"required"              json:"category"`
	Description string `binding:"required,min=20,max=1000" json:"description"`
	City        string `binding:"required,min=2,max=100"   json:"city"`
	Contact     string `binding:"required,min=3,max=100"   json:"contact"`
}

// Create POST RouteGroup + OrdersRoute.
func (o *OrdersHandler) Create(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var params OrderCreateParams
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

	order, createErr := o.orderSvs.Create(reqCtx, currentUserID, service.CreateOrderArgs{
		Category:    params.Category,
		Description: params.Description,
		City:        params.City,
		Contact:     params.Contact,
	})
	if createErr != nil {
		abortWithDomainError(c, createErr)
		return
	}

	c.JSON(http.StatusCreated, newOrderResponse(order))
}

type OrderShowResponse struct {
	OrderResponse
	TakeCount int `json:"take_count"`
}

// Show GET RouteGroup + OrdersRoute + /:id. Доступен без авторизации,
// но контакт виден только владельцу и взявшим исполнителям.
func (o *OrdersHandler) Show(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	view, getErr := o.orderSvs.Get(reqCtx, currentUserID, c.Param("id"))
	if getErr != nil {
		abortWithDomainError(c, getErr)
		return
	}

	c.JSON(http.StatusOK, OrderShowResponse{
		OrderResponse: newOrderResponse(&view.Order),
		TakeCount:     view.TakeCount,
	})
}

type OrderListParams struct {
	Category string   `form:"category"`
	City     string   `form:"city"`
	Statuses []string `form:"status"`
	Limit    int      `binding:"omitempty,min=1,max=100" form:"limit"`
	Offset   int      `binding:"omitempty,min=0"         form:"offset"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int64           `json:"total"`
}

// Index GET RouteGroup + OrdersRoute. Публичная выдача.
func (o *OrdersHandler) Index(c *gin.Context) {
	o.list(c, false)
}

// My GET RouteGroup + MyOrdersRoute. Заказы текущего юзера, любые статусы.
func (o *OrdersHandler) My(c *gin.Context) {
	o.list(c, true)
}

func (o *OrdersHandler) list(c *gin.Context, mine bool) {
	currentUserID := getUserIDFromContext(c)

	var params OrderListParams
	if bindErr := c.ShouldBindQuery(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	statuses := make([]domain.OrderStatusType, 0, len(params.Statuses))
	for _, s := range params.Statuses {
		statuses = append(statuses, domain.OrderStatusType(s))
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	orders, total, listErr := o.orderSvs.List(reqCtx, currentUserID, service.ListOrdersArgs{
		Category: params.Category,
		City:     params.City,
		Statuses: statuses,
		Mine:     mine,
		Limit:    params.Limit,
		Offset:   params.Offset,
	})
	if listErr != nil {
		abortWithDomainError(c, listErr)
		return
	}

	response := OrderListResponse{
		Orders: make([]OrderResponse, len(orders)),
		Total:  total,
	}
	for i := range orders {
		response.Orders[i] = newOrderResponse(&orders[i])
	}
	c.JSON(http.StatusOK, response)
}

type OrderUpdateParams struct {
	Category    *string `json:"category"`
	Description *string `binding:"omitempty,min=20,max=1000" json:"description"`
	Contact     *string `binding:"omitempty,min=3,max=100"   json:"contact"`
}

// Update PATCH RouteGroup + OrdersRoute + /:id. Частичное обновление,
// город не редактируется после создания.
func (o *OrdersHandler) Update(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var params OrderUpdateParams
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

	order, updateErr := o.orderSvs.Update(reqCtx, currentUserID, c.Param("id"), repoargs.OrderPatch{
		Category:    params.Category,
		Description: params.Description,
		Contact:     params.Contact,
	})
	if updateErr != nil {
		abortWithDomainError(c, updateErr)
		return
	}
	c.JSON(http.StatusOK, newOrderResponse(order))
}

// Delete DELETE RouteGroup + OrdersRoute + /:id.
func (o *OrdersHandler) Delete(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if deleteErr := o.orderSvs.Delete(reqCtx, currentUserID, c.Param("id")); deleteErr != nil {
		abortWithDomainError(c, deleteErr)
		return
	}
	c.Status(http.StatusNoContent)
}

type TakeResponse struct {
	Contact   string `json:"contact"`
	TakeCount int    `json:"take_count"`
	Balance   int64  `json:"balance"`
}

// Take POST RouteGroup + OrdersRoute + /:id/take. Платное открытие контакта.
// Повторный вызов того же исполнителя бесплатен.
func (o *OrdersHandler) Take(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	result, takeErr := o.orderSvs.Take(reqCtx, currentUserID, c.Param("id"))
	if takeErr != nil {
		abortWithDomainError(c, takeErr)
		return
	}

	c.JSON(http.StatusOK, TakeResponse{
		Contact:   result.Contact,
		TakeCount: result.TakeCount,
		Balance:   result.Balance,
	})
}

// Respond POST RouteGroup + OrdersRoute + /:id/respond. Одноразовая отметка
// клиента "я ответил исполнителю".
func (o *OrdersHandler) Respond(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	order, respondErr := o.orderSvs.Respond(reqCtx, currentUserID, c.Param("id"))
	if respondErr != nil {
		abortWithDomainError(c, respondErr)
		return
	}
	c.JSON(http.StatusOK, newOrderResponse(order))
}

// Close POST RouteGroup + OrdersRoute + /:id/close. Закрытие без завершения.
func (o *OrdersHandler) Close(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if closeErr := o.orderSvs.Close(reqCtx, currentUserID, c.Param("id")); closeErr != nil {
		abortWithDomainError(c, closeErr)
		return
	}
	c.Status(http.StatusNoContent)
}

// Complete POST RouteGroup + OrdersRoute + /:id/complete. Подтверждение выполнения.
func (o *OrdersHandler) Complete(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if completeErr := o.orderSvs.Complete(reqCtx, currentUserID, c.Param("id")); completeErr != nil {
		abortWithDomainError(c, completeErr)
		return
	}
	c.Status(http.StatusNoContent)
}
