package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/srochno-market/internal/transport/api/middlewares"
)

const (
	DefaultServiceTimeout = 3 * time.Second
	// GatewayServiceTimeout для роутов с внешним вызовом платежного провайдера.
	GatewayServiceTimeout = 15 * time.Second
)

const (
	RouteGroup = "/api"

	AuthTelegramRoute = "/auth/telegram"

	OrdersRoute   = "/orders"
	OrderRoute    = "/orders/:id"
	MyOrdersRoute = "/orders/my"

	BalanceRoute              = "/balance"
	BalanceHistoryRoute       = "/balance/history"
	BalanceRechargeRoute      = "/balance/recharge"
	BalanceInvoiceRoute       = "/balance/invoice"
	BalanceInvoiceStatusRoute = "/balance/invoice/:id"

	MeRoute                   = "/users/me"
	PreferencesRoute          = "/users/me/preferences"
	NotificationSettingsRoute = "/users/me/notification-settings"

	CitiesRoute     = "/cities"
	CategoriesRoute = "/categories"

	WebhookCryptoPayRoute = "/webhook/crypto-pay"
)

const defaultHistoryLimit = 20

type RouterArgs struct {
	Logger         *logrus.Logger
	UserService    UserServicer
	OrderService   OrderServicer
	BalanceService BalanceServicer
	PaymentService PaymentServicer
	JWTSecretKey   []byte
}

func New(args RouterArgs) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	authHandler := NewAuthHandler(args.UserService)
	ordersHandler := NewOrdersHandler(args.OrderService)
	balanceHandler := NewBalanceHandler(args.BalanceService, args.PaymentService)
	usersHandler := NewUsersHandler(args.UserService)
	citiesHandler := NewCitiesHandler()
	webhookHandler := NewWebhookHandler(args.PaymentService)

	api := r.Group(RouteGroup)

	api.POST(AuthTelegramRoute, authHandler.Telegram)
	api.POST(WebhookCryptoPayRoute, webhookHandler.CryptoPay)
	api.GET(CitiesRoute, citiesHandler.Index)
	api.GET(CategoriesRoute, citiesHandler.Categories)

	// Просмотр доступен без авторизации, но с токеном владелец и взявшие
	// исполнители видят больше.
	api.GET(OrdersRoute, middlewares.OptionalAuth(args.JWTSecretKey), ordersHandler.Index)
	api.GET(OrderRoute, middlewares.OptionalAuth(args.JWTSecretKey), ordersHandler.Show)

	api.Use(middlewares.AuthRequired(args.JWTSecretKey))
	// ниже все роуты группы требуют авторизованного пользователя.
	api.GET(MyOrdersRoute, ordersHandler.My)
	api.POST(OrdersRoute, ordersHandler.Create)
	api.PATCH(OrderRoute, ordersHandler.Update)
	api.DELETE(OrderRoute, ordersHandler.Delete)
	api.POST(OrderRoute+"/take", ordersHandler.Take)
	api.POST(OrderRoute+"/respond", ordersHandler.Respond)
	api.POST(OrderRoute+"/close", ordersHandler.Close)
	api.POST(OrderRoute+"/complete", ordersHandler.Complete)

	api.GET(BalanceRoute, balanceHandler.Index)
	api.GET(BalanceHistoryRoute, balanceHandler.History)
	api.POST(BalanceRechargeRoute, balanceHandler.Recharge)
	api.POST(BalanceInvoiceRoute, balanceHandler.CreateInvoice)
	api.GET(BalanceInvoiceStatusRoute, balanceHandler.InvoiceStatus)

	api.GET(MeRoute, usersHandler.Me)
	api.PUT(PreferencesRoute, usersHandler.UpdatePreferences)
	api.PUT(NotificationSettingsRoute, usersHandler.UpdateNotificationSettings)

	return r
}
