// Package api HTTP-интерфейсы обоих сервисов на gin. Роутеры собираются по одной схеме:
// Recovery, логирование, обработка ошибок, затем обязательный идентификатор пользователя
// и маршруты сервиса.
package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/groph-pay/internal/transport/api/middlewares"
)

const (
	DefaultServiceTimeout = 3 * time.Second
)

const (
	RouteGroup          = "/api"
	OrdersRoute         = "/orders"
	OrderRoute          = "/orders/:orderID"
	AccountsRoute       = "/accounts"
	AccountBalanceRoute = "/accounts/balance"
	AccountTopUpRoute   = "/accounts/topup"
)

type OrdersRouterArgs struct {
	Logger       *logrus.Logger
	OrderService OrderServicer
}

// NewOrdersRouter роутер сервиса заказов.
func NewOrdersRouter(args OrdersRouterArgs) (*gin.Engine, error) {
	r, err := baseRouter(args.Logger)
	if err != nil {
		return nil, err
	}

	ordersHandler := NewOrdersHandler(args.OrderService)

	api := r.Group(RouteGroup)
	api.Use(middlewares.UserRequired())

	api.POST(OrdersRoute, ordersHandler.Create)
	api.GET(OrdersRoute, ordersHandler.Index)
	api.GET(OrderRoute, ordersHandler.Show)
	return r, nil
}

type PaymentsRouterArgs struct {
	Logger         *logrus.Logger
	AccountService AccountServicer
}

// NewPaymentsRouter роутер сервиса платежей.
func NewPaymentsRouter(args PaymentsRouterArgs) (*gin.Engine, error) {
	r, err := baseRouter(args.Logger)
	if err != nil {
		return nil, err
	}

	accountsHandler := NewAccountsHandler(args.AccountService)

	api := r.Group(RouteGroup)
	api.Use(middlewares.UserRequired())

	api.POST(AccountsRoute, accountsHandler.Create)
	api.GET(AccountBalanceRoute, accountsHandler.Balance)
	api.POST(AccountTopUpRoute, accountsHandler.TopUp)
	return r, nil
}

func baseRouter(l *logrus.Logger) (*gin.Engine, error) {
	if err := registerValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if l != nil {
		r.Use(middlewares.Logger(l))
	}
	r.Use(middlewares.Errors())
	return r, nil
}
