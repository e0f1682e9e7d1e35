package api

import (
	"time"

	"github.com/fsdevblog/banco-api/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const (
	DefaultServiceTimeout = 3 * time.Second
)

const (
	RouteGroup        = "/api"
	RegisterRoute     = "/auth/register"
	LoginRoute        = "/auth/login"
	MeRoute           = "/me"
	AccountsRoute     = "/accounts"
	AccountRoute      = "/accounts/:id"
	TransactionsRoute = "/accounts/:id/transactions"
	StatementRoute    = "/accounts/:id/statement"
	MetricsRoute      = "/metrics"
)

type RouterArgs struct {
	Logger             *logrus.Logger
	UserService        UserServicer
	AccountService     AccountServicer
	TransactionService TransactionServicer
	JWTSecretKey       []byte
}

func New(args RouterArgs) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	authHandler := NewAuthHandler(args.UserService)
	accountsHandler := NewAccountsHandler(args.AccountService)
	transactionsHandler := NewTransactionsHandler(args.TransactionService)

	r.GET(MetricsRoute, gin.WrapH(promhttp.Handler()))

	api := r.Group(RouteGroup)

	api.POST(RegisterRoute, middlewares.NonAuthRequired(args.JWTSecretKey), authHandler.Register)
	api.POST(LoginRoute, middlewares.NonAuthRequired(args.JWTSecretKey), authHandler.Login)

	api.Use(middlewares.AuthRequired(args.JWTSecretKey, args.UserService))
	// ниже все роуты группы требуют авторизованного пользователя.
	api.GET(MeRoute, authHandler.Me)

	api.POST(AccountsRoute, accountsHandler.Create)
	api.GET(AccountsRoute, accountsHandler.Index)
	api.GET(AccountRoute, accountsHandler.Show)

	api.POST(TransactionsRoute, transactionsHandler.Create)
	api.GET(StatementRoute, transactionsHandler.Statement)
	return r
}
