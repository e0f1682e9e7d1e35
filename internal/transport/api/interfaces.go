package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/banco-api/internal/domain"
	"github.com/fsdevblog/banco-api/internal/service"
)

// UserServicer интерфейс исключительно для моков.
type UserServicer interface {
	Register(ctx context.Context, args service.RegisterUserArgs) (*domain.User, string, error)
	Login(ctx context.Context, args service.LoginUserArgs) (*domain.User, string, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

type AccountServicer interface {
	Create(ctx context.Context, owner string) (*domain.Account, error)
	GetByOwner(ctx context.Context, owner string) ([]domain.Account, error)
	FindByIDAndOwner(ctx context.Context, id int64, owner string) (*domain.Account, error)
}

type TransactionServicer interface {
	Post(ctx context.Context, args service.PostTransactionArgs) (*domain.Transaction, decimal.Decimal, error)
	Statement(ctx context.Context, owner string, accountID int64) ([]domain.Transaction, error)
}
