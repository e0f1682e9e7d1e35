package service

import (
	"context"

	"github.com/fsdevblog/banco-api/internal/domain"
	"github.com/fsdevblog/banco-api/internal/repository/repoargs"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type PasswordHasher interface {
	HashPassword(password string) (string, error)
	ComparePassword(password string, hashedPassword string) bool
}

type UserRepository interface {
	CreateUser(ctx context.Context, user repoargs.CreateUser) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

type AccountRepository interface {
	CreateAccount(ctx context.Context, owner string) (*domain.Account, error)
	FindByIDAndOwner(ctx context.Context, id int64, owner string) (*domain.Account, error)
	GetByOwner(ctx context.Context, owner string) ([]domain.Account, error)
	ApplyBalanceChange(ctx context.Context, args repoargs.BalanceChange) (*domain.Account, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, args repoargs.TransactionCreate) (*domain.Transaction, error)
	GetByAccountID(ctx context.Context, accountID int64) ([]domain.Transaction, error)
}
