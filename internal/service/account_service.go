package service

import (
	"context"
	"fmt"

	"github.com/fsdevblog/banco-api/internal/domain"
	"github.com/fsdevblog/banco-api/internal/repository/repoargs"
	"github.com/fsdevblog/banco-api/pkg/uow"
)

type AccountService struct {
	uow         uow.UOW
	accountRepo AccountRepository
}

func NewAccountService(u uow.UOW) (*AccountService, error) {
	accountRepo, err := uow.GetRepositoryAs[AccountRepository](u, uow.RepositoryName(repoargs.AccountRepoName))
	if err != nil {
		return nil, err
	}
	return &AccountService{
		uow:         u,
		accountRepo: accountRepo,
	}, nil
}

// Create открывает счет для owner с нулевым балансом. У юзера может быть
// только один счет: повторное открытие вернет domain.ErrDuplicateKey.
func (a *AccountService) Create(ctx context.Context, owner string) (*domain.Account, error) {
	account, err := a.accountRepo.CreateAccount(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("creating account: %w", err)
	}
	return account, nil
}

// GetByOwner возвращает счета юзера (ноль или один).
func (a *AccountService) GetByOwner(ctx context.Context, owner string) ([]domain.Account, error) {
	accounts, err := a.accountRepo.GetByOwner(ctx, owner)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return accounts, nil
}

// FindByIDAndOwner возвращает счет id, если он принадлежит owner. Чужой и
// несуществующий счет одинаково дают domain.ErrRecordNotFound - наружу не
// утекает сам факт существования чужого счета.
func (a *AccountService) FindByIDAndOwner(ctx context.Context, id int64, owner string) (*domain.Account, error) {
	account, err := a.accountRepo.FindByIDAndOwner(ctx, id, owner)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return account, nil
}
