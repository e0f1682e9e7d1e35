package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fsdevblog/banco-api/internal/domain"
	"github.com/fsdevblog/banco-api/internal/repository/repoargs"
	"github.com/fsdevblog/banco-api/pkg/uow"
	"github.com/shopspring/decimal"
)

// TransactionService единственный путь изменения баланса счета.
type TransactionService struct {
	uow         uow.UOW
	accountRepo AccountRepository
	transRepo   TransactionRepository
}

func NewTransactionService(u uow.UOW) (*TransactionService, error) {
	accountRepo, accountRepoErr := uow.GetRepositoryAs[AccountRepository](
		u, uow.RepositoryName(repoargs.AccountRepoName))
	if accountRepoErr != nil {
		return nil, accountRepoErr
	}
	transRepo, transRepoErr := uow.GetRepositoryAs[TransactionRepository](
		u, uow.RepositoryName(repoargs.TransactionRepoName))
	if transRepoErr != nil {
		return nil, transRepoErr
	}
	return &TransactionService{
		uow:         u,
		accountRepo: accountRepo,
		transRepo:   transRepo,
	}, nil
}

type PostTransactionArgs struct {
	Owner     string
	AccountID int64
	Type      domain.TransactionType
	Amount    decimal.Decimal
}

// Post проводит депозит или снятие по счету. Изменение баланса и вставка
// записи транзакции выполняются в одной транзакции БД: частичное применение
// не наблюдаемо. Сама проверка баланса - условный UPDATE одним стейтментом,
// поэтому конкурентные снятия по одному счету сериализуются на уровне базы.
//
// Возвращает созданную транзакцию и баланс счета после нее. Ошибки:
//   - domain.ErrInvalidTransactionType - неизвестный тип;
//   - domain.ErrInvalidAmount - сумма не строго положительна;
//   - domain.ErrRecordNotFound - счета нет или он принадлежит другому юзеру;
//   - domain.ErrNotEnoughBalance - снятие превышает баланс.
//
// При любой ошибке счет и история транзакций остаются без изменений.
func (t *TransactionService) Post(
	ctx context.Context,
	args PostTransactionArgs,
) (*domain.Transaction, decimal.Decimal, error) {
	if !args.Type.Valid() {
		return nil, decimal.Decimal{}, domain.ErrInvalidTransactionType
	}
	if !args.Amount.IsPositive() {
		return nil, decimal.Decimal{}, domain.ErrInvalidAmount
	}

	var trans *domain.Transaction
	var balance decimal.Decimal

	txErr := t.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		accountRepo, accountRepoErr := uow.GetAs[AccountRepository](
			tx, uow.RepositoryName(repoargs.AccountRepoName))
		if accountRepoErr != nil {
			return accountRepoErr //nolint:wrapcheck
		}
		transRepo, transRepoErr := uow.GetAs[TransactionRepository](
			tx, uow.RepositoryName(repoargs.TransactionRepoName))
		if transRepoErr != nil {
			return transRepoErr //nolint:wrapcheck
		}

		account, applyErr := accountRepo.ApplyBalanceChange(c, repoargs.BalanceChange{
			AccountID: args.AccountID,
			Owner:     args.Owner,
			Delta:     args.Type.SignedAmount(args.Amount),
		})
		if applyErr != nil {
			if errors.Is(applyErr, domain.ErrRecordNotFound) {
				// Условный UPDATE не различает "счета нет" и "не хватило
				// баланса". Разделяем повторным чтением в той же транзакции.
				if _, findErr := accountRepo.FindByIDAndOwner(c, args.AccountID, args.Owner); findErr != nil {
					return findErr //nolint:wrapcheck
				}
				return domain.ErrNotEnoughBalance
			}
			return applyErr //nolint:wrapcheck
		}

		created, createErr := transRepo.Create(c, repoargs.TransactionCreate{
			AccountID: account.ID,
			Type:      args.Type,
			Amount:    args.Amount,
		})
		if createErr != nil {
			return createErr //nolint:wrapcheck
		}

		trans = created
		balance = account.Balance
		return nil
	})

	if txErr != nil {
		return nil, decimal.Decimal{}, fmt.Errorf("posting transaction: %w", txErr)
	}
	return trans, balance, nil
}

// Statement возвращает выписку по счету - все транзакции в порядке создания.
// Для чужого или несуществующего счета - domain.ErrRecordNotFound.
func (t *TransactionService) Statement(
	ctx context.Context,
	owner string,
	accountID int64,
) ([]domain.Transaction, error) {
	if _, err := t.accountRepo.FindByIDAndOwner(ctx, accountID, owner); err != nil {
		return nil, err //nolint:wrapcheck
	}
	transactions, err := t.transRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return transactions, nil
}
