package pgrepo

import (
	"context"

	"github.com/fsdevblog/banco-api/internal/domain"
	"github.com/fsdevblog/banco-api/internal/repository/repoargs"
	"github.com/fsdevblog/banco-api/pkg/uow"
	"github.com/jackc/pgx/v5"
)

type AccountRepository struct {
	db uow.DBTX
}

func NewAccountRepository(db uow.DBTX) *AccountRepository {
	return &AccountRepository{db: db}
}

const createAccountSQL = `
INSERT INTO accounts (owner, balance)
VALUES ($1, 0)
RETURNING id, created_at, updated_at, owner, balance`

// CreateAccount создает счет с нулевым балансом. Если у owner счет уже есть,
// уникальный индекс по owner вернет domain.ErrDuplicateKey.
func (a *AccountRepository) CreateAccount(ctx context.Context, owner string) (*domain.Account, error) {
	row := a.db.QueryRow(ctx, createAccountSQL, owner)

	account, err := scanAccount(row)
	if err != nil {
		return nil, convertErr(err, "creating account for owner %s", owner)
	}
	return account, nil
}

const findAccountByIDAndOwnerSQL = `
SELECT id, created_at, updated_at, owner, balance
FROM accounts
WHERE id = $1 AND owner = $2`

// FindByIDAndOwner ищет счет по id в рамках владельца owner. Чужой и
// несуществующий счет неразличимы: оба дают domain.ErrRecordNotFound.
func (a *AccountRepository) FindByIDAndOwner(ctx context.Context, id int64, owner string) (*domain.Account, error) {
	row := a.db.QueryRow(ctx, findAccountByIDAndOwnerSQL, id, owner)

	account, err := scanAccount(row)
	if err != nil {
		return nil, convertErr(err, "finding account %d", id)
	}
	return account, nil
}

const getAccountsByOwnerSQL = `
SELECT id, created_at, updated_at, owner, balance
FROM accounts
WHERE owner = $1
ORDER BY id`

func (a *AccountRepository) GetByOwner(ctx context.Context, owner string) ([]domain.Account, error) {
	rows, err := a.db.Query(ctx, getAccountsByOwnerSQL, owner)
	if err != nil {
		return nil, convertErr(err, "getting accounts by owner %s", owner)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, scanErr := scanAccount(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "getting accounts by owner %s", owner)
		}
		accounts = append(accounts, *account)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting accounts by owner %s", owner)
	}
	return accounts, nil
}

const applyBalanceChangeSQL = `
UPDATE accounts
SET balance = balance + $3, updated_at = now()
WHERE id = $1 AND owner = $2 AND balance + $3 >= 0
RETURNING id, created_at, updated_at, owner, balance`

// ApplyBalanceChange атомарно меняет баланс счета на знаковую величину Delta.
// Проверка и запись выполняются одним UPDATE: два конкурентных снятия не могут
// оба пройти по одному и тому же стартовому балансу. Если строка не обновлена
// (счет отсутствует, чужой или баланс ушел бы в минус) - domain.ErrRecordNotFound;
// разделить эти случаи обязан вызывающий слой.
func (a *AccountRepository) ApplyBalanceChange(ctx context.Context, args repoargs.BalanceChange) (*domain.Account, error) {
	row := a.db.QueryRow(ctx, applyBalanceChangeSQL, args.AccountID, args.Owner, args.Delta)

	account, err := scanAccount(row)
	if err != nil {
		return nil, convertErr(err, "applying balance change to account %d", args.AccountID)
	}
	return account, nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	if err := row.Scan(
		&account.ID,
		&account.CreatedAt,
		&account.UpdatedAt,
		&account.Owner,
		&account.Balance,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &account, nil
}
