package pgrepo

import (
	"context"

	"github.com/fsdevblog/banco-api/internal/domain"
	"github.com/fsdevblog/banco-api/internal/repository/repoargs"
	"github.com/fsdevblog/banco-api/pkg/uow"
	"github.com/jackc/pgx/v5"
)

type TransactionRepository struct {
	db uow.DBTX
}

func NewTransactionRepository(db uow.DBTX) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const createTransactionSQL = `
INSERT INTO transactions (account_id, type, amount)
VALUES ($1, $2, $3)
RETURNING id, created_at, account_id, type, amount`

func (t *TransactionRepository) Create(
	ctx context.Context,
	args repoargs.TransactionCreate,
) (*domain.Transaction, error) {
	row := t.db.QueryRow(ctx, createTransactionSQL, args.AccountID, string(args.Type), args.Amount)

	trans, err := scanTransaction(row)
	if err != nil {
		return nil, convertErr(err, "creating transaction for account %d", args.AccountID)
	}
	return trans, nil
}

const getTransactionsByAccountIDSQL = `
SELECT id, created_at, account_id, type, amount
FROM transactions
WHERE account_id = $1
ORDER BY id`

// GetByAccountID возвращает транзакции счета в порядке создания (по id по
// возрастанию), порядок стабилен между вызовами.
func (t *TransactionRepository) GetByAccountID(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	rows, err := t.db.Query(ctx, getTransactionsByAccountIDSQL, accountID)
	if err != nil {
		return nil, convertErr(err, "getting transactions by account %d", accountID)
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		trans, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "getting transactions by account %d", accountID)
		}
		transactions = append(transactions, *trans)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting transactions by account %d", accountID)
	}
	return transactions, nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var trans domain.Transaction
	var transType string
	if err := row.Scan(
		&trans.ID,
		&trans.CreatedAt,
		&trans.AccountID,
		&transType,
		&trans.Amount,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	trans.Type = domain.TransactionType(transType)
	return &trans, nil
}
