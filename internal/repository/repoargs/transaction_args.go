package repoargs

import (
	"github.com/fsdevblog/banco-api/internal/domain"
	"github.com/shopspring/decimal"
)

type TransactionCreate struct {
	AccountID int64
	Type      domain.TransactionType
	Amount    decimal.Decimal
}
