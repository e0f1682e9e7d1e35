package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	Username  string
	Password  string
}

// Account принадлежит ровно одному юзеру (по полю Owner, уникальный индекс).
// Баланс меняется только через TransactionService.
type Account struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	Owner     string
	Balance   decimal.Decimal
}

// Transaction неизменяема после создания. Знак влияния на баланс
// выводится из Type, Amount всегда строго положительна.
type Transaction struct {
	ID        int64
	CreatedAt time.Time
	AccountID int64
	Type      TransactionType
	Amount    decimal.Decimal
}
