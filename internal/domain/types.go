package domain

import "github.com/shopspring/decimal"

type TransactionType string

const (
	TransactionDeposit  TransactionType = "deposit"
	TransactionWithdraw TransactionType = "withdraw"
)

func (t TransactionType) Valid() bool {
	return t == TransactionDeposit || t == TransactionWithdraw
}

// SignedAmount возвращает знаковое изменение баланса для суммы amount:
// положительное для депозита, отрицательное для снятия.
func (t TransactionType) SignedAmount(amount decimal.Decimal) decimal.Decimal {
	if t == TransactionWithdraw {
		return amount.Neg()
	}
	return amount
}
