package repoargs

import "github.com/shopspring/decimal"

// BalanceChange описывает атомарное изменение баланса счета AccountID,
// принадлежащего Owner, на знаковую величину Delta.
type BalanceChange struct {
	AccountID int64
	Owner     string
	Delta     decimal.Decimal
}
