package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fsdevblog/banco-api/internal/domain"
	"github.com/fsdevblog/banco-api/internal/service"
	"github.com/fsdevblog/banco-api/internal/transport/api/metrics"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type TransactionsHandler struct {
	transSvs TransactionServicer
}

func NewTransactionsHandler(transSvs TransactionServicer) *TransactionsHandler {
	return &TransactionsHandler{
		transSvs: transSvs,
	}
}

type TransactionCreateParams struct {
	Type   string          `binding:"required,oneof=deposit withdraw" json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

type TransactionResponse struct {
	ID        int64   `json:"id"`
	Type      string  `json:"type"`
	Amount    float64 `json:"amount"`
	Timestamp string  `json:"timestamp"`
}

func newTransactionResponse(trans *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        trans.ID,
		Type:      string(trans.Type),
		Amount:    trans.Amount.InexactFloat64(),
		Timestamp: trans.CreatedAt.Format(time.RFC3339),
	}
}

// Create POST RouteGroup + TransactionsRoute. Проводит депозит или снятие.
func (h *TransactionsHandler) Create(c *gin.Context) {
	currentUser := getCurrentUserFromContext(c)

	accountID, ok := parseAccountID(c)
	if !ok {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	var params TransactionCreateParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		var valErrs validator.ValidationErrors
		if errors.As(bindErr, &valErrs) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": valErrs.Error()})
			return
		}
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	trans, balance, err := h.transSvs.Post(reqCtx, service.PostTransactionArgs{
		Owner:     currentUser.Username,
		AccountID: accountID,
		Type:      domain.TransactionType(params.Type),
		Amount:    params.Amount,
	})
	if err != nil {
		metrics.TransactionsTotal.WithLabelValues(params.Type, outcomeLabel(err)).Inc()
		switch {
		case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrInvalidTransactionType):
			_ = c.AbortWithError(http.StatusBadRequest, errors.New("invalid amount")).
				SetType(gin.ErrorTypePublic)
		case errors.Is(err, domain.ErrNotEnoughBalance):
			_ = c.AbortWithError(http.StatusPaymentRequired, errors.New("not enough balance")).
				SetType(gin.ErrorTypePublic)
		case errors.Is(err, domain.ErrRecordNotFound):
			c.AbortWithStatus(http.StatusNotFound)
		default:
			_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		}
		return
	}

	metrics.TransactionsTotal.WithLabelValues(params.Type, "accepted").Inc()
	c.JSON(http.StatusOK, gin.H{
		"transaction": newTransactionResponse(trans),
		"balance":     balance.InexactFloat64(),
	})
}

// Statement GET RouteGroup + StatementRoute. Выписка по счету в порядке
// создания транзакций.
func (h *TransactionsHandler) Statement(c *gin.Context) {
	currentUser := getCurrentUserFromContext(c)

	accountID, ok := parseAccountID(c)
	if !ok {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	transactions, err := h.transSvs.Statement(reqCtx, currentUser.Username, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	response := make([]TransactionResponse, len(transactions))
	for i := range transactions {
		response[i] = newTransactionResponse(&transactions[i])
	}
	c.JSON(http.StatusOK, response)
}

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrInvalidTransactionType):
		return "invalid_amount"
	case errors.Is(err, domain.ErrNotEnoughBalance):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrRecordNotFound):
		return "not_found"
	default:
		return "error"
	}
}
