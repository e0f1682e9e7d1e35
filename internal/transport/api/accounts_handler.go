package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/fsdevblog/banco-api/internal/domain"
	"github.com/fsdevblog/banco-api/internal/transport/api/metrics"
	"github.com/gin-gonic/gin"
)

type AccountsHandler struct {
	accountSvs AccountServicer
}

func NewAccountsHandler(accountSvs AccountServicer) *AccountsHandler {
	return &AccountsHandler{
		accountSvs: accountSvs,
	}
}

type AccountResponse struct {
	ID      int64   `json:"id"`
	Owner   string  `json:"owner"`
	Balance float64 `json:"balance"`
}

func newAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:      account.ID,
		Owner:   account.Owner,
		Balance: account.Balance.InexactFloat64(),
	}
}

// Create POST RouteGroup + AccountsRoute. Открывает счет текущему юзеру.
func (h *AccountsHandler) Create(c *gin.Context) {
	currentUser := getCurrentUserFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	account, err := h.accountSvs.Create(reqCtx, currentUser.Username)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			_ = c.AbortWithError(http.StatusConflict, errors.New("account already exists for this user")).
				SetType(gin.ErrorTypePublic)
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	metrics.AccountsCreatedTotal.Inc()
	c.JSON(http.StatusCreated, newAccountResponse(account))
}

// Index GET RouteGroup + AccountsRoute. Список счетов текущего юзера.
func (h *AccountsHandler) Index(c *gin.Context) {
	currentUser := getCurrentUserFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	accounts, err := h.accountSvs.GetByOwner(reqCtx, currentUser.Username)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	response := make([]AccountResponse, len(accounts))
	for i := range accounts {
		response[i] = newAccountResponse(&accounts[i])
	}
	c.JSON(http.StatusOK, response)
}

// Show GET RouteGroup + AccountRoute. Чужой счет неотличим от несуществующего.
func (h *AccountsHandler) Show(c *gin.Context) {
	currentUser := getCurrentUserFromContext(c)

	accountID, ok := parseAccountID(c)
	if !ok {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	account, err := h.accountSvs.FindByIDAndOwner(reqCtx, accountID, currentUser.Username)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, newAccountResponse(account))
}
