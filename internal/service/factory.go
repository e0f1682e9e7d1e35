package service

import (
	"fmt"

	"github.com/fsdevblog/banco-api/internal/service/psswd"
	"github.com/fsdevblog/banco-api/pkg/uow"
)

type AppServices struct {
	UserService        *UserService
	AccountService     *AccountService
	TransactionService *TransactionService
}

func Factory(unitOfWork uow.UOW, jwtSecret []byte) (*AppServices, error) {
	var hasher psswd.PasswordHash

	userService, userServiceErr := NewUserService(unitOfWork, jwtSecret, hasher)
	if userServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", userServiceErr.Error())
	}

	accountService, accountServiceErr := NewAccountService(unitOfWork)
	if accountServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", accountServiceErr.Error())
	}

	transactionService, transactionServiceErr := NewTransactionService(unitOfWork)
	if transactionServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", transactionServiceErr.Error())
	}

	return &AppServices{
		UserService:        userService,
		AccountService:     accountService,
		TransactionService: transactionService,
	}, nil
}
