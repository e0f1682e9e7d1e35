package pgrepo

import (
	"context"

	"github.com/fsdevblog/banco-api/internal/domain"
	"github.com/fsdevblog/banco-api/internal/repository/repoargs"
	"github.com/fsdevblog/banco-api/pkg/uow"
)

type UserRepository struct {
	db uow.DBTX
}

func NewUserRepository(db uow.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const createUserSQL = `
INSERT INTO users (username, encrypted_password)
VALUES ($1, $2)
RETURNING id, created_at, updated_at, username, encrypted_password`

// CreateUser создает юзера в базе данных. В случае конфликта юзернейма возвращает
// ошибку domain.ErrDuplicateKey, во всех других случаях - domain.ErrUnknown.
func (u *UserRepository) CreateUser(ctx context.Context, args repoargs.CreateUser) (*domain.User, error) {
	row := u.db.QueryRow(ctx, createUserSQL, args.Username, args.Password)

	var user domain.User
	if err := row.Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt, &user.Username, &user.Password); err != nil {
		return nil, convertErr(err, "creating user")
	}
	return &user, nil
}

const findUserByUsernameSQL = `
SELECT id, created_at, updated_at, username, encrypted_password
FROM users
WHERE username = $1`

// FindUserByUsername ищет юзера по его юзернейму. Возвращает ошибку
// domain.ErrRecordNotFound если запись не найдена, во всех других случаях - domain.ErrUnknown.
func (u *UserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := u.db.QueryRow(ctx, findUserByUsernameSQL, username)

	var user domain.User
	if err := row.Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt, &user.Username, &user.Password); err != nil {
		return nil, convertErr(err, "finding user by username %s", username)
	}
	return &user, nil
}
