package middlewares

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/fsdevblog/banco-api/internal/domain"
	"github.com/fsdevblog/banco-api/internal/service/tokens"
	"github.com/gin-gonic/gin"
)

var ErrTokenNotExist = errors.New("token not exist")

const CurrentUserKey = "currentUser"

// UserFinder резолвит subject валидного токена в живого юзера.
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// checkAuthorization извлекает токен из заголовка Authorization и проверяет его.
// Если токен не передан, вернется ошибка ErrTokenNotExist.
func checkAuthorization(c *gin.Context, jwtTokenSecret []byte) (*tokens.UserClaims, error) {
	tokenHeader := c.GetHeader("Authorization")
	bearer := "Bearer "

	if len(tokenHeader) < len(bearer) || tokenHeader[:len(bearer)] != bearer {
		return nil, ErrTokenNotExist
	}

	tokenStr := tokenHeader[len(bearer):]
	token, err := tokens.ValidateUserJWT(tokenStr, jwtTokenSecret)
	if err != nil {
		return nil, fmt.Errorf("check authorization: %w", err)
	}

	claims, ok := token.Claims.(*tokens.UserClaims)
	if !ok {
		return nil, errors.New("invalid jwt claims type")
	}
	return claims, nil
}

// AuthRequired проверяет, что запрос авторизован: токен валиден и его subject
// все еще существует в базе. Записывает в контекст (поле CurrentUserKey) юзера.
// Токены не отзываются, удаленный юзер отсекается именно здесь.
func AuthRequired(jwtTokenSecret []byte, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := checkAuthorization(c, jwtTokenSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			if !errors.Is(err, ErrTokenNotExist) {
				_ = c.Error(err).SetType(gin.ErrorTypePrivate)
			}
			return
		}

		user, findErr := users.FindByUsername(c, claims.Subject)
		if findErr != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			if !errors.Is(findErr, domain.ErrRecordNotFound) {
				_ = c.Error(findErr).SetType(gin.ErrorTypePrivate)
			}
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// NonAuthRequired пропускает только запросы без действующего токена
// (регистрация и логин уже авторизованного юзера не имеют смысла).
func NonAuthRequired(jwtTokenSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := checkAuthorization(c, jwtTokenSecret); err == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Already authorized"})
			return
		}

		c.Next()
	}
}
