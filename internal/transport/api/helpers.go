package api

import (
	"strconv"

	"github.com/fsdevblog/banco-api/internal/domain"
	"github.com/fsdevblog/banco-api/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
)

// getCurrentUserFromContext достает юзера, положенного в контекст мидлваром
// AuthRequired. Вызывается только из хендлеров за этим мидлваром.
func getCurrentUserFromContext(c *gin.Context) *domain.User {
	user, _ := c.MustGet(middlewares.CurrentUserKey).(*domain.User)
	return user
}

// parseAccountID парсит path-параметр id. Невалидный id эквивалентен
// несуществующему счету.
func parseAccountID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
