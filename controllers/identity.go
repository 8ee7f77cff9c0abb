package controllers

import (
	"net/http"
	"strconv"

	dbpkg "hypatia/db"
	"hypatia/models"

	"github.com/gin-gonic/gin"
)

const ctxUserKey = "auth_user"

// Identify resolve o usuário da requisição a partir do header X-User-ID,
// preenchido pelo gateway na frente da API (autenticação mora lá, não
// aqui). Carrega o usuário do banco e injeta no contexto.
func Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-User-ID")
		if raw == "" {
			RespondError(c, "header X-User-ID é obrigatório", http.StatusUnauthorized)
			c.Abort()
			return
		}
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			RespondError(c, "X-User-ID inválido", http.StatusUnauthorized)
			c.Abort()
			return
		}

		db := dbpkg.DBInstance(c)
		if db == nil {
			RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
			c.Abort()
			return
		}
		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			RespondError(c, "user not found", http.StatusUnauthorized)
			c.Abort()
			return
		}
		if user.Status == models.USER_STATUS_BLOCKED {
			RespondError(c, "sem acesso ao aplicativo", http.StatusForbidden)
			c.Abort()
			return
		}

		c.Set(ctxUserKey, user)
		c.Next()
	}
}

// GetUserLogged returns the user loaded by Identify.
func GetUserLogged(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}
