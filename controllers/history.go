package controllers

import (
	"net/http"
	"time"

	dbpkg "hypatia/db"
	"hypatia/models"

	"github.com/gin-gonic/gin"
)

// POST /api/history
// Registrar leitura invalida o cache de recomendações do usuário:
// o próximo GET recalcula com o perfil atualizado.
func CreateReadingHistory(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var entry models.ReadingHistory
	if err := c.Bind(&entry); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if entry.PaperID == 0 {
		RespondError(c, "paper_id é obrigatório", http.StatusBadRequest)
		return
	}
	if entry.Rating != nil && (*entry.Rating < 0 || *entry.Rating > 5) {
		RespondError(c, "rating deve estar entre 0 e 5", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var paper models.Paper
	if err := db.First(&paper, entry.PaperID).Error; err != nil {
		RespondError(c, "paper não encontrado", http.StatusNotFound)
		return
	}

	entry.ID = 0
	entry.UserID = user.ID
	if entry.InteractionType == "" {
		entry.InteractionType = models.INTERACTION_TYPE_READ
	}
	if entry.ReadTime == nil {
		now := time.Now()
		entry.ReadTime = &now
	}

	if err := db.Create(&entry).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	recommender.InvalidateUser(user.ID)

	RespondSuccess(c, gin.H{"history": entry})
}

// GET /api/history?skip=&limit=
func GetReadingHistory(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	skip := QueryInt(c, "skip", 0)
	limit := QueryInt(c, "limit", 50)
	if limit > 200 {
		limit = 200
	}

	var entries []models.ReadingHistory
	if err := db.Where("user_id = ?", user.ID).
		Order("read_time desc, id desc").
		Offset(skip).Limit(limit).
		Find(&entries).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"history": entries})
}
