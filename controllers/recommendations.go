package controllers

import (
	"errors"
	"net/http"

	dbpkg "hypatia/db"
	"hypatia/models"
	"hypatia/recommend"

	"github.com/gin-gonic/gin"
)

// GET /api/recommendations?limit=&refresh=
// refresh=true força recomputação síncrona (apaga o lote atual e gera outro).
func GetRecommendations(c *gin.Context) {
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

	limit := QueryInt(c, "limit", 10)
	refresh := QueryBool(c, "refresh")

	if refresh {
		recommender.InvalidateUser(user.ID)
	}

	recs, err := recommender.GetRecommendations(db, user.ID, limit, refresh)
	if err != nil {
		if errors.Is(err, recommend.ErrUserNotFound) {
			RespondError(c, err.Error(), http.StatusNotFound)
			return
		}
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"recommendations": recs})
}

// POST /api/recommendations/refresh
// Enfileira a recomputação e responde 202 na hora; o worker faz o resto.
// Enquanto a tarefa não roda, o lote anterior continua sendo servido.
func RefreshRecommendations(c *gin.Context) {
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

	task, err := recommender.EnqueueRefresh(db, user.ID, models.REFRESH_TASK_KIND_RECOMMENDATIONS)
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"task": task})
}

// PUT /api/recommendations/:id/read
func MarkRecommendationRead(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	rec, err := recommender.MarkRead(db, id, user.ID)
	if err != nil {
		if errors.Is(err, recommend.ErrRecommendationNotFound) {
			RespondError(c, "recomendação não encontrada", http.StatusNotFound)
			return
		}
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"recommendation": rec})
}

// GET /api/recommendations/random?category=&limit=&force_refresh=
// Sorteio "surpreenda-me": sempre ignora o cache.
func GetRandomRecommendations(c *gin.Context) {
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

	category := c.Query("category")
	limit := QueryInt(c, "limit", 10)
	forceRefresh := QueryBool(c, "force_refresh")

	items, err := recommender.RandomSample(db, user.ID, category, limit, forceRefresh)
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"recommendations": items})
}

// GET /api/recommendations/interests
// Resumo do perfil de interesse, peso decrescente.
func GetInterestSummary(c *gin.Context) {
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

	summary, err := recommend.InterestSummary(db, user.ID)
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"interests": summary})
}

// GET /api/recommendations/statistics
func GetRecommendationStatistics(c *gin.Context) {
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

	var totalRead int
	if err := db.Model(&models.ReadingHistory{}).
		Where("user_id = ?", user.ID).Count(&totalRead).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	var totalRecs int
	if err := db.Model(&models.Recommendation{}).
		Where("user_id = ?", user.ID).Count(&totalRecs).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	var readRecs int
	if err := db.Model(&models.Recommendation{}).
		Where("user_id = ? AND is_read = ?", user.ID, true).Count(&readRecs).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	var ratings []float64
	if err := db.Model(&models.ReadingHistory{}).
		Where("user_id = ? AND rating IS NOT NULL", user.ID).
		Pluck("rating", &ratings).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	avgRating := 0.0
	if len(ratings) > 0 {
		for _, r := range ratings {
			avgRating += r
		}
		avgRating /= float64(len(ratings))
	}

	RespondSuccess(c, gin.H{
		"total_read":            totalRead,
		"total_recommendations": totalRecs,
		"read_recommendations":  readRecs,
		"average_rating":        avgRating,
	})
}
